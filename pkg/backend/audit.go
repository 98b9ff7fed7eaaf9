package backend

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lenskeep/lenskeep/pkg/db"
	"github.com/lenskeep/lenskeep/pkg/db/models"
	"github.com/lenskeep/lenskeep/pkg/store"
)

// Entity type tags recorded in the audit log.
const (
	EntityUser       = "User"
	EntityStudio     = "Studio"
	EntityMember     = "StudioMember"
	EntityClient     = "StudioClient"
	EntityInvitation = "UserInvitation"
)

// SystemActorID is the actor recorded for mutations driven by the system
// itself, such as the invitation sweep.
const SystemActorID = "system"

// audit appends an audit log entry on the given transaction. The entry
// commits or rolls back together with the mutation it records; a failed
// append fails the whole transaction.
func (d *Backend) audit(ctx context.Context, tx *db.Tx, actorID string, action models.AuditAction, entityType string, entityID string, details string) error {
	entry := models.AuditLogEntry{
		ID:         uuid.NewString(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		ActorID:    actorID,
		Details:    details,
		OccurredAt: time.Now().UTC(),
	}

	if err := d.store.AppendAuditLog(ctx, tx, entry); err != nil {
		return wrapStorageErr(err)
	}

	return nil
}

// AuditLog lists audit log entries matching the filter, ordered by
// occurred_at ascending.
func (d *Backend) AuditLog(ctx context.Context, filter store.AuditLogFilter) ([]models.AuditLogEntry, error) {
	var entries []models.AuditLogEntry
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		entries, err = d.store.ListAuditLog(ctx, tx, filter)
		return err
	}); err != nil {
		return nil, wrapStorageErr(err)
	}

	return entries, nil
}
