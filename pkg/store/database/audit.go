package database

import (
	"context"
	"strings"

	"github.com/lenskeep/lenskeep/pkg/db"
	"github.com/lenskeep/lenskeep/pkg/db/models"
	"github.com/lenskeep/lenskeep/pkg/store"
)

type auditStore struct{}

var _ store.AuditStore = (*auditStore)(nil)

// AppendAuditLog implements store.AuditStore.
func (*auditStore) AppendAuditLog(ctx context.Context, tx db.Handler, entry models.AuditLogEntry) error {
	query := tx.Rebind(`INSERT INTO audit_log (id, action, entity_type, entity_id, actor_id, details, occurred_at)
			VALUES (?, ?, ?, ?, ?, ?, ?);`)
	_, err := tx.ExecContext(ctx, query,
		entry.ID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.ActorID,
		entry.Details,
		entry.OccurredAt.UTC(),
	)
	return err
}

// ListAuditLog implements store.AuditStore.
// Entries are returned ordered by occurred_at ascending.
func (*auditStore) ListAuditLog(ctx context.Context, tx db.Handler, filter store.AuditLogFilter) ([]models.AuditLogEntry, error) {
	var (
		conds []string
		args  []interface{}
	)

	if filter.EntityType != "" {
		conds = append(conds, "entity_type = ?")
		args = append(args, filter.EntityType)
	}
	if filter.EntityID != "" {
		conds = append(conds, "entity_id = ?")
		args = append(args, filter.EntityID)
	}
	if filter.ActorID != "" {
		conds = append(conds, "actor_id = ?")
		args = append(args, filter.ActorID)
	}
	if !filter.Since.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, filter.Since.UTC())
	}
	if !filter.Until.IsZero() {
		conds = append(conds, "occurred_at < ?")
		args = append(args, filter.Until.UTC())
	}

	query := "SELECT * FROM audit_log"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY occurred_at, id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	var m []models.AuditLogEntry
	err := tx.SelectContext(ctx, &m, tx.Rebind(query), args...)
	return m, err
}
