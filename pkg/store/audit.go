package store

import (
	"context"
	"time"

	"github.com/lenskeep/lenskeep/pkg/db"
	"github.com/lenskeep/lenskeep/pkg/db/models"
)

// AuditLogFilter narrows an audit log listing. Zero values match everything.
type AuditLogFilter struct {
	EntityType string
	EntityID   string
	ActorID    string
	Since      time.Time
	Until      time.Time
	Limit      int
}

// AuditStore is an interface for the append-only audit log. There is no
// update or delete path.
type AuditStore interface {
	AppendAuditLog(ctx context.Context, h db.Handler, entry models.AuditLogEntry) error
	ListAuditLog(ctx context.Context, h db.Handler, filter AuditLogFilter) ([]models.AuditLogEntry, error)
}
