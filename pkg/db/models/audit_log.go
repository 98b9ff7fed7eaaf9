package models

import "time"

// AuditAction is the kind of privileged mutation recorded in the audit log.
type AuditAction string

const (
	// AuditCreate records an entity creation.
	AuditCreate AuditAction = "CREATE"
	// AuditUpdate records an entity update.
	AuditUpdate AuditAction = "UPDATE"
	// AuditDelete records an entity deletion.
	AuditDelete AuditAction = "DELETE"
)

// AuditLogEntry is an append-only record of a committed privileged mutation.
// Entries are written in the same transaction as the mutation they record and
// are never updated or deleted.
type AuditLogEntry struct {
	ID         string      `db:"id"`
	Action     AuditAction `db:"action"`
	EntityType string      `db:"entity_type"`
	EntityID   string      `db:"entity_id"`
	ActorID    string      `db:"actor_id"`
	Details    string      `db:"details"`
	OccurredAt time.Time   `db:"occurred_at"`
}
