package models

import (
	"database/sql"
	"time"
)

// InvitationStatus is the state of a studio invitation.
type InvitationStatus string

const (
	// InvitationPending is the initial state of an invitation.
	InvitationPending InvitationStatus = "pending"
	// InvitationAccepted is a terminal state reached when a user registers
	// against the invitation.
	InvitationAccepted InvitationStatus = "accepted"
	// InvitationExpired is a terminal state reached when the expiry horizon
	// passes.
	InvitationExpired InvitationStatus = "expired"
)

// UserInvitation is an invitation for an email address to join a studio.
// Status transitions are pending -> accepted and pending -> expired; both
// are terminal.
type UserInvitation struct {
	ID        string           `db:"id"`
	Email     string           `db:"email"`
	StudioID  sql.NullString   `db:"studio_id"`
	Status    InvitationStatus `db:"status"`
	ExpiresAt time.Time        `db:"expires_at"`
	CreatedAt time.Time        `db:"created_at"`
	UpdatedAt time.Time        `db:"updated_at"`
}
