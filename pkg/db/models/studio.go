package models

import (
	"time"

	"github.com/lenskeep/lenskeep/pkg/role"
)

// Studio represents a tenant studio.
type Studio struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// StudioMember relates a user to a studio with a role.
// A user holds at most one role per studio.
type StudioMember struct {
	StudioID  string    `db:"studio_id"`
	UserID    string    `db:"user_id"`
	Role      role.Role `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// StudioClient relates a user-as-client to exactly one studio.
type StudioClient struct {
	StudioID  string    `db:"studio_id"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}
