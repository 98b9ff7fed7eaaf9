package models

import (
	"time"

	"github.com/lenskeep/lenskeep/pkg/role"
)

// User represents a user.
type User struct {
	ID          string        `db:"id"`
	Email       string        `db:"email"`
	DisplayName string        `db:"display_name"`
	Type        role.UserType `db:"user_type"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}
