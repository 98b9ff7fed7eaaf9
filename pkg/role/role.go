// Package role defines the global user types and studio-scoped roles used
// for authorization decisions.
package role

import (
	"encoding"
	"errors"
)

// Role is a user's standing within one studio.
type Role int // nolint: revive

const (
	// NoRole means the user holds no membership in the studio.
	NoRole Role = iota

	// Member is a regular studio member with no management privileges.
	Member

	// Admin can manage members, clients, and invitations for the studio.
	Admin

	// Owner has full control over the studio. A studio always retains at
	// least one owner.
	Owner
)

// String returns the string representation of the role.
func (r Role) String() string {
	switch r {
	case NoRole:
		return "none"
	case Member:
		return "member"
	case Admin:
		return "admin"
	case Owner:
		return "owner"
	default:
		return "unknown"
	}
}

// ParseRole parses a role string.
func ParseRole(s string) Role {
	switch s {
	case "none":
		return NoRole
	case "member":
		return Member
	case "admin":
		return Admin
	case "owner":
		return Owner
	default:
		return Role(-1)
	}
}

// Valid reports whether the role is an assignable membership role.
func (r Role) Valid() bool {
	return r >= Member && r <= Owner
}

// IsManager reports whether the role carries management privileges.
func (r Role) IsManager() bool {
	return r >= Admin
}

var (
	_ encoding.TextMarshaler   = Role(0)
	_ encoding.TextUnmarshaler = (*Role)(nil)
)

// ErrInvalidRole is returned when an invalid role is provided.
var ErrInvalidRole = errors.New("invalid role")

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	l := ParseRole(string(text))
	if l < 0 {
		return ErrInvalidRole
	}

	*r = l

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() (text []byte, err error) {
	return []byte(r.String()), nil
}
