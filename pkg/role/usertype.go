package role

import (
	"encoding"
	"errors"
)

// UserType is a user's global account type.
type UserType int // nolint: revive

const (
	// TypeClient is an end client of a studio.
	TypeClient UserType = iota

	// TypePhotographer can onboard and run studios.
	TypePhotographer

	// TypeAdmin is a global administrator. Global admins satisfy every
	// studio-scoped manager predicate.
	TypeAdmin
)

// String returns the string representation of the user type.
func (t UserType) String() string {
	switch t {
	case TypeClient:
		return "client"
	case TypePhotographer:
		return "photographer"
	case TypeAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// ParseUserType parses a user type string.
func ParseUserType(s string) UserType {
	switch s {
	case "client":
		return TypeClient
	case "photographer":
		return TypePhotographer
	case "admin":
		return TypeAdmin
	default:
		return UserType(-1)
	}
}

var (
	_ encoding.TextMarshaler   = UserType(0)
	_ encoding.TextUnmarshaler = (*UserType)(nil)
)

// ErrInvalidUserType is returned when an invalid user type is provided.
var ErrInvalidUserType = errors.New("invalid user type")

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *UserType) UnmarshalText(text []byte) error {
	l := ParseUserType(string(text))
	if l < 0 {
		return ErrInvalidUserType
	}

	*t = l

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t UserType) MarshalText() (text []byte, err error) {
	return []byte(t.String()), nil
}
