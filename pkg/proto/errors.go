package proto

import (
	"errors"
)

var (
	// ErrUnauthorized is returned when the actor is not authorized to perform an action.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrStudioNotFound is returned when a studio is not found.
	ErrStudioNotFound = errors.New("studio not found")
	// ErrMemberNotFound is returned when a studio member is not found.
	ErrMemberNotFound = errors.New("studio member not found")
	// ErrClientNotFound is returned when a studio client is not found.
	ErrClientNotFound = errors.New("studio client not found")
	// ErrInvitationNotFound is returned when an invitation is not found.
	ErrInvitationNotFound = errors.New("invitation not found")
	// ErrInvitationResolved is returned when an invitation has already left
	// the pending state.
	ErrInvitationResolved = errors.New("invitation already resolved")
	// ErrInvitationExpired is returned when an invitation is past its expiry.
	ErrInvitationExpired = errors.New("invitation expired")
	// ErrConflict is returned when a mutation would violate a model
	// invariant, such as removing the last owner of a studio or adding a
	// duplicate membership.
	ErrConflict = errors.New("conflict")
	// ErrStorage is returned when the underlying transaction or commit
	// fails. It is not interpreted further by the core.
	ErrStorage = errors.New("storage failure")
)
