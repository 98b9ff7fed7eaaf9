// Package authz expresses authorization rules as composable, side-effect-free
// predicates over a snapshot of role state. Snapshots are loaded inside the
// same transaction as the mutation they gate, so a predicate never sees state
// older than the write it protects.
package authz

import (
	"github.com/lenskeep/lenskeep/pkg/proto"
	"github.com/lenskeep/lenskeep/pkg/role"
)

// Snapshot is the role state relevant to one authorization decision: the
// actor, the studio in scope, and the actor's standing within it.
type Snapshot struct {
	// Actor is the acting identity. A nil actor is unauthenticated and
	// evaluates false for every predicate.
	Actor *proto.Actor

	// StudioID is the studio in scope, if any.
	StudioID string

	// Role is the actor's role in the studio, or role.NoRole when the actor
	// has no membership row. Absence is never an implicit default role.
	Role role.Role

	// Client reports whether the actor has a client row for the studio.
	Client bool
}

// Predicate is a pure boolean condition over a snapshot.
type Predicate func(Snapshot) bool

// And returns a predicate that is true iff all given predicates are true.
func And(ps ...Predicate) Predicate {
	return func(s Snapshot) bool {
		for _, p := range ps {
			if !p(s) {
				return false
			}
		}
		return true
	}
}

// Or returns a predicate that is true iff any given predicate is true.
func Or(ps ...Predicate) Predicate {
	return func(s Snapshot) bool {
		for _, p := range ps {
			if p(s) {
				return true
			}
		}
		return false
	}
}

// Not negates a predicate. An unauthenticated actor still evaluates false:
// negation never grants access to a missing identity.
func Not(p Predicate) Predicate {
	return func(s Snapshot) bool {
		if s.Actor == nil {
			return false
		}
		return !p(s)
	}
}

// IsGlobalAdmin is true iff the actor's global user type is admin.
func IsGlobalAdmin(s Snapshot) bool {
	return s.Actor != nil && s.Actor.Type == role.TypeAdmin
}

// HasStudioRole returns a predicate that is true iff the actor holds exactly
// the given role in the studio. There is no admin bypass here; exact-role
// checks stay exact.
func HasStudioRole(r role.Role) Predicate {
	return func(s Snapshot) bool {
		return s.Actor != nil && s.Role == r
	}
}

// IsStudioMember is true iff the actor holds any role in the studio.
// Global admins satisfy the predicate without a membership row.
func IsStudioMember(s Snapshot) bool {
	if IsGlobalAdmin(s) {
		return true
	}
	return s.Actor != nil && s.Role > role.NoRole
}

// IsStudioManager is true iff the actor is a member with role owner or
// admin. Global admins satisfy the predicate without a membership row.
// Client standing never counts toward manager checks.
func IsStudioManager(s Snapshot) bool {
	if IsGlobalAdmin(s) {
		return true
	}
	return s.Actor != nil && s.Role.IsManager()
}

// IsStudioOwner is true iff the actor is a member with role owner.
// Global admins satisfy the predicate without a membership row.
func IsStudioOwner(s Snapshot) bool {
	if IsGlobalAdmin(s) {
		return true
	}
	return s.Actor != nil && s.Role == role.Owner
}

// IsStudioClient is true iff the actor has a client row for the studio.
// Global admins satisfy the predicate without a client row.
func IsStudioClient(s Snapshot) bool {
	if IsGlobalAdmin(s) {
		return true
	}
	return s.Actor != nil && s.Client
}
