// Package proto defines the domain-facing types and errors shared across the
// Lenskeep core.
package proto

import (
	"context"

	"github.com/lenskeep/lenskeep/pkg/role"
)

// Actor is the already-authenticated identity on whose behalf a call is made.
// Every core operation receives the actor explicitly; the core never reads
// ambient session state.
type Actor struct {
	// ID is the acting user's ID.
	ID string

	// Type is the acting user's global user type.
	Type role.UserType
}

// IsAdmin returns whether the actor is a global admin.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Type == role.TypeAdmin
}

// ContextKeyActor is the context key for the actor.
var ContextKeyActor = &struct{ string }{"actor"}

// ActorFromContext returns the actor from the context, or nil if the call is
// unauthenticated.
func ActorFromContext(ctx context.Context) *Actor {
	if a, ok := ctx.Value(ContextKeyActor).(*Actor); ok {
		return a
	}
	return nil
}

// WithActorContext returns a new context with the actor attached.
func WithActorContext(ctx context.Context, a *Actor) context.Context {
	return context.WithValue(ctx, ContextKeyActor, a)
}
