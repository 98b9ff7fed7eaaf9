package web

import (
	"errors"
	"net/http"

	"github.com/lenskeep/lenskeep/pkg/backend"
	"github.com/lenskeep/lenskeep/pkg/proto"
)

// ActorHeader carries the acting user's ID on API requests. Requests without
// the header run unauthenticated.
const ActorHeader = "X-Lenskeep-Actor"

// resolveActor resolves the acting user from the request header. A missing
// header yields a nil actor; an unknown user ID is an error.
func resolveActor(r *http.Request) (*proto.Actor, error) {
	id := r.Header.Get(ActorHeader)
	if id == "" {
		return nil, nil
	}

	ctx := r.Context()
	be := backend.FromContext(ctx)
	u, err := be.User(ctx, id)
	if err != nil {
		if errors.Is(err, proto.ErrUserNotFound) {
			return nil, proto.ErrUnauthorized
		}
		return nil, err
	}

	return &proto.Actor{ID: u.ID, Type: u.Type}, nil
}

// requireAdmin resolves the actor and rejects anyone but a global admin.
func requireAdmin(r *http.Request) (*proto.Actor, error) {
	actor, err := resolveActor(r)
	if err != nil {
		return nil, err
	}
	if actor == nil || !actor.IsAdmin() {
		return nil, proto.ErrUnauthorized
	}
	return actor, nil
}
