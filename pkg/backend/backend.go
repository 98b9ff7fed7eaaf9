// Package backend implements the authorization-enforced mutation layer.
//
// Every privileged mutation opens one transaction, re-reads the role state it
// needs inside that transaction, evaluates the required predicate, applies
// the self-protection rule, performs the mutation, and appends an audit log
// entry. The pair commits as a single unit; on any failure nothing is
// written.
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lenskeep/lenskeep/pkg/authz"
	"github.com/lenskeep/lenskeep/pkg/config"
	"github.com/lenskeep/lenskeep/pkg/db"
	"github.com/lenskeep/lenskeep/pkg/proto"
	"github.com/lenskeep/lenskeep/pkg/role"
	"github.com/lenskeep/lenskeep/pkg/store"
)

// Backend is the Lenskeep backend that handles users, studios, memberships,
// clients, invitations, and the audit log.
type Backend struct {
	ctx    context.Context
	cfg    *config.Config
	db     *db.DB
	store  store.Store
	logger *log.Logger
}

// New returns a new Lenskeep backend.
func New(ctx context.Context, cfg *config.Config, db *db.DB, st store.Store) *Backend {
	logger := log.FromContext(ctx).WithPrefix("backend")
	b := &Backend{
		ctx:    ctx,
		cfg:    cfg,
		db:     db,
		store:  st,
		logger: logger,
	}

	return b
}

// snapshot loads the actor's standing within a studio using the given
// transaction, so the predicate decision reflects the state the mutation
// will commit against.
func (d *Backend) snapshot(ctx context.Context, tx *db.Tx, actor *proto.Actor, studioID string) (authz.Snapshot, error) {
	snap := authz.Snapshot{Actor: actor, StudioID: studioID}
	if actor == nil || studioID == "" {
		return snap, nil
	}

	m, err := d.store.GetMemberByStudioAndUser(ctx, tx, studioID, actor.ID)
	switch {
	case err == nil:
		snap.Role = m.Role
	case errors.Is(db.WrapError(err), db.ErrRecordNotFound):
		snap.Role = role.NoRole
	default:
		return snap, wrapStorageErr(err)
	}

	_, err = d.store.GetClientByStudioAndUser(ctx, tx, studioID, actor.ID)
	switch {
	case err == nil:
		snap.Client = true
	case errors.Is(db.WrapError(err), db.ErrRecordNotFound):
	default:
		return snap, wrapStorageErr(err)
	}

	return snap, nil
}

func isUnauthorized(err error) bool {
	return errors.Is(err, proto.ErrUnauthorized)
}

// wrapStorageErr tags an unclassified database error as a storage failure.
func wrapStorageErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s", proto.ErrStorage, err)
}

// notFoundOr maps a record-not-found database error to the given domain
// error and anything else to a storage failure.
func notFoundOr(err error, notFound error) error {
	if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
		return notFound
	}
	return wrapStorageErr(err)
}
