package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/lenskeep/lenskeep/pkg/authz"
	"github.com/lenskeep/lenskeep/pkg/db"
	"github.com/lenskeep/lenskeep/pkg/db/models"
	"github.com/lenskeep/lenskeep/pkg/proto"
)

// StudioClients returns the clients attached to a studio. Visible to studio
// members and global admins.
func (d *Backend) StudioClients(ctx context.Context, actor *proto.Actor, studioID string) ([]models.StudioClient, error) {
	var clients []models.StudioClient
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		snap, err := d.snapshot(ctx, tx, actor, studioID)
		if err != nil {
			return err
		}
		if !authz.IsStudioMember(snap) {
			return proto.ErrUnauthorized
		}

		if _, err := d.store.GetStudioByID(ctx, tx, studioID); err != nil {
			return notFoundOr(err, proto.ErrStudioNotFound)
		}

		clients, err = d.store.ListClientsByStudio(ctx, tx, studioID)
		if err != nil {
			return wrapStorageErr(err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return clients, nil
}

// StudioClientUsers returns the client user accounts attached to a studio.
// Visible to studio members and global admins.
func (d *Backend) StudioClientUsers(ctx context.Context, actor *proto.Actor, studioID string) ([]models.User, error) {
	var users []models.User
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		snap, err := d.snapshot(ctx, tx, actor, studioID)
		if err != nil {
			return err
		}
		if !authz.IsStudioMember(snap) {
			return proto.ErrUnauthorized
		}

		if _, err := d.store.GetStudioByID(ctx, tx, studioID); err != nil {
			return notFoundOr(err, proto.ErrStudioNotFound)
		}

		users, err = d.store.ListClientsByStudioAsUsers(ctx, tx, studioID)
		if err != nil {
			return wrapStorageErr(err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return users, nil
}

// AddStudioClient attaches a user to a studio as a client. Requires a studio
// manager or a global admin. A user can be a client of at most one studio.
func (d *Backend) AddStudioClient(ctx context.Context, actor *proto.Actor, studioID string, userID string) error {
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		snap, err := d.snapshot(ctx, tx, actor, studioID)
		if err != nil {
			return err
		}
		if !authz.IsStudioManager(snap) {
			return proto.ErrUnauthorized
		}

		if _, err := d.store.GetStudioByID(ctx, tx, studioID); err != nil {
			return notFoundOr(err, proto.ErrStudioNotFound)
		}
		if _, err := d.store.GetUserByID(ctx, tx, userID); err != nil {
			return notFoundOr(err, proto.ErrUserNotFound)
		}

		if c, err := d.store.GetClientByUser(ctx, tx, userID); err == nil {
			if c.StudioID == studioID {
				return fmt.Errorf("%w: user is already a client of this studio", proto.ErrConflict)
			}
			return fmt.Errorf("%w: user is already a client of studio %s", proto.ErrConflict, c.StudioID)
		} else if !errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return wrapStorageErr(err)
		}

		if err := d.store.AddClient(ctx, tx, studioID, userID); err != nil {
			if errors.Is(db.WrapError(err), db.ErrDuplicateKey) {
				return fmt.Errorf("%w: user is already a client", proto.ErrConflict)
			}
			return wrapStorageErr(err)
		}

		return d.audit(ctx, tx, actor.ID, models.AuditCreate, EntityClient, userID,
			fmt.Sprintf("attached to studio %s as client", studioID))
	})
	observe("add_studio_client", err)
	return err
}

// RemoveStudioClient detaches a client from a studio. Requires a studio
// manager or a global admin.
func (d *Backend) RemoveStudioClient(ctx context.Context, actor *proto.Actor, studioID string, userID string) error {
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		snap, err := d.snapshot(ctx, tx, actor, studioID)
		if err != nil {
			return err
		}
		if !authz.IsStudioManager(snap) {
			return proto.ErrUnauthorized
		}

		if _, err := d.store.GetClientByStudioAndUser(ctx, tx, studioID, userID); err != nil {
			return notFoundOr(err, proto.ErrClientNotFound)
		}

		if err := d.store.RemoveClient(ctx, tx, studioID, userID); err != nil {
			return wrapStorageErr(err)
		}

		return d.audit(ctx, tx, actor.ID, models.AuditDelete, EntityClient, userID,
			fmt.Sprintf("detached from studio %s", studioID))
	})
	observe("remove_studio_client", err)
	return err
}
