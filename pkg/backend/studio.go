package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lenskeep/lenskeep/pkg/db"
	"github.com/lenskeep/lenskeep/pkg/db/models"
	"github.com/lenskeep/lenskeep/pkg/proto"
	"github.com/lenskeep/lenskeep/pkg/role"
)

// Studio returns the studio with the given ID.
func (d *Backend) Studio(ctx context.Context, id string) (models.Studio, error) {
	var m models.Studio
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		m, err = d.store.GetStudioByID(ctx, tx, id)
		return err
	}); err != nil {
		return models.Studio{}, notFoundOr(err, proto.ErrStudioNotFound)
	}

	return m, nil
}

// Studios returns all studios.
func (d *Backend) Studios(ctx context.Context) ([]models.Studio, error) {
	var m []models.Studio
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		m, err = d.store.GetAllStudios(ctx, tx)
		return err
	}); err != nil {
		return nil, wrapStorageErr(err)
	}

	return m, nil
}

// CreateStudio creates a studio with the actor as its initial owner.
// Photographers and global admins may create studios.
func (d *Backend) CreateStudio(ctx context.Context, actor *proto.Actor, name string) (models.Studio, error) {
	var m models.Studio
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if actor == nil || actor.Type == role.TypeClient {
			return proto.ErrUnauthorized
		}

		if _, err := d.store.GetUserByID(ctx, tx, actor.ID); err != nil {
			return notFoundOr(err, proto.ErrUserNotFound)
		}

		id := uuid.NewString()
		if err := d.store.CreateStudio(ctx, tx, id, name); err != nil {
			if errors.Is(db.WrapError(err), db.ErrDuplicateKey) {
				return fmt.Errorf("%w: studio name already taken", proto.ErrConflict)
			}
			return wrapStorageErr(err)
		}

		if err := d.store.AddMember(ctx, tx, id, actor.ID, role.Owner); err != nil {
			return wrapStorageErr(err)
		}

		var err error
		m, err = d.store.GetStudioByID(ctx, tx, id)
		if err != nil {
			return wrapStorageErr(err)
		}

		if err := d.audit(ctx, tx, actor.ID, models.AuditCreate, EntityStudio, id, "studio "+name+" created"); err != nil {
			return err
		}

		return d.audit(ctx, tx, actor.ID, models.AuditCreate, EntityMember, actor.ID,
			fmt.Sprintf("added to studio %s as %s", id, role.Owner))
	})
	observe("create_studio", err)
	if err != nil {
		return models.Studio{}, err
	}

	return m, nil
}
