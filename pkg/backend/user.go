package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lenskeep/lenskeep/pkg/authz"
	"github.com/lenskeep/lenskeep/pkg/db"
	"github.com/lenskeep/lenskeep/pkg/db/models"
	"github.com/lenskeep/lenskeep/pkg/proto"
	"github.com/lenskeep/lenskeep/pkg/role"
)

// User returns the user with the given ID.
func (d *Backend) User(ctx context.Context, id string) (models.User, error) {
	var m models.User
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		m, err = d.store.GetUserByID(ctx, tx, id)
		return err
	}); err != nil {
		return models.User{}, notFoundOr(err, proto.ErrUserNotFound)
	}

	return m, nil
}

// UserByEmail returns the user with the given email.
func (d *Backend) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var m models.User
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		m, err = d.store.FindUserByEmail(ctx, tx, email)
		return err
	}); err != nil {
		return models.User{}, notFoundOr(err, proto.ErrUserNotFound)
	}

	return m, nil
}

// Users returns all users.
func (d *Backend) Users(ctx context.Context) ([]models.User, error) {
	var m []models.User
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		m, err = d.store.GetAllUsers(ctx, tx)
		return err
	}); err != nil {
		return nil, wrapStorageErr(err)
	}

	return m, nil
}

// CreateUser creates a user. Only global admins may provision users
// directly; everyone else arrives through invitation acceptance.
func (d *Backend) CreateUser(ctx context.Context, actor *proto.Actor, email string, displayName string, userType role.UserType) (models.User, error) {
	var m models.User
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		snap, err := d.snapshot(ctx, tx, actor, "")
		if err != nil {
			return err
		}
		if !authz.IsGlobalAdmin(snap) {
			return proto.ErrUnauthorized
		}

		id := uuid.NewString()
		if err := d.store.CreateUser(ctx, tx, id, email, displayName, userType); err != nil {
			if errors.Is(db.WrapError(err), db.ErrDuplicateKey) {
				return fmt.Errorf("%w: email already registered", proto.ErrConflict)
			}
			return wrapStorageErr(err)
		}

		m, err = d.store.GetUserByID(ctx, tx, id)
		if err != nil {
			return wrapStorageErr(err)
		}

		return d.audit(ctx, tx, actor.ID, models.AuditCreate, EntityUser, id, "email "+strings.ToLower(email))
	})
	observe("create_user", err)
	if err != nil {
		return models.User{}, err
	}

	return m, nil
}

// UpdateUser updates a user's display name. Users may edit themselves;
// global admins may edit anyone.
func (d *Backend) UpdateUser(ctx context.Context, actor *proto.Actor, userID string, displayName string) (models.User, error) {
	var m models.User
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		snap, err := d.snapshot(ctx, tx, actor, "")
		if err != nil {
			return err
		}
		if actor == nil || (!authz.IsGlobalAdmin(snap) && actor.ID != userID) {
			return proto.ErrUnauthorized
		}

		if _, err := d.store.GetUserByID(ctx, tx, userID); err != nil {
			return notFoundOr(err, proto.ErrUserNotFound)
		}

		if err := d.store.SetUserDisplayName(ctx, tx, userID, displayName); err != nil {
			return wrapStorageErr(err)
		}

		m, err = d.store.GetUserByID(ctx, tx, userID)
		if err != nil {
			return wrapStorageErr(err)
		}

		return d.audit(ctx, tx, actor.ID, models.AuditUpdate, EntityUser, userID, "display name changed")
	})
	observe("update_user", err)
	if err != nil {
		return models.User{}, err
	}

	return m, nil
}

// SetUserType changes a user's global type. Only global admins may do this,
// and never on themselves.
func (d *Backend) SetUserType(ctx context.Context, actor *proto.Actor, userID string, userType role.UserType) (models.User, error) {
	var m models.User
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		snap, err := d.snapshot(ctx, tx, actor, "")
		if err != nil {
			return err
		}
		if !authz.IsGlobalAdmin(snap) {
			return proto.ErrUnauthorized
		}
		if actor.ID == userID {
			// Self-protection: an admin cannot change their own type.
			return proto.ErrUnauthorized
		}

		if _, err := d.store.GetUserByID(ctx, tx, userID); err != nil {
			return notFoundOr(err, proto.ErrUserNotFound)
		}

		if err := d.store.SetUserType(ctx, tx, userID, userType); err != nil {
			return wrapStorageErr(err)
		}

		m, err = d.store.GetUserByID(ctx, tx, userID)
		if err != nil {
			return wrapStorageErr(err)
		}

		return d.audit(ctx, tx, actor.ID, models.AuditUpdate, EntityUser, userID, "user type set to "+userType.String())
	})
	observe("set_user_type", err)
	if err != nil {
		return models.User{}, err
	}

	return m, nil
}

// DeleteUser deletes a user along with their memberships and client rows.
// Only global admins may delete users, never themselves, and not while the
// user is the sole owner of any studio.
func (d *Backend) DeleteUser(ctx context.Context, actor *proto.Actor, userID string) error {
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		snap, err := d.snapshot(ctx, tx, actor, "")
		if err != nil {
			return err
		}
		if !authz.IsGlobalAdmin(snap) {
			return proto.ErrUnauthorized
		}
		if actor.ID == userID {
			// Self-protection: an actor may never delete their own account.
			return proto.ErrUnauthorized
		}

		if _, err := d.store.GetUserByID(ctx, tx, userID); err != nil {
			return notFoundOr(err, proto.ErrUserNotFound)
		}

		memberships, err := d.store.ListMembershipsByUser(ctx, tx, userID)
		if err != nil {
			return wrapStorageErr(err)
		}

		for _, m := range memberships {
			if m.Role == role.Owner {
				// Owner rows go through the guarded statement after locking
				// the studio row, so a concurrent owner change cannot leave
				// the studio without an owner.
				if err := d.store.TouchStudio(ctx, tx, m.StudioID); err != nil {
					return wrapStorageErr(err)
				}
				removed, err := d.store.RemoveOwner(ctx, tx, m.StudioID, userID)
				if err != nil {
					return wrapStorageErr(err)
				}
				if !removed {
					return fmt.Errorf("%w: user is the sole owner of studio %s", proto.ErrConflict, m.StudioID)
				}
				continue
			}

			if err := d.store.RemoveMember(ctx, tx, m.StudioID, userID); err != nil {
				return wrapStorageErr(err)
			}
		}

		if c, err := d.store.GetClientByUser(ctx, tx, userID); err == nil {
			if err := d.store.RemoveClient(ctx, tx, c.StudioID, userID); err != nil {
				return wrapStorageErr(err)
			}
		} else if !errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return wrapStorageErr(err)
		}

		if err := d.store.DeleteUserByID(ctx, tx, userID); err != nil {
			return wrapStorageErr(err)
		}

		return d.audit(ctx, tx, actor.ID, models.AuditDelete, EntityUser, userID, "user deleted")
	})
	observe("delete_user", err)
	return err
}
