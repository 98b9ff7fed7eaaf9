package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/lenskeep/lenskeep/pkg/authz"
	"github.com/lenskeep/lenskeep/pkg/db"
	"github.com/lenskeep/lenskeep/pkg/db/models"
	"github.com/lenskeep/lenskeep/pkg/proto"
	"github.com/lenskeep/lenskeep/pkg/role"
)

// StudioMembers returns the members of a studio. Visible to studio members
// and global admins.
func (d *Backend) StudioMembers(ctx context.Context, actor *proto.Actor, studioID string) ([]models.StudioMember, error) {
	var members []models.StudioMember
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

		members, err = d.store.ListMembersByStudio(ctx, tx, studioID)
		if err != nil {
			return wrapStorageErr(err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return members, nil
}

// StudioMemberUsers returns the member user accounts of a studio. Visible to
// studio members and global admins.
func (d *Backend) StudioMemberUsers(ctx context.Context, actor *proto.Actor, studioID string) ([]models.User, error) {
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

		users, err = d.store.ListMembersByStudioAsUsers(ctx, tx, studioID)
		if err != nil {
			return wrapStorageErr(err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return users, nil
}

// StudioRole returns the role a user holds within a studio, or role.NoRole
// when the user is not a member.
func (d *Backend) StudioRole(ctx context.Context, studioID string, userID string) (role.Role, error) {
	r := role.NoRole
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		m, err := d.store.GetMemberByStudioAndUser(ctx, tx, studioID, userID)
		if err != nil {
			if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
				return nil
			}
			return wrapStorageErr(err)
		}
		r = m.Role
		return nil
	}); err != nil {
		return role.NoRole, err
	}

	return r, nil
}

// AddStudioMember adds a user to a studio with a role. Requires a studio
// manager or a global admin.
func (d *Backend) AddStudioMember(ctx context.Context, actor *proto.Actor, studioID string, userID string, r role.Role) error {
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		snap, err := d.snapshot(ctx, tx, actor, studioID)
		if err != nil {
			return err
		}
		if !authz.IsStudioManager(snap) {
			return proto.ErrUnauthorized
		}

		if !r.Valid() {
			return fmt.Errorf("%w: invalid role %q", proto.ErrConflict, r)
		}

		if _, err := d.store.GetStudioByID(ctx, tx, studioID); err != nil {
			return notFoundOr(err, proto.ErrStudioNotFound)
		}
		if _, err := d.store.GetUserByID(ctx, tx, userID); err != nil {
			return notFoundOr(err, proto.ErrUserNotFound)
		}

		if err := d.store.AddMember(ctx, tx, studioID, userID, r); err != nil {
			if errors.Is(db.WrapError(err), db.ErrDuplicateKey) {
				return fmt.Errorf("%w: user is already a member", proto.ErrConflict)
			}
			return wrapStorageErr(err)
		}

		return d.audit(ctx, tx, actor.ID, models.AuditCreate, EntityMember, userID,
			fmt.Sprintf("added to studio %s as %s", studioID, r))
	})
	observe("add_studio_member", err)
	return err
}

// ChangeStudioMemberRole changes a member's role. Requires a studio manager
// or a global admin. The studio must retain at least one owner, and an actor
// may not demote themselves out of their last managing role.
func (d *Backend) ChangeStudioMemberRole(ctx context.Context, actor *proto.Actor, studioID string, userID string, r role.Role) error {
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		snap, err := d.snapshot(ctx, tx, actor, studioID)
		if err != nil {
			return err
		}
		if !authz.IsStudioManager(snap) {
			return proto.ErrUnauthorized
		}

		if !r.Valid() {
			return fmt.Errorf("%w: invalid role %q", proto.ErrConflict, r)
		}

		m, err := d.store.GetMemberByStudioAndUser(ctx, tx, studioID, userID)
		if err != nil {
			return notFoundOr(err, proto.ErrMemberNotFound)
		}
		if m.Role == r {
			return nil
		}

		if m.Role == role.Owner {
			// Lock the studio row so concurrent owner changes serialize, then
			// demote through the guarded statement. Zero rows means the studio
			// would be left without an owner.
			if err := d.store.TouchStudio(ctx, tx, studioID); err != nil {
				return wrapStorageErr(err)
			}
			demoted, err := d.store.DemoteOwner(ctx, tx, studioID, userID, r)
			if err != nil {
				return wrapStorageErr(err)
			}
			if !demoted {
				return fmt.Errorf("%w: studio must retain at least one owner", proto.ErrConflict)
			}
		}

		if actor.ID == userID && m.Role.IsManager() && !r.IsManager() {
			// Self-protection: a manager cannot demote themselves out of
			// their managing role. Applies to global admins too. Failing
			// here rolls back the demotion above.
			return proto.ErrUnauthorized
		}

		if m.Role != role.Owner {
			if err := d.store.SetMemberRole(ctx, tx, studioID, userID, r); err != nil {
				return wrapStorageErr(err)
			}
		}

		return d.audit(ctx, tx, actor.ID, models.AuditUpdate, EntityMember, userID,
			fmt.Sprintf("role in studio %s changed from %s to %s", studioID, m.Role, r))
	})
	observe("change_studio_member_role", err)
	return err
}

// RemoveStudioMember removes a member from a studio. Requires a studio
// manager or a global admin. The studio must retain at least one owner, and
// an actor may not remove their own membership while it is their last
// managing role.
func (d *Backend) RemoveStudioMember(ctx context.Context, actor *proto.Actor, studioID string, userID string) error {
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		snap, err := d.snapshot(ctx, tx, actor, studioID)
		if err != nil {
			return err
		}
		if !authz.IsStudioManager(snap) {
			return proto.ErrUnauthorized
		}

		m, err := d.store.GetMemberByStudioAndUser(ctx, tx, studioID, userID)
		if err != nil {
			return notFoundOr(err, proto.ErrMemberNotFound)
		}

		if m.Role == role.Owner {
			// Lock the studio row so concurrent owner changes serialize, then
			// remove through the guarded statement. Zero rows means the studio
			// would be left without an owner.
			if err := d.store.TouchStudio(ctx, tx, studioID); err != nil {
				return wrapStorageErr(err)
			}
			removed, err := d.store.RemoveOwner(ctx, tx, studioID, userID)
			if err != nil {
				return wrapStorageErr(err)
			}
			if !removed {
				return fmt.Errorf("%w: studio must retain at least one owner", proto.ErrConflict)
			}
			if actor.ID == userID {
				// Self-protection: a manager cannot remove their own
				// membership. Applies to global admins too. Failing here
				// rolls back the removal above.
				return proto.ErrUnauthorized
			}
		} else {
			if actor.ID == userID && m.Role.IsManager() {
				// Self-protection: a manager cannot remove their own membership.
				// Applies to global admins too.
				return proto.ErrUnauthorized
			}
			if err := d.store.RemoveMember(ctx, tx, studioID, userID); err != nil {
				return wrapStorageErr(err)
			}
		}

		return d.audit(ctx, tx, actor.ID, models.AuditDelete, EntityMember, userID,
			fmt.Sprintf("removed from studio %s", studioID))
	})
	observe("remove_studio_member", err)
	return err
}
