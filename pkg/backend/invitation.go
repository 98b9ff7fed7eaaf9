package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lenskeep/lenskeep/pkg/authz"
	"github.com/lenskeep/lenskeep/pkg/db"
	"github.com/lenskeep/lenskeep/pkg/db/models"
	"github.com/lenskeep/lenskeep/pkg/proto"
	"github.com/lenskeep/lenskeep/pkg/role"
)

// InvitationTTL is how long an invitation stays pending before it expires.
const InvitationTTL = 24 * time.Hour

// Invitation returns the invitation with the given ID.
func (d *Backend) Invitation(ctx context.Context, id string) (models.UserInvitation, error) {
	var m models.UserInvitation
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		m, err = d.store.GetInvitationByID(ctx, tx, id)
		return err
	}); err != nil {
		return models.UserInvitation{}, notFoundOr(err, proto.ErrInvitationNotFound)
	}

	return m, nil
}

// StudioInvitations returns the invitations issued for a studio. Requires a
// studio manager or a global admin.
func (d *Backend) StudioInvitations(ctx context.Context, actor *proto.Actor, studioID string) ([]models.UserInvitation, error) {
	var invs []models.UserInvitation
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
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

		invs, err = d.store.ListInvitationsByStudio(ctx, tx, studioID)
		if err != nil {
			return wrapStorageErr(err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return invs, nil
}

// CreateInvitation invites an email address to join a studio as a member.
// Requires a studio manager or a global admin. The invitation expires
// InvitationTTL after creation.
func (d *Backend) CreateInvitation(ctx context.Context, actor *proto.Actor, studioID string, email string) (models.UserInvitation, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var m models.UserInvitation
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

		// Repeat invites for the same email are independent rows, each with
		// a fresh expiry. There is no merge.
		id := uuid.NewString()
		expiresAt := time.Now().UTC().Add(InvitationTTL)
		if err := d.store.CreateInvitation(ctx, tx, id, email, studioID, expiresAt); err != nil {
			return wrapStorageErr(err)
		}

		m, err = d.store.GetInvitationByID(ctx, tx, id)
		if err != nil {
			return wrapStorageErr(err)
		}

		return d.audit(ctx, tx, actor.ID, models.AuditCreate, EntityInvitation, id,
			fmt.Sprintf("invited %s to studio %s", email, studioID))
	})
	observe("create_invitation", err)
	if err != nil {
		return models.UserInvitation{}, err
	}

	return m, nil
}

// AcceptInvitation registers the invited email against the invitation and
// adds the user to the studio as a member. The user is created when no
// account for the email exists yet. Accepting is unauthenticated; the
// invitation itself is the credential.
//
// The status transition is conditional on the row still being pending, so a
// concurrent sweep and accept cannot both win.
func (d *Backend) AcceptInvitation(ctx context.Context, id string, displayName string) (models.User, error) {
	var u models.User
	var lapsed bool
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		inv, err := d.store.GetInvitationByID(ctx, tx, id)
		if err != nil {
			return notFoundOr(err, proto.ErrInvitationNotFound)
		}

		switch inv.Status {
		case models.InvitationAccepted:
			return proto.ErrInvitationResolved
		case models.InvitationExpired:
			return proto.ErrInvitationExpired
		}

		if time.Now().UTC().After(inv.ExpiresAt) {
			// Lazy expiry: the sweep has not caught this row yet. Mark it
			// and commit, then surface the expiry to the caller.
			swept, err := d.store.MarkInvitationExpired(ctx, tx, id)
			if err != nil {
				return wrapStorageErr(err)
			}
			if swept {
				if err := d.audit(ctx, tx, SystemActorID, models.AuditUpdate, EntityInvitation, id, "invitation expired"); err != nil {
					return err
				}
			}
			lapsed = true
			return nil
		}

		won, err := d.store.MarkInvitationAccepted(ctx, tx, id)
		if err != nil {
			return wrapStorageErr(err)
		}
		if !won {
			return proto.ErrInvitationResolved
		}

		u, err = d.store.FindUserByEmail(ctx, tx, inv.Email)
		created := false
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			userID := uuid.NewString()
			if err := d.store.CreateUser(ctx, tx, userID, inv.Email, displayName, role.TypePhotographer); err != nil {
				return wrapStorageErr(err)
			}
			u, err = d.store.GetUserByID(ctx, tx, userID)
			if err != nil {
				return wrapStorageErr(err)
			}
			created = true
		} else if err != nil {
			return wrapStorageErr(err)
		}

		if created {
			if err := d.audit(ctx, tx, u.ID, models.AuditCreate, EntityUser, u.ID, "registered via invitation "+id); err != nil {
				return err
			}
		}

		if inv.StudioID.Valid {
			if err := d.store.AddMember(ctx, tx, inv.StudioID.String, u.ID, role.Member); err != nil {
				if errors.Is(db.WrapError(err), db.ErrDuplicateKey) {
					return fmt.Errorf("%w: user is already a member", proto.ErrConflict)
				}
				return wrapStorageErr(err)
			}
			if err := d.audit(ctx, tx, u.ID, models.AuditCreate, EntityMember, u.ID,
				fmt.Sprintf("added to studio %s as %s", inv.StudioID.String, role.Member)); err != nil {
				return err
			}
		}

		return d.audit(ctx, tx, u.ID, models.AuditUpdate, EntityInvitation, id, "invitation accepted")
	})
	observe("accept_invitation", err)
	if err != nil {
		return models.User{}, err
	}
	if lapsed {
		return models.User{}, proto.ErrInvitationExpired
	}

	return u, nil
}

// SweepExpiredInvitations transitions pending invitations past their expiry
// horizon to expired and returns the IDs of the rows swept. The sweep is
// idempotent: rows that already resolved are skipped by the conditional
// update.
func (d *Backend) SweepExpiredInvitations(ctx context.Context) ([]string, error) {
	var swept []string
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		pending, err := d.store.ListExpiredPendingInvitations(ctx, tx, time.Now().UTC())
		if err != nil {
			return wrapStorageErr(err)
		}

		for _, inv := range pending {
			won, err := d.store.MarkInvitationExpired(ctx, tx, inv.ID)
			if err != nil {
				return wrapStorageErr(err)
			}
			if !won {
				continue
			}
			if err := d.audit(ctx, tx, SystemActorID, models.AuditUpdate, EntityInvitation, inv.ID, "invitation expired"); err != nil {
				return err
			}
			swept = append(swept, inv.ID)
		}

		return nil
	})
	observe("sweep_expired_invitations", err)
	if err != nil {
		return nil, err
	}

	if len(swept) > 0 {
		invitationsSweptTotal.Add(float64(len(swept)))
		d.logger.Info("swept expired invitations", "count", len(swept))
	}

	return swept, nil
}
