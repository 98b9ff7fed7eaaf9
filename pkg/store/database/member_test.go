package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lenskeep/lenskeep/pkg/db"
	"github.com/lenskeep/lenskeep/pkg/role"
	"github.com/matryer/is"
)

func TestOwnerWritesAreGuarded(t *testing.T) {
	ctx, dbx, st := setupStore(t)
	is := is.New(t)

	studio := uuid.NewString()
	alice := uuid.NewString()
	bob := uuid.NewString()
	err := dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		if err := st.CreateStudio(ctx, tx, studio, "aperture"); err != nil {
			return err
		}
		if err := st.CreateUser(ctx, tx, alice, "alice@b.test", "alice", role.TypePhotographer); err != nil {
			return err
		}
		if err := st.CreateUser(ctx, tx, bob, "bob@b.test", "bob", role.TypePhotographer); err != nil {
			return err
		}
		return st.AddMember(ctx, tx, studio, alice, role.Owner)
	})
	is.NoErr(err)

	// The sole owner cannot be demoted or removed; the guard is evaluated by
	// the statement itself, not by a separate count.
	err = dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		demoted, err := st.DemoteOwner(ctx, tx, studio, alice, role.Member)
		is.NoErr(err)
		is.True(!demoted)

		removed, err := st.RemoveOwner(ctx, tx, studio, alice)
		is.NoErr(err)
		is.True(!removed)

		m, err := st.GetMemberByStudioAndUser(ctx, tx, studio, alice)
		is.NoErr(err)
		is.Equal(m.Role, role.Owner)
		return nil
	})
	is.NoErr(err)

	// With a second owner the write goes through, and the studio is back to
	// one unremovable owner afterwards.
	err = dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		if err := st.AddMember(ctx, tx, studio, bob, role.Owner); err != nil {
			return err
		}

		removed, err := st.RemoveOwner(ctx, tx, studio, alice)
		is.NoErr(err)
		is.True(removed)

		demoted, err := st.DemoteOwner(ctx, tx, studio, bob, role.Admin)
		is.NoErr(err)
		is.True(!demoted)

		owners, err := st.CountStudioOwners(ctx, tx, studio)
		is.NoErr(err)
		is.Equal(owners, 1)
		return nil
	})
	is.NoErr(err)
}

func TestDemoteOwnerOnlyTouchesOwners(t *testing.T) {
	ctx, dbx, st := setupStore(t)
	is := is.New(t)

	studio := uuid.NewString()
	owner := uuid.NewString()
	admin := uuid.NewString()
	err := dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		if err := st.CreateStudio(ctx, tx, studio, "aperture"); err != nil {
			return err
		}
		if err := st.CreateUser(ctx, tx, owner, "owner@b.test", "owner", role.TypePhotographer); err != nil {
			return err
		}
		if err := st.CreateUser(ctx, tx, admin, "admin@b.test", "admin", role.TypePhotographer); err != nil {
			return err
		}
		if err := st.AddMember(ctx, tx, studio, owner, role.Owner); err != nil {
			return err
		}
		return st.AddMember(ctx, tx, studio, admin, role.Admin)
	})
	is.NoErr(err)

	err = dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		demoted, err := st.DemoteOwner(ctx, tx, studio, admin, role.Member)
		is.NoErr(err)
		is.True(!demoted)

		m, err := st.GetMemberByStudioAndUser(ctx, tx, studio, admin)
		is.NoErr(err)
		is.Equal(m.Role, role.Admin)
		return nil
	})
	is.NoErr(err)
}
