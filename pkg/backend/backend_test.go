package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lenskeep/lenskeep/pkg/config"
	"github.com/lenskeep/lenskeep/pkg/db"
	dbtest "github.com/lenskeep/lenskeep/pkg/test"
	"github.com/lenskeep/lenskeep/pkg/db/migrate"
	"github.com/lenskeep/lenskeep/pkg/db/models"
	"github.com/lenskeep/lenskeep/pkg/proto"
	"github.com/lenskeep/lenskeep/pkg/role"
	"github.com/lenskeep/lenskeep/pkg/store"
	"github.com/lenskeep/lenskeep/pkg/store/database"
	"github.com/matryer/is"
)

func setup(t *testing.T) (context.Context, *Backend) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Invitations.TokenSigningKey = "test-signing-key"
	ctx := config.WithContext(context.TODO(), cfg)

	dbx, err := dbtest.OpenSqlite(ctx, t)
	if err != nil {
		t.Fatal(err)
	}
	if err := migrate.Migrate(ctx, dbx); err != nil {
		t.Fatal(err)
	}

	st := database.New(ctx, dbx)
	ctx = store.WithContext(ctx, st)
	b := New(ctx, cfg, dbx, st)
	ctx = WithContext(ctx, b)
	return ctx, b
}

func seedUser(t *testing.T, ctx context.Context, b *Backend, email string, ut role.UserType) models.User {
	t.Helper()
	var u models.User
	err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		id := uuid.NewString()
		if err := b.store.CreateUser(ctx, tx, id, email, email, ut); err != nil {
			return err
		}
		var err error
		u, err = b.store.GetUserByID(ctx, tx, id)
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func seedStudio(t *testing.T, ctx context.Context, b *Backend, name string, owner models.User) models.Studio {
	t.Helper()
	var s models.Studio
	err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		id := uuid.NewString()
		if err := b.store.CreateStudio(ctx, tx, id, name); err != nil {
			return err
		}
		if err := b.store.AddMember(ctx, tx, id, owner.ID, role.Owner); err != nil {
			return err
		}
		var err error
		s, err = b.store.GetStudioByID(ctx, tx, id)
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func seedInvitation(t *testing.T, ctx context.Context, b *Backend, email, studioID string, expiresAt time.Time) models.UserInvitation {
	t.Helper()
	var inv models.UserInvitation
	err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		id := uuid.NewString()
		if err := b.store.CreateInvitation(ctx, tx, id, email, studioID, expiresAt); err != nil {
			return err
		}
		var err error
		inv, err = b.store.GetInvitationByID(ctx, tx, id)
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	return inv
}

func actorFor(u models.User) *proto.Actor {
	return &proto.Actor{ID: u.ID, Type: u.Type}
}

func TestAddStudioMemberAuthorization(t *testing.T) {
	ctx, b := setup(t)
	owner := seedUser(t, ctx, b, "owner@lenskeep.test", role.TypePhotographer)
	member := seedUser(t, ctx, b, "member@lenskeep.test", role.TypePhotographer)
	outsider := seedUser(t, ctx, b, "outsider@lenskeep.test", role.TypePhotographer)
	newcomer := seedUser(t, ctx, b, "new@lenskeep.test", role.TypePhotographer)
	admin := seedUser(t, ctx, b, "admin@lenskeep.test", role.TypeAdmin)
	studio := seedStudio(t, ctx, b, "aperture", owner)

	is := is.New(t)
	is.NoErr(b.AddStudioMember(ctx, actorFor(owner), studio.ID, member.ID, role.Member))

	// A plain member is not a manager.
	err := b.AddStudioMember(ctx, actorFor(member), studio.ID, newcomer.ID, role.Member)
	is.True(errors.Is(err, proto.ErrUnauthorized))

	// Non-members and unauthenticated callers are denied.
	err = b.AddStudioMember(ctx, actorFor(outsider), studio.ID, newcomer.ID, role.Member)
	is.True(errors.Is(err, proto.ErrUnauthorized))
	err = b.AddStudioMember(ctx, nil, studio.ID, newcomer.ID, role.Member)
	is.True(errors.Is(err, proto.ErrUnauthorized))

	// Global admins bypass the membership requirement.
	is.NoErr(b.AddStudioMember(ctx, actorFor(admin), studio.ID, newcomer.ID, role.Admin))

	r, err := b.StudioRole(ctx, studio.ID, newcomer.ID)
	is.NoErr(err)
	is.Equal(r, role.Admin)
}

func TestAddStudioMemberConflicts(t *testing.T) {
	ctx, b := setup(t)
	owner := seedUser(t, ctx, b, "owner@lenskeep.test", role.TypePhotographer)
	studio := seedStudio(t, ctx, b, "aperture", owner)

	is := is.New(t)
	err := b.AddStudioMember(ctx, actorFor(owner), studio.ID, owner.ID, role.Member)
	is.True(errors.Is(err, proto.ErrConflict))

	err = b.AddStudioMember(ctx, actorFor(owner), studio.ID, "no-such-user", role.Member)
	is.True(errors.Is(err, proto.ErrUserNotFound))

	err = b.AddStudioMember(ctx, actorFor(owner), "no-such-studio", owner.ID, role.Member)
	is.True(errors.Is(err, proto.ErrUnauthorized))
}

func TestLastOwnerGuard(t *testing.T) {
	ctx, b := setup(t)
	owner := seedUser(t, ctx, b, "owner@lenskeep.test", role.TypePhotographer)
	admin := seedUser(t, ctx, b, "admin@lenskeep.test", role.TypeAdmin)
	other := seedUser(t, ctx, b, "other@lenskeep.test", role.TypePhotographer)
	studio := seedStudio(t, ctx, b, "aperture", owner)

	is := is.New(t)

	// Demoting or removing the sole owner fails, even for a global admin.
	err := b.ChangeStudioMemberRole(ctx, actorFor(admin), studio.ID, owner.ID, role.Admin)
	is.True(errors.Is(err, proto.ErrConflict))
	err = b.RemoveStudioMember(ctx, actorFor(admin), studio.ID, owner.ID)
	is.True(errors.Is(err, proto.ErrConflict))

	// With a second owner in place both become possible.
	is.NoErr(b.AddStudioMember(ctx, actorFor(owner), studio.ID, other.ID, role.Owner))
	is.NoErr(b.ChangeStudioMemberRole(ctx, actorFor(admin), studio.ID, owner.ID, role.Member))

	r, err := b.StudioRole(ctx, studio.ID, owner.ID)
	is.NoErr(err)
	is.Equal(r, role.Member)
}

func TestSelfProtection(t *testing.T) {
	ctx, b := setup(t)
	owner := seedUser(t, ctx, b, "owner@lenskeep.test", role.TypePhotographer)
	coOwner := seedUser(t, ctx, b, "co@lenskeep.test", role.TypePhotographer)
	admin := seedUser(t, ctx, b, "admin@lenskeep.test", role.TypeAdmin)
	studio := seedStudio(t, ctx, b, "aperture", owner)

	is := is.New(t)
	is.NoErr(b.AddStudioMember(ctx, actorFor(owner), studio.ID, coOwner.ID, role.Owner))

	// Even with another owner present, a manager cannot strip their own
	// managing role.
	err := b.ChangeStudioMemberRole(ctx, actorFor(owner), studio.ID, owner.ID, role.Member)
	is.True(errors.Is(err, proto.ErrUnauthorized))
	err = b.RemoveStudioMember(ctx, actorFor(owner), studio.ID, owner.ID)
	is.True(errors.Is(err, proto.ErrUnauthorized))

	// Another manager can.
	is.NoErr(b.RemoveStudioMember(ctx, actorFor(coOwner), studio.ID, owner.ID))

	// Admins cannot delete their own account or change their own type.
	err = b.DeleteUser(ctx, actorFor(admin), admin.ID)
	is.True(errors.Is(err, proto.ErrUnauthorized))
	_, err = b.SetUserType(ctx, actorFor(admin), admin.ID, role.TypePhotographer)
	is.True(errors.Is(err, proto.ErrUnauthorized))
}

func TestSoleOwnerSelfDemotionIsConflict(t *testing.T) {
	ctx, b := setup(t)
	owner := seedUser(t, ctx, b, "owner@lenskeep.test", role.TypePhotographer)
	studio := seedStudio(t, ctx, b, "aperture", owner)

	// The owner-count guard fires before the self-protection rule.
	is := is.New(t)
	err := b.ChangeStudioMemberRole(ctx, actorFor(owner), studio.ID, owner.ID, role.Member)
	is.True(errors.Is(err, proto.ErrConflict))
}

func TestClientBelongsToOneStudio(t *testing.T) {
	ctx, b := setup(t)
	ownerA := seedUser(t, ctx, b, "a@lenskeep.test", role.TypePhotographer)
	ownerB := seedUser(t, ctx, b, "b@lenskeep.test", role.TypePhotographer)
	client := seedUser(t, ctx, b, "client@lenskeep.test", role.TypeClient)
	studioA := seedStudio(t, ctx, b, "aperture", ownerA)
	studioB := seedStudio(t, ctx, b, "bokeh", ownerB)

	is := is.New(t)
	is.NoErr(b.AddStudioClient(ctx, actorFor(ownerA), studioA.ID, client.ID))

	err := b.AddStudioClient(ctx, actorFor(ownerB), studioB.ID, client.ID)
	is.True(errors.Is(err, proto.ErrConflict))
	err = b.AddStudioClient(ctx, actorFor(ownerA), studioA.ID, client.ID)
	is.True(errors.Is(err, proto.ErrConflict))

	// After detaching, the client can join the other studio.
	is.NoErr(b.RemoveStudioClient(ctx, actorFor(ownerA), studioA.ID, client.ID))
	is.NoErr(b.AddStudioClient(ctx, actorFor(ownerB), studioB.ID, client.ID))
}

func TestClientIsNeverAManager(t *testing.T) {
	ctx, b := setup(t)
	owner := seedUser(t, ctx, b, "owner@lenskeep.test", role.TypePhotographer)
	client := seedUser(t, ctx, b, "client@lenskeep.test", role.TypeClient)
	other := seedUser(t, ctx, b, "other@lenskeep.test", role.TypePhotographer)
	studio := seedStudio(t, ctx, b, "aperture", owner)

	is := is.New(t)
	is.NoErr(b.AddStudioClient(ctx, actorFor(owner), studio.ID, client.ID))

	err := b.AddStudioMember(ctx, actorFor(client), studio.ID, other.ID, role.Member)
	is.True(errors.Is(err, proto.ErrUnauthorized))
	_, err = b.CreateInvitation(ctx, actorFor(client), studio.ID, "x@lenskeep.test")
	is.True(errors.Is(err, proto.ErrUnauthorized))
}

func TestInvitationLifecycle(t *testing.T) {
	ctx, b := setup(t)
	owner := seedUser(t, ctx, b, "owner@lenskeep.test", role.TypePhotographer)
	studio := seedStudio(t, ctx, b, "aperture", owner)

	is := is.New(t)
	inv, err := b.CreateInvitation(ctx, actorFor(owner), studio.ID, "Invitee@lenskeep.test")
	is.NoErr(err)
	is.Equal(inv.Status, models.InvitationPending)
	is.Equal(inv.Email, "invitee@lenskeep.test")

	// A repeat invite is an independent row with its own expiry.
	inv2, err := b.CreateInvitation(ctx, actorFor(owner), studio.ID, "invitee@lenskeep.test")
	is.NoErr(err)
	is.True(inv2.ID != inv.ID)
	is.Equal(inv2.Status, models.InvitationPending)

	u, err := b.AcceptInvitation(ctx, inv.ID, "Invitee")
	is.NoErr(err)
	is.Equal(u.Email, "invitee@lenskeep.test")
	is.Equal(u.Type, role.TypePhotographer)

	r, err := b.StudioRole(ctx, studio.ID, u.ID)
	is.NoErr(err)
	is.Equal(r, role.Member)

	got, err := b.Invitation(ctx, inv.ID)
	is.NoErr(err)
	is.Equal(got.Status, models.InvitationAccepted)

	// Accepted is terminal.
	_, err = b.AcceptInvitation(ctx, inv.ID, "Invitee")
	is.True(errors.Is(err, proto.ErrInvitationResolved))
}

func TestAcceptInvitationExistingUser(t *testing.T) {
	ctx, b := setup(t)
	owner := seedUser(t, ctx, b, "owner@lenskeep.test", role.TypePhotographer)
	existing := seedUser(t, ctx, b, "invitee@lenskeep.test", role.TypePhotographer)
	studio := seedStudio(t, ctx, b, "aperture", owner)

	is := is.New(t)
	inv, err := b.CreateInvitation(ctx, actorFor(owner), studio.ID, existing.Email)
	is.NoErr(err)

	u, err := b.AcceptInvitation(ctx, inv.ID, "ignored")
	is.NoErr(err)
	is.Equal(u.ID, existing.ID)

	users, err := b.Users(ctx)
	is.NoErr(err)
	is.Equal(len(users), 2)
}

func TestAcceptLapsedInvitation(t *testing.T) {
	ctx, b := setup(t)
	owner := seedUser(t, ctx, b, "owner@lenskeep.test", role.TypePhotographer)
	studio := seedStudio(t, ctx, b, "aperture", owner)
	inv := seedInvitation(t, ctx, b, "late@lenskeep.test", studio.ID, time.Now().UTC().Add(-time.Hour))

	is := is.New(t)
	_, err := b.AcceptInvitation(ctx, inv.ID, "Late")
	is.True(errors.Is(err, proto.ErrInvitationExpired))

	// The lapse is recorded even though the accept failed.
	got, err := b.Invitation(ctx, inv.ID)
	is.NoErr(err)
	is.Equal(got.Status, models.InvitationExpired)

	// No account was created for the loser.
	_, err = b.UserByEmail(ctx, "late@lenskeep.test")
	is.True(errors.Is(err, proto.ErrUserNotFound))
}

func TestSweepExpiredInvitations(t *testing.T) {
	ctx, b := setup(t)
	owner := seedUser(t, ctx, b, "owner@lenskeep.test", role.TypePhotographer)
	studio := seedStudio(t, ctx, b, "aperture", owner)

	stale1 := seedInvitation(t, ctx, b, "one@lenskeep.test", studio.ID, time.Now().UTC().Add(-time.Hour))
	stale2 := seedInvitation(t, ctx, b, "two@lenskeep.test", studio.ID, time.Now().UTC().Add(-time.Minute))
	fresh := seedInvitation(t, ctx, b, "three@lenskeep.test", studio.ID, time.Now().UTC().Add(time.Hour))

	is := is.New(t)
	swept, err := b.SweepExpiredInvitations(ctx)
	is.NoErr(err)
	is.Equal(len(swept), 2)

	for _, id := range []string{stale1.ID, stale2.ID} {
		got, err := b.Invitation(ctx, id)
		is.NoErr(err)
		is.Equal(got.Status, models.InvitationExpired)
	}
	got, err := b.Invitation(ctx, fresh.ID)
	is.NoErr(err)
	is.Equal(got.Status, models.InvitationPending)

	// The sweep is idempotent.
	swept, err = b.SweepExpiredInvitations(ctx)
	is.NoErr(err)
	is.Equal(len(swept), 0)

	// A swept invitation cannot be accepted anymore.
	_, err = b.AcceptInvitation(ctx, stale1.ID, "Too Late")
	is.True(errors.Is(err, proto.ErrInvitationExpired))
}

func TestInvitationToken(t *testing.T) {
	ctx, b := setup(t)
	owner := seedUser(t, ctx, b, "owner@lenskeep.test", role.TypePhotographer)
	studio := seedStudio(t, ctx, b, "aperture", owner)

	is := is.New(t)
	inv, err := b.CreateInvitation(ctx, actorFor(owner), studio.ID, "invitee@lenskeep.test")
	is.NoErr(err)

	token, err := b.InvitationToken(inv)
	is.NoErr(err)

	id, err := b.VerifyInvitationToken(token)
	is.NoErr(err)
	is.Equal(id, inv.ID)

	u, err := b.AcceptInvitationToken(ctx, token, "Invitee")
	is.NoErr(err)
	is.Equal(u.Email, "invitee@lenskeep.test")

	// A token signed with a different key is rejected.
	b.cfg.Invitations.TokenSigningKey = "another-key"
	_, err = b.VerifyInvitationToken(token)
	is.True(err != nil)
}

func TestDeleteUserCascades(t *testing.T) {
	ctx, b := setup(t)
	admin := seedUser(t, ctx, b, "admin@lenskeep.test", role.TypeAdmin)
	owner := seedUser(t, ctx, b, "owner@lenskeep.test", role.TypePhotographer)
	member := seedUser(t, ctx, b, "member@lenskeep.test", role.TypePhotographer)
	studio := seedStudio(t, ctx, b, "aperture", owner)

	is := is.New(t)
	is.NoErr(b.AddStudioMember(ctx, actorFor(owner), studio.ID, member.ID, role.Admin))

	// Deleting the sole owner of a studio is blocked.
	err := b.DeleteUser(ctx, actorFor(admin), owner.ID)
	is.True(errors.Is(err, proto.ErrConflict))

	is.NoErr(b.DeleteUser(ctx, actorFor(admin), member.ID))
	_, err = b.User(ctx, member.ID)
	is.True(errors.Is(err, proto.ErrUserNotFound))
	r, err := b.StudioRole(ctx, studio.ID, member.ID)
	is.NoErr(err)
	is.Equal(r, role.NoRole)

	// Only admins delete users.
	err = b.DeleteUser(ctx, actorFor(owner), admin.ID)
	is.True(errors.Is(err, proto.ErrUnauthorized))
}

func TestUpdateUser(t *testing.T) {
	ctx, b := setup(t)
	admin := seedUser(t, ctx, b, "admin@lenskeep.test", role.TypeAdmin)
	alice := seedUser(t, ctx, b, "alice@lenskeep.test", role.TypePhotographer)
	bob := seedUser(t, ctx, b, "bob@lenskeep.test", role.TypePhotographer)

	is := is.New(t)
	u, err := b.UpdateUser(ctx, actorFor(alice), alice.ID, "Alice A.")
	is.NoErr(err)
	is.Equal(u.DisplayName, "Alice A.")

	_, err = b.UpdateUser(ctx, actorFor(bob), alice.ID, "nope")
	is.True(errors.Is(err, proto.ErrUnauthorized))

	u, err = b.UpdateUser(ctx, actorFor(admin), alice.ID, "Alice Anders")
	is.NoErr(err)
	is.Equal(u.DisplayName, "Alice Anders")
}

func TestCreateStudio(t *testing.T) {
	ctx, b := setup(t)
	phot := seedUser(t, ctx, b, "phot@lenskeep.test", role.TypePhotographer)
	client := seedUser(t, ctx, b, "client@lenskeep.test", role.TypeClient)

	is := is.New(t)
	s, err := b.CreateStudio(ctx, actorFor(phot), "aperture")
	is.NoErr(err)
	is.Equal(s.Name, "aperture")

	r, err := b.StudioRole(ctx, s.ID, phot.ID)
	is.NoErr(err)
	is.Equal(r, role.Owner)

	_, err = b.CreateStudio(ctx, actorFor(client), "nope")
	is.True(errors.Is(err, proto.ErrUnauthorized))
	_, err = b.CreateStudio(ctx, nil, "nope")
	is.True(errors.Is(err, proto.ErrUnauthorized))
}

func TestAuditTrail(t *testing.T) {
	ctx, b := setup(t)
	owner := seedUser(t, ctx, b, "owner@lenskeep.test", role.TypePhotographer)
	member := seedUser(t, ctx, b, "member@lenskeep.test", role.TypePhotographer)
	outsider := seedUser(t, ctx, b, "outsider@lenskeep.test", role.TypePhotographer)
	studio := seedStudio(t, ctx, b, "aperture", owner)

	is := is.New(t)
	is.NoErr(b.AddStudioMember(ctx, actorFor(owner), studio.ID, member.ID, role.Member))

	entries, err := b.AuditLog(ctx, store.AuditLogFilter{EntityType: EntityMember, EntityID: member.ID})
	is.NoErr(err)
	is.Equal(len(entries), 1)
	is.Equal(entries[0].Action, models.AuditCreate)
	is.Equal(entries[0].ActorID, owner.ID)

	// Denied mutations leave no trace.
	err = b.RemoveStudioMember(ctx, actorFor(outsider), studio.ID, member.ID)
	is.True(errors.Is(err, proto.ErrUnauthorized))
	entries, err = b.AuditLog(ctx, store.AuditLogFilter{EntityType: EntityMember, EntityID: member.ID})
	is.NoErr(err)
	is.Equal(len(entries), 1)

	// Successful mutations append, in order.
	is.NoErr(b.RemoveStudioMember(ctx, actorFor(owner), studio.ID, member.ID))
	entries, err = b.AuditLog(ctx, store.AuditLogFilter{EntityType: EntityMember, EntityID: member.ID})
	is.NoErr(err)
	is.Equal(len(entries), 2)
	is.Equal(entries[1].Action, models.AuditDelete)
}

func TestAuditLogFilters(t *testing.T) {
	ctx, b := setup(t)
	owner := seedUser(t, ctx, b, "owner@lenskeep.test", role.TypePhotographer)
	studio := seedStudio(t, ctx, b, "aperture", owner)
	inv := seedInvitation(t, ctx, b, "stale@lenskeep.test", studio.ID, time.Now().UTC().Add(-time.Hour))

	is := is.New(t)
	swept, err := b.SweepExpiredInvitations(ctx)
	is.NoErr(err)
	is.Equal(swept, []string{inv.ID})

	entries, err := b.AuditLog(ctx, store.AuditLogFilter{ActorID: SystemActorID})
	is.NoErr(err)
	is.Equal(len(entries), 1)
	is.Equal(entries[0].EntityType, EntityInvitation)
	is.Equal(entries[0].EntityID, inv.ID)

	entries, err = b.AuditLog(ctx, store.AuditLogFilter{ActorID: "nobody"})
	is.NoErr(err)
	is.Equal(len(entries), 0)
}

func TestRoleMustBeAssignable(t *testing.T) {
	ctx, b := setup(t)
	owner := seedUser(t, ctx, b, "owner@lenskeep.test", role.TypePhotographer)
	member := seedUser(t, ctx, b, "member@lenskeep.test", role.TypePhotographer)
	ghost := seedUser(t, ctx, b, "ghost@lenskeep.test", role.TypePhotographer)
	studio := seedStudio(t, ctx, b, "aperture", owner)

	is := is.New(t)
	is.NoErr(b.AddStudioMember(ctx, actorFor(owner), studio.ID, member.ID, role.Member))

	// Only member, admin, and owner may be stored.
	err := b.AddStudioMember(ctx, actorFor(owner), studio.ID, ghost.ID, role.NoRole)
	is.True(errors.Is(err, proto.ErrConflict))
	err = b.AddStudioMember(ctx, actorFor(owner), studio.ID, ghost.ID, role.Role(42))
	is.True(errors.Is(err, proto.ErrConflict))

	r, err := b.StudioRole(ctx, studio.ID, ghost.ID)
	is.NoErr(err)
	is.Equal(r, role.NoRole)

	err = b.ChangeStudioMemberRole(ctx, actorFor(owner), studio.ID, member.ID, role.Role(42))
	is.True(errors.Is(err, proto.ErrConflict))
	err = b.ChangeStudioMemberRole(ctx, actorFor(owner), studio.ID, member.ID, role.NoRole)
	is.True(errors.Is(err, proto.ErrConflict))

	r, err = b.StudioRole(ctx, studio.ID, member.ID)
	is.NoErr(err)
	is.Equal(r, role.Member)
}

func TestStudioMemberAndClientUsers(t *testing.T) {
	ctx, b := setup(t)
	owner := seedUser(t, ctx, b, "owner@lenskeep.test", role.TypePhotographer)
	member := seedUser(t, ctx, b, "member@lenskeep.test", role.TypePhotographer)
	client := seedUser(t, ctx, b, "client@lenskeep.test", role.TypeClient)
	outsider := seedUser(t, ctx, b, "outsider@lenskeep.test", role.TypePhotographer)
	studio := seedStudio(t, ctx, b, "aperture", owner)

	is := is.New(t)
	is.NoErr(b.AddStudioMember(ctx, actorFor(owner), studio.ID, member.ID, role.Member))
	is.NoErr(b.AddStudioClient(ctx, actorFor(owner), studio.ID, client.ID))

	users, err := b.StudioMemberUsers(ctx, actorFor(member), studio.ID)
	is.NoErr(err)
	is.Equal(len(users), 2)

	clients, err := b.StudioClientUsers(ctx, actorFor(member), studio.ID)
	is.NoErr(err)
	is.Equal(len(clients), 1)
	is.Equal(clients[0].ID, client.ID)

	_, err = b.StudioMemberUsers(ctx, actorFor(outsider), studio.ID)
	is.True(errors.Is(err, proto.ErrUnauthorized))
	_, err = b.StudioClientUsers(ctx, nil, studio.ID)
	is.True(errors.Is(err, proto.ErrUnauthorized))
}
