package cmd

import (
	"context"
	"testing"

	"github.com/lenskeep/lenskeep/pkg/backend"
	"github.com/lenskeep/lenskeep/pkg/config"
	"github.com/lenskeep/lenskeep/pkg/db"
	"github.com/lenskeep/lenskeep/pkg/db/migrate"
	dbtest "github.com/lenskeep/lenskeep/pkg/test"
	"github.com/lenskeep/lenskeep/pkg/role"
	"github.com/lenskeep/lenskeep/pkg/store"
	"github.com/lenskeep/lenskeep/pkg/store/database"
	"github.com/matryer/is"
)

func TestSeedInitialAdmin(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.InitialAdminEmail = "root@lenskeep.test"
	ctx := config.WithContext(context.TODO(), cfg)

	dbx, err := dbtest.OpenSqlite(ctx, t)
	is.NoErr(err)
	is.NoErr(migrate.Migrate(ctx, dbx))

	ctx = db.WithContext(ctx, dbx)
	st := database.New(ctx, dbx)
	ctx = store.WithContext(ctx, st)
	be := backend.New(ctx, cfg, dbx, st)

	is.NoErr(SeedInitialAdmin(ctx, cfg, be))

	u, err := be.UserByEmail(ctx, cfg.InitialAdminEmail)
	is.NoErr(err)
	is.Equal(u.Type, role.TypeAdmin)

	// The seeded account carries a system audit entry.
	entries, err := be.AuditLog(ctx, store.AuditLogFilter{ActorID: backend.SystemActorID})
	is.NoErr(err)
	is.Equal(len(entries), 1)
	is.Equal(entries[0].EntityType, backend.EntityUser)
	is.Equal(entries[0].EntityID, u.ID)

	// A second run is a no-op.
	is.NoErr(SeedInitialAdmin(ctx, cfg, be))
	entries, err = be.AuditLog(ctx, store.AuditLogFilter{ActorID: backend.SystemActorID})
	is.NoErr(err)
	is.Equal(len(entries), 1)
}
