package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lenskeep/lenskeep/pkg/backend"
	"github.com/lenskeep/lenskeep/pkg/config"
	"github.com/lenskeep/lenskeep/pkg/db"
	"github.com/lenskeep/lenskeep/pkg/db/models"
	"github.com/lenskeep/lenskeep/pkg/proto"
	"github.com/lenskeep/lenskeep/pkg/role"
	"github.com/lenskeep/lenskeep/pkg/store"
	"github.com/lenskeep/lenskeep/pkg/store/database"
	"github.com/spf13/cobra"
)

// InitBackendContext initializes the backend context.
// When an actor ID is provided via the "LENSKEEP_ACTOR" environment variable,
// it will be used to try to find the corresponding user in the database and
// set the actor in the context.
func InitBackendContext(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	if _, err := os.Stat(cfg.DataPath); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(cfg.DataPath, os.ModePerm); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}
	dbx, err := db.Open(ctx, cfg.DB.Driver, cfg.DB.DataSource)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	ctx = db.WithContext(ctx, dbx)
	dbstore := database.New(ctx, dbx)
	ctx = store.WithContext(ctx, dbstore)
	be := backend.New(ctx, cfg, dbx, dbstore)
	ctx = backend.WithContext(ctx, be)

	// Store actor in context if a user ID is provided
	// via environment variable.
	if id, ok := os.LookupEnv("LENSKEEP_ACTOR"); ok {
		user, err := be.User(ctx, id)
		if err == nil {
			ctx = proto.WithActorContext(ctx, &proto.Actor{ID: user.ID, Type: user.Type})
		}
	}

	cmd.SetContext(ctx)

	return nil
}

// CloseDBContext closes the database context.
func CloseDBContext(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	dbx := db.FromContext(ctx)
	if dbx != nil {
		if err := dbx.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}

	return nil
}

// SeedInitialAdmin ensures the configured initial admin account exists.
// It is a no-op when no initial admin email is configured or the account
// already exists.
func SeedInitialAdmin(ctx context.Context, cfg *config.Config, be *backend.Backend) error {
	if cfg.InitialAdminEmail == "" {
		return nil
	}

	_, err := be.UserByEmail(ctx, cfg.InitialAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, proto.ErrUserNotFound) {
		return err
	}

	dbx := db.FromContext(ctx)
	st := store.FromContext(ctx)
	return dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		id := uuid.NewString()
		if err := st.CreateUser(ctx, tx, id, cfg.InitialAdminEmail, "Administrator", role.TypeAdmin); err != nil {
			return err
		}
		return st.AppendAuditLog(ctx, tx, models.AuditLogEntry{
			ID:         uuid.NewString(),
			Action:     models.AuditCreate,
			EntityType: backend.EntityUser,
			EntityID:   id,
			ActorID:    backend.SystemActorID,
			Details:    "initial admin seeded",
			OccurredAt: time.Now().UTC(),
		})
	})
}
