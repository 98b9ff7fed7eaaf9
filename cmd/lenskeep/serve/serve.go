package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/lenskeep/lenskeep/cmd"
	"github.com/lenskeep/lenskeep/pkg/backend"
	"github.com/lenskeep/lenskeep/pkg/config"
	"github.com/lenskeep/lenskeep/pkg/db"
	"github.com/lenskeep/lenskeep/pkg/db/migrate"
	"github.com/spf13/cobra"
)

// Command is the serve command.
var Command = &cobra.Command{
	Use:                "serve",
	Short:              "Start the server",
	Args:               cobra.NoArgs,
	PersistentPreRunE:  cmd.InitBackendContext,
	PersistentPostRunE: cmd.CloseDBContext,
	RunE: func(c *cobra.Command, _ []string) error {
		ctx := c.Context()
		cfg := config.FromContext(ctx)

		// Create log directory if it doesn't exist
		logPath := filepath.Join(cfg.DataPath, "log")
		if _, err := os.Stat(logPath); err != nil && os.IsNotExist(err) {
			os.MkdirAll(logPath, os.ModePerm) //nolint:errcheck
		}

		dbx := db.FromContext(ctx)
		if err := migrate.Migrate(ctx, dbx); err != nil {
			return fmt.Errorf("migration error: %w", err)
		}

		be := backend.FromContext(ctx)
		if err := cmd.SeedInitialAdmin(ctx, cfg, be); err != nil {
			return fmt.Errorf("seed initial admin: %w", err)
		}

		s, err := NewServer(ctx)
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}

		lch := make(chan error, 1)
		done := make(chan os.Signal, 1)
		doneOnce := sync.OnceFunc(func() { close(done) })

		signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

		go func() {
			lch <- s.Start()
			doneOnce()
		}()

		select {
		case err := <-lch:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
		case <-done:
		}

		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			return err
		}

		return nil
	},
}
