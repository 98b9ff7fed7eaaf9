// Package database provides the sqlx-backed implementation of store.Store.
package database

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/lenskeep/lenskeep/pkg/config"
	"github.com/lenskeep/lenskeep/pkg/db"
	"github.com/lenskeep/lenskeep/pkg/store"
)

type datastore struct {
	ctx    context.Context
	cfg    *config.Config
	db     *db.DB
	logger *log.Logger

	*userStore
	*studioStore
	*memberStore
	*clientStore
	*invitationStore
	*auditStore
}

// New returns a new store.Store database.
func New(ctx context.Context, db *db.DB) store.Store {
	cfg := config.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("store")

	s := &datastore{
		ctx:    ctx,
		cfg:    cfg,
		db:     db,
		logger: logger,

		userStore:       &userStore{},
		studioStore:     &studioStore{},
		memberStore:     &memberStore{},
		clientStore:     &clientStore{},
		invitationStore: &invitationStore{},
		auditStore:      &auditStore{},
	}

	return s
}
