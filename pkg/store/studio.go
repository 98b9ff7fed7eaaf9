package store

import (
	"context"

	"github.com/lenskeep/lenskeep/pkg/db"
	"github.com/lenskeep/lenskeep/pkg/db/models"
)

// StudioStore is an interface for managing studios.
type StudioStore interface {
	GetStudioByID(ctx context.Context, h db.Handler, id string) (models.Studio, error)
	GetAllStudios(ctx context.Context, h db.Handler) ([]models.Studio, error)
	CreateStudio(ctx context.Context, h db.Handler, id string, name string) error

	// TouchStudio takes a write lock on the studio row. Transactions that
	// change owner rows lock the studio first so they serialize per studio.
	TouchStudio(ctx context.Context, h db.Handler, id string) error
}
