package store

import (
	"context"

	"github.com/lenskeep/lenskeep/pkg/db"
	"github.com/lenskeep/lenskeep/pkg/db/models"
)

// ClientStore is an interface for managing studio clients.
type ClientStore interface {
	GetClientByStudioAndUser(ctx context.Context, h db.Handler, studioID string, userID string) (models.StudioClient, error)
	GetClientByUser(ctx context.Context, h db.Handler, userID string) (models.StudioClient, error)
	ListClientsByStudio(ctx context.Context, h db.Handler, studioID string) ([]models.StudioClient, error)
	ListClientsByStudioAsUsers(ctx context.Context, h db.Handler, studioID string) ([]models.User, error)
	AddClient(ctx context.Context, h db.Handler, studioID string, userID string) error
	RemoveClient(ctx context.Context, h db.Handler, studioID string, userID string) error
}
