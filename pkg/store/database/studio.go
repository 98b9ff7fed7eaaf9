package database

import (
	"context"

	"github.com/lenskeep/lenskeep/pkg/db"
	"github.com/lenskeep/lenskeep/pkg/db/models"
	"github.com/lenskeep/lenskeep/pkg/store"
)

type studioStore struct{}

var _ store.StudioStore = (*studioStore)(nil)

// CreateStudio implements store.StudioStore.
func (*studioStore) CreateStudio(ctx context.Context, tx db.Handler, id string, name string) error {
	query := tx.Rebind(`INSERT INTO studios (id, name, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP);`)
	_, err := tx.ExecContext(ctx, query, id, name)
	return err
}

// TouchStudio implements store.StudioStore.
func (*studioStore) TouchStudio(ctx context.Context, tx db.Handler, id string) error {
	query := tx.Rebind(`UPDATE studios SET updated_at = CURRENT_TIMESTAMP WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, id)
	return err
}

// GetStudioByID implements store.StudioStore.
func (*studioStore) GetStudioByID(ctx context.Context, tx db.Handler, id string) (models.Studio, error) {
	var m models.Studio
	query := tx.Rebind(`SELECT * FROM studios WHERE id = ?;`)
	err := tx.GetContext(ctx, &m, query, id)
	return m, err
}

// GetAllStudios implements store.StudioStore.
func (*studioStore) GetAllStudios(ctx context.Context, tx db.Handler) ([]models.Studio, error) {
	var m []models.Studio
	query := tx.Rebind(`SELECT * FROM studios ORDER BY name;`)
	err := tx.SelectContext(ctx, &m, query)
	return m, err
}
