package database

import (
	"context"

	"github.com/lenskeep/lenskeep/pkg/db"
	"github.com/lenskeep/lenskeep/pkg/db/models"
	"github.com/lenskeep/lenskeep/pkg/store"
)

type clientStore struct{}

var _ store.ClientStore = (*clientStore)(nil)

// AddClient implements store.ClientStore.
func (*clientStore) AddClient(ctx context.Context, tx db.Handler, studioID string, userID string) error {
	query := tx.Rebind(`INSERT INTO studio_clients (studio_id, user_id)
			VALUES (?, ?);`)
	_, err := tx.ExecContext(ctx, query, studioID, userID)
	return err
}

// GetClientByStudioAndUser implements store.ClientStore.
func (*clientStore) GetClientByStudioAndUser(ctx context.Context, tx db.Handler, studioID string, userID string) (models.StudioClient, error) {
	var m models.StudioClient
	query := tx.Rebind(`SELECT * FROM studio_clients WHERE studio_id = ? AND user_id = ?;`)
	err := tx.GetContext(ctx, &m, query, studioID, userID)
	return m, err
}

// GetClientByUser implements store.ClientStore.
func (*clientStore) GetClientByUser(ctx context.Context, tx db.Handler, userID string) (models.StudioClient, error) {
	var m models.StudioClient
	query := tx.Rebind(`SELECT * FROM studio_clients WHERE user_id = ?;`)
	err := tx.GetContext(ctx, &m, query, userID)
	return m, err
}

// ListClientsByStudio implements store.ClientStore.
func (*clientStore) ListClientsByStudio(ctx context.Context, tx db.Handler, studioID string) ([]models.StudioClient, error) {
	var m []models.StudioClient
	query := tx.Rebind(`SELECT * FROM studio_clients WHERE studio_id = ? ORDER BY user_id;`)
	err := tx.SelectContext(ctx, &m, query, studioID)
	return m, err
}

// ListClientsByStudioAsUsers implements store.ClientStore.
func (*clientStore) ListClientsByStudioAsUsers(ctx context.Context, tx db.Handler, studioID string) ([]models.User, error) {
	var m []models.User
	query := tx.Rebind(`
		SELECT
			users.*
		FROM
			users
		INNER JOIN studio_clients ON studio_clients.user_id = users.id
		WHERE
			studio_clients.studio_id = ?
	`)
	err := tx.SelectContext(ctx, &m, query, studioID)
	return m, err
}

// RemoveClient implements store.ClientStore.
func (*clientStore) RemoveClient(ctx context.Context, tx db.Handler, studioID string, userID string) error {
	query := tx.Rebind(`DELETE FROM studio_clients WHERE studio_id = ? AND user_id = ?;`)
	_, err := tx.ExecContext(ctx, query, studioID, userID)
	return err
}
