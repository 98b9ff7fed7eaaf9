package database

import (
	"context"
	"strings"

	"github.com/lenskeep/lenskeep/pkg/db"
	"github.com/lenskeep/lenskeep/pkg/db/models"
	"github.com/lenskeep/lenskeep/pkg/role"
	"github.com/lenskeep/lenskeep/pkg/store"
)

type userStore struct{}

var _ store.UserStore = (*userStore)(nil)

// CreateUser implements store.UserStore.
func (*userStore) CreateUser(ctx context.Context, tx db.Handler, id string, email string, displayName string, userType role.UserType) error {
	email = strings.ToLower(email)
	query := tx.Rebind(`INSERT INTO users (id, email, display_name, user_type, updated_at)
			VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP);`)
	_, err := tx.ExecContext(ctx, query, id, email, displayName, userType)
	return err
}

// GetUserByID implements store.UserStore.
func (*userStore) GetUserByID(ctx context.Context, tx db.Handler, id string) (models.User, error) {
	var m models.User
	query := tx.Rebind(`SELECT * FROM users WHERE id = ?;`)
	err := tx.GetContext(ctx, &m, query, id)
	return m, err
}

// FindUserByEmail implements store.UserStore.
func (*userStore) FindUserByEmail(ctx context.Context, tx db.Handler, email string) (models.User, error) {
	var m models.User
	email = strings.ToLower(email)
	query := tx.Rebind(`SELECT * FROM users WHERE email = ?;`)
	err := tx.GetContext(ctx, &m, query, email)
	return m, err
}

// GetAllUsers implements store.UserStore.
func (*userStore) GetAllUsers(ctx context.Context, tx db.Handler) ([]models.User, error) {
	var m []models.User
	query := tx.Rebind(`SELECT * FROM users ORDER BY email;`)
	err := tx.SelectContext(ctx, &m, query)
	return m, err
}

// SetUserDisplayName implements store.UserStore.
func (*userStore) SetUserDisplayName(ctx context.Context, tx db.Handler, id string, displayName string) error {
	query := tx.Rebind(`UPDATE users SET display_name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, displayName, id)
	return err
}

// SetUserType implements store.UserStore.
func (*userStore) SetUserType(ctx context.Context, tx db.Handler, id string, userType role.UserType) error {
	query := tx.Rebind(`UPDATE users SET user_type = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, userType, id)
	return err
}

// DeleteUserByID implements store.UserStore.
func (*userStore) DeleteUserByID(ctx context.Context, tx db.Handler, id string) error {
	query := tx.Rebind(`DELETE FROM users WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, id)
	return err
}
