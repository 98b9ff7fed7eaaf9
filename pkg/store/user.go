package store

import (
	"context"

	"github.com/lenskeep/lenskeep/pkg/db"
	"github.com/lenskeep/lenskeep/pkg/db/models"
	"github.com/lenskeep/lenskeep/pkg/role"
)

// UserStore is an interface for managing users.
type UserStore interface {
	GetUserByID(ctx context.Context, h db.Handler, id string) (models.User, error)
	FindUserByEmail(ctx context.Context, h db.Handler, email string) (models.User, error)
	GetAllUsers(ctx context.Context, h db.Handler) ([]models.User, error)
	CreateUser(ctx context.Context, h db.Handler, id string, email string, displayName string, userType role.UserType) error
	SetUserDisplayName(ctx context.Context, h db.Handler, id string, displayName string) error
	SetUserType(ctx context.Context, h db.Handler, id string, userType role.UserType) error
	DeleteUserByID(ctx context.Context, h db.Handler, id string) error
}
