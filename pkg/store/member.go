package store

import (
	"context"

	"github.com/lenskeep/lenskeep/pkg/db"
	"github.com/lenskeep/lenskeep/pkg/db/models"
	"github.com/lenskeep/lenskeep/pkg/role"
)

// MemberStore is an interface for managing studio memberships.
type MemberStore interface {
	GetMemberByStudioAndUser(ctx context.Context, h db.Handler, studioID string, userID string) (models.StudioMember, error)
	ListMembersByStudio(ctx context.Context, h db.Handler, studioID string) ([]models.StudioMember, error)
	ListMembersByStudioAsUsers(ctx context.Context, h db.Handler, studioID string) ([]models.User, error)
	ListMembershipsByUser(ctx context.Context, h db.Handler, userID string) ([]models.StudioMember, error)
	AddMember(ctx context.Context, h db.Handler, studioID string, userID string, r role.Role) error
	SetMemberRole(ctx context.Context, h db.Handler, studioID string, userID string, r role.Role) error
	RemoveMember(ctx context.Context, h db.Handler, studioID string, userID string) error
	CountStudioOwners(ctx context.Context, h db.Handler, studioID string) (int, error)

	// DemoteOwner and RemoveOwner only touch the row while the studio keeps
	// another owner. The guard is part of the statement, so it holds against
	// concurrent writers. The bool reports whether the row changed.
	DemoteOwner(ctx context.Context, h db.Handler, studioID string, userID string, r role.Role) (bool, error)
	RemoveOwner(ctx context.Context, h db.Handler, studioID string, userID string) (bool, error)
}
