package store

import (
	"context"
	"time"

	"github.com/lenskeep/lenskeep/pkg/db"
	"github.com/lenskeep/lenskeep/pkg/db/models"
)

// InvitationStore is an interface for managing studio invitations.
//
// MarkInvitationAccepted and MarkInvitationExpired use conditional updates
// that only transition rows still in the pending state. The boolean return
// reports whether the row actually transitioned, so a lost accept/expire race
// is a no-op for the loser rather than an error.
type InvitationStore interface {
	GetInvitationByID(ctx context.Context, h db.Handler, id string) (models.UserInvitation, error)
	ListInvitationsByStudio(ctx context.Context, h db.Handler, studioID string) ([]models.UserInvitation, error)
	CreateInvitation(ctx context.Context, h db.Handler, id string, email string, studioID string, expiresAt time.Time) error
	MarkInvitationAccepted(ctx context.Context, h db.Handler, id string) (bool, error)
	MarkInvitationExpired(ctx context.Context, h db.Handler, id string) (bool, error)
	ListExpiredPendingInvitations(ctx context.Context, h db.Handler, now time.Time) ([]models.UserInvitation, error)
}
