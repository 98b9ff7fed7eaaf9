package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/lenskeep/lenskeep/pkg/db"
	"github.com/lenskeep/lenskeep/pkg/db/models"
	"github.com/lenskeep/lenskeep/pkg/store"
)

type invitationStore struct{}

var _ store.InvitationStore = (*invitationStore)(nil)

// CreateInvitation implements store.InvitationStore.
func (*invitationStore) CreateInvitation(ctx context.Context, tx db.Handler, id string, email string, studioID string, expiresAt time.Time) error {
	email = strings.ToLower(email)
	sid := sql.NullString{String: studioID, Valid: studioID != ""}
	query := tx.Rebind(`INSERT INTO user_invitations (id, email, studio_id, status, expires_at, updated_at)
			VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP);`)
	_, err := tx.ExecContext(ctx, query, id, email, sid, models.InvitationPending, expiresAt.UTC())
	return err
}

// GetInvitationByID implements store.InvitationStore.
func (*invitationStore) GetInvitationByID(ctx context.Context, tx db.Handler, id string) (models.UserInvitation, error) {
	var m models.UserInvitation
	query := tx.Rebind(`SELECT * FROM user_invitations WHERE id = ?;`)
	err := tx.GetContext(ctx, &m, query, id)
	return m, err
}

// ListInvitationsByStudio implements store.InvitationStore.
func (*invitationStore) ListInvitationsByStudio(ctx context.Context, tx db.Handler, studioID string) ([]models.UserInvitation, error) {
	var m []models.UserInvitation
	query := tx.Rebind(`SELECT * FROM user_invitations WHERE studio_id = ? ORDER BY created_at;`)
	err := tx.SelectContext(ctx, &m, query, studioID)
	return m, err
}

// MarkInvitationAccepted implements store.InvitationStore.
// The update only touches rows still in the pending state so a concurrent
// expiry sweep cannot be overwritten.
func (*invitationStore) MarkInvitationAccepted(ctx context.Context, tx db.Handler, id string) (bool, error) {
	return transitionInvitation(ctx, tx, id, models.InvitationAccepted)
}

// MarkInvitationExpired implements store.InvitationStore.
// The update only touches rows still in the pending state so a concurrent
// acceptance cannot be overwritten.
func (*invitationStore) MarkInvitationExpired(ctx context.Context, tx db.Handler, id string) (bool, error) {
	return transitionInvitation(ctx, tx, id, models.InvitationExpired)
}

func transitionInvitation(ctx context.Context, tx db.Handler, id string, to models.InvitationStatus) (bool, error) {
	query := tx.Rebind(`UPDATE user_invitations SET status = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND status = ?;`)
	res, err := tx.ExecContext(ctx, query, to, id, models.InvitationPending)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

// ListExpiredPendingInvitations implements store.InvitationStore.
func (*invitationStore) ListExpiredPendingInvitations(ctx context.Context, tx db.Handler, now time.Time) ([]models.UserInvitation, error) {
	var m []models.UserInvitation
	query := tx.Rebind(`SELECT * FROM user_invitations
			WHERE status = ? AND expires_at < ? ORDER BY expires_at;`)
	err := tx.SelectContext(ctx, &m, query, models.InvitationPending, now.UTC())
	return m, err
}
