package database

import (
	"context"

	"github.com/lenskeep/lenskeep/pkg/db"
	"github.com/lenskeep/lenskeep/pkg/db/models"
	"github.com/lenskeep/lenskeep/pkg/role"
	"github.com/lenskeep/lenskeep/pkg/store"
)

type memberStore struct{}

var _ store.MemberStore = (*memberStore)(nil)

// AddMember implements store.MemberStore.
func (*memberStore) AddMember(ctx context.Context, tx db.Handler, studioID string, userID string, r role.Role) error {
	query := tx.Rebind(`INSERT INTO studio_members (studio_id, user_id, role, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP);`)
	_, err := tx.ExecContext(ctx, query, studioID, userID, r)
	return err
}

// GetMemberByStudioAndUser implements store.MemberStore.
func (*memberStore) GetMemberByStudioAndUser(ctx context.Context, tx db.Handler, studioID string, userID string) (models.StudioMember, error) {
	var m models.StudioMember
	query := tx.Rebind(`SELECT * FROM studio_members WHERE studio_id = ? AND user_id = ?;`)
	err := tx.GetContext(ctx, &m, query, studioID, userID)
	return m, err
}

// ListMembersByStudio implements store.MemberStore.
func (*memberStore) ListMembersByStudio(ctx context.Context, tx db.Handler, studioID string) ([]models.StudioMember, error) {
	var m []models.StudioMember
	query := tx.Rebind(`SELECT * FROM studio_members WHERE studio_id = ? ORDER BY role DESC, user_id;`)
	err := tx.SelectContext(ctx, &m, query, studioID)
	return m, err
}

// ListMembersByStudioAsUsers implements store.MemberStore.
func (*memberStore) ListMembersByStudioAsUsers(ctx context.Context, tx db.Handler, studioID string) ([]models.User, error) {
	var m []models.User
	query := tx.Rebind(`
		SELECT
			users.*
		FROM
			users
		INNER JOIN studio_members ON studio_members.user_id = users.id
		WHERE
			studio_members.studio_id = ?
	`)
	err := tx.SelectContext(ctx, &m, query, studioID)
	return m, err
}

// ListMembershipsByUser implements store.MemberStore.
func (*memberStore) ListMembershipsByUser(ctx context.Context, tx db.Handler, userID string) ([]models.StudioMember, error) {
	var m []models.StudioMember
	query := tx.Rebind(`SELECT * FROM studio_members WHERE user_id = ?;`)
	err := tx.SelectContext(ctx, &m, query, userID)
	return m, err
}

// SetMemberRole implements store.MemberStore.
func (*memberStore) SetMemberRole(ctx context.Context, tx db.Handler, studioID string, userID string, r role.Role) error {
	query := tx.Rebind(`UPDATE studio_members SET role = ?, updated_at = CURRENT_TIMESTAMP
			WHERE studio_id = ? AND user_id = ?;`)
	_, err := tx.ExecContext(ctx, query, r, studioID, userID)
	return err
}

// RemoveMember implements store.MemberStore.
func (*memberStore) RemoveMember(ctx context.Context, tx db.Handler, studioID string, userID string) error {
	query := tx.Rebind(`DELETE FROM studio_members WHERE studio_id = ? AND user_id = ?;`)
	_, err := tx.ExecContext(ctx, query, studioID, userID)
	return err
}

// DemoteOwner implements store.MemberStore.
func (*memberStore) DemoteOwner(ctx context.Context, tx db.Handler, studioID string, userID string, r role.Role) (bool, error) {
	// The subquery counts owners as of the statement, including the row being
	// demoted, so zero rows affected means this owner is the last one.
	query := tx.Rebind(`UPDATE studio_members SET role = ?, updated_at = CURRENT_TIMESTAMP
			WHERE studio_id = ? AND user_id = ? AND role = ?
			AND (SELECT COUNT(*) FROM studio_members sm WHERE sm.studio_id = ? AND sm.role = ?) > 1;`)
	res, err := tx.ExecContext(ctx, query, r, studioID, userID, role.Owner, studioID, role.Owner)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}

// RemoveOwner implements store.MemberStore.
func (*memberStore) RemoveOwner(ctx context.Context, tx db.Handler, studioID string, userID string) (bool, error) {
	query := tx.Rebind(`DELETE FROM studio_members
			WHERE studio_id = ? AND user_id = ? AND role = ?
			AND (SELECT COUNT(*) FROM studio_members sm WHERE sm.studio_id = ? AND sm.role = ?) > 1;`)
	res, err := tx.ExecContext(ctx, query, studioID, userID, role.Owner, studioID, role.Owner)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	return rows > 0, err
}

// CountStudioOwners implements store.MemberStore.
func (*memberStore) CountStudioOwners(ctx context.Context, tx db.Handler, studioID string) (int, error) {
	var count int
	query := tx.Rebind(`SELECT COUNT(*) FROM studio_members WHERE studio_id = ? AND role = ?;`)
	err := tx.GetContext(ctx, &count, query, studioID, role.Owner)
	return count, err
}
