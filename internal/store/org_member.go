package store

import (
	"context"

	"tutorstack.app/api/internal/model"
)

type orgMemberStore struct {
	db DBTX
}

func newOrgMemberStore(db DBTX) OrgMemberStore {
	return &orgMemberStore{db: db}
}

func (s *orgMemberStore) Add(ctx context.Context, member *model.OrgMember) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO org_members (org_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING org_id, user_id, role, joined_at`,
		member.OrgID, member.UserID, member.Role)
	return row.Scan(&member.OrgID, &member.UserID, &member.Role, &member.JoinedAt)
}

func (s *orgMemberStore) ListByOrg(ctx context.Context, orgID int64) ([]model.OrgMember, error) {
	rows, err := s.db.Query(ctx,
		`SELECT org_id, user_id, role, joined_at FROM org_members WHERE org_id = $1`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []model.OrgMember
	for rows.Next() {
		var m model.OrgMember
		if err := rows.Scan(&m.OrgID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *orgMemberStore) DeleteByOrg(ctx context.Context, orgID int64) error {
	_, err := s.db.Exec(ctx, `DELETE FROM org_members WHERE org_id = $1`, orgID)
	return err
}

func (s *orgMemberStore) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := s.db.Exec(ctx, `DELETE FROM org_members WHERE user_id = $1`, userID)
	return err
}
