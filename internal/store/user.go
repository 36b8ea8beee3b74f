package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"tutorstack.app/api/internal/model"
)

type userStore struct {
	db DBTX
}

func newUserStore(db DBTX) UserStore {
	return &userStore{db: db}
}

const userColumns = `id, primary_org_id, name, email, created_at, updated_at`

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO users (id, primary_org_id, name, email)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		user.ID, user.PrimaryOrgID, user.Name, user.Email)
	created, err := scanUser(row)
	if err != nil {
		return err
	}
	*user = *created
	return nil
}

func (s *userStore) ListByPrimaryOrg(ctx context.Context, orgID int64) ([]model.User, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE primary_org_id = $1`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.PrimaryOrgID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *userStore) UpdatePrimaryOrg(ctx context.Context, userID, orgID int64, now time.Time) error {
	_, err := s.db.Exec(ctx,
		`UPDATE users SET primary_org_id = $2, updated_at = $3 WHERE id = $1`,
		userID, orgID, now)
	return err
}

func (s *userStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.PrimaryOrgID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
