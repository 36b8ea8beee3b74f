package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"tutorstack.app/api/internal/model"
)

type orgStore struct {
	db DBTX
}

func newOrgStore(db DBTX) OrgStore {
	return &orgStore{db: db}
}

const orgColumns = `id, name, slug, type, lifecycle_status, disabled_at, deleted_at, purge_scheduled_at, retention_days, created_at, updated_at`

func (s *orgStore) GetByID(ctx context.Context, id int64) (*model.Org, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+orgColumns+` FROM orgs WHERE id = $1`, id)
	return scanOrg(row)
}

func (s *orgStore) GetBySlug(ctx context.Context, slug string) (*model.Org, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+orgColumns+` FROM orgs WHERE slug = $1`, slug)
	return scanOrg(row)
}

func (s *orgStore) GetPersonalForUser(ctx context.Context, userID int64) (*model.Org, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+orgColumns+` FROM orgs o
		WHERE o.type = 'personal'
		  AND EXISTS (SELECT 1 FROM org_members m WHERE m.org_id = o.id AND m.user_id = $1)
		LIMIT 1`, userID)
	return scanOrg(row)
}

func (s *orgStore) Create(ctx context.Context, org *model.Org) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO orgs (id, name, slug, type, lifecycle_status, retention_days)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+orgColumns,
		org.ID, org.Name, org.Slug, org.Type, org.LifecycleStatus, org.RetentionDays)
	created, err := scanOrg(row)
	if err != nil {
		return err
	}
	*org = *created
	return nil
}

// UpdateLifecycle persists the lifecycle columns of a transition that was
// validated in memory. The WHERE clause re-checks the expected current status
// so a concurrent transition loses the race cleanly (ErrNotFound).
func (s *orgStore) UpdateLifecycle(ctx context.Context, org *model.Org, from model.OrgLifecycleStatus) error {
	row := s.db.QueryRow(ctx, `
		UPDATE orgs
		SET lifecycle_status = $2,
		    disabled_at = $3,
		    deleted_at = $4,
		    purge_scheduled_at = $5,
		    updated_at = now()
		WHERE id = $1 AND lifecycle_status = $6
		RETURNING `+orgColumns,
		org.ID, org.LifecycleStatus, org.DisabledAt, org.DeletedAt, org.PurgeScheduledAt, from)
	updated, err := scanOrg(row)
	if err != nil {
		return err
	}
	*org = *updated
	return nil
}

func (s *orgStore) ListIDsReadyForPurge(ctx context.Context, now time.Time) ([]int64, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id FROM orgs
		WHERE lifecycle_status = 'deleted' AND purge_scheduled_at <= $1
		ORDER BY purge_scheduled_at`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

func (s *orgStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.Exec(ctx, `DELETE FROM orgs WHERE id = $1`, id)
	return err
}

func scanOrg(row pgx.Row) (*model.Org, error) {
	var o model.Org
	err := row.Scan(
		&o.ID, &o.Name, &o.Slug, &o.Type, &o.LifecycleStatus,
		&o.DisabledAt, &o.DeletedAt, &o.PurgeScheduledAt,
		&o.RetentionDays, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func scanIDs(rows pgx.Rows) ([]int64, error) {
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
