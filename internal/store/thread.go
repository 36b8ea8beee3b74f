package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"tutorstack.app/api/internal/model"
)

type threadStore struct {
	db DBTX
}

func newThreadStore(db DBTX) ThreadStore {
	return &threadStore{db: db}
}

const threadColumns = `id, org_id, user_id, folder_id, title, status, sort_order, created_at, updated_at`

func (s *threadStore) GetByID(ctx context.Context, id, orgID int64) (*model.Thread, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+threadColumns+` FROM threads WHERE id = $1 AND org_id = $2`, id, orgID)
	return scanThread(row)
}

func (s *threadStore) Create(ctx context.Context, thread *model.Thread) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO threads (id, org_id, user_id, folder_id, title, status, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+threadColumns,
		thread.ID, thread.OrgID, thread.UserID, thread.FolderID,
		thread.Title, thread.Status, thread.SortOrder)
	created, err := scanThread(row)
	if err != nil {
		return err
	}
	*thread = *created
	return nil
}

func (s *threadStore) Update(ctx context.Context, thread *model.Thread) error {
	row := s.db.QueryRow(ctx, `
		UPDATE threads
		SET folder_id = $3, title = $4, status = $5, sort_order = $6, updated_at = now()
		WHERE id = $1 AND org_id = $2
		RETURNING `+threadColumns,
		thread.ID, thread.OrgID, thread.FolderID, thread.Title, thread.Status, thread.SortOrder)
	updated, err := scanThread(row)
	if err != nil {
		return err
	}
	*thread = *updated
	return nil
}

// ListByFolderPaged returns threads in a folder ordered by (updated_at, id)
// descending, with an opaque resume cursor.
func (s *threadStore) ListByFolderPaged(ctx context.Context, orgID, folderID int64, pageSize int, cursor string) ([]model.Thread, string, error) {
	if pageSize <= 0 {
		pageSize = 20
	}

	query := `SELECT ` + threadColumns + ` FROM threads WHERE org_id = $1 AND folder_id = $2`
	args := []any{orgID, folderID}

	if ts, id, ok := DecodeCursor(cursor); ok {
		query += ` AND (updated_at < $3 OR (updated_at = $3 AND id < $4))`
		args = append(args, ts, id)
	}
	query += ` ORDER BY updated_at DESC, id DESC LIMIT ` + limitArg(len(args)+1)
	args = append(args, pageSize+1)

	return s.listPaged(ctx, query, args, pageSize)
}

// ListByUserPaged returns a user's threads across folders, newest first.
func (s *threadStore) ListByUserPaged(ctx context.Context, userID int64, pageSize int, cursor string) ([]model.Thread, string, error) {
	if pageSize <= 0 {
		pageSize = 20
	}

	query := `SELECT ` + threadColumns + ` FROM threads WHERE user_id = $1`
	args := []any{userID}

	if ts, id, ok := DecodeCursor(cursor); ok {
		query += ` AND (updated_at < $2 OR (updated_at = $2 AND id < $3))`
		args = append(args, ts, id)
	}
	query += ` ORDER BY updated_at DESC, id DESC LIMIT ` + limitArg(len(args)+1)
	args = append(args, pageSize+1)

	return s.listPaged(ctx, query, args, pageSize)
}

func (s *threadStore) listPaged(ctx context.Context, query string, args []any, pageSize int) ([]model.Thread, string, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var threads []model.Thread
	for rows.Next() {
		var t model.Thread
		if err := rows.Scan(
			&t.ID, &t.OrgID, &t.UserID, &t.FolderID, &t.Title,
			&t.Status, &t.SortOrder, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, "", err
		}
		threads = append(threads, t)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	var next string
	if len(threads) > pageSize {
		threads = threads[:pageSize]
		last := threads[pageSize-1]
		next = EncodeCursor(last.UpdatedAt, last.ID)
	}
	return threads, next, nil
}

func (s *threadStore) ListIDsByFolder(ctx context.Context, orgID, folderID int64) ([]int64, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id FROM threads WHERE org_id = $1 AND folder_id = $2`, orgID, folderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

// ListIDsByUserByOrg returns the user's thread ids keyed by org. A user's
// threads can span orgs, and cleanup work is attributed per org.
func (s *threadStore) ListIDsByUserByOrg(ctx context.Context, userID int64) (map[int64][]int64, error) {
	rows, err := s.db.Query(ctx, `SELECT org_id, id FROM threads WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byOrg := make(map[int64][]int64)
	for rows.Next() {
		var orgID, id int64
		if err := rows.Scan(&orgID, &id); err != nil {
			return nil, err
		}
		byOrg[orgID] = append(byOrg[orgID], id)
	}
	return byOrg, rows.Err()
}

func (s *threadStore) ListIDsByOrg(ctx context.Context, orgID int64) ([]int64, error) {
	rows, err := s.db.Query(ctx, `SELECT id FROM threads WHERE org_id = $1`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

func (s *threadStore) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.db.Exec(ctx, `DELETE FROM threads WHERE id = ANY($1)`, ids)
	return err
}

func (s *threadStore) DeleteByOrg(ctx context.Context, orgID int64) error {
	_, err := s.db.Exec(ctx, `DELETE FROM threads WHERE org_id = $1`, orgID)
	return err
}

func (s *threadStore) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := s.db.Exec(ctx, `DELETE FROM threads WHERE user_id = $1`, userID)
	return err
}

func scanThread(row pgx.Row) (*model.Thread, error) {
	var t model.Thread
	err := row.Scan(
		&t.ID, &t.OrgID, &t.UserID, &t.FolderID, &t.Title,
		&t.Status, &t.SortOrder, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
