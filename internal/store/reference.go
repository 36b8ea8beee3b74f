package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"tutorstack.app/api/internal/model"
)

type referenceStore struct {
	db DBTX
}

func newReferenceStore(db DBTX) ReferenceStore {
	return &referenceStore{db: db}
}

const referenceColumns = `id, org_id, thread_id, message_id, file_id, url, title, created_at`

func (s *referenceStore) Create(ctx context.Context, ref *model.Reference) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO thread_references (id, org_id, thread_id, message_id, file_id, url, title)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+referenceColumns,
		ref.ID, ref.OrgID, ref.ThreadID, ref.MessageID, ref.FileID, ref.URL, ref.Title)
	created, err := scanReference(row)
	if err != nil {
		return err
	}
	*ref = *created
	return nil
}

func (s *referenceStore) ListByThread(ctx context.Context, threadID int64) ([]model.Reference, error) {
	return s.list(ctx,
		`SELECT `+referenceColumns+` FROM thread_references WHERE thread_id = $1 ORDER BY id`, threadID)
}

func (s *referenceStore) ListByFile(ctx context.Context, fileID int64) ([]model.Reference, error) {
	return s.list(ctx,
		`SELECT `+referenceColumns+` FROM thread_references WHERE file_id = $1 ORDER BY id`, fileID)
}

func (s *referenceStore) ListDistinctFileIDsByThreadIDs(ctx context.Context, threadIDs []int64) ([]int64, error) {
	if len(threadIDs) == 0 {
		return nil, nil
	}
	rows, err := s.db.Query(ctx,
		`SELECT DISTINCT file_id FROM thread_references WHERE thread_id = ANY($1) AND file_id IS NOT NULL`,
		threadIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

func (s *referenceStore) DeleteByThread(ctx context.Context, threadID int64) error {
	_, err := s.db.Exec(ctx, `DELETE FROM thread_references WHERE thread_id = $1`, threadID)
	return err
}

func (s *referenceStore) list(ctx context.Context, query string, args ...any) ([]model.Reference, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []model.Reference
	for rows.Next() {
		ref, err := scanReference(rows)
		if err != nil {
			return nil, err
		}
		refs = append(refs, *ref)
	}
	return refs, rows.Err()
}

func scanReference(row pgx.Row) (*model.Reference, error) {
	var r model.Reference
	err := row.Scan(
		&r.ID, &r.OrgID, &r.ThreadID, &r.MessageID, &r.FileID,
		&r.URL, &r.Title, &r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}
