package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"tutorstack.app/api/internal/model"
)

type fileStore struct {
	db DBTX
}

func newFileStore(db DBTX) FileStore {
	return &fileStore{db: db}
}

const fileColumns = `id, org_id, owner_user_id, file_name, content_type, storage_key, size_bytes, checksum_sha256, created_at, updated_at`

func (s *fileStore) GetByID(ctx context.Context, id int64) (*model.StoredFile, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+fileColumns+` FROM files WHERE id = $1`, id)
	return scanFile(row)
}

func (s *fileStore) GetByChecksum(ctx context.Context, orgID int64, checksum string) (*model.StoredFile, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+fileColumns+` FROM files WHERE org_id = $1 AND checksum_sha256 = $2 ORDER BY id LIMIT 1`,
		orgID, checksum)
	return scanFile(row)
}

func (s *fileStore) Create(ctx context.Context, file *model.StoredFile) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO files (id, org_id, owner_user_id, file_name, content_type, storage_key, size_bytes, checksum_sha256)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+fileColumns,
		file.ID, file.OrgID, file.OwnerUserID, file.FileName, file.ContentType,
		file.StorageKey, file.SizeBytes, file.ChecksumSHA256)
	created, err := scanFile(row)
	if err != nil {
		return err
	}
	*file = *created
	return nil
}

// ListByOrgPaged returns an org's files newest first with an opaque resume
// cursor over (created_at, id).
func (s *fileStore) ListByOrgPaged(ctx context.Context, orgID int64, pageSize int, cursor string) ([]model.StoredFile, string, error) {
	if pageSize <= 0 {
		pageSize = 20
	}

	query := `SELECT ` + fileColumns + ` FROM files WHERE org_id = $1`
	args := []any{orgID}

	if ts, id, ok := DecodeCursor(cursor); ok {
		query += ` AND (created_at < $2 OR (created_at = $2 AND id < $3))`
		args = append(args, ts, id)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ` + limitArg(len(args)+1)
	args = append(args, pageSize+1)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var files []model.StoredFile
	for rows.Next() {
		var f model.StoredFile
		if err := rows.Scan(
			&f.ID, &f.OrgID, &f.OwnerUserID, &f.FileName, &f.ContentType,
			&f.StorageKey, &f.SizeBytes, &f.ChecksumSHA256, &f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, "", err
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	var next string
	if len(files) > pageSize {
		files = files[:pageSize]
		last := files[pageSize-1]
		next = EncodeCursor(last.CreatedAt, last.ID)
	}
	return files, next, nil
}

func (s *fileStore) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.db.Exec(ctx, `DELETE FROM files WHERE id = ANY($1)`, ids)
	return err
}

func scanFile(row pgx.Row) (*model.StoredFile, error) {
	var f model.StoredFile
	err := row.Scan(
		&f.ID, &f.OrgID, &f.OwnerUserID, &f.FileName, &f.ContentType,
		&f.StorageKey, &f.SizeBytes, &f.ChecksumSHA256, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}
