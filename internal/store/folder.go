package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"tutorstack.app/api/internal/model"
)

type folderStore struct {
	db DBTX
}

func newFolderStore(db DBTX) FolderStore {
	return &folderStore{db: db}
}

const folderColumns = `id, org_id, owner_user_id, parent_id, type, status, name, sort_order, created_at, updated_at`

func (s *folderStore) GetByID(ctx context.Context, id, orgID int64) (*model.Folder, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+folderColumns+` FROM folders WHERE id = $1 AND org_id = $2`, id, orgID)
	return scanFolder(row)
}

func (s *folderStore) Create(ctx context.Context, folder *model.Folder) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO folders (id, org_id, owner_user_id, parent_id, type, status, name, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+folderColumns,
		folder.ID, folder.OrgID, folder.OwnerUserID, folder.ParentID,
		folder.Type, folder.Status, folder.Name, folder.SortOrder)
	created, err := scanFolder(row)
	if err != nil {
		return err
	}
	*folder = *created
	return nil
}

func (s *folderStore) ListByOrg(ctx context.Context, orgID int64) ([]model.Folder, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+folderColumns+` FROM folders WHERE org_id = $1 ORDER BY sort_order, id`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []model.Folder
	for rows.Next() {
		var f model.Folder
		if err := rows.Scan(
			&f.ID, &f.OrgID, &f.OwnerUserID, &f.ParentID, &f.Type,
			&f.Status, &f.Name, &f.SortOrder, &f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

func (s *folderStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.Exec(ctx, `DELETE FROM folders WHERE id = $1`, id)
	return err
}

func (s *folderStore) DeleteByOrg(ctx context.Context, orgID int64) error {
	_, err := s.db.Exec(ctx, `DELETE FROM folders WHERE org_id = $1`, orgID)
	return err
}

func scanFolder(row pgx.Row) (*model.Folder, error) {
	var f model.Folder
	err := row.Scan(
		&f.ID, &f.OrgID, &f.OwnerUserID, &f.ParentID, &f.Type,
		&f.Status, &f.Name, &f.SortOrder, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}
