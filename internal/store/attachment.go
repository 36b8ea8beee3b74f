package store

import (
	"context"

	"tutorstack.app/api/internal/model"
)

type attachmentStore struct {
	db DBTX
}

func newAttachmentStore(db DBTX) AttachmentStore {
	return &attachmentStore{db: db}
}

const attachmentColumns = `id, org_id, message_id, file_id, created_at`

func (s *attachmentStore) Create(ctx context.Context, att *model.Attachment) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO attachments (id, org_id, message_id, file_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+attachmentColumns,
		att.ID, att.OrgID, att.MessageID, att.FileID)
	return row.Scan(&att.ID, &att.OrgID, &att.MessageID, &att.FileID, &att.CreatedAt)
}

func (s *attachmentStore) ListByMessage(ctx context.Context, messageID int64) ([]model.Attachment, error) {
	return s.list(ctx,
		`SELECT `+attachmentColumns+` FROM attachments WHERE message_id = $1 ORDER BY id`, messageID)
}

func (s *attachmentStore) ListByFile(ctx context.Context, fileID int64) ([]model.Attachment, error) {
	return s.list(ctx,
		`SELECT `+attachmentColumns+` FROM attachments WHERE file_id = $1 ORDER BY id`, fileID)
}

func (s *attachmentStore) ListDistinctFileIDsByMessageIDs(ctx context.Context, messageIDs []int64) ([]int64, error) {
	if len(messageIDs) == 0 {
		return nil, nil
	}
	rows, err := s.db.Query(ctx,
		`SELECT DISTINCT file_id FROM attachments WHERE message_id = ANY($1)`, messageIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

func (s *attachmentStore) list(ctx context.Context, query string, args ...any) ([]model.Attachment, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var atts []model.Attachment
	for rows.Next() {
		var a model.Attachment
		if err := rows.Scan(&a.ID, &a.OrgID, &a.MessageID, &a.FileID, &a.CreatedAt); err != nil {
			return nil, err
		}
		atts = append(atts, a)
	}
	return atts, rows.Err()
}
