package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"tutorstack.app/api/internal/model"
)

type messageStore struct {
	db DBTX
}

func newMessageStore(db DBTX) MessageStore {
	return &messageStore{db: db}
}

const messageColumns = `id, thread_id, sender_type, sender_id, status, content, idempotency_key, created_at`

func (s *messageStore) Create(ctx context.Context, msg *model.Message) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO messages (id, thread_id, sender_type, sender_id, status, content, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+messageColumns,
		msg.ID, msg.ThreadID, msg.SenderType, msg.SenderID, msg.Status, msg.Content, msg.IdempotencyKey)
	created, err := scanMessage(row)
	if err != nil {
		return err
	}
	*msg = *created
	return nil
}

func (s *messageStore) GetByIdempotencyKey(ctx context.Context, key string, orgID int64) (*model.Message, error) {
	row := s.db.QueryRow(ctx, `
		SELECT m.id, m.thread_id, m.sender_type, m.sender_id, m.status, m.content, m.idempotency_key, m.created_at
		FROM messages m
		JOIN threads t ON t.id = m.thread_id
		WHERE m.idempotency_key = $1 AND t.org_id = $2`, key, orgID)
	return scanMessage(row)
}

// ListByThreadPaged returns a thread's messages ordered by (created_at, id)
// ascending. The returned cursor resumes strictly after the last row.
func (s *messageStore) ListByThreadPaged(ctx context.Context, threadID int64, pageSize int, cursor string) ([]model.Message, string, error) {
	if pageSize <= 0 {
		pageSize = 20
	}

	query := `SELECT ` + messageColumns + ` FROM messages WHERE thread_id = $1`
	args := []any{threadID}

	if ts, id, ok := DecodeCursor(cursor); ok {
		query += ` AND (created_at > $2 OR (created_at = $2 AND id > $3))`
		args = append(args, ts, id)
	}
	query += ` ORDER BY created_at, id LIMIT ` + limitArg(len(args)+1)
	args = append(args, pageSize+1)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(
			&m.ID, &m.ThreadID, &m.SenderType, &m.SenderID,
			&m.Status, &m.Content, &m.IdempotencyKey, &m.CreatedAt,
		); err != nil {
			return nil, "", err
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	var next string
	if len(messages) > pageSize {
		messages = messages[:pageSize]
		last := messages[pageSize-1]
		next = EncodeCursor(last.CreatedAt, last.ID)
	}
	return messages, next, nil
}

func (s *messageStore) ListIDsByThreadIDs(ctx context.Context, threadIDs []int64) ([]int64, error) {
	if len(threadIDs) == 0 {
		return nil, nil
	}
	rows, err := s.db.Query(ctx, `SELECT id FROM messages WHERE thread_id = ANY($1)`, threadIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

func (s *messageStore) DeleteByThreadIDs(ctx context.Context, threadIDs []int64) error {
	if len(threadIDs) == 0 {
		return nil
	}
	_, err := s.db.Exec(ctx, `DELETE FROM messages WHERE thread_id = ANY($1)`, threadIDs)
	return err
}

func scanMessage(row pgx.Row) (*model.Message, error) {
	var m model.Message
	err := row.Scan(
		&m.ID, &m.ThreadID, &m.SenderType, &m.SenderID,
		&m.Status, &m.Content, &m.IdempotencyKey, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}
