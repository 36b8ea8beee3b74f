package service

import (
	"context"
	"errors"
	"fmt"

	"tutorstack.app/api/common/id"
	"tutorstack.app/api/internal/model"
	"tutorstack.app/api/internal/store"
)

type CreateMessageParams struct {
	OrgID          int64
	ThreadID       int64
	SenderType     model.SenderType
	SenderID       *int64
	Content        string
	IdempotencyKey *string
}

type MessageService interface {
	// Create inserts a message, replaying the original when the same
	// idempotency key was already used within the org.
	Create(ctx context.Context, params CreateMessageParams) (*model.Message, error)
	ListByThread(ctx context.Context, orgID, threadID int64, pageSize int, cursor string) ([]model.Message, string, error)
}

type messageService struct {
	messageStore store.MessageStore
	threadStore  store.ThreadStore
}

func NewMessageService(messageStore store.MessageStore, threadStore store.ThreadStore) MessageService {
	return &messageService{
		messageStore: messageStore,
		threadStore:  threadStore,
	}
}

func (s *messageService) Create(ctx context.Context, params CreateMessageParams) (*model.Message, error) {
	if _, err := s.threadStore.GetByID(ctx, params.ThreadID, params.OrgID); err != nil {
		return nil, err
	}

	if params.IdempotencyKey != nil && *params.IdempotencyKey != "" {
		existing, err := s.messageStore.GetByIdempotencyKey(ctx, *params.IdempotencyKey, params.OrgID)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("checking idempotency key: %w", err)
		}
	}

	msg := &model.Message{
		ID:             id.New(),
		ThreadID:       params.ThreadID,
		SenderType:     params.SenderType,
		SenderID:       params.SenderID,
		Status:         model.MessageStatusSent,
		Content:        params.Content,
		IdempotencyKey: params.IdempotencyKey,
	}

	if err := s.messageStore.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}
	return msg, nil
}

func (s *messageService) ListByThread(ctx context.Context, orgID, threadID int64, pageSize int, cursor string) ([]model.Message, string, error) {
	if _, err := s.threadStore.GetByID(ctx, threadID, orgID); err != nil {
		return nil, "", err
	}
	return s.messageStore.ListByThreadPaged(ctx, threadID, pageSize, cursor)
}
