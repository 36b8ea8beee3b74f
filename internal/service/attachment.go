package service

import (
	"context"
	"fmt"

	"tutorstack.app/api/common/id"
	"tutorstack.app/api/internal/model"
	"tutorstack.app/api/internal/store"
)

type AttachmentService interface {
	Create(ctx context.Context, orgID, messageID, fileID int64) (*model.Attachment, error)
	ListByMessage(ctx context.Context, messageID int64) ([]model.Attachment, error)
}

type attachmentService struct {
	attachmentStore store.AttachmentStore
	fileStore       store.FileStore
}

func NewAttachmentService(attachmentStore store.AttachmentStore, fileStore store.FileStore) AttachmentService {
	return &attachmentService{
		attachmentStore: attachmentStore,
		fileStore:       fileStore,
	}
}

func (s *attachmentService) Create(ctx context.Context, orgID, messageID, fileID int64) (*model.Attachment, error) {
	file, err := s.fileStore.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if file.OrgID != orgID {
		return nil, store.ErrNotFound
	}

	att := &model.Attachment{
		ID:        id.New(),
		OrgID:     orgID,
		MessageID: messageID,
		FileID:    fileID,
	}

	if err := s.attachmentStore.Create(ctx, att); err != nil {
		return nil, fmt.Errorf("creating attachment: %w", err)
	}
	return att, nil
}

func (s *attachmentService) ListByMessage(ctx context.Context, messageID int64) ([]model.Attachment, error) {
	return s.attachmentStore.ListByMessage(ctx, messageID)
}
