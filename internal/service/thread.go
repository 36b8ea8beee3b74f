package service

import (
	"context"
	"fmt"
	"log/slog"

	"tutorstack.app/api/common/id"
	"tutorstack.app/api/common/logger"
	"tutorstack.app/api/internal/model"
	"tutorstack.app/api/internal/store"
)

type CreateThreadParams struct {
	OrgID     int64
	UserID    int64
	FolderID  *int64
	Title     *string
	SortOrder float64
}

type UpdateThreadParams struct {
	FolderID  *int64
	Title     *string
	Status    *model.ThreadStatus
	SortOrder *float64
}

type ThreadService interface {
	Create(ctx context.Context, params CreateThreadParams) (*model.Thread, error)
	Get(ctx context.Context, orgID, threadID int64) (*model.Thread, error)
	Update(ctx context.Context, orgID, threadID int64, params UpdateThreadParams) (*model.Thread, error)
	ListByFolder(ctx context.Context, orgID, folderID int64, pageSize int, cursor string) ([]model.Thread, string, error)
	ListByUser(ctx context.Context, userID int64, pageSize int, cursor string) ([]model.Thread, string, error)

	// Delete cascades to the thread's messages in one transaction, then
	// notifies the cleanup orchestrator.
	Delete(ctx context.Context, orgID, threadID int64) error
}

type threadService struct {
	txRunner     TxRunner
	threadStore  store.ThreadStore
	orchestrator CleanupOrchestrator
}

func NewThreadService(txRunner TxRunner, threadStore store.ThreadStore, orchestrator CleanupOrchestrator) ThreadService {
	return &threadService{
		txRunner:     txRunner,
		threadStore:  threadStore,
		orchestrator: orchestrator,
	}
}

func (s *threadService) Create(ctx context.Context, params CreateThreadParams) (*model.Thread, error) {
	thread := &model.Thread{
		ID:        id.New(),
		OrgID:     params.OrgID,
		UserID:    params.UserID,
		FolderID:  params.FolderID,
		Title:     params.Title,
		Status:    model.ThreadStatusActive,
		SortOrder: params.SortOrder,
	}

	if err := s.threadStore.Create(ctx, thread); err != nil {
		return nil, fmt.Errorf("creating thread: %w", err)
	}
	return thread, nil
}

func (s *threadService) Get(ctx context.Context, orgID, threadID int64) (*model.Thread, error) {
	return s.threadStore.GetByID(ctx, threadID, orgID)
}

func (s *threadService) Update(ctx context.Context, orgID, threadID int64, params UpdateThreadParams) (*model.Thread, error) {
	thread, err := s.threadStore.GetByID(ctx, threadID, orgID)
	if err != nil {
		return nil, err
	}

	if params.FolderID != nil {
		thread.FolderID = params.FolderID
	}
	if params.Title != nil {
		thread.Title = params.Title
	}
	if params.Status != nil {
		thread.Status = *params.Status
	}
	if params.SortOrder != nil {
		thread.SortOrder = *params.SortOrder
	}

	if err := s.threadStore.Update(ctx, thread); err != nil {
		return nil, fmt.Errorf("updating thread: %w", err)
	}
	return thread, nil
}

func (s *threadService) ListByFolder(ctx context.Context, orgID, folderID int64, pageSize int, cursor string) ([]model.Thread, string, error) {
	return s.threadStore.ListByFolderPaged(ctx, orgID, folderID, pageSize, cursor)
}

func (s *threadService) ListByUser(ctx context.Context, userID int64, pageSize int, cursor string) ([]model.Thread, string, error) {
	return s.threadStore.ListByUserPaged(ctx, userID, pageSize, cursor)
}

func (s *threadService) Delete(ctx context.Context, orgID, threadID int64) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		OrgID:     &orgID,
		ThreadID:  &threadID,
		Component: "service.thread",
	})

	var candidates []int64
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if _, err := sp.Threads().GetByID(ctx, threadID, orgID); err != nil {
			return err
		}

		threadIDs := []int64{threadID}
		var err error
		candidates, err = s.orchestrator.CollectThreadCandidates(ctx, sp, threadIDs)
		if err != nil {
			return fmt.Errorf("collecting cleanup candidates: %w", err)
		}

		if err := sp.Messages().DeleteByThreadIDs(ctx, threadIDs); err != nil {
			return fmt.Errorf("deleting messages: %w", err)
		}
		if err := sp.Threads().DeleteByIDs(ctx, threadIDs); err != nil {
			return fmt.Errorf("deleting thread: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.orchestrator.OnThreadsDeleted(ctx, orgID, candidates)

	slog.InfoContext(ctx, "thread deleted", "cleanup_candidates", len(candidates))
	return nil
}
