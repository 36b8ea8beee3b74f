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

type CreateFolderParams struct {
	OrgID       int64
	OwnerUserID int64
	ParentID    *int64
	Type        model.FolderType
	Name        string
	SortOrder   float64
}

type FolderService interface {
	Create(ctx context.Context, params CreateFolderParams) (*model.Folder, error)
	ListByOrg(ctx context.Context, orgID int64) ([]model.Folder, error)

	// Delete cascades: the folder's threads and their messages go in one
	// transaction, then the cleanup orchestrator is notified. Nested
	// sub-folders are not cascaded; the folder model is flat.
	Delete(ctx context.Context, orgID, folderID int64) error
}

type folderService struct {
	txRunner     TxRunner
	folderStore  store.FolderStore
	orchestrator CleanupOrchestrator
}

func NewFolderService(txRunner TxRunner, folderStore store.FolderStore, orchestrator CleanupOrchestrator) FolderService {
	return &folderService{
		txRunner:     txRunner,
		folderStore:  folderStore,
		orchestrator: orchestrator,
	}
}

func (s *folderService) Create(ctx context.Context, params CreateFolderParams) (*model.Folder, error) {
	folderType := params.Type
	if folderType == "" {
		folderType = model.FolderTypeFolder
	}

	folder := &model.Folder{
		ID:          id.New(),
		OrgID:       params.OrgID,
		OwnerUserID: params.OwnerUserID,
		ParentID:    params.ParentID,
		Type:        folderType,
		Status:      model.FolderStatusActive,
		Name:        params.Name,
		SortOrder:   params.SortOrder,
	}

	if err := s.folderStore.Create(ctx, folder); err != nil {
		return nil, fmt.Errorf("creating folder: %w", err)
	}
	return folder, nil
}

func (s *folderService) ListByOrg(ctx context.Context, orgID int64) ([]model.Folder, error) {
	return s.folderStore.ListByOrg(ctx, orgID)
}

func (s *folderService) Delete(ctx context.Context, orgID, folderID int64) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		OrgID:     &orgID,
		Component: "service.folder",
	})

	var candidates []int64
	var threadCount int
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if _, err := sp.Folders().GetByID(ctx, folderID, orgID); err != nil {
			return err
		}

		threadIDs, err := sp.Threads().ListIDsByFolder(ctx, orgID, folderID)
		if err != nil {
			return fmt.Errorf("listing folder threads: %w", err)
		}
		threadCount = len(threadIDs)

		candidates, err = s.orchestrator.CollectThreadCandidates(ctx, sp, threadIDs)
		if err != nil {
			return fmt.Errorf("collecting cleanup candidates: %w", err)
		}

		if err := sp.Messages().DeleteByThreadIDs(ctx, threadIDs); err != nil {
			return fmt.Errorf("deleting messages: %w", err)
		}
		if err := sp.Threads().DeleteByIDs(ctx, threadIDs); err != nil {
			return fmt.Errorf("deleting threads: %w", err)
		}
		if err := sp.Folders().Delete(ctx, folderID); err != nil {
			return fmt.Errorf("deleting folder: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.orchestrator.OnThreadsDeleted(ctx, orgID, candidates)

	slog.InfoContext(ctx, "folder deleted",
		"folder_id", folderID,
		"threads_deleted", threadCount,
		"cleanup_candidates", len(candidates))
	return nil
}
