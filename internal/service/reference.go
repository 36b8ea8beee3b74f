package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tutorstack.app/api/common/id"
	"tutorstack.app/api/common/logger"
	"tutorstack.app/api/internal/model"
	"tutorstack.app/api/internal/store"
)

// ErrReferenceTarget is returned when a reference names neither a URL nor
// a file.
var ErrReferenceTarget = errors.New("reference requires a url or a file")

type CreateReferenceParams struct {
	OrgID     int64
	ThreadID  int64
	MessageID *int64
	FileID    *int64
	URL       *string
	Title     *string
}

type ReferenceService interface {
	Create(ctx context.Context, params CreateReferenceParams) (*model.Reference, error)
	ListByThread(ctx context.Context, orgID, threadID int64) ([]model.Reference, error)

	// DeleteByThread removes a thread's references and notifies the
	// cleanup orchestrator so the files they pointed at get re-checked.
	DeleteByThread(ctx context.Context, orgID, threadID int64) error
}

type referenceService struct {
	txRunner     TxRunner
	refStore     store.ReferenceStore
	threadStore  store.ThreadStore
	fileStore    store.FileStore
	orchestrator CleanupOrchestrator
}

func NewReferenceService(txRunner TxRunner, refStore store.ReferenceStore, threadStore store.ThreadStore, fileStore store.FileStore, orchestrator CleanupOrchestrator) ReferenceService {
	return &referenceService{
		txRunner:     txRunner,
		refStore:     refStore,
		threadStore:  threadStore,
		fileStore:    fileStore,
		orchestrator: orchestrator,
	}
}

func (s *referenceService) Create(ctx context.Context, params CreateReferenceParams) (*model.Reference, error) {
	hasURL := params.URL != nil && *params.URL != ""
	if !hasURL && params.FileID == nil {
		return nil, ErrReferenceTarget
	}

	if _, err := s.threadStore.GetByID(ctx, params.ThreadID, params.OrgID); err != nil {
		return nil, err
	}

	if params.FileID != nil {
		file, err := s.fileStore.GetByID(ctx, *params.FileID)
		if err != nil {
			return nil, err
		}
		if file.OrgID != params.OrgID {
			return nil, store.ErrNotFound
		}
	}

	ref := &model.Reference{
		ID:        id.New(),
		OrgID:     params.OrgID,
		ThreadID:  params.ThreadID,
		MessageID: params.MessageID,
		FileID:    params.FileID,
		URL:       params.URL,
		Title:     params.Title,
	}

	if err := s.refStore.Create(ctx, ref); err != nil {
		return nil, fmt.Errorf("creating reference: %w", err)
	}
	return ref, nil
}

func (s *referenceService) ListByThread(ctx context.Context, orgID, threadID int64) ([]model.Reference, error) {
	if _, err := s.threadStore.GetByID(ctx, threadID, orgID); err != nil {
		return nil, err
	}
	return s.refStore.ListByThread(ctx, threadID)
}

func (s *referenceService) DeleteByThread(ctx context.Context, orgID, threadID int64) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		OrgID:     &orgID,
		ThreadID:  &threadID,
		Component: "service.reference",
	})

	var candidates []int64
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if _, err := sp.Threads().GetByID(ctx, threadID, orgID); err != nil {
			return err
		}

		var err error
		candidates, err = s.orchestrator.CollectReferenceCandidates(ctx, sp, threadID)
		if err != nil {
			return fmt.Errorf("collecting cleanup candidates: %w", err)
		}

		if err := sp.References().DeleteByThread(ctx, threadID); err != nil {
			return fmt.Errorf("deleting references: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.orchestrator.OnReferencesDeleted(ctx, orgID, candidates)

	slog.InfoContext(ctx, "thread references deleted", "cleanup_candidates", len(candidates))
	return nil
}
