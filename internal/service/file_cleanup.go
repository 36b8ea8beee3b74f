package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tutorstack.app/api/common/logger"
	"tutorstack.app/api/internal/storage"
	"tutorstack.app/api/internal/store"
)

// FileCleanupService is the orphan detector: given candidate file ids,
// it deletes the ones no attachment or reference points at anymore.
type FileCleanupService interface {
	// CleanupCandidates checks each candidate and removes orphans from
	// both blob storage and the file catalog. It returns the number of
	// files removed. Failures are isolated per file; a non-nil error
	// means at least one candidate failed and the batch should be retried.
	CleanupCandidates(ctx context.Context, fileIDs []int64) (int, error)
}

type fileCleanupService struct {
	files       store.FileStore
	attachments store.AttachmentStore
	references  store.ReferenceStore
	blobs       storage.BlobStore
}

func NewFileCleanupService(
	files store.FileStore,
	attachments store.AttachmentStore,
	references store.ReferenceStore,
	blobs storage.BlobStore,
) FileCleanupService {
	return &fileCleanupService{
		files:       files,
		attachments: attachments,
		references:  references,
		blobs:       blobs,
	}
}

func (s *fileCleanupService) CleanupCandidates(ctx context.Context, fileIDs []int64) (int, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "service.file_cleanup",
	})

	cleaned := 0
	failed := 0

	for _, fileID := range fileIDs {
		removed, err := s.cleanupOne(ctx, fileID)
		if err != nil {
			failed++
			slog.ErrorContext(ctx, "file cleanup failed",
				"error", err,
				"file_id", fileID)
			continue
		}
		if removed {
			cleaned++
		}
	}

	slog.InfoContext(ctx, "cleanup batch finished",
		"candidates", len(fileIDs),
		"cleaned", cleaned,
		"failed", failed)

	if failed > 0 {
		return cleaned, fmt.Errorf("%d of %d cleanup candidates failed", failed, len(fileIDs))
	}
	return cleaned, nil
}

// cleanupOne deletes a single file if it is orphaned. The blob goes first:
// if the blob delete fails the metadata row stays, so the catalog never
// loses track of a blob that still exists.
func (s *fileCleanupService) cleanupOne(ctx context.Context, fileID int64) (bool, error) {
	refs, err := s.references.ListByFile(ctx, fileID)
	if err != nil {
		return false, fmt.Errorf("listing references: %w", err)
	}
	if len(refs) > 0 {
		return false, nil
	}

	atts, err := s.attachments.ListByFile(ctx, fileID)
	if err != nil {
		return false, fmt.Errorf("listing attachments: %w", err)
	}
	if len(atts) > 0 {
		return false, nil
	}

	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Already cleaned by an earlier delivery of the same task.
			return false, nil
		}
		return false, fmt.Errorf("loading file metadata: %w", err)
	}

	if err := s.blobs.Delete(ctx, file.StorageKey); err != nil {
		return false, fmt.Errorf("deleting blob %q: %w", file.StorageKey, err)
	}

	if err := s.files.DeleteByIDs(ctx, []int64{fileID}); err != nil {
		return false, fmt.Errorf("deleting file metadata: %w", err)
	}

	slog.InfoContext(ctx, "orphaned file removed",
		"file_id", fileID,
		"storage_key", file.StorageKey)
	return true, nil
}
