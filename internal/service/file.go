package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tutorstack.app/api/common/id"
	"tutorstack.app/api/common/logger"
	"tutorstack.app/api/internal/model"
	"tutorstack.app/api/internal/storage"
	"tutorstack.app/api/internal/store"
)

const presignTTL = 15 * time.Minute

type UploadFileParams struct {
	OrgID       int64
	OwnerUserID int64
	FileName    string
	ContentType string
	Content     io.Reader
}

// FileDownload is either a presigned URL or a streamed body, depending on
// what the blob backend supports. Exactly one of URL and Body is set; the
// caller must close Body when present.
type FileDownload struct {
	File *model.StoredFile
	URL  string
	Body io.ReadCloser
}

type FileService interface {
	// Upload stores a blob and its metadata. Uploading content an org
	// already holds (same sha256 checksum) returns the existing record
	// without writing a second blob.
	Upload(ctx context.Context, params UploadFileParams) (*model.StoredFile, error)
	Download(ctx context.Context, orgID, fileID int64) (*FileDownload, error)
	ListByOrg(ctx context.Context, orgID int64, pageSize int, cursor string) ([]model.StoredFile, string, error)
}

type fileService struct {
	fileStore store.FileStore
	blobs     storage.BlobStore
}

func NewFileService(fileStore store.FileStore, blobs storage.BlobStore) FileService {
	return &fileService{
		fileStore: fileStore,
		blobs:     blobs,
	}
}

func (s *fileService) Upload(ctx context.Context, params UploadFileParams) (*model.StoredFile, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		OrgID:     &params.OrgID,
		Component: "service.file",
	})

	content, err := io.ReadAll(params.Content)
	if err != nil {
		return nil, fmt.Errorf("reading upload content: %w", err)
	}

	sum := sha256.Sum256(content)
	checksum := hex.EncodeToString(sum[:])

	existing, err := s.fileStore.GetByChecksum(ctx, params.OrgID, checksum)
	if err == nil {
		slog.InfoContext(ctx, "upload deduplicated",
			"file_id", existing.ID,
			"checksum", checksum)
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking checksum: %w", err)
	}

	key := fmt.Sprintf("orgs/%d/files/%s", params.OrgID, uuid.NewString())
	size := int64(len(content))

	if err := s.blobs.Upload(ctx, key, bytes.NewReader(content), size, params.ContentType); err != nil {
		return nil, fmt.Errorf("uploading blob: %w", err)
	}

	file := &model.StoredFile{
		ID:             id.New(),
		OrgID:          params.OrgID,
		OwnerUserID:    params.OwnerUserID,
		FileName:       params.FileName,
		ContentType:    params.ContentType,
		StorageKey:     key,
		SizeBytes:      size,
		ChecksumSHA256: &checksum,
	}

	if err := s.fileStore.Create(ctx, file); err != nil {
		// The blob is already written; remove it so a failed metadata
		// insert does not leak storage.
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			slog.ErrorContext(ctx, "failed to remove blob after metadata insert failure",
				"error", delErr,
				"storage_key", key)
		}
		return nil, fmt.Errorf("creating file record: %w", err)
	}

	slog.InfoContext(ctx, "file uploaded",
		"file_id", file.ID,
		"size_bytes", size)
	return file, nil
}

func (s *fileService) Download(ctx context.Context, orgID, fileID int64) (*FileDownload, error) {
	file, err := s.fileStore.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if file.OrgID != orgID {
		return nil, store.ErrNotFound
	}

	url, err := s.blobs.PresignDownload(ctx, file.StorageKey, presignTTL)
	if err == nil {
		return &FileDownload{File: file, URL: url}, nil
	}
	if !errors.Is(err, storage.ErrPresignUnsupported) {
		return nil, fmt.Errorf("presigning download: %w", err)
	}

	body, err := s.blobs.Download(ctx, file.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("downloading blob: %w", err)
	}
	return &FileDownload{File: file, Body: body}, nil
}

func (s *fileService) ListByOrg(ctx context.Context, orgID int64, pageSize int, cursor string) ([]model.StoredFile, string, error) {
	return s.fileStore.ListByOrgPaged(ctx, orgID, pageSize, cursor)
}
