// Package storage abstracts the blob backend that holds uploaded file
// content. Metadata lives in Postgres; only the raw bytes go through here.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

var (
	// ErrNotFound is returned when the requested blob does not exist.
	ErrNotFound = errors.New("blob not found")

	// ErrAccessDenied is returned when the credentials lack permission
	// for the operation.
	ErrAccessDenied = errors.New("access denied")

	// ErrPresignUnsupported is returned by backends that cannot issue
	// presigned URLs. Callers fall back to streaming the blob directly.
	ErrPresignUnsupported = errors.New("presigned URLs not supported")
)

// BlobError wraps an error with the operation and blob key for context.
type BlobError struct {
	Op  string
	Key string
	Err error
}

func (e *BlobError) Error() string {
	return fmt.Sprintf("storage: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *BlobError) Unwrap() error {
	return e.Err
}

// BlobStore is the interface for blob operations.
//
// Implementations must be safe for concurrent use. Delete is idempotent:
// deleting a missing blob succeeds, which lets cleanup retry safely.
type BlobStore interface {
	// Upload stores a blob at the given key. The reader is consumed until
	// EOF; size must match the total bytes read.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Download retrieves a blob. The caller must close the returned reader.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a blob. Deleting a non-existent blob is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a blob is present at the key.
	Exists(ctx context.Context, key string) (bool, error)

	// PresignDownload returns a time-limited URL for direct download, or
	// ErrPresignUnsupported if the backend cannot issue one.
	PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error)
}
