// Package local implements storage.BlobStore on the local filesystem.
// It exists for development and tests; production uses the s3 backend.
package local

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tutorstack.app/api/internal/storage"
)

// Store implements storage.BlobStore using a directory on disk. Keys map
// to file paths under the root.
type Store struct {
	root string
}

// New creates a local blob store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("local: root directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &storage.BlobError{Op: "New", Key: dir, Err: err}
	}
	return &Store{root: dir}, nil
}

// path resolves a key inside the root, rejecting traversal outside it.
func (s *Store) path(key string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(key))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", &storage.BlobError{Op: "path", Key: key, Err: errors.New("invalid key")}
	}
	return filepath.Join(s.root, cleaned), nil
}

func (s *Store) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return &storage.BlobError{Op: "Upload", Key: key, Err: err}
	}

	// Write to a temp file and rename so readers never see partial content.
	tmp, err := os.CreateTemp(filepath.Dir(p), ".upload-*")
	if err != nil {
		return &storage.BlobError{Op: "Upload", Key: key, Err: err}
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close() //nolint:errcheck
		return &storage.BlobError{Op: "Upload", Key: key, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &storage.BlobError{Op: "Upload", Key: key, Err: err}
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return &storage.BlobError{Op: "Upload", Key: key, Err: err}
	}
	return nil
}

func (s *Store) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &storage.BlobError{Op: "Download", Key: key, Err: storage.ErrNotFound}
		}
		return nil, &storage.BlobError{Op: "Download", Key: key, Err: err}
	}
	return f, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &storage.BlobError{Op: "Delete", Key: key, Err: err}
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	p, err := s.path(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, &storage.BlobError{Op: "Exists", Key: key, Err: err}
	}
	return true, nil
}

func (s *Store) PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "", storage.ErrPresignUnsupported
}

var _ storage.BlobStore = (*Store)(nil)
