package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var _ ObjectStorage = (*LocalObjectStorage)(nil)

// LocalObjectStorage stores objects on the local filesystem. Objects are
// served by the HTTP layer from the configured directory.
type LocalObjectStorage struct {
	dir     string
	baseURL string
}

// NewLocalObjectStorage creates a filesystem-backed storage rooted at dir.
// Object URLs are built as baseURL/<key>.
func NewLocalObjectStorage(dir, baseURL string) (*LocalObjectStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	if baseURL == "" {
		baseURL = "/uploads"
	}
	return &LocalObjectStorage{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Dir returns the root directory objects are written to
func (l *LocalObjectStorage) Dir() string {
	return l.dir
}

// Upload writes the object under the storage directory and returns its URL
func (l *LocalObjectStorage) Upload(_ context.Context, key string, data []byte, contentType string) (*StoredObject, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	full, err := l.resolve(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create object directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write object: %w", err)
	}

	return &StoredObject{
		Key:      key,
		URL:      l.baseURL + "/" + key,
		Size:     int64(len(data)),
		MimeType: contentType,
	}, nil
}

// Delete removes the object file; deleting a missing object is not an error
func (l *LocalObjectStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	full, err := l.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// resolve maps a key to a path under the storage directory, rejecting
// traversal outside it.
func (l *LocalObjectStorage) resolve(key string) (string, error) {
	full := filepath.Join(l.dir, filepath.FromSlash(key))
	rel, err := filepath.Rel(l.dir, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return full, nil
}
