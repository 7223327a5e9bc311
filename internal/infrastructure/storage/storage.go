// Package storage provides object storage implementations for uploaded
// media and documents.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyKey is returned when an operation is called without a storage key
var ErrEmptyKey = errors.New("storage key is required")

// StoredObject describes an object after a successful upload
type StoredObject struct {
	Key      string
	URL      string
	Size     int64
	MimeType string
}

// ObjectStorage stores and removes uploaded files. Implementations return
// a URL from which the object can be fetched.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (*StoredObject, error)
	Delete(ctx context.Context, key string) error
}

// BuildKey produces a collision-free storage key for an upload, preserving
// the original file extension: <prefix>/<timestamp>-<random><ext>
func BuildKey(prefix, filename string) string {
	ext := path.Ext(filename)
	return fmt.Sprintf("%s/%d-%s%s", prefix, time.Now().UnixNano(), uuid.New().String()[:8], ext)
}
