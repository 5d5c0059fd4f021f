// Package storage provides the object store client used for product images.
package storage

import (
	"context"
	"io"
	"time"
)

// ObjectStore abstracts the S3-compatible blob storage service.
// Implementations return opaque public URLs as object references; callers
// never construct or parse keys themselves.
type ObjectStore interface {
	// EnsureBucket makes sure the bucket exists and is publicly readable.
	// It is idempotent and advisory: callers may treat a failure as non-fatal.
	EnsureBucket(ctx context.Context) error

	// Store writes the object under a generated unique key, preserving the
	// original file extension, and returns a public URL for retrieval.
	// Returns an error wrapping ErrStorageWrite on any transport or service failure.
	Store(ctx context.Context, r io.Reader, filename, contentType string, size int64) (string, error)

	// Delete removes the object identified by a previously returned URL.
	// Returns an error wrapping ErrStorageDelete on failure.
	Delete(ctx context.Context, objectURL string) error

	// PresignedURL produces a time-limited retrieval URL for the given object key.
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
