// Package blobstore provides read-only access to embedding model blobs
// stored on the local file system, in memory, or in object storage.
package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore is an abstraction for fetching immutable model blobs.
type BlobStore interface {
	// Open opens a blob for sequential reading.
	Open(ctx context.Context, name string) (Blob, error)
}

// Blob is a read-only handle to a model blob.
type Blob interface {
	io.Reader
	io.Closer
	// Size returns the size of the blob in bytes.
	Size() int64
}
