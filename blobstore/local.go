package blobstore

import (
	"bytes"
	"context"
	"path/filepath"

	"github.com/hupe1980/semgraph/internal/mmap"
)

// LocalStore implements BlobStore using the local file system.
// Files are memory-mapped, so large embedding models are paged in on demand
// rather than copied into the heap.
type LocalStore struct {
	root string
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Open opens a blob for reading.
func (s *LocalStore) Open(ctx context.Context, name string) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := mmap.Open(filepath.Join(s.root, name))
	if err != nil {
		return nil, err
	}
	return &localBlob{m: m, r: bytes.NewReader(m.Bytes())}, nil
}

type localBlob struct {
	m *mmap.File
	r *bytes.Reader
}

func (b *localBlob) Read(p []byte) (int, error) {
	return b.r.Read(p)
}

func (b *localBlob) Size() int64 {
	return b.m.Size()
}

func (b *localBlob) Close() error {
	return b.m.Close()
}
