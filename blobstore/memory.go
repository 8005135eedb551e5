package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"sync"
)

// MemoryStore implements BlobStore backed by an in-memory map.
// It is primarily useful for tests and for models assembled at runtime.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates a new, empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs: make(map[string][]byte),
	}
}

// Put stores a blob under the given name, replacing any existing blob.
func (s *MemoryStore) Put(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.blobs[name] = cp
}

// Open opens a blob for reading.
func (s *MemoryStore) Open(ctx context.Context, name string) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, ok := s.blobs[name]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("blobstore: open %q: %w", name, ErrNotFound)
	}
	return &memoryBlob{r: bytes.NewReader(data), size: int64(len(data))}, nil
}

type memoryBlob struct {
	r    *bytes.Reader
	size int64
}

func (b *memoryBlob) Read(p []byte) (int, error) { return b.r.Read(p) }

func (b *memoryBlob) Size() int64 { return b.size }

func (b *memoryBlob) Close() error { return nil }
