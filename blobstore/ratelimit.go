package blobstore

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimitedStore wraps a BlobStore and throttles reads to a byte rate.
// Useful when pulling large models from shared object storage without
// saturating the link.
type RateLimitedStore struct {
	inner   BlobStore
	limiter *rate.Limiter
}

// NewRateLimitedStore creates a RateLimitedStore with the given byte-per-second
// limit and burst size. burst also caps the largest single read that can be
// throttled in one step.
func NewRateLimitedStore(inner BlobStore, bytesPerSec float64, burst int) *RateLimitedStore {
	return &RateLimitedStore{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(bytesPerSec), burst),
	}
}

// Open opens a blob whose reads are throttled by the store's limiter.
func (s *RateLimitedStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &rateLimitedBlob{inner: b, ctx: ctx, limiter: s.limiter}, nil
}

type rateLimitedBlob struct {
	inner   Blob
	ctx     context.Context
	limiter *rate.Limiter
}

func (b *rateLimitedBlob) Read(p []byte) (int, error) {
	// Cap the read at the burst size so WaitN can always be satisfied.
	if burst := b.limiter.Burst(); len(p) > burst {
		p = p[:burst]
	}
	n, err := b.inner.Read(p)
	if n > 0 {
		if werr := b.limiter.WaitN(b.ctx, n); werr != nil && err == nil {
			err = werr
		}
	}
	return n, err
}

func (b *rateLimitedBlob) Size() int64 { return b.inner.Size() }

func (b *rateLimitedBlob) Close() error { return b.inner.Close() }
