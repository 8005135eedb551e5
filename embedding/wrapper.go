package embedding

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/semgraph/blobstore"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultCacheCapacity is the default maximum number of cached
	// neighbor lists.
	DefaultCacheCapacity = 5000

	// DefaultMaxK is the default number of neighbors per word. Similarity
	// queries over-fetch relative to this so that later requests with a
	// larger k can often still be served from the cache.
	DefaultMaxK = 20
)

// Options configures a Wrapper.
type Options struct {
	// CacheCapacity is the maximum number of neighbor lists to cache.
	CacheCapacity int

	// DefaultK is the baseline neighbor count used for over-fetching.
	DefaultK int

	// Preload loads the model eagerly instead of on first use.
	// Load failures are logged and the wrapper degrades to empty results.
	Preload bool

	// Logger receives load and query diagnostics.
	Logger *slog.Logger

	// Allow restricts similarity results to words whose vocabulary index
	// is in the bitmap. See also SetAllow.
	Allow *roaring.Bitmap
}

// Stats reports cache effectiveness counters.
type Stats struct {
	Hits     int64
	Misses   int64
	Size     int
	Capacity int
}

// Wrapper provides cached top-k neighbor queries over an embedding model.
//
// The model is loaded lazily from the blob store on first use. If loading
// fails, the failure is recorded and all queries return empty results
// without retrying, so a missing model degrades service instead of
// breaking it.
//
// Wrapper is safe for concurrent use.
type Wrapper struct {
	store blobstore.BlobStore
	name  string

	opts   Options
	logger *slog.Logger

	kv         atomic.Pointer[KeyedVectors]
	loadFailed atomic.Bool
	loadGroup  singleflight.Group

	mu    sync.Mutex
	cache *lruCache
	allow *roaring.Bitmap

	hits   atomic.Int64
	misses atomic.Int64
}

// NewWrapper creates a Wrapper that loads the named model from store.
func NewWrapper(store blobstore.BlobStore, name string, optFns ...func(o *Options)) *Wrapper {
	opts := Options{
		CacheCapacity: DefaultCacheCapacity,
		DefaultK:      DefaultMaxK,
		Logger:        slog.New(slog.DiscardHandler),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	w := &Wrapper{
		store:  store,
		name:   name,
		opts:   opts,
		logger: opts.Logger,
		cache:  newLRUCache(opts.CacheCapacity),
		allow:  opts.Allow,
	}

	if opts.Preload {
		_ = w.Load(context.Background())
	}

	return w
}

// NewWrapperFromKeyedVectors creates a Wrapper over an already loaded model.
func NewWrapperFromKeyedVectors(kv *KeyedVectors, optFns ...func(o *Options)) *Wrapper {
	w := NewWrapper(nil, "", optFns...)
	w.kv.Store(kv)
	return w
}

// Load loads the embedding model if it is not loaded yet. It is safe to
// call concurrently; only one load runs at a time. A failed load is
// remembered and not retried.
func (w *Wrapper) Load(ctx context.Context) error {
	if w.kv.Load() != nil {
		return nil
	}
	if w.loadFailed.Load() {
		return ErrModelUnavailable
	}

	_, err, _ := w.loadGroup.Do("load", func() (any, error) {
		if w.kv.Load() != nil {
			return nil, nil
		}

		w.logger.Info("loading embedding model", slog.String("name", w.name))

		kv, err := Open(ctx, w.store, w.name)
		if err != nil {
			w.loadFailed.Store(true)
			w.logger.Error("failed to load embedding model", slog.String("name", w.name), slog.Any("error", err))
			return nil, err
		}

		w.logger.Info("embedding model loaded",
			slog.String("name", w.name),
			slog.Int("vocabulary", kv.Len()),
			slog.Int("dimension", kv.Dim()),
		)

		w.kv.Store(kv)
		return nil, nil
	})
	if err != nil {
		return ErrModelUnavailable
	}

	return nil
}

// Loaded reports whether the model is available.
func (w *Wrapper) Loaded() bool { return w.kv.Load() != nil }

// SetAllow restricts similarity results to words whose vocabulary index is
// in the bitmap. Passing nil removes the restriction. The neighbor cache is
// purged since cached lists were computed under the previous restriction.
func (w *Wrapper) SetAllow(allow *roaring.Bitmap) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.allow = allow
	w.cache.purge()
}

// KeyedVectors returns the underlying model, or nil when it is not loaded.
func (w *Wrapper) KeyedVectors() *KeyedVectors {
	return w.kv.Load()
}

// InVocab reports whether the normalized form of word is in the model
// vocabulary. It returns false when the model is unavailable.
func (w *Wrapper) InVocab(word string) bool {
	if err := w.Load(context.Background()); err != nil {
		return false
	}
	return w.kv.Load().Contains(Normalize(word))
}

// Get returns up to k neighbors of word, most similar first, skipping any
// words in ignores. The word is normalized before lookup. Results are
// served from the cache when a previous query fetched at least k
// neighbors; otherwise the model is queried with an over-fetch of
// max(k, DefaultK)*2 and the unfiltered list is cached.
//
// An unavailable model or a word outside the vocabulary yields an empty
// result rather than an error.
func (w *Wrapper) Get(word string, k int, ignores []string) []string {
	if k <= 0 {
		return []string{}
	}

	if err := w.Load(context.Background()); err != nil {
		return []string{}
	}
	kv := w.kv.Load()

	word = Normalize(word)
	if word == "" {
		return []string{}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if neighbors, ok := w.cache.get(word); ok && len(neighbors) >= k {
		w.hits.Add(1)
		return FilterList(neighbors, ignores, k)
	}

	w.misses.Add(1)

	// Fetch beyond what was asked for so later queries hit the cache.
	actualK := max(k, w.opts.DefaultK) * 2

	results, err := kv.MostSimilar(word, actualK, w.allow)
	if err != nil {
		w.logger.Warn("failed to find most similar words", slog.String("word", word), slog.Any("error", err))
		return []string{}
	}

	neighbors := make([]string, len(results))
	for i, r := range results {
		neighbors[i] = r.Word
	}

	w.cache.set(word, neighbors)

	return FilterList(neighbors, ignores, k)
}

// Contains implements the neighbor source used by graph construction.
func (w *Wrapper) Contains(word string) bool { return w.InVocab(word) }

// Neighbors implements the neighbor source used by graph construction.
func (w *Wrapper) Neighbors(word string, k int) []string {
	return w.Get(word, k, nil)
}

// Stats returns cache counters.
func (w *Wrapper) Stats() Stats {
	w.mu.Lock()
	size := w.cache.len()
	capacity := w.cache.capacity
	w.mu.Unlock()

	return Stats{
		Hits:     w.hits.Load(),
		Misses:   w.misses.Load(),
		Size:     size,
		Capacity: capacity,
	}
}
