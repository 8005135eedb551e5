package embedding

import (
	"container/heap"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/semgraph/distance"
)

// ScoredWord is a similarity query result.
type ScoredWord struct {
	Word  string
	Score float32
}

// KeyedVectors holds a word embedding model as a flat vector table with a
// word index, similar to a word2vec keyed-vector store. All vectors are
// unit-normalized on insertion, so cosine similarity is a plain dot product.
type KeyedVectors struct {
	dim     int
	words   []string
	index   map[string]int
	vectors []float32 // len(words) * dim, row-major
}

// NewKeyedVectors creates an empty model with the given dimensionality.
func NewKeyedVectors(dim int) (*KeyedVectors, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid dimension: %d", dim)
	}
	return &KeyedVectors{
		dim:   dim,
		index: make(map[string]int),
	}, nil
}

// Dim returns the vector dimensionality.
func (kv *KeyedVectors) Dim() int { return kv.dim }

// Len returns the vocabulary size.
func (kv *KeyedVectors) Len() int { return len(kv.words) }

// Contains reports whether word is in the vocabulary.
func (kv *KeyedVectors) Contains(word string) bool {
	_, ok := kv.index[word]
	return ok
}

// Lookup returns the vocabulary index of word.
func (kv *KeyedVectors) Lookup(word string) (int, bool) {
	id, ok := kv.index[word]
	return id, ok
}

// WordAt returns the word stored at vocabulary index id.
func (kv *KeyedVectors) WordAt(id int) string { return kv.words[id] }

// Vector returns the unit-normalized vector for word. The returned slice
// aliases internal storage and must not be modified.
func (kv *KeyedVectors) Vector(word string) ([]float32, error) {
	id, ok := kv.index[word]
	if !ok {
		return nil, &ErrWordNotFound{Word: word}
	}
	return kv.row(id), nil
}

func (kv *KeyedVectors) row(id int) []float32 {
	off := id * kv.dim
	return kv.vectors[off : off+kv.dim]
}

// Add inserts a word with its vector. The vector is copied and
// unit-normalized. Re-adding an existing word replaces its vector.
func (kv *KeyedVectors) Add(word string, vector []float32) error {
	if len(vector) != kv.dim {
		return fmt.Errorf("vector dimension mismatch: expected %d, got %d", kv.dim, len(vector))
	}

	norm, ok := distance.NormalizeL2Copy(vector)
	if !ok {
		// Zero vectors stay zero and score 0 against everything.
		norm = make([]float32, kv.dim)
	}

	if id, ok := kv.index[word]; ok {
		copy(kv.row(id), norm)
		return nil
	}

	kv.index[word] = len(kv.words)
	kv.words = append(kv.words, word)
	kv.vectors = append(kv.vectors, norm...)

	return nil
}

// MostSimilar returns the topn nearest neighbors of word by cosine
// similarity, in descending score order. The query word itself is excluded.
// If allow is non-nil, only words whose vocabulary index is in the bitmap
// are candidates. Score ties break toward the lower vocabulary index.
func (kv *KeyedVectors) MostSimilar(word string, topn int, allow *roaring.Bitmap) ([]ScoredWord, error) {
	if topn <= 0 {
		return nil, ErrInvalidTopN
	}

	queryID, ok := kv.index[word]
	if !ok {
		return nil, &ErrWordNotFound{Word: word}
	}
	query := kv.row(queryID)

	h := &candidateHeap{}
	heap.Init(h)

	for id := range kv.words {
		if id == queryID {
			continue
		}
		if allow != nil && !allow.Contains(uint32(id)) {
			continue
		}

		score := distance.Dot(query, kv.row(id))
		c := candidate{id: id, score: score}

		if h.Len() < topn {
			heap.Push(h, c)
			continue
		}
		if worst := (*h)[0]; c.better(worst) {
			(*h)[0] = c
			heap.Fix(h, 0)
		}
	}

	// Pop yields worst-first, fill the result back to front.
	results := make([]ScoredWord, h.Len())
	for i := len(results) - 1; i >= 0; i-- {
		c := heap.Pop(h).(candidate)
		results[i] = ScoredWord{Word: kv.words[c.id], Score: c.score}
	}

	return results, nil
}

type candidate struct {
	id    int
	score float32
}

// better reports whether c ranks ahead of other.
func (c candidate) better(other candidate) bool {
	if c.score != other.score {
		return c.score > other.score
	}
	return c.id < other.id
}

// candidateHeap is a min-heap: the root is the current worst candidate.
type candidateHeap []candidate

func (h candidateHeap) Len() int           { return len(h) }
func (h candidateHeap) Less(i, j int) bool { return h[j].better(h[i]) }
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x any)        { *h = append(*h, x.(candidate)) }

func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
