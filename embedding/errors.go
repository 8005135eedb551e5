package embedding

import (
	"errors"
	"fmt"
)

var (
	// ErrModelUnavailable is returned when the underlying embedding model
	// could not be loaded.
	ErrModelUnavailable = errors.New("embedding model unavailable")

	// ErrInvalidTopN is returned when a similarity query asks for a
	// non-positive number of neighbors.
	ErrInvalidTopN = errors.New("topn must be positive")
)

// ErrWordNotFound indicates a query word that is not in the model vocabulary.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrWordNotFound struct {
	Word  string
	cause error
}

func (e *ErrWordNotFound) Error() string {
	return fmt.Sprintf("word not found in vocabulary: %q", e.Word)
}

func (e *ErrWordNotFound) Unwrap() error { return e.cause }
