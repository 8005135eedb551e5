package semgraph

import "errors"

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidHops is returned when hops is not positive.
	ErrInvalidHops = errors.New("hops must be positive")

	// ErrNoValidSeeds is returned together with an empty graph when none of
	// the seed words exist in the model vocabulary. It distinguishes "no
	// usable input" from a graph that legitimately contains an isolated
	// seed and nothing else.
	ErrNoValidSeeds = errors.New("no valid seed words")
)
