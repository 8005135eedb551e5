package semgraph

import (
	"context"
	"sort"
	"time"

	"github.com/hupe1980/semgraph/embedding"
)

// NeighborSource answers top-k similarity queries over a word embedding
// model. embedding.Wrapper implements it; tests use stub models.
//
// Neighbors returns up to k words in similarity-descending order. A word
// outside the vocabulary or a degraded model yields an empty list, never
// an error.
type NeighborSource interface {
	// Contains reports whether word is in the model vocabulary.
	Contains(word string) bool

	// Neighbors returns up to k most-similar words, best first.
	Neighbors(word string, k int) []string
}

// Builder constructs semantic graphs from seed words by querying a
// NeighborSource. A Builder is stateless between builds and safe for
// concurrent use as long as its source is.
type Builder struct {
	source NeighborSource
	opts   options
}

// New creates a new Builder on top of the given neighbor source.
func New(source NeighborSource, optFns ...Option) *Builder {
	opts := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Builder{
		source: source,
		opts:   opts,
	}
}

// Build constructs a semantic graph from the given seed words.
//
// Phase 1 expands outward from the seeds in breadth-first hops, connecting
// each expanded word to its top-k neighbors. Phase 2 then adds an edge
// between every pair of graph words that are mutual top-k neighbors, which
// densifies the graph with relationships the expansion missed.
//
// Seeds are normalized and de-duplicated; seeds missing from the model
// vocabulary are dropped with a warning. When no seed survives, Build
// returns an empty graph together with ErrNoValidSeeds.
//
// Per-word lookup failures degrade to "no neighbors for this word" and do
// not abort the build. Neighbor lists fetched during expansion are reused
// for the densification pass, so each word is queried at most once.
func (b *Builder) Build(ctx context.Context, seeds []string, k, hops int) (*SemanticGraph, error) {
	return b.build(ctx, seeds, k, hops, false)
}

// BuildReference constructs the same graph as Build using the direct
// two-phase formulation: no per-build memoization and list scans instead
// of set membership in the densification pass. It exists as the behavioral
// baseline the optimized path is tested against, and is useful when
// auditing changes to the build algorithm.
func (b *Builder) BuildReference(ctx context.Context, seeds []string, k, hops int) (*SemanticGraph, error) {
	return b.build(ctx, seeds, k, hops, true)
}

func (b *Builder) build(ctx context.Context, seeds []string, k, hops int, reference bool) (*SemanticGraph, error) {
	start := time.Now()

	graph, err := func() (*SemanticGraph, error) {
		if k <= 0 {
			return nil, ErrInvalidK
		}
		if hops <= 0 {
			return nil, ErrInvalidHops
		}

		valid := b.validSeeds(ctx, seeds)
		if len(valid) == 0 {
			return emptyGraph(), ErrNoValidSeeds
		}

		if reference {
			return b.buildReference(ctx, valid, k, hops)
		}
		return b.buildFast(ctx, valid, k, hops)
	}()

	duration := time.Since(start)

	if graph != nil {
		b.opts.metricsCollector.RecordBuild(len(graph.Nodes), len(graph.Edges), duration, err)
		b.opts.logger.LogBuild(ctx, seeds, k, hops, len(graph.Nodes), len(graph.Edges), err)
	} else {
		b.opts.metricsCollector.RecordBuild(0, 0, duration, err)
		b.opts.logger.LogBuild(ctx, seeds, k, hops, 0, 0, err)
	}

	return graph, err
}

// validSeeds normalizes and de-duplicates the seeds, preserving input
// order, and drops seeds missing from the model vocabulary.
func (b *Builder) validSeeds(ctx context.Context, seeds []string) []string {
	seen := make(map[string]struct{}, len(seeds))
	valid := make([]string, 0, len(seeds))

	for _, seed := range seeds {
		word := embedding.Normalize(seed)
		if word == "" {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}

		if !b.source.Contains(word) {
			b.opts.logger.WarnContext(ctx, "seed word not in vocabulary", "word", word)
			continue
		}
		valid = append(valid, word)
	}

	return valid
}

// buildFast is the optimized build path. It memoizes every neighbor list
// fetched during expansion for reuse in the densification pass, stores
// edges canonically in a set so deduplication happens on insert, and
// checks pair mutuality against sets rather than scanning lists.
func (b *Builder) buildFast(ctx context.Context, seeds []string, k, hops int) (*SemanticGraph, error) {
	visited := newOrderedSet()
	frontier := newOrderedSet()
	nextFrontier := newOrderedSet()
	hopDist := make(map[string]int)
	edges := make(map[Edge]struct{})
	neighborCache := make(map[string][]string)

	frontier.addAll(seeds)

	for hop := 1; hop <= hops; hop++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for _, word := range frontier.items {
			if visited.contains(word) {
				continue
			}

			if existing, ok := hopDist[word]; ok {
				hopDist[word] = min(hop-1, existing)
			} else {
				hopDist[word] = hop - 1
			}

			visited.add(word)

			neighbors := b.queryNeighbors(word, k)
			neighborCache[word] = neighbors

			if len(neighbors) == 0 {
				b.opts.logger.LogNoNeighbors(ctx, word)
				continue
			}

			for _, neighbor := range truncate(neighbors, k) {
				if neighbor == word {
					continue
				}
				if _, ok := hopDist[neighbor]; !ok {
					hopDist[neighbor] = hop
				}
				nextFrontier.add(neighbor)
				edges[NewEdge(word, neighbor)] = struct{}{}
			}
		}

		if hop < hops {
			frontier = nextFrontier
			nextFrontier = newOrderedSet()
		} else {
			// Leaf neighbors from the last hop are graph nodes too.
			visited.addAll(nextFrontier.items)
		}
	}

	nodes := visited.sorted()

	// Densification: fetch lists only for words the expansion never
	// queried, then test all pairs for mutual membership.
	for _, word := range nodes {
		if _, ok := neighborCache[word]; !ok {
			neighborCache[word] = b.queryNeighbors(word, k)
		}
	}

	neighborSets := make(map[string]map[string]struct{}, len(nodes))
	for word, neighbors := range neighborCache {
		set := make(map[string]struct{}, k)
		for _, n := range truncate(neighbors, k) {
			set[n] = struct{}{}
		}
		neighborSets[word] = set
	}

	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			w1, w2 := nodes[i], nodes[j]
			if _, ok := neighborSets[w2][w1]; !ok {
				continue
			}
			if _, ok := neighborSets[w1][w2]; !ok {
				continue
			}
			edges[NewEdge(w1, w2)] = struct{}{}
		}
	}

	return finishGraph(nodes, edgeSetToSlice(edges), hopDist), nil
}

// buildReference is the baseline build path: same phases, but neighbor
// lists are re-fetched in the densification pass, mutuality is tested by
// scanning lists, and edges are deduplicated at the end.
func (b *Builder) buildReference(ctx context.Context, seeds []string, k, hops int) (*SemanticGraph, error) {
	visited := newOrderedSet()
	frontier := newOrderedSet()
	nextFrontier := newOrderedSet()
	hopDist := make(map[string]int)
	var edges []Edge

	frontier.addAll(seeds)

	for hop := 1; hop <= hops; hop++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for _, word := range frontier.items {
			if visited.contains(word) {
				continue
			}

			if existing, ok := hopDist[word]; ok {
				hopDist[word] = min(hop-1, existing)
			} else {
				hopDist[word] = hop - 1
			}

			visited.add(word)

			neighbors := b.queryNeighbors(word, k)
			if len(neighbors) == 0 {
				b.opts.logger.LogNoNeighbors(ctx, word)
				continue
			}

			for _, neighbor := range truncate(neighbors, k) {
				if neighbor == word {
					continue
				}
				if _, ok := hopDist[neighbor]; !ok {
					hopDist[neighbor] = hop
				}
				nextFrontier.add(neighbor)
				edges = append(edges, NewEdge(word, neighbor))
			}
		}

		if hop < hops {
			frontier = nextFrontier
			nextFrontier = newOrderedSet()
		} else {
			visited.addAll(nextFrontier.items)
		}
	}

	nodes := visited.sorted()

	// Densification with fresh lookups for every node.
	extraNeighbors := make(map[string][]string, len(nodes))
	for _, word := range nodes {
		extraNeighbors[word] = truncate(b.queryNeighbors(word, k), k)
	}

	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			w1, w2 := nodes[i], nodes[j]
			if containsWord(extraNeighbors[w2], w1) && containsWord(extraNeighbors[w1], w2) {
				edges = append(edges, NewEdge(w1, w2))
			}
		}
	}

	// Deduplicate canonical edges.
	unique := make(map[Edge]struct{}, len(edges))
	for _, e := range edges {
		unique[e] = struct{}{}
	}

	return finishGraph(nodes, edgeSetToSlice(unique), hopDist), nil
}

func (b *Builder) queryNeighbors(word string, k int) []string {
	start := time.Now()
	neighbors := b.source.Neighbors(word, k)
	b.opts.metricsCollector.RecordNeighborQuery(k, len(neighbors), time.Since(start))
	return neighbors
}

func emptyGraph() *SemanticGraph {
	return &SemanticGraph{
		Nodes: []string{},
		Edges: []Edge{},
		Hops:  map[string]int{},
	}
}

func finishGraph(nodes []string, edges []Edge, hopDist map[string]int) *SemanticGraph {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})

	return &SemanticGraph{
		Nodes: nodes,
		Edges: edges,
		Hops:  hopDist,
	}
}

func edgeSetToSlice(set map[Edge]struct{}) []Edge {
	edges := make([]Edge, 0, len(set))
	for e := range set {
		edges = append(edges, e)
	}
	return edges
}

func truncate(words []string, k int) []string {
	if len(words) > k {
		return words[:k]
	}
	return words
}

func containsWord(words []string, word string) bool {
	for _, w := range words {
		if w == word {
			return true
		}
	}
	return false
}

// orderedSet is a set with deterministic, insertion-ordered iteration.
// Frontier iteration order affects edge discovery order, so a plain map
// would make logged behavior nondeterministic across runs.
type orderedSet struct {
	items []string
	index map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{index: make(map[string]struct{})}
}

func (s *orderedSet) add(word string) {
	if _, ok := s.index[word]; ok {
		return
	}
	s.index[word] = struct{}{}
	s.items = append(s.items, word)
}

func (s *orderedSet) addAll(words []string) {
	for _, w := range words {
		s.add(w)
	}
}

func (s *orderedSet) contains(word string) bool {
	_, ok := s.index[word]
	return ok
}

func (s *orderedSet) sorted() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	sort.Strings(out)
	return out
}
