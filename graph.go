package semgraph

// Edge is an undirected edge between two distinct words, stored in
// canonical order so that {a,b} and {b,a} compare equal.
type Edge struct {
	Source string
	Target string
}

// NewEdge creates a canonical edge: the lexicographically smaller word
// becomes the source.
func NewEdge(a, b string) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{Source: a, Target: b}
}

// SemanticGraph is the result of a build: an undirected, unweighted graph
// of semantically related words.
//
// Nodes and Edges are sorted lexicographically, so two builds over the
// same input compare equal with a plain deep-equality check.
type SemanticGraph struct {
	// Nodes is the sorted set of words in the graph.
	Nodes []string

	// Edges is the sorted set of canonical undirected edges.
	// It contains no self-loops and no duplicates.
	Edges []Edge

	// Hops maps every node to its minimum hop distance from the seed
	// words. Seeds have distance 0.
	Hops map[string]int
}

// Contains reports whether word is a node of the graph.
func (g *SemanticGraph) Contains(word string) bool {
	_, ok := g.Hops[word]
	return ok
}

// IsSeed reports whether word is a seed node (hop distance 0).
func (g *SemanticGraph) IsSeed(word string) bool {
	hop, ok := g.Hops[word]
	return ok && hop == 0
}

// Seeds returns the seed nodes in sorted order.
func (g *SemanticGraph) Seeds() []string {
	var seeds []string
	for _, n := range g.Nodes {
		if g.Hops[n] == 0 {
			seeds = append(seeds, n)
		}
	}
	return seeds
}

// Degree returns the number of edges incident to word.
func (g *SemanticGraph) Degree(word string) int {
	degree := 0
	for _, e := range g.Edges {
		if e.Source == word || e.Target == word {
			degree++
		}
	}
	return degree
}
