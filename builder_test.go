package semgraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubModel is a fixed neighbor table. Neighbor lists are stored in
// similarity-descending order and truncated to k on query.
type stubModel struct {
	neighbors map[string][]string
}

func (m *stubModel) Contains(word string) bool {
	_, ok := m.neighbors[word]
	return ok
}

func (m *stubModel) Neighbors(word string, k int) []string {
	ns, ok := m.neighbors[word]
	if !ok {
		return nil
	}
	if len(ns) > k {
		ns = ns[:k]
	}
	return ns
}

func TestBuilderBuild(t *testing.T) {
	ctx := context.Background()

	t.Run("single seed with densification", func(t *testing.T) {
		model := &stubModel{neighbors: map[string][]string{
			"disease": {"plague", "fever"},
			"plague":  {"disease", "fever"},
			"fever":   {"disease", "plague"},
		}}

		graph, err := New(model).Build(ctx, []string{"disease"}, 2, 1)
		require.NoError(t, err)

		assert.Equal(t, []string{"disease", "fever", "plague"}, graph.Nodes)
		assert.Equal(t, map[string]int{"disease": 0, "plague": 1, "fever": 1}, graph.Hops)

		// BFS finds disease-plague and disease-fever, densification adds
		// plague-fever since each is in the other's top-2.
		assert.Equal(t, []Edge{
			NewEdge("disease", "fever"),
			NewEdge("disease", "plague"),
			NewEdge("fever", "plague"),
		}, graph.Edges)
	})

	t.Run("word with no neighbors stays an isolated node", func(t *testing.T) {
		model := &stubModel{neighbors: map[string][]string{
			"war":   {"battle", "siege"},
			"siege": {},
		}}

		graph, err := New(model).Build(ctx, []string{"war"}, 2, 2)
		require.NoError(t, err)

		assert.Contains(t, graph.Nodes, "siege")
		assert.Equal(t, 1, graph.Hops["siege"])

		// siege contributes no outgoing edges, only the BFS edge from war.
		assert.Equal(t, 1, graph.Degree("siege"))
		assert.Contains(t, graph.Edges, NewEdge("war", "siege"))
	})

	t.Run("duplicate seeds build the same graph as a single seed", func(t *testing.T) {
		model := &stubModel{neighbors: map[string][]string{
			"war":    {"battle"},
			"battle": {"war"},
		}}
		builder := New(model)

		single, err := builder.Build(ctx, []string{"war"}, 1, 1)
		require.NoError(t, err)

		double, err := builder.Build(ctx, []string{"war", "war"}, 1, 1)
		require.NoError(t, err)

		assert.Equal(t, single, double)
	})

	t.Run("seeds are normalized before lookup", func(t *testing.T) {
		model := &stubModel{neighbors: map[string][]string{
			"steam_engine": {"locomotive"},
			"locomotive":   {"steam_engine"},
		}}

		graph, err := New(model).Build(ctx, []string{` "Steam-Engine" `}, 1, 1)
		require.NoError(t, err)

		assert.Equal(t, []string{"locomotive", "steam_engine"}, graph.Nodes)
		assert.True(t, graph.IsSeed("steam_engine"))
	})

	t.Run("unknown seeds are dropped", func(t *testing.T) {
		model := &stubModel{neighbors: map[string][]string{
			"war":    {"battle"},
			"battle": {"war"},
		}}

		graph, err := New(model).Build(ctx, []string{"ghost", "war"}, 1, 1)
		require.NoError(t, err)

		assert.NotContains(t, graph.Nodes, "ghost")
		assert.Contains(t, graph.Nodes, "war")
	})

	t.Run("no valid seeds yields empty graph and error", func(t *testing.T) {
		model := &stubModel{neighbors: map[string][]string{}}

		graph, err := New(model).Build(ctx, []string{"ghost", "phantom"}, 2, 1)
		require.ErrorIs(t, err, ErrNoValidSeeds)
		require.NotNil(t, graph)

		assert.Empty(t, graph.Nodes)
		assert.Empty(t, graph.Edges)
		assert.Empty(t, graph.Hops)
	})

	t.Run("invalid k", func(t *testing.T) {
		_, err := New(&stubModel{}).Build(ctx, []string{"war"}, 0, 1)
		require.ErrorIs(t, err, ErrInvalidK)
	})

	t.Run("invalid hops", func(t *testing.T) {
		_, err := New(&stubModel{}).Build(ctx, []string{"war"}, 2, 0)
		require.ErrorIs(t, err, ErrInvalidHops)
	})

	t.Run("canceled context", func(t *testing.T) {
		model := &stubModel{neighbors: map[string][]string{"war": {"battle"}}}

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := New(model).Build(canceled, []string{"war"}, 1, 1)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("hop distances keep the minimum", func(t *testing.T) {
		// b is discovered at hop 1 from a, and a's second hop would
		// reach b again at distance 2. It must keep distance 1.
		model := &stubModel{neighbors: map[string][]string{
			"a": {"b", "c"},
			"b": {"a"},
			"c": {"b"},
		}}

		graph, err := New(model).Build(ctx, []string{"a"}, 2, 2)
		require.NoError(t, err)

		assert.Equal(t, 0, graph.Hops["a"])
		assert.Equal(t, 1, graph.Hops["b"])
		assert.Equal(t, 1, graph.Hops["c"])
	})

	t.Run("multi-hop expansion", func(t *testing.T) {
		model := &stubModel{neighbors: map[string][]string{
			"a": {"b"},
			"b": {"c"},
			"c": {"d"},
			"d": {"c"},
		}}

		one, err := New(model).Build(ctx, []string{"a"}, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, one.Nodes)

		three, err := New(model).Build(ctx, []string{"a"}, 1, 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d"}, three.Nodes)
		assert.Equal(t, map[string]int{"a": 0, "b": 1, "c": 2, "d": 3}, three.Hops)
	})

	t.Run("records metrics", func(t *testing.T) {
		model := &stubModel{neighbors: map[string][]string{
			"war":    {"battle"},
			"battle": {"war"},
		}}

		mc := &BasicMetricsCollector{}
		builder := New(model, WithMetricsCollector(mc))

		_, err := builder.Build(ctx, []string{"war"}, 1, 1)
		require.NoError(t, err)

		stats := mc.GetStats()
		assert.Equal(t, int64(1), stats.BuildCount)
		assert.Equal(t, int64(0), stats.BuildErrors)
		assert.Equal(t, int64(2), stats.NodesProduced)
		assert.Positive(t, stats.NeighborQueryCount)
	})
}

func TestBuilderInvariants(t *testing.T) {
	ctx := context.Background()

	model := &stubModel{neighbors: map[string][]string{
		"famine":  {"hunger", "starvation", "distress"},
		"hunger":  {"famine", "starvation", "poverty"},
		"poverty": {"distress", "hunger", "famine"},

		"starvation": {"famine", "hunger", "death"},
		"distress":   {"poverty", "famine", "misery"},
		"death":      {"starvation", "misery", "grief"},
		"misery":     {"distress", "death", "grief"},
		"grief":      {"misery", "death", "sorrow"},
		"sorrow":     {"grief", "misery", "death"},
	}}

	builder := New(model)

	graph, err := builder.Build(ctx, []string{"famine", "poverty"}, 3, 2)
	require.NoError(t, err)

	t.Run("no self loops", func(t *testing.T) {
		for _, e := range graph.Edges {
			assert.NotEqual(t, e.Source, e.Target)
		}
	})

	t.Run("no duplicate edges", func(t *testing.T) {
		seen := make(map[Edge]struct{})
		for _, e := range graph.Edges {
			_, dup := seen[e]
			assert.False(t, dup, "duplicate edge %v", e)
			seen[e] = struct{}{}
		}
	})

	t.Run("edges are canonical", func(t *testing.T) {
		for _, e := range graph.Edges {
			assert.Less(t, e.Source, e.Target)
		}
	})

	t.Run("seeds have hop distance zero", func(t *testing.T) {
		assert.Equal(t, 0, graph.Hops["famine"])
		assert.Equal(t, 0, graph.Hops["poverty"])
	})

	t.Run("referential integrity", func(t *testing.T) {
		nodeSet := make(map[string]struct{}, len(graph.Nodes))
		for _, n := range graph.Nodes {
			nodeSet[n] = struct{}{}
		}

		for _, e := range graph.Edges {
			assert.Contains(t, nodeSet, e.Source)
			assert.Contains(t, nodeSet, e.Target)
		}
		for word := range graph.Hops {
			assert.Contains(t, nodeSet, word)
		}
	})

	t.Run("expansion is monotone in hops", func(t *testing.T) {
		small, err := builder.Build(ctx, []string{"famine", "poverty"}, 3, 1)
		require.NoError(t, err)

		for _, n := range small.Nodes {
			assert.Contains(t, graph.Nodes, n)
		}
		for _, e := range small.Edges {
			assert.Contains(t, graph.Edges, e)
		}
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		again, err := builder.Build(ctx, []string{"famine", "poverty"}, 3, 2)
		require.NoError(t, err)
		assert.Equal(t, graph, again)
	})
}
