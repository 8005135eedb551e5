package cytoscape

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/hupe1980/semgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGraph() *semgraph.SemanticGraph {
	return &semgraph.SemanticGraph{
		Nodes: []string{"battle", "siege", "war"},
		Edges: []semgraph.Edge{
			semgraph.NewEdge("war", "battle"),
			semgraph.NewEdge("war", "siege"),
		},
		Hops: map[string]int{"war": 0, "battle": 1, "siege": 1},
	}
}

func TestFromGraph(t *testing.T) {
	elements := FromGraph(testGraph())

	require.Len(t, elements.Nodes, 3)
	require.Len(t, elements.Edges, 2)

	assert.Equal(t, NodeData{ID: "battle", Label: "battle", IsSeed: false, Hop: 1}, elements.Nodes[0].Data)
	assert.Equal(t, NodeData{ID: "war", Label: "war", IsSeed: true, Hop: 0}, elements.Nodes[2].Data)

	assert.Equal(t, EdgeData{ID: "battle-war", Source: "battle", Target: "war"}, elements.Edges[0].Data)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testGraph()))

	var decoded Elements
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, FromGraph(testGraph()), decoded)
}

func TestFromGraphDropsMalformedEdges(t *testing.T) {
	g := &semgraph.SemanticGraph{
		Nodes: []string{"battle", "war"},
		Edges: []semgraph.Edge{
			semgraph.NewEdge("war", "battle"),
			{Source: "war", Target: "war"},
			semgraph.NewEdge("war", "ghost"),
		},
		Hops: map[string]int{"war": 0, "battle": 1},
	}

	elements := FromGraph(g)

	require.Len(t, elements.Edges, 1)
	assert.Equal(t, "battle-war", elements.Edges[0].Data.ID)
}

func TestFromGraphEmpty(t *testing.T) {
	elements := FromGraph(&semgraph.SemanticGraph{Hops: map[string]int{}})

	assert.Empty(t, elements.Nodes)
	assert.Empty(t, elements.Edges)

	// Empty slices marshal as [], not null.
	data, err := json.Marshal(elements)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[],"edges":[]}`, string(data))
}
