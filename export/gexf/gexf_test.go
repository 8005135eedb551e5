package gexf

import (
	"bytes"
	"encoding/xml"
	"strings"
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

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testGraph()))

	out := buf.String()

	assert.True(t, strings.HasPrefix(out, xml.Header))
	assert.Contains(t, out, `<gexf xmlns="http://gexf.net/1.3" version="1.3">`)
	assert.Contains(t, out, `<graph mode="static" defaultedgetype="undirected">`)
	assert.Contains(t, out, `<attribute id="0" title="hop" type="long">`)
	assert.Contains(t, out, `<node id="war" label="war">`)
	assert.Contains(t, out, `<attvalue for="0" value="0">`)
	assert.Contains(t, out, `<attvalue for="0" value="1">`)
	assert.Contains(t, out, `source="battle" target="war"`)
	assert.Contains(t, out, `source="siege" target="war"`)
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testGraph()))

	var doc document
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))

	assert.Len(t, doc.Graph.Nodes, 3)
	assert.Len(t, doc.Graph.Edges, 2)
	assert.Equal(t, "static", doc.Graph.Mode)
	assert.Equal(t, "undirected", doc.Graph.DefaultEdgeType)

	// Edge IDs are unique and positional.
	assert.Equal(t, "0", doc.Graph.Edges[0].ID)
	assert.Equal(t, "1", doc.Graph.Edges[1].ID)
}

func TestWriteEmptyGraph(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &semgraph.SemanticGraph{Hops: map[string]int{}}))

	assert.Contains(t, buf.String(), "<gexf")
}
