// Package cytoscape serializes semantic graphs to the Cytoscape.js
// elements JSON format.
package cytoscape

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hupe1980/semgraph"
)

// Elements represents the Cytoscape.js data format.
type Elements struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node represents a node in Cytoscape.js format.
type Node struct {
	Data NodeData `json:"data"`
}

// NodeData contains the node data fields.
type NodeData struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	IsSeed bool   `json:"is_seed"`
	Hop    int    `json:"hop"`
}

// Edge represents an edge in Cytoscape.js format.
type Edge struct {
	Data EdgeData `json:"data"`
}

// EdgeData contains the edge data fields.
type EdgeData struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// FromGraph converts a semantic graph to Cytoscape.js elements.
// Edge IDs are derived from the canonical word pair, so they are stable
// across builds of the same graph.
func FromGraph(g *semgraph.SemanticGraph) Elements {
	elements := Elements{
		Nodes: make([]Node, 0, len(g.Nodes)),
		Edges: make([]Edge, 0, len(g.Edges)),
	}

	for _, word := range g.Nodes {
		elements.Nodes = append(elements.Nodes, Node{
			Data: NodeData{
				ID:     word,
				Label:  word,
				IsSeed: g.IsSeed(word),
				Hop:    g.Hops[word],
			},
		})
	}

	for _, e := range g.Edges {
		// Guard against malformed input graphs.
		if e.Source == e.Target || !g.Contains(e.Source) || !g.Contains(e.Target) {
			continue
		}
		elements.Edges = append(elements.Edges, Edge{
			Data: EdgeData{
				ID:     fmt.Sprintf("%s-%s", e.Source, e.Target),
				Source: e.Source,
				Target: e.Target,
			},
		})
	}

	return elements
}

// Write serializes g as Cytoscape.js elements JSON.
func Write(w io.Writer, g *semgraph.SemanticGraph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromGraph(g)); err != nil {
		return fmt.Errorf("encode cytoscape elements: %w", err)
	}
	return nil
}
