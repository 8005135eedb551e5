// Package visjs renders semantic graphs as vis.js node and edge array
// literals for embedding in web pages. Seed nodes get a distinct group and
// larger sizing so they stand out from expansion nodes.
package visjs

import (
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/semgraph"
)

// Options configures the rendered node styling.
type Options struct {
	SeedNodeSize     int
	SeedFontSize     int
	NeighborNodeSize int
	NeighborFontSize int
}

const (
	seedGroup     = 1
	neighborGroup = 2
)

// Write renders g as two JavaScript variable declarations, nodes and
// edges, ready to feed into a vis.Network.
func Write(w io.Writer, g *semgraph.SemanticGraph, optFns ...func(o *Options)) error {
	opts := Options{
		SeedNodeSize:     30,
		SeedFontSize:     30,
		NeighborNodeSize: 20,
		NeighborFontSize: 20,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if _, err := fmt.Fprintf(w, "var nodes = new vis.DataSet([\n%s\n]);\n", NodeArray(g, opts)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "var edges = new vis.DataSet([\n%s\n]);\n", EdgeArray(g))
	return err
}

// NodeArray renders the node object literals, seeds first.
func NodeArray(g *semgraph.SemanticGraph, opts Options) string {
	var sb strings.Builder

	writeNode := func(word string, group, size, fontSize int) {
		if sb.Len() > 0 {
			sb.WriteString(",\n")
		}
		fmt.Fprintf(&sb, "\t\t{id: '%s', label: '%s', group: %d, size: %d, font: { size: %d }}",
			escape(word), escape(word), group, size, fontSize)
	}

	for _, word := range g.Nodes {
		if g.IsSeed(word) {
			writeNode(word, seedGroup, opts.SeedNodeSize, opts.SeedFontSize)
		}
	}
	for _, word := range g.Nodes {
		if !g.IsSeed(word) {
			writeNode(word, neighborGroup, opts.NeighborNodeSize, opts.NeighborFontSize)
		}
	}

	return sb.String()
}

// EdgeArray renders the edge object literals.
func EdgeArray(g *semgraph.SemanticGraph) string {
	var sb strings.Builder

	for _, e := range g.Edges {
		if sb.Len() > 0 {
			sb.WriteString(",\n")
		}
		fmt.Fprintf(&sb, "\t\t{from: '%s', to: '%s'}", escape(e.Source), escape(e.Target))
	}

	return sb.String()
}

// escape makes a word safe inside a single-quoted JS string literal.
func escape(word string) string {
	word = strings.ReplaceAll(word, `\`, `\\`)
	return strings.ReplaceAll(word, `'`, `\'`)
}
