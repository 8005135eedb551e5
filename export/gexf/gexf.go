// Package gexf serializes semantic graphs to GEXF 1.3 XML, the format
// consumed by network analysis tools like Gephi.
package gexf

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/hupe1980/semgraph"
)

const (
	xmlns   = "http://gexf.net/1.3"
	version = "1.3"

	// hopAttrID identifies the per-node hop distance attribute.
	hopAttrID = "0"
)

type document struct {
	XMLName xml.Name `xml:"gexf"`
	Xmlns   string   `xml:"xmlns,attr"`
	Version string   `xml:"version,attr"`
	Graph   graph    `xml:"graph"`
}

type graph struct {
	Mode            string      `xml:"mode,attr"`
	DefaultEdgeType string      `xml:"defaultedgetype,attr"`
	Attributes      attributes  `xml:"attributes"`
	Nodes           []node      `xml:"nodes>node"`
	Edges           []edge      `xml:"edges>edge"`
}

type attributes struct {
	Class string      `xml:"class,attr"`
	Mode  string      `xml:"mode,attr"`
	Attrs []attribute `xml:"attribute"`
}

type attribute struct {
	ID    string `xml:"id,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

type node struct {
	ID        string     `xml:"id,attr"`
	Label     string     `xml:"label,attr"`
	AttValues []attValue `xml:"attvalues>attvalue"`
}

type attValue struct {
	For   string `xml:"for,attr"`
	Value string `xml:"value,attr"`
}

type edge struct {
	ID     string `xml:"id,attr"`
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}

// Write serializes g as a GEXF 1.3 document. Each node carries its hop
// distance as a long attribute, edges are undirected.
func Write(w io.Writer, g *semgraph.SemanticGraph) error {
	doc := document{
		Xmlns:   xmlns,
		Version: version,
		Graph: graph{
			Mode:            "static",
			DefaultEdgeType: "undirected",
			Attributes: attributes{
				Class: "node",
				Mode:  "static",
				Attrs: []attribute{
					{ID: hopAttrID, Title: "hop", Type: "long"},
				},
			},
			Nodes: make([]node, 0, len(g.Nodes)),
			Edges: make([]edge, 0, len(g.Edges)),
		},
	}

	for _, word := range g.Nodes {
		doc.Graph.Nodes = append(doc.Graph.Nodes, node{
			ID:    word,
			Label: word,
			AttValues: []attValue{
				{For: hopAttrID, Value: strconv.Itoa(g.Hops[word])},
			},
		})
	}

	for i, e := range g.Edges {
		doc.Graph.Edges = append(doc.Graph.Edges, edge{
			ID:     strconv.Itoa(i),
			Source: e.Source,
			Target: e.Target,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode gexf: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}

	// Trailing newline after the closing tag.
	_, err := io.WriteString(w, "\n")
	return err
}
