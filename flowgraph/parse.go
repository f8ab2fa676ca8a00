package flowgraph

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"oss.terrastruct.com/xdefer"
)

// document is the on-disk form. JSON documents decode through the same path
// since yaml.v3 accepts JSON.
type document struct {
	Direction Direction          `yaml:"direction"`
	Nodes     []documentNode     `yaml:"nodes"`
	Edges     []documentEdge     `yaml:"edges"`
	Subgraphs []documentSubgraph `yaml:"subgraphs"`
	ClassDefs map[string]Style   `yaml:"classDefs"`
	Classes   map[string]string  `yaml:"classes"`
	Styles    map[string]Style   `yaml:"styles"`
}

type documentNode struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	Shape string `yaml:"shape"`
	Class string `yaml:"class"`
	Style Style  `yaml:"style"`
}

type documentEdge struct {
	From       string    `yaml:"from"`
	To         string    `yaml:"to"`
	Label      string    `yaml:"label"`
	Style      EdgeStyle `yaml:"style"`
	ArrowStart *bool     `yaml:"arrowStart"`
	ArrowEnd   *bool     `yaml:"arrowEnd"`
}

type documentSubgraph struct {
	ID        string             `yaml:"id"`
	Label     string             `yaml:"label"`
	Direction Direction          `yaml:"direction"`
	Nodes     []string           `yaml:"nodes"`
	Children  []documentSubgraph `yaml:"subgraphs"`
}

// Parse decodes a YAML or JSON graph document and validates it.
//
// Nodes default their label to their id. Edges default to a solid line with
// an arrow at the target only.
func Parse(input []byte) (_ *Graph, err error) {
	defer xdefer.Errorf(&err, "failed to parse graph")

	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(input))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	g := NewGraph(doc.Direction.Normalize())
	if g.Direction == "" {
		g.Direction = DirectionTB
	}
	g.ClassDefs = doc.ClassDefs
	g.ClassAssignments = doc.Classes
	g.NodeStyles = doc.Styles

	for _, dn := range doc.Nodes {
		if _, ok := g.Node(dn.ID); ok {
			return nil, fmt.Errorf("duplicate node %q", dn.ID)
		}
		label := dn.Label
		if label == "" {
			label = dn.ID
		}
		g.AddNode(dn.ID, label, dn.Shape)
		if dn.Class != "" {
			if g.ClassAssignments == nil {
				g.ClassAssignments = make(map[string]string)
			}
			g.ClassAssignments[dn.ID] = dn.Class
		}
		if len(dn.Style) > 0 {
			if g.NodeStyles == nil {
				g.NodeStyles = make(map[string]Style)
			}
			g.NodeStyles[dn.ID] = dn.Style
		}
	}

	for i, de := range doc.Edges {
		if de.From == "" || de.To == "" {
			return nil, fmt.Errorf("edge %d: from and to are required", i)
		}
		e := g.AddEdge(de.From, de.To, de.Label)
		switch de.Style {
		case "", EdgeSolid:
		case EdgeDotted, EdgeThick:
			e.Style = de.Style
		default:
			return nil, fmt.Errorf("edge %d: unknown style %q", i, de.Style)
		}
		if de.ArrowStart != nil {
			e.ArrowStart = *de.ArrowStart
		}
		if de.ArrowEnd != nil {
			e.ArrowEnd = *de.ArrowEnd
		}
	}

	var add func(parent *Subgraph, dsgs []documentSubgraph)
	add = func(parent *Subgraph, dsgs []documentSubgraph) {
		for _, dsg := range dsgs {
			sg := g.AddSubgraph(parent, dsg.ID, dsg.Label, dsg.Nodes...)
			sg.Direction = dsg.Direction.Normalize()
			add(sg, dsg.Children)
		}
	}
	add(nil, doc.Subgraphs)

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
