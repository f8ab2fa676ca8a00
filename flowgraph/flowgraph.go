// Package flowgraph is the abstract flowchart handed to layout: nodes, edges,
// nested grouping regions and styles, without any geometry.
package flowgraph

import (
	"fmt"
	"strings"
)

type Direction string

const (
	DirectionTD Direction = "TD"
	DirectionTB Direction = "TB"
	DirectionBT Direction = "BT"
	DirectionLR Direction = "LR"
	DirectionRL Direction = "RL"
)

// Normalize folds TD into TB and unknown values into TB. The empty direction
// stays empty, meaning inherited.
func (d Direction) Normalize() Direction {
	switch Direction(strings.ToUpper(string(d))) {
	case "":
		return ""
	case DirectionLR:
		return DirectionLR
	case DirectionRL:
		return DirectionRL
	case DirectionBT:
		return DirectionBT
	default:
		return DirectionTB
	}
}

// IsVertical reports whether ranks stack top to bottom or bottom to top.
func (d Direction) IsVertical() bool {
	n := d.Normalize()
	return n == "" || n == DirectionTB || n == DirectionBT
}

type EdgeStyle string

const (
	EdgeSolid  EdgeStyle = "solid"
	EdgeDotted EdgeStyle = "dotted"
	EdgeThick  EdgeStyle = "thick"
)

type Graph struct {
	Direction Direction   `json:"direction"`
	Nodes     []*Node     `json:"nodes"`
	Edges     []*Edge     `json:"edges"`
	Subgraphs []*Subgraph `json:"subgraphs"`

	ClassDefs        map[string]Style  `json:"classDefs,omitempty"`
	ClassAssignments map[string]string `json:"classAssignments,omitempty"`
	NodeStyles       map[string]Style  `json:"nodeStyles,omitempty"`

	nodes     map[string]*Node
	subgraphs map[string]*Subgraph
}

type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Shape string `json:"shape"`
}

type Edge struct {
	Source     string    `json:"source"`
	Target     string    `json:"target"`
	Label      string    `json:"label,omitempty"`
	Style      EdgeStyle `json:"style"`
	ArrowStart bool      `json:"arrowStart"`
	ArrowEnd   bool      `json:"arrowEnd"`
}

// Subgraph is a grouping region. NodeIDs are its direct members only;
// members of Children are not repeated.
type Subgraph struct {
	ID        string      `json:"id"`
	Label     string      `json:"label"`
	NodeIDs   []string    `json:"nodeIds"`
	Children  []*Subgraph `json:"children,omitempty"`
	Direction Direction   `json:"direction,omitempty"`
}

func NewGraph(dir Direction) *Graph {
	g := &Graph{Direction: dir}
	g.Index()
	return g
}

// Index rebuilds the id lookups. Call it after mutating Nodes or Subgraphs
// directly.
func (g *Graph) Index() {
	g.nodes = make(map[string]*Node, len(g.Nodes))
	for _, n := range g.Nodes {
		g.nodes[n.ID] = n
	}
	g.subgraphs = make(map[string]*Subgraph)
	var walk func([]*Subgraph)
	walk = func(sgs []*Subgraph) {
		for _, sg := range sgs {
			g.subgraphs[sg.ID] = sg
			walk(sg.Children)
		}
	}
	walk(g.Subgraphs)
}

func (g *Graph) AddNode(id, label, shape string) *Node {
	if n, ok := g.Node(id); ok {
		return n
	}
	n := &Node{ID: id, Label: label, Shape: shape}
	g.Nodes = append(g.Nodes, n)
	if g.nodes == nil {
		g.Index()
	} else {
		g.nodes[id] = n
	}
	return n
}

func (g *Graph) AddEdge(src, dst, label string) *Edge {
	e := &Edge{Source: src, Target: dst, Label: label, Style: EdgeSolid, ArrowEnd: true}
	g.Edges = append(g.Edges, e)
	return e
}

// AddSubgraph appends a region under parent, or at the top level when parent is nil.
func (g *Graph) AddSubgraph(parent *Subgraph, id, label string, nodeIDs ...string) *Subgraph {
	sg := &Subgraph{ID: id, Label: label, NodeIDs: nodeIDs}
	if parent == nil {
		g.Subgraphs = append(g.Subgraphs, sg)
	} else {
		parent.Children = append(parent.Children, sg)
	}
	if g.subgraphs == nil {
		g.Index()
	} else {
		g.subgraphs[id] = sg
	}
	return sg
}

func (g *Graph) Node(id string) (*Node, bool) {
	if g.nodes == nil {
		g.Index()
	}
	n, ok := g.nodes[id]
	return n, ok
}

func (g *Graph) Subgraph(id string) (*Subgraph, bool) {
	if g.subgraphs == nil {
		g.Index()
	}
	sg, ok := g.subgraphs[id]
	return sg, ok
}

// Validate checks the structural invariants: unique node and region ids and
// each node directly owned by at most one region.
func (g *Graph) Validate() error {
	seen := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node with empty id")
		}
		if _, ok := seen[n.ID]; ok {
			return fmt.Errorf("duplicate node %q", n.ID)
		}
		seen[n.ID] = struct{}{}
	}

	owner := make(map[string]string)
	regions := make(map[string]struct{})
	var walk func([]*Subgraph) error
	walk = func(sgs []*Subgraph) error {
		for _, sg := range sgs {
			if sg.ID == "" {
				return fmt.Errorf("subgraph with empty id")
			}
			if _, ok := regions[sg.ID]; ok {
				return fmt.Errorf("duplicate subgraph %q", sg.ID)
			}
			regions[sg.ID] = struct{}{}
			for _, id := range sg.NodeIDs {
				if prev, ok := owner[id]; ok {
					return fmt.Errorf("node %q belongs to both %q and %q", id, prev, sg.ID)
				}
				owner[id] = sg.ID
			}
			if err := walk(sg.Children); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(g.Subgraphs)
}

// AllNodeIDs returns every node id owned by sg or its descendants.
func (sg *Subgraph) AllNodeIDs() []string {
	var ids []string
	ids = append(ids, sg.NodeIDs...)
	for _, c := range sg.Children {
		ids = append(ids, c.AllNodeIDs()...)
	}
	return ids
}

// AllSubgraphIDs returns the ids of sg and all its descendants.
func (sg *Subgraph) AllSubgraphIDs() []string {
	ids := []string{sg.ID}
	for _, c := range sg.Children {
		ids = append(ids, c.AllSubgraphIDs()...)
	}
	return ids
}
