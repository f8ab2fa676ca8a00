// Package placement is the contract between flowlayouts and a layered
// placement engine. The engine receives a compound graph of sized boxes and
// returns box positions, edge waypoints and label anchors. It knows nothing
// about shapes, labels or styles.
package placement

import (
	"context"
	"fmt"

	"oss.terrastruct.com/flowdraw/lib/geo"
)

type Rankdir string

const (
	RankdirTB Rankdir = "TB"
	RankdirBT Rankdir = "BT"
	RankdirLR Rankdir = "LR"
	RankdirRL Rankdir = "RL"
)

type Engine interface {
	Layout(ctx context.Context, g *Graph) (*Result, error)
}

// Graph is built with SetNode, SetContainer, SetParent and SetEdge. Nodes and
// edges keep insertion order, which engines may use to break ties.
type Graph struct {
	Rankdir Rankdir
	NodeSep float64
	RankSep float64
	MarginX float64
	MarginY float64

	Nodes []*Node
	Edges []*Edge

	nodes map[string]*Node
	edges map[string]*Edge
}

// Node is a sized leaf box, or a container whose size the engine derives from
// its children.
type Node struct {
	ID        string
	Width     float64
	Height    float64
	Container bool
	Parent    string
}

type Edge struct {
	ID     string
	Src    string
	Dst    string
	Weight int
	// LabelWidth and LabelHeight reserve room for a label at the middle of
	// the edge. Both zero means unlabelled.
	LabelWidth  float64
	LabelHeight float64
}

type Result struct {
	Width  float64
	Height float64
	// Nodes holds top-left boxes for leaves and containers alike.
	Nodes map[string]geo.Box
	Edges map[string]Route
}

type Route struct {
	Points geo.Points
	// Label is the center of the reserved label box, nil when unlabelled.
	Label *geo.Point
}

func NewGraph(rankdir Rankdir) *Graph {
	return &Graph{
		Rankdir: rankdir,
		nodes:   make(map[string]*Node),
		edges:   make(map[string]*Edge),
	}
}

// SetNode adds or resizes a leaf.
func (g *Graph) SetNode(id string, width, height float64) *Node {
	if n, ok := g.nodes[id]; ok {
		n.Width, n.Height = width, height
		return n
	}
	n := &Node{ID: id, Width: width, Height: height}
	g.nodes[id] = n
	g.Nodes = append(g.Nodes, n)
	return n
}

func (g *Graph) SetContainer(id string) *Node {
	n := g.SetNode(id, 0, 0)
	n.Container = true
	return n
}

func (g *Graph) SetParent(child, parent string) error {
	c, ok := g.nodes[child]
	if !ok {
		return fmt.Errorf("unknown node %q", child)
	}
	p, ok := g.nodes[parent]
	if !ok {
		return fmt.Errorf("unknown parent %q", parent)
	}
	if !p.Container {
		return fmt.Errorf("parent %q is not a container", parent)
	}
	c.Parent = parent
	return nil
}

func (g *Graph) SetEdge(e Edge) error {
	if _, ok := g.nodes[e.Src]; !ok {
		return fmt.Errorf("edge %q: unknown source %q", e.ID, e.Src)
	}
	if _, ok := g.nodes[e.Dst]; !ok {
		return fmt.Errorf("edge %q: unknown target %q", e.ID, e.Dst)
	}
	if _, ok := g.edges[e.ID]; ok {
		return fmt.Errorf("duplicate edge %q", e.ID)
	}
	if e.Weight < 1 {
		e.Weight = 1
	}
	g.edges[e.ID] = &e
	g.Edges = append(g.Edges, &e)
	return nil
}

func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

func (g *Graph) Edge(id string) (*Edge, bool) {
	e, ok := g.edges[id]
	return e, ok
}

// Children returns the direct children of a container, in insertion order.
// The empty id lists top-level nodes.
func (g *Graph) Children(id string) []*Node {
	var out []*Node
	for _, n := range g.Nodes {
		if n.Parent == id {
			out = append(out, n)
		}
	}
	return out
}

// HasLeaves reports whether a container holds any leaf, at any depth.
func (g *Graph) HasLeaves(id string) bool {
	for _, c := range g.Children(id) {
		if !c.Container || g.HasLeaves(c.ID) {
			return true
		}
	}
	return false
}
