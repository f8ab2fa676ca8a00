// Package flowtarget holds the positioned graph produced by layout. Every
// coordinate is in canvas pixels with the origin at the top-left.
package flowtarget

import (
	"math"

	"oss.terrastruct.com/xjson"

	"oss.terrastruct.com/flowdraw/flowgraph"
	"oss.terrastruct.com/flowdraw/lib/geo"
)

type Diagram struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	FontFamily string  `json:"fontFamily,omitempty"`

	Nodes  []Node  `json:"nodes"`
	Edges  []Edge  `json:"edges"`
	Groups []Group `json:"groups"`
}

type Node struct {
	ID     string          `json:"id"`
	Label  string          `json:"label"`
	Shape  string          `json:"shape"`
	X      float64         `json:"x"`
	Y      float64         `json:"y"`
	Width  float64         `json:"width"`
	Height float64         `json:"height"`
	Style  flowgraph.Style `json:"style,omitempty"`
}

type Edge struct {
	Source     string              `json:"source"`
	Target     string              `json:"target"`
	Label      string              `json:"label,omitempty"`
	Style      flowgraph.EdgeStyle `json:"style"`
	ArrowStart bool                `json:"arrowStart"`
	ArrowEnd   bool                `json:"arrowEnd"`
	Points     geo.Points          `json:"points"`
	// LabelPosition is the center of the label, set only for labelled edges.
	LabelPosition *geo.Point `json:"labelPosition,omitempty"`
}

type Group struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Children []Group `json:"children,omitempty"`
}

func (n Node) Box() geo.Box {
	return geo.NewBox(geo.NewPoint(n.X, n.Y), n.Width, n.Height)
}

func (n Node) Center() geo.Point {
	return n.Box().Center()
}

func (g Group) Box() geo.Box {
	return geo.NewBox(geo.NewPoint(g.X, g.Y), g.Width, g.Height)
}

func (g *Group) SetBox(b geo.Box) {
	g.X, g.Y, g.Width, g.Height = b.TopLeft.X, b.TopLeft.Y, b.Width, b.Height
}

// Translate moves the group and all its descendants.
func (g Group) Translate(dx, dy float64) Group {
	g.X += dx
	g.Y += dy
	if g.Children != nil {
		children := make([]Group, len(g.Children))
		for i, c := range g.Children {
			children[i] = c.Translate(dx, dy)
		}
		g.Children = children
	}
	return g
}

// Flatten returns g and its descendants in pre-order.
func (g Group) Flatten() []Group {
	out := []Group{g}
	for _, c := range g.Children {
		out = append(out, c.Flatten()...)
	}
	return out
}

func (n Node) Translate(dx, dy float64) Node {
	n.X += dx
	n.Y += dy
	return n
}

func (e Edge) Translate(dx, dy float64) Edge {
	e.Points = e.Points.Translate(dx, dy)
	if e.LabelPosition != nil {
		p := e.LabelPosition.Translate(dx, dy)
		e.LabelPosition = &p
	}
	return e
}

// Translate moves every element of the diagram. The canvas size is unchanged.
func (d *Diagram) Translate(dx, dy float64) {
	for i := range d.Nodes {
		d.Nodes[i] = d.Nodes[i].Translate(dx, dy)
	}
	for i := range d.Edges {
		d.Edges[i] = d.Edges[i].Translate(dx, dy)
	}
	for i := range d.Groups {
		d.Groups[i] = d.Groups[i].Translate(dx, dy)
	}
}

func (d *Diagram) Node(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Group finds a group anywhere in the tree.
func (d *Diagram) Group(id string) (Group, bool) {
	for _, top := range d.Groups {
		for _, g := range top.Flatten() {
			if g.ID == id {
				return g, true
			}
		}
	}
	return Group{}, false
}

// BoundingBox covers every node, group and edge waypoint.
func (d *Diagram) BoundingBox() (topLeft, bottomRight geo.Point) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	extend := func(b geo.Box) {
		minX = math.Min(minX, b.TopLeft.X)
		minY = math.Min(minY, b.TopLeft.Y)
		maxX = math.Max(maxX, b.Right())
		maxY = math.Max(maxY, b.Bottom())
	}
	for _, n := range d.Nodes {
		extend(n.Box())
	}
	for _, top := range d.Groups {
		for _, g := range top.Flatten() {
			extend(g.Box())
		}
	}
	for _, e := range d.Edges {
		for _, p := range e.Points {
			extend(geo.NewBox(p, 0, 0))
		}
	}
	if math.IsInf(minX, 1) {
		return geo.Point{}, geo.Point{}
	}
	return geo.NewPoint(minX, minY), geo.NewPoint(maxX, maxY)
}

// Bytes encodes the diagram as indented JSON.
func (d Diagram) Bytes() []byte {
	if d.Nodes == nil {
		d.Nodes = []Node{}
	}
	if d.Edges == nil {
		d.Edges = []Edge{}
	}
	if d.Groups == nil {
		d.Groups = []Group{}
	}
	return xjson.Marshal(d)
}
