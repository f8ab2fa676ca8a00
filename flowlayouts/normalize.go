package flowlayouts

import (
	"math"

	"oss.terrastruct.com/flowdraw/flowgraph"
	"oss.terrastruct.com/flowdraw/flowtarget"
	"oss.terrastruct.com/flowdraw/lib/geo"
)

// expandGroups grows every group over its child groups and member nodes,
// innermost first, then makes room above for the header of labelled groups.
func expandGroups(g *flowgraph.Graph, d *flowtarget.Diagram) {
	nodes := make(map[string]geo.Box, len(d.Nodes))
	for _, n := range d.Nodes {
		nodes[n.ID] = n.Box()
	}
	for i := range d.Groups {
		expandGroup(g, &d.Groups[i], nodes)
	}
}

func expandGroup(g *flowgraph.Graph, grp *flowtarget.Group, nodes map[string]geo.Box) {
	box := grp.Box()
	for i := range grp.Children {
		expandGroup(g, &grp.Children[i], nodes)
		box = box.Union(grp.Children[i].Box())
	}
	if sg, ok := g.Subgraph(grp.ID); ok {
		for _, id := range sg.NodeIDs {
			if nb, ok := nodes[id]; ok {
				box = box.Union(nb)
			}
		}
	}
	if grp.Label != "" {
		header := GROUP_HEADER_HEIGHT + GROUP_HEADER_CONTENT_PAD
		box.TopLeft.Y -= header
		box.Height += header
	}
	grp.SetBox(box)
}

// normalize shifts the diagram so no node or group starts inside the
// padding, then grows the canvas to keep padding past the furthest element.
// Running it twice changes nothing.
func normalize(d *flowtarget.Diagram, padding float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	visit := func(b geo.Box) {
		minX = math.Min(minX, b.TopLeft.X)
		minY = math.Min(minY, b.TopLeft.Y)
	}
	for _, n := range d.Nodes {
		visit(n.Box())
	}
	for _, top := range d.Groups {
		for _, grp := range top.Flatten() {
			visit(grp.Box())
		}
	}

	var dx, dy float64
	if minY < padding {
		dy = padding - minY
	}
	if minX < padding {
		dx = padding - minX
	}
	if dx != 0 || dy != 0 {
		d.Translate(dx, dy)
		d.Width += dx
		d.Height += dy
	}

	if len(d.Nodes) == 0 && len(d.Groups) == 0 && len(d.Edges) == 0 {
		return
	}
	_, br := d.BoundingBox()
	d.Width = math.Max(d.Width, br.X+padding)
	d.Height = math.Max(d.Height, br.Y+padding)
}
