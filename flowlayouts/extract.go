package flowlayouts

import (
	"context"

	"cdr.dev/slog"

	"oss.terrastruct.com/flowdraw/flowgraph"
	"oss.terrastruct.com/flowdraw/flowlayouts/placement"
	"oss.terrastruct.com/flowdraw/flowtarget"
	"oss.terrastruct.com/flowdraw/lib/geo"
	"oss.terrastruct.com/flowdraw/lib/log"
	"oss.terrastruct.com/flowdraw/lib/shape"
)

// extract reads the engine's result back into diagram elements. Precomputed
// regions contribute only their group frames here; compose adds their
// contents.
func (b *builder) extract(ctx context.Context, res *placement.Result) *sublayout {
	sub := &sublayout{
		width:  res.Width,
		height: res.Height,
	}

	for _, id := range b.leaves {
		box, ok := res.Nodes[id]
		if !ok {
			continue
		}
		n, _ := b.g.Node(id)
		shapeType := shape.Normalize(n.Shape)
		sub.nodes = append(sub.nodes, flowtarget.Node{
			ID:     n.ID,
			Label:  n.Label,
			Shape:  shapeType,
			X:      box.TopLeft.X,
			Y:      box.TopLeft.Y,
			Width:  box.Width,
			Height: box.Height,
			Style:  b.g.ResolveStyle(n.ID),
		})
	}

	for _, pe := range b.placed {
		e := b.g.Edges[pe.index]
		route, ok := res.Edges[edgeKey(pe.index)]
		if !ok || len(route.Points) < 2 {
			log.Debug(ctx, "dropping unrouted edge", slog.F("source", e.Source), slog.F("target", e.Target))
			continue
		}
		points := b.terminate(route.Points, pe.src, pe.dst, res)
		if len(points) < 2 {
			continue
		}
		te := flowtarget.Edge{
			Source:     e.Source,
			Target:     e.Target,
			Label:      e.Label,
			Style:      e.Style,
			ArrowStart: e.ArrowStart,
			ArrowEnd:   e.ArrowEnd,
			Points:     points,
		}
		if te.Style == "" {
			te.Style = flowgraph.EdgeSolid
		}
		if e.Label != "" && route.Label != nil {
			lp := *route.Label
			te.LabelPosition = &lp
		}
		sub.edges = append(sub.edges, te)
	}

	for _, sg := range b.regions {
		sub.groups = append(sub.groups, b.extractGroup(sg, res))
	}
	return sub
}

// shapeOf is the shape an edge endpoint terminates on. Regions and
// precomputed placeholders are rectangles.
func (b *builder) shapeOf(id string) string {
	if _, ok := b.precomputed[id]; ok || !b.isLeaf(id) {
		return shape.RECTANGLE_TYPE
	}
	n, _ := b.g.Node(id)
	return n.Shape
}

// terminate turns an engine route into an orthogonal path that starts and
// ends on the borders of the boxes it connects.
func (b *builder) terminate(route geo.Points, src, dst string, res *placement.Result) geo.Points {
	srcBox, dstBox := res.Nodes[src], res.Nodes[dst]
	srcShape := shape.NewShape(b.shapeOf(src), srcBox)
	dstShape := shape.NewShape(b.shapeOf(dst), dstBox)

	points := route.Copy()
	if !srcShape.IsRectangular() {
		points[0] = srcShape.ClipToBorder(points[0])
	}
	if !dstShape.IsRectangular() {
		points[len(points)-1] = dstShape.ClipToBorder(points[len(points)-1])
	}

	points = geo.SnapOrthogonal(points, b.dir.IsVertical())

	var srcRect, dstRect *geo.Box
	if srcShape.IsRectangular() {
		srcRect = &srcBox
	}
	if dstShape.IsRectangular() {
		dstRect = &dstBox
	}
	return geo.ClipEndpointsToBoxes(points, srcRect, dstRect)
}

func (b *builder) extractGroup(sg *flowgraph.Subgraph, res *placement.Result) flowtarget.Group {
	box := res.Nodes[sg.ID]
	grp := flowtarget.Group{
		ID:    sg.ID,
		Label: sg.Label,
	}
	grp.SetBox(box)

	if sub, ok := b.precomputed[sg.ID]; ok {
		for _, c := range sub.groups {
			grp.Children = append(grp.Children, c.Translate(box.TopLeft.X, box.TopLeft.Y))
		}
		return grp
	}
	for _, c := range sg.Children {
		grp.Children = append(grp.Children, b.extractGroup(c, res))
	}
	return grp
}
