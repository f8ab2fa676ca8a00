package flowlayouts

import (
	"oss.terrastruct.com/flowdraw/flowgraph"
	"oss.terrastruct.com/flowdraw/flowlayouts/placement"
	"oss.terrastruct.com/flowdraw/flowtarget"
	"oss.terrastruct.com/flowdraw/lib/geo"
	"oss.terrastruct.com/flowdraw/lib/shape"
)

// compose injects every precomputed region into sub at its placeholder's
// position, then reconnects edges that were routed to a placeholder to the
// node they actually target.
func (b *builder) compose(sub *sublayout, res *placement.Result) {
	if len(b.precomputed) == 0 {
		return
	}
	own := len(sub.edges)
	injected := make(map[string]flowtarget.Node)

	var walk func([]*flowgraph.Subgraph)
	walk = func(sgs []*flowgraph.Subgraph) {
		for _, sg := range sgs {
			inner, ok := b.precomputed[sg.ID]
			if !ok {
				walk(sg.Children)
				continue
			}
			offset := res.Nodes[sg.ID].TopLeft
			for _, n := range inner.nodes {
				n = n.Translate(offset.X, offset.Y)
				sub.nodes = append(sub.nodes, n)
				injected[n.ID] = n
			}
			for _, e := range inner.edges {
				sub.edges = append(sub.edges, e.Translate(offset.X, offset.Y))
			}
		}
	}
	walk(b.regions)

	for i := range sub.edges[:own] {
		e := &sub.edges[i]
		src, srcMoved := injected[e.Source]
		dst, dstMoved := injected[e.Target]
		if !srcMoved && !dstMoved {
			continue
		}
		points := e.Points.Copy()
		if srcMoved {
			points[0] = src.Center()
		}
		if dstMoved {
			points[len(points)-1] = dst.Center()
		}
		points = geo.SnapOrthogonal(points, b.dir.IsVertical())
		if srcMoved {
			points = reattach(points.Reverse(), src).Reverse()
		}
		if dstMoved {
			points = reattach(points, dst)
		}
		e.Points = points
	}
}

// reattach ends the route on n's border instead of its center.
func reattach(route geo.Points, n flowtarget.Node) geo.Points {
	if len(route) < 2 {
		return route
	}
	box := n.Box()
	s := shape.NewShape(n.Shape, box)
	if s.IsRectangular() {
		return geo.ClipEndpointsToBoxes(route, nil, &box)
	}
	out := route.Copy()
	out[len(out)-1] = s.ClipToBorder(out[len(out)-2])
	return out
}
