// Package flowlayouts turns a flowgraph.Graph into a positioned
// flowtarget.Diagram. Placement itself is delegated to a placement.Engine;
// this package sizes nodes, feeds the engine, lays out regions that flow in
// another direction on their own and stitches everything back together.
package flowlayouts

import (
	"context"

	"cdr.dev/slog"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/flowdraw/flowgraph"
	"oss.terrastruct.com/flowdraw/flowlayouts/placement"
	"oss.terrastruct.com/flowdraw/flowtarget"
	"oss.terrastruct.com/flowdraw/lib/log"
	"oss.terrastruct.com/flowdraw/lib/textmeasure"
)

const (
	// Margins given to the engine when laying out a region on its own.
	SUBLAYOUT_MARGIN_X = 16.
	SUBLAYOUT_MARGIN_Y = 12.

	GROUP_HEADER_HEIGHT      = textmeasure.FONT_SIZE_GROUP_HEADER + 16.
	GROUP_HEADER_CONTENT_PAD = 8.

	EDGE_LABEL_PAD_X = 8.
	EDGE_LABEL_PAD_Y = 6.

	// Canvas sizes used when the engine reports none.
	FALLBACK_WIDTH      = 800.
	FALLBACK_HEIGHT     = 600.
	FALLBACK_SUB_WIDTH  = 200.
	FALLBACK_SUB_HEIGHT = 100.
)

type Opts struct {
	Font         string  `json:"font"`
	Padding      float64 `json:"padding"`
	NodeSpacing  float64 `json:"nodeSpacing"`
	LayerSpacing float64 `json:"layerSpacing"`
}

var DefaultOpts = Opts{
	Font:         textmeasure.DEFAULT_FONT_FAMILY,
	Padding:      40,
	NodeSpacing:  24,
	LayerSpacing: 40,
}

// withDefaults fills zero fields from DefaultOpts.
func (o *Opts) withDefaults() Opts {
	out := DefaultOpts
	if o == nil {
		return out
	}
	if o.Font != "" {
		out.Font = o.Font
	}
	if o.Padding > 0 {
		out.Padding = o.Padding
	}
	if o.NodeSpacing > 0 {
		out.NodeSpacing = o.NodeSpacing
	}
	if o.LayerSpacing > 0 {
		out.LayerSpacing = o.LayerSpacing
	}
	return out
}

// Layout places every node, routes every edge and frames every region of g.
// Regions whose direction differs from the one they are placed in are laid
// out first, at any depth, and then positioned as single boxes.
func Layout(ctx context.Context, g *flowgraph.Graph, engine placement.Engine, opts *Opts) (_ *flowtarget.Diagram, err error) {
	defer xdefer.Errorf(&err, "layout failed")

	o := opts.withDefaults()
	ctx = log.Named(ctx, "flowlayouts")

	root := newRootPass(g, engine, &o)
	sub, err := root.run(ctx)
	if err != nil {
		return nil, err
	}

	diagram := &flowtarget.Diagram{
		Width:      sub.width,
		Height:     sub.height,
		FontFamily: o.Font,
		Nodes:      sub.nodes,
		Edges:      sub.edges,
		Groups:     sub.groups,
	}
	expandGroups(g, diagram)
	normalize(diagram, o.Padding)

	log.Debug(ctx, "layout done",
		slog.F("nodes", len(diagram.Nodes)),
		slog.F("edges", len(diagram.Edges)),
		slog.F("width", diagram.Width),
		slog.F("height", diagram.Height),
	)
	return diagram, nil
}
