package flowlayouts

import (
	"context"
	"fmt"

	"cdr.dev/slog"

	"oss.terrastruct.com/flowdraw/flowgraph"
	"oss.terrastruct.com/flowdraw/flowlayouts/placement"
	"oss.terrastruct.com/flowdraw/flowtarget"
	"oss.terrastruct.com/flowdraw/lib/log"
	"oss.terrastruct.com/flowdraw/lib/shape"
	"oss.terrastruct.com/flowdraw/lib/textmeasure"
)

// pass lays out one scope: the whole graph, or a region placed on its own.
type pass struct {
	g      *flowgraph.Graph
	engine placement.Engine
	opts   *Opts

	dir     flowgraph.Direction
	nodes   []string
	regions []*flowgraph.Subgraph
	edges   []int

	marginX, marginY              float64
	fallbackWidth, fallbackHeight float64
}

// sublayout is a finished pass in its own coordinates.
type sublayout struct {
	width, height float64

	nodes  []flowtarget.Node
	edges  []flowtarget.Edge
	groups []flowtarget.Group
}

func newRootPass(g *flowgraph.Graph, engine placement.Engine, opts *Opts) *pass {
	dir := g.Direction.Normalize()
	if dir == "" {
		dir = flowgraph.DirectionTB
	}

	owned := make(map[string]struct{})
	for _, sg := range g.Subgraphs {
		for _, id := range sg.AllNodeIDs() {
			owned[id] = struct{}{}
		}
	}
	var nodes []string
	for _, n := range g.Nodes {
		if _, ok := owned[n.ID]; !ok {
			nodes = append(nodes, n.ID)
		}
	}
	edges := make([]int, len(g.Edges))
	for i := range g.Edges {
		edges[i] = i
	}

	return &pass{
		g:              g,
		engine:         engine,
		opts:           opts,
		dir:            dir,
		nodes:          nodes,
		regions:        g.Subgraphs,
		edges:          edges,
		marginX:        opts.Padding,
		marginY:        opts.Padding,
		fallbackWidth:  FALLBACK_WIDTH,
		fallbackHeight: FALLBACK_HEIGHT,
	}
}

// nestedPass scopes a pass to sg: its members, its child regions and the
// edges with both ends inside it. sg itself is not part of the scope.
func (p *pass) nestedPass(sg *flowgraph.Subgraph) *pass {
	scope := make(map[string]struct{})
	for _, id := range sg.AllNodeIDs() {
		scope[id] = struct{}{}
	}
	for _, id := range sg.AllSubgraphIDs()[1:] {
		scope[id] = struct{}{}
	}
	var edges []int
	for _, i := range p.edges {
		e := p.g.Edges[i]
		_, srcIn := scope[e.Source]
		_, dstIn := scope[e.Target]
		if srcIn && dstIn {
			edges = append(edges, i)
		}
	}

	return &pass{
		g:              p.g,
		engine:         p.engine,
		opts:           p.opts,
		dir:            sg.Direction.Normalize(),
		nodes:          sg.NodeIDs,
		regions:        sg.Children,
		edges:          edges,
		marginX:        SUBLAYOUT_MARGIN_X,
		marginY:        SUBLAYOUT_MARGIN_Y,
		fallbackWidth:  FALLBACK_SUB_WIDTH,
		fallbackHeight: FALLBACK_SUB_HEIGHT,
	}
}

func (p *pass) run(ctx context.Context) (*sublayout, error) {
	b := &builder{
		pass:        p,
		pg:          placement.NewGraph(rankdir(p.dir)),
		precomputed: make(map[string]*sublayout),
		owner:       make(map[string]string),
		entry:       make(map[string]string),
		exit:        make(map[string]string),
	}
	if err := b.build(ctx); err != nil {
		return nil, err
	}

	res, err := p.engine.Layout(ctx, b.pg)
	if err != nil {
		return nil, err
	}
	if res.Width <= 0 || res.Height <= 0 {
		res.Width, res.Height = p.fallbackWidth, p.fallbackHeight
	}

	sub := b.extract(ctx, res)
	b.compose(sub, res)
	return sub, nil
}

// builder accumulates the placement graph of one pass.
type builder struct {
	*pass

	pg *placement.Graph

	leaves []string
	placed []placedEdge

	// precomputed holds the regions laid out on their own, keyed by region id.
	precomputed map[string]*sublayout
	// owner maps every node and region inside a precomputed region, and the
	// region itself, to that region's id.
	owner map[string]string
	// entry and exit redirect edges aimed at a region to its first and last
	// member.
	entry map[string]string
	exit  map[string]string
}

type placedEdge struct {
	index    int
	src, dst string
}

func edgeKey(i int) string {
	return fmt.Sprintf("e%d", i)
}

func rankdir(d flowgraph.Direction) placement.Rankdir {
	switch d.Normalize() {
	case flowgraph.DirectionBT:
		return placement.RankdirBT
	case flowgraph.DirectionLR:
		return placement.RankdirLR
	case flowgraph.DirectionRL:
		return placement.RankdirRL
	default:
		return placement.RankdirTB
	}
}

func (b *builder) isRegion(id string) bool {
	_, ok := b.g.Subgraph(id)
	return ok
}

// isLeaf reports whether id names a node. Ids shared with a region belong to
// the region.
func (b *builder) isLeaf(id string) bool {
	_, ok := b.g.Node(id)
	return ok && !b.isRegion(id)
}

func (b *builder) build(ctx context.Context) error {
	b.pg.NodeSep = b.opts.NodeSpacing
	b.pg.RankSep = b.opts.LayerSpacing
	b.pg.MarginX = b.marginX
	b.pg.MarginY = b.marginY

	for _, id := range b.nodes {
		if !b.isLeaf(id) {
			continue
		}
		if err := b.addLeaf(id, ""); err != nil {
			return err
		}
	}
	for _, sg := range b.regions {
		if err := b.addRegion(ctx, sg, ""); err != nil {
			return err
		}
	}
	return b.addEdges(ctx)
}

func (b *builder) addLeaf(id, parent string) error {
	n, _ := b.g.Node(id)
	w, h := shape.EstimateSize(n.Label, n.Shape)
	b.pg.SetNode(id, w, h)
	b.leaves = append(b.leaves, id)
	if parent == "" {
		return nil
	}
	return b.pg.SetParent(id, parent)
}

func (b *builder) ownDirection(sg *flowgraph.Subgraph) bool {
	d := sg.Direction.Normalize()
	return d != "" && d != b.dir
}

func (b *builder) addRegion(ctx context.Context, sg *flowgraph.Subgraph, parent string) error {
	if b.ownDirection(sg) {
		log.Debug(ctx, "laying out region on its own",
			slog.F("region", sg.ID),
			slog.F("direction", sg.Direction.Normalize()),
		)
		sub, err := b.nestedPass(sg).run(ctx)
		if err != nil {
			return err
		}
		b.pg.SetNode(sg.ID, sub.width, sub.height)
		b.precomputed[sg.ID] = sub
		for _, id := range sg.AllNodeIDs() {
			if b.isLeaf(id) {
				b.owner[id] = sg.ID
			}
		}
		for _, id := range sg.AllSubgraphIDs() {
			b.owner[id] = sg.ID
		}
		b.entry[sg.ID] = sg.ID
		b.exit[sg.ID] = sg.ID
		if parent == "" {
			return nil
		}
		return b.pg.SetParent(sg.ID, parent)
	}

	b.pg.SetContainer(sg.ID)
	if parent != "" {
		if err := b.pg.SetParent(sg.ID, parent); err != nil {
			return err
		}
	}
	var members []string
	for _, id := range sg.NodeIDs {
		if !b.isLeaf(id) {
			continue
		}
		if err := b.addLeaf(id, sg.ID); err != nil {
			return err
		}
		members = append(members, id)
	}
	for _, c := range sg.Children {
		if err := b.addRegion(ctx, c, sg.ID); err != nil {
			return err
		}
		members = append(members, c.ID)
	}

	// children are resolved first so their redirects are final here
	if len(members) == 0 {
		b.entry[sg.ID] = sg.ID
		b.exit[sg.ID] = sg.ID
		return nil
	}
	b.entry[sg.ID] = b.redirect(members[0], b.entry)
	b.exit[sg.ID] = b.redirect(members[len(members)-1], b.exit)
	return nil
}

// redirect resolves id to the box an edge can attach to in this pass.
func (b *builder) redirect(id string, m map[string]string) string {
	if o, ok := b.owner[id]; ok {
		return o
	}
	if r, ok := m[id]; ok {
		return r
	}
	return id
}

func (b *builder) known(id string) bool {
	if _, ok := b.owner[id]; ok {
		return true
	}
	_, ok := b.pg.Node(id)
	return ok
}

func (b *builder) addEdges(ctx context.Context) error {
	introduced := make(map[string]struct{})
	for _, i := range b.edges {
		e := b.g.Edges[i]
		if !b.known(e.Source) || !b.known(e.Target) {
			log.Debug(ctx, "dropping edge with unknown endpoint",
				slog.F("source", e.Source),
				slog.F("target", e.Target),
			)
			continue
		}
		if so, ok := b.owner[e.Source]; ok && so == b.owner[e.Target] {
			// placed along with its region
			continue
		}

		src := b.redirect(e.Source, b.exit)
		dst := b.redirect(e.Target, b.entry)
		pe := placement.Edge{
			ID:     edgeKey(i),
			Src:    src,
			Dst:    dst,
			Weight: 1,
		}
		if _, ok := introduced[dst]; !ok {
			pe.Weight = 2
			introduced[dst] = struct{}{}
		}
		if e.Label != "" {
			pe.LabelWidth = textmeasure.EdgeLabelFont.Width(e.Label) + EDGE_LABEL_PAD_X
			pe.LabelHeight = textmeasure.FONT_SIZE_EDGE_LABEL + EDGE_LABEL_PAD_Y
		}
		if err := b.pg.SetEdge(pe); err != nil {
			return err
		}
		b.placed = append(b.placed, placedEdge{index: i, src: src, dst: dst})
	}
	return nil
}
