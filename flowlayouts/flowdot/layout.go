// Package flowdot places compound graphs with Graphviz dot, run in-process
// through go-graphviz.
package flowdot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"cdr.dev/slog"
	"github.com/goccy/go-graphviz"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/flowdraw/flowlayouts/placement"
	"oss.terrastruct.com/flowdraw/lib/geo"
	"oss.terrastruct.com/flowdraw/lib/log"
)

type Engine struct{}

func New() *Engine {
	return &Engine{}
}

// dotGraph is the subset of dot's -Tjson output that placement needs.
type dotGraph struct {
	BB      string      `json:"bb"`
	Objects []dotObject `json:"objects"`
	Edges   []dotEdge   `json:"edges"`
}

type dotObject struct {
	GVID int    `json:"_gvid"`
	Name string `json:"name"`
	Pos  string `json:"pos"`
	BB   string `json:"bb"`
}

type dotEdge struct {
	ID   string `json:"id"`
	Tail int    `json:"tail"`
	Head int    `json:"head"`
	Pos  string `json:"pos"`
	LP   string `json:"lp"`
}

func (e *Engine) Layout(ctx context.Context, g *placement.Graph) (_ *placement.Result, err error) {
	defer xdefer.Errorf(&err, "failed to dot layout")

	if len(g.Nodes) == 0 {
		return &placement.Result{
			Width:  2 * g.MarginX,
			Height: 2 * g.MarginY,
			Nodes:  map[string]geo.Box{},
			Edges:  map[string]placement.Route{},
		}, nil
	}

	mapper := newObjectMapper(g)
	src := mapper.generateDOT()
	log.Debug(ctx, "dot source", slog.F("dot", src))

	out, err := run(ctx, src)
	if err != nil {
		return nil, err
	}

	var dg dotGraph
	if err := json.Unmarshal(out, &dg); err != nil {
		return nil, fmt.Errorf("failed to decode dot output: %w", err)
	}
	return toResult(g, mapper, &dg)
}

func run(ctx context.Context, src string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init graphviz: %w", err)
	}
	defer gv.Close()

	dg, err := graphviz.ParseBytes([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("failed to parse dot: %w", err)
	}
	defer dg.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, dg, graphviz.Format("json"), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// frame maps dot coordinates (points, y up, origin at the bounding box's
// lower left) onto the canvas (y down, shifted by the margins).
type frame struct {
	llx, ury         float64
	marginX, marginY float64
}

func (f frame) point(x, y float64) geo.Point {
	return geo.NewPoint(x-f.llx+f.marginX, f.ury-y+f.marginY)
}

func toResult(g *placement.Graph, mapper *objectMapper, dg *dotGraph) (*placement.Result, error) {
	bb, err := parseFloats(dg.BB, 4)
	if err != nil {
		return nil, fmt.Errorf("bad graph bb %q: %w", dg.BB, err)
	}
	f := frame{llx: bb[0], ury: bb[3], marginX: g.MarginX, marginY: g.MarginY}

	res := &placement.Result{
		Width:  bb[2] - bb[0] + 2*g.MarginX,
		Height: bb[3] - bb[1] + 2*g.MarginY,
		Nodes:  make(map[string]geo.Box, len(g.Nodes)),
		Edges:  make(map[string]placement.Route, len(g.Edges)),
	}

	gvidToNode := make(map[int]string, len(dg.Objects))
	for _, obj := range dg.Objects {
		id, ok := mapper.ToNode(obj.Name)
		if !ok {
			continue
		}
		gvidToNode[obj.GVID] = id
		n, _ := g.Node(id)
		if mapper.isCluster(n) {
			cbb, err := parseFloats(obj.BB, 4)
			if err != nil {
				return nil, fmt.Errorf("bad cluster bb %q: %w", obj.BB, err)
			}
			tl := f.point(cbb[0], cbb[3])
			res.Nodes[id] = geo.NewBox(tl, cbb[2]-cbb[0], cbb[3]-cbb[1])
			continue
		}
		pos, err := parseFloats(obj.Pos, 2)
		if err != nil {
			return nil, fmt.Errorf("bad position %q for %q: %w", obj.Pos, id, err)
		}
		res.Nodes[id] = geo.NewBoxFromCenter(f.point(pos[0], pos[1]), n.Width, n.Height)
	}

	for _, de := range dg.Edges {
		e, ok := g.Edge(de.ID)
		if !ok {
			continue
		}
		points, err := parseSpline(de.Pos, f)
		if err != nil {
			return nil, fmt.Errorf("bad route %q for edge %q: %w", de.Pos, de.ID, err)
		}
		// back edges may come out drawn head to tail
		if tail, ok := res.Nodes[gvidToNode[de.Tail]]; ok && len(points) > 1 {
			if points[len(points)-1].DistanceTo(tail.Center()) < points[0].DistanceTo(tail.Center()) {
				points = points.Reverse()
			}
		}
		route := placement.Route{Points: points}
		if de.LP != "" && (e.LabelWidth > 0 || e.LabelHeight > 0) {
			lp, err := parseFloats(de.LP, 2)
			if err != nil {
				return nil, fmt.Errorf("bad label position %q for edge %q: %w", de.LP, de.ID, err)
			}
			p := f.point(lp[0], lp[1])
			route.Label = &p
		}
		res.Edges[de.ID] = route
	}

	for _, n := range g.Nodes {
		if _, ok := placeNested(g, res, n); !ok {
			return nil, fmt.Errorf("dot did not place %q", n.ID)
		}
	}
	return res, nil
}

// placeNested centers containers left out of the dot source on the container
// holding them.
func placeNested(g *placement.Graph, res *placement.Result, n *placement.Node) (geo.Box, bool) {
	if b, ok := res.Nodes[n.ID]; ok {
		return b, true
	}
	parent, ok := g.Node(n.Parent)
	if n.Parent == "" || !ok {
		return geo.Box{}, false
	}
	pb, ok := placeNested(g, res, parent)
	if !ok {
		return geo.Box{}, false
	}
	b := geo.NewBoxFromCenter(pb.Center(), n.Width, n.Height)
	res.Nodes[n.ID] = b
	return b, true
}

// parseSpline reads a dot spline, "[s,x,y ][e,x,y ]x0,y0 x1,y1 ...", as the
// polyline through its knots. Control points between knots are dropped.
func parseSpline(pos string, f frame) (geo.Points, error) {
	if i := strings.IndexByte(pos, ';'); i >= 0 {
		pos = pos[:i]
	}
	var start, end *geo.Point
	var controls geo.Points
	for _, tok := range strings.Fields(pos) {
		switch {
		case strings.HasPrefix(tok, "s,"):
			xy, err := parseFloats(tok[2:], 2)
			if err != nil {
				return nil, err
			}
			p := f.point(xy[0], xy[1])
			start = &p
		case strings.HasPrefix(tok, "e,"):
			xy, err := parseFloats(tok[2:], 2)
			if err != nil {
				return nil, err
			}
			p := f.point(xy[0], xy[1])
			end = &p
		default:
			xy, err := parseFloats(tok, 2)
			if err != nil {
				return nil, err
			}
			controls = append(controls, f.point(xy[0], xy[1]))
		}
	}

	var points geo.Points
	if start != nil {
		points = append(points, *start)
	}
	for i := 0; i < len(controls); i += 3 {
		points = append(points, controls[i])
	}
	if len(controls) > 0 && (len(controls)-1)%3 != 0 {
		points = append(points, controls[len(controls)-1])
	}
	if end != nil {
		points = append(points, *end)
	}
	return points, nil
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(parts))
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
