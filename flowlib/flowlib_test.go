package flowlib

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/flowdraw/flowlayouts"
	"oss.terrastruct.com/flowdraw/flowlayouts/placement"
	"oss.terrastruct.com/flowdraw/flowtarget"
	"oss.terrastruct.com/flowdraw/lib/geo"
	"oss.terrastruct.com/flowdraw/lib/log"
)

// stackEngine stacks boxes vertically in insertion order and joins edges
// with straight two point routes.
type stackEngine struct{}

func (stackEngine) Layout(ctx context.Context, g *placement.Graph) (*placement.Result, error) {
	res := &placement.Result{
		Nodes: make(map[string]geo.Box),
		Edges: make(map[string]placement.Route),
	}
	y := g.MarginY
	width := 0.
	for _, n := range g.Nodes {
		res.Nodes[n.ID] = geo.NewBox(geo.NewPoint(g.MarginX, y), n.Width, n.Height)
		y += n.Height + g.RankSep
		if n.Width > width {
			width = n.Width
		}
	}
	for _, e := range g.Edges {
		src, dst := res.Nodes[e.Src], res.Nodes[e.Dst]
		res.Edges[e.ID] = placement.Route{Points: geo.Points{
			geo.NewPoint(src.Center().X, src.Bottom()),
			geo.NewPoint(dst.Center().X, dst.TopLeft.Y),
		}}
	}
	res.Width = width + 2*g.MarginX
	res.Height = y - g.RankSep + g.MarginY
	return res, nil
}

const input = `
direction: TD
nodes:
  - id: a
    label: Start
  - id: b
    shape: diamond
    class: hot
edges:
  - from: a
    to: b
    style: dotted
classDefs:
  hot:
    fill: orange
`

func TestCompile(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	diagram, g, err := Compile(ctx, []byte(input), &CompileOptions{
		Engine: stackEngine{},
		Layout: &flowlayouts.Opts{Padding: 20},
	})
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Len(t, diagram.Nodes, 2)
	assert.Len(t, diagram.Edges, 1)

	a, ok := diagram.Node("a")
	require.True(t, ok)
	assert.Equal(t, "Start", a.Label)
	assert.Equal(t, 20., a.X)

	b, ok := diagram.Node("b")
	require.True(t, ok)
	assert.Equal(t, "orange", b.Style["fill"])

	out, err := Render(ctx, diagram, FORMAT_EXCALIDRAW, &RenderOptions{
		Clock: func() time.Time { return time.Unix(0, 0) },
	})
	require.NoError(t, err)
	var scene map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &scene))
	assert.Equal(t, "excalidraw", scene["type"])
	assert.Len(t, scene["elements"], 5)

	out, err = Render(ctx, diagram, FORMAT_JSON, nil)
	require.NoError(t, err)
	var positioned flowtarget.Diagram
	require.NoError(t, json.Unmarshal(out, &positioned))
	assert.Equal(t, diagram.Width, positioned.Width)
	assert.Len(t, positioned.Nodes, 2)

	_, err = Render(ctx, diagram, "svg", nil)
	assert.EqualError(t, err, `unknown output format "svg"`)
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	testCases := []struct {
		name   string
		input  string
		expErr string
	}{
		{
			name:   "unknown_field",
			input:  "nodez: []",
			expErr: "failed to parse graph",
		},
		{
			name: "shared_member",
			input: `
nodes: [{id: a}]
subgraphs:
  - {id: x, nodes: [a]}
  - {id: y, nodes: [a]}
`,
			expErr: `node "a" belongs to both "x" and "y"`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Compile(ctx, []byte(tc.input), &CompileOptions{Engine: stackEngine{}})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expErr)
		})
	}
}
