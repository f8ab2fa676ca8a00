package flowexcalidraw

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/flowdraw/flowgraph"
	"oss.terrastruct.com/flowdraw/flowtarget"
	"oss.terrastruct.com/flowdraw/lib/color"
	"oss.terrastruct.com/flowdraw/lib/geo"
	"oss.terrastruct.com/flowdraw/lib/log"
	"oss.terrastruct.com/flowdraw/lib/shape"
)

func TestSeeder(t *testing.T) {
	t.Parallel()

	s := NewSeeder(INITIAL_SEED)
	assert.Equal(t, int64(705894), s.Next())
	assert.Equal(t, int64(1126542223), s.Next())
}

func testDiagram() *flowtarget.Diagram {
	lp := geo.NewPoint(100, 110)
	return &flowtarget.Diagram{
		Width:  400,
		Height: 300,
		Nodes: []flowtarget.Node{
			{ID: "a", Label: "Start", Shape: shape.RECTANGLE_TYPE, X: 40, Y: 40, Width: 60, Height: 36, Style: flowgraph.Style{"fill": "red"}},
			{ID: "s", Label: "", Shape: shape.STATE_START_TYPE, X: 200, Y: 40, Width: 60, Height: 36},
			{ID: "d", Label: "ok?", Shape: shape.DIAMOND_TYPE, X: 40, Y: 150, Width: 70, Height: 70},
		},
		Edges: []flowtarget.Edge{
			{
				Source: "a", Target: "d", Label: "yes", Style: flowgraph.EdgeDotted, ArrowEnd: true,
				Points:        geo.Points{geo.NewPoint(70, 76), geo.NewPoint(70, 110), geo.NewPoint(75, 110), geo.NewPoint(75, 150)},
				LabelPosition: &lp,
			},
			{
				Source: "d", Target: "s", Style: flowgraph.EdgeThick, ArrowStart: true,
				Points: geo.Points{geo.NewPoint(110, 185), geo.NewPoint(230, 185), geo.NewPoint(230, 76)},
			},
			{Source: "s", Target: "a", Points: geo.Points{geo.NewPoint(0, 0)}},
		},
		Groups: []flowtarget.Group{
			{ID: "g", Label: "Outer", X: 20, Y: 10, Width: 300, Height: 250, Children: []flowtarget.Group{
				{ID: "h", X: 30, Y: 140, Width: 100, Height: 100},
			}},
			{ID: "empty"},
		},
	}
}

func render(t *testing.T, d *flowtarget.Diagram) []byte {
	t.Helper()
	ctx := log.WithTB(context.Background(), t, nil)
	out, err := Render(ctx, d, &RenderOpts{
		Clock: func() time.Time { return time.Unix(1700000000, 0) },
	})
	require.NoError(t, err)
	return out
}

func TestRender(t *testing.T) {
	t.Parallel()

	out := render(t, testDiagram())
	assert.Equal(t, string(out), string(render(t, testDiagram())))

	var f File
	require.NoError(t, json.Unmarshal(out, &f))
	assert.Equal(t, "excalidraw", f.Type)
	assert.Equal(t, 2, f.Version)
	assert.Equal(t, DEFAULT_SOURCE, f.Source)
	assert.Nil(t, f.AppState.GridSize)
	assert.Equal(t, "#ffffff", f.AppState.ViewBackgroundColor)

	var ids []string
	byID := make(map[string]*Element)
	for _, el := range f.Elements {
		ids = append(ids, el.ID)
		byID[el.ID] = el
	}
	assert.Equal(t, []string{
		"shape_0", "text_0", "shape_1", "text_1", "shape_2", "text_2",
		"arrow_0", "elabel_0", "arrow_1",
		"group_0", "glabel_0", "group_1",
	}, ids)

	first := f.Elements[0]
	assert.Equal(t, int64(705894), first.Seed)
	assert.Equal(t, int64(1126542223), first.VersionNonce)
	assert.Equal(t, int64(1700000000000), first.Updated)

	a := byID["shape_0"]
	assert.Equal(t, "rectangle", a.Type)
	require.NotNil(t, a.Roundness)
	assert.Equal(t, ROUNDNESS_ADAPTIVE, a.Roundness.Type)
	assert.Equal(t, "#ff0000", a.BackgroundColor)
	assert.Equal(t, "#cc0000", a.StrokeColor)
	assert.Equal(t, []BoundElement{{ID: "text_0", Type: "text"}, {ID: "arrow_0", Type: "arrow"}}, a.BoundElements)
	assert.Equal(t, color.White, byID["text_0"].StrokeColor)
	require.NotNil(t, byID["text_0"].Text)
	assert.Equal(t, "shape_0", *byID["text_0"].ContainerID)

	s := byID["shape_1"]
	assert.Equal(t, "ellipse", s.Type)
	assert.Nil(t, s.Roundness)
	assert.Equal(t, color.Ink, s.BackgroundColor)
	assert.Equal(t, color.White, byID["text_1"].StrokeColor)

	d := byID["shape_2"]
	assert.Equal(t, "diamond", d.Type)
	assert.Nil(t, d.Roundness)

	a0 := byID["arrow_0"]
	require.NotNil(t, a0.Arrow)
	assert.Equal(t, 70., a0.X)
	assert.Equal(t, 76., a0.Y)
	assert.Equal(t, [][2]float64{{0, 0}, {0, 34}, {5, 34}, {5, 74}}, a0.Points)
	assert.Equal(t, 5., a0.Width)
	assert.Equal(t, 74., a0.Height)
	assert.Equal(t, "dashed", a0.StrokeStyle)
	assert.Equal(t, &Binding{ElementID: "shape_0", Focus: 0, Gap: 1}, a0.StartBinding)
	assert.Equal(t, &Binding{ElementID: "shape_2", Focus: 0, Gap: 1}, a0.EndBinding)
	assert.Nil(t, a0.StartArrowhead)
	require.NotNil(t, a0.EndArrowhead)
	assert.Equal(t, "arrow", *a0.EndArrowhead)
	assert.Equal(t, []BoundElement{{ID: "elabel_0", Type: "text"}}, a0.BoundElements)

	label := byID["elabel_0"]
	assert.Equal(t, "yes", label.Text.Text)
	assert.Equal(t, 100.-12, label.X)
	assert.Equal(t, "arrow_0", *label.ContainerID)

	a1 := byID["arrow_1"]
	assert.Equal(t, 4., a1.StrokeWidth)
	assert.Equal(t, "solid", a1.StrokeStyle)
	require.NotNil(t, a1.StartArrowhead)
	assert.Nil(t, a1.EndArrowhead)

	g := byID["group_0"]
	assert.Equal(t, "dashed", g.StrokeStyle)
	assert.Equal(t, GROUP_OPACITY, g.Opacity)
	assert.Equal(t, GROUP_BACKGROUND, g.BackgroundColor)

	gl := byID["glabel_0"]
	assert.Equal(t, 28., gl.X)
	assert.Equal(t, 14., gl.Y)
	assert.Equal(t, "left", gl.TextAlign)
	assert.Nil(t, gl.ContainerID)

	assert.Equal(t, 140., byID["group_1"].Y)
}

func TestRenderEmpty(t *testing.T) {
	t.Parallel()

	var f File
	require.NoError(t, json.Unmarshal(render(t, &flowtarget.Diagram{}), &f))
	assert.NotNil(t, f.Elements)
	assert.Empty(t, f.Elements)
}

func TestResolveNodeStyle(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)

	testCases := []struct {
		name  string
		shape string
		style flowgraph.Style
		exp   nodeStyle
	}{
		{
			name:  "default",
			shape: shape.RECTANGLE_TYPE,
			exp:   nodeStyle{background: "transparent", stroke: color.Ink, text: color.Ink, strokeWidth: 2, strokeStyle: "solid"},
		},
		{
			name:  "light_fill",
			shape: shape.ROUNDED_TYPE,
			style: flowgraph.Style{"fill": "#fff", "stroke": "blue", "stroke-width": "3px", "stroke-dasharray": "4 2"},
			exp:   nodeStyle{background: "#ffffff", stroke: "#0000ff", text: color.Ink, strokeWidth: 3, strokeStyle: "dashed"},
		},
		{
			name:  "fill_only",
			shape: shape.RECTANGLE_TYPE,
			style: flowgraph.Style{"fill": "red"},
			exp:   nodeStyle{background: "#ff0000", stroke: "#cc0000", text: color.White, strokeWidth: 2, strokeStyle: "solid"},
		},
		{
			name:  "explicit_color",
			shape: shape.STATE_END_TYPE,
			style: flowgraph.Style{"color": "rgb(0, 128, 0)"},
			exp:   nodeStyle{background: color.Ink, stroke: color.Ink, text: "#008000", strokeWidth: 2, strokeStyle: "solid"},
		},
		{
			name:  "invalid",
			shape: shape.RECTANGLE_TYPE,
			style: flowgraph.Style{"fill": "not-a-color", "stroke-width": "wide", "stroke-dasharray": "none"},
			exp:   nodeStyle{background: "transparent", stroke: color.Ink, text: color.Ink, strokeWidth: 2, strokeStyle: "solid"},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.exp, resolveNodeStyle(ctx, tc.shape, tc.style))
		})
	}
}

func TestFontFamily(t *testing.T) {
	t.Parallel()

	assert.Equal(t, FONT_FAMILY_HAND, fontFamily(""))
	assert.Equal(t, FONT_FAMILY_HAND, fontFamily("Inter"))
	assert.Equal(t, FONT_FAMILY_NORMAL, fontFamily("Helvetica"))
	assert.Equal(t, FONT_FAMILY_CODE, fontFamily("JetBrains Mono"))
}
