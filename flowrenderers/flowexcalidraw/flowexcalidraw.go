// flowexcalidraw renders a positioned diagram as an Excalidraw scene.
// The input is flowlayouts' output.
package flowexcalidraw

import (
	"context"
	"fmt"
	"math"
	"time"

	"oss.terrastruct.com/xdefer"
	"oss.terrastruct.com/xjson"

	"oss.terrastruct.com/flowdraw/flowgraph"
	"oss.terrastruct.com/flowdraw/flowtarget"
	"oss.terrastruct.com/flowdraw/lib/color"
	"oss.terrastruct.com/flowdraw/lib/go2"
	"oss.terrastruct.com/flowdraw/lib/textmeasure"
)

const (
	DEFAULT_SOURCE = "flowdraw"

	FONT_FAMILY_HAND   = 1
	FONT_FAMILY_NORMAL = 2
	FONT_FAMILY_CODE   = 3

	ROUNDNESS_PROPORTIONAL = 2
	ROUNDNESS_ADAPTIVE     = 3

	NODE_FONT_SIZE  = 16
	EDGE_FONT_SIZE  = 13
	GROUP_FONT_SIZE = 14
	LINE_HEIGHT     = 1.25

	GROUP_STROKE     = "#868e96"
	GROUP_BACKGROUND = "#f8f9fa"
	GROUP_OPACITY    = 40
	GROUP_LABEL_PAD  = 8
)

type RenderOpts struct {
	// Source is written to the scene's source field.
	Source string
	// Clock stamps elements' updated field. Defaults to time.Now.
	Clock func() time.Time
}

type File struct {
	Type     string         `json:"type"`
	Version  int            `json:"version"`
	Source   string         `json:"source"`
	Elements []*Element     `json:"elements"`
	AppState AppState       `json:"appState"`
	Files    map[string]any `json:"files"`
}

type AppState struct {
	GridSize            *int   `json:"gridSize"`
	ViewBackgroundColor string `json:"viewBackgroundColor"`
}

type Element struct {
	ID              string         `json:"id"`
	Type            string         `json:"type"`
	X               float64        `json:"x"`
	Y               float64        `json:"y"`
	Width           float64        `json:"width"`
	Height          float64        `json:"height"`
	Angle           float64        `json:"angle"`
	StrokeColor     string         `json:"strokeColor"`
	BackgroundColor string         `json:"backgroundColor"`
	FillStyle       string         `json:"fillStyle"`
	StrokeWidth     float64        `json:"strokeWidth"`
	StrokeStyle     string         `json:"strokeStyle"`
	Roughness       int            `json:"roughness"`
	Opacity         int            `json:"opacity"`
	GroupIDs        []string       `json:"groupIds"`
	FrameID         *string        `json:"frameId"`
	Roundness       *Roundness     `json:"roundness"`
	Seed            int64          `json:"seed"`
	Version         int            `json:"version"`
	VersionNonce    int64          `json:"versionNonce"`
	IsDeleted       bool           `json:"isDeleted"`
	BoundElements   []BoundElement `json:"boundElements"`
	Updated         int64          `json:"updated"`
	Link            *string        `json:"link"`
	Locked          bool           `json:"locked"`

	*Text
	*Arrow
}

type Text struct {
	Text          string  `json:"text"`
	FontSize      float64 `json:"fontSize"`
	FontFamily    int     `json:"fontFamily"`
	TextAlign     string  `json:"textAlign"`
	VerticalAlign string  `json:"verticalAlign"`
	ContainerID   *string `json:"containerId"`
	OriginalText  string  `json:"originalText"`
	AutoResize    bool    `json:"autoResize"`
	LineHeight    float64 `json:"lineHeight"`
}

type Arrow struct {
	Points             [][2]float64 `json:"points"`
	StartBinding       *Binding     `json:"startBinding"`
	EndBinding         *Binding     `json:"endBinding"`
	StartArrowhead     *string      `json:"startArrowhead"`
	EndArrowhead       *string      `json:"endArrowhead"`
	LastCommittedPoint *[2]float64  `json:"lastCommittedPoint"`
}

type Roundness struct {
	Type int `json:"type"`
}

type BoundElement struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type Binding struct {
	ElementID string  `json:"elementId"`
	Focus     float64 `json:"focus"`
	Gap       float64 `json:"gap"`
}

// renderer holds the state of one Render call.
type renderer struct {
	ctx     context.Context
	seeder  *Seeder
	updated int64
	font    int

	elements []*Element
	shapes   map[string]*Element
	groups   int
}

// Render encodes diagram as an Excalidraw scene. Two calls with the same
// diagram and clock produce identical bytes.
func Render(ctx context.Context, diagram *flowtarget.Diagram, opts *RenderOpts) (_ []byte, err error) {
	defer xdefer.Errorf(&err, "failed to render excalidraw")

	if opts == nil {
		opts = &RenderOpts{}
	}
	source := opts.Source
	if source == "" {
		source = DEFAULT_SOURCE
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	r := &renderer{
		ctx:     ctx,
		seeder:  NewSeeder(INITIAL_SEED),
		updated: clock().UnixMilli(),
		font:    fontFamily(diagram.FontFamily),
		shapes:  make(map[string]*Element, len(diagram.Nodes)),
	}
	for i, n := range diagram.Nodes {
		r.addNode(i, n)
	}
	for i, e := range diagram.Edges {
		r.addEdge(i, e)
	}
	for _, g := range diagram.Groups {
		r.addGroup(g)
	}

	f := File{
		Type:     "excalidraw",
		Version:  2,
		Source:   source,
		Elements: r.elements,
		AppState: AppState{ViewBackgroundColor: color.White},
		Files:    map[string]any{},
	}
	if f.Elements == nil {
		f.Elements = []*Element{}
	}
	return xjson.Marshal(f), nil
}

func (r *renderer) base(id, typ string, x, y, width, height float64) *Element {
	return &Element{
		ID:              id,
		Type:            typ,
		X:               x,
		Y:               y,
		Width:           width,
		Height:          height,
		StrokeColor:     color.Ink,
		BackgroundColor: "transparent",
		FillStyle:       "solid",
		StrokeWidth:     2,
		StrokeStyle:     "solid",
		Roughness:       1,
		Opacity:         100,
		GroupIDs:        []string{},
		Seed:            r.seeder.Next(),
		Version:         1,
		VersionNonce:    r.seeder.Next(),
		Updated:         r.updated,
	}
}

func (r *renderer) text(id, content string, x, y, width, height, fontSize float64, containerID *string) *Element {
	el := r.base(id, "text", x, y, width, height)
	el.Text = &Text{
		Text:          content,
		FontSize:      fontSize,
		FontFamily:    r.font,
		TextAlign:     "center",
		VerticalAlign: "middle",
		ContainerID:   containerID,
		OriginalText:  content,
		AutoResize:    true,
		LineHeight:    LINE_HEIGHT,
	}
	return el
}

func (r *renderer) addNode(i int, n flowtarget.Node) {
	shapeID := fmt.Sprintf("shape_%d", i)
	textID := fmt.Sprintf("text_%d", i)
	style := resolveNodeStyle(r.ctx, n.Shape, n.Style)

	el := r.base(shapeID, elementType(n.Shape), n.X, n.Y, n.Width, n.Height)
	el.Roundness = roundness(n.Shape)
	el.BackgroundColor = style.background
	el.StrokeColor = style.stroke
	el.StrokeWidth = style.strokeWidth
	el.StrokeStyle = style.strokeStyle
	el.BoundElements = []BoundElement{{ID: textID, Type: "text"}}
	r.elements = append(r.elements, el)
	r.shapes[n.ID] = el

	// Excalidraw recenters bound text on its container when loading
	width := float64(textmeasure.Cells(n.Label)) * 10
	label := r.text(textID, n.Label, n.X+n.Width/2-width/2, n.Y+n.Height/2-10, width, 20, NODE_FONT_SIZE, &shapeID)
	label.StrokeColor = style.text
	r.elements = append(r.elements, label)
}

func (r *renderer) addEdge(i int, e flowtarget.Edge) {
	if len(e.Points) < 2 {
		return
	}
	arrowID := fmt.Sprintf("arrow_%d", i)
	labelID := fmt.Sprintf("elabel_%d", i)

	origin := e.Points[0]
	points := make([][2]float64, len(e.Points))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for j, p := range e.Points {
		rel := [2]float64{p.X - origin.X, p.Y - origin.Y}
		points[j] = rel
		minX, maxX = math.Min(minX, rel[0]), math.Max(maxX, rel[0])
		minY, maxY = math.Min(minY, rel[1]), math.Max(maxY, rel[1])
	}

	var startBinding, endBinding *Binding
	if src, ok := r.shapes[e.Source]; ok {
		src.BoundElements = append(src.BoundElements, BoundElement{ID: arrowID, Type: "arrow"})
		startBinding = &Binding{ElementID: src.ID, Gap: 1}
	}
	if dst, ok := r.shapes[e.Target]; ok {
		dst.BoundElements = append(dst.BoundElements, BoundElement{ID: arrowID, Type: "arrow"})
		endBinding = &Binding{ElementID: dst.ID, Gap: 1}
	}

	el := r.base(arrowID, "arrow", origin.X, origin.Y, maxX-minX, maxY-minY)
	el.Roundness = &Roundness{Type: ROUNDNESS_PROPORTIONAL}
	switch e.Style {
	case flowgraph.EdgeDotted:
		el.StrokeStyle = "dashed"
	case flowgraph.EdgeThick:
		el.StrokeWidth = 4
	}
	el.Arrow = &Arrow{
		Points:         points,
		StartBinding:   startBinding,
		EndBinding:     endBinding,
		StartArrowhead: go2.PointerIf(e.ArrowStart, "arrow"),
		EndArrowhead:   go2.PointerIf(e.ArrowEnd, "arrow"),
	}
	if e.Label != "" {
		el.BoundElements = []BoundElement{{ID: labelID, Type: "text"}}
	}
	r.elements = append(r.elements, el)

	if e.Label == "" || e.LabelPosition == nil {
		return
	}
	width := float64(textmeasure.Cells(e.Label)) * 8
	lp := *e.LabelPosition
	r.elements = append(r.elements, r.text(labelID, e.Label, lp.X-width/2, lp.Y-8, width, 16, EDGE_FONT_SIZE, &arrowID))
}

// addGroup draws g and its descendants. Zero sized groups are skipped along
// with their children.
func (r *renderer) addGroup(g flowtarget.Group) {
	if g.Width == 0 && g.Height == 0 {
		return
	}
	n := r.groups
	r.groups++

	el := r.base(fmt.Sprintf("group_%d", n), "rectangle", g.X, g.Y, g.Width, g.Height)
	el.StrokeStyle = "dashed"
	el.StrokeWidth = 1
	el.StrokeColor = GROUP_STROKE
	el.BackgroundColor = GROUP_BACKGROUND
	el.Opacity = GROUP_OPACITY
	el.Roundness = &Roundness{Type: ROUNDNESS_ADAPTIVE}
	r.elements = append(r.elements, el)

	if g.Label != "" {
		width := float64(textmeasure.Cells(g.Label)) * 8
		label := r.text(fmt.Sprintf("glabel_%d", n), g.Label, g.X+GROUP_LABEL_PAD, g.Y+4, width, 18, GROUP_FONT_SIZE, nil)
		label.TextAlign = "left"
		label.VerticalAlign = "top"
		label.StrokeColor = GROUP_STROKE
		r.elements = append(r.elements, label)
	}

	for _, c := range g.Children {
		r.addGroup(c)
	}
}
