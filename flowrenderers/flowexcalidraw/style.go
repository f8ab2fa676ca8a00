package flowexcalidraw

import (
	"context"
	"strconv"
	"strings"

	"cdr.dev/slog"

	"oss.terrastruct.com/flowdraw/flowgraph"
	"oss.terrastruct.com/flowdraw/lib/color"
	"oss.terrastruct.com/flowdraw/lib/log"
	"oss.terrastruct.com/flowdraw/lib/shape"
)

// nodeStyle is what a node's style properties resolve to on the canvas.
type nodeStyle struct {
	background  string
	stroke      string
	text        string
	strokeWidth float64
	strokeStyle string
}

func resolveNodeStyle(ctx context.Context, shapeType string, style flowgraph.Style) nodeStyle {
	ns := nodeStyle{
		background:  "transparent",
		stroke:      color.Ink,
		text:        color.Ink,
		strokeWidth: 2,
		strokeStyle: "solid",
	}
	if isFilled(shapeType) {
		ns.background = color.Ink
		ns.text = color.White
	}

	if fill, ok := cssColor(ctx, style, "fill"); ok {
		ns.background = fill
		ns.text = color.Contrast(fill)
		// a filled node without a stroke gets an outline a shade darker
		if stroke, err := color.Darken(fill); err == nil {
			ns.stroke = stroke
		}
	}
	if stroke, ok := cssColor(ctx, style, "stroke"); ok {
		ns.stroke = stroke
	}
	if text, ok := cssColor(ctx, style, "color"); ok {
		ns.text = text
	}
	if w, ok := style["stroke-width"]; ok {
		v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(w), "px"), 64)
		if err != nil || v <= 0 {
			log.Warn(ctx, "ignoring invalid stroke-width", slog.F("value", w))
		} else {
			ns.strokeWidth = v
		}
	}
	if dash, ok := style["stroke-dasharray"]; ok {
		switch strings.TrimSpace(dash) {
		case "", "0", "none":
		default:
			ns.strokeStyle = "dashed"
		}
	}
	return ns
}

func cssColor(ctx context.Context, style flowgraph.Style, key string) (string, bool) {
	raw, ok := style[key]
	if !ok {
		return "", false
	}
	hex, err := color.Normalize(raw)
	if err != nil {
		log.Warn(ctx, "ignoring invalid color", slog.F("property", key), slog.F("value", raw))
		return "", false
	}
	return hex, true
}

func isFilled(shapeType string) bool {
	return shapeType == shape.STATE_START_TYPE || shapeType == shape.STATE_END_TYPE
}

func elementType(shapeType string) string {
	switch shapeType {
	case shape.DIAMOND_TYPE:
		return "diamond"
	case shape.CIRCLE_TYPE, shape.DOUBLE_CIRCLE_TYPE, shape.STADIUM_TYPE, shape.STATE_START_TYPE, shape.STATE_END_TYPE:
		return "ellipse"
	default:
		return "rectangle"
	}
}

// roundness is nil for shapes whose outline has no corners to round.
func roundness(shapeType string) *Roundness {
	switch shapeType {
	case shape.DIAMOND_TYPE, shape.CIRCLE_TYPE, shape.DOUBLE_CIRCLE_TYPE, shape.STATE_START_TYPE, shape.STATE_END_TYPE:
		return nil
	default:
		return &Roundness{Type: ROUNDNESS_ADAPTIVE}
	}
}

// fontFamily maps a font name onto one of Excalidraw's bundled families.
func fontFamily(name string) int {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "mono"), strings.Contains(n, "cascadia"), strings.Contains(n, "code"):
		return FONT_FAMILY_CODE
	case strings.Contains(n, "helvetica"), strings.Contains(n, "arial"), n == "sans-serif":
		return FONT_FAMILY_NORMAL
	default:
		return FONT_FAMILY_HAND
	}
}
