package shape

import (
	"math"

	"oss.terrastruct.com/flowdraw/lib/geo"
	"oss.terrastruct.com/flowdraw/lib/go2"
	"oss.terrastruct.com/flowdraw/lib/textmeasure"
)

const (
	RECTANGLE_TYPE     = "rectangle"
	ROUNDED_TYPE       = "rounded"
	STADIUM_TYPE       = "stadium"
	SUBROUTINE_TYPE    = "subroutine"
	DIAMOND_TYPE       = "diamond"
	CIRCLE_TYPE        = "circle"
	DOUBLE_CIRCLE_TYPE = "doublecircle"
	HEXAGON_TYPE       = "hexagon"
	TRAPEZOID_TYPE     = "trapezoid"
	TRAPEZOID_ALT_TYPE = "trapezoid-alt"
	ASYMMETRIC_TYPE    = "asymmetric"
	CYLINDER_TYPE      = "cylinder"
	STATE_START_TYPE   = "state-start"
	STATE_END_TYPE     = "state-end"

	PADDING_X = 16.
	PADDING_Y = 10.

	MIN_WIDTH  = 60.
	MIN_HEIGHT = 36.
)

// Types lists every shape a node may declare.
var Types = []string{
	RECTANGLE_TYPE,
	ROUNDED_TYPE,
	STADIUM_TYPE,
	SUBROUTINE_TYPE,
	DIAMOND_TYPE,
	CIRCLE_TYPE,
	DOUBLE_CIRCLE_TYPE,
	HEXAGON_TYPE,
	TRAPEZOID_TYPE,
	TRAPEZOID_ALT_TYPE,
	ASYMMETRIC_TYPE,
	CYLINDER_TYPE,
	STATE_START_TYPE,
	STATE_END_TYPE,
}

type Shape interface {
	IsRectangular() bool
	IsCircular() bool

	// ClipToBorder projects p from the shape's center onto its border.
	// Rectangular shapes return p as is; their routes are clipped against the box.
	ClipToBorder(p geo.Point) geo.Point

	// GetDimensionsToFit returns the shape size needed to hold content of
	// width x height with padding on every side.
	GetDimensionsToFit(width, height, paddingX, paddingY float64) (float64, float64)
}

type baseShape struct {
	Type string
	Box  geo.Box
}

func (s baseShape) IsRectangular() bool {
	return true
}

func (s baseShape) IsCircular() bool {
	return false
}

func (s baseShape) ClipToBorder(p geo.Point) geo.Point {
	return p
}

func (s baseShape) GetDimensionsToFit(width, height, paddingX, paddingY float64) (float64, float64) {
	return width + 2*paddingX, height + 2*paddingY
}

func NewShape(shapeType string, box geo.Box) Shape {
	switch shapeType {
	case DIAMOND_TYPE:
		return NewDiamond(box)
	case CIRCLE_TYPE:
		return NewCircle(box)
	case DOUBLE_CIRCLE_TYPE:
		return NewDoubleCircle(box)
	case STATE_START_TYPE, STATE_END_TYPE:
		return NewStateMarker(shapeType, box)
	case HEXAGON_TYPE:
		return NewHexagon(box)
	case TRAPEZOID_TYPE, TRAPEZOID_ALT_TYPE, ASYMMETRIC_TYPE:
		return NewSlanted(shapeType, box)
	case CYLINDER_TYPE:
		return NewCylinder(box)
	case "":
		return NewSquare(RECTANGLE_TYPE, box)
	default:
		return NewSquare(shapeType, box)
	}
}

// Normalize maps empty and unknown shapes to RECTANGLE_TYPE.
func Normalize(shapeType string) string {
	if go2.Contains(Types, shapeType) {
		return shapeType
	}
	return RECTANGLE_TYPE
}

// IsRectangular reports whether routes to shapeType terminate on its box.
// Unknown shapes are rectangular.
func IsRectangular(shapeType string) bool {
	return NewShape(shapeType, geo.Box{}).IsRectangular()
}

func IsCircular(shapeType string) bool {
	return NewShape(shapeType, geo.Box{}).IsCircular()
}

// EstimateSize returns the box a node of shapeType needs for label.
// It never returns less than MIN_WIDTH x MIN_HEIGHT.
func EstimateSize(label, shapeType string) (width, height float64) {
	textWidth := textmeasure.NodeLabelFont.Width(label)
	textHeight := float64(textmeasure.NodeLabelFont.Size)
	width, height = NewShape(shapeType, geo.Box{}).GetDimensionsToFit(textWidth, textHeight, PADDING_X, PADDING_Y)
	return math.Max(width, MIN_WIDTH), math.Max(height, MIN_HEIGHT)
}
