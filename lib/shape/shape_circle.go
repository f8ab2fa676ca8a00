package shape

import (
	"math"

	"oss.terrastruct.com/flowdraw/lib/geo"
)

type shapeCircle struct {
	*baseShape
}

func NewCircle(box geo.Box) Shape {
	return shapeCircle{
		baseShape: &baseShape{
			Type: CIRCLE_TYPE,
			Box:  box,
		},
	}
}

func (s shapeCircle) IsRectangular() bool {
	return false
}

func (s shapeCircle) IsCircular() bool {
	return true
}

// ClipToBorder uses the inscribed circle so non-square boxes still clip inside.
func (s shapeCircle) ClipToBorder(p geo.Point) geo.Point {
	return geo.ClipToCircle(p, s.Box.Center(), math.Min(s.Box.Width, s.Box.Height)/2)
}

// GetDimensionsToFit circumscribes the padded label box, plus a small margin.
func (s shapeCircle) GetDimensionsToFit(width, height, paddingX, paddingY float64) (float64, float64) {
	w, h := s.baseShape.GetDimensionsToFit(width, height, paddingX, paddingY)
	diameter := math.Ceil(math.Hypot(w, h)) + 8
	return diameter, diameter
}
