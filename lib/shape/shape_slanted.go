package shape

import (
	"oss.terrastruct.com/flowdraw/lib/geo"
)

// shapeSlanted covers trapezoids and the asymmetric flag shape, which only
// need extra width for their slanted sides.
type shapeSlanted struct {
	*baseShape
}

func NewSlanted(shapeType string, box geo.Box) Shape {
	return shapeSlanted{
		baseShape: &baseShape{
			Type: shapeType,
			Box:  box,
		},
	}
}

func (s shapeSlanted) GetDimensionsToFit(width, height, paddingX, paddingY float64) (float64, float64) {
	w, h := s.baseShape.GetDimensionsToFit(width, height, paddingX, paddingY)
	if s.Type == ASYMMETRIC_TYPE {
		return w + 12, h
	}
	return w + 16, h
}
