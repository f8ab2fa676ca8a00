package shape

import (
	"oss.terrastruct.com/flowdraw/lib/geo"
)

type shapeHexagon struct {
	*baseShape
}

func NewHexagon(box geo.Box) Shape {
	return shapeHexagon{
		baseShape: &baseShape{
			Type: HEXAGON_TYPE,
			Box:  box,
		},
	}
}

// GetDimensionsToFit leaves room for the two pointed ends.
func (s shapeHexagon) GetDimensionsToFit(width, height, paddingX, paddingY float64) (float64, float64) {
	w, h := s.baseShape.GetDimensionsToFit(width, height, paddingX, paddingY)
	return w + 16, h
}
