package shape

import (
	"oss.terrastruct.com/flowdraw/lib/geo"
)

// DOUBLE_CIRCLE_GAP is the extra diameter taken by the outer ring.
const DOUBLE_CIRCLE_GAP = 12.

type shapeDoubleCircle struct {
	shapeCircle
}

func NewDoubleCircle(box geo.Box) Shape {
	return shapeDoubleCircle{
		shapeCircle: shapeCircle{
			baseShape: &baseShape{
				Type: DOUBLE_CIRCLE_TYPE,
				Box:  box,
			},
		},
	}
}

func (s shapeDoubleCircle) GetDimensionsToFit(width, height, paddingX, paddingY float64) (float64, float64) {
	d, _ := s.shapeCircle.GetDimensionsToFit(width, height, paddingX, paddingY)
	return d + DOUBLE_CIRCLE_GAP, d + DOUBLE_CIRCLE_GAP
}
