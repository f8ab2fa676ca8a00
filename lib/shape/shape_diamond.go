package shape

import (
	"math"

	"oss.terrastruct.com/flowdraw/lib/geo"
)

// DIAMOND_EXTRA keeps the label clear of the slanted sides.
const DIAMOND_EXTRA = 24.

type shapeDiamond struct {
	*baseShape
}

func NewDiamond(box geo.Box) Shape {
	return shapeDiamond{
		baseShape: &baseShape{
			Type: DIAMOND_TYPE,
			Box:  box,
		},
	}
}

func (s shapeDiamond) IsRectangular() bool {
	return false
}

func (s shapeDiamond) ClipToBorder(p geo.Point) geo.Point {
	return geo.ClipToDiamond(p, s.Box)
}

func (s shapeDiamond) GetDimensionsToFit(width, height, paddingX, paddingY float64) (float64, float64) {
	w, h := s.baseShape.GetDimensionsToFit(width, height, paddingX, paddingY)
	side := math.Max(w, h) + DIAMOND_EXTRA
	return side, side
}
