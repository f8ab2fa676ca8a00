package shape

import (
	"oss.terrastruct.com/flowdraw/lib/geo"
)

type shapeCylinder struct {
	*baseShape
}

func NewCylinder(box geo.Box) Shape {
	return shapeCylinder{
		baseShape: &baseShape{
			Type: CYLINDER_TYPE,
			Box:  box,
		},
	}
}

// GetDimensionsToFit adds the height of the top and bottom ellipses.
func (s shapeCylinder) GetDimensionsToFit(width, height, paddingX, paddingY float64) (float64, float64) {
	w, h := s.baseShape.GetDimensionsToFit(width, height, paddingX, paddingY)
	return w, h + 14
}
