package shape

import (
	"oss.terrastruct.com/flowdraw/lib/geo"
)

// shapeSquare covers every shape drawn inside its plain box: rectangle,
// rounded, stadium, subroutine and anything unknown.
type shapeSquare struct {
	*baseShape
}

func NewSquare(shapeType string, box geo.Box) Shape {
	return shapeSquare{
		baseShape: &baseShape{
			Type: shapeType,
			Box:  box,
		},
	}
}
