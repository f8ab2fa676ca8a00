package shape

import (
	"oss.terrastruct.com/flowdraw/lib/geo"
)

const STATE_MARKER_SIZE = 28.

// shapeStateMarker is the filled dot of a state machine's start or end. Its
// size ignores the label.
type shapeStateMarker struct {
	shapeCircle
}

func NewStateMarker(shapeType string, box geo.Box) Shape {
	return shapeStateMarker{
		shapeCircle: shapeCircle{
			baseShape: &baseShape{
				Type: shapeType,
				Box:  box,
			},
		},
	}
}

func (s shapeStateMarker) GetDimensionsToFit(_, _, _, _ float64) (float64, float64) {
	return STATE_MARKER_SIZE, STATE_MARKER_SIZE
}
