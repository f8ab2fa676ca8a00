package geo

import "math"

// AXIS_TOLERANCE is how far apart two coordinates may be and still count as
// the same line when snapping or reducing routes.
const AXIS_TOLERANCE = 1.

func EuclideanDistance(x1, y1, x2, y2 float64) float64 {
	if x1 == x2 {
		return math.Abs(y1 - y2)
	} else if y1 == y2 {
		return math.Abs(x1 - x2)
	} else {
		return math.Hypot(x1-x2, y1-y2)
	}
}

func abs(v float64) float64 {
	return math.Abs(v)
}
