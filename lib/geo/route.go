package geo

// IsOrthogonal reports whether every segment is axis-aligned within AXIS_TOLERANCE.
func (route Points) IsOrthogonal() bool {
	for i := 1; i < len(route); i++ {
		dx := abs(route[i].X - route[i-1].X)
		dy := abs(route[i].Y - route[i-1].Y)
		if dx >= AXIS_TOLERANCE && dy >= AXIS_TOLERANCE {
			return false
		}
	}
	return true
}

// RemoveCollinear drops interior points that sit on the same vertical or
// horizontal line as the last kept point and the following point. The segment
// left behind must itself be axis-aligned, so drift below AXIS_TOLERANCE per
// step cannot add up to a diagonal.
func RemoveCollinear(pts Points) Points {
	if len(pts) < 3 {
		return pts.Copy()
	}
	out := Points{pts[0]}
	for i := 1; i < len(pts)-1; i++ {
		a := out[len(out)-1]
		b := pts[i]
		c := pts[i+1]
		sameX := abs(a.X-b.X) < AXIS_TOLERANCE && abs(b.X-c.X) < AXIS_TOLERANCE && abs(a.X-c.X) < AXIS_TOLERANCE
		sameY := abs(a.Y-b.Y) < AXIS_TOLERANCE && abs(b.Y-c.Y) < AXIS_TOLERANCE && abs(a.Y-c.Y) < AXIS_TOLERANCE
		if sameX || sameY {
			continue
		}
		out = append(out, b)
	}
	return append(out, pts[len(pts)-1])
}

// SnapOrthogonal inserts an elbow between every pair of consecutive points
// that is not already axis-aligned. verticalFirst puts the elbow below/above
// the previous point (vertical leg first), otherwise beside it.
func SnapOrthogonal(points Points, verticalFirst bool) Points {
	if len(points) < 2 {
		return points.Copy()
	}
	result := Points{points[0]}
	for _, curr := range points[1:] {
		prev := result[len(result)-1]
		dx := abs(curr.X - prev.X)
		dy := abs(curr.Y - prev.Y)
		if dx < AXIS_TOLERANCE || dy < AXIS_TOLERANCE {
			result = append(result, curr)
			continue
		}
		if verticalFirst {
			result = append(result, NewPoint(prev.X, curr.Y))
		} else {
			result = append(result, NewPoint(curr.X, prev.Y))
		}
		result = append(result, curr)
	}
	return RemoveCollinear(result)
}

// ClipEndpointsToBoxes moves the ends of an orthogonal route onto the sides
// of the rectangular boxes they connect. Either box may be nil to leave that
// end alone. Two point routes are clipped along their dominant axis only.
func ClipEndpointsToBoxes(points Points, src, dst *Box) Points {
	if len(points) < 2 {
		return points.Copy()
	}
	result := points.Copy()
	if dst != nil {
		if len(points) == 2 {
			clipTwoPointEnd(result, *dst)
		} else {
			clipEnd(result, *dst)
		}
	}
	if src != nil {
		reversed := result.Reverse()
		if len(points) == 2 {
			clipTwoPointEnd(reversed, *src)
		} else {
			clipEnd(reversed, *src)
		}
		result = reversed.Reverse()
	}
	return result
}

func clipTwoPointEnd(route Points, b Box) {
	first, last := route[0], route[1]
	side := first.GetOrientation(last)
	if side == NONE {
		return
	}
	if side.IsVertical() {
		route[1] = NewPoint(last.X, sideY(b, side))
	} else {
		route[1] = NewPoint(sideX(b, side), last.Y)
	}
}

// clipEnd terminates the last segment of route on b. The penultimate point
// moves too when it would otherwise leave the final segment misaligned.
func clipEnd(route Points, b Box) {
	last := len(route) - 1
	prev, curr := route[last-1], route[last]
	dx := abs(curr.X - prev.X)
	dy := abs(curr.Y - prev.Y)
	center := b.Center()
	side := prev.GetOrientation(curr)

	switch {
	case dy < AXIS_TOLERANCE && dx >= AXIS_TOLERANCE:
		route[last] = NewPoint(sideX(b, side), center.Y)
		route[last-1] = NewPoint(prev.X, center.Y)
	case dx < AXIS_TOLERANCE && dy >= AXIS_TOLERANCE:
		route[last] = NewPoint(center.X, sideY(b, side))
		route[last-1] = NewPoint(center.X, prev.Y)
	case dy < dx:
		if prev.Y >= b.TopLeft.Y && prev.Y <= b.Bottom() {
			route[last] = NewPoint(sideX(b, side), prev.Y)
		} else {
			route[last] = NewPoint(sideX(b, side), center.Y)
			route[last-1] = NewPoint(prev.X, center.Y)
		}
	case dx < dy:
		if prev.X >= b.TopLeft.X && prev.X <= b.Right() {
			route[last] = NewPoint(prev.X, sideY(b, side))
		} else {
			route[last] = NewPoint(center.X, sideY(b, side))
			route[last-1] = NewPoint(center.X, prev.Y)
		}
	}
}

// sideX is the x of the box side a route arriving from o touches.
func sideX(b Box, o Orientation) float64 {
	if o == Left {
		return b.TopLeft.X
	}
	return b.Right()
}

func sideY(b Box, o Orientation) float64 {
	if o == Top {
		return b.TopLeft.Y
	}
	return b.Bottom()
}
