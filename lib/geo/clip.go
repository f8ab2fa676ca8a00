package geo

import "math"

// CENTER_TOLERANCE is the distance from a shape's center under which a point is
// left alone by the clipping helpers; there is no direction to project along.
const CENTER_TOLERANCE = 0.5

// ClipToDiamond projects p from the center of b onto the rhombus inscribed in b.
func ClipToDiamond(p Point, b Box) Point {
	c := b.Center()
	hw := b.Width / 2
	hh := b.Height / 2
	dx := p.X - c.X
	dy := p.Y - c.Y
	if abs(dx) < CENTER_TOLERANCE && abs(dy) < CENTER_TOLERANCE {
		return p
	}
	if hw <= 0 || hh <= 0 {
		return c
	}
	scale := 1 / (abs(dx)/hw + abs(dy)/hh)
	return NewPoint(c.X+scale*dx, c.Y+scale*dy)
}

// ClipToCircle projects p radially onto the circle of radius r around c.
func ClipToCircle(p, c Point, r float64) Point {
	dx := p.X - c.X
	dy := p.Y - c.Y
	dist := math.Hypot(dx, dy)
	if dist < CENTER_TOLERANCE {
		return p
	}
	scale := r / dist
	return NewPoint(c.X+scale*dx, c.Y+scale*dy)
}
