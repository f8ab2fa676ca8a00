package geo

import (
	"fmt"
	"strings"
)

// Point is a value. Routes hand out copies so that mutating one polyline never
// shifts another one sharing a waypoint.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Equals(p2 Point) bool {
	return p.X == p2.X && p.Y == p2.Y
}

// Translate returns p moved by dx, dy.
func (p Point) Translate(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

func (p Point) DistanceTo(p2 Point) float64 {
	return EuclideanDistance(p.X, p.Y, p2.X, p2.Y)
}

// GetOrientation gets orientation of pFrom to pTo along the dominant axis.
// E.g. pFrom ---> pTo, here, pFrom is to the left of pTo, so Left would be returned
func (pFrom Point) GetOrientation(pTo Point) Orientation {
	dx := pTo.X - pFrom.X
	dy := pTo.Y - pFrom.Y
	switch {
	case dx == 0 && dy == 0:
		return NONE
	case abs(dx) > abs(dy):
		if dx > 0 {
			return Left
		}
		return Right
	default:
		if dy > 0 {
			return Top
		}
		return Bottom
	}
}

func (p Point) ToString() string {
	return fmt.Sprintf("(%v, %v)", p.X, p.Y)
}

type Points []Point

func (ps Points) Copy() Points {
	if ps == nil {
		return nil
	}
	out := make(Points, len(ps))
	copy(out, ps)
	return out
}

func (ps Points) Equals(other Points) bool {
	if len(ps) != len(other) {
		return false
	}
	for i := range ps {
		if !ps[i].Equals(other[i]) {
			return false
		}
	}
	return true
}

func (ps Points) Translate(dx, dy float64) Points {
	if ps == nil {
		return nil
	}
	out := make(Points, len(ps))
	for i, p := range ps {
		out[i] = p.Translate(dx, dy)
	}
	return out
}

func (ps Points) Reverse() Points {
	if ps == nil {
		return nil
	}
	out := make(Points, len(ps))
	for i, p := range ps {
		out[len(ps)-1-i] = p
	}
	return out
}

func (points Points) ToString() string {
	strs := make([]string, 0, len(points))
	for _, p := range points {
		strs = append(strs, p.ToString())
	}
	return strings.Join(strs, ", ")
}
