package geo

import (
	"fmt"
	"math"
)

type Box struct {
	TopLeft Point   `json:"topLeft"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

func NewBox(tl Point, width, height float64) Box {
	return Box{
		TopLeft: tl,
		Width:   width,
		Height:  height,
	}
}

// NewBoxFromCenter builds the box of the given size centered on c.
func NewBoxFromCenter(c Point, width, height float64) Box {
	return NewBox(NewPoint(c.X-width/2, c.Y-height/2), width, height)
}

func (b Box) Center() Point {
	return NewPoint(b.TopLeft.X+b.Width/2, b.TopLeft.Y+b.Height/2)
}

func (b Box) Right() float64 {
	return b.TopLeft.X + b.Width
}

func (b Box) Bottom() float64 {
	return b.TopLeft.Y + b.Height
}

func (b Box) Translate(dx, dy float64) Box {
	return NewBox(b.TopLeft.Translate(dx, dy), b.Width, b.Height)
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	minX := math.Min(b.TopLeft.X, o.TopLeft.X)
	minY := math.Min(b.TopLeft.Y, o.TopLeft.Y)
	maxX := math.Max(b.Right(), o.Right())
	maxY := math.Max(b.Bottom(), o.Bottom())
	return NewBox(NewPoint(minX, minY), maxX-minX, maxY-minY)
}

// Contains reports whether o lies inside b, borders included.
func (b Box) Contains(o Box) bool {
	return o.TopLeft.X >= b.TopLeft.X && o.TopLeft.Y >= b.TopLeft.Y &&
		o.Right() <= b.Right() && o.Bottom() <= b.Bottom()
}

func (b Box) ToString() string {
	return fmt.Sprintf("{TopLeft: %s, Width: %.0f, Height: %.0f}", b.TopLeft.ToString(), b.Width, b.Height)
}
