package geo

// Orientation names the side of a box a route arrives on. Only the four
// axis-aligned sides exist since routes are orthogonal.
type Orientation int

const (
	Top Orientation = iota
	Right
	Bottom
	Left

	NONE
)

var orientationNames = [...]string{"Top", "Right", "Bottom", "Left"}

func (o Orientation) String() string {
	if o < Top || o >= NONE {
		return "none"
	}
	return orientationNames[o]
}

func (o Orientation) IsVertical() bool {
	return o == Top || o == Bottom
}
