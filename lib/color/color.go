// Package color normalizes user supplied CSS colors for outputs that only
// understand hex.
package color

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

const (
	Ink   = "#1e1e1e"
	White = "#ffffff"
)

// Normalize parses any CSS color (names, rgb(), hsl(), short hex) and returns
// it as #rrggbb, or #rrggbbaa when it is translucent.
func Normalize(colorString string) (string, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return "", err
	}
	return c.HexString(), nil
}

func Darken(colorString string) (string, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return "", err
	}
	h, s, l := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsl()
	// decrease luminance by 10%
	return colorful.Hsl(h, s, l-.1).Clamped().Hex(), nil
}

func Luminance(colorString string) (float64, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return 0, err
	}
	return 0.299*c.R + 0.587*c.G + 0.114*c.B, nil
}

// Contrast picks ink or white text for a label drawn over background.
func Contrast(background string) string {
	l, err := Luminance(background)
	if err != nil || l >= .55 {
		return Ink
	}
	return White
}
