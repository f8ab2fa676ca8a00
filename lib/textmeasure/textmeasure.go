// Package textmeasure estimates rendered text extents without loading fonts.
// Widths are a fixed fraction of the font size per display cell, the fraction
// growing with the font weight.
package textmeasure

import (
	"github.com/mattn/go-runewidth"
)

const (
	FONT_SIZE_NODE_LABEL   = 13
	FONT_SIZE_EDGE_LABEL   = 11
	FONT_SIZE_GROUP_HEADER = 12

	FONT_WEIGHT_REGULAR  = 400
	FONT_WEIGHT_MEDIUM   = 500
	FONT_WEIGHT_SEMIBOLD = 600
)

const DEFAULT_FONT_FAMILY = "Inter"

type Font struct {
	Family string
	Size   int
	Weight int
}

var (
	NodeLabelFont   = Font{Family: DEFAULT_FONT_FAMILY, Size: FONT_SIZE_NODE_LABEL, Weight: FONT_WEIGHT_MEDIUM}
	EdgeLabelFont   = Font{Family: DEFAULT_FONT_FAMILY, Size: FONT_SIZE_EDGE_LABEL, Weight: FONT_WEIGHT_REGULAR}
	GroupHeaderFont = Font{Family: DEFAULT_FONT_FAMILY, Size: FONT_SIZE_GROUP_HEADER, Weight: FONT_WEIGHT_SEMIBOLD}
)

// WidthRatio is the average glyph advance as a fraction of the font size.
func WidthRatio(weight int) float64 {
	switch {
	case weight >= FONT_WEIGHT_SEMIBOLD:
		return 0.58
	case weight >= FONT_WEIGHT_MEDIUM:
		return 0.55
	default:
		return 0.52
	}
}

// Cells counts display cells. East Asian wide runes take two.
func Cells(text string) int {
	return runewidth.StringWidth(text)
}

// Width is the estimated single line width of text in f.
func (f Font) Width(text string) float64 {
	return float64(Cells(text)) * float64(f.Size) * WidthRatio(f.Weight)
}
