// Package export writes wave grid frames to images, text and recordings.
package export

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/wavegrid/internal/wave"
)

// Style controls the geometry of rendered frames.
type Style struct {
	CellSize   float64
	Gap        float64
	Radius     float64
	Background wave.RGB
	Caption    bool
}

func DefaultStyle() Style {
	return Style{
		CellSize:   18,
		Gap:        4,
		Radius:     3,
		Background: wave.RGB{R: 17, G: 24, B: 39},
	}
}

const captionHeight = 24

// Size returns the pixel dimensions of a frame.
func (s Style) Size() (w, h int) {
	w = int(float64(wave.Cols)*(s.CellSize+s.Gap) + s.Gap)
	h = int(float64(wave.Rows)*(s.CellSize+s.Gap) + s.Gap)
	if s.Caption {
		h += captionHeight
	}
	return w, h
}

func (s Style) cellOrigin(r, c int) (x, y float64) {
	return s.Gap + float64(c)*(s.CellSize+s.Gap), s.Gap + float64(r)*(s.CellSize+s.Gap)
}

// Colorful converts an RGB triple for color math and hex formatting.
func Colorful(c wave.RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Hex formats a color as #rrggbb.
func Hex(c wave.RGB) string {
	return Colorful(c).Hex()
}

// CellColor is the color a cell is painted with: the active color dimmed by
// the cell's intensity.
func CellColor(s wave.Snapshot, r, c int) wave.RGB {
	return s.Color.Scale(s.At(r, c))
}
