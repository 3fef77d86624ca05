package export

import (
	"math"
	"strings"

	"github.com/san-kum/wavegrid/internal/wave"
)

const ramp = " .:-=+*#%@"

// Shade maps an intensity in [0,1] onto a character ramp.
func Shade(v float64) byte {
	if v <= 0 {
		return ramp[0]
	}
	if v >= 1 {
		return ramp[len(ramp)-1]
	}
	return ramp[int(math.Round(v*float64(len(ramp)-1)))]
}

// ASCII renders a frame as text, two characters per cell.
func ASCII(s wave.Snapshot) string {
	var b strings.Builder
	b.Grow(wave.Rows * (wave.Cols*2 + 1))
	for r := 0; r < wave.Rows; r++ {
		for c := 0; c < wave.Cols; c++ {
			ch := Shade(s.At(r, c))
			b.WriteByte(ch)
			b.WriteByte(ch)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
