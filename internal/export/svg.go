package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/wavegrid/internal/wave"
)

// SVG renders a frame as a standalone SVG document.
func SVG(s wave.Snapshot, st Style) string {
	w, h := st.Size()

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g>
`, w, h, w, h, Hex(st.Background)))

	for r := 0; r < wave.Rows; r++ {
		for c := 0; c < wave.Cols; c++ {
			x, y := st.cellOrigin(r, c)
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s"/>
`, x, y, st.CellSize, st.CellSize, st.Radius, Hex(CellColor(s, r, c))))
		}
	}

	if st.Caption {
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" fill="%s" font-family="monospace" font-size="12" text-anchor="middle">tick %d  front %d  %s</text>
`, w/2, h-captionHeight/2+4, Hex(s.Color), s.Ticks, s.Position, ColorName(s.ColorIndex)))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
