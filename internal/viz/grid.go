package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/wavegrid/internal/export"
	"github.com/san-kum/wavegrid/internal/wave"
)

const cellGlyph = "██"

// RenderGrid paints every cell in the active color scaled by its intensity.
func RenderGrid(s wave.Snapshot) string {
	cells := make(map[wave.RGB]string)
	var b strings.Builder
	for r := 0; r < wave.Rows; r++ {
		for c := 0; c < wave.Cols; c++ {
			col := export.CellColor(s, r, c)
			cell, ok := cells[col]
			if !ok {
				cell = lipgloss.NewStyle().Foreground(lipgloss.Color(export.Hex(col))).Render(cellGlyph)
				cells[col] = cell
			}
			b.WriteString(cell)
		}
		if r < wave.Rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Swatch renders a sample of a color followed by its name.
func Swatch(c wave.RGB, name string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(export.Hex(c))).Render(cellGlyph) + " " + name
}
