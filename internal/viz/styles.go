package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	frame   lipgloss.Style
	panel   lipgloss.Style
	title   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	running lipgloss.Style
	paused  lipgloss.Style
	alert   lipgloss.Style
	graph   lipgloss.Style
	help    lipgloss.Style
	accent  lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(0, 2).
			Width(40),
		title:   lipgloss.NewStyle().Foreground(t.Title).Bold(true).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(11),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		running: lipgloss.NewStyle().Foreground(t.Running).Bold(true),
		paused:  lipgloss.NewStyle().Foreground(t.Paused).Bold(true),
		alert:   lipgloss.NewStyle().Foreground(t.Alert),
		graph:   lipgloss.NewStyle().Foreground(t.Accent),
		help:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
		accent:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
	}
}

// Slider renders a horizontal track with a knob at value's position in
// [min,max].
func Slider(value, min, max, width int) string {
	if width < 2 {
		width = 2
	}
	pos := 0
	if max > min {
		pos = (value - min) * (width - 1) / (max - min)
	}
	if pos < 0 {
		pos = 0
	}
	if pos > width-1 {
		pos = width - 1
	}
	return "[" + strings.Repeat("═", pos) + "●" + strings.Repeat("─", width-1-pos) + "]"
}
