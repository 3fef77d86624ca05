// Package tui streams the wave grid to a plain ANSI terminal without taking
// over the screen's input.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/wavegrid/internal/export"
	"github.com/san-kum/wavegrid/internal/wave"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
	resetColor  = "\033[0m"
	cell        = "██"
)

// LiveRenderer redraws the grid on every tick, at most frameRate times a
// second.
type LiveRenderer struct {
	out       io.Writer
	frameRate int
	lastFrame time.Time
	now       func() time.Time
	frames    int
}

func NewLiveRenderer(w io.Writer, frameRate int) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{
		out:       w,
		frameRate: frameRate,
		now:       time.Now,
	}
}

func (r *LiveRenderer) OnTick(s wave.Snapshot) {
	now := r.now()
	if !r.lastFrame.IsZero() && now.Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = now
	r.Render(s)
}

// Render draws one frame unconditionally.
func (r *LiveRenderer) Render(s wave.Snapshot) {
	var b strings.Builder
	b.WriteString(clearScreen)
	state := "running"
	if !s.Running {
		state = "paused"
	}
	fmt.Fprintf(&b, "  wavegrid  tick=%d  %s  %dms\n", s.Ticks, state, s.Interval.Milliseconds())
	b.WriteString("  " + strings.Repeat("-", wave.Cols*2) + "\n")

	for row := 0; row < wave.Rows; row++ {
		b.WriteString("  ")
		for col := 0; col < wave.Cols; col++ {
			c := export.CellColor(s, row, col)
			fmt.Fprintf(&b, "\033[38;2;%d;%d;%dm%s", c.R, c.G, c.B, cell)
		}
		b.WriteString(resetColor + "\n")
	}

	b.WriteString("  " + strings.Repeat("-", wave.Cols*2) + "\n")
	dir := "->"
	if s.Direction < 0 {
		dir = "<-"
	}
	fmt.Fprintf(&b, "  front=%d %s  color=%s  moves=%d/%d\n",
		s.Position, dir, export.ColorName(s.ColorIndex), s.Moves, wave.ColorPeriod)

	io.WriteString(r.out, b.String())
	r.frames++
}

// Frames reports how many frames have been drawn.
func (r *LiveRenderer) Frames() int { return r.frames }

func (r *LiveRenderer) Start() { io.WriteString(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { io.WriteString(r.out, showCursor+resetColor) }
