package metrics

import "github.com/san-kum/wavegrid/internal/wave"

// Bounces counts direction reversals of the wave front.
type Bounces struct {
	name    string
	lastDir int
	count   int
}

func NewBounces() *Bounces {
	return &Bounces{name: "bounces"}
}

func (b *Bounces) Name() string {
	return b.name
}

func (b *Bounces) OnTick(s wave.Snapshot) {
	if b.lastDir != 0 && s.Direction != b.lastDir {
		b.count++
	}
	b.lastDir = s.Direction
}

func (b *Bounces) Value() float64 {
	return float64(b.count)
}

func (b *Bounces) Reset() {
	b.lastDir = 0
	b.count = 0
}

// ColorCycles counts palette advances. The move counter is back at zero
// after a tick exactly when the palette advanced.
type ColorCycles struct {
	name    string
	changes int
}

func NewColorCycles() *ColorCycles {
	return &ColorCycles{name: "color_cycles"}
}

func (c *ColorCycles) Name() string {
	return c.name
}

func (c *ColorCycles) OnTick(s wave.Snapshot) {
	if s.Moves == 0 {
		c.changes++
	}
}

func (c *ColorCycles) Value() float64 {
	return float64(c.changes)
}

func (c *ColorCycles) Reset() {
	c.changes = 0
}
