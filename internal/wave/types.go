package wave

import (
	"math"
	"time"
)

const (
	Rows = 15
	Cols = 20

	// ColorPeriod is the number of moves between palette advances.
	ColorPeriod = 20

	// Decay is subtracted from every cell on each tick.
	Decay = 0.1

	DefaultInterval = 100 * time.Millisecond
)

// RGB is an 8-bit color triple.
type RGB struct {
	R, G, B uint8
}

// Scale dims the color by an intensity in [0,1], flooring each channel.
func (c RGB) Scale(v float64) RGB {
	if v <= 0 {
		return RGB{}
	}
	if v >= 1 {
		return c
	}
	return RGB{
		R: uint8(math.Floor(float64(c.R) * v)),
		G: uint8(math.Floor(float64(c.G) * v)),
		B: uint8(math.Floor(float64(c.B) * v)),
	}
}

type Palette []RGB

// ColorNames labels the entries of DefaultPalette.
var ColorNames = []string{"green", "cyan", "blue", "magenta", "red", "yellow"}

func DefaultPalette() Palette {
	return Palette{
		{0, 255, 0},
		{0, 255, 255},
		{0, 0, 255},
		{255, 0, 255},
		{255, 0, 0},
		{255, 255, 0},
	}
}

// Schedule is what a driver needs to arm its periodic trigger.
type Schedule struct {
	Running  bool
	Interval time.Duration
}

// Snapshot is a copy of the simulator state taken between ticks.
type Snapshot struct {
	Grid       []float64
	Color      RGB
	ColorIndex int
	Position   int
	Direction  int
	Moves      int
	Running    bool
	Interval   time.Duration
	Ticks      uint64
	Generation uint64
}

// At returns the intensity of the cell at row r, column c.
func (s Snapshot) At(r, c int) float64 {
	return s.Grid[r*Cols+c]
}

// Brightness is the mean intensity over the whole grid.
func (s Snapshot) Brightness() float64 {
	if len(s.Grid) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.Grid {
		sum += v
	}
	return sum / float64(len(s.Grid))
}

// Observer is notified after every tick.
type Observer interface {
	OnTick(s Snapshot)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(s Snapshot)

func (f ObserverFunc) OnTick(s Snapshot) { f(s) }
