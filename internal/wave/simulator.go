package wave

import (
	"fmt"
	"math"
	"time"
)

type Simulator struct {
	grid       []float64
	position   int
	direction  int
	palette    Palette
	colorIndex int
	moves      int
	running    bool
	interval   time.Duration
	ticks      uint64
	generation uint64
	observers  []Observer
}

// Option configures a Simulator at construction.
type Option func(*Simulator) error

// WithInterval sets the initial tick interval.
func WithInterval(d time.Duration) Option {
	return func(s *Simulator) error {
		if d <= 0 {
			return fmt.Errorf("%w, got %v", ErrInvalidInterval, d)
		}
		s.interval = d
		return nil
	}
}

// WithPaused starts the simulator paused.
func WithPaused() Option {
	return func(s *Simulator) error {
		s.running = false
		return nil
	}
}

// WithPalette replaces the default palette.
func WithPalette(p Palette) Option {
	return func(s *Simulator) error {
		if len(p) == 0 {
			return ErrEmptyPalette
		}
		s.palette = append(Palette(nil), p...)
		return nil
	}
}

// WithFront places the wave front at a column moving in direction dir.
func WithFront(position, dir int) Option {
	return func(s *Simulator) error {
		if position < 0 || position >= Cols || (dir != 1 && dir != -1) {
			return fmt.Errorf("%w: position=%d direction=%d", ErrInvalidFront, position, dir)
		}
		s.position, s.direction = position, dir
		return nil
	}
}

// New returns a running simulator with an all-zero grid, the front at
// column 0 moving right, and the default palette and interval.
func New(opts ...Option) (*Simulator, error) {
	s := &Simulator{
		grid:      make([]float64, Rows*Cols),
		direction: 1,
		palette:   DefaultPalette(),
		running:   true,
		interval:  DefaultInterval,
		observers: make([]Observer, 0),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Tick advances the animation by one step. Decay and paint happen at the
// current column; the bounce test then runs on the moved position.
func (s *Simulator) Tick() {
	for i, v := range s.grid {
		s.grid[i] = math.Max(0, v-Decay)
	}
	for r := 0; r < Rows; r++ {
		s.grid[r*Cols+s.position] = 1
	}

	s.position += s.direction
	if s.position >= Cols-1 || s.position <= 0 {
		s.direction = -s.direction
	}
	// Only reachable from a front placed on an edge facing outward.
	if s.position > Cols-1 {
		s.position = Cols - 1
	} else if s.position < 0 {
		s.position = 0
	}

	s.moves++
	if s.moves >= ColorPeriod {
		s.colorIndex = (s.colorIndex + 1) % len(s.palette)
		s.moves = 0
	}
	s.ticks++

	if len(s.observers) > 0 {
		snap := s.Snapshot()
		for _, o := range s.observers {
			o.OnTick(snap)
		}
	}
}

func (s *Simulator) Play() {
	if s.running {
		return
	}
	s.running = true
	s.generation++
}

func (s *Simulator) Pause() {
	if !s.running {
		return
	}
	s.running = false
	s.generation++
}

// Reset clears the grid and resumes playback. The front, color index and
// move counter are left as they are.
func (s *Simulator) Reset() {
	for i := range s.grid {
		s.grid[i] = 0
	}
	s.Play()
}

// SetInterval changes the tick interval. Setting the current interval
// again is a no-op.
func (s *Simulator) SetInterval(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w, got %v", ErrInvalidInterval, d)
	}
	if d == s.interval {
		return nil
	}
	s.interval = d
	s.generation++
	return nil
}

// SetSpeed sets the tick interval in milliseconds.
func (s *Simulator) SetSpeed(ms int) error {
	return s.SetInterval(time.Duration(ms) * time.Millisecond)
}

// Grid returns a copy of the intensities in row-major order.
func (s *Simulator) Grid() []float64 {
	g := make([]float64, len(s.grid))
	copy(g, s.grid)
	return g
}

func (s *Simulator) Color() RGB                 { return s.palette[s.colorIndex] }
func (s *Simulator) ColorIndex() int            { return s.colorIndex }
func (s *Simulator) Palette() Palette           { return append(Palette(nil), s.palette...) }
func (s *Simulator) Front() (position, dir int) { return s.position, s.direction }
func (s *Simulator) Moves() int                 { return s.moves }
func (s *Simulator) IsRunning() bool            { return s.running }
func (s *Simulator) Interval() time.Duration    { return s.interval }
func (s *Simulator) Ticks() uint64              { return s.ticks }

// Generation changes every time the schedule changes, that is when the
// running flag flips or the interval is set to a new value. A driver whose
// trigger was armed under an older generation must tear it down.
func (s *Simulator) Generation() uint64 { return s.generation }

func (s *Simulator) Schedule() Schedule {
	return Schedule{Running: s.running, Interval: s.interval}
}

func (s *Simulator) Snapshot() Snapshot {
	return Snapshot{
		Grid:       s.Grid(),
		Color:      s.Color(),
		ColorIndex: s.colorIndex,
		Position:   s.position,
		Direction:  s.direction,
		Moves:      s.moves,
		Running:    s.running,
		Interval:   s.interval,
		Ticks:      s.ticks,
		Generation: s.generation,
	}
}
