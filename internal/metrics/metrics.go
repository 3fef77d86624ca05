package metrics

import (
	"sort"

	"github.com/san-kum/wavegrid/internal/wave"
)

// Metric summarizes a run by observing every tick.
type Metric interface {
	wave.Observer
	Name() string
	Value() float64
	Reset()
}

// Set fans ticks out to several metrics.
type Set struct {
	metrics []Metric
}

func NewSet(ms ...Metric) *Set {
	return &Set{metrics: ms}
}

// Default returns the metrics reported by a headless run.
func Default() *Set {
	return NewSet(NewTickCount(), NewBrightness(), NewBounces(), NewColorCycles())
}

func (s *Set) Add(m Metric) { s.metrics = append(s.metrics, m) }

func (s *Set) OnTick(snap wave.Snapshot) {
	for _, m := range s.metrics {
		m.OnTick(snap)
	}
}

func (s *Set) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
}

func (s *Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Names returns metric names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.metrics))
	for _, m := range s.metrics {
		names = append(names, m.Name())
	}
	sort.Strings(names)
	return names
}
