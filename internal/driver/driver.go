// Package driver runs a wave simulator against a real periodic trigger.
//
// The simulator is confined to the goroutine executing [Driver.Run]. Commands
// issued from other goroutines are sent to that loop and applied between
// ticks. Whenever a command changes the simulator's schedule, the loop stops
// the current ticker before arming a new one, so two triggers never overlap.
package driver

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/san-kum/wavegrid/internal/wave"
)

// ErrNotRunning is returned by commands issued while no Run loop is active.
var ErrNotRunning = errors.New("driver: not running")

// Ticker is the periodic trigger armed by the loop.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory arms a new ticker with the given interval.
type TickerFactory func(d time.Duration) Ticker

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker wraps time.NewTicker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{time.NewTicker(d)}
}

type request struct {
	apply func(s *wave.Simulator) error
	done  chan error
}

type Driver struct {
	sim       *wave.Simulator
	newTicker TickerFactory
	logger    *log.Logger
	requests  chan request
	stopped   chan struct{}
}

type Option func(*Driver)

func WithTickerFactory(f TickerFactory) Option {
	return func(d *Driver) { d.newTicker = f }
}

func WithLogger(l *log.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

func New(sim *wave.Simulator, opts ...Option) *Driver {
	d := &Driver{
		sim:       sim,
		newTicker: NewTimeTicker,
		logger:    log.New(io.Discard, "", 0),
		requests:  make(chan request),
		stopped:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run drives the simulator until ctx is done. It must be called once.
func (d *Driver) Run(ctx context.Context) error {
	defer close(d.stopped)

	var (
		ticker Ticker
		tickC  <-chan time.Time
		armed  = d.sim.Generation() + 1
	)
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	for {
		if gen := d.sim.Generation(); gen != armed {
			if ticker != nil {
				ticker.Stop()
				ticker, tickC = nil, nil
			}
			sched := d.sim.Schedule()
			if sched.Running {
				ticker = d.newTicker(sched.Interval)
				tickC = ticker.C()
			}
			armed = gen
			d.logger.Printf("schedule gen=%d running=%v interval=%v", gen, sched.Running, sched.Interval)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-d.requests:
			req.done <- req.apply(d.sim)
		case <-tickC:
			d.sim.Tick()
		}
	}
}

func (d *Driver) do(ctx context.Context, fn func(s *wave.Simulator) error) error {
	req := request{apply: fn, done: make(chan error, 1)}
	select {
	case d.requests <- req:
	case <-d.stopped:
		return ErrNotRunning
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-req.done
}

func (d *Driver) Play(ctx context.Context) error {
	return d.do(ctx, func(s *wave.Simulator) error { s.Play(); return nil })
}

func (d *Driver) Pause(ctx context.Context) error {
	return d.do(ctx, func(s *wave.Simulator) error { s.Pause(); return nil })
}

func (d *Driver) Reset(ctx context.Context) error {
	return d.do(ctx, func(s *wave.Simulator) error { s.Reset(); return nil })
}

// SetSpeed changes the tick interval in milliseconds.
func (d *Driver) SetSpeed(ctx context.Context, ms int) error {
	return d.do(ctx, func(s *wave.Simulator) error { return s.SetSpeed(ms) })
}

// Snapshot copies the simulator state between ticks.
func (d *Driver) Snapshot(ctx context.Context) (wave.Snapshot, error) {
	var snap wave.Snapshot
	err := d.do(ctx, func(s *wave.Simulator) error {
		snap = s.Snapshot()
		return nil
	})
	return snap, err
}
