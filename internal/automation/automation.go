package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/san-kum/wavegrid/internal/wave"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownCommand = errors.New("automation: unknown command")
	ErrInvalidStep    = errors.New("automation: invalid step")
)

const (
	CmdPlay  = "play"
	CmdPause = "pause"
	CmdReset = "reset"
	CmdSpeed = "speed"
)

// Scenario defines a scripted sequence of control commands on a virtual clock
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	DurationMs  int    `yaml:"duration_ms"`
	Steps       []Step `yaml:"steps"`
}

// Step is a single command fired at a point in virtual time
type Step struct {
	AtMs       int    `yaml:"at_ms"`
	Command    string `yaml:"command"`
	IntervalMs int    `yaml:"interval_ms,omitempty"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if s.DurationMs <= 0 {
		return fmt.Errorf("%w: duration_ms must be positive, got %d", ErrInvalidStep, s.DurationMs)
	}
	for i, step := range s.Steps {
		if step.AtMs < 0 {
			return fmt.Errorf("%w: step %d at negative time %d", ErrInvalidStep, i+1, step.AtMs)
		}
		switch step.Command {
		case CmdPlay, CmdPause, CmdReset:
		case CmdSpeed:
			if step.IntervalMs <= 0 {
				return fmt.Errorf("%w: step %d speed needs a positive interval_ms", ErrInvalidStep, i+1)
			}
		default:
			return fmt.Errorf("%w: step %d %q", ErrUnknownCommand, i+1, step.Command)
		}
	}
	return nil
}

// Apply executes one command against the simulator.
func Apply(sim *wave.Simulator, step Step) error {
	switch step.Command {
	case CmdPlay:
		sim.Play()
	case CmdPause:
		sim.Pause()
	case CmdReset:
		sim.Reset()
	case CmdSpeed:
		return sim.SetSpeed(step.IntervalMs)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, step.Command)
	}
	return nil
}

// Run plays a scenario on a virtual clock. While running, ticks fall every
// interval after the moment the schedule was last armed; a command that
// changes the schedule re-arms it at the command's time. Commands win ties
// with ticks. Events after DurationMs are not executed.
func Run(ctx context.Context, sim *wave.Simulator, scenario *Scenario) error {
	if err := scenario.Validate(); err != nil {
		return err
	}

	steps := make([]Step, len(scenario.Steps))
	copy(steps, scenario.Steps)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].AtMs < steps[j].AtMs })

	end := time.Duration(scenario.DurationMs) * time.Millisecond
	gen := sim.Generation()
	nextTick := sim.Interval()

	for i := 0; ; {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		stepAt := time.Duration(-1)
		if i < len(steps) {
			stepAt = time.Duration(steps[i].AtMs) * time.Millisecond
		}
		ticking := sim.IsRunning()

		switch {
		case stepAt >= 0 && stepAt <= end && (!ticking || stepAt <= nextTick):
			if err := Apply(sim, steps[i]); err != nil {
				return fmt.Errorf("step %d at %dms: %w", i+1, steps[i].AtMs, err)
			}
			i++
			if g := sim.Generation(); g != gen {
				gen = g
				nextTick = stepAt + sim.Interval()
			}
		case ticking && nextTick <= end:
			sim.Tick()
			nextTick += sim.Interval()
		default:
			return nil
		}
	}
}

// Ticks advances the simulator n times back to back.
func Ticks(ctx context.Context, sim *wave.Simulator, n int) error {
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		sim.Tick()
	}
	return nil
}
