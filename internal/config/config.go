package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/san-kum/wavegrid/internal/wave"
	"gopkg.in/yaml.v3"
)

const (
	DefaultIntervalMs = 100
	DefaultMinMs      = 50
	DefaultMaxMs      = 200
	DefaultStepMs     = 10
	DefaultTheme      = "retro"
	DefaultCellSize   = 18
	DefaultCellGap    = 4
	DefaultFrameRate  = 30
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	IntervalMs int          `yaml:"interval_ms"`
	Paused     bool         `yaml:"paused"`
	Theme      string       `yaml:"theme"`
	Speed      SpeedConfig  `yaml:"speed"`
	Export     ExportConfig `yaml:"export"`
	FrameRate  int          `yaml:"frame_rate"`
}

// SpeedConfig is the range offered by the speed control. The simulator
// itself accepts any positive interval.
type SpeedConfig struct {
	MinMs  int `yaml:"min_ms"`
	MaxMs  int `yaml:"max_ms"`
	StepMs int `yaml:"step_ms"`
}

type ExportConfig struct {
	Dir      string `yaml:"dir"`
	CellSize int    `yaml:"cell_size"`
	CellGap  int    `yaml:"cell_gap"`
}

func DefaultConfig() *Config {
	return &Config{
		IntervalMs: DefaultIntervalMs,
		Theme:      DefaultTheme,
		Speed: SpeedConfig{
			MinMs:  DefaultMinMs,
			MaxMs:  DefaultMaxMs,
			StepMs: DefaultStepMs,
		},
		Export: ExportConfig{
			Dir:      ".",
			CellSize: DefaultCellSize,
			CellGap:  DefaultCellGap,
		},
		FrameRate: DefaultFrameRate,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.IntervalMs <= 0 {
		return fmt.Errorf("%w: interval_ms must be positive, got %d", ErrInvalidConfig, c.IntervalMs)
	}
	s := c.Speed
	if s.MinMs <= 0 || s.MaxMs < s.MinMs || s.StepMs <= 0 {
		return fmt.Errorf("%w: speed range %d..%d step %d", ErrInvalidConfig, s.MinMs, s.MaxMs, s.StepMs)
	}
	if c.Export.CellSize <= 0 || c.Export.CellGap < 0 {
		return fmt.Errorf("%w: cell size %d gap %d", ErrInvalidConfig, c.Export.CellSize, c.Export.CellGap)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("%w: frame_rate must be positive, got %d", ErrInvalidConfig, c.FrameRate)
	}
	return nil
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// SimulatorOptions translates the config into simulator construction options.
func (c *Config) SimulatorOptions() []wave.Option {
	opts := []wave.Option{wave.WithInterval(c.Interval())}
	if c.Paused {
		opts = append(opts, wave.WithPaused())
	}
	return opts
}

// Clamp snaps ms onto the control's grid: min, min+step, ... up to max.
func (s SpeedConfig) Clamp(ms int) int {
	if ms <= s.MinMs {
		return s.MinMs
	}
	if ms >= s.MaxMs {
		return s.MaxMs
	}
	steps := (ms - s.MinMs + s.StepMs/2) / s.StepMs
	v := s.MinMs + steps*s.StepMs
	if v > s.MaxMs {
		v = s.MaxMs
	}
	return v
}

// Nudge moves ms by n steps and clamps the result.
func (s SpeedConfig) Nudge(ms, n int) int {
	return s.Clamp(s.Clamp(ms) + n*s.StepMs)
}
