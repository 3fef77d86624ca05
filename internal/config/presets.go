package config

import "sort"

var Presets = map[string]*Config{
	"default": {IntervalMs: 100, Theme: "retro"},
	"calm":    {IntervalMs: 200, Theme: "ocean"},
	"brisk":   {IntervalMs: 70, Theme: "cyberpunk"},
	"frantic": {IntervalMs: 50, Theme: "sunset"},
	"still":   {IntervalMs: 100, Paused: true, Theme: "minimal"},
}

// GetPreset returns a full config built from the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.IntervalMs = p.IntervalMs
	cfg.Paused = p.Paused
	cfg.Theme = p.Theme
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
