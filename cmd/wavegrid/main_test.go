package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/wavegrid/internal/config"
	"github.com/spf13/cobra"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRunHeadless(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "frames.json")
	pngPath := filepath.Join(dir, "last.png")

	out, err := execute(t, "run", "--ticks", "25", "--json", jsonPath, "--png", pngPath, "--plot")
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "ticks:") || !strings.Contains(out, "cyan") {
		t.Errorf("expected summary with cyan color after 25 ticks:\n%s", out)
	}
	if !strings.Contains(out, "front position") {
		t.Error("expected position plot")
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var rec struct {
		Frames []json.RawMessage `json:"frames"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(rec.Frames) != 25 {
		t.Errorf("expected 25 frames, got %d", len(rec.Frames))
	}
	if _, err := os.Stat(pngPath); err != nil {
		t.Errorf("expected png: %v", err)
	}
}

func TestRunScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pause.yaml")
	data := "name: pause-demo\nduration_ms: 1000\nsteps:\n  - at_ms: 450\n    command: pause\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "run", "--scenario", path)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, "running scenario pause-demo") {
		t.Errorf("expected scenario name in output:\n%s", out)
	}
	if !strings.Contains(out, "false @ 100ms") {
		t.Errorf("expected paused at the end:\n%s", out)
	}
}

func TestResolveConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	cfg := config.DefaultConfig()
	cfg.IntervalMs = 150
	cfg.Theme = "ocean"
	if err := config.Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	root := newRootCmd()
	root.SetArgs([]string{"run", "--config", path, "--interval", "80"})
	run, _, err := root.Find([]string{"run"})
	if err != nil {
		t.Fatal(err)
	}
	run.RunE = func(cmd *cobra.Command, args []string) error {
		got, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		if got.IntervalMs != 80 {
			t.Errorf("expected flag to win, got %d", got.IntervalMs)
		}
		if got.Theme != "ocean" {
			t.Errorf("expected theme from file, got %s", got.Theme)
		}
		return nil
	}
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
}

func TestUnknownPreset(t *testing.T) {
	if _, err := execute(t, "run", "--preset", "nope", "--ticks", "1"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range config.ListPresets() {
		if !strings.Contains(out, name) {
			t.Errorf("missing preset %s", name)
		}
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wavegrid.yaml")
	if _, err := execute(t, "config", "init", path); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.IntervalMs != config.DefaultIntervalMs {
		t.Errorf("unexpected interval %d", cfg.IntervalMs)
	}

	if _, err := execute(t, "config", "init", path); err == nil {
		t.Error("expected refusal to overwrite")
	}
}

func TestLiveStopsAfterDuration(t *testing.T) {
	start := time.Now()
	out, err := execute(t, "live", "--duration", "250ms", "--interval", "50")
	if err != nil {
		t.Fatalf("live failed: %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("live did not stop")
	}
	if !strings.Contains(out, "wavegrid  tick=") {
		t.Error("expected at least one rendered frame")
	}
}
