package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/wavegrid/internal/automation"
	"github.com/san-kum/wavegrid/internal/config"
	"github.com/san-kum/wavegrid/internal/driver"
	"github.com/san-kum/wavegrid/internal/export"
	"github.com/san-kum/wavegrid/internal/metrics"
	"github.com/san-kum/wavegrid/internal/tui"
	"github.com/san-kum/wavegrid/internal/viz"
	"github.com/san-kum/wavegrid/internal/wave"
	"github.com/spf13/cobra"
)

const debugLog = "wavegrid-debug.log"

var (
	configFile string
	preset     string
	intervalMs int
	paused     bool
	theme      string
	debug      bool
	// run
	ticks    int
	scenario string
	jsonOut  string
	csvOut   string
	pngOut   string
	gifOut   string
	svgOut   string
	framesTo string
	plot     bool
	// live
	liveDuration time.Duration
	frameRate    int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wavegrid",
		Short: "bouncing color wave on a 15x20 grid",
		RunE:  runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&intervalMs, "interval", config.DefaultIntervalMs, "tick interval in ms")
	pf.BoolVar(&paused, "paused", false, "start paused")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	pf.BoolVar(&debug, "debug", false, "write a debug log to "+debugLog)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless on a virtual clock",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&ticks, "ticks", 100, "number of ticks when no scenario is given")
	runCmd.Flags().StringVar(&scenario, "scenario", "", "scenario file (yaml)")
	runCmd.Flags().StringVar(&jsonOut, "json", "", "write every frame as JSON")
	runCmd.Flags().StringVar(&csvOut, "csv", "", "write every frame as CSV")
	runCmd.Flags().StringVar(&pngOut, "png", "", "save the final frame as PNG")
	runCmd.Flags().StringVar(&gifOut, "gif", "", "save the run as an animated GIF")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "save the final frame as SVG")
	runCmd.Flags().StringVar(&framesTo, "frames", "", "write every frame as a PNG into this directory")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot front position and brightness")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "render in real time to the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().DurationVar(&liveDuration, "duration", 10*time.Second, "how long to run (0 runs until interrupted)")
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tINTERVAL\tPAUSED\tTHEME")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%dms\t%v\t%s\n", name, p.IntervalMs, p.Paused, p.Theme)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "wavegrid.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	})

	rootCmd.AddCommand(runCmd, liveCmd, presetsCmd, configCmd)
	return rootCmd
}

// resolveConfig layers defaults, the preset, the config file and finally
// any flags set on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("interval") {
		cfg.IntervalMs = intervalMs
	}
	if flags.Changed("paused") {
		cfg.Paused = paused
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("fps") {
		cfg.FrameRate = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging(debug bool) (*log.Logger, func(), error) {
	if !debug {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := tea.LogToFile(debugLog, "wavegrid")
	if err != nil {
		return nil, nil, err
	}
	return log.New(f, "wavegrid ", log.LstdFlags|log.Lmicroseconds), func() { f.Close() }, nil
}

func newSimulator(cfg *config.Config) (*wave.Simulator, error) {
	sim, err := wave.New(cfg.SimulatorOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create simulator: %w", err)
	}
	return sim, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := setupLogging(debug)
	if err != nil {
		return err
	}
	defer closeLog()

	sim, err := newSimulator(cfg)
	if err != nil {
		return err
	}
	logger.Printf("starting tui interval=%dms paused=%v theme=%s", cfg.IntervalMs, cfg.Paused, cfg.Theme)
	return viz.RunInteractive(sim, cfg, viz.WithLogger(logger))
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := setupLogging(debug)
	if err != nil {
		return err
	}
	defer closeLog()

	sim, err := newSimulator(cfg)
	if err != nil {
		return err
	}

	set := metrics.Default()
	sim.AddObserver(set)

	var rec *export.Recording
	if jsonOut != "" || csvOut != "" {
		rec = export.NewRecording(sim.Palette())
		sim.AddObserver(rec)
	}

	st := export.DefaultStyle()
	st.CellSize = float64(cfg.Export.CellSize)
	st.Gap = float64(cfg.Export.CellGap)

	var anim *export.GIFRecorder
	if gifOut != "" {
		anim = export.NewGIFRecorder(st, sim.Palette(), 0)
		sim.AddObserver(anim)
	}

	var dump *export.FrameDump
	if framesTo != "" {
		dump = export.NewFrameDump()
		sim.AddObserver(dump)
	}

	var positions, brightness []float64
	if plot {
		sim.AddObserver(wave.ObserverFunc(func(s wave.Snapshot) {
			positions = append(positions, float64(s.Position))
			brightness = append(brightness, s.Brightness())
		}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if scenario != "" {
		sc, err := automation.LoadScenario(scenario)
		if err != nil {
			return err
		}
		logger.Printf("scenario %q duration=%dms steps=%d", sc.Name, sc.DurationMs, len(sc.Steps))
		fmt.Fprintf(cmd.OutOrStdout(), "running scenario %s...\n", scenarioName(sc, scenario))
		if err := automation.Run(ctx, sim, sc); err != nil {
			return err
		}
	} else {
		if ticks < 0 {
			return fmt.Errorf("ticks must not be negative, got %d", ticks)
		}
		if err := automation.Ticks(ctx, sim, ticks); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	snap := sim.Snapshot()
	fmt.Fprint(out, export.ASCII(snap))
	fmt.Fprintf(out, "\ncompleted in %v\n", elapsed)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "front:\t%d (dir %+d)\n", snap.Position, snap.Direction)
	fmt.Fprintf(w, "color:\t%s %s\n", export.ColorName(snap.ColorIndex), export.Hex(snap.Color))
	fmt.Fprintf(w, "running:\t%v @ %v\n", snap.Running, snap.Interval)
	values := set.Values()
	for _, name := range set.Names() {
		fmt.Fprintf(w, "%s:\t%.4f\n", name, values[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if plot && len(positions) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(positions,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("front position"),
		))
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(brightness,
			asciigraph.Height(6),
			asciigraph.Width(80),
			asciigraph.Caption("mean brightness"),
		))
	}

	if err := writeOutputs(out, logger, snap, st, values, rec, anim); err != nil {
		return err
	}
	if dump != nil {
		if err := dump.Save(ctx, framesTo, st, 0); err != nil {
			return fmt.Errorf("frame export: %w", err)
		}
		fmt.Fprintf(out, "wrote %d frames to %s\n", dump.Len(), framesTo)
	}
	return nil
}

func scenarioName(sc *automation.Scenario, path string) string {
	if sc.Name != "" {
		return sc.Name
	}
	return path
}

func writeOutputs(out io.Writer, logger *log.Logger, snap wave.Snapshot, st export.Style, values map[string]float64, rec *export.Recording, anim *export.GIFRecorder) error {
	saved := func(path string) {
		logger.Printf("wrote %s", path)
		fmt.Fprintf(out, "wrote %s\n", path)
	}

	if jsonOut != "" {
		rec.Metrics = values
		if err := rec.SaveJSON(jsonOut); err != nil {
			return fmt.Errorf("json export: %w", err)
		}
		saved(jsonOut)
	}
	if csvOut != "" {
		if err := rec.SaveCSV(csvOut); err != nil {
			return fmt.Errorf("csv export: %w", err)
		}
		saved(csvOut)
	}
	if pngOut != "" {
		pst := st
		pst.Caption = true
		if err := export.SavePNG(pngOut, snap, pst); err != nil {
			return fmt.Errorf("png export: %w", err)
		}
		saved(pngOut)
	}
	if gifOut != "" {
		if err := anim.Save(gifOut); err != nil {
			return fmt.Errorf("gif export: %w", err)
		}
		saved(gifOut)
	}
	if svgOut != "" {
		if err := os.WriteFile(svgOut, []byte(export.SVG(snap, st)), 0644); err != nil {
			return fmt.Errorf("svg export: %w", err)
		}
		saved(svgOut)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := setupLogging(debug)
	if err != nil {
		return err
	}
	defer closeLog()

	sim, err := newSimulator(cfg)
	if err != nil {
		return err
	}

	renderer := tui.NewLiveRenderer(cmd.OutOrStdout(), cfg.FrameRate)
	sim.AddObserver(renderer)
	renderer.Render(sim.Snapshot())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if liveDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, liveDuration)
		defer cancel()
	}

	renderer.Start()
	defer renderer.Stop()

	d := driver.New(sim, driver.WithLogger(logger))
	err = d.Run(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
