package viz

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/wavegrid/internal/config"
	"github.com/san-kum/wavegrid/internal/export"
	"github.com/san-kum/wavegrid/internal/wave"
)

const (
	historyCapacity = 120
	maxGIFFrames    = 600
)

// TickMsg carries the schedule generation it was armed under. A tick from
// an older generation belongs to a torn-down timer and is dropped.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

// Model is the Bubble Tea model for the interactive grid.
type Model struct {
	sim      *wave.Simulator
	cfg      *config.Config
	theme    Theme
	styles   styles
	history  []float64
	gif      *export.GIFRecorder
	showHelp bool
	status   string
	logger   *log.Logger
	copyText func(string) error
	width    int
	height   int
}

type Option func(*Model)

func WithLogger(l *log.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) { m.copyText = fn }
}

func NewModel(sim *wave.Simulator, cfg *config.Config, opts ...Option) Model {
	theme := GetTheme(cfg.Theme)
	m := Model{
		sim:      sim,
		cfg:      cfg,
		theme:    theme,
		styles:   newStyles(theme),
		history:  make([]float64, 0, historyCapacity),
		logger:   log.New(io.Discard, "", 0),
		copyText: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return m.schedule()
}

// schedule arms the next tick for the current generation, or nothing
// while paused.
func (m Model) schedule() tea.Cmd {
	if !m.sim.IsRunning() {
		return nil
	}
	gen := m.sim.Generation()
	return tea.Tick(m.sim.Interval(), func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case TickMsg:
		if msg.Gen != m.sim.Generation() || !m.sim.IsRunning() {
			m.logger.Printf("dropped stale tick gen=%d current=%d", msg.Gen, m.sim.Generation())
			return m, nil
		}
		m.step()
		return m, m.schedule()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	before := m.sim.Generation()

	switch msg.String() {
	case "q", "ctrl+c":
		if m.gif != nil {
			m.stopRecording()
		}
		return m, tea.Quit
	case " ":
		if m.sim.IsRunning() {
			m.sim.Pause()
		} else {
			m.sim.Play()
		}
	case "r":
		m.sim.Reset()
		m.status = "reset"
	case "left", "-", "h":
		m.nudgeSpeed(-1)
	case "right", "+", "=", "l":
		m.nudgeSpeed(1)
	case "s":
		if !m.sim.IsRunning() {
			m.step()
		}
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.styles = newStyles(m.theme)
		m.status = "theme " + m.theme.Name
	case "p":
		m.savePNG()
	case "g":
		if m.gif != nil {
			m.stopRecording()
		} else {
			m.gif = export.NewGIFRecorder(m.exportStyle(), m.sim.Palette(), maxGIFFrames)
			m.status = "recording"
		}
	case "y":
		if err := m.copyText(export.ASCII(m.sim.Snapshot())); err != nil {
			m.logger.Printf("clipboard: %v", err)
			m.status = "clipboard unavailable"
		} else {
			m.status = "frame copied"
		}
	case "?":
		m.showHelp = !m.showHelp
	}

	if m.sim.Generation() != before {
		m.logger.Printf("schedule gen=%d running=%v interval=%v", m.sim.Generation(), m.sim.IsRunning(), m.sim.Interval())
		return m, m.schedule()
	}
	return m, nil
}

func (m *Model) step() {
	m.sim.Tick()
	snap := m.sim.Snapshot()

	m.history = append(m.history, snap.Brightness())
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
	if m.gif != nil {
		m.gif.OnTick(snap)
	}
}

func (m *Model) nudgeSpeed(n int) {
	cur := int(m.sim.Interval().Milliseconds())
	next := m.cfg.Speed.Nudge(cur, n)
	if err := m.sim.SetSpeed(next); err != nil {
		m.logger.Printf("set speed %d: %v", next, err)
		m.status = err.Error()
	}
}

func (m Model) exportStyle() export.Style {
	st := export.DefaultStyle()
	st.CellSize = float64(m.cfg.Export.CellSize)
	st.Gap = float64(m.cfg.Export.CellGap)
	return st
}

func (m *Model) savePNG() {
	snap := m.sim.Snapshot()
	st := m.exportStyle()
	st.Caption = true
	path := filepath.Join(m.cfg.Export.Dir, fmt.Sprintf("wavegrid-%04d.png", snap.Ticks))
	if err := export.SavePNG(path, snap, st); err != nil {
		m.logger.Printf("save png: %v", err)
		m.status = "png failed: " + err.Error()
		return
	}
	m.status = "saved " + path
}

func (m *Model) stopRecording() {
	rec := m.gif
	m.gif = nil
	path := filepath.Join(m.cfg.Export.Dir, "wavegrid.gif")
	if err := rec.Save(path); err != nil {
		m.logger.Printf("save gif: %v", err)
		m.status = "gif failed: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("saved %s (%d frames)", path, rec.Len())
}

// View renders the grid beside the control panel.
func (m Model) View() string {
	st := m.styles
	snap := m.sim.Snapshot()

	gridView := st.frame.Render(RenderGrid(snap))
	left := st.title.Render("WAVE GRID") + "\n" + gridView

	var s strings.Builder
	if snap.Running {
		s.WriteString(st.running.Render("▶ RUNNING") + "\n\n")
	} else {
		s.WriteString(st.paused.Render("⏸ PAUSED") + "\n\n")
	}

	ms := int(snap.Interval.Milliseconds())
	sp := m.cfg.Speed
	s.WriteString(st.label.Render("Speed") + st.value.Render(fmt.Sprintf("%dms", ms)) + "\n")
	s.WriteString(st.accent.Render(Slider(ms, sp.MinMs, sp.MaxMs, 24)) + "\n")
	s.WriteString(st.label.Render(fmt.Sprintf("%d", sp.MinMs)) + strings.Repeat(" ", 6) + st.label.Render(fmt.Sprintf("%d", sp.MaxMs)) + "\n\n")

	s.WriteString(st.label.Render("Color") + Swatch(snap.Color, export.ColorName(snap.ColorIndex)) + "\n")
	arrow := "→"
	if snap.Direction < 0 {
		arrow = "←"
	}
	s.WriteString(st.label.Render("Front") + st.value.Render(fmt.Sprintf("%2d %s", snap.Position, arrow)) + "\n")
	s.WriteString(st.label.Render("Moves") + st.value.Render(fmt.Sprintf("%d/%d", snap.Moves, wave.ColorPeriod)) + "\n")
	s.WriteString(st.label.Render("Ticks") + st.value.Render(fmt.Sprintf("%d", snap.Ticks)) + "\n")
	s.WriteString(st.label.Render("Theme") + st.value.Render(m.theme.Name) + "\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("brightness"))
		s.WriteString("\n" + st.graph.Render(chart) + "\n")
	}

	if m.gif != nil {
		s.WriteString("\n" + st.alert.Render(fmt.Sprintf("● REC %d", m.gif.Len())) + "\n")
	}
	if m.status != "" {
		s.WriteString("\n" + st.value.Render(m.status) + "\n")
	}
	s.WriteString(st.help.Render("SP:Play/Pause R:Reset ←→:Speed\nS:Step T:Theme P:PNG G:GIF\nY:Copy ?:Help Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, left, st.panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Play/Pause               ║
║  R        - Clear grid and resume    ║
║  ←/-      - Faster (shorter ticks)   ║
║  →/+      - Slower (longer ticks)    ║
║  S        - Single step while paused ║
║  T        - Cycle themes             ║
║  P        - Save PNG snapshot        ║
║  G        - Toggle GIF recording     ║
║  Y        - Copy frame as text       ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// RunInteractive runs the TUI until the user quits.
func RunInteractive(sim *wave.Simulator, cfg *config.Config, opts ...Option) error {
	_, err := tea.NewProgram(NewModel(sim, cfg, opts...), tea.WithAltScreen()).Run()
	return err
}
