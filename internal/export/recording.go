package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/wavegrid/internal/wave"
)

type Frame struct {
	Tick       uint64    `json:"tick"`
	Position   int       `json:"position"`
	Direction  int       `json:"direction"`
	ColorIndex int       `json:"color_index"`
	Color      string    `json:"color"`
	IntervalMs int64     `json:"interval_ms"`
	Running    bool      `json:"running"`
	Grid       []float64 `json:"grid"`
}

// Recording collects one frame per tick. It implements wave.Observer.
type Recording struct {
	Rows    int                `json:"rows"`
	Cols    int                `json:"cols"`
	Palette []string           `json:"palette"`
	Frames  []Frame            `json:"frames"`
	Metrics map[string]float64 `json:"metrics,omitempty"`
}

func NewRecording(pal wave.Palette) *Recording {
	hex := make([]string, len(pal))
	for i, c := range pal {
		hex[i] = Hex(c)
	}
	return &Recording{
		Rows:    wave.Rows,
		Cols:    wave.Cols,
		Palette: hex,
		Frames:  make([]Frame, 0),
	}
}

func (r *Recording) OnTick(s wave.Snapshot) {
	r.Frames = append(r.Frames, Frame{
		Tick:       s.Ticks,
		Position:   s.Position,
		Direction:  s.Direction,
		ColorIndex: s.ColorIndex,
		Color:      Hex(s.Color),
		IntervalMs: s.Interval.Milliseconds(),
		Running:    s.Running,
		Grid:       s.Grid,
	})
}

func (r *Recording) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteCSV writes one row per frame: the front and color, then every cell
// in row-major order.
func (r *Recording) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{"tick", "position", "direction", "color_index", "color", "interval_ms"}
	for row := 0; row < r.Rows; row++ {
		for col := 0; col < r.Cols; col++ {
			header = append(header, fmt.Sprintf("r%dc%d", row, col))
		}
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, f := range r.Frames {
		rec := make([]string, 0, len(header))
		rec = append(rec,
			strconv.FormatUint(f.Tick, 10),
			strconv.Itoa(f.Position),
			strconv.Itoa(f.Direction),
			strconv.Itoa(f.ColorIndex),
			f.Color,
			strconv.FormatInt(f.IntervalMs, 10),
		)
		for _, v := range f.Grid {
			rec = append(rec, strconv.FormatFloat(v, 'f', 2, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func (r *Recording) SaveJSON(path string) error {
	return saveWith(path, r.WriteJSON)
}

func (r *Recording) SaveCSV(path string) error {
	return saveWith(path, r.WriteCSV)
}

func saveWith(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
