package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/wavegrid/internal/wave"
)

func ticked(t *testing.T, n int) (*wave.Simulator, wave.Snapshot) {
	t.Helper()
	s, err := wave.New()
	if err != nil {
		t.Fatalf("new simulator: %v", err)
	}
	for i := 0; i < n; i++ {
		s.Tick()
	}
	return s, s.Snapshot()
}

func TestShade(t *testing.T) {
	if Shade(0) != ' ' || Shade(-1) != ' ' {
		t.Error("expected blank for zero intensity")
	}
	if Shade(1) != '@' || Shade(2) != '@' {
		t.Error("expected full shade for intensity 1")
	}
	if Shade(0.5) == ' ' || Shade(0.5) == '@' {
		t.Errorf("expected mid shade, got %q", Shade(0.5))
	}
}

func TestASCII(t *testing.T) {
	_, snap := ticked(t, 3)
	out := ASCII(snap)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != wave.Rows {
		t.Fatalf("expected %d lines, got %d", wave.Rows, len(lines))
	}
	for i, l := range lines {
		if len(l) != wave.Cols*2 {
			t.Fatalf("line %d: expected width %d, got %d", i, wave.Cols*2, len(l))
		}
		if !strings.HasPrefix(l[4:], "@@") {
			t.Errorf("line %d: expected front at column 2: %q", i, l)
		}
	}
}

func TestStyleSize(t *testing.T) {
	st := DefaultStyle()
	w, h := st.Size()
	if w != 20*22+4 || h != 15*22+4 {
		t.Errorf("unexpected size %dx%d", w, h)
	}
	st.Caption = true
	_, h2 := st.Size()
	if h2 != h+captionHeight {
		t.Errorf("expected caption band, got height %d", h2)
	}
}

func TestHex(t *testing.T) {
	if got := Hex(wave.RGB{R: 255, G: 0, B: 255}); got != "#ff00ff" {
		t.Errorf("expected #ff00ff, got %s", got)
	}
	if got := Hex(wave.RGB{}); got != "#000000" {
		t.Errorf("expected #000000, got %s", got)
	}
}

func TestRenderPNG(t *testing.T) {
	_, snap := ticked(t, 1)
	st := DefaultStyle()
	st.Caption = true

	var buf bytes.Buffer
	if err := EncodePNG(&buf, snap, st); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	w, h := st.Size()
	if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}

	// Center of the painted cell at row 0, column 0 is full green.
	x, y := st.cellOrigin(0, 0)
	r, g, b, _ := img.At(int(x+st.CellSize/2), int(y+st.CellSize/2)).RGBA()
	if r>>8 != 0 || g>>8 != 255 || b>>8 != 0 {
		t.Errorf("expected green cell, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestSavePNG(t *testing.T) {
	_, snap := ticked(t, 5)
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := SavePNG(path, snap, DefaultStyle()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("png not created: %v", err)
	}
}

func TestGIFRecorder(t *testing.T) {
	s, err := wave.New()
	if err != nil {
		t.Fatal(err)
	}
	rec := NewGIFRecorder(DefaultStyle(), s.Palette(), 4)
	s.AddObserver(rec)
	for i := 0; i < 6; i++ {
		s.Tick()
	}
	if rec.Len() != 4 {
		t.Fatalf("expected 4 frames, got %d", rec.Len())
	}

	var buf bytes.Buffer
	if err := rec.Encode(&buf); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(anim.Image) != 4 {
		t.Errorf("expected 4 decoded frames, got %d", len(anim.Image))
	}
	if anim.Delay[0] != 10 {
		t.Errorf("expected 10cs delay at 100ms, got %d", anim.Delay[0])
	}
}

func TestGIFRecorderEmpty(t *testing.T) {
	rec := NewGIFRecorder(DefaultStyle(), wave.DefaultPalette(), 0)
	if err := rec.Encode(&bytes.Buffer{}); !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
}

func TestSVG(t *testing.T) {
	_, snap := ticked(t, 1)
	out := SVG(snap, DefaultStyle())

	if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(out, "</svg>") {
		t.Error("malformed svg document")
	}
	if n := strings.Count(out, "<rect x="); n != wave.Rows*wave.Cols {
		t.Errorf("expected %d cells, got %d", wave.Rows*wave.Cols, n)
	}
	if n := strings.Count(out, `fill="#00ff00"`); n != wave.Rows {
		t.Errorf("expected %d lit cells, got %d", wave.Rows, n)
	}
}

func TestRecordingJSON(t *testing.T) {
	s, err := wave.New()
	if err != nil {
		t.Fatal(err)
	}
	rec := NewRecording(s.Palette())
	s.AddObserver(rec)
	s.Tick()
	s.Tick()

	var buf bytes.Buffer
	if err := rec.WriteJSON(&buf); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var decoded Recording
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(decoded.Frames) != 2 || decoded.Frames[1].Position != 2 {
		t.Errorf("unexpected frames: %+v", decoded.Frames)
	}
	if decoded.Palette[0] != "#00ff00" {
		t.Errorf("expected green first, got %s", decoded.Palette[0])
	}
}

func TestRecordingCSV(t *testing.T) {
	s, err := wave.New()
	if err != nil {
		t.Fatal(err)
	}
	rec := NewRecording(s.Palette())
	s.AddObserver(rec)
	for i := 0; i < 3; i++ {
		s.Tick()
	}

	path := filepath.Join(t.TempDir(), "frames.csv")
	if err := rec.SaveCSV(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d", len(rows))
	}
	if len(rows[0]) != 6+wave.Rows*wave.Cols {
		t.Errorf("unexpected column count %d", len(rows[0]))
	}
	if rows[1][6] != "1.00" {
		t.Errorf("expected first cell lit, got %s", rows[1][6])
	}
}

func TestFrameDump(t *testing.T) {
	s, err := wave.New()
	if err != nil {
		t.Fatal(err)
	}
	dump := NewFrameDump()
	s.AddObserver(dump)
	for i := 0; i < 5; i++ {
		s.Tick()
	}

	dir := filepath.Join(t.TempDir(), "frames")
	if err := dump.Save(context.Background(), dir, DefaultStyle(), 2); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 5 {
		t.Errorf("expected 5 frames, got %d", len(entries))
	}
	if entries[0].Name() != "frame-00001.png" {
		t.Errorf("unexpected first frame %s", entries[0].Name())
	}

	if err := NewFrameDump().Save(context.Background(), dir, DefaultStyle(), 1); !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
}
