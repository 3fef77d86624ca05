package export

import (
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/san-kum/wavegrid/internal/wave"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

var (
	captionOnce sync.Once
	captionFont *truetype.Font
	captionErr  error
)

// Faces cache glyphs and are not safe to share, so each frame gets its own.
func captionFace() (font.Face, error) {
	captionOnce.Do(func() {
		captionFont, captionErr = truetype.Parse(gomono.TTF)
	})
	if captionErr != nil {
		return nil, fmt.Errorf("failed to parse font: %w", captionErr)
	}
	return truetype.NewFace(captionFont, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func paint(s wave.Snapshot, st Style) (*gg.Context, error) {
	w, h := st.Size()
	dc := gg.NewContext(w, h)
	bg := st.Background
	dc.SetRGB255(int(bg.R), int(bg.G), int(bg.B))
	dc.Clear()

	for r := 0; r < wave.Rows; r++ {
		for c := 0; c < wave.Cols; c++ {
			x, y := st.cellOrigin(r, c)
			col := CellColor(s, r, c)
			dc.SetRGB255(int(col.R), int(col.G), int(col.B))
			dc.DrawRoundedRectangle(x, y, st.CellSize, st.CellSize, st.Radius)
			dc.Fill()
		}
	}

	if st.Caption {
		face, err := captionFace()
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		dc.SetRGB255(int(s.Color.R), int(s.Color.G), int(s.Color.B))
		label := fmt.Sprintf("tick %d  front %d  %s", s.Ticks, s.Position, ColorName(s.ColorIndex))
		dc.DrawStringAnchored(label, float64(w)/2, float64(h)-captionHeight/2, 0.5, 0.5)
	}
	return dc, nil
}

// Render draws a frame to an image.
func Render(s wave.Snapshot, st Style) (image.Image, error) {
	dc, err := paint(s, st)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func SavePNG(path string, s wave.Snapshot, st Style) error {
	dc, err := paint(s, st)
	if err != nil {
		return err
	}
	return dc.SavePNG(path)
}

func EncodePNG(w io.Writer, s wave.Snapshot, st Style) error {
	dc, err := paint(s, st)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// ColorName labels a palette index of the default palette.
func ColorName(i int) string {
	if i >= 0 && i < len(wave.ColorNames) {
		return wave.ColorNames[i]
	}
	return fmt.Sprintf("color %d", i)
}
