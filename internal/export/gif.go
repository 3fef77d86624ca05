package export

import (
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	stddraw "image/draw"
	"image/gif"
	"io"
	"os"
	"time"

	"github.com/san-kum/wavegrid/internal/wave"
)

var ErrNoFrames = errors.New("export: no frames recorded")

const shadeLevels = 10

// GIFRecorder collects frames for an animated GIF. It implements
// wave.Observer so it can be attached to a simulator directly.
type GIFRecorder struct {
	style     Style
	palette   color.Palette
	maxFrames int
	anim      gif.GIF
	err       error
}

// NewGIFRecorder keeps at most maxFrames frames; zero means unlimited.
func NewGIFRecorder(st Style, pal wave.Palette, maxFrames int) *GIFRecorder {
	return &GIFRecorder{
		style:     st,
		palette:   gifPalette(st, pal),
		maxFrames: maxFrames,
	}
}

// gifPalette holds every color a cell can take at tenth-step intensities,
// plus the background.
func gifPalette(st Style, pal wave.Palette) color.Palette {
	bg := st.Background
	p := color.Palette{color.RGBA{bg.R, bg.G, bg.B, 255}}
	for _, c := range pal {
		for k := 0; k <= shadeLevels; k++ {
			s := c.Scale(float64(k) / shadeLevels)
			p = append(p, color.RGBA{s.R, s.G, s.B, 255})
		}
	}
	if len(p) > 256 {
		return palette.Plan9
	}
	return p
}

func (g *GIFRecorder) OnTick(s wave.Snapshot) {
	if g.err != nil {
		return
	}
	if g.maxFrames > 0 && len(g.anim.Image) >= g.maxFrames {
		return
	}
	img, err := Render(s, g.style)
	if err != nil {
		g.err = err
		return
	}
	b := img.Bounds()
	frame := image.NewPaletted(b, g.palette)
	stddraw.Draw(frame, b, img, b.Min, stddraw.Src)

	g.anim.Image = append(g.anim.Image, frame)
	g.anim.Delay = append(g.anim.Delay, delay(s.Interval))
}

func delay(d time.Duration) int {
	cs := int(d / (10 * time.Millisecond))
	if cs < 2 {
		cs = 2
	}
	return cs
}

func (g *GIFRecorder) Len() int { return len(g.anim.Image) }

func (g *GIFRecorder) Encode(w io.Writer) error {
	if g.err != nil {
		return g.err
	}
	if len(g.anim.Image) == 0 {
		return ErrNoFrames
	}
	return gif.EncodeAll(w, &g.anim)
}

func (g *GIFRecorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return g.Encode(f)
}
