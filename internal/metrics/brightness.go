package metrics

import "github.com/san-kum/wavegrid/internal/wave"

// Brightness is the mean grid intensity averaged over all observed ticks.
type Brightness struct {
	name    string
	sum     float64
	samples int
}

func NewBrightness() *Brightness {
	return &Brightness{name: "brightness"}
}

func (b *Brightness) Name() string { return b.name }

func (b *Brightness) OnTick(s wave.Snapshot) {
	b.sum += s.Brightness()
	b.samples++
}

func (b *Brightness) Value() float64 {
	if b.samples == 0 {
		return 0
	}
	return b.sum / float64(b.samples)
}

func (b *Brightness) Reset() {
	b.sum = 0
	b.samples = 0
}

type TickCount struct {
	name  string
	count int
}

func NewTickCount() *TickCount {
	return &TickCount{name: "ticks"}
}

func (t *TickCount) Name() string           { return t.name }
func (t *TickCount) OnTick(_ wave.Snapshot) { t.count++ }
func (t *TickCount) Value() float64         { return float64(t.count) }
func (t *TickCount) Reset()                 { t.count = 0 }
