package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/san-kum/wavegrid/internal/wave"
	"golang.org/x/sync/errgroup"
)

// FrameDump keeps every snapshot it observes and writes them out as a
// numbered PNG sequence.
type FrameDump struct {
	snaps []wave.Snapshot
}

func NewFrameDump() *FrameDump { return &FrameDump{} }

func (f *FrameDump) OnTick(s wave.Snapshot) { f.snaps = append(f.snaps, s) }

func (f *FrameDump) Len() int { return len(f.snaps) }

// Save renders frames concurrently into dir as frame-00001.png and so on.
// workers <= 0 uses one worker per CPU.
func (f *FrameDump) Save(ctx context.Context, dir string, st Style, workers int) error {
	if len(f.snaps) == 0 {
		return ErrNoFrames
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, snap := range f.snaps {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dir, fmt.Sprintf("frame-%05d.png", i+1))
			if err := SavePNG(path, snap, st); err != nil {
				return fmt.Errorf("frame %d: %w", i+1, err)
			}
			return nil
		})
	}
	return g.Wait()
}
