package display

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pthm-cable/vortex/renderer"
	"github.com/pthm-cable/vortex/renderer/raster"
)

// Headless runs frames back to back on a CPU raster surface.
type Headless struct {
	FrameQueue
	listeners ResizeListeners
	surface   *raster.Surface

	w, h int

	// Snapshot output
	snapshotDir   string
	snapshotEvery int
	frames        int
}

// NewHeadless creates a headless host of the given size.
func NewHeadless(w, h int) *Headless {
	return &Headless{
		surface: raster.New(w, h),
		w:       w,
		h:       h,
	}
}

// SetSnapshots enables a PNG of the composited frame every n frames.
func (hl *Headless) SetSnapshots(dir string, every int) error {
	if dir == "" || every <= 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	hl.snapshotDir = dir
	hl.snapshotEvery = every
	return nil
}

// Size implements engine.Viewport.
func (hl *Headless) Size() (int, int) {
	return hl.w, hl.h
}

// OnResize implements engine.Viewport.
func (hl *Headless) OnResize(fn func(w, h int)) func() {
	return hl.listeners.Add(fn)
}

// Context implements engine.Host.
func (hl *Headless) Context() renderer.Surface {
	return hl.surface
}

// Surface returns the raster surface frames are painted on.
func (hl *Headless) Surface() *raster.Surface {
	return hl.surface
}

// Resize changes the viewport and notifies listeners.
func (hl *Headless) Resize(w, h int) {
	hl.w, hl.h = w, h
	hl.listeners.Notify(w, h)
}

// Run drives pending frames until none is scheduled, maxFrames have run
// (0 = unlimited) or ctx is cancelled. It returns the number of frames run.
func (hl *Headless) Run(ctx context.Context, maxFrames int) (int, error) {
	ran := 0
	for maxFrames <= 0 || ran < maxFrames {
		if err := ctx.Err(); err != nil {
			return ran, err
		}
		if !hl.RunPending() {
			break
		}
		ran++
		hl.frames++

		if hl.snapshotEvery > 0 && hl.frames%hl.snapshotEvery == 0 {
			path := filepath.Join(hl.snapshotDir, fmt.Sprintf("frame_%06d.png", hl.frames))
			if err := hl.surface.SavePNG(path); err != nil {
				return ran, fmt.Errorf("saving snapshot: %w", err)
			}
			slog.Info("snapshot saved", "path", path, "frame", hl.frames)
		}
	}
	return ran, nil
}
