package display

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/vortex/engine"
)

func TestHeadlessRun(t *testing.T) {
	hl := NewHeadless(32, 24)
	dir := filepath.Join(t.TempDir(), "snaps")
	if err := hl.SetSnapshots(dir, 2); err != nil {
		t.Fatalf("SetSnapshots: %v", err)
	}

	frames := 0
	var tick func()
	tick = func() {
		frames++
		hl.RequestFrame(tick)
	}
	hl.RequestFrame(tick)

	ran, err := hl.Run(context.Background(), 5)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ran != 5 || frames != 5 {
		t.Errorf("ran %d frames (callback %d), want 5", ran, frames)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading snapshots: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("snapshots = %d, want 2", len(entries))
	}
}

func TestHeadlessStopsWithoutPendingFrame(t *testing.T) {
	hl := NewHeadless(8, 8)
	hl.RequestFrame(func() {})
	ran, err := hl.Run(context.Background(), 0)
	if err != nil || ran != 1 {
		t.Errorf("Run = %d, %v; want 1, nil", ran, err)
	}
}

func TestHeadlessResizeNotifies(t *testing.T) {
	hl := NewHeadless(8, 8)
	var gotW, gotH int
	hl.OnResize(func(w, h int) { gotW, gotH = w, h })
	hl.Resize(40, 30)
	if gotW != 40 || gotH != 30 {
		t.Errorf("listener got %dx%d, want 40x30", gotW, gotH)
	}
	if w, h := hl.Size(); w != 40 || h != 30 {
		t.Errorf("Size = %dx%d", w, h)
	}
}

func TestHeadlessDrivesEngine(t *testing.T) {
	hl := NewHeadless(120, 80)
	opts := engine.DefaultOptions()
	opts.ParticleCount = 40
	opts.Noise.Seed = 3

	e, err := engine.New(opts)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	e.Start(hl)
	defer e.Stop()

	ran, err := hl.Run(context.Background(), 30)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ran != 30 || e.TickCount() != 30 {
		t.Fatalf("ran %d frames, engine at tick %d", ran, e.TickCount())
	}

	lit := 0
	pix := hl.Surface().Image().Pix
	for i := 0; i < len(pix); i += 4 {
		if pix[i]|pix[i+1]|pix[i+2] != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("expected particles to paint the surface")
	}

	hl.Resize(60, 40)
	if cx, cy := e.Center(); cx != 30 || cy != 20 {
		t.Errorf("center after resize = (%v, %v)", cx, cy)
	}
}
