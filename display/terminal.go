package display

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/vortex/renderer"
	"github.com/pthm-cable/vortex/renderer/raster"
)

// halfBlock paints the upper pixel as foreground and the lower as background.
const halfBlock = '▀'

// Terminal renders frames into a tcell screen, two raster rows per cell.
type Terminal struct {
	FrameQueue
	listeners ResizeListeners
	screen    tcell.Screen
	surface   *raster.Surface
	fps       int
}

// NewTerminal initializes the terminal screen.
func NewTerminal(fps int) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()

	if fps <= 0 {
		fps = 30
	}
	cols, rows := screen.Size()
	return &Terminal{
		screen:  screen,
		surface: raster.New(cols, rows*2),
		fps:     fps,
	}, nil
}

// Size implements engine.Viewport in raster pixels.
func (t *Terminal) Size() (int, int) {
	cols, rows := t.screen.Size()
	return cols, rows * 2
}

// OnResize implements engine.Viewport.
func (t *Terminal) OnResize(fn func(w, h int)) func() {
	return t.listeners.Add(fn)
}

// Context implements engine.Host.
func (t *Terminal) Context() renderer.Surface {
	return t.surface
}

// Run presents frames at the configured rate until q, Esc or Ctrl-C is
// pressed, maxFrames have run (0 = unlimited) or ctx is cancelled.
func (t *Terminal) Run(ctx context.Context, maxFrames int) error {
	ticker := time.NewTicker(time.Second / time.Duration(t.fps))
	defer ticker.Stop()

	// Only the poller goroutine touches PollEvent; everything else stays here
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ran := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
			case *tcell.EventResize:
				t.screen.Sync()
				cols, rows := ev.Size()
				t.listeners.Notify(cols, rows*2)
			}

		case <-ticker.C:
			if !t.RunPending() {
				return nil
			}
			t.present()
			ran++
			if maxFrames > 0 && ran >= maxFrames {
				return nil
			}
		}
	}
}

// present copies the raster into screen cells.
func (t *Terminal) present() {
	img := t.surface.Image()
	cols, rows := t.screen.Size()
	b := img.Bounds()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			style := tcell.StyleDefault.
				Foreground(cellColor(img, b, x, 2*y)).
				Background(cellColor(img, b, x, 2*y+1))
			t.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	t.screen.Show()
}

func cellColor(img *image.RGBA, b image.Rectangle, x, y int) tcell.Color {
	if !(image.Point{X: x, Y: y}).In(b) {
		return tcell.ColorBlack
	}
	c := img.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Fini()
}
