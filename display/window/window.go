// Package window hosts the engine in a resizable raylib window.
package window

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vortex/config"
	"github.com/pthm-cable/vortex/display"
	"github.com/pthm-cable/vortex/engine"
	"github.com/pthm-cable/vortex/renderer"
	"github.com/pthm-cable/vortex/ui"
)

const controls = "H: HUD | P: perf | R: restart | Esc: quit"

// Window is an engine.Host backed by a raylib window.
type Window struct {
	display.FrameQueue
	listeners display.ResizeListeners
	surface   *Surface

	title string
	hud   *ui.HUD
	perf  *ui.PerfPanel
}

// Open creates the window and its GPU surface.
func Open(screen config.ScreenConfig) *Window {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(screen.Width), int32(screen.Height), screen.Title)
	rl.SetTargetFPS(int32(screen.TargetFPS))

	return &Window{
		surface: NewSurface(screen.Width, screen.Height),
		title:   screen.Title,
		hud:     ui.NewHUD(),
		perf:    ui.NewPerfPanel(int32(screen.Width)-260, 10),
	}
}

// Size implements engine.Viewport.
func (w *Window) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// OnResize implements engine.Viewport.
func (w *Window) OnResize(fn func(w, h int)) func() {
	return w.listeners.Add(fn)
}

// Context implements engine.Host.
func (w *Window) Context() renderer.Surface {
	if w.surface == nil || !rl.IsWindowReady() {
		return nil
	}
	return w.surface
}

// Run pumps frames until the window closes or maxFrames have run (0 = unlimited).
func (w *Window) Run(e *engine.Engine, maxFrames int) {
	for !rl.WindowShouldClose() {
		w.handleInput(e)

		if rl.IsWindowResized() {
			width, height := w.Size()
			w.perf.SetPosition(int32(width)-260, 10)
			w.listeners.Notify(width, height)
		}

		w.RunPending()
		w.draw(e)

		if maxFrames > 0 && e.TickCount() >= uint64(maxFrames) {
			return
		}
	}
}

func (w *Window) handleInput(e *engine.Engine) {
	if rl.IsKeyPressed(rl.KeyH) {
		w.hud.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		w.perf.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		e.Stop()
		e.Start(w)
	}
}

// draw presents the engine frame with the HUD on top.
func (w *Window) draw(e *engine.Engine) {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	w.surface.Present()

	stats := e.LastStats()
	width, height := w.Size()
	w.hud.Draw(ui.HUDData{
		Title:        w.title,
		Particles:    stats.Particles,
		Respawned:    stats.Respawned,
		MeanAlpha:    stats.MeanAlpha(),
		Tick:         e.TickCount(),
		FPS:          rl.GetFPS(),
		NoiseKind:    e.NoiseKind(),
		Seed:         e.Seed(),
		ScreenWidth:  int32(width),
		ScreenHeight: int32(height),
	})
	w.hud.DrawControls(int32(height), controls)
	w.perf.Draw(e.PerfStats())

	rl.EndDrawing()
}

// Close releases GPU resources and closes the window.
func (w *Window) Close() {
	w.surface.Unload()
	rl.CloseWindow()
}
