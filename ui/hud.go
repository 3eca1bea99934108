package ui

import (
	"fmt"
	"sort"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vortex/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Particles    int
	Respawned    int
	MeanAlpha    float64
	Tick         uint64
	FPS          int32
	NoiseKind    string
	Seed         int64
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	visible  bool
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		visible:  true,
	}
}

// Toggle switches HUD visibility.
func (h *HUD) Toggle() bool {
	h.visible = !h.visible
	return h.visible
}

// Visible reports whether the HUD is shown.
func (h *HUD) Visible() bool {
	return h.visible
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	if !h.visible {
		return
	}
	r := h.renderer
	const x, width = 10, 240

	r.DrawPanel(x-4, 6, width, 112)
	rl.DrawText(data.Title, x, 10, 20, rl.White)

	y := int32(36)
	y = r.DrawLabelValue(x, y, "Particles", fmt.Sprintf("%d (%d respawned)", data.Particles, data.Respawned))
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d | FPS: %d", data.Tick, data.FPS))
	y = r.DrawLabelValue(x, y, "Noise", fmt.Sprintf("%s seed %d", data.NoiseKind, data.Seed))
	r.DrawBar(x, y, "Alpha", float32(data.MeanAlpha), width-10)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	if !h.visible {
		return
	}
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the frame phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	visible  bool
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Toggle switches panel visibility.
func (p *PerfPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Draw renders the performance panel, slowest phase first.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	if !p.visible {
		return
	}
	x := p.x
	y := p.y

	rl.DrawText("Frame Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s", stats.AvgTickDuration.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	names := make([]string, 0, len(stats.PhaseAvg))
	for name := range stats.PhaseAvg {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return stats.PhaseAvg[names[i]] > stats.PhaseAvg[names[j]]
	})

	for _, name := range names {
		avg := stats.PhaseAvg[name]
		pct := stats.PhasePct[name]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
