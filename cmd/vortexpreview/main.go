// Vortex preview tool - live engine preview with parameter sliders.
//
// Usage: go run ./cmd/vortexpreview [-config config.yaml]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/vortex/config"
	"github.com/pthm-cable/vortex/display"
	"github.com/pthm-cable/vortex/display/window"
	"github.com/pthm-cable/vortex/engine"
	"github.com/pthm-cable/vortex/renderer"
)

const (
	windowWidth   = 1200
	windowHeight  = 720
	previewWidth  = 760
	previewHeight = 560
	panelWidth    = windowWidth - previewWidth - 30
)

// previewHost is a fixed-size engine host drawing into an offscreen surface.
type previewHost struct {
	display.FrameQueue
	surface *window.Surface
}

func (h *previewHost) Size() (int, int) { return previewWidth, previewHeight }
func (h *previewHost) OnResize(func(w, h int)) func() { return func() {} }
func (h *previewHost) Context() renderer.Surface { return h.surface }

// slider is one tunable value on the panel.
type slider struct {
	label    string
	min, max float32
	format   string
	value    *float64
}

func main() {
	configPath := flag.String("config", "", "Path to config file (empty = use defaults)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	base, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if len(base.Glow.Passes) < 2 {
		base.Glow.Passes = append(base.Glow.Passes, make([]config.GlowPassConfig, 2-len(base.Glow.Passes))...)
	}
	cfg := cloneConfig(base)

	rl.InitWindow(windowWidth, windowHeight, "Vortex Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	host := &previewHost{surface: window.NewSurface(previewWidth, previewHeight)}
	defer host.surface.Unload()

	var e *engine.Engine
	restart := func() {
		if e != nil {
			e.Stop()
		}
		next, err := engine.New(engine.OptionsFromConfig(cfg))
		if err != nil {
			slog.Error("failed to build engine", "error", err)
			return
		}
		e = next
		e.Start(host)
	}
	if cfg.Noise.Seed == 0 {
		cfg.Noise.Seed = 12345
	}
	restart()
	if e == nil {
		os.Exit(1)
	}

	sliders := func() []slider {
		return []slider{
			{"Noise scale (x/y offset)", 0.0002, 0.005, "%.5f", &cfg.Noise.XOff},
			{"Noise drift (z offset)", 0, 0.002, "%.5f", &cfg.Noise.ZOff},
			{"Noise steps (turns)", 0.5, 6, "%.2f", &cfg.Noise.Steps},
			{"Range Y (spawn band)", 0, 300, "%.0f", &cfg.Vortex.RangeY},
			{"Base TTL", 10, 200, "%.0f", &cfg.Vortex.BaseTTL},
			{"Range TTL", 0, 300, "%.0f", &cfg.Vortex.RangeTTL},
			{"Range speed", 0, 4, "%.2f", &cfg.Vortex.RangeSpeed},
			{"Glow blur (halo)", 0, 16, "%.1f", &cfg.Glow.Passes[0].Blur},
			{"Glow blur (core)", 0, 16, "%.1f", &cfg.Glow.Passes[1].Blur},
		}
	}

	for !rl.WindowShouldClose() {
		host.RunPending()

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		host.surface.PresentAt(10, 10)
		rl.DrawRectangleLines(10, 10, previewWidth, previewHeight, rl.DarkGray)

		stats := e.LastStats()
		statsY := int32(previewHeight + 25)
		rl.DrawText(fmt.Sprintf("Tick: %d  Respawned: %d  Mean alpha: %.3f",
			e.TickCount(), stats.Respawned, stats.MeanAlpha()), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Seed: %d  Noise: %s  FPS: %d", e.Seed(), e.NoiseKind(), rl.GetFPS()), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewWidth + 20)
		panelY := float32(10)

		rl.DrawText("Vortex Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		needsRestart := false
		for _, s := range sliders() {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			current := float32(*s.value)
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				current, s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, *s.value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if next != current {
				*s.value = float64(next)
				needsRestart = true
			}
			panelY += 32
		}
		cfg.Noise.YOff = cfg.Noise.XOff

		if needsRestart {
			restart()
		}

		panelY += 10
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Restart") {
			restart()
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			cfg.Noise.Seed = int64(rl.GetRandomValue(1, 99999))
			restart()
		}
		panelY += 40
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Next Noise") {
			cfg.Noise.Kind = nextNoise(cfg.Noise.Kind)
			restart()
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			cfg = cloneConfig(base)
			restart()
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.Gray)
		if rl.IsKeyPressed(rl.KeyC) {
			if out, err := tunedYAML(cfg); err == nil {
				rl.SetClipboardText(out)
			}
		}

		rl.EndDrawing()
	}
	e.Stop()
}

// tunedYAML renders the sections the sliders touch.
func tunedYAML(cfg *config.Config) (string, error) {
	out, err := yaml.Marshal(struct {
		Vortex config.VortexConfig `yaml:"vortex"`
		Noise  config.NoiseConfig  `yaml:"noise"`
		Glow   config.GlowConfig   `yaml:"glow"`
	}{cfg.Vortex, cfg.Noise, cfg.Glow})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func nextNoise(kind string) string {
	switch kind {
	case "", "simplex":
		return "perlin"
	case "perlin":
		return "fbm"
	default:
		return "simplex"
	}
}

func cloneConfig(base *config.Config) *config.Config {
	cfg := *base
	cfg.Glow.Passes = append([]config.GlowPassConfig(nil), base.Glow.Passes...)
	cfg.Overlay.Lines = append([]string(nil), base.Overlay.Lines...)
	return &cfg
}
