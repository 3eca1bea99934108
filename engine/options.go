package engine

import (
	"image/color"

	"github.com/pthm-cable/vortex/config"
	"github.com/pthm-cable/vortex/renderer"
	"github.com/pthm-cable/vortex/systems"
	"github.com/pthm-cable/vortex/telemetry"
)

// NoiseOptions selects and tunes the flow field.
type NoiseOptions struct {
	Kind  string
	Seed  int64 // 0 = time based
	XOff  float64
	YOff  float64
	ZOff  float64
	Steps float64
	systems.NoiseOptions
}

// Options configures an Engine. It is consumed once by New.
type Options struct {
	ParticleCount int
	Spawn         systems.SpawnRanges
	Noise         NoiseOptions
	Background    color.RGBA

	Glow        []renderer.GlowPass
	GlowPresent bool
	Layers      []renderer.Layer

	// Telemetry
	StatsWindow   int
	PerfWindow    int
	LogStats      bool
	Output        *telemetry.OutputManager
	StatsCallback func(telemetry.WindowStats)
	FrameObserver func(tick uint64, stats systems.StepStats)
}

// DefaultOptions returns options built from the embedded default configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Defaults())
}

// OptionsFromConfig maps a loaded configuration onto engine options.
func OptionsFromConfig(cfg *config.Config) Options {
	v := cfg.Vortex
	n := cfg.Noise

	passes := make([]renderer.GlowPass, len(cfg.Glow.Passes))
	for i, p := range cfg.Glow.Passes {
		passes[i] = renderer.GlowPass{Blur: p.Blur, Brightness: p.Brightness}
	}

	opts := Options{
		ParticleCount: v.ParticleCount,
		Spawn: systems.SpawnRanges{
			RangeY:      v.RangeY,
			BaseTTL:     v.BaseTTL,
			RangeTTL:    v.RangeTTL,
			BaseSpeed:   v.BaseSpeed,
			RangeSpeed:  v.RangeSpeed,
			BaseRadius:  v.BaseRadius,
			RangeRadius: v.RangeRadius,
			BaseHue:     v.BaseHue,
			RangeHue:    v.RangeHue,
		},
		Noise: NoiseOptions{
			Kind:  n.Kind,
			Seed:  n.Seed,
			XOff:  n.XOff,
			YOff:  n.YOff,
			ZOff:  n.ZOff,
			Steps: n.Steps,
			NoiseOptions: systems.NoiseOptions{
				Octaves: n.Octaves,
				Alpha:   n.Alpha,
				Beta:    n.Beta,
			},
		},
		Background:  cfg.Derived.Background,
		Glow:        passes,
		GlowPresent: cfg.Glow.Present,
		StatsWindow: cfg.Telemetry.StatsWindow,
		PerfWindow:  cfg.Telemetry.PerfWindow,
	}

	if cfg.Overlay.Enabled && len(cfg.Overlay.Lines) > 0 {
		opts.Layers = append(opts.Layers, &renderer.TextLayer{
			Lines: cfg.Overlay.Lines,
			Size:  cfg.Overlay.Size,
			Color: cfg.Derived.OverlayColor,
		})
	}
	return opts
}
