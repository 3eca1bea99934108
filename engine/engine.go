package engine

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/vortex/renderer"
	"github.com/pthm-cable/vortex/systems"
	"github.com/pthm-cable/vortex/telemetry"
)

// Engine owns one running vortex: the particle pool, noise field, clock,
// canvas geometry and the renderer bound to the host surface.
// All methods must be called from the host's frame goroutine.
type Engine struct {
	opts Options
	seed int64

	noise    systems.NoiseField
	pool     *systems.ParticlePool
	spawner  *systems.Spawner
	sim      *systems.Simulator
	renderer *renderer.Renderer

	// Host binding
	host         Host
	frameID      FrameID
	removeResize func()
	mounted      bool
	running      bool
	warned       bool

	// Geometry and clock
	width, height    float64
	centerX, centerY float64
	tick             uint64

	// Telemetry
	statsWindow   int
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	lastStats     systems.StepStats
}

// New builds an engine from opts. The noise field and spawn RNG are seeded once here.
func New(opts Options) (*Engine, error) {
	seed := opts.Noise.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	noise, err := systems.NewNoiseField(opts.Noise.Kind, seed, opts.Noise.NoiseOptions)
	if err != nil {
		return nil, fmt.Errorf("creating noise field: %w", err)
	}

	rng := rand.New(rand.NewSource(seed))
	spawner := systems.NewSpawner(opts.Spawn, rng)

	statsWindow := opts.StatsWindow
	if statsWindow <= 0 {
		statsWindow = 300
	}

	e := &Engine{
		opts:    opts,
		seed:    seed,
		noise:   noise,
		pool:    systems.NewParticlePool(opts.ParticleCount),
		spawner: spawner,
		sim: &systems.Simulator{
			XOff:       opts.Noise.XOff,
			YOff:       opts.Noise.YOff,
			ZOff:       opts.Noise.ZOff,
			NoiseSteps: opts.Noise.Steps,
			Spawner:    spawner,
		},
		renderer:      renderer.NewRenderer(opts.Glow, opts.GlowPresent),
		statsWindow:   statsWindow,
		perfCollector: telemetry.NewPerfCollector(opts.PerfWindow),
	}
	for _, l := range opts.Layers {
		e.renderer.AddLayer(l)
	}
	return e, nil
}

// Start mounts the engine into host: it sizes the canvas to the viewport,
// spawns every particle, paints the background, listens for resizes and
// schedules the first frame. If the host has no drawing context the engine
// stays unmounted. Starting a running engine does nothing.
func (e *Engine) Start(host Host) {
	if e.running {
		return
	}
	surface := host.Context()
	if surface == nil {
		if !e.warned {
			slog.Warn("no 2D drawing context, vortex disabled")
			e.warned = true
		}
		return
	}

	e.host = host
	e.renderer.Bind(surface)
	e.mounted = true
	e.running = true
	e.tick = 0
	e.collector = telemetry.NewCollector(e.statsWindow)
	e.lastStats = systems.StepStats{}

	e.Resize(host.Size())
	e.InitParticles()
	e.renderer.Clear(e.opts.Background)
	e.renderer.DrawLayers()

	e.removeResize = host.OnResize(e.Resize)
	e.frameID = host.RequestFrame(e.Tick)

	slog.Info("vortex started",
		"particles", e.pool.Len(),
		"width", e.width,
		"height", e.height,
		"seed", e.seed,
	)
}

// InitParticles respawns every slot inside the current canvas.
func (e *Engine) InitParticles() {
	if !e.mounted {
		return
	}
	e.spawner.SpawnAll(e.pool, e.width, e.height, e.centerY)
}

// Resize updates the canvas to w x h and recentres spawning. Particles left
// outside the new bounds are respawned by the next step.
func (e *Engine) Resize(w, h int) {
	if !e.mounted {
		return
	}
	w, h = max(w, 0), max(h, 0)
	e.renderer.Surface().Resize(w, h)
	e.width = float64(w)
	e.height = float64(h)
	e.centerX = e.width / 2
	e.centerY = e.height / 2
}

// Tick is the frame callback: it runs one frame and schedules the next.
func (e *Engine) Tick() {
	if !e.running {
		return
	}
	e.frameID = 0
	e.Step()
	// A frame observer may have stopped the engine
	if e.running {
		e.frameID = e.host.RequestFrame(e.Tick)
	}
}

// Step runs one frame without scheduling: it advances the clock, clears to
// the background, moves and strokes every particle, then composites the glow
// and layers.
func (e *Engine) Step() systems.StepStats {
	if !e.running {
		return systems.StepStats{}
	}

	e.perfCollector.RecordFrame()
	e.perfCollector.StartTick()

	e.tick++

	e.perfCollector.StartPhase(telemetry.PhaseClear)
	e.renderer.Clear(e.opts.Background)

	e.perfCollector.StartPhase(telemetry.PhaseSimulate)
	stats := e.sim.Step(e.pool, e.noise, float64(e.tick), e.bounds(), e.renderer)

	e.perfCollector.StartPhase(telemetry.PhaseGlow)
	e.renderer.Glow()

	e.perfCollector.StartPhase(telemetry.PhaseLayers)
	e.renderer.DrawLayers()

	e.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	e.lastStats = stats
	e.collector.RecordStep(stats)
	e.flushTelemetry()

	e.perfCollector.EndTick()

	if e.opts.FrameObserver != nil {
		e.opts.FrameObserver(e.tick, stats)
	}
	return stats
}

// Stop cancels the pending frame and detaches the resize listener.
// It is safe to call at any time, any number of times.
func (e *Engine) Stop() {
	if e.host != nil && e.frameID != 0 {
		e.host.CancelFrame(e.frameID)
	}
	e.frameID = 0
	if e.removeResize != nil {
		e.removeResize()
		e.removeResize = nil
	}
	if e.running {
		slog.Info("vortex stopped", "tick", e.tick)
	}
	e.running = false
	e.mounted = false
}

func (e *Engine) bounds() systems.Bounds {
	return systems.Bounds{Width: e.width, Height: e.height, CenterY: e.centerY}
}

// Center returns the canvas centre.
func (e *Engine) Center() (x, y float64) {
	return e.centerX, e.centerY
}

// Size returns the canvas size in pixels.
func (e *Engine) Size() (w, h float64) {
	return e.width, e.height
}

// TickCount returns frames run since Start.
func (e *Engine) TickCount() uint64 {
	return e.tick
}

// Pool returns the particle pool.
func (e *Engine) Pool() *systems.ParticlePool {
	return e.pool
}

// Running reports whether the engine is mounted and scheduling frames.
func (e *Engine) Running() bool {
	return e.running
}

// Seed returns the seed the noise field and spawner were built with.
func (e *Engine) Seed() int64 {
	return e.seed
}

// NoiseKind returns the flow field backend name.
func (e *Engine) NoiseKind() string {
	if e.opts.Noise.Kind == "" {
		return systems.NoiseSimplex
	}
	return e.opts.Noise.Kind
}

// Renderer returns the engine's renderer.
func (e *Engine) Renderer() *renderer.Renderer {
	return e.renderer
}

// LastStats returns the results of the most recent step.
func (e *Engine) LastStats() systems.StepStats {
	return e.lastStats
}

// PerfStats returns the rolling frame timing.
func (e *Engine) PerfStats() telemetry.PerfStats {
	return e.perfCollector.Stats()
}
