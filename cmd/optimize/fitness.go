package main

import (
	"context"
	"math"
	"sync"

	"github.com/pthm-cable/vortex/config"
	"github.com/pthm-cable/vortex/display"
	"github.com/pthm-cable/vortex/engine"
	"github.com/pthm-cable/vortex/telemetry"
)

// Targets are the look a parameter set is scored against.
type Targets struct {
	Alpha     float64 // mean stroke alpha
	EdgeShare float64 // share of respawns caused by leaving the canvas
	Coverage  float64 // share of lit pixels in the final frame
}

// FitnessEvaluator runs headless vortex runs and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int
	seeds       []int64
	baseConfig  *config.Config
	targets     Targets
	statsWindow int

	// Render size for scoring; smaller than the window keeps runs cheap
	width, height int

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config, targets Targets) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		targets:     targets,
		statsWindow: 60,
		width:       baseCfg.Screen.Width / 4,
		height:      baseCfg.Screen.Height / 4,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single run.
type runResult struct {
	windowStats []telemetry.WindowStats
	coverage    float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative quality averaged across seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	qualities := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			qualities[idx] = fe.computeQuality(fe.runVortex(x, s))
		}(i, seed)
	}
	wg.Wait()

	var total float64
	for _, q := range qualities {
		total += q
	}
	quality := total / float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastQuality = quality
	fe.mu.Unlock()

	return -quality
}

// runVortex executes a single headless run for maxTicks frames.
func (fe *FitnessEvaluator) runVortex(x []float64, seed int64) *runResult {
	cfg := cloneConfig(fe.baseConfig)
	fe.params.ApplyToConfig(cfg, x)
	cfg.Noise.Seed = seed

	// The smaller canvas shrinks the spawn band with it
	scale := float64(fe.height) / float64(cfg.Screen.Height)
	cfg.Vortex.RangeY *= scale

	result := &runResult{}

	opts := engine.OptionsFromConfig(cfg)
	opts.StatsWindow = fe.statsWindow
	opts.StatsCallback = func(stats telemetry.WindowStats) {
		result.windowStats = append(result.windowStats, stats)
	}

	e, err := engine.New(opts)
	if err != nil {
		return result
	}

	host := display.NewHeadless(fe.width, fe.height)
	e.Start(host)
	defer e.Stop()

	if _, err := host.Run(context.Background(), fe.maxTicks); err != nil {
		return result
	}
	result.coverage = litFraction(host.Surface().Image().Pix)
	return result
}

// litFraction returns the share of pixels with any channel above a dim threshold.
func litFraction(pix []uint8) float64 {
	if len(pix) == 0 {
		return 0
	}
	const threshold = 16
	lit := 0
	for i := 0; i+2 < len(pix); i += 4 {
		if pix[i] > threshold || pix[i+1] > threshold || pix[i+2] > threshold {
			lit++
		}
	}
	return float64(lit) / float64(len(pix)/4)
}

// cloneConfig copies cfg including its slices.
func cloneConfig(base *config.Config) *config.Config {
	cfg := *base
	cfg.Glow.Passes = append([]config.GlowPassConfig(nil), base.Glow.Passes...)
	cfg.Overlay.Lines = append([]string(nil), base.Overlay.Lines...)
	return &cfg
}

// Quality component weights.
const (
	qualityWeightAlpha     = 0.25
	qualityWeightEdge      = 0.25
	qualityWeightCoverage  = 0.35
	qualityWeightStability = 0.15

	qualityWarmupWindows = 1 // skip first N windows (warmup)
)

// computeQuality computes look quality in [0, 1] from a run.
func (fe *FitnessEvaluator) computeQuality(r *runResult) float64 {
	if len(r.windowStats) <= qualityWarmupWindows {
		return 0
	}
	valid := r.windowStats[qualityWarmupWindows:]

	var alphaSum, edgeSum float64
	var edgeCount int
	rates := make([]float64, 0, len(valid))

	for _, w := range valid {
		alphaSum += gaussianScore(w.AlphaMean, fe.targets.Alpha, 0.15)
		if w.Respawns > 0 {
			share := float64(w.OutOfBounds) / float64(w.Respawns)
			edgeSum += gaussianScore(share, fe.targets.EdgeShare, 0.15)
			edgeCount++
		}
		rates = append(rates, w.RespawnRate)
	}

	alphaScore := alphaSum / float64(len(valid))
	edgeScore := 0.0
	if edgeCount > 0 {
		edgeScore = edgeSum / float64(edgeCount)
	}
	coverageScore := gaussianScore(r.coverage, fe.targets.Coverage, 0.1)

	stabilityScore := 0.0
	if len(rates) >= 2 {
		c := cv(rates)
		stabilityScore = math.Exp(-c * c)
	}

	quality := qualityWeightAlpha*alphaScore +
		qualityWeightEdge*edgeScore +
		qualityWeightCoverage*coverageScore +
		qualityWeightStability*stabilityScore

	return clamp01(quality)
}

// gaussianScore is 1 at target and falls off with width.
func gaussianScore(v, target, width float64) float64 {
	d := (v - target) / width
	return math.Exp(-d * d)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	d := telemetry.ComputeDistribution(values)
	if d.Mean == 0 {
		return 0
	}
	return d.Std / d.Mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
