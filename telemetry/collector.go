package telemetry

import "github.com/pthm-cable/vortex/systems"

// Collector accumulates per-frame step results and produces WindowStats.
type Collector struct {
	windowFrames    uint64
	windowStartTick uint64

	// Counters for current window
	frames      int
	respawns    int
	outOfBounds int
	expired     int
	particles   int
	alphaSum    float64
	alphaFrames int
}

// NewCollector creates a collector that flushes every windowFrames frames.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{windowFrames: uint64(windowFrames)}
}

// RecordStep adds one frame's step results to the window.
func (c *Collector) RecordStep(s systems.StepStats) {
	c.frames++
	c.respawns += s.Respawned
	c.outOfBounds += s.OutOfBounds
	c.expired += s.Expired
	c.particles = s.Particles
	if s.Particles > 0 {
		c.alphaSum += s.MeanAlpha()
		c.alphaFrames++
	}
}

// ShouldFlush returns true if enough frames have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick uint64) bool {
	return currentTick-c.windowStartTick >= c.windowFrames
}

// Flush produces a WindowStats from the counters and a snapshot of the pool,
// then resets the counters for the next window.
func (c *Collector) Flush(currentTick uint64, pool *systems.ParticlePool) WindowStats {
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		Frames:          c.frames,
		Particles:       c.particles,
		Respawns:        c.respawns,
		OutOfBounds:     c.outOfBounds,
		Expired:         c.expired,
	}
	if c.frames > 0 && c.particles > 0 {
		stats.RespawnRate = float64(c.respawns) / float64(c.frames*c.particles)
	}
	if c.alphaFrames > 0 {
		stats.AlphaMean = c.alphaSum / float64(c.alphaFrames)
	}

	if pool != nil && pool.Len() > 0 {
		ages := make([]float64, 0, pool.Len())
		speeds := make([]float64, 0, pool.Len())
		for i := 0; i < pool.Len(); i++ {
			if ttl := pool.TTL(i); ttl > 0 {
				ages = append(ages, pool.Life(i)/ttl)
			}
			speeds = append(speeds, pool.Speed(i))
		}
		age := ComputeDistribution(ages)
		speed := ComputeDistribution(speeds)
		stats.AgeMean, stats.AgeP10, stats.AgeP50, stats.AgeP90 = age.Mean, age.P10, age.P50, age.P90
		stats.SpeedMean, stats.SpeedStd = speed.Mean, speed.Std
	}

	c.windowStartTick = currentTick
	c.frames = 0
	c.respawns = 0
	c.outOfBounds = 0
	c.expired = 0
	c.alphaSum = 0
	c.alphaFrames = 0

	return stats
}
