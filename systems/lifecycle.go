package systems

import "math/rand"

// SpawnRanges holds the [base, base+range) intervals particles are drawn from.
type SpawnRanges struct {
	RangeY      float64
	BaseTTL     float64
	RangeTTL    float64
	BaseSpeed   float64
	RangeSpeed  float64
	BaseRadius  float64
	RangeRadius float64
	BaseHue     float64
	RangeHue    float64
}

// Spawner (re)initializes particle slots from the configured ranges.
type Spawner struct {
	Ranges SpawnRanges
	rng    *rand.Rand
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(ranges SpawnRanges, rng *rand.Rand) *Spawner {
	return &Spawner{Ranges: ranges, rng: rng}
}

// rand returns a uniform value in [0, n).
func (s *Spawner) rand(n float64) float64 {
	return n * s.rng.Float64()
}

// randRange returns a uniform value in (-n, n].
func (s *Spawner) randRange(n float64) float64 {
	return n - s.rand(2*n)
}

// Spawn redraws every attribute of slot i in place.
// x is uniform across the width; y is spread around centerY by at most RangeY,
// clamped to centerY so the point stays inside [0, height).
func (s *Spawner) Spawn(pool *ParticlePool, i int, width, height, centerY float64) {
	r := &s.Ranges
	spread := r.RangeY
	if spread > centerY {
		spread = centerY
	}

	y := centerY + s.randRange(spread)
	if y >= height {
		// randRange is inclusive at +spread; fold the single edge value back in
		y = centerY
	}

	slot := pool.Slot(i)
	slot[FieldX] = s.rand(width)
	slot[FieldY] = y
	slot[FieldVX] = 0
	slot[FieldVY] = 0
	slot[FieldLife] = 0
	slot[FieldTTL] = r.BaseTTL + s.rand(r.RangeTTL)
	slot[FieldSpeed] = r.BaseSpeed + s.rand(r.RangeSpeed)
	slot[FieldRadius] = r.BaseRadius + s.rand(r.RangeRadius)
	slot[FieldHue] = r.BaseHue + s.rand(r.RangeHue)
}

// SpawnAll initializes every slot of the pool.
func (s *Spawner) SpawnAll(pool *ParticlePool, width, height, centerY float64) {
	for i := 0; i < pool.Len(); i++ {
		s.Spawn(pool, i, width, height, centerY)
	}
}
