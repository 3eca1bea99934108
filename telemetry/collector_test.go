package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/vortex/systems"
)

func TestCollectorShouldFlush(t *testing.T) {
	c := NewCollector(10)
	if c.ShouldFlush(9) {
		t.Error("should not flush before the window is full")
	}
	if !c.ShouldFlush(10) {
		t.Error("should flush once the window is full")
	}

	c.Flush(10, nil)
	if c.ShouldFlush(15) {
		t.Error("window start should move to the flush tick")
	}
	if !c.ShouldFlush(20) {
		t.Error("should flush at the end of the second window")
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(2)
	c.RecordStep(systems.StepStats{Particles: 4, Respawned: 2, OutOfBounds: 1, Expired: 1, AlphaSum: 2})
	c.RecordStep(systems.StepStats{Particles: 4, Respawned: 0, AlphaSum: 4})

	pool := systems.NewParticlePool(4)
	for i, age := range []float64{0, 0.25, 0.5, 1} {
		slot := pool.Slot(i)
		slot[systems.FieldTTL] = 100
		slot[systems.FieldLife] = age * 100
		slot[systems.FieldSpeed] = 1
	}

	s := c.Flush(2, pool)

	if s.Frames != 2 || s.Particles != 4 {
		t.Errorf("frames/particles = %d/%d, want 2/4", s.Frames, s.Particles)
	}
	if s.Respawns != 2 || s.OutOfBounds != 1 || s.Expired != 1 {
		t.Errorf("respawn counters = %d/%d/%d", s.Respawns, s.OutOfBounds, s.Expired)
	}
	if math.Abs(s.RespawnRate-0.25) > 1e-9 {
		t.Errorf("respawn rate = %v, want 0.25", s.RespawnRate)
	}
	// Mean of 0.5 and 1.0 per-frame alpha means
	if math.Abs(s.AlphaMean-0.75) > 1e-9 {
		t.Errorf("alpha mean = %v, want 0.75", s.AlphaMean)
	}
	if math.Abs(s.AgeMean-0.4375) > 1e-9 {
		t.Errorf("age mean = %v, want 0.4375", s.AgeMean)
	}
	if s.SpeedMean != 1 || s.SpeedStd != 0 {
		t.Errorf("speed = %v±%v, want 1±0", s.SpeedMean, s.SpeedStd)
	}

	next := c.Flush(4, pool)
	if next.Frames != 0 || next.Respawns != 0 || next.AlphaMean != 0 {
		t.Errorf("counters not reset after flush: %+v", next)
	}
	if next.WindowStartTick != 2 {
		t.Errorf("window start = %d, want 2", next.WindowStartTick)
	}
}

func TestCollectorEmptyPool(t *testing.T) {
	c := NewCollector(1)
	c.RecordStep(systems.StepStats{})
	s := c.Flush(1, systems.NewParticlePool(0))
	if s.RespawnRate != 0 || s.AlphaMean != 0 || s.AgeMean != 0 {
		t.Errorf("expected zero stats for an empty pool, got %+v", s)
	}
}
