package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/vortex/config"
	"github.com/pthm-cable/vortex/telemetry"
)

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-12 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestDefaultsMatchConfig(t *testing.T) {
	pv := NewParamVector()
	got := pv.ExtractFromConfig(config.Defaults())
	for i, spec := range pv.Specs {
		if math.Abs(got[i]-spec.Default) > 1e-12 {
			t.Errorf("%s: config default %v, param default %v", spec.Name, got[i], spec.Default)
		}
	}
}

func TestApplyToConfigClamps(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Defaults()
	values := make([]float64, pv.Dim())
	for i := range values {
		values[i] = 1e9
	}
	pv.ApplyToConfig(cfg, values)

	extracted := pv.ExtractFromConfig(cfg)
	for i, spec := range pv.Specs {
		if extracted[i] != spec.Max {
			t.Errorf("%s = %v, want clamped to %v", spec.Name, extracted[i], spec.Max)
		}
	}
	if cfg.Noise.XOff != cfg.Noise.YOff {
		t.Error("x_off and y_off should share the noise scale")
	}
}

func TestComputeQuality(t *testing.T) {
	fe := &FitnessEvaluator{targets: Targets{Alpha: 0.5, EdgeShare: 0.2, Coverage: 0.25}}

	perfect := &runResult{coverage: 0.25}
	for i := 0; i < 4; i++ {
		perfect.windowStats = append(perfect.windowStats, statsWindow(0.5, 10, 2, 0.01))
	}
	if q := fe.computeQuality(perfect); math.Abs(q-1) > 1e-9 {
		t.Errorf("quality on target = %v, want 1", q)
	}

	off := &runResult{coverage: 0.9}
	for i := 0; i < 4; i++ {
		off.windowStats = append(off.windowStats, statsWindow(0.05, 10, 10, 0.01))
	}
	if q := fe.computeQuality(off); q >= 0.5 {
		t.Errorf("quality off target = %v, want < 0.5", q)
	}

	if q := fe.computeQuality(&runResult{}); q != 0 {
		t.Errorf("quality without windows = %v, want 0", q)
	}
}

func statsWindow(alpha float64, respawns, outOfBounds int, rate float64) telemetry.WindowStats {
	return telemetry.WindowStats{
		AlphaMean:   alpha,
		Respawns:    respawns,
		OutOfBounds: outOfBounds,
		RespawnRate: rate,
	}
}

func TestLitFraction(t *testing.T) {
	pix := []uint8{
		0, 0, 0, 255,
		200, 0, 0, 255,
		0, 0, 10, 255,
		0, 40, 0, 255,
	}
	if got := litFraction(pix); got != 0.5 {
		t.Errorf("litFraction = %v, want 0.5", got)
	}
}
