package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated particle statistics for a window of frames.
type WindowStats struct {
	WindowStartTick uint64 `csv:"-"`
	WindowEndTick   uint64 `csv:"window_end"`
	Frames          int    `csv:"frames"`
	Particles       int    `csv:"particles"`

	// Respawns during window
	Respawns    int     `csv:"respawns"`
	OutOfBounds int     `csv:"out_of_bounds"`
	Expired     int     `csv:"expired"`
	RespawnRate float64 `csv:"respawn_rate"` // Respawns per particle per frame

	// Mean stroke alpha over the window
	AlphaMean float64 `csv:"alpha_mean"`

	// Age distribution (life/ttl) sampled at window end
	AgeMean float64 `csv:"age_mean"`
	AgeP10  float64 `csv:"age_p10"`
	AgeP50  float64 `csv:"age_p50"`
	AgeP90  float64 `csv:"age_p90"`

	// Speed distribution sampled at window end
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeDistribution calculates mean, population std and percentiles of values.
func ComputeDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	mean, variance := stat.PopMeanVariance(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Distribution{
		Mean: mean,
		Std:  math.Sqrt(variance),
		P10:  Percentile(sorted, 0.10),
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("tick", s.WindowEndTick),
		slog.Int("particles", s.Particles),
		slog.Int("respawns", s.Respawns),
		slog.Int("out_of_bounds", s.OutOfBounds),
		slog.Int("expired", s.Expired),
		slog.Float64("alpha_mean", s.AlphaMean),
		slog.Float64("age_p50", s.AgeP50),
		slog.Float64("speed_mean", s.SpeedMean),
	)
}
