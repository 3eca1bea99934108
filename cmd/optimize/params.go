// Package main provides CMA-ES optimization for vortex flow and spawn parameters.
package main

import (
	"github.com/pthm-cable/vortex/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Flow field (x_off and y_off share one scale)
			{Name: "noise_scale", Path: "noise.x_off,noise.y_off", Min: 0.0002, Max: 0.005, Default: 0.00125},
			{Name: "noise_drift", Path: "noise.z_off", Min: 0, Max: 0.002, Default: 0.0005},
			{Name: "noise_steps", Path: "noise.steps", Min: 0.5, Max: 6, Default: 3},
			// Spawn ranges
			{Name: "range_y", Path: "vortex.range_y", Min: 20, Max: 300, Default: 100},
			{Name: "base_ttl", Path: "vortex.base_ttl", Min: 20, Max: 150, Default: 50},
			{Name: "range_ttl", Path: "vortex.range_ttl", Min: 20, Max: 300, Default: 150},
			{Name: "range_speed", Path: "vortex.range_speed", Min: 0.2, Max: 4, Default: 1.5},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Noise.XOff = clamped[0]
	cfg.Noise.YOff = clamped[0]
	cfg.Noise.ZOff = clamped[1]
	cfg.Noise.Steps = clamped[2]

	cfg.Vortex.RangeY = clamped[3]
	cfg.Vortex.BaseTTL = clamped[4]
	cfg.Vortex.RangeTTL = clamped[5]
	cfg.Vortex.RangeSpeed = clamped[6]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Noise.XOff,
		cfg.Noise.ZOff,
		cfg.Noise.Steps,
		cfg.Vortex.RangeY,
		cfg.Vortex.BaseTTL,
		cfg.Vortex.RangeTTL,
		cfg.Vortex.RangeSpeed,
	}
}
