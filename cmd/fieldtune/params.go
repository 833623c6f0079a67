// Package main tunes a field preset with CMA-ES so its proximity graph
// settles at a target density.
package main

import (
	"math"

	"github.com/pthm-cable/particlefield/config"
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

// NewParamVector creates the standard parameter set, with defaults taken
// from the preset being tuned.
func NewParamVector(fc *config.FieldConfig) *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "max_connection_distance", Path: "fields.max_connection_distance", Min: 40, Max: 300, Default: fc.MaxConnectionDistance},
			{Name: "base_speed", Path: "fields.base_speed", Min: 0.05, Max: 1.5, Default: fc.BaseSpeed},
			{Name: "count", Path: "fields.count", Min: 10, Max: 200, Default: float64(fc.Count)},
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
		clamped[i] = math.Min(spec.Max, math.Max(spec.Min, v[i]))
	}
	return clamped
}

// ApplyToField applies parameter values to a preset.
// Order must match Specs order.
func (pv *ParamVector) ApplyToField(fc *config.FieldConfig, values []float64) {
	clamped := pv.Clamp(values)
	fc.MaxConnectionDistance = clamped[0]
	fc.BaseSpeed = clamped[1]
	fc.Count = int(math.Round(clamped[2]))
}
