package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeCountStats(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	mean, std, p50, p90, max := ComputeCountStats(values)

	if math.Abs(mean-5) > 0.001 {
		t.Errorf("mean = %v, want 5", mean)
	}
	// Population standard deviation of this set is exactly 2
	if math.Abs(std-2) > 0.001 {
		t.Errorf("std = %v, want 2", std)
	}
	if math.Abs(p50-4.5) > 0.001 {
		t.Errorf("p50 = %v, want 4.5", p50)
	}
	if math.Abs(p90-7.6) > 0.001 {
		t.Errorf("p90 = %v, want 7.6", p90)
	}
	if max != 9 {
		t.Errorf("max = %v, want 9", max)
	}
}

func TestComputeCountStatsDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeCountStats(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}

func TestComputeCountStatsEmpty(t *testing.T) {
	mean, std, p50, p90, max := ComputeCountStats(nil)

	if mean != 0 || std != 0 || p50 != 0 || p90 != 0 || max != 0 {
		t.Error("empty slice should return all zeros")
	}
}
