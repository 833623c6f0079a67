package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one field over a frame window.
type WindowStats struct {
	Field            string `csv:"field"`
	WindowStartFrame int64  `csv:"-"`
	WindowEndFrame   int64  `csv:"window_end"`
	Frames           int    `csv:"frames"`

	// Population at window end
	Particles int `csv:"particles"`

	// Particle edge counts per frame
	EdgesMean float64 `csv:"edges_mean"`
	EdgesStd  float64 `csv:"edges_std"`
	EdgesP50  float64 `csv:"edges_p50"`
	EdgesP90  float64 `csv:"edges_p90"`
	EdgesMax  float64 `csv:"edges_max"`

	// Interaction edges per frame
	PointEdgesMean float64 `csv:"point_edges_mean"`
	PointEdgesMax  float64 `csv:"point_edges_max"`

	// Frames where an interaction point was present
	InteractionFrames int     `csv:"interaction_frames"`
	InteractionRate   float64 `csv:"interaction_rate"`
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

// ComputeCountStats summarizes per-frame counts.
// std is the population standard deviation.
func ComputeCountStats(values []float64) (mean, std, p50, p90, max float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)
	max = floats.Max(sorted)

	return mean, std, p50, p90, max
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("field", s.Field),
		slog.Int64("window_start", s.WindowStartFrame),
		slog.Int64("window_end", s.WindowEndFrame),
		slog.Int("frames", s.Frames),
		slog.Int("particles", s.Particles),
		slog.Float64("edges_mean", s.EdgesMean),
		slog.Float64("edges_std", s.EdgesStd),
		slog.Float64("edges_p50", s.EdgesP50),
		slog.Float64("edges_p90", s.EdgesP90),
		slog.Float64("edges_max", s.EdgesMax),
		slog.Float64("point_edges_mean", s.PointEdgesMean),
		slog.Float64("point_edges_max", s.PointEdgesMax),
		slog.Int("interaction_frames", s.InteractionFrames),
		slog.Float64("interaction_rate", s.InteractionRate),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("stats", "window", s)
}
