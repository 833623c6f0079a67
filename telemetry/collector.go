package telemetry

// FrameCollector accumulates per-frame graph sizes for one field and
// summarizes them every window.
type FrameCollector struct {
	field      string
	windowSize int64

	windowStart int64
	frames      int64

	edges        []float64
	pointEdges   []float64
	interactions int
	particles    int
}

// NewFrameCollector creates a collector that flushes every windowSize frames.
func NewFrameCollector(field string, windowSize int) *FrameCollector {
	if windowSize < 1 {
		windowSize = 1
	}
	return &FrameCollector{
		field:      field,
		windowSize: int64(windowSize),
		edges:      make([]float64, 0, windowSize),
		pointEdges: make([]float64, 0, windowSize),
	}
}

// Field returns the name of the field this collector observes.
func (c *FrameCollector) Field() string {
	return c.field
}

// RecordFrame records one completed frame cycle.
func (c *FrameCollector) RecordFrame(particles, edges, pointEdges int, pointPresent bool) {
	c.frames++
	c.particles = particles
	c.edges = append(c.edges, float64(edges))
	c.pointEdges = append(c.pointEdges, float64(pointEdges))
	if pointPresent {
		c.interactions++
	}
}

// Frames returns the total number of frames recorded.
func (c *FrameCollector) Frames() int64 {
	return c.frames
}

// ShouldFlush reports whether a full window has been recorded.
func (c *FrameCollector) ShouldFlush() bool {
	return int64(len(c.edges)) >= c.windowSize
}

// Flush summarizes the current window and starts a new one.
func (c *FrameCollector) Flush() WindowStats {
	n := len(c.edges)
	s := WindowStats{
		Field:             c.field,
		WindowStartFrame:  c.windowStart,
		WindowEndFrame:    c.frames,
		Frames:            n,
		Particles:         c.particles,
		InteractionFrames: c.interactions,
	}

	s.EdgesMean, s.EdgesStd, s.EdgesP50, s.EdgesP90, s.EdgesMax = ComputeCountStats(c.edges)
	s.PointEdgesMean, _, _, _, s.PointEdgesMax = ComputeCountStats(c.pointEdges)
	if n > 0 {
		s.InteractionRate = float64(c.interactions) / float64(n)
	}

	c.windowStart = c.frames
	c.edges = c.edges[:0]
	c.pointEdges = c.pointEdges[:0]
	c.interactions = 0

	return s
}
