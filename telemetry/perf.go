package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Phase is one stage of a field frame cycle.
type Phase int

const (
	PhaseStep Phase = iota
	PhaseGraph
	PhaseRender

	numPhases
)

// Phases lists the cycle phases in execution order.
var Phases = [numPhases]Phase{PhaseStep, PhaseGraph, PhaseRender}

var phaseNames = [numPhases]string{"step", "graph", "render"}

func (p Phase) String() string {
	if p < 0 || p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

type cycleSample struct {
	total  time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector times frame cycles over a rolling window.
type PerfCollector struct {
	samples []cycleSample
	next    int
	count   int

	cur        cycleSample
	cycleStart time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize cycles.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		samples: make([]cycleSample, windowSize),
		now:     time.Now,
	}
}

// StartTick begins timing a cycle.
func (p *PerfCollector) StartTick() {
	p.cur = cycleSample{}
	p.cycleStart = p.now()
	p.inPhase = false
}

// StartPhase ends the running phase, if any, and starts timing ph.
func (p *PerfCollector) StartPhase(ph Phase) {
	t := p.now()
	p.endPhase(t)
	p.phase = ph
	p.phaseStart = t
	p.inPhase = true
}

// EndTick finishes the cycle and records it.
func (p *PerfCollector) EndTick() {
	t := p.now()
	p.endPhase(t)
	p.cur.total = t.Sub(p.cycleStart)

	p.samples[p.next] = p.cur
	p.next = (p.next + 1) % len(p.samples)
	if p.count < len(p.samples) {
		p.count++
	}
}

func (p *PerfCollector) endPhase(t time.Time) {
	if p.inPhase && p.phase >= 0 && p.phase < numPhases {
		p.cur.phases[p.phase] += t.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// PerfStats summarizes the cycles in the window. Phase arrays are indexed
// by Phase.
type PerfStats struct {
	Samples      int
	AvgCycle     time.Duration
	MinCycle     time.Duration
	MaxCycle     time.Duration
	CyclesPerSec float64
	PhaseAvg     [numPhases]time.Duration
	PhasePct     [numPhases]float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p.count == 0 {
		return PerfStats{}
	}

	totals := make([]float64, p.count)
	phases := make([]float64, p.count)
	for i := range totals {
		totals[i] = float64(p.samples[i].total)
	}

	avg := stat.Mean(totals, nil)
	s := PerfStats{
		Samples:  p.count,
		AvgCycle: time.Duration(avg),
		MinCycle: time.Duration(floats.Min(totals)),
		MaxCycle: time.Duration(floats.Max(totals)),
	}
	if avg > 0 {
		s.CyclesPerSec = float64(time.Second) / avg
	}

	for _, ph := range Phases {
		for i := range phases {
			phases[i] = float64(p.samples[i].phases[ph])
		}
		mean := stat.Mean(phases, nil)
		s.PhaseAvg[ph] = time.Duration(mean)
		if avg > 0 {
			s.PhasePct[ph] = mean / avg * 100
		}
	}
	return s
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("samples", s.Samples),
		slog.Int64("avg_cycle_us", s.AvgCycle.Microseconds()),
		slog.Int64("min_cycle_us", s.MinCycle.Microseconds()),
		slog.Int64("max_cycle_us", s.MaxCycle.Microseconds()),
		slog.Int("cycles_per_sec", int(s.CyclesPerSec)),
	}
	for _, ph := range Phases {
		attrs = append(attrs, slog.Float64(ph.String()+"_pct", float64(int(s.PhasePct[ph]*10))/10))
	}
	return slog.GroupValue(attrs...)
}

// PerfRow is one perf.csv record.
type PerfRow struct {
	Field        string  `csv:"field"`
	WindowEnd    int64   `csv:"window_end"`
	Samples      int     `csv:"samples"`
	AvgCycleUS   int64   `csv:"avg_cycle_us"`
	MinCycleUS   int64   `csv:"min_cycle_us"`
	MaxCycleUS   int64   `csv:"max_cycle_us"`
	CyclesPerSec float64 `csv:"cycles_per_sec"`
	StepPct      float64 `csv:"step_pct"`
	GraphPct     float64 `csv:"graph_pct"`
	RenderPct    float64 `csv:"render_pct"`
}

// Row flattens the stats for CSV output.
func (s PerfStats) Row(field string, windowEnd int64) PerfRow {
	return PerfRow{
		Field:        field,
		WindowEnd:    windowEnd,
		Samples:      s.Samples,
		AvgCycleUS:   s.AvgCycle.Microseconds(),
		MinCycleUS:   s.MinCycle.Microseconds(),
		MaxCycleUS:   s.MaxCycle.Microseconds(),
		CyclesPerSec: s.CyclesPerSec,
		StepPct:      s.PhasePct[PhaseStep],
		GraphPct:     s.PhasePct[PhaseGraph],
		RenderPct:    s.PhasePct[PhaseRender],
	}
}
