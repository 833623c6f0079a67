package telemetry

import (
	"math"
	"testing"
	"time"
)

// stepClock advances by a fixed amount on every reading.
type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func newTestCollector(window int, step time.Duration) *PerfCollector {
	pc := NewPerfCollector(window)
	clk := &stepClock{t: time.Unix(0, 0), step: step}
	pc.now = clk.now
	return pc
}

func TestPerfCollectorPhases(t *testing.T) {
	pc := newTestCollector(10, 10*time.Microsecond)

	// Readings: start, step, graph, render, end -> 40us cycle, 10us per phase
	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseStep)
		pc.StartPhase(PhaseGraph)
		pc.StartPhase(PhaseRender)
		pc.EndTick()
	}

	s := pc.Stats()
	if s.Samples != 5 {
		t.Errorf("Samples = %d, want 5", s.Samples)
	}
	if s.AvgCycle != 40*time.Microsecond {
		t.Errorf("AvgCycle = %v, want 40us", s.AvgCycle)
	}
	if s.CyclesPerSec != 25000 {
		t.Errorf("CyclesPerSec = %v, want 25000", s.CyclesPerSec)
	}
	for _, ph := range Phases {
		if s.PhaseAvg[ph] != 10*time.Microsecond {
			t.Errorf("%s avg = %v, want 10us", ph, s.PhaseAvg[ph])
		}
		if math.Abs(s.PhasePct[ph]-25) > 1e-9 {
			t.Errorf("%s pct = %v, want 25", ph, s.PhasePct[ph])
		}
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	pc := newTestCollector(3, time.Microsecond)

	// Single-phase cycles of 2us
	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseStep)
		pc.EndTick()
	}

	s := pc.Stats()
	if s.Samples != 3 {
		t.Errorf("Samples = %d, want window size 3", s.Samples)
	}
	if s.MinCycle != 2*time.Microsecond || s.MaxCycle != 2*time.Microsecond {
		t.Errorf("cycle range = [%v, %v], want 2us", s.MinCycle, s.MaxCycle)
	}
	if s.PhaseAvg[PhaseGraph] != 0 {
		t.Errorf("graph phase recorded %v without being started", s.PhaseAvg[PhaseGraph])
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	s := NewPerfCollector(0).Stats()
	if s.Samples != 0 || s.AvgCycle != 0 || s.CyclesPerSec != 0 {
		t.Errorf("empty stats = %+v", s)
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseStep, "step"},
		{PhaseGraph, "graph"},
		{PhaseRender, "render"},
		{Phase(7), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestPerfStatsRow(t *testing.T) {
	var s PerfStats
	s.Samples = 60
	s.AvgCycle = 250 * time.Microsecond
	s.PhasePct[PhaseStep] = 40
	s.PhasePct[PhaseGraph] = 50
	s.PhasePct[PhaseRender] = 10

	row := s.Row("hero", 120)
	if row.Field != "hero" || row.WindowEnd != 120 || row.Samples != 60 {
		t.Errorf("unexpected identity columns: %+v", row)
	}
	if row.AvgCycleUS != 250 {
		t.Errorf("AvgCycleUS = %d, want 250", row.AvgCycleUS)
	}
	if row.StepPct != 40 || row.GraphPct != 50 || row.RenderPct != 10 {
		t.Errorf("phase percentages not mapped: %+v", row)
	}
}
