package main

import (
	"log/slog"
	"math"
	"sync"

	"github.com/pthm-cable/particlefield/config"
	"github.com/pthm-cable/particlefield/session"
	"github.com/pthm-cable/particlefield/telemetry"
)

// Weight of edge-count flicker relative to the density error.
const flickerWeight = 0.5

// FitnessEvaluator runs headless fields and scores their graphs.
type FitnessEvaluator struct {
	params       *ParamVector
	fieldName    string
	ticks        int
	seeds        []int64
	configPath   string
	targetDegree float64

	mu   sync.Mutex
	last Score
}

// Score is the outcome of one evaluation averaged over seeds.
type Score struct {
	Fitness float64
	Degree  float64 // mean edges per particle
	Flicker float64 // coefficient of variation of the edge count
}

// NewFitnessEvaluator creates a new evaluator. Each run reloads configPath
// so concurrent seeds never share a config.
func NewFitnessEvaluator(params *ParamVector, fieldName, configPath string, ticks int, seeds []int64, targetDegree float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:       params,
		fieldName:    fieldName,
		ticks:        ticks,
		seeds:        seeds,
		configPath:   configPath,
		targetDegree: targetDegree,
	}
}

// Last returns the score of the most recent evaluation.
func (fe *FitnessEvaluator) Last() Score {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]Score, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSeed(x, s)
		}(i, seed)
	}
	wg.Wait()

	var avg Score
	for _, r := range results {
		avg.Fitness += r.Fitness
		avg.Degree += r.Degree
		avg.Flicker += r.Flicker
	}
	n := float64(len(results))
	avg.Fitness /= n
	avg.Degree /= n
	avg.Flicker /= n

	fe.mu.Lock()
	fe.last = avg
	fe.mu.Unlock()

	return avg.Fitness
}

// runSeed runs one headless field and scores its windows.
func (fe *FitnessEvaluator) runSeed(x []float64, seed int64) Score {
	cfg, err := config.Load(fe.configPath)
	if err != nil {
		return Score{Fitness: math.Inf(1)}
	}
	fc, err := cfg.Field(fe.fieldName)
	if err != nil {
		return Score{Fitness: math.Inf(1)}
	}
	fe.params.ApplyToField(fc, x)

	h, err := session.NewHeadless(cfg, []string{fe.fieldName}, session.Options{
		Seed:   seed,
		Logger: slog.New(slog.DiscardHandler),
	})
	if err != nil {
		return Score{Fitness: math.Inf(1)}
	}
	defer h.Close()

	var windows []telemetry.WindowStats
	h.Telemetry().SetStatsCallback(func(s telemetry.WindowStats) {
		windows = append(windows, s)
	})
	for i := 0; i < fe.ticks; i++ {
		h.Step()
	}

	return scoreWindows(windows, fe.targetDegree)
}

// scoreWindows turns flushed stats into a score. No windows scores as a
// graph with no edges at all.
func scoreWindows(windows []telemetry.WindowStats, targetDegree float64) Score {
	var s Score
	if len(windows) == 0 {
		s.Flicker = 1
		s.Fitness = targetDegree*targetDegree + flickerWeight
		return s
	}

	for _, w := range windows {
		if w.Particles > 0 {
			// Every edge touches two particles
			s.Degree += 2 * w.EdgesMean / float64(w.Particles)
		}
		if w.EdgesMean > 0 {
			s.Flicker += w.EdgesStd / w.EdgesMean
		} else {
			s.Flicker++
		}
	}
	n := float64(len(windows))
	s.Degree /= n
	s.Flicker /= n

	d := s.Degree - targetDegree
	s.Fitness = d*d + flickerWeight*s.Flicker*s.Flicker
	return s
}
