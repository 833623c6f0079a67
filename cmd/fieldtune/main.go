package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/particlefield/config"
)

// EvalRow is one line of the optimization log.
type EvalRow struct {
	Eval                  int     `csv:"eval"`
	Fitness               float64 `csv:"fitness"`
	Degree                float64 `csv:"degree"`
	Flicker               float64 `csv:"flicker"`
	MaxConnectionDistance float64 `csv:"max_connection_distance"`
	BaseSpeed             float64 `csv:"base_speed"`
	Count                 float64 `csv:"count"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	fieldName := flag.String("field", "hero", "Field preset to tune")
	ticks := flag.Int("ticks", 600, "Frames per run")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 60, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	targetDegree := flag.Float64("target-degree", 2.0, "Desired mean edges per particle")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseField, err := baseCfg.Field(*fieldName)
	if err != nil {
		log.Fatal(err)
	}

	params := NewParamVector(baseField)

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, *fieldName, *configPath, *ticks, evalSeeds, *targetDegree)

	dim := params.Dim()
	initX := params.Normalize(params.DefaultVector())

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return evaluator.Evaluate(params.Denormalize(x))
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation; seeds already run in parallel
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	// Wrap the function to log evaluations
	originalFunc := problem.Func
	problem.Func = func(x []float64) float64 {
		fitness := originalFunc(x)
		evalCount++

		clamped := params.Clamp(params.Denormalize(x))
		if fitness < bestFitness {
			bestFitness = fitness
			bestParams = clamped
		}

		score := evaluator.Last()
		row := []EvalRow{{
			Eval:                  evalCount,
			Fitness:               fitness,
			Degree:                score.Degree,
			Flicker:               score.Flicker,
			MaxConnectionDistance: clamped[0],
			BaseSpeed:             clamped[1],
			Count:                 clamped[2],
		}}
		write := gocsv.MarshalWithoutHeaders
		if evalCount == 1 {
			write = gocsv.Marshal
		}
		if err := write(row, logFile); err != nil {
			log.Printf("failed to write log row: %v", err)
		}

		elapsed := time.Since(startTime)
		avgPerEval := elapsed / time.Duration(evalCount)
		remaining := time.Duration(*maxEvals-evalCount) * avgPerEval

		fmt.Printf("Eval %d/%d: degree=%.2f flicker=%.3f fitness=%.4f (best=%.4f) | elapsed: %s, ETA: %s\n",
			evalCount, *maxEvals, score.Degree, score.Flicker, fitness, bestFitness,
			formatDuration(elapsed), formatDuration(remaining))

		return fitness
	}

	fmt.Printf("Starting CMA-ES tuning of %q with %d parameters, population=%d, max_evals=%d\n",
		*fieldName, dim, popSize, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, frames per run: %d, target degree: %.2f\n", *seeds, *ticks, *targetDegree)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	// Use best params found (may be from any evaluation, not just final)
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluation completed")
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.4f\n", bestFitness)

	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.4f\n", spec.Name, bestParams[i])
	}

	params.ApplyToField(baseField, bestParams)
	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := baseCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
