// Package session wires fields, telemetry and output for a run.
package session

import (
	"log/slog"

	"github.com/pthm-cable/particlefield/config"
	"github.com/pthm-cable/particlefield/field"
	"github.com/pthm-cable/particlefield/telemetry"
)

// Options configures a run.
type Options struct {
	Seed      int64 // 0 = time-based
	LogStats  bool
	OutputDir string
	Logger    *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// monitor holds the collectors of one field.
type monitor struct {
	name   string
	perf   *telemetry.PerfCollector
	frames *telemetry.FrameCollector
}

// Telemetry collects per-field frame stats and timings and flushes them
// to the log and the output directory every stats window.
type Telemetry struct {
	monitors    []*monitor
	output      *telemetry.OutputManager
	statsWindow int
	perfWindow  int
	logStats    bool
	logger      *slog.Logger

	statsCallback func(telemetry.WindowStats)
}

// NewTelemetry opens the output directory, if any, and saves cfg into it.
func NewTelemetry(cfg *config.Config, opts Options) (*Telemetry, error) {
	out, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := out.WriteConfig(cfg); err != nil {
		out.Close()
		return nil, err
	}
	return &Telemetry{
		output:      out,
		statsWindow: cfg.Telemetry.StatsWindow,
		perfWindow:  cfg.Telemetry.PerfCollectorWindow,
		logStats:    opts.LogStats,
		logger:      opts.logger(),
	}, nil
}

// SetStatsCallback registers fn to receive every flushed window.
func (t *Telemetry) SetStatsCallback(fn func(telemetry.WindowStats)) {
	t.statsCallback = fn
}

// Track registers a field and returns the options that attach its collectors.
func (t *Telemetry) Track(name string) []field.Option {
	m := &monitor{
		name:   name,
		perf:   telemetry.NewPerfCollector(t.perfWindow),
		frames: telemetry.NewFrameCollector(name, t.statsWindow),
	}
	t.monitors = append(t.monitors, m)
	return []field.Option{field.WithPerf(m.perf), field.WithFrameCollector(m.frames)}
}

// Flush writes out every field whose stats window is complete.
func (t *Telemetry) Flush() {
	for _, m := range t.monitors {
		if !m.frames.ShouldFlush() {
			continue
		}

		stats := m.frames.Flush()
		perfStats := m.perf.Stats()

		if t.statsCallback != nil {
			t.statsCallback(stats)
		}

		if t.logStats {
			stats.LogStats(t.logger)
			t.logger.Info("perf", "field", m.name, "timing", perfStats)
		}

		if err := t.output.WriteFrames(stats); err != nil {
			t.logger.Error("failed to write frames", "error", err)
		}
		if err := t.output.WritePerf(m.name, perfStats, stats.WindowEndFrame); err != nil {
			t.logger.Error("failed to write perf", "error", err)
		}
	}
}

// PerfStats returns the rolling timings of each tracked field.
func (t *Telemetry) PerfStats() (names []string, stats []telemetry.PerfStats) {
	for _, m := range t.monitors {
		names = append(names, m.name)
		stats = append(stats, m.perf.Stats())
	}
	return names, stats
}

// Dir returns the output directory, or "" when output is disabled.
func (t *Telemetry) Dir() string {
	return t.output.Dir()
}

// Close flushes and closes output files.
func (t *Telemetry) Close() error {
	return t.output.Close()
}
