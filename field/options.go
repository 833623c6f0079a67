package field

import (
	"log/slog"

	"github.com/pthm-cable/particlefield/telemetry"
)

// Option configures a Field at creation.
type Option func(*Field)

// WithSeed makes population seeding reproducible.
func WithSeed(seed int64) Option {
	return func(f *Field) {
		f.seed = seed
		f.seeded = true
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(f *Field) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithPerf times each frame cycle into p.
func WithPerf(p *telemetry.PerfCollector) Option {
	return func(f *Field) {
		f.perf = p
	}
}

// WithFrameCollector records graph sizes of every frame into c.
func WithFrameCollector(c *telemetry.FrameCollector) Option {
	return func(f *Field) {
		f.collector = c
	}
}

// WithDeviceWidth overrides the width used for the population breakpoint.
// By default the surface width is used.
func WithDeviceWidth(fn func() float64) Option {
	return func(f *Field) {
		f.deviceWidth = fn
	}
}
