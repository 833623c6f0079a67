// Package field runs animated particle fields on host drawing surfaces.
package field

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/particlefield/config"
	"github.com/pthm-cable/particlefield/renderer"
	"github.com/pthm-cable/particlefield/systems"
	"github.com/pthm-cable/particlefield/telemetry"
)

// ErrConfiguration is returned by Create for missing or invalid inputs.
var ErrConfiguration = errors.New("field: configuration error")

// Field is one particle field bound to a surface.
// All methods must be called from the host's event goroutine.
type Field struct {
	cfg     config.FieldConfig
	surface renderer.Surface
	sched   *Scheduler
	pop     *systems.Population
	rng     *rand.Rand
	logger  *slog.Logger

	seed   int64
	seeded bool

	bounds    systems.Bounds
	point     systems.InteractionPoint
	particles []systems.Particle
	graph     systems.Graph

	perf        *telemetry.PerfCollector
	collector   *telemetry.FrameCollector
	deviceWidth func() float64

	wantRunning bool // host asked for animation
	suspended   bool // surface has no area
	paused      bool // host window hidden
	closed      bool
	frames      int64
}

// Create binds a new field to surface. The loop is not started.
// cfg is copied and optional knobs left at zero take their defaults;
// later changes to cfg have no effect.
func Create(surface renderer.Surface, frames FrameSource, cfg *config.FieldConfig, opts ...Option) (*Field, error) {
	switch {
	case surface == nil:
		return nil, fmt.Errorf("%w: nil surface", ErrConfiguration)
	case frames == nil:
		return nil, fmt.Errorf("%w: nil frame source", ErrConfiguration)
	case cfg == nil:
		return nil, fmt.Errorf("%w: nil field config", ErrConfiguration)
	}
	fc := *cfg
	fc.ApplyDefaults()
	if err := fc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	f := &Field{
		cfg:     fc,
		surface: surface,
		pop:     systems.NewPopulation(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if !f.seeded {
		f.seed = time.Now().UnixNano()
	}
	f.rng = rand.New(rand.NewSource(f.seed))
	f.logger = f.logger.With("field", f.cfg.Name)
	f.sched = NewScheduler(frames, f.cycle)

	f.resample()
	f.logger.Info("field created",
		"width", f.bounds.W,
		"height", f.bounds.H,
		"particles", f.pop.Len(),
		"seed", f.seed,
	)
	return f, nil
}

// Name returns the preset name.
func (f *Field) Name() string {
	return f.cfg.Name
}

// Config returns a copy of the field's configuration.
func (f *Field) Config() config.FieldConfig {
	return f.cfg
}

// Start begins animating. No-op while running.
// A field over a zero-area surface stays idle until a resize gives it area.
func (f *Field) Start() {
	if f.closed {
		return
	}
	f.wantRunning = true
	if f.suspended || f.paused {
		return
	}
	f.sched.Start()
}

// Stop halts animation. No-op while stopped.
func (f *Field) Stop() {
	f.wantRunning = false
	f.sched.Stop()
}

// Pause halts animation without clearing the host's request to run.
func (f *Field) Pause() {
	f.paused = true
	f.sched.Stop()
}

// Resume lifts a Pause. The loop restarts only if the host had started the
// field and the surface has area.
func (f *Field) Resume() {
	f.paused = false
	if f.closed || !f.wantRunning || f.suspended {
		return
	}
	f.sched.Start()
}

// Wanted reports whether the host has started the field and not stopped it.
func (f *Field) Wanted() bool {
	return f.wantRunning && !f.closed
}

// Running reports whether a frame cycle is scheduled.
func (f *Field) Running() bool {
	return f.sched.Running()
}

// OnResize resamples the surface and regenerates the population.
// The loop is restarted if the host had started it.
func (f *Field) OnResize() {
	if f.closed {
		return
	}
	f.sched.Stop()
	f.resample()
	f.logger.Debug("field resized",
		"width", f.bounds.W,
		"height", f.bounds.H,
		"particles", f.pop.Len(),
	)
	if f.wantRunning && !f.suspended && !f.paused {
		f.sched.Start()
	}
}

// Reseed regenerates the population at the current size.
func (f *Field) Reseed() {
	if f.closed || f.suspended {
		return
	}
	f.populate()
}

// SetInteractionPoint updates the pointer position. It takes effect on the
// next frame cycle.
func (f *Field) SetInteractionPoint(pt systems.InteractionPoint) {
	f.point = pt
}

// InteractionPoint returns the pending interaction point.
func (f *Field) InteractionPoint() systems.InteractionPoint {
	return f.point
}

// Close stops the field and discards its population.
func (f *Field) Close() {
	if f.closed {
		return
	}
	f.Stop()
	f.pop.Clear()
	f.particles = f.particles[:0]
	f.graph.Reset()
	f.point = systems.Absent
	f.closed = true
	f.logger.Info("field closed", "frames", f.frames)
}

// Closed reports whether Close was called.
func (f *Field) Closed() bool {
	return f.closed
}

// Bounds returns the last sampled surface extent.
func (f *Field) Bounds() systems.Bounds {
	return f.bounds
}

// Len returns the current population size.
func (f *Field) Len() int {
	return f.pop.Len()
}

// Frames returns the number of completed frame cycles.
func (f *Field) Frames() int64 {
	return f.frames
}

// Particles returns a copy of the latest particle snapshot.
func (f *Field) Particles() []systems.Particle {
	out := make([]systems.Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Graph returns the graph built by the latest frame cycle.
// The returned value shares storage with the field and is overwritten by the next cycle.
func (f *Field) Graph() *systems.Graph {
	return &f.graph
}

// resample reads the surface size and rebuilds the population for it.
func (f *Field) resample() {
	w, h := f.surface.Size()
	f.bounds = systems.Bounds{W: w, H: h}
	if f.bounds.Empty() {
		if !f.suspended {
			f.logger.Warn("surface has no area, field suspended", "width", w, "height", h)
		}
		f.suspended = true
		f.pop.Clear()
		f.particles = f.particles[:0]
		f.graph.Reset()
		return
	}
	f.suspended = false
	f.populate()
}

func (f *Field) populate() {
	width := f.bounds.W
	if f.deviceWidth != nil {
		width = f.deviceWidth()
	}
	n := f.cfg.PopulationFor(width)
	f.pop.Regenerate(n, &f.cfg, f.bounds, f.rng)
	f.particles = f.pop.Snapshot(f.particles)
	f.graph.Reset()
}

// cycle runs one step, build and render pass.
func (f *Field) cycle() {
	// Updates arriving during the cycle wait for the next one
	pt := f.point

	if f.perf != nil {
		f.perf.StartTick()
		f.perf.StartPhase(telemetry.PhaseStep)
	}
	f.particles = f.pop.Step(&f.cfg, pt, f.bounds, f.particles)

	if f.perf != nil {
		f.perf.StartPhase(telemetry.PhaseGraph)
	}
	systems.BuildGraph(&f.graph, f.particles, &f.cfg, pt)

	if f.perf != nil {
		f.perf.StartPhase(telemetry.PhaseRender)
	}
	renderer.Draw(f.surface, f.particles, &f.graph, &f.cfg)

	if f.perf != nil {
		f.perf.EndTick()
	}
	f.frames++
	if f.collector != nil {
		f.collector.RecordFrame(len(f.particles), len(f.graph.Edges), len(f.graph.PointEdges), pt.Valid)
	}
}
