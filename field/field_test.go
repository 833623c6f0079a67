package field

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/particlefield/config"
	"github.com/pthm-cable/particlefield/renderer"
	"github.com/pthm-cable/particlefield/systems"
)

func heroConfig(t *testing.T) *config.FieldConfig {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	fc, err := cfg.Field("hero")
	if err != nil {
		t.Fatalf("hero preset: %v", err)
	}
	return fc
}

func newTestField(t *testing.T, w, h float64, opts ...Option) (*Field, *renderer.Recorder, *FrameQueue) {
	t.Helper()
	rec := renderer.NewRecorder(w, h)
	q := &FrameQueue{}
	opts = append([]Option{WithSeed(1)}, opts...)
	f, err := Create(rec, q, heroConfig(t), opts...)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return f, rec, q
}

func TestCreateRejectsMissingInputs(t *testing.T) {
	valid := heroConfig(t)
	invalid := *valid
	invalid.Count = 0
	rec := renderer.NewRecorder(100, 100)
	q := &FrameQueue{}

	tests := []struct {
		name    string
		surface renderer.Surface
		frames  FrameSource
		cfg     *config.FieldConfig
		invalid bool
	}{
		{"nil surface", nil, q, valid, false},
		{"nil frame source", rec, nil, valid, false},
		{"nil config", rec, q, nil, false},
		{"invalid config", rec, q, &invalid, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Create(tt.surface, tt.frames, tt.cfg)
			if f != nil {
				t.Error("expected no field on error")
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("err = %v, want ErrConfiguration", err)
			}
			if tt.invalid && !errors.Is(err, config.ErrInvalidField) {
				t.Errorf("err = %v, want wrapped ErrInvalidField", err)
			}
		})
	}
}

func TestCreateFillsDefaults(t *testing.T) {
	cfg := &config.FieldConfig{
		Name:                  "bare",
		Count:                 10,
		MaxConnectionDistance: 100,
		InteractionRadius:     50,
		MinRadius:             1,
		MaxRadius:             2,
		BaseSpeed:             0.5,
	}
	rec := renderer.NewRecorder(800, 600)
	f, err := Create(rec, &FrameQueue{}, cfg, WithSeed(1))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got := f.Config()
	if got.MaxOpacity != 0.7 || got.MinOpacity != 0.2 {
		t.Errorf("opacity range = [%v, %v], want [0.2, 0.7]", got.MinOpacity, got.MaxOpacity)
	}
	if got.EdgeAlpha != 0.25 || got.PointEdgeAlpha != 0.5 {
		t.Errorf("edge alphas = %v, %v, want 0.25, 0.5", got.EdgeAlpha, got.PointEdgeAlpha)
	}
	if f.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", f.Len())
	}
	for _, p := range f.Particles() {
		if p.Opacity < 0.2 || p.Opacity > 0.7 {
			t.Fatalf("particle opacity %v outside [0.2, 0.7]", p.Opacity)
		}
	}
	if cfg.MaxOpacity != 0 {
		t.Error("Create modified the caller's config")
	}
}

func TestCreateDoesNotStart(t *testing.T) {
	f, rec, q := newTestField(t, 1280, 720)

	if f.Running() {
		t.Error("field running after Create")
	}
	if q.Len() != 0 {
		t.Errorf("Create requested %d frames", q.Len())
	}
	if f.Len() != 60 {
		t.Errorf("population = %d, want 60", f.Len())
	}
	if rec.Frames != 0 {
		t.Errorf("Create drew %d frames", rec.Frames)
	}
	if f.Name() != "hero" {
		t.Errorf("Name() = %q", f.Name())
	}
}

func TestCreateCopiesConfig(t *testing.T) {
	cfg := heroConfig(t)
	f, err := Create(renderer.NewRecorder(1280, 720), &FrameQueue{}, cfg, WithSeed(1))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	cfg.Count = 1
	f.OnResize()
	if f.Len() != 60 {
		t.Errorf("caller mutation leaked into field: population = %d", f.Len())
	}
}

func TestStartIsIdempotent(t *testing.T) {
	f, _, q := newTestField(t, 800, 600)

	f.Start()
	f.Start()
	if q.Len() != 1 {
		t.Errorf("pending frames = %d, want 1", q.Len())
	}
	if !f.Running() {
		t.Error("expected running")
	}
}

func TestStopCancelsPendingFrame(t *testing.T) {
	f, rec, q := newTestField(t, 800, 600)

	f.Start()
	f.Stop()
	f.Stop()
	q.Flush()

	if rec.Frames != 0 || f.Frames() != 0 {
		t.Errorf("stale frame ran: recorder=%d field=%d", rec.Frames, f.Frames())
	}
	if q.Len() != 0 {
		t.Errorf("stopped field requested %d frames", q.Len())
	}
}

func TestRestartRunsOneCyclePerRefresh(t *testing.T) {
	f, rec, q := newTestField(t, 800, 600)

	// The cancelled callback is still queued alongside the new one
	f.Start()
	f.Stop()
	f.Start()
	if q.Len() != 2 {
		t.Fatalf("pending frames = %d, want 2", q.Len())
	}

	q.Flush()
	if f.Frames() != 1 || rec.Frames != 1 {
		t.Errorf("frames after restart = %d (drawn %d), want 1", f.Frames(), rec.Frames)
	}
	if q.Len() != 1 {
		t.Errorf("pending frames = %d, want 1", q.Len())
	}

	for i := 0; i < 4; i++ {
		q.Flush()
	}
	if f.Frames() != 5 {
		t.Errorf("frames = %d, want 5", f.Frames())
	}
}

func TestZeroWidthCreate(t *testing.T) {
	f, rec, q := newTestField(t, 0, 600)

	if f.Len() != 0 {
		t.Errorf("population = %d, want 0", f.Len())
	}
	f.Start()
	if f.Running() {
		t.Error("zero-area field should stay idle")
	}
	q.Flush()
	if rec.Frames != 0 {
		t.Errorf("drew %d frames over zero area", rec.Frames)
	}

	for _, p := range f.Particles() {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Fatal("NaN coordinate")
		}
	}

	// A later resize with area resumes the requested animation
	rec.Resize(800, 600)
	f.OnResize()
	if !f.Running() {
		t.Error("expected running after resize to non-zero area")
	}
	if f.Len() != 60 {
		t.Errorf("population = %d, want 60", f.Len())
	}
}

func TestOnResize(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
		want int
	}{
		{"desktop", 1280, 720, 60},
		{"breakpoint is desktop", 768, 720, 60},
		{"mobile", 500, 800, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, rec, q := newTestField(t, 1024, 768)
			f.Start()

			rec.Resize(tt.w, tt.h)
			f.OnResize()

			if f.Len() != tt.want {
				t.Errorf("population = %d, want %d", f.Len(), tt.want)
			}
			if b := f.Bounds(); b.W != tt.w || b.H != tt.h {
				t.Errorf("bounds = %+v", b)
			}
			for _, p := range f.Particles() {
				if p.X < 0 || p.X > tt.w || p.Y < 0 || p.Y > tt.h {
					t.Fatalf("particle outside new bounds: %+v", p)
				}
			}

			// Only the restarted generation survives
			q.Flush()
			if f.Frames() != 1 {
				t.Errorf("frames = %d, want 1", f.Frames())
			}
		})
	}
}

func TestOnResizeKeepsStoppedFieldStopped(t *testing.T) {
	f, rec, q := newTestField(t, 800, 600)

	rec.Resize(900, 600)
	f.OnResize()
	if f.Running() || q.Len() != 0 {
		t.Error("resize started a field the host never started")
	}
}

func TestOnResizeToZeroArea(t *testing.T) {
	f, rec, q := newTestField(t, 800, 600)
	f.Start()

	rec.Resize(800, 0)
	f.OnResize()
	if f.Running() {
		t.Error("expected stopped")
	}
	if f.Len() != 0 {
		t.Errorf("population = %d, want 0", f.Len())
	}
	q.Flush()
	if f.Frames() != 0 {
		t.Errorf("frames = %d, want 0", f.Frames())
	}
}

func TestDeviceWidthOverride(t *testing.T) {
	f, _, _ := newTestField(t, 1280, 300, WithDeviceWidth(func() float64 { return 375 }))
	if f.Len() != 30 {
		t.Errorf("population = %d, want 30", f.Len())
	}
}

// hookSurface calls onClear at the start of every frame it draws.
type hookSurface struct {
	*renderer.Recorder
	onClear func()
}

func (s *hookSurface) Clear() {
	s.Recorder.Clear()
	if s.onClear != nil {
		s.onClear()
	}
}

func TestInteractionPointAppliesNextFrame(t *testing.T) {
	surface := &hookSurface{Recorder: renderer.NewRecorder(800, 600)}
	q := &FrameQueue{}
	f, err := Create(surface, q, heroConfig(t), WithSeed(3))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Point arrives while the first frame is being rendered
	surface.onClear = func() {
		f.SetInteractionPoint(systems.At(400, 300))
		surface.onClear = nil
	}
	f.Start()

	q.Flush()
	if f.Graph().Point.Valid {
		t.Error("point became visible during the frame that received it")
	}

	q.Flush()
	if !f.Graph().Point.Valid {
		t.Error("point not visible on the following frame")
	}
}

func TestFieldsAreIndependent(t *testing.T) {
	q := &FrameQueue{}
	recA := renderer.NewRecorder(800, 600)
	recB := renderer.NewRecorder(800, 600)
	a, err := Create(recA, q, heroConfig(t), WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Create(recB, q, heroConfig(t), WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}

	a.SetInteractionPoint(systems.At(10, 10))
	a.Start()
	b.Start()
	for i := 0; i < 10; i++ {
		q.Flush()
	}

	if b.Graph().Point.Valid {
		t.Error("interaction point leaked to the other field")
	}
	if len(b.Graph().PointEdges) != 0 {
		t.Error("other field drew point edges")
	}

	a.Stop()
	q.Flush()
	if a.Frames() != 10 || b.Frames() != 11 {
		t.Errorf("frames = %d/%d, want 10/11", a.Frames(), b.Frames())
	}
}

func TestParticlesReturnsCopy(t *testing.T) {
	f, _, _ := newTestField(t, 800, 600)
	ps := f.Particles()
	ps[0].X = -1000
	if f.Particles()[0].X == -1000 {
		t.Error("Particles exposes internal storage")
	}
}

func TestClose(t *testing.T) {
	f, _, q := newTestField(t, 800, 600)
	f.Start()
	f.Close()

	if f.Running() {
		t.Error("closed field still running")
	}
	if f.Len() != 0 || len(f.Particles()) != 0 {
		t.Error("population not discarded")
	}
	q.Flush()
	if f.Frames() != 0 {
		t.Errorf("closed field ran %d frames", f.Frames())
	}

	f.Start()
	f.OnResize()
	if f.Running() || f.Len() != 0 {
		t.Error("closed field came back to life")
	}
	if !f.Closed() {
		t.Error("Closed() = false")
	}
}
