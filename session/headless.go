package session

import (
	"fmt"
	"time"

	"github.com/pthm-cable/particlefield/config"
	"github.com/pthm-cable/particlefield/field"
	"github.com/pthm-cable/particlefield/renderer"
	"github.com/pthm-cable/particlefield/viewport"
)

// FieldNames returns the presets to run: only, when set, else every preset.
func FieldNames(cfg *config.Config, only string) ([]string, error) {
	if only != "" {
		if _, err := cfg.Field(only); err != nil {
			return nil, err
		}
		return []string{only}, nil
	}
	names := make([]string, 0, len(cfg.Fields))
	for _, f := range cfg.Fields {
		names = append(names, f.Name)
	}
	return names, nil
}

// Seed resolves a seed flag, 0 meaning time-based.
func Seed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// Headless runs fields into off-screen recorders, one frame per Step.
type Headless struct {
	fields    []*field.Field
	recorders []*renderer.Recorder
	frames    *field.FrameQueue
	telemetry *Telemetry
	ticks     int64
}

// NewHeadless creates and starts the named fields on recorders sized by the
// configured window and layout.
func NewHeadless(cfg *config.Config, names []string, opts Options) (*Headless, error) {
	tel, err := NewTelemetry(cfg, opts)
	if err != nil {
		return nil, err
	}
	h := &Headless{
		frames:    &field.FrameQueue{},
		telemetry: tel,
	}

	seed := Seed(opts.Seed)
	winW, winH := float64(cfg.Screen.Width), float64(cfg.Screen.Height)
	for i, name := range names {
		fc, err := cfg.Field(name)
		if err != nil {
			h.Close()
			return nil, err
		}
		rect := viewport.FromConfig(cfg.LayoutFor(name)).Resolve(winW, winH)
		rec := renderer.NewRecorder(rect.W, rect.H)

		fieldOpts := append([]field.Option{
			field.WithSeed(seed + int64(i)),
			field.WithLogger(opts.logger()),
			field.WithDeviceWidth(func() float64 { return winW }),
		}, tel.Track(name)...)

		f, err := field.Create(rec, h.frames, fc, fieldOpts...)
		if err != nil {
			h.Close()
			return nil, fmt.Errorf("creating field %q: %w", name, err)
		}
		f.Start()
		h.fields = append(h.fields, f)
		h.recorders = append(h.recorders, rec)
	}
	return h, nil
}

// Step runs one refresh of every field and flushes telemetry.
func (h *Headless) Step() {
	h.frames.Flush()
	h.ticks++
	h.telemetry.Flush()
}

// Ticks returns the number of refreshes run.
func (h *Headless) Ticks() int64 {
	return h.ticks
}

// Fields returns the running fields.
func (h *Headless) Fields() []*field.Field {
	return h.fields
}

// Recorder returns the surface of the i-th field.
func (h *Headless) Recorder(i int) *renderer.Recorder {
	return h.recorders[i]
}

// Telemetry returns the run's telemetry.
func (h *Headless) Telemetry() *Telemetry {
	return h.telemetry
}

// Close tears down every field and closes output.
func (h *Headless) Close() error {
	for _, f := range h.fields {
		f.Close()
	}
	return h.telemetry.Close()
}
