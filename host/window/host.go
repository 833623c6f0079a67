package window

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particlefield/config"
	"github.com/pthm-cable/particlefield/field"
	"github.com/pthm-cable/particlefield/renderer"
	"github.com/pthm-cable/particlefield/viewport"
)

// Pane is one field mounted in the window.
type Pane struct {
	Field   *field.Field
	Surface *Surface
	Frames  *field.FrameQueue
	Tracker *field.InputTracker

	layout viewport.Layout
	cfg    config.FieldConfig
}

// Host owns the panes of a raylib window and pumps their input, resize,
// visibility and frame callbacks once per display refresh.
type Host struct {
	panes      []*Pane
	gate       *field.VisibilityGate
	background config.RGB
	logger     *slog.Logger

	width, height int
	mouse         rl.Vector2
	mouseInside   bool
}

// NewHost creates a host for an already opened window.
func NewHost(background config.RGB, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	return &Host{
		gate:       field.NewVisibilityGate(),
		background: background,
		logger:     logger,
		width:      rl.GetScreenWidth(),
		height:     rl.GetScreenHeight(),
	}
}

// Mount creates a field in the window area described by layout.
// Each pane gets its own frame queue so it can be clipped while it draws.
func (h *Host) Mount(fc *config.FieldConfig, layout config.LayoutConfig, opts ...field.Option) (*Pane, error) {
	l := viewport.FromConfig(layout)
	p := &Pane{
		Surface: NewSurface(l.Resolve(float64(h.width), float64(h.height)), h.background),
		Frames:  &field.FrameQueue{},
		layout:  l,
	}

	// The breakpoint looks at the whole window, not the pane
	opts = append([]field.Option{
		field.WithLogger(h.logger),
		field.WithDeviceWidth(func() float64 { return float64(rl.GetScreenWidth()) }),
	}, opts...)

	f, err := field.Create(p.Surface, p.Frames, fc, opts...)
	if err != nil {
		return nil, err
	}
	p.Field = f
	p.cfg = f.Config()
	p.Tracker = field.NewInputTracker(f, p.cfg.ListenScope, p.Surface.Rect)

	h.panes = append(h.panes, p)
	h.gate.Add(f)
	return p, nil
}

// Panes returns the mounted panes in mount order.
func (h *Host) Panes() []*Pane {
	return h.panes
}

// Start starts every pane.
func (h *Host) Start() {
	for _, p := range h.panes {
		p.Field.Start()
	}
}

// Stop stops every pane.
func (h *Host) Stop() {
	for _, p := range h.panes {
		p.Field.Stop()
	}
}

// Running reports whether any pane has been started and not stopped.
// A pane held idle by a hidden window or an empty rect still counts.
func (h *Host) Running() bool {
	for _, p := range h.panes {
		if p.Field.Wanted() {
			return true
		}
	}
	return false
}

// Reseed regenerates every pane's population.
func (h *Host) Reseed() {
	for _, p := range h.panes {
		p.Field.Reseed()
	}
}

// PollEvents delivers visibility, resize and pointer changes to the panes.
// Call once per refresh before Draw.
func (h *Host) PollEvents() {
	h.gate.SetVisible(!rl.IsWindowHidden() && !rl.IsWindowMinimized())

	if w, ht := rl.GetScreenWidth(), rl.GetScreenHeight(); rl.IsWindowResized() || w != h.width || ht != h.height {
		h.width, h.height = w, ht
		h.resize()
	}

	if !rl.IsCursorOnScreen() {
		if h.mouseInside {
			h.mouseInside = false
			for _, p := range h.panes {
				p.Tracker.PointerLeave()
			}
		}
		return
	}

	pos := rl.GetMousePosition()
	if h.mouseInside && pos == h.mouse {
		return
	}
	h.mouseInside = true
	h.mouse = pos
	for _, p := range h.panes {
		p.Tracker.PointerMove(float64(pos.X), float64(pos.Y))
	}
}

func (h *Host) resize() {
	h.logger.Debug("window resized", "width", h.width, "height", h.height)
	for _, p := range h.panes {
		p.Surface.SetRect(p.layout.Resolve(float64(h.width), float64(h.height)))
		p.Field.OnResize()
	}
}

// Draw runs one refresh for every pane. Stopped panes are redrawn from
// their last state since the back buffer is not preserved.
func (h *Host) Draw() {
	for _, p := range h.panes {
		running := p.Field.Running()
		p.Surface.Begin()
		p.Frames.Flush()
		if !running {
			renderer.Draw(p.Surface, p.Field.Particles(), p.Field.Graph(), &p.cfg)
		}
		p.Surface.End()
	}
}

// Close tears down every pane.
func (h *Host) Close() {
	for _, p := range h.panes {
		p.Field.Close()
	}
}
