package terminal

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/particlefield/config"
	"github.com/pthm-cable/particlefield/field"
	"github.com/pthm-cable/particlefield/renderer"
	"github.com/pthm-cable/particlefield/viewport"
)

// Host runs one field full-screen in a terminal. Screen events and frame
// ticks are serialized onto the goroutine calling Run.
type Host struct {
	screen  tcell.Screen
	surface *Surface
	frames  *field.FrameQueue
	field   *field.Field
	tracker *field.InputTracker
	gate    *field.VisibilityGate
	fc      config.FieldConfig
	tick    time.Duration
	logger  *slog.Logger
}

// NewHost creates the field on an initialized screen and starts it.
func NewHost(screen tcell.Screen, cfg *config.Config, fc *config.FieldConfig, logger *slog.Logger, opts ...field.Option) (*Host, error) {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Host{
		screen: screen,
		surface: NewSurface(screen,
			cfg.Terminal.CellWidth, cfg.Terminal.CellHeight, cfg.Screen.Background),
		frames: &field.FrameQueue{},
		tick:   time.Duration(cfg.Terminal.TickMS) * time.Millisecond,
		logger: logger,
	}

	opts = append([]field.Option{field.WithLogger(logger)}, opts...)
	f, err := field.Create(h.surface, h.frames, fc, opts...)
	if err != nil {
		return nil, err
	}
	h.field = f
	h.fc = f.Config()
	h.tracker = field.NewInputTracker(f, h.fc.ListenScope, h.bounds)
	h.gate = field.NewVisibilityGate(f)

	f.Start()
	return h, nil
}

// Field returns the hosted field.
func (h *Host) Field() *field.Field {
	return h.field
}

// Surface returns the cell surface.
func (h *Host) Surface() *Surface {
	return h.surface
}

func (h *Host) bounds() viewport.Rect {
	w, ht := h.surface.Size()
	return viewport.Rect{W: w, H: ht}
}

// HandleEvent applies one screen event. It returns true when the user
// asked to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() == tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case 'p', ' ':
				h.togglePause()
			case 'r':
				h.field.Reseed()
			}
		}

	case *tcell.EventResize:
		h.screen.Sync()
		h.surface.Resize()
		h.field.OnResize()

	case *tcell.EventMouse:
		col, row := ev.Position()
		h.tracker.PointerMove(h.surface.CellCenter(col, row))

	case *tcell.EventFocus:
		if !ev.Focused {
			h.tracker.PointerLeave()
		}
		h.gate.SetVisible(ev.Focused)
	}
	return false
}

func (h *Host) togglePause() {
	if h.field.Wanted() {
		h.field.Stop()
		h.logger.Info("paused")
		return
	}
	h.field.Start()
	h.logger.Info("resumed")
}

// Frame runs one refresh. A stopped field is redrawn from its last state.
func (h *Host) Frame() {
	running := h.field.Running()
	h.frames.Flush()
	if !running {
		renderer.Draw(h.surface, h.field.Particles(), h.field.Graph(), &h.fc)
	}
	h.surface.Present()
}

// Run pumps events and frame ticks until ctx is done or the user quits.
func (h *Host) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.tick)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if h.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			h.Frame()
		}
	}
}

// Close tears down the field. The screen is left to the caller.
func (h *Host) Close() {
	h.field.Close()
}
