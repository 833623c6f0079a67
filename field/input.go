package field

import (
	"github.com/pthm-cable/particlefield/config"
	"github.com/pthm-cable/particlefield/systems"
	"github.com/pthm-cable/particlefield/viewport"
)

// PointSink receives interaction point updates.
type PointSink interface {
	SetInteractionPoint(systems.InteractionPoint)
}

// Locator reports where a field's surface currently sits in host coordinates.
type Locator func() viewport.Rect

// InputTracker turns host pointer events into a field's interaction point.
type InputTracker struct {
	sink    PointSink
	scope   config.ListenScope
	locator Locator
}

// NewInputTracker creates a tracker feeding sink.
func NewInputTracker(sink PointSink, scope config.ListenScope, locator Locator) *InputTracker {
	return &InputTracker{sink: sink, scope: scope, locator: locator}
}

// PointerMove handles a pointer move at host coordinates.
func (t *InputTracker) PointerMove(hx, hy float64) {
	r := t.locator()
	if t.scope == config.ScopeElement && !r.Contains(hx, hy) {
		t.sink.SetInteractionPoint(systems.Absent)
		return
	}
	x, y := r.ToLocal(hx, hy)
	t.sink.SetInteractionPoint(systems.At(x, y))
}

// PointerLeave handles the pointer leaving the listened-to area.
func (t *InputTracker) PointerLeave() {
	t.sink.SetInteractionPoint(systems.Absent)
}
