package field

// Lifecycle is anything that can be held idle while its host is hidden.
// Pause must not forget whether the target was asked to run.
type Lifecycle interface {
	Pause()
	Resume()
}

// VisibilityGate pauses its targets while the host is hidden and resumes
// them once it is shown again.
type VisibilityGate struct {
	targets []Lifecycle
	hidden  bool
}

// NewVisibilityGate creates a gate over targets. The host starts visible.
func NewVisibilityGate(targets ...Lifecycle) *VisibilityGate {
	return &VisibilityGate{targets: targets}
}

// Add registers another target. It is paused at once if the host is hidden.
func (g *VisibilityGate) Add(t Lifecycle) {
	g.targets = append(g.targets, t)
	if g.hidden {
		t.Pause()
	}
}

// Hidden reports whether the gate is holding its targets paused.
func (g *VisibilityGate) Hidden() bool {
	return g.hidden
}

// SetVisible reports a host visibility change. Repeated reports of the
// same state do nothing.
func (g *VisibilityGate) SetVisible(visible bool) {
	if visible != g.hidden {
		return
	}
	g.hidden = !visible

	for _, t := range g.targets {
		if g.hidden {
			t.Pause()
		} else {
			t.Resume()
		}
	}
}
