// Package components defines ECS components for field particles.
package components

import "github.com/pthm-cable/particlefield/config"

// Position is a particle's location in field-local pixels.
type Position struct {
	X, Y float64
}

// Velocity is a particle's displacement per tick.
type Velocity struct {
	X, Y float64
}

// Appearance holds the visual attributes fixed at spawn.
type Appearance struct {
	Radius  float64
	Opacity float64
	Color   config.RGB
}

// Slot is a particle's stable index within its population.
// Proximity edges refer to particles by slot.
type Slot struct {
	Index int
}
