package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/particlefield/components"
	"github.com/pthm-cable/particlefield/config"
)

// ParticleMapper creates particle entities with all their components.
type ParticleMapper = ecs.Map4[components.Position, components.Velocity, components.Appearance, components.Slot]

// ParticleFilter iterates particle entities.
type ParticleFilter = ecs.Filter4[components.Position, components.Velocity, components.Appearance, components.Slot]

// Particle is a flat, read-only copy of one particle taken after a step.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Radius  float64
	Opacity float64
	Color   config.RGB
}

// Pos returns the particle position as a vector.
func (p Particle) Pos() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// Speed returns the velocity magnitude.
func (p Particle) Speed() float64 {
	return r2.Norm(r2.Vec{X: p.VX, Y: p.VY})
}

// InteractionPoint is the last pointer position in field-local coordinates.
// The zero value is absent.
type InteractionPoint struct {
	X, Y  float64
	Valid bool
}

// Absent is the interaction point used when no pointer is over the field.
var Absent = InteractionPoint{}

// At returns a present interaction point.
func At(x, y float64) InteractionPoint {
	return InteractionPoint{X: x, Y: y, Valid: true}
}

// Vec returns the point as a vector.
func (p InteractionPoint) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// Bounds is the drawing surface extent in pixels.
type Bounds struct {
	W, H float64
}

// Empty reports whether the surface has no drawable area.
func (b Bounds) Empty() bool {
	return !(b.W > 0 && b.H > 0)
}

// Contains reports whether (x, y) lies within [0,W] x [0,H].
func (b Bounds) Contains(x, y float64) bool {
	return x >= 0 && x <= b.W && y >= 0 && y <= b.H
}
