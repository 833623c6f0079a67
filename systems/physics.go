package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/particlefield/components"
	"github.com/pthm-cable/particlefield/config"
)

// Advance moves one particle forward by a single tick.
// Motion is frame-driven: velocity is displacement per tick, not per second.
func Advance(pos *components.Position, vel *components.Velocity, cfg *config.FieldConfig, pt InteractionPoint, b Bounds) {
	// 1. Integrate
	pos.X += vel.X
	pos.Y += vel.Y

	// 2. Boundary policy
	switch cfg.Boundary {
	case config.BoundaryWrap:
		pos.X = wrapCoord(pos.X, b.W)
		pos.Y = wrapCoord(pos.Y, b.H)
	case config.BoundaryBounce:
		reflectAxis(pos.X, &vel.X, b.W)
		reflectAxis(pos.Y, &vel.Y, b.H)
	}

	// 3. Interaction force
	if !pt.Valid || cfg.Force == config.ForceNone {
		return
	}

	p := r2.Vec{X: pos.X, Y: pos.Y}
	toPoint := r2.Sub(pt.Vec(), p)
	dist := r2.Norm(toPoint)
	if dist >= cfg.InteractionRadius {
		return
	}

	switch cfg.Force {
	case config.ForceAttract:
		strength := fade(dist, cfg.InteractionRadius) * cfg.AttractStrength
		v := r2.Add(r2.Vec{X: vel.X, Y: vel.Y}, r2.Scale(strength, toPoint))
		v = limitSpeed(v, cfg.MaxSpeed())
		vel.X, vel.Y = v.X, v.Y

	case config.ForceRepel:
		// Direction is undefined exactly on the point
		if dist == 0 {
			return
		}
		push := (cfg.InteractionRadius - dist) * cfg.RepelStrength
		p = r2.Sub(p, r2.Scale(push/dist, toPoint))
		pos.X = confine(p.X, b.W, cfg.Boundary)
		pos.Y = confine(p.Y, b.H, cfg.Boundary)
	}
}

// confine keeps a positionally displaced coordinate on the surface.
func confine(v, size float64, boundary config.BoundaryPolicy) float64 {
	if boundary == config.BoundaryWrap {
		return wrapCoord(v, size)
	}
	return clampFloat(v, 0, size)
}

// Step advances every particle in the filter by one tick and writes the
// resulting snapshot into dst, indexed by slot. The returned slice is the
// complete output of this step.
func Step(filter *ParticleFilter, cfg *config.FieldConfig, pt InteractionPoint, b Bounds, dst []Particle) []Particle {
	query := filter.Query()
	for query.Next() {
		pos, vel, app, slot := query.Get()
		Advance(pos, vel, cfg, pt, b)
		dst = writeSlot(dst, slot.Index, pos, vel, app)
	}
	return dst
}

// writeSlot stores a particle copy at index i, growing dst as needed.
func writeSlot(dst []Particle, i int, pos *components.Position, vel *components.Velocity, app *components.Appearance) []Particle {
	if i >= len(dst) {
		dst = append(dst, make([]Particle, i-len(dst)+1)...)
	}
	dst[i] = Particle{
		X:       pos.X,
		Y:       pos.Y,
		VX:      vel.X,
		VY:      vel.Y,
		Radius:  app.Radius,
		Opacity: app.Opacity,
		Color:   app.Color,
	}
	return dst
}
