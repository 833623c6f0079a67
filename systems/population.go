package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/particlefield/components"
	"github.com/pthm-cable/particlefield/config"
)

// Population owns the particle entities of a single field.
// Each field gets its own ECS world so fields never share state.
type Population struct {
	world  *ecs.World
	mapper *ParticleMapper
	filter *ParticleFilter
	count  int
}

// NewPopulation creates an empty population.
func NewPopulation() *Population {
	world := ecs.NewWorld()
	return &Population{
		world:  world,
		mapper: ecs.NewMap4[components.Position, components.Velocity, components.Appearance, components.Slot](world),
		filter: ecs.NewFilter4[components.Position, components.Velocity, components.Appearance, components.Slot](world),
	}
}

// Len returns the number of particles.
func (p *Population) Len() int {
	return p.count
}

// Clear removes every particle.
func (p *Population) Clear() {
	// Collect first; the world is locked while a query is open
	var entities []ecs.Entity
	query := p.filter.Query()
	for query.Next() {
		entities = append(entities, query.Entity())
	}
	for _, e := range entities {
		p.world.RemoveEntity(e)
	}
	p.count = 0
}

// Regenerate discards the population and spawns n fresh particles
// uniformly over the bounds. Nothing is carried over from the old set.
func (p *Population) Regenerate(n int, cfg *config.FieldConfig, b Bounds, rng *rand.Rand) {
	p.Clear()
	if b.Empty() {
		return
	}
	for i := 0; i < n; i++ {
		p.spawn(spawnParticle(cfg, b, rng))
	}
}

// Place replaces the population with exactly the given particles, in order.
func (p *Population) Place(particles []Particle) {
	p.Clear()
	for _, part := range particles {
		p.spawn(part)
	}
}

// spawnParticle draws a particle with uniform position, velocity within
// ±base_speed/2 per axis, and uniform radius and opacity.
func spawnParticle(cfg *config.FieldConfig, b Bounds, rng *rand.Rand) Particle {
	return Particle{
		X:       rng.Float64() * b.W,
		Y:       rng.Float64() * b.H,
		VX:      (rng.Float64() - 0.5) * cfg.BaseSpeed,
		VY:      (rng.Float64() - 0.5) * cfg.BaseSpeed,
		Radius:  cfg.MinRadius + rng.Float64()*(cfg.MaxRadius-cfg.MinRadius),
		Opacity: cfg.MinOpacity + rng.Float64()*(cfg.MaxOpacity-cfg.MinOpacity),
		Color:   cfg.ParticleColor,
	}
}

func (p *Population) spawn(part Particle) ecs.Entity {
	pos := components.Position{X: part.X, Y: part.Y}
	vel := components.Velocity{X: part.VX, Y: part.VY}
	app := components.Appearance{Radius: part.Radius, Opacity: part.Opacity, Color: part.Color}
	slot := components.Slot{Index: p.count}
	p.count++
	return p.mapper.NewEntity(&pos, &vel, &app, &slot)
}

// Step advances all particles by one tick. See Step.
func (p *Population) Step(cfg *config.FieldConfig, pt InteractionPoint, b Bounds, dst []Particle) []Particle {
	return Step(p.filter, cfg, pt, b, dst[:0])
}

// Snapshot copies the current particles into dst without advancing them.
func (p *Population) Snapshot(dst []Particle) []Particle {
	dst = dst[:0]
	query := p.filter.Query()
	for query.Next() {
		pos, vel, app, slot := query.Get()
		dst = writeSlot(dst, slot.Index, pos, vel, app)
	}
	return dst
}
