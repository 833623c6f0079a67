package renderer

import (
	"github.com/pthm-cable/particlefield/config"
	"github.com/pthm-cable/particlefield/systems"
)

// Draw renders one complete frame: clear, particle edges, interaction
// edges, then particle discs so lines never cover a disc.
func Draw(s Surface, particles []systems.Particle, g *systems.Graph, cfg *config.FieldConfig) {
	s.Clear()

	if g != nil {
		for _, e := range g.Edges {
			a, b := &particles[e.I], &particles[e.J]
			s.Line(a.X, a.Y, b.X, b.Y, cfg.EdgeWidth, cfg.ParticleColor, e.Alpha)
		}

		for _, e := range g.PointEdges {
			p := &particles[e.I]
			s.Line(p.X, p.Y, g.Point.X, g.Point.Y, cfg.PointEdgeWidth, cfg.InteractionColor, e.Alpha)
		}
	}

	for i := range particles {
		p := &particles[i]
		s.FillCircle(p.X, p.Y, p.Radius, p.Color, p.Opacity)
	}
}
