package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/particlefield/config"
)

// Edge connects two particles closer than the connection distance.
type Edge struct {
	I, J  int     // slot indices, I < J
	Alpha float64 // line opacity
}

// PointEdge connects a particle to the interaction point.
type PointEdge struct {
	I     int
	Alpha float64
}

// Graph is the proximity graph of one frame.
type Graph struct {
	Edges      []Edge
	PointEdges []PointEdge
	Point      InteractionPoint // the point PointEdges are drawn to
}

// Reset empties the graph, keeping its backing storage.
func (g *Graph) Reset() {
	g.Edges = g.Edges[:0]
	g.PointEdges = g.PointEdges[:0]
	g.Point = Absent
}

// BuildGraph recomputes g from the particle snapshot.
// Pairs are tested exhaustively; populations are small and bounded.
func BuildGraph(g *Graph, particles []Particle, cfg *config.FieldConfig, pt InteractionPoint) {
	g.Reset()

	maxDist := cfg.MaxConnectionDistance
	maxDistSq := maxDist * maxDist
	for i := 0; i < len(particles); i++ {
		pi := particles[i].Pos()
		for j := i + 1; j < len(particles); j++ {
			d := r2.Sub(pi, particles[j].Pos())
			// Cheap reject before the square root
			if r2.Norm2(d) >= maxDistSq {
				continue
			}
			dist := r2.Norm(d)
			g.Edges = append(g.Edges, Edge{
				I:     i,
				J:     j,
				Alpha: fade(dist, maxDist) * cfg.EdgeAlpha,
			})
		}
	}

	if cfg.Force != config.ForceAttract || !pt.Valid {
		return
	}

	g.Point = pt
	radius := cfg.InteractionRadius
	for i := range particles {
		dist := r2.Norm(r2.Sub(particles[i].Pos(), pt.Vec()))
		if dist < radius {
			g.PointEdges = append(g.PointEdges, PointEdge{
				I:     i,
				Alpha: fade(dist, radius) * cfg.PointEdgeAlpha,
			})
		}
	}
}
