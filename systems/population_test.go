package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/particlefield/config"
)

func TestRegenerateSamplesWithinRanges(t *testing.T) {
	cfg := testConfig(config.BoundaryBounce, config.ForceRepel)
	b := Bounds{W: 640, H: 360}
	rng := rand.New(rand.NewSource(11))

	pop := NewPopulation()
	pop.Regenerate(cfg.Count, cfg, b, rng)
	if pop.Len() != cfg.Count {
		t.Fatalf("Len() = %d, want %d", pop.Len(), cfg.Count)
	}

	snap := pop.Snapshot(nil)
	if len(snap) != cfg.Count {
		t.Fatalf("snapshot has %d particles, want %d", len(snap), cfg.Count)
	}

	half := cfg.BaseSpeed / 2
	for i, p := range snap {
		if !b.Contains(p.X, p.Y) {
			t.Errorf("particle %d spawned off the surface: (%f, %f)", i, p.X, p.Y)
		}
		if math.Abs(p.VX) > half || math.Abs(p.VY) > half {
			t.Errorf("particle %d velocity (%f, %f) outside ±%f", i, p.VX, p.VY, half)
		}
		if p.Radius < cfg.MinRadius || p.Radius > cfg.MaxRadius {
			t.Errorf("particle %d radius %f outside range", i, p.Radius)
		}
		if p.Opacity < cfg.MinOpacity || p.Opacity > cfg.MaxOpacity {
			t.Errorf("particle %d opacity %f outside range", i, p.Opacity)
		}
		if p.Color != cfg.ParticleColor {
			t.Errorf("particle %d color %v, want %v", i, p.Color, cfg.ParticleColor)
		}
	}
}

func TestRegenerateDiscardsOldPopulation(t *testing.T) {
	cfg := testConfig(config.BoundaryWrap, config.ForceNone)
	rng := rand.New(rand.NewSource(5))

	pop := NewPopulation()
	pop.Regenerate(40, cfg, Bounds{W: 1000, H: 1000}, rng)
	pop.Regenerate(10, cfg, Bounds{W: 50, H: 20}, rng)

	snap := pop.Snapshot(nil)
	if len(snap) != 10 || pop.Len() != 10 {
		t.Fatalf("got %d particles (Len %d), want 10", len(snap), pop.Len())
	}
	for i, p := range snap {
		if p.X > 50 || p.Y > 20 {
			t.Errorf("particle %d carried over from old bounds: (%f, %f)", i, p.X, p.Y)
		}
	}
}

func TestRegenerateEmptyBounds(t *testing.T) {
	cfg := testConfig(config.BoundaryWrap, config.ForceNone)
	rng := rand.New(rand.NewSource(5))

	pop := NewPopulation()
	pop.Regenerate(40, cfg, Bounds{W: 0, H: 300}, rng)
	if pop.Len() != 0 {
		t.Errorf("zero-area surface got %d particles", pop.Len())
	}
	if snap := pop.Step(cfg, At(1, 1), Bounds{W: 0, H: 300}, nil); len(snap) != 0 {
		t.Errorf("step on empty population returned %d particles", len(snap))
	}
}

func TestPlaceKeepsSlotOrder(t *testing.T) {
	cfg := testConfig(config.BoundaryWrap, config.ForceNone)
	b := Bounds{W: 1000, H: 1000}

	in := particlesAt([2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3, 3}, [2]float64{4, 4})
	pop := NewPopulation()
	pop.Place(in)

	snap := pop.Step(cfg, Absent, b, nil)
	if len(snap) != len(in) {
		t.Fatalf("got %d particles, want %d", len(snap), len(in))
	}
	for i := range in {
		if snap[i].X != in[i].X || snap[i].Y != in[i].Y {
			t.Errorf("slot %d = (%f, %f), want (%f, %f)", i, snap[i].X, snap[i].Y, in[i].X, in[i].Y)
		}
	}
}

func TestPopulationsAreIndependent(t *testing.T) {
	cfg := testConfig(config.BoundaryWrap, config.ForceNone)
	rng := rand.New(rand.NewSource(9))
	b := Bounds{W: 200, H: 200}

	a := NewPopulation()
	c := NewPopulation()
	a.Regenerate(20, cfg, b, rng)
	c.Regenerate(5, cfg, b, rng)
	a.Clear()

	if c.Len() != 5 || len(c.Snapshot(nil)) != 5 {
		t.Errorf("clearing one population affected another")
	}
}
