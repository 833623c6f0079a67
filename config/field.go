package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidField is wrapped by every FieldConfig validation failure.
var ErrInvalidField = errors.New("invalid field config")

// BoundaryPolicy controls what happens when a particle leaves the surface.
type BoundaryPolicy string

const (
	BoundaryWrap   BoundaryPolicy = "wrap"   // teleport to the opposite edge
	BoundaryBounce BoundaryPolicy = "bounce" // reflect velocity
)

// ForcePolicy controls how the interaction point perturbs nearby particles.
type ForcePolicy string

const (
	ForceAttract ForcePolicy = "attract" // velocity nudge toward the point
	ForceRepel   ForcePolicy = "repel"   // positional push away from the point
	ForceNone    ForcePolicy = "none"
)

// ListenScope controls where pointer movement is observed.
type ListenScope string

const (
	ScopeGlobal  ListenScope = "global"  // whole host window
	ScopeElement ListenScope = "element" // only inside the field's own rect
)

// FieldConfig describes one particle field. A field copies it at creation.
type FieldConfig struct {
	Name string `yaml:"name"`

	// Population
	Count            int     `yaml:"count"`
	MobileBreakpoint float64 `yaml:"mobile_breakpoint"` // device width below which the population shrinks
	MobileFactor     float64 `yaml:"mobile_factor"`     // population multiplier below the breakpoint

	// Distances
	MaxConnectionDistance float64 `yaml:"max_connection_distance"`
	InteractionRadius     float64 `yaml:"interaction_radius"`

	// Particle appearance and motion
	MinRadius  float64 `yaml:"min_radius"`
	MaxRadius  float64 `yaml:"max_radius"`
	MinOpacity float64 `yaml:"min_opacity"`
	MaxOpacity float64 `yaml:"max_opacity"`
	BaseSpeed  float64 `yaml:"base_speed"`

	// Colors
	ParticleColor    RGB `yaml:"particle_color"`
	InteractionColor RGB `yaml:"interaction_color"`

	// Edge rendering
	EdgeAlpha      float64 `yaml:"edge_alpha"`       // alpha of a zero-length particle edge
	PointEdgeAlpha float64 `yaml:"point_edge_alpha"` // alpha of a zero-length interaction edge
	EdgeWidth      float64 `yaml:"edge_width"`
	PointEdgeWidth float64 `yaml:"point_edge_width"`

	// Interaction
	Boundary        BoundaryPolicy `yaml:"boundary"`
	Force           ForcePolicy    `yaml:"force"`
	ListenScope     ListenScope    `yaml:"listen_scope"`
	AttractStrength float64        `yaml:"attract_strength"`
	RepelStrength   float64        `yaml:"repel_strength"`
}

// ApplyDefaults fills optional knobs left at zero with the preset defaults.
// Load applies it to every preset and field.Create to its own copy.
func (f *FieldConfig) ApplyDefaults() {
	if f.MobileFactor == 0 {
		f.MobileFactor = 0.5
	}
	if f.MaxOpacity == 0 {
		f.MinOpacity, f.MaxOpacity = 0.2, 0.7
	}
	if f.EdgeAlpha == 0 {
		f.EdgeAlpha = 0.25
	}
	if f.PointEdgeAlpha == 0 {
		f.PointEdgeAlpha = 0.5
	}
	if f.EdgeWidth == 0 {
		f.EdgeWidth = 0.5
	}
	if f.PointEdgeWidth == 0 {
		f.PointEdgeWidth = 0.7
	}
	if f.Boundary == "" {
		f.Boundary = BoundaryWrap
	}
	if f.Force == "" {
		f.Force = ForceNone
	}
	if f.ListenScope == "" {
		f.ListenScope = ScopeGlobal
	}
}

// Validate reports the first problem found in the config.
func (f *FieldConfig) Validate() error {
	switch {
	case f.Count <= 0:
		return fmt.Errorf("%w: count must be positive, got %d", ErrInvalidField, f.Count)
	case !positive(f.MaxConnectionDistance):
		return fmt.Errorf("%w: max_connection_distance must be positive", ErrInvalidField)
	case !positive(f.InteractionRadius):
		return fmt.Errorf("%w: interaction_radius must be positive", ErrInvalidField)
	case !positive(f.BaseSpeed):
		return fmt.Errorf("%w: base_speed must be positive", ErrInvalidField)
	case !positive(f.MinRadius) || !finite(f.MaxRadius) || f.MaxRadius < f.MinRadius:
		return fmt.Errorf("%w: radius range [%v, %v] is invalid", ErrInvalidField, f.MinRadius, f.MaxRadius)
	case f.MinOpacity < 0 || f.MaxOpacity > 1 || f.MaxOpacity < f.MinOpacity:
		return fmt.Errorf("%w: opacity range [%v, %v] is invalid", ErrInvalidField, f.MinOpacity, f.MaxOpacity)
	case f.MobileFactor <= 0 || f.MobileFactor > 1:
		return fmt.Errorf("%w: mobile_factor must be in (0, 1]", ErrInvalidField)
	case f.MobileBreakpoint < 0:
		return fmt.Errorf("%w: mobile_breakpoint must not be negative", ErrInvalidField)
	case f.AttractStrength < 0 || f.RepelStrength < 0:
		return fmt.Errorf("%w: force strengths must not be negative", ErrInvalidField)
	}

	switch f.Boundary {
	case BoundaryWrap, BoundaryBounce:
	default:
		return fmt.Errorf("%w: unknown boundary %q", ErrInvalidField, f.Boundary)
	}
	switch f.Force {
	case ForceAttract, ForceRepel, ForceNone:
	default:
		return fmt.Errorf("%w: unknown force %q", ErrInvalidField, f.Force)
	}
	switch f.ListenScope {
	case ScopeGlobal, ScopeElement:
	default:
		return fmt.Errorf("%w: unknown listen_scope %q", ErrInvalidField, f.ListenScope)
	}
	return nil
}

// MaxSpeed is the speed cap applied wherever velocity-based motion applies.
func (f *FieldConfig) MaxSpeed() float64 {
	return 2 * f.BaseSpeed
}

// PopulationFor returns the particle count for a device of the given width.
func (f *FieldConfig) PopulationFor(deviceWidth float64) int {
	if deviceWidth < f.MobileBreakpoint {
		return int(math.Floor(float64(f.Count) * f.MobileFactor))
	}
	return f.Count
}

func positive(v float64) bool {
	return v > 0 && finite(v)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
