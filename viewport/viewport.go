// Package viewport maps host window coordinates onto field surfaces.
package viewport

import (
	"math"

	"github.com/pthm-cable/particlefield/config"
)

// Rect is a field surface placed inside the host window.
type Rect struct {
	// Origin in host coordinates
	X, Y float64

	// Surface extent in pixels
	W, H float64
}

// Empty reports whether the rect has no drawable area.
func (r Rect) Empty() bool {
	return !(r.W > 0 && r.H > 0)
}

// ToLocal converts host coordinates to surface-local coordinates.
func (r Rect) ToLocal(hx, hy float64) (x, y float64) {
	return hx - r.X, hy - r.Y
}

// ToHost converts surface-local coordinates to host coordinates.
func (r Rect) ToHost(x, y float64) (hx, hy float64) {
	return x + r.X, y + r.Y
}

// Contains reports whether a host point lies inside the rect.
func (r Rect) Contains(hx, hy float64) bool {
	return hx >= r.X && hx < r.X+r.W && hy >= r.Y && hy < r.Y+r.H
}

// Layout places a rect inside a window using fractional coordinates.
type Layout struct {
	X, Y, W, H float64
}

// FromConfig converts a layout entry.
func FromConfig(l config.LayoutConfig) Layout {
	return Layout{X: l.X, Y: l.Y, W: l.Width, H: l.Height}
}

// Resolve computes the pixel rect for a window of the given size.
// Edges are snapped to whole pixels so adjacent rects tile exactly.
func (l Layout) Resolve(windowW, windowH float64) Rect {
	x0 := math.Round(l.X * windowW)
	y0 := math.Round(l.Y * windowH)
	x1 := math.Round((l.X + l.W) * windowW)
	y1 := math.Round((l.Y + l.H) * windowH)
	return Rect{
		X: x0,
		Y: y0,
		W: math.Max(0, x1-x0),
		H: math.Max(0, y1-y0),
	}
}
