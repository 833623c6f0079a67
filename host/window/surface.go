// Package window hosts particle fields in a raylib window.
package window

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particlefield/config"
	"github.com/pthm-cable/particlefield/viewport"
)

// Surface draws into a rect of the raylib window. Calls must happen
// between rl.BeginDrawing and rl.EndDrawing.
type Surface struct {
	rect       viewport.Rect
	background rl.Color
}

// NewSurface creates a surface over rect.
func NewSurface(rect viewport.Rect, background config.RGB) *Surface {
	return &Surface{rect: rect, background: Color(background, 1)}
}

// Rect returns the surface placement in window coordinates.
func (s *Surface) Rect() viewport.Rect {
	return s.rect
}

// SetRect moves or resizes the surface.
func (s *Surface) SetRect(r viewport.Rect) {
	s.rect = r
}

// Size implements renderer.Surface.
func (s *Surface) Size() (float64, float64) {
	return s.rect.W, s.rect.H
}

// Clear implements renderer.Surface.
func (s *Surface) Clear() {
	rl.DrawRectangleRec(rl.Rectangle{
		X:      float32(s.rect.X),
		Y:      float32(s.rect.Y),
		Width:  float32(s.rect.W),
		Height: float32(s.rect.H),
	}, s.background)
}

// Line implements renderer.Surface.
func (s *Surface) Line(x1, y1, x2, y2, width float64, c config.RGB, alpha float64) {
	rl.DrawLineEx(s.point(x1, y1), s.point(x2, y2), float32(width), Color(c, alpha))
}

// FillCircle implements renderer.Surface.
func (s *Surface) FillCircle(x, y, radius float64, c config.RGB, alpha float64) {
	rl.DrawCircleV(s.point(x, y), float32(radius), Color(c, alpha))
}

// Begin clips drawing to the surface rect.
func (s *Surface) Begin() {
	rl.BeginScissorMode(int32(s.rect.X), int32(s.rect.Y), int32(s.rect.W), int32(s.rect.H))
}

// End stops clipping.
func (s *Surface) End() {
	rl.EndScissorMode()
}

func (s *Surface) point(x, y float64) rl.Vector2 {
	hx, hy := s.rect.ToHost(x, y)
	return rl.Vector2{X: float32(hx), Y: float32(hy)}
}

// Color converts a config color with opacity to a raylib color.
func Color(c config.RGB, alpha float64) rl.Color {
	return rl.ColorAlpha(rl.Color{R: c.R, G: c.G, B: c.B, A: 255}, float32(alpha))
}
