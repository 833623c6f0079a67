package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particlefield/systems"
	"github.com/pthm-cable/particlefield/viewport"
)

// DrawBounds outlines a field surface and labels it.
func DrawBounds(r viewport.Rect, name string) {
	rl.DrawRectangleLinesEx(rl.Rectangle{
		X: float32(r.X), Y: float32(r.Y), Width: float32(r.W), Height: float32(r.H),
	}, 1, rl.Color{R: 200, G: 180, B: 100, A: 160})
	rl.DrawText(name, int32(r.X)+4, int32(r.Y+r.H)-16, 12, rl.Color{R: 200, G: 180, B: 100, A: 200})
}

// DrawInteractionRadius rings the pointer with a field's radius of influence.
func DrawInteractionRadius(r viewport.Rect, pt systems.InteractionPoint, radius float64, c rl.Color) {
	if !pt.Valid {
		return
	}
	hx, hy := r.ToHost(pt.X, pt.Y)
	rl.DrawCircleLines(int32(hx), int32(hy), float32(radius), c)
}
