package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particlefield/telemetry"
)

// FieldStatus summarizes one pane for the HUD.
type FieldStatus struct {
	Name       string
	Particles  int
	Edges      int
	PointEdges int
	Frames     int64
	Running    bool
}

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title  string
	FPS    int32
	Paused bool
	Fields []FieldStatus
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(fmt.Sprintf("FPS: %d | %s", data.FPS, statusText), 10, 35, 16, rl.LightGray)

	y := int32(55)
	for _, f := range data.Fields {
		color := rl.LightGray
		if !f.Running {
			color = rl.Gray
		}
		rl.DrawText(
			fmt.Sprintf("%s: %d particles | %d edges | %d to pointer | frame %d",
				f.Name, f.Particles, f.Edges, f.PointEdges, f.Frames),
			10, y, 14, color,
		)
		y += 18
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-field frame phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders one block per field.
func (p *PerfPanel) Draw(names []string, stats []telemetry.PerfStats) {
	r := p.renderer
	const width = 220
	height := int32(len(names))*(r.Theme.LineHeight*5) + r.Theme.Padding*2
	r.DrawPanel(p.x, p.y, width, height)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding
	for i, name := range names {
		s := stats[i]
		y = r.DrawSectionHeader(x, y, name)
		y = r.DrawLabelValue(x, y, "Cycle", fmt.Sprintf("%dus", s.AvgCycle.Microseconds()))
		for _, phase := range telemetry.Phases {
			color := r.Theme.ValueColor
			pct := s.PhasePct[phase]
			if pct > 60 {
				color = rl.Orange
			}
			rl.DrawText(phase.String()+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
			rl.DrawText(fmt.Sprintf("%5.1f%%", pct), x+r.Theme.LabelWidth, y, r.Theme.FontSize, color)
			y += r.Theme.LineHeight
		}
	}
}
