package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlActions are the requests made through the panel this frame.
type ControlActions struct {
	TogglePause bool
	Reseed      bool
}

// ControlsPanel renders the control panel with playback buttons and
// overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and returns what the user clicked.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry, paused bool) ControlActions {
	var actions ControlActions
	if !c.visible {
		return actions
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	const buttonHeight = 24

	categories := overlays.Categories()
	totalItems := 0
	for _, cat := range categories {
		totalItems += len(overlays.ByCategory(cat)) + 1 // +1 for category header
	}
	panelHeight := int32(totalItems)*(lineHeight+4) + buttonHeight + padding*4 + lineHeight

	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	x := float32(c.x + padding)
	y := c.y + padding
	rl.DrawText("Controls", int32(x), y, 16, rl.White)
	y += lineHeight + 4

	half := float32(c.width-padding*3) / 2
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: buttonHeight}, toggleText(paused, "Resume", "Pause")) {
		actions.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + half + float32(padding), Y: float32(y), Width: half, Height: buttonHeight}, "Reseed") {
		actions.Reseed = true
	}
	y += buttonHeight + padding

	for _, category := range categories {
		y = r.DrawSectionHeader(int32(x), y, categoryLabel(category))
		for _, desc := range overlays.ByCategory(category) {
			label := desc.Name
			if desc.KeyLabel != "" {
				label = fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
			}
			enabled := overlays.IsEnabled(desc.ID)
			box := rl.Rectangle{X: x, Y: float32(y), Width: 12, Height: 12}
			if checked := gui.CheckBox(box, label, enabled); checked != enabled {
				overlays.SetEnabled(desc.ID, checked)
			}
			y += lineHeight + 4
		}
	}

	return actions
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "info":
		return "Info"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
