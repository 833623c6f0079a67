// Package ui draws the window host's HUD and control panel.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.LightGray,
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
