// Field preset preview tool - interactive tuning with sliders.
//
// Usage: go run ./cmd/fieldpreview -field background
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/particlefield/config"
	"github.com/pthm-cable/particlefield/field"
	"github.com/pthm-cable/particlefield/host/window"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	previewWidth = 700
	panelWidth   = windowWidth - previewWidth - 30
)

// slider describes one tunable knob.
type slider struct {
	label    string
	min, max float32
	format   string
	get      func(*config.FieldConfig) float32
	set      func(*config.FieldConfig, float32)
}

var sliders = []slider{
	{"Count", 5, 200, "%.0f",
		func(f *config.FieldConfig) float32 { return float32(f.Count) },
		func(f *config.FieldConfig, v float32) { f.Count = int(v) }},
	{"Max connection distance", 20, 300, "%.0f",
		func(f *config.FieldConfig) float32 { return float32(f.MaxConnectionDistance) },
		func(f *config.FieldConfig, v float32) { f.MaxConnectionDistance = float64(v) }},
	{"Interaction radius", 20, 400, "%.0f",
		func(f *config.FieldConfig) float32 { return float32(f.InteractionRadius) },
		func(f *config.FieldConfig, v float32) { f.InteractionRadius = float64(v) }},
	{"Base speed", 0.05, 2, "%.2f",
		func(f *config.FieldConfig) float32 { return float32(f.BaseSpeed) },
		func(f *config.FieldConfig, v float32) { f.BaseSpeed = float64(v) }},
	{"Attract strength", 0, 0.02, "%.4f",
		func(f *config.FieldConfig) float32 { return float32(f.AttractStrength) },
		func(f *config.FieldConfig, v float32) { f.AttractStrength = float64(v) }},
	{"Repel strength", 0, 0.1, "%.3f",
		func(f *config.FieldConfig) float32 { return float32(f.RepelStrength) },
		func(f *config.FieldConfig, v float32) { f.RepelStrength = float64(v) }},
	{"Edge alpha", 0.05, 1, "%.2f",
		func(f *config.FieldConfig) float32 { return float32(f.EdgeAlpha) },
		func(f *config.FieldConfig, v float32) { f.EdgeAlpha = float64(v) }},
	{"Point edge alpha", 0.05, 1, "%.2f",
		func(f *config.FieldConfig) float32 { return float32(f.PointEdgeAlpha) },
		func(f *config.FieldConfig, v float32) { f.PointEdgeAlpha = float64(v) }},
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	fieldName := flag.String("field", "hero", "Field preset to tune")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	base, err := cfg.Field(*fieldName)
	if err != nil {
		log.Fatal(err)
	}
	params := *base

	rl.InitWindow(windowWidth, windowHeight, "Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	logger := slog.New(slog.DiscardHandler)
	layout := config.LayoutConfig{
		Field:  params.Name,
		X:      10.0 / windowWidth,
		Y:      10.0 / windowHeight,
		Width:  float64(previewWidth) / windowWidth,
		Height: float64(windowHeight-60) / windowHeight,
	}

	var host *window.Host
	rebuild := func() {
		if host != nil {
			host.Close()
		}
		host = window.NewHost(cfg.Screen.Background, logger)
		if _, err := host.Mount(&params, layout, field.WithSeed(1)); err != nil {
			log.Printf("preset rejected: %v", err)
			return
		}
		host.Start()
	}
	rebuild()
	defer func() { host.Close() }()

	status := ""
	for !rl.WindowShouldClose() {
		host.PollEvents()

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		host.Draw()
		if panes := host.Panes(); len(panes) > 0 {
			g := panes[0].Field.Graph()
			rl.DrawText(fmt.Sprintf("Particles: %d  Edges: %d  To pointer: %d",
				panes[0].Field.Len(), len(g.Edges), len(g.PointEdges)),
				15, windowHeight-40, 16, rl.DarkGray)
		}

		panelX := float32(previewWidth + 20)
		panelY := float32(10)
		rl.DrawText(fmt.Sprintf("Preset %q", params.Name), int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		needsRebuild := false
		for _, s := range sliders {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			cur := s.get(&params)
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				cur, s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, cur), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if next != cur {
				s.set(&params, next)
				needsRebuild = true
			}
			panelY += 35
		}

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reseed") {
			host.Reseed()
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = *base
			needsRebuild = true
		}
		panelY += 45

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(panelY), 12, rl.Gray)
		if status != "" {
			rl.DrawText(status, int32(panelX), int32(panelY+16), 12, rl.DarkGreen)
		}

		if rl.IsKeyPressed(rl.KeyC) {
			text, err := presetYAML(params)
			if err != nil {
				status = err.Error()
			} else {
				rl.SetClipboardText(text)
				status = "copied"
			}
		}

		rl.EndDrawing()

		if needsRebuild {
			rebuild()
			status = ""
		}
	}
}

// presetYAML renders a preset the way it appears in config.yaml.
func presetYAML(fc config.FieldConfig) (string, error) {
	doc := struct {
		Fields []config.FieldConfig `yaml:"fields"`
	}{Fields: []config.FieldConfig{fc}}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}
