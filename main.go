package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particlefield/config"
	"github.com/pthm-cable/particlefield/field"
	"github.com/pthm-cable/particlefield/host/window"
	"github.com/pthm-cable/particlefield/session"
	"github.com/pthm-cable/particlefield/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N frames (0 = unlimited)")
	reducedMotion := flag.Bool("reduced-motion", false, "Do not create any field")
	only := flag.String("field", "", "Run a single field preset (empty = all)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *reducedMotion {
		slog.Info("reduced motion requested, no fields created")
		return
	}

	names, err := session.FieldNames(cfg, *only)
	if err != nil {
		slog.Error("failed to select fields", "error", err)
		os.Exit(1)
	}

	opts := session.Options{
		Seed:      session.Seed(*seed),
		LogStats:  *logStats,
		OutputDir: *outputDir,
		Logger:    logger,
	}

	if *headless {
		runHeadless(cfg, names, opts, *maxTicks)
		return
	}
	runWindow(cfg, names, opts, *maxTicks)
}

func runHeadless(cfg *config.Config, names []string, opts session.Options, maxTicks int) {
	h, err := session.NewHeadless(cfg, names, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer h.Close()

	slog.Info("starting headless run",
		"seed", opts.Seed,
		"fields", names,
		"max_ticks", maxTicks,
		"output_dir", h.Telemetry().Dir(),
	)

	if maxTicks <= 0 {
		slog.Warn("no -max-ticks given, running until interrupted")
	}
	for {
		h.Step()

		if maxTicks > 0 && int(h.Ticks()) >= maxTicks {
			slog.Info("max ticks reached", "tick", h.Ticks())
			return
		}
	}
}

func runWindow(cfg *config.Config, names []string, opts session.Options, maxTicks int) {
	if cfg.Screen.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	tel, err := session.NewTelemetry(cfg, opts)
	if err != nil {
		slog.Error("failed to open output", "error", err)
		os.Exit(1)
	}
	defer tel.Close()

	host := window.NewHost(cfg.Screen.Background, opts.Logger)
	defer host.Close()

	for i, name := range names {
		fc, err := cfg.Field(name)
		if err != nil {
			slog.Error("unknown field", "error", err)
			os.Exit(1)
		}
		fieldOpts := append([]field.Option{field.WithSeed(opts.Seed + int64(i))}, tel.Track(name)...)
		if _, err := host.Mount(fc, cfg.LayoutFor(name), fieldOpts...); err != nil {
			slog.Error("failed to create field", "field", name, "error", err)
			os.Exit(1)
		}
	}
	host.Start()

	overlays := ui.NewOverlayRegistry()
	overlays.SetEnabled(ui.OverlayHUD, true)
	hud := ui.NewHUD()
	perfPanel := ui.NewPerfPanel(0, 10)
	controls := ui.NewControlsPanel(10, 110, 220)

	var ticks int
	for !rl.WindowShouldClose() {
		host.PollEvents()
		paused := handleKeys(host, overlays, controls)

		rl.BeginDrawing()
		rl.ClearBackground(window.Color(cfg.Screen.Background, 1))
		host.Draw()
		tel.Flush()

		drawOverlays(cfg.Screen.Title, host, overlays, hud, perfPanel, tel, paused)
		actions := controls.Draw(overlays, paused)
		rl.EndDrawing()

		if actions.TogglePause {
			togglePause(host)
		}
		if actions.Reseed {
			host.Reseed()
		}

		ticks++
		if maxTicks > 0 && ticks >= maxTicks {
			break
		}
	}
}

// handleKeys applies keyboard shortcuts and reports whether the host is paused.
func handleKeys(host *window.Host, overlays *ui.OverlayRegistry, controls *ui.ControlsPanel) bool {
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		togglePause(host)
	case rl.IsKeyPressed(rl.KeyR):
		host.Reseed()
	case rl.IsKeyPressed(rl.KeyTab):
		controls.Toggle()
	default:
		if key := rl.GetKeyPressed(); key != 0 {
			overlays.HandleKeyPress(key)
		}
	}
	return !host.Running()
}

func togglePause(host *window.Host) {
	if host.Running() {
		host.Stop()
		slog.Info("paused")
		return
	}
	host.Start()
	slog.Info("resumed")
}

func drawOverlays(title string, host *window.Host, overlays *ui.OverlayRegistry, hud *ui.HUD, perfPanel *ui.PerfPanel, tel *session.Telemetry, paused bool) {
	panes := host.Panes()

	if overlays.IsEnabled(ui.OverlayBounds) {
		for _, p := range panes {
			ui.DrawBounds(p.Surface.Rect(), p.Field.Name())
		}
	}

	if overlays.IsEnabled(ui.OverlayPointer) {
		for _, p := range panes {
			cfg := p.Field.Config()
			ui.DrawInteractionRadius(p.Surface.Rect(), p.Field.InteractionPoint(), cfg.InteractionRadius,
				window.Color(cfg.InteractionColor, 0.4))
		}
	}

	if overlays.IsEnabled(ui.OverlayHUD) {
		data := ui.HUDData{
			Title:  title,
			FPS:    rl.GetFPS(),
			Paused: paused,
		}
		for _, p := range panes {
			g := p.Field.Graph()
			data.Fields = append(data.Fields, ui.FieldStatus{
				Name:       p.Field.Name(),
				Particles:  p.Field.Len(),
				Edges:      len(g.Edges),
				PointEdges: len(g.PointEdges),
				Frames:     p.Field.Frames(),
				Running:    p.Field.Running(),
			})
		}
		hud.Draw(data)
		hud.DrawControls(int32(rl.GetScreenHeight()), "[Space] Pause  [R] Reseed  [Tab] Controls  [H] HUD  [F] Timing  [B] Bounds  [I] Radius")
	}

	if overlays.IsEnabled(ui.OverlayPerf) {
		names, stats := tel.PerfStats()
		perfPanel.SetPosition(int32(rl.GetScreenWidth())-230, 10)
		perfPanel.Draw(names, stats)
	}
}
