// Command fieldterm runs a particle field in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/particlefield/config"
	"github.com/pthm-cable/particlefield/field"
	"github.com/pthm-cable/particlefield/host/terminal"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	fieldName := flag.String("field", "", "Field preset to run (empty = terminal.field from config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	logPath := flag.String("log", "", "Write JSON logs to this file (the screen is in use)")
	reducedMotion := flag.Bool("reduced-motion", false, "Do not animate")

	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *reducedMotion {
		fmt.Println("reduced motion requested, not animating")
		return
	}

	logger, closeLog, err := newLogger(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	name := *fieldName
	if name == "" {
		name = cfg.Terminal.Field
	}
	fc, err := cfg.Field(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, fc, logger, *seed); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "fieldterm: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, fc *config.FieldConfig, logger *slog.Logger, seed int64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	var opts []field.Option
	if seed != 0 {
		opts = append(opts, field.WithSeed(seed))
	}
	host, err := terminal.NewHost(screen, cfg, fc, logger, opts...)
	if err != nil {
		return err
	}
	defer host.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return host.Run(ctx)
}

// newLogger logs to path, or discards when path is empty.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewJSONHandler(f, nil)), func() { f.Close() }, nil
}
