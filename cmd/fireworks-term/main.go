// Command fireworks-term runs the firework show in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/fireworks/audio"
	"github.com/pthm-cable/fireworks/config"
	"github.com/pthm-cable/fireworks/glyph"
	"github.com/pthm-cable/fireworks/show"
	"github.com/pthm-cable/fireworks/terminal"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	fps := flag.Int("fps", 30, "Frames per second")
	logFile := flag.String("log-file", "", "Write logs to this file (the terminal owns stdout)")
	flag.Parse()

	if err := run(*configPath, *fps, *logFile); err != nil {
		fmt.Fprintln(os.Stderr, "fireworks-term:", err)
		os.Exit(1)
	}
}

func run(configPath string, fps int, logFile string) error {
	var logOut io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug})))

	if err := config.Init(configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	player := audio.NewPlayer(cfg.Audio, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	if err := player.Init(); err != nil {
		slog.Warn("audio disabled", "error", err)
	}
	defer player.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	s := show.New(show.Options{
		Config: cfg,
		Audio:  player,
		Glyphs: glyph.NewSource(),
	})
	app := terminal.NewApp(screen, s, fps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("starting terminal show", "fps", fps, "shell", cfg.Simulation.Shell)
	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
