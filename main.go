package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fireworks/config"
	"github.com/pthm-cable/fireworks/game"
	"github.com/pthm-cable/fireworks/systems"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = config or time-based)")
	maxTicks := flag.Uint64("max-ticks", 0, "Stop after N updates (0 = unlimited)")
	shell := flag.String("shell", "", "Shell type (empty = use config)")
	size := flag.Float64("size", 0, "Shell size 1-4 (0 = use config)")
	quality := flag.Int("quality", 0, "Quality 1-3 (0 = use config)")

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

	if *shell != "" && !systems.IsShellName(*shell) {
		slog.Error("unknown shell", "shell", *shell, "known", systems.ShellNames)
		os.Exit(1)
	}
	if *quality != 0 && (*quality < int(systems.QualityLow) || *quality > int(systems.QualityHigh)) {
		slog.Error("quality must be 1-3", "quality", *quality)
		os.Exit(1)
	}
	if *size < 0 || *size > 4 {
		slog.Error("size must be 0-4", "size", *size)
		os.Exit(1)
	}

	opts := game.Options{
		Seed:           *seed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		Shell:          *shell,
		Size:           *size,
		Quality:        systems.Quality(*quality),
	}

	if *headless {
		g := game.NewGameWithOptions(opts)
		defer g.Unload()

		slog.Info("starting headless show",
			"seed", *seed,
			"stats_window", *statsWindow,
			"max_ticks", *maxTicks,
		)

		for {
			g.UpdateHeadless()

			if *maxTicks > 0 && g.Tick() >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				return
			}
		}
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Fireworks")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && g.Tick() >= *maxTicks {
			break
		}
	}
}
