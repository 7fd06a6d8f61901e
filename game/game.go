// Package game wires a firework show to a raylib window: input, rendering,
// audio and the UI. It also runs the show headless for telemetry runs.
package game

import (
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fireworks/audio"
	"github.com/pthm-cable/fireworks/camera"
	"github.com/pthm-cable/fireworks/config"
	"github.com/pthm-cable/fireworks/glyph"
	"github.com/pthm-cable/fireworks/renderer"
	"github.com/pthm-cable/fireworks/show"
	"github.com/pthm-cable/fireworks/systems"
	"github.com/pthm-cable/fireworks/telemetry"
	"github.com/pthm-cable/fireworks/ui"
)

// HeadlessStep is the wall time simulated per headless update.
const HeadlessStep = time.Second / 60

const settingsWidth = 260

// Options configures a game.
type Options struct {
	Seed           uint64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool

	// Overrides applied on top of the loaded config; zero values keep it.
	Shell   string
	Size    float64
	Quality systems.Quality
}

// Game holds the complete game state.
type Game struct {
	cfg     *config.Config
	runtime *config.Runtime
	show    *show.Show
	stage   *camera.Stage

	// Output
	renderer      *renderer.FireworksRenderer
	player        *audio.Player
	outputManager *telemetry.OutputManager

	// UI
	hud       *ui.HUD
	settings  *ui.SettingsPanel
	perfPanel *ui.PerfPanel
	toast     *ui.Toast
	overlays  *ui.OverlayRegistry

	headless bool
	updates  uint64
}

// NewGameWithOptions creates a game. In graphical mode the raylib window
// must already exist.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()
	rt := cfg.NewRuntime()
	if opts.Shell != "" {
		rt.Shell = opts.Shell
	}
	if opts.Size > 0 {
		rt.Size = opts.Size
	}
	if opts.Quality != 0 {
		rt.Q = opts.Quality
	}

	g := &Game{
		cfg:      cfg,
		runtime:  rt,
		headless: opts.Headless,
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	winW, winH := float64(cfg.Screen.Width), float64(cfg.Screen.Height)
	if !opts.Headless {
		winW, winH = float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
	}
	g.stage = camera.New(winW, winH, float64(cfg.Screen.MaxWidth), float64(cfg.Screen.MaxHeight), rt.Scale)

	var sink systems.AudioSink
	if !opts.Headless && cfg.Audio.Enabled {
		g.player = audio.NewPlayer(cfg.Audio, nil)
		if err := g.player.Init(); err != nil {
			slog.Warn("audio disabled", "error", err)
		}
		g.player.SetMuted(rt.AudioMuted)
		sink = g.player
	}

	g.show = show.New(show.Options{
		Config:         cfg,
		Runtime:        rt,
		Seed:           opts.Seed,
		Audio:          sink,
		Glyphs:         glyph.NewSource(),
		Width:          g.stage.W,
		Height:         g.stage.H,
		Output:         om,
		LogStats:       opts.LogStats,
		StatsWindowSec: opts.StatsWindowSec,
	})

	if !opts.Headless {
		g.renderer = renderer.NewFireworksRenderer(g.stage)
		g.renderer.Init()

		g.hud = ui.NewHUD()
		g.settings = ui.NewSettingsPanel(int32(winW)-settingsWidth-10, 10, settingsWidth)
		g.perfPanel = ui.NewPerfPanel(10, 150)
		g.toast = ui.NewToast(ui.DefaultToastHold, ui.DefaultToastFade)
		g.overlays = ui.NewOverlayRegistry()
	}

	slog.Info("show ready",
		"stage_w", g.stage.W,
		"stage_h", g.stage.H,
		"shell", rt.Shell,
		"quality", rt.Q.String(),
		"headless", opts.Headless,
	)
	return g
}

// Update advances the game by one window frame.
func (g *Game) Update() {
	g.handleInput()

	dt := rl.GetFrameTime()
	g.toast.Update(dt)
	g.show.Step(time.Duration(float64(dt) * float64(time.Second)))
	g.updates++
}

// UpdateHeadless advances the show by a fixed step without a window.
func (g *Game) UpdateHeadless() {
	g.show.Step(HeadlessStep)
	g.updates++
}

// Tick returns the number of updates so far.
func (g *Game) Tick() uint64 {
	return g.updates
}

// Show returns the running show.
func (g *Game) Show() *show.Show {
	return g.show
}

// Unload releases resources.
func (g *Game) Unload() {
	if g.renderer != nil {
		g.renderer.Unload()
	}
	if g.player != nil {
		g.player.Close()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
