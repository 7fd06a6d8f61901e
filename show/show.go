// Package show drives one firework show independent of the output device:
// timed launches, simulation ticks, sky lighting, rendering into a draw
// sink and telemetry windows.
package show

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/pthm-cable/fireworks/components"
	"github.com/pthm-cable/fireworks/config"
	"github.com/pthm-cable/fireworks/systems"
	"github.com/pthm-cable/fireworks/telemetry"
)

// Frame is a draw sink that is told when a frame starts and ends.
type Frame interface {
	systems.DrawSink
	BeginFrame(quality systems.Quality, fade float64)
	EndFrame(sky components.RGB)
}

// Options configures a new Show.
type Options struct {
	Config  *config.Config
	Runtime *config.Runtime
	Seed    uint64
	Audio   systems.AudioSink
	Glyphs  systems.GlyphSource

	// Stage size in stage pixels.
	Width, Height float64

	// Telemetry; a nil Output disables CSV files.
	Output         *telemetry.OutputManager
	LogStats       bool
	StatsWindowSec float64
	StatsCallback  func(telemetry.WindowStats)
}

// Show owns the world and everything that advances it.
type Show struct {
	World   *systems.World
	Auto    *systems.AutoLauncher
	Runtime *config.Runtime

	clock     systems.Clock
	tickOpen  bool
	sky       systems.Sky
	trailFade float64
	speed     float64

	collector     *telemetry.Collector
	perf          *telemetry.PerfCollector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
}

// New creates a show from configuration.
func New(opts Options) *Show {
	cfg := opts.Config
	rt := opts.Runtime
	if rt == nil {
		rt = cfg.NewRuntime()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Simulation.Seed
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	world := systems.NewWorld(systems.WorldOptions{
		Rand:     rng,
		Settings: rt,
		Audio:    opts.Audio,
		Glyphs:   opts.Glyphs,
		Width:    opts.Width,
		Height:   opts.Height,
		MaxStars: cfg.Simulation.MaxStars,
	})

	auto := systems.NewAutoLauncher()
	auto.Enabled = rt.AutoLaunch
	auto.Interval = cfg.Derived.AutoInterval
	auto.IdleResume = cfg.Derived.IdleResume
	auto.FinaleCount = cfg.AutoLaunch.FinaleCount
	auto.FinaleInterval = cfg.Derived.FinaleInterval

	window := cfg.Derived.StatsWindow
	if opts.StatsWindowSec > 0 {
		window = time.Duration(opts.StatsWindowSec * float64(time.Second))
	}

	return &Show{
		World:         world,
		Auto:          auto,
		Runtime:       rt,
		clock:         systems.Clock{MaxFrameMs: cfg.Simulation.MaxFrameMs},
		trailFade:     cfg.Simulation.TrailFade,
		speed:         1,
		collector:     telemetry.NewCollector(window),
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		output:        opts.Output,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}
}

// Step advances the show by elapsed wall time. A paused show keeps its
// particles frozen but the sky still settles. The perf sample for a step
// stays open until Render or the next Step closes it.
func (s *Show) Step(elapsed time.Duration) {
	frameTime, lag := s.clock.Step(elapsed)
	s.speed = s.Runtime.SimSpeed() * lag

	s.endTick()
	s.perf.StartTick()
	s.tickOpen = true

	if !s.Runtime.Paused {
		s.perf.StartPhase(telemetry.PhaseLaunch)
		s.Auto.Enabled = s.Runtime.AutoLaunch
		s.Auto.Update(s.World, elapsed)

		s.perf.StartPhase(telemetry.PhaseUpdate)
		s.World.Tick(frameTime, lag)
	}

	s.perf.StartPhase(telemetry.PhaseSky)
	s.sky.Update(s.World, s.Runtime.SkyLighting(), s.speed)

	if !s.Runtime.Paused {
		sim := time.Duration(frameTime * s.Runtime.SimSpeed() * float64(time.Millisecond))
		s.collector.Sample(s.World, sim)
		s.flushTelemetry()
	}
}

// Render draws the current frame into f.
func (s *Show) Render(f Frame) {
	s.perf.StartPhase(telemetry.PhaseRender)
	fade := s.trailFade * s.speed
	if s.Runtime.Paused {
		fade = 0
	}
	f.BeginFrame(s.Runtime.Quality(), fade)
	s.World.Render(f)
	f.EndFrame(s.sky.RGB())
	s.endTick()
	s.perf.RecordFrame()
}

func (s *Show) endTick() {
	if s.tickOpen {
		s.perf.EndTick()
		s.tickOpen = false
	}
}

// Launch fires the selected shell at a normalized pointer position and
// pauses timed launches.
func (s *Show) Launch(position, height float64) {
	s.Auto.Gesture()
	name := s.Runtime.ShellName()
	if _, err := s.World.LaunchShell(name, s.Runtime.ShellSize(), position, height); err != nil {
		if errors.Is(err, systems.ErrStarLimit) {
			slog.Debug("launch refused", "shell", name, "stars", s.World.StarCount())
			return
		}
		slog.Warn("launch failed", "shell", name, "error", err)
	}
}

// Finale queues a rapid volley of shells.
func (s *Show) Finale() {
	s.Auto.StartFinale()
	slog.Info("finale started", "shells", s.Auto.FinaleCount)
}

// Resize changes the stage size.
func (s *Show) Resize(width, height float64) {
	s.World.Resize(width, height)
}

// Sky returns the current sky color.
func (s *Show) Sky() components.RGB {
	return s.sky.RGB()
}

// Perf returns the rolling performance stats.
func (s *Show) Perf() telemetry.PerfStats {
	return s.perf.Stats()
}

// flushTelemetry emits a stats window once it is complete.
func (s *Show) flushTelemetry() {
	if !s.collector.ShouldFlush() {
		return
	}

	stats := s.collector.Flush(s.World)
	perfStats := s.perf.Stats()

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := s.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := s.output.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
