// Package config provides configuration loading and access for the show.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/fireworks/systems"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Simulation SimulationConfig `yaml:"simulation"`
	AutoLaunch AutoLaunchConfig `yaml:"auto_launch"`
	Audio      AudioConfig      `yaml:"audio"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
	MaxWidth  int `yaml:"max_width"`  // Container cap; 0 = unlimited
	MaxHeight int `yaml:"max_height"` // Container cap; 0 = unlimited
}

// SimulationConfig holds the user-facing show settings and engine limits.
type SimulationConfig struct {
	Quality     int     `yaml:"quality"`      // 1=low, 2=normal, 3=high
	Shell       string  `yaml:"shell"`        // Catalog name or "Random"
	Size        float64 `yaml:"size"`         // Shell size, 0..4
	Speed       float64 `yaml:"speed"`        // Simulation speed multiplier, 0..1
	SkyLighting int     `yaml:"sky_lighting"` // 0=none, 1=dim, 2=normal
	ScaleFactor float64 `yaml:"scale_factor"` // Stage pixels per container pixel
	MaxFrameMs  float64 `yaml:"max_frame_ms"` // Cap for a single tick after a stall
	MaxStars    int     `yaml:"max_stars"`    // Launches refused above this count
	TrailFade   float64 `yaml:"trail_fade"`   // Trail layer fade per 60Hz tick
	Seed        uint64  `yaml:"seed"`         // 0 = time based
}

// AutoLaunchConfig holds automatic launch timing. Durations are in seconds.
type AutoLaunchConfig struct {
	Enabled        bool    `yaml:"enabled"`
	Interval       float64 `yaml:"interval"`
	IdleResume     float64 `yaml:"idle_resume"`
	FinaleCount    int     `yaml:"finale_count"`
	FinaleInterval float64 `yaml:"finale_interval"`
}

// AudioConfig holds audio playback parameters.
type AudioConfig struct {
	Enabled      bool                 `yaml:"enabled"`
	MasterVolume float64              `yaml:"master_volume"`
	SampleRate   int                  `yaml:"sample_rate"`
	Cues         map[string]CueConfig `yaml:"cues"`
}

// CueConfig describes how a cue is played at full scale.
type CueConfig struct {
	Volume  float64 `yaml:"volume"`
	RateMin float64 `yaml:"rate_min"`
	RateMax float64 `yaml:"rate_max"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // Seconds per window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // Ticks in the rolling perf window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Quality        systems.Quality
	SkyLighting    systems.SkyLighting
	AutoInterval   time.Duration
	IdleResume     time.Duration
	FinaleInterval time.Duration
	StatsWindow    time.Duration
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks value ranges. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	s := c.Simulation
	check(s.Quality >= int(systems.QualityLow) && s.Quality <= int(systems.QualityHigh),
		"simulation.quality %d not in 1..3", s.Quality)
	check(s.SkyLighting >= int(systems.SkyNone) && s.SkyLighting <= int(systems.SkyNormal),
		"simulation.sky_lighting %d not in 0..2", s.SkyLighting)
	check(s.Size >= 0 && s.Size <= 4, "simulation.size %.2f not in 0..4", s.Size)
	check(s.Speed >= 0 && s.Speed <= 1, "simulation.speed %.2f not in 0..1", s.Speed)
	check(s.ScaleFactor > 0, "simulation.scale_factor must be positive")
	check(s.MaxStars > 0, "simulation.max_stars must be positive")
	check(s.TrailFade >= 0 && s.TrailFade <= 1, "simulation.trail_fade %.3f not in 0..1", s.TrailFade)
	check(systems.IsShellName(s.Shell), "simulation.shell %q is not a shell type", s.Shell)

	check(c.Screen.Width > 0 && c.Screen.Height > 0, "screen size must be positive")
	check(c.AutoLaunch.Interval > 0, "auto_launch.interval must be positive")
	check(c.AutoLaunch.FinaleInterval > 0, "auto_launch.finale_interval must be positive")
	check(c.AutoLaunch.FinaleCount >= 0, "auto_launch.finale_count must not be negative")

	for name, cue := range c.Audio.Cues {
		check(cue.RateMin > 0 && cue.RateMax >= cue.RateMin,
			"audio.cues.%s rate range %.2f..%.2f", name, cue.RateMin, cue.RateMax)
	}
	check(c.Telemetry.StatsWindow > 0, "telemetry.stats_window must be positive")

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Quality = systems.Quality(c.Simulation.Quality)
	c.Derived.SkyLighting = systems.SkyLighting(c.Simulation.SkyLighting)
	c.Derived.AutoInterval = seconds(c.AutoLaunch.Interval)
	c.Derived.IdleResume = seconds(c.AutoLaunch.IdleResume)
	c.Derived.FinaleInterval = seconds(c.AutoLaunch.FinaleInterval)
	c.Derived.StatsWindow = seconds(c.Telemetry.StatsWindow)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
