package config

import "github.com/pthm-cable/fireworks/systems"

// Runtime holds the settings the user can change while the show runs.
// It satisfies systems.Settings through the embedded StaticSettings; the UI
// mutates it between ticks.
type Runtime struct {
	systems.StaticSettings

	AutoLaunch bool
	Paused     bool
	ShowPanel  bool
	AudioMuted bool
}

// NewRuntime seeds runtime settings from the loaded configuration.
func (c *Config) NewRuntime() *Runtime {
	return &Runtime{
		StaticSettings: systems.StaticSettings{
			Q:     c.Derived.Quality,
			Shell: c.Simulation.Shell,
			Size:  c.Simulation.Size,
			Speed: c.Simulation.Speed,
			Sky:   c.Derived.SkyLighting,
			Scale: c.Simulation.ScaleFactor,
		},
		AutoLaunch: c.AutoLaunch.Enabled,
		AudioMuted: !c.Audio.Enabled,
	}
}
