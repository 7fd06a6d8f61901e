package systems

import (
	"errors"
	"log/slog"
	"time"
)

// Auto launch defaults.
const (
	DefaultAutoInterval   = time.Second
	DefaultIdleResume     = 10 * time.Second
	DefaultFinaleCount    = 32
	DefaultFinaleInterval = 170 * time.Millisecond
)

// AutoLauncher fires shells on a timer while the user is idle. A pointer
// gesture pauses it; it resumes once no gesture has been seen for
// IdleResume. A finale fires FinaleCount cheap shells in rapid succession
// regardless of the pause state.
type AutoLauncher struct {
	Enabled        bool
	Interval       time.Duration
	IdleResume     time.Duration
	FinaleCount    int
	FinaleInterval time.Duration

	paused       bool
	sinceLaunch  time.Duration
	sinceGesture time.Duration
	finaleLeft   int
	sinceFinale  time.Duration
}

// NewAutoLauncher creates an enabled launcher with default timings.
func NewAutoLauncher() *AutoLauncher {
	return &AutoLauncher{
		Enabled:        true,
		Interval:       DefaultAutoInterval,
		IdleResume:     DefaultIdleResume,
		FinaleCount:    DefaultFinaleCount,
		FinaleInterval: DefaultFinaleInterval,
	}
}

// Running reports whether timed launches are currently firing.
func (a *AutoLauncher) Running() bool {
	return a.Enabled && !a.paused
}

// Gesture pauses timed launches and restarts the idle countdown.
func (a *AutoLauncher) Gesture() {
	a.paused = true
	a.sinceGesture = 0
}

// StartFinale queues a finale. A running finale is restarted.
func (a *AutoLauncher) StartFinale() {
	a.finaleLeft = a.FinaleCount
	a.sinceFinale = a.FinaleInterval
}

// FinaleActive reports whether finale shells are still queued.
func (a *AutoLauncher) FinaleActive() bool {
	return a.finaleLeft > 0
}

// Update advances the launcher by elapsed wall time and returns the number
// of shells launched.
func (a *AutoLauncher) Update(w *World, elapsed time.Duration) int {
	launched := 0

	if a.finaleLeft > 0 {
		a.sinceFinale += elapsed
		for a.finaleLeft > 0 && a.sinceFinale >= a.FinaleInterval {
			a.sinceFinale -= a.FinaleInterval
			a.finaleLeft--
			if a.launch(w, w.RandomFastShellName()) {
				launched++
			}
		}
	}

	if !a.Enabled {
		return launched
	}

	if a.paused {
		a.sinceGesture += elapsed
		if a.sinceGesture < a.IdleResume {
			return launched
		}
		a.paused = false
		a.sinceLaunch = 0
	}

	a.sinceLaunch += elapsed
	if a.sinceLaunch >= a.Interval {
		// One launch per interval; a long stall does not queue a volley.
		a.sinceLaunch = 0
		if a.launch(w, w.settings.ShellName()) {
			launched++
		}
	}
	return launched
}

func (a *AutoLauncher) launch(w *World, name string) bool {
	size, x, height := w.RandomShellSize()
	if _, err := w.LaunchShell(name, size, x, height); err != nil {
		if errors.Is(err, ErrStarLimit) {
			slog.Debug("auto launch refused", "shell", name, "stars", w.StarCount())
		} else {
			slog.Warn("auto launch failed", "shell", name, "error", err)
		}
		return false
	}
	return true
}
