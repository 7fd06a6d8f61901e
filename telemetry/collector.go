package telemetry

import (
	"time"

	"github.com/pthm-cable/fireworks/systems"
)

// Collector samples a world every tick and produces WindowStats once per
// window of simulated time.
type Collector struct {
	window  time.Duration
	elapsed time.Duration
	simTime time.Duration

	windowStartFrame uint64
	last             systems.Counters

	stars  []float64
	sparks []float64
}

// NewCollector creates a new stats collector. window is the simulated time
// covered by each WindowStats.
func NewCollector(window time.Duration) *Collector {
	if window <= 0 {
		window = 5 * time.Second
	}
	return &Collector{window: window}
}

// Sample records the live particle counts after a tick that advanced the
// simulation by elapsed.
func (c *Collector) Sample(w *systems.World, elapsed time.Duration) {
	c.elapsed += elapsed
	c.simTime += elapsed
	c.stars = append(c.stars, float64(w.StarCount()))
	c.sparks = append(c.sparks, float64(w.SparkCount()))
}

// ShouldFlush returns true once the current window has been covered.
func (c *Collector) ShouldFlush() bool {
	return c.elapsed >= c.window
}

// Flush produces a WindowStats and resets the window. Event counts are the
// difference between the world's counters now and at the previous flush.
func (c *Collector) Flush(w *systems.World) WindowStats {
	now := w.Counters()
	d := now.Sub(c.last)

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   w.Frame(),
		SimTimeSec:       c.simTime.Seconds(),

		ShellsLaunched:  d.ShellsLaunched,
		LaunchesRefused: d.LaunchesRefused,
		Bursts:          d.Bursts,
		EffectsFired:    d.EffectsFired,
		StarsSpawned:    d.StarsSpawned,
		StarsRetired:    d.StarsRetired,
		SparksSpawned:   d.SparksSpawned,
		SparksRetired:   d.SparksRetired,
	}
	stats.StarsMean, stats.StarsP50, stats.StarsP90, stats.StarsMax = Summarize(c.stars)
	stats.SparksMean, stats.SparksP50, stats.SparksP90, stats.SparksMax = Summarize(c.sparks)
	stats.StarPoolFree, _, stats.SparkPoolFree, _ = w.PoolStats()

	// Reset for next window
	c.last = now
	c.windowStartFrame = w.Frame()
	c.elapsed = 0
	c.stars = c.stars[:0]
	c.sparks = c.sparks[:0]

	return stats
}
