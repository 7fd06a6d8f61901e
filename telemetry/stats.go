package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartFrame uint64  `csv:"-"`
	WindowEndFrame   uint64  `csv:"window_end"`
	SimTimeSec       float64 `csv:"sim_time"`

	// Events during window
	ShellsLaunched  int `csv:"shells"`
	LaunchesRefused int `csv:"launches_refused"`
	Bursts          int `csv:"bursts"`
	EffectsFired    int `csv:"effects"`
	StarsSpawned    int `csv:"stars_spawned"`
	StarsRetired    int `csv:"stars_retired"`
	SparksSpawned   int `csv:"sparks_spawned"`
	SparksRetired   int `csv:"sparks_retired"`

	// Live particle counts sampled every tick
	StarsMean  float64 `csv:"stars_mean"`
	StarsP50   float64 `csv:"stars_p50"`
	StarsP90   float64 `csv:"stars_p90"`
	StarsMax   float64 `csv:"stars_max"`
	SparksMean float64 `csv:"sparks_mean"`
	SparksP50  float64 `csv:"sparks_p50"`
	SparksP90  float64 `csv:"sparks_p90"`
	SparksMax  float64 `csv:"sparks_max"`

	// Pool occupancy at window end
	StarPoolFree  int `csv:"star_pool_free"`
	SparkPoolFree int `csv:"spark_pool_free"`
}

// Summarize returns the mean, median, 90th percentile and maximum of values.
// It returns zeros for an empty slice.
func Summarize(values []float64) (mean, p50, p90, maxV float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.5, stat.LinInterp, sorted, nil)
	p90 = stat.Quantile(0.9, stat.LinInterp, sorted, nil)
	maxV = floats.Max(sorted)
	return mean, p50, p90, maxV
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartFrame),
		slog.Uint64("window_end", s.WindowEndFrame),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("shells", s.ShellsLaunched),
		slog.Int("launches_refused", s.LaunchesRefused),
		slog.Int("bursts", s.Bursts),
		slog.Int("effects", s.EffectsFired),
		slog.Int("stars_spawned", s.StarsSpawned),
		slog.Int("stars_retired", s.StarsRetired),
		slog.Int("sparks_spawned", s.SparksSpawned),
		slog.Int("sparks_retired", s.SparksRetired),
		slog.Float64("stars_mean", s.StarsMean),
		slog.Float64("stars_p90", s.StarsP90),
		slog.Float64("stars_max", s.StarsMax),
		slog.Float64("sparks_mean", s.SparksMean),
		slog.Float64("sparks_p90", s.SparksP90),
		slog.Float64("sparks_max", s.SparksMax),
		slog.Int("star_pool_free", s.StarPoolFree),
		slog.Int("spark_pool_free", s.SparkPoolFree),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
