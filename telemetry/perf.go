package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Phase names for one frame.
const (
	PhaseLaunch = "launch"
	PhaseUpdate = "update"
	PhaseSky    = "sky"
	PhaseRender = "render"
)

// Phases lists every phase in frame order.
var Phases = []string{PhaseLaunch, PhaseUpdate, PhaseSky, PhaseRender}

// perfSample holds timing data for a single frame in microseconds.
type perfSample struct {
	tick   float64
	phases map[string]float64
}

// PerfCollector tracks frame timings over a rolling window.
type PerfCollector struct {
	windowSize  int
	samples     []perfSample
	writeIndex  int
	sampleCount int

	current    map[string]float64
	tickStart  time.Time
	phaseStart time.Time
	lastPhase  string

	// Wall time between frames (graphics mode)
	lastFrameTime time.Time
	frameDuration time.Duration

	now func() time.Time
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to aggregate over.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]perfSample, windowSize),
		current:    make(map[string]float64),
		now:        time.Now,
	}
}

// SetClock replaces the time source used for all measurements.
func (p *PerfCollector) SetClock(now func() time.Time) {
	p.now = now
}

// StartTick begins timing a new frame.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.current = make(map[string]float64, len(Phases))
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	p.endPhase(now)
	p.phaseStart = now
	p.lastPhase = phase
}

func (p *PerfCollector) endPhase(now time.Time) {
	if p.lastPhase != "" {
		p.current[p.lastPhase] += micros(now.Sub(p.phaseStart))
	}
}

// EndTick finishes timing the current frame and records the sample.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.endPhase(now)
	p.lastPhase = ""

	p.samples[p.writeIndex] = perfSample{
		tick:   micros(now.Sub(p.tickStart)),
		phases: p.current,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records wall time between presented frames.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

func micros(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickUS float64
	StdTickUS float64
	MaxTickUS float64

	// Phase breakdown: average microseconds and share of the tick
	PhaseAvgUS map[string]float64
	PhasePct   map[string]float64

	TicksPerSecond float64
	FPS            float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}

	out := PerfStats{
		PhaseAvgUS: make(map[string]float64),
		PhasePct:   make(map[string]float64),
		FPS:        fps,
	}
	if p.sampleCount == 0 {
		return out
	}

	ticks := make([]float64, p.sampleCount)
	phaseSum := make(map[string]float64)
	for i := range p.sampleCount {
		s := p.samples[i]
		ticks[i] = s.tick
		for phase, us := range s.phases {
			phaseSum[phase] += us
		}
	}

	out.AvgTickUS, out.StdTickUS = stat.MeanStdDev(ticks, nil)
	out.MaxTickUS = floats.Max(ticks)
	if p.sampleCount == 1 {
		out.StdTickUS = 0
	}
	for phase, sum := range phaseSum {
		avg := sum / float64(p.sampleCount)
		out.PhaseAvgUS[phase] = avg
		if out.AvgTickUS > 0 {
			out.PhasePct[phase] = avg / out.AvgTickUS * 100
		}
	}
	if out.AvgTickUS > 0 {
		out.TicksPerSecond = 1e6 / out.AvgTickUS
	}
	return out
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", int64(s.AvgTickUS),
		"std_tick_us", int64(s.StdTickUS),
		"max_tick_us", int64(s.MaxTickUS),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Float64("avg_tick_us", s.AvgTickUS),
		slog.Float64("max_tick_us", s.MaxTickUS),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		attrs = append(attrs, slog.Float64(phase+"_pct", s.PhasePct[phase]))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd   uint64  `csv:"window_end"`
	AvgTickUS   float64 `csv:"avg_tick_us"`
	StdTickUS   float64 `csv:"std_tick_us"`
	MaxTickUS   float64 `csv:"max_tick_us"`
	TicksPerSec float64 `csv:"ticks_per_sec"`
	FPS         float64 `csv:"fps"`
	LaunchPct   float64 `csv:"launch_pct"`
	UpdatePct   float64 `csv:"update_pct"`
	SkyPct      float64 `csv:"sky_pct"`
	RenderPct   float64 `csv:"render_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd uint64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:   windowEnd,
		AvgTickUS:   s.AvgTickUS,
		StdTickUS:   s.StdTickUS,
		MaxTickUS:   s.MaxTickUS,
		TicksPerSec: s.TicksPerSecond,
		FPS:         s.FPS,
		LaunchPct:   s.PhasePct[PhaseLaunch],
		UpdatePct:   s.PhasePct[PhaseUpdate],
		SkyPct:      s.PhasePct[PhaseSky],
		RenderPct:   s.PhasePct[PhaseRender],
	}
}
