package systems

import (
	"math"
	"math/rand/v2"

	"github.com/pthm-cable/fireworks/components"
)

// Physics constants. Drag factors are per 60Hz tick and are rescaled by the
// tick speed.
const (
	Gravity          = 0.9 // px/s^2
	StarAirDrag      = 0.98
	StarAirDragHeavy = 0.992
	SparkAirDrag     = 0.9
)

// DefaultMaxStars caps live stars before launches are refused.
const DefaultMaxStars = 12000

// WorldOptions configures a World.
type WorldOptions struct {
	Rand      *rand.Rand
	Settings  Settings
	Audio     AudioSink
	Glyphs    GlyphSource
	Blessings []string
	Width     float64 // stage size in stage pixels
	Height    float64
	MaxStars  int
}

// Counters are cumulative event counts since the world was created.
type Counters struct {
	ShellsLaunched  int
	LaunchesRefused int
	Bursts          int
	EffectsFired    int
	StarsSpawned    int
	StarsRetired    int
	SparksSpawned   int
	SparksRetired   int
}

// Sub returns the per-field difference c - prev.
func (c Counters) Sub(prev Counters) Counters {
	return Counters{
		ShellsLaunched:  c.ShellsLaunched - prev.ShellsLaunched,
		LaunchesRefused: c.LaunchesRefused - prev.LaunchesRefused,
		Bursts:          c.Bursts - prev.Bursts,
		EffectsFired:    c.EffectsFired - prev.EffectsFired,
		StarsSpawned:    c.StarsSpawned - prev.StarsSpawned,
		StarsRetired:    c.StarsRetired - prev.StarsRetired,
		SparksSpawned:   c.SparksSpawned - prev.SparksSpawned,
		SparksRetired:   c.SparksRetired - prev.SparksRetired,
	}
}

// World owns every live particle, the pools behind them and the frame
// counter. It is not safe for concurrent use.
type World struct {
	rng       *rand.Rand
	settings  Settings
	audio     AudioSink
	glyphs    GlyphSource
	blessings []string

	width, height float64
	maxStars      int

	frame uint64

	stars   [components.ColorSlots][]*components.Star
	sparks  [components.ColorSlots][]*components.Spark
	flashes []*components.BurstFlash

	starPool  *Pool[components.Star]
	sparkPool *Pool[components.Spark]
	flashPool *Pool[components.BurstFlash]

	liveStars  int
	liveSparks int
	lastColor  components.Color
	counters   Counters
	visibleBuf []*components.Star
}

// NewWorld creates an empty world. Missing collaborators fall back to a
// PCG source seeded from the runtime, default settings, silent audio and
// no text bursts.
func NewWorld(opts WorldOptions) *World {
	w := &World{
		rng:       opts.Rand,
		settings:  opts.Settings,
		audio:     opts.Audio,
		glyphs:    opts.Glyphs,
		blessings: opts.Blessings,
		width:     opts.Width,
		height:    opts.Height,
		maxStars:  opts.MaxStars,
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if w.settings == nil {
		w.settings = DefaultSettings
	}
	if w.audio == nil {
		w.audio = silentAudio{}
	}
	if len(w.blessings) == 0 {
		w.blessings = DefaultBlessings
	}
	if w.maxStars <= 0 {
		w.maxStars = DefaultMaxStars
	}
	w.starPool = NewPool(w.retireStar)
	w.sparkPool = NewPool[components.Spark](nil)
	w.flashPool = NewPool[components.BurstFlash](nil)
	return w
}

// Resize sets the stage size used by launches.
func (w *World) Resize(width, height float64) {
	w.width = width
	w.height = height
}

// Size returns the stage size.
func (w *World) Size() (width, height float64) {
	return w.width, w.height
}

// SetSettings swaps the settings snapshot. Call between ticks.
func (w *World) SetSettings(s Settings) {
	w.settings = s
}

// Settings returns the current settings snapshot.
func (w *World) Settings() Settings {
	return w.settings
}

// Rand returns the world's random source.
func (w *World) Rand() *rand.Rand {
	return w.rng
}

// Frame returns the number of ticks run so far.
func (w *World) Frame() uint64 {
	return w.frame
}

// Counters returns cumulative event counts.
func (w *World) Counters() Counters {
	return w.counters
}

// StarCount returns the number of live stars.
func (w *World) StarCount() int {
	return w.liveStars
}

// SparkCount returns the number of live sparks.
func (w *World) SparkCount() int {
	return w.liveSparks
}

// StarsOf returns the live stars of one color. The slice is owned by the
// world and is only valid until the next tick.
func (w *World) StarsOf(c components.Color) []*components.Star {
	return w.stars[c]
}

// SparksOf returns the live sparks of one color.
func (w *World) SparksOf(c components.Color) []*components.Spark {
	return w.sparks[c]
}

// PoolStats reports pool sizes for telemetry.
func (w *World) PoolStats() (starsFree, starsAllocated, sparksFree, sparksAllocated int) {
	return w.starPool.Free(), w.starPool.Allocated(), w.sparkPool.Free(), w.sparkPool.Allocated()
}

// AddStar spawns a star moving along angle at speed plus an optional
// velocity offset. New stars are stamped with the current frame, so a star
// created during a tick is first advanced on the following tick.
func (w *World) AddStar(x, y float64, color components.Color, angle, speed, life, offX, offY float64) *components.Star {
	s := w.starPool.Acquire()
	*s = components.Star{
		X:                  x,
		Y:                  y,
		PrevX:              x,
		PrevY:              y,
		SpeedX:             math.Sin(angle)*speed + offX,
		SpeedY:             math.Cos(angle)*speed + offY,
		Life:               life,
		FullLife:           life,
		Color:              color,
		SecondColor:        components.NoColor,
		Visible:            true,
		SpinAngle:          w.rng.Float64() * twoPi,
		SpinSpeed:          0.8,
		SparkSpeed:         1,
		SparkColor:         color,
		SparkLife:          750,
		SparkLifeVariation: 0.25,
		UpdateFrame:        w.frame,
	}
	w.stars[color] = append(w.stars[color], s)
	w.liveStars++
	w.counters.StarsSpawned++
	return s
}

// AddSpark spawns a spark. Like stars, sparks created during a tick wait
// for the next one.
func (w *World) AddSpark(x, y float64, color components.Color, angle, speed, life float64) *components.Spark {
	s := w.sparkPool.Acquire()
	*s = components.Spark{
		X:           x,
		Y:           y,
		PrevX:       x,
		PrevY:       y,
		SpeedX:      math.Sin(angle) * speed,
		SpeedY:      math.Cos(angle) * speed,
		Life:        life,
		Color:       color,
		UpdateFrame: w.frame,
	}
	w.sparks[color] = append(w.sparks[color], s)
	w.liveSparks++
	w.counters.SparksSpawned++
	return s
}

// AddFlash queues a burst flash for the next render.
func (w *World) AddFlash(x, y, radius float64) {
	f := w.flashPool.Acquire()
	f.X, f.Y, f.Radius = x, y, radius
	w.flashes = append(w.flashes, f)
}

// retireStar is the star pool teardown. It fires the death effect exactly
// once and clears the effect payload so a recycled star never fires it
// again.
func (w *World) retireStar(s *components.Star) {
	w.liveStars--
	w.counters.StarsRetired++

	effect := s.Effect
	if handler := handlerFor(effect); handler != nil {
		handler(w, s)
		if effect != components.EffectShellBurst {
			w.counters.EffectsFired++
		}
	}

	s.Effect = components.EffectNone
	s.Shell = nil
	s.Latch = nil
	s.SecondColor = components.NoColor
	s.TransitionTime = 0
	s.ColorChanged = false
}

func (w *World) retireSpark(s *components.Spark) {
	w.liveSparks--
	w.counters.SparksRetired++
	w.sparkPool.Release(s)
}

// randomColor picks a visible palette color different from the previous
// pick.
func (w *World) randomColor() components.Color {
	colors := components.VisibleColors
	if !w.lastColor.Visible() {
		w.lastColor = RandomChoice(w.rng, colors)
		return w.lastColor
	}
	i := randomIndex(w.rng, len(colors)-1)
	if colors[i] >= w.lastColor {
		i++
	}
	w.lastColor = colors[i]
	return w.lastColor
}

// Clear retires every live particle without firing death effects.
func (w *World) Clear() {
	for _, c := range components.AllColors {
		for _, s := range w.stars[c] {
			s.Effect = components.EffectNone
			w.starPool.Release(s)
		}
		clear(w.stars[c])
		w.stars[c] = w.stars[c][:0]

		for _, sp := range w.sparks[c] {
			w.retireSpark(sp)
		}
		clear(w.sparks[c])
		w.sparks[c] = w.sparks[c][:0]
	}
	for _, f := range w.flashes {
		w.flashPool.Release(f)
	}
	clear(w.flashes)
	w.flashes = w.flashes[:0]
}
