package systems

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/pthm-cable/fireworks/components"
)

var (
	// ErrInvalidShellColor is returned for a ShellColor whose variant is not
	// single, pair or random.
	ErrInvalidShellColor = errors.New("invalid shell color")
	// ErrInvalidEffect is returned for a death effect a shell cannot carry.
	ErrInvalidEffect = errors.New("invalid shell effect")
	// ErrUnknownShell is returned for a shell type missing from the catalog.
	ErrUnknownShell = errors.New("unknown shell type")
	// ErrStarLimit is returned by Launch while the world is at capacity.
	ErrStarLimit = errors.New("star limit reached")
)

// Launch geometry in stage pixels.
const (
	launchHPad          = 50.0
	launchVPad          = 60.0
	minBurstHeightRatio = 0.4
)

// Shell is a launched or launchable firework built from a ShellSpec.
type Shell struct {
	spec  components.ShellSpec
	world *World
	comet *components.Star
}

// NewShell validates spec and fills its defaults.
func (w *World) NewShell(spec components.ShellSpec) (*Shell, error) {
	if !spec.Color.Valid() {
		return nil, fmt.Errorf("shell %q: %w: kind %d", spec.Name, ErrInvalidShellColor, spec.Color.Kind)
	}
	if spec.Effect >= components.EffectShellBurst {
		return nil, fmt.Errorf("shell %q: %w: %s", spec.Name, ErrInvalidEffect, spec.Effect)
	}

	if spec.StarLifeVariation == 0 {
		spec.StarLifeVariation = 0.125
	}
	if spec.Color.Kind == components.ShellColorUnset {
		spec.Color = components.Single(w.randomColor())
	}
	if spec.GlitterColor == components.NoColor {
		switch spec.Color.Kind {
		case components.ShellColorRandom:
			spec.GlitterColor = w.randomColor()
		default:
			spec.GlitterColor = spec.Color.Colors[0]
		}
	}
	// Scales with the burst surface, like a sphere.
	if spec.StarCount <= 0 {
		density := spec.StarDensity
		if density == 0 {
			density = 1
		}
		scaled := spec.SpreadSize / 54
		spec.StarCount = math.Max(6, scaled*scaled*density)
	}

	return &Shell{spec: spec, world: w}, nil
}

// Spec returns the shell's filled-in descriptor.
func (s *Shell) Spec() components.ShellSpec {
	return s.spec
}

// Launch fires the shell's comet from the bottom of the stage. position is
// the horizontal launch point in [0, 1]; launchHeight is the burst height
// as a fraction of the stage height. The shell bursts where the comet dies.
func (s *Shell) Launch(position, launchHeight float64) error {
	w := s.world
	if w.liveStars >= w.maxStars {
		w.counters.LaunchesRefused++
		return fmt.Errorf("launch %q: %w (%d stars)", s.spec.Name, ErrStarLimit, w.liveStars)
	}

	quality := w.settings.Quality()
	minHeight := w.height * minBurstHeightRatio

	launchX := position*(w.width-launchHPad*2) + launchHPad
	launchY := w.height
	launchDistance := math.Max(math.Min(launchY*launchHeight, launchY-launchVPad), minHeight)
	// Empirical fit of the initial speed needed to climb launchDistance
	// against gravity and heavy drag.
	launchVelocity := math.Pow(launchDistance*0.04, 0.64)

	cometColor := components.White
	if s.spec.Color.Kind == components.ShellColorSingle {
		cometColor = s.spec.Color.Colors[0]
	}
	speedMult, lifeMult := 1.0, 400.0
	if s.spec.Horsetail {
		speedMult, lifeMult = 1.2, 100
	}

	comet := w.AddStar(launchX, launchY, cometColor, math.Pi, launchVelocity*speedMult, launchVelocity*lifeMult, 0, 0)
	comet.Heavy = true
	comet.SpinRadius = RandomRange(w.rng, 0.32, 0.85)
	comet.SparkFreq = 32 / float64(quality)
	if quality == QualityHigh {
		comet.SparkFreq = 8
	}
	comet.SparkLife = 320
	comet.SparkLifeVariation = 3
	if s.spec.Glitter == components.GlitterWillow || s.spec.Effect == components.EffectFallingLeaves {
		comet.SparkFreq = 20 / float64(quality)
		comet.SparkSpeed = 0.5
		comet.SparkLife = 500
	}
	if s.spec.Color.Is(components.Invisible) {
		comet.SparkColor = components.Gold
	}
	comet.Effect = components.EffectShellBurst
	comet.Shell = s
	s.comet = comet

	w.counters.ShellsLaunched++
	w.audio.PlayCue(CueLift, 1)
	return nil
}

// Detonate bursts the shell at its comet's final position.
func (s *Shell) Detonate(comet *components.Star) {
	if err := s.Burst(comet.X, comet.Y); err != nil {
		slog.Warn("shell burst failed", "shell", s.spec.Name, "error", err)
	}
	s.comet = nil
}

// Burst spawns the shell's stars at (x, y), followed by any pistil and
// streamer sub-shells and a flash. The invalid-color check runs before
// anything is emitted.
func (s *Shell) Burst(x, y float64) error {
	spec := &s.spec
	if !spec.Color.Valid() || spec.Color.Kind == components.ShellColorUnset {
		return fmt.Errorf("burst %q: %w: kind %d", spec.Name, ErrInvalidShellColor, spec.Color.Kind)
	}
	w := s.world

	b := &burst{
		shell:   s,
		x:       x,
		y:       y,
		speed:   spec.SpreadSize / 96,
		glitter: glitterFor(spec.Glitter, w.settings.Quality()),
	}
	if spec.Effect == components.EffectCrossette || spec.Effect == components.EffectCrackle {
		b.latch = &components.BurstLatch{}
	}

	switch spec.Color.Kind {
	case components.ShellColorSingle, components.ShellColorRandom:
		b.color = spec.Color.Colors[0]
		if spec.Color.Kind == components.ShellColorRandom {
			b.color = components.NoColor
		}
		switch {
		case spec.Ring:
			b.ring()
		case spec.Bless:
			b.text()
			b.sphere(spec.StarCount, 0, twoPi)
		default:
			b.sphere(spec.StarCount, 0, twoPi)
		}

	case components.ShellColorPair:
		if w.rng.Float64() < 0.5 {
			// Two hemispheres; a half arc halves the star count by itself.
			start := w.rng.Float64() * math.Pi
			b.color = spec.Color.Colors[0]
			b.sphere(spec.StarCount, start, math.Pi)
			b.color = spec.Color.Colors[1]
			b.sphere(spec.StarCount, start+math.Pi, math.Pi)
		} else {
			b.color = spec.Color.Colors[0]
			b.sphere(spec.StarCount/2, 0, twoPi)
			b.color = spec.Color.Colors[1]
			b.sphere(spec.StarCount/2, 0, twoPi)
		}
	}

	if spec.Pistil {
		if err := s.subBurst(x, y, s.pistilSpec()); err != nil {
			return err
		}
	}
	if spec.Streamers {
		if err := s.subBurst(x, y, s.streamerSpec()); err != nil {
			return err
		}
	}

	w.AddFlash(x, y, spec.SpreadSize/4)

	// Only the launched shell plays the burst sound; sub-shells have no
	// comet. Smaller shells than the selected size sound smaller.
	if s.comet != nil {
		const maxDiff = 2.0
		sizeDiff := math.Min(maxDiff, w.settings.ShellSize()-spec.ShellSize)
		scale := (1-sizeDiff/maxDiff)*0.3 + 0.7
		w.audio.PlayCue(CueBurst, scale)
		w.counters.Bursts++
	}
	return nil
}

func (s *Shell) subBurst(x, y float64, spec components.ShellSpec) error {
	inner, err := s.world.NewShell(spec)
	if err != nil {
		return fmt.Errorf("%s sub-shell of %q: %w", spec.Name, s.spec.Name, err)
	}
	return inner.Burst(x, y)
}

func (s *Shell) pistilSpec() components.ShellSpec {
	spec := components.ShellSpec{
		Name:              "pistil",
		ShellSize:         s.spec.ShellSize,
		SpreadSize:        s.spec.SpreadSize * 0.5,
		StarLife:          s.spec.StarLife * 0.6,
		StarLifeVariation: s.spec.StarLifeVariation,
		StarDensity:       1.4,
		Glitter:           components.GlitterLight,
		GlitterColor:      components.White,
	}
	if s.spec.PistilColor.Valid() {
		spec.Color = components.Single(s.spec.PistilColor)
	}
	if s.spec.PistilColor == components.Gold {
		spec.GlitterColor = components.Gold
	}
	return spec
}

func (s *Shell) streamerSpec() components.ShellSpec {
	return components.ShellSpec{
		Name:              "streamers",
		ShellSize:         s.spec.ShellSize,
		SpreadSize:        s.spec.SpreadSize * 0.9,
		StarLife:          s.spec.StarLife * 0.8,
		StarLifeVariation: s.spec.StarLifeVariation,
		StarCount:         math.Floor(math.Max(6, s.spec.SpreadSize/45)),
		Color:             components.Single(components.White),
		Glitter:           components.GlitterStreamer,
	}
}

// burst carries the per-burst state shared by the star factory.
type burst struct {
	shell   *Shell
	x, y    float64
	speed   float64
	color   components.Color // NoColor picks a color per star
	glitter glitterProfile
	latch   *components.BurstLatch
}

func (b *burst) starColor() components.Color {
	if b.color == components.NoColor {
		return b.shell.world.randomColor()
	}
	return b.color
}

func (b *burst) starLife() float64 {
	spec := &b.shell.spec
	return spec.StarLife + b.shell.world.rng.Float64()*spec.StarLife*spec.StarLifeVariation
}

// sphere emits a spherical burst over an arc.
func (b *burst) sphere(count, startAngle, arcLength float64) {
	for angle, speedMult := range DistributePoints(b.shell.world.rng, count, startAngle, arcLength) {
		b.star(angle, speedMult)
	}
}

// star is the factory for primary burst stars.
func (b *burst) star(angle, speedMult float64) {
	sh := b.shell
	spec := &sh.spec
	w := sh.world

	// Lift non-horsetail bursts slightly so they stay visually centered
	// for most of their life. Horsetails inherit the comet's motion.
	offX, offY := 0.0, -spec.SpreadSize/1800
	if spec.Horsetail {
		offX, offY = 0, 0
		if sh.comet != nil {
			offX, offY = sh.comet.SpeedX, sh.comet.SpeedY
		}
	}

	star := w.AddStar(b.x, b.y, b.starColor(), angle, speedMult*b.speed, b.starLife(), offX, offY)

	if spec.SecondColor.Valid() {
		star.TransitionTime = spec.StarLife * (w.rng.Float64()*0.05 + 0.32)
		star.SecondColor = spec.SecondColor
	}

	if spec.Strobe {
		star.TransitionTime = spec.StarLife * (w.rng.Float64()*0.08 + 0.46)
		star.Strobe = true
		// Duration of the "on" step; the pattern is on:off:off.
		star.StrobeFreq = w.rng.Float64()*20 + 40
		if spec.StrobeColor.Valid() {
			star.SecondColor = spec.StrobeColor
		}
	}

	star.Effect = spec.Effect
	star.Latch = b.latch

	if spec.Glitter != components.GlitterNone {
		b.glitter.apply(w, star, spec.GlitterColor)
	}
}

// ring emits a randomly rotated, horizontally squashed ring. Ring stars
// keep their glitter but carry no transitions or death effects.
func (b *burst) ring() {
	sh := b.shell
	spec := &sh.spec
	w := sh.world

	startAngle := w.rng.Float64() * math.Pi
	r := w.rng.Float64()
	squash := r*r*0.85 + 0.15

	for angle := range DistributeArc(w.rng, 0, twoPi, spec.StarCount, 0) {
		initSpeedX := math.Sin(angle) * b.speed * squash
		initSpeedY := math.Cos(angle) * b.speed
		newSpeed := PointDist(0, 0, initSpeedX, initSpeedY)
		newAngle := PointAngle(0, 0, initSpeedX, initSpeedY) + startAngle

		star := w.AddStar(b.x, b.y, b.starColor(), newAngle, newSpeed, b.starLife(), 0, 0)
		if spec.Glitter != components.GlitterNone {
			b.glitter.apply(w, star, spec.GlitterColor)
		}
	}
}
