package components

// Star is a burst or comet particle. Stars carry the color, spin and spark
// emission state; the world resets every field when a star is acquired.
type Star struct {
	X, Y           float64
	PrevX, PrevY   float64
	SpeedX, SpeedY float64
	Life           float64 // remaining milliseconds
	FullLife       float64

	Color          Color
	SecondColor    Color // NoColor when the star never changes color
	TransitionTime float64
	ColorChanged   bool
	Visible        bool

	Strobe     bool
	StrobeFreq float64

	SpinAngle  float64
	SpinSpeed  float64
	SpinRadius float64
	Heavy      bool

	// Spark emission
	SparkFreq          float64
	SparkSpeed         float64
	SparkTimer         float64
	SparkColor         Color
	SparkLife          float64
	SparkLifeVariation float64

	// Death payload
	Effect Effect
	Shell  Detonator   // comets only
	Latch  *BurstLatch // shared by every star of one burst

	UpdateFrame uint64
}

// Spark is a short-lived trail particle.
type Spark struct {
	X, Y           float64
	PrevX, PrevY   float64
	SpeedX, SpeedY float64
	Life           float64
	Color          Color

	UpdateFrame uint64
}

// BurstFlash is a one-frame radial glow at a burst site.
type BurstFlash struct {
	X, Y   float64
	Radius float64
}

// Detonator is implemented by a shell waiting on its comet.
type Detonator interface {
	Detonate(comet *Star)
}

// BurstLatch is shared by the stars of one burst so that death sounds play
// once per burst rather than once per star.
type BurstLatch struct {
	SoundPlayed bool
}

// Claim returns true the first time it is called on a latch. A nil latch
// always claims.
func (l *BurstLatch) Claim() bool {
	if l == nil {
		return true
	}
	if l.SoundPlayed {
		return false
	}
	l.SoundPlayed = true
	return true
}
