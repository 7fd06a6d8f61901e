package systems

import (
	"fmt"

	"github.com/pthm-cable/fireworks/components"
)

// Quality scales spark emission and burst density.
type Quality int

const (
	QualityLow    Quality = 1
	QualityNormal Quality = 2
	QualityHigh   Quality = 3
)

func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityNormal:
		return "normal"
	case QualityHigh:
		return "high"
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// SkyLighting sets how strongly live stars tint the sky.
type SkyLighting int

const (
	SkyNone SkyLighting = iota
	SkyDim
	SkyNormal
)

// Settings is the read-only view of user preferences consulted every tick.
type Settings interface {
	Quality() Quality
	ShellName() string
	ShellSize() float64
	SimSpeed() float64
	SkyLighting() SkyLighting
	ScaleFactor() float64
}

// StaticSettings is a fixed Settings value.
type StaticSettings struct {
	Q     Quality
	Shell string
	Size  float64
	Speed float64
	Sky   SkyLighting
	Scale float64
}

func (s StaticSettings) Quality() Quality         { return s.Q }
func (s StaticSettings) ShellName() string        { return s.Shell }
func (s StaticSettings) ShellSize() float64       { return s.Size }
func (s StaticSettings) SimSpeed() float64        { return s.Speed }
func (s StaticSettings) SkyLighting() SkyLighting { return s.Sky }
func (s StaticSettings) ScaleFactor() float64     { return s.Scale }

// DefaultSettings matches the shipped configuration.
var DefaultSettings = StaticSettings{
	Q:     QualityNormal,
	Shell: ShellRandom,
	Size:  3,
	Speed: 1,
	Sky:   SkyNormal,
	Scale: 1,
}

// DrawSink receives one frame of particles, batched by color.
type DrawSink interface {
	DrawFlash(x, y, radius float64)
	DrawStars(color components.Color, stars []*components.Star)
	DrawSparks(color components.Color, sparks []*components.Spark)
}

// AudioSink plays named cues. Scale is in [0, 1]; smaller scales are
// quieter and higher pitched.
type AudioSink interface {
	PlayCue(name string, scale float64)
}

// Cue names understood by audio sinks.
const (
	CueLift         = "lift"
	CueBurst        = "burst"
	CueBurstSmall   = "burstSmall"
	CueCrackle      = "crackle"
	CueCrackleSmall = "crackleSmall"
)

// Point is a glyph sample in text-local pixels.
type Point struct {
	X, Y float64
}

// GlyphSource converts text into outline sample points.
type GlyphSource interface {
	GlyphPoints(text string, size int) []Point
}

type silentAudio struct{}

func (silentAudio) PlayCue(string, float64) {}

// Draw widths in stage pixels.
const StarDrawWidth = 3.0

// SparkDrawWidth returns the spark stroke width for a quality level.
func SparkDrawWidth(q Quality) float64 {
	if q == QualityHigh {
		return 0.75
	}
	return 1
}
