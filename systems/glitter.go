package systems

import "github.com/pthm-cable/fireworks/components"

// glitterProfile is the spark emission attached to burst stars.
type glitterProfile struct {
	Freq      float64 // ms between sparks before quality scaling
	Speed     float64
	Life      float64
	Variation float64
}

// defaultSparkLifeVariation applies when a shell has no glitter.
const defaultSparkLifeVariation = 0.25

var glitterProfiles = [...]glitterProfile{
	components.GlitterNone:     {Variation: defaultSparkLifeVariation},
	components.GlitterLight:    {Freq: 400, Speed: 0.3, Life: 300, Variation: 2},
	components.GlitterMedium:   {Freq: 200, Speed: 0.44, Life: 700, Variation: 2},
	components.GlitterHeavy:    {Freq: 80, Speed: 0.8, Life: 1400, Variation: 2},
	components.GlitterThick:    {Freq: 16, Speed: 1.5, Life: 1400, Variation: 3},
	components.GlitterStreamer: {Freq: 32, Speed: 1.05, Life: 620, Variation: 2},
	components.GlitterWillow:   {Freq: 120, Speed: 0.34, Life: 1400, Variation: 3.8},
}

// glitterFor resolves a profile with the quality divisor applied.
func glitterFor(g components.Glitter, q Quality) glitterProfile {
	if int(g) >= len(glitterProfiles) {
		g = components.GlitterNone
	}
	p := glitterProfiles[g]
	if g == components.GlitterThick && q == QualityHigh {
		p.Speed = 1.65
	}
	if q > 0 {
		p.Freq /= float64(q)
	}
	return p
}

// apply turns star into a glitter emitter. The timer starts at a random
// phase so that stars of one burst do not emit in lockstep.
func (p glitterProfile) apply(w *World, star *components.Star, color components.Color) {
	star.SparkFreq = p.Freq
	star.SparkSpeed = p.Speed
	star.SparkLife = p.Life
	star.SparkLifeVariation = p.Variation
	star.SparkColor = color
	star.SparkTimer = w.rng.Float64() * p.Freq
}
