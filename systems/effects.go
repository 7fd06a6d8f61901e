package systems

import (
	"math"

	"github.com/pthm-cable/fireworks/components"
)

// deathEffect runs when a star carrying the matching Effect is retired.
type deathEffect func(w *World, star *components.Star)

var deathEffects = [components.NumEffects]deathEffect{
	components.EffectCrossette:     crossetteEffect,
	components.EffectCrackle:       crackleEffect,
	components.EffectFloral:        floralEffect,
	components.EffectFallingLeaves: fallingLeavesEffect,
	components.EffectShellBurst:    shellBurstEffect,
}

func handlerFor(e components.Effect) deathEffect {
	if int(e) >= len(deathEffects) {
		return nil
	}
	return deathEffects[e]
}

// crossetteEffect splits a star into four same-color pieces in a cross.
func crossetteEffect(w *World, star *components.Star) {
	if star.Latch.Claim() {
		w.audio.PlayCue(CueCrackleSmall, 1)
	}
	startAngle := w.rng.Float64() * halfPi
	for angle := range DistributeArc(w.rng, startAngle, twoPi, 4, 0.5) {
		w.AddStar(star.X, star.Y, star.Color, angle, w.rng.Float64()*0.6+0.75, 600, 0, 0)
	}
}

// crackleEffect pops a star into a small cloud of gold sparks.
func crackleEffect(w *World, star *components.Star) {
	if star.Latch.Claim() {
		w.audio.PlayCue(CueCrackle, 1)
	}
	count := 16.0
	if w.settings.Quality() == QualityHigh {
		count = 32
	}
	for angle := range DistributeArc(w.rng, 0, twoPi, count, 1.8) {
		// Near cubic falloff puts more sparks toward the outside.
		speed := math.Pow(w.rng.Float64(), 0.45) * 2.4
		w.AddSpark(star.X, star.Y, components.Gold, angle, speed, 300+w.rng.Float64()*200)
	}
}

// floralEffect is a small secondary burst that inherits the star's motion.
func floralEffect(w *World, star *components.Star) {
	count := 12 + 6*float64(w.settings.Quality())
	for angle, speedMult := range DistributePoints(w.rng, count, 0, twoPi) {
		w.AddStar(star.X, star.Y, star.Color, angle, speedMult*2.4, 1000+w.rng.Float64()*300, star.SpeedX, star.SpeedY)
	}
	w.AddFlash(star.X, star.Y, 46)
	w.audio.PlayCue(CueBurstSmall, 1)
}

// fallingLeavesEffect releases invisible stars trailing gold sparks.
func fallingLeavesEffect(w *World, star *components.Star) {
	freq := 144 / float64(w.settings.Quality())
	for angle, speedMult := range DistributePoints(w.rng, 7, 0, twoPi) {
		leaf := w.AddStar(star.X, star.Y, components.Invisible, angle, speedMult*2.4, 2400+w.rng.Float64()*600, star.SpeedX, star.SpeedY)
		leaf.SparkColor = components.Gold
		leaf.SparkFreq = freq
		leaf.SparkSpeed = 0.28
		leaf.SparkLife = 750
		leaf.SparkLifeVariation = 3.2
	}
	w.AddFlash(star.X, star.Y, 46)
	w.audio.PlayCue(CueBurstSmall, 1)
}

// shellBurstEffect detonates the shell that launched a comet.
func shellBurstEffect(_ *World, comet *components.Star) {
	if comet.Shell != nil {
		comet.Shell.Detonate(comet)
	}
}
