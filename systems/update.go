package systems

import (
	"math"

	"github.com/pthm-cable/fireworks/components"
)

// tickParams holds the per-tick factors shared by every particle.
type tickParams struct {
	timeStep  float64 // simulated milliseconds
	speed     float64 // tick speed relative to 60Hz
	starDrag  float64
	heavyDrag float64
	sparkDrag float64
	gAcc      float64
}

// Tick advances the simulation by frameTime milliseconds of wall time.
// lag is frameTime relative to a 60Hz frame. Both are scaled by the
// simulation speed setting.
func (w *World) Tick(frameTime, lag float64) {
	simSpeed := w.settings.SimSpeed()
	speed := simSpeed * lag
	p := tickParams{
		timeStep:  frameTime * simSpeed,
		speed:     speed,
		starDrag:  1 - (1-StarAirDrag)*speed,
		heavyDrag: 1 - (1-StarAirDragHeavy)*speed,
		sparkDrag: 1 - (1-SparkAirDrag)*speed,
	}
	p.gAcc = p.timeStep / 1000 * Gravity

	w.frame++

	for _, c := range components.AllColors {
		w.updateStars(c, &p)
		w.updateSparks(c, &p)
	}
}

// updateStars advances one star bucket. The bucket is always indexed through
// w.stars because death effects and color transitions may append to any
// bucket, including this one, and reallocate it. Stars appended during the
// pass carry the current frame stamp and are kept untouched after the
// compacted survivors.
func (w *World) updateStars(c components.Color, p *tickParams) {
	n := len(w.stars[c])
	kept := 0

	for i := 0; i < n; i++ {
		star := w.stars[c][i]

		if star.UpdateFrame == w.frame {
			w.stars[c][kept] = star
			kept++
			continue
		}
		star.UpdateFrame = w.frame

		star.Life -= p.timeStep
		if star.Life <= 0 {
			w.starPool.Release(star)
			continue
		}

		burnRate := math.Pow(star.Life/star.FullLife, 0.5)
		burnRateInverse := 1 - burnRate

		star.PrevX = star.X
		star.PrevY = star.Y
		star.X += star.SpeedX * p.speed
		star.Y += star.SpeedY * p.speed

		// Drag
		drag := p.starDrag
		if star.Heavy {
			drag = p.heavyDrag
		}
		star.SpeedX *= drag
		star.SpeedY *= drag
		star.SpeedY += p.gAcc

		if star.SpinRadius > 0 {
			star.SpinAngle += star.SpinSpeed * p.speed
			star.X += math.Sin(star.SpinAngle) * star.SpinRadius * p.speed
			star.Y += math.Cos(star.SpinAngle) * star.SpinRadius * p.speed
		}

		if star.SparkFreq > 0 {
			star.SparkTimer -= p.timeStep
			for star.SparkTimer < 0 {
				star.SparkTimer += star.SparkFreq*0.75 + star.SparkFreq*burnRateInverse*4
				w.AddSpark(
					star.X,
					star.Y,
					star.SparkColor,
					w.rng.Float64()*twoPi,
					w.rng.Float64()*star.SparkSpeed*burnRate,
					star.SparkLife*0.8+w.rng.Float64()*star.SparkLifeVariation*star.SparkLife,
				)
			}
		}

		moved := false
		if star.Life < star.TransitionTime {
			if star.SecondColor != components.NoColor && !star.ColorChanged {
				star.ColorChanged = true
				star.Color = star.SecondColor
				if star.SecondColor == components.Invisible {
					star.SparkFreq = 0
				}
				if star.Color != c {
					w.stars[star.Color] = append(w.stars[star.Color], star)
					moved = true
				}
			}

			// on:off:off in steps of StrobeFreq
			if star.Strobe && star.StrobeFreq > 0 {
				star.Visible = int(math.Floor(star.Life/star.StrobeFreq))%3 == 0
			}
		}

		if !moved {
			w.stars[c][kept] = star
			kept++
		}
	}

	w.stars[c] = compact(w.stars[c], n, kept)
}

func (w *World) updateSparks(c components.Color, p *tickParams) {
	n := len(w.sparks[c])
	kept := 0

	for i := 0; i < n; i++ {
		spark := w.sparks[c][i]

		if spark.UpdateFrame == w.frame {
			w.sparks[c][kept] = spark
			kept++
			continue
		}
		spark.UpdateFrame = w.frame

		spark.Life -= p.timeStep
		if spark.Life <= 0 {
			w.retireSpark(spark)
			continue
		}

		spark.PrevX = spark.X
		spark.PrevY = spark.Y
		spark.X += spark.SpeedX * p.speed
		spark.Y += spark.SpeedY * p.speed
		spark.SpeedX *= p.sparkDrag
		spark.SpeedY *= p.sparkDrag
		spark.SpeedY += p.gAcc

		w.sparks[c][kept] = spark
		kept++
	}

	w.sparks[c] = compact(w.sparks[c], n, kept)
}

// compact closes the gap between the kept prefix of a bucket and anything
// appended after the first n entries.
func compact[T any](bucket []*T, n, kept int) []*T {
	appended := copy(bucket[kept:], bucket[n:])
	end := kept + appended
	clear(bucket[end:])
	return bucket[:end]
}

// Render hands the current frame to sink: queued flashes first (each drawn
// once), then visible stars and sparks batched by color.
func (w *World) Render(sink DrawSink) {
	for len(w.flashes) > 0 {
		last := len(w.flashes) - 1
		f := w.flashes[last]
		w.flashes[last] = nil
		w.flashes = w.flashes[:last]
		sink.DrawFlash(f.X, f.Y, f.Radius)
		w.flashPool.Release(f)
	}

	for _, c := range components.VisibleColors {
		visible := w.visibleBuf[:0]
		for _, s := range w.stars[c] {
			if s.Visible {
				visible = append(visible, s)
			}
		}
		if len(visible) > 0 {
			sink.DrawStars(c, visible)
		}
		w.visibleBuf = visible
	}

	for _, c := range components.VisibleColors {
		if len(w.sparks[c]) > 0 {
			sink.DrawSparks(c, w.sparks[c])
		}
	}
}
