package systems

import (
	"iter"
	"math"
	"math/rand/v2"
)

// DistributePoints spreads roughly count points over the surface of a sphere
// seen from above, restricted to an arc of the circle. It yields the angle
// of each point and a radial factor in [0, 1] that scales the point's speed:
// rings near the pole of the sphere project close to the center.
//
// The yielded count is an approximation of count. Counts below one are
// raised to one so that every burst produces at least a few points.
func DistributePoints(rng *rand.Rand, count, startAngle, arcLength float64) iter.Seq2[float64, float64] {
	return func(yield func(angle, radial float64) bool) {
		count = math.Max(count, 1)

		r := 0.5 * math.Sqrt(count/math.Pi)
		c := 2 * r * math.Pi
		cHalf := c / 2

		for i := 0.0; i <= cHalf; i++ {
			ringAngle := i / cHalf * halfPi
			ringSize := math.Cos(ringAngle)
			partsPerFullRing := c * ringSize
			partsPerArc := partsPerFullRing * (arcLength / twoPi)

			angleInc := twoPi / partsPerFullRing
			angleOffset := rng.Float64()*angleInc + startAngle
			maxJitter := angleInc * 0.33

			for j := 0.0; j < partsPerArc; j++ {
				angle := angleInc*j + angleOffset + rng.Float64()*maxJitter
				if !yield(angle, ringSize) {
					return
				}
			}
		}
	}
}

// DistributeArc yields count evenly spaced angles starting at start and
// covering arcLength, which may be negative. Each angle is pushed forward
// by up to randomness times the spacing. The last half step is trimmed so
// that no point sits on top of the first one for full circles.
func DistributeArc(rng *rand.Rand, start, arcLength, count, randomness float64) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if count <= 0 || arcLength == 0 {
			return
		}
		delta := arcLength / count
		end := start + arcLength - delta*0.5
		forward := end > start

		for k := 0; ; k++ {
			angle := start + float64(k)*delta
			if (forward && angle >= end) || (!forward && angle <= end) {
				return
			}
			if !yield(angle + rng.Float64()*delta*randomness) {
				return
			}
		}
	}
}
