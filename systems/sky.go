package systems

import (
	"math"

	"github.com/pthm-cable/fireworks/components"
)

// Sky lighting constants.
const (
	skyFullStarCount  = 500 // stars needed for full brightness
	skySaturationStep = 15  // max channel value per lighting tier
	skyColorChange    = 10  // smoothing divisor per 60Hz tick
)

// Sky tracks the background tint produced by live stars.
type Sky struct {
	R, G, B float64
	target  [3]float64
}

// Update moves the sky toward the blend of live star colors. speed is the
// tick speed relative to 60Hz.
func (s *Sky) Update(w *World, lighting SkyLighting, speed float64) {
	maxSaturation := float64(lighting) * skySaturationStep

	var r, g, b float64
	total := 0
	for _, c := range components.VisibleColors {
		count := len(w.stars[c])
		rgb := c.RGB()
		total += count
		r += float64(rgb.R) * float64(count)
		g += float64(rgb.G) * float64(count)
		b += float64(rgb.B) * float64(count)
	}

	// A few stars light the sky noticeably; more keep brightening it at a
	// slower rate.
	intensity := math.Pow(math.Min(1, float64(total)/skyFullStarCount), 0.3)
	maxComponent := max(1, r, g, b)
	scale := maxSaturation * intensity / maxComponent
	s.target = [3]float64{r * scale, g * scale, b * scale}

	s.R += (s.target[0] - s.R) / skyColorChange * speed
	s.G += (s.target[1] - s.G) / skyColorChange * speed
	s.B += (s.target[2] - s.B) / skyColorChange * speed
}

// RGB returns the current sky color truncated to bytes.
func (s *Sky) RGB() components.RGB {
	return components.RGB{R: skyByte(s.R), G: skyByte(s.G), B: skyByte(s.B)}
}

func skyByte(v float64) uint8 {
	return uint8(Clamp(v, 0, 255))
}
