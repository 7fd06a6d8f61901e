package systems

import "time"

const (
	// Nominal frame duration in milliseconds; lag is measured against it.
	nominalFrameMs = 1000.0 / 60
	// DefaultMaxFrameMs caps a single tick after a stall.
	DefaultMaxFrameMs = 68.0
)

// Clock converts wall-clock frame durations into tick arguments.
type Clock struct {
	MaxFrameMs float64
}

// Step returns the capped frame time in milliseconds and the lag relative to
// a 60Hz frame.
func (c Clock) Step(elapsed time.Duration) (frameTime, lag float64) {
	maxFrame := c.MaxFrameMs
	if maxFrame <= 0 {
		maxFrame = DefaultMaxFrameMs
	}
	frameTime = float64(elapsed) / float64(time.Millisecond)
	frameTime = Clamp(frameTime, 0, maxFrame)
	return frameTime, frameTime / nominalFrameMs
}
