package systems

import (
	"math"
	"testing"
	"time"
)

func TestClock_Step(t *testing.T) {
	tests := []struct {
		name      string
		max       float64
		elapsed   time.Duration
		wantFrame float64
	}{
		{"nominal", 0, 16 * time.Millisecond, 16},
		{"capped default", 0, time.Second, DefaultMaxFrameMs},
		{"capped custom", 30, 50 * time.Millisecond, 30},
		{"negative", 0, -time.Millisecond, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, lag := Clock{MaxFrameMs: tt.max}.Step(tt.elapsed)
			if math.Abs(frame-tt.wantFrame) > 1e-9 {
				t.Errorf("frame %.4f, want %.4f", frame, tt.wantFrame)
			}
			if math.Abs(lag-tt.wantFrame/(1000.0/60)) > 1e-9 {
				t.Errorf("lag %.4f", lag)
			}
		})
	}
}
