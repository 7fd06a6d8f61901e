package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/fireworks/components"
)

func TestSky_DarkWithoutStars(t *testing.T) {
	w := newTestWorld(t, seededRand(1), normalSettings())
	var sky Sky
	for i := 0; i < 10; i++ {
		sky.Update(w.World, SkyNormal, 1)
	}
	if sky.RGB() != (components.RGB{}) {
		t.Errorf("sky %+v, want black", sky.RGB())
	}
}

func TestSky_ConvergesToStarColor(t *testing.T) {
	tests := []struct {
		name     string
		lighting SkyLighting
		stars    int
		wantR    float64
	}{
		{"normal full", SkyNormal, 500, 30},
		{"dim full", SkyDim, 500, 15},
		{"off", SkyNone, 500, 0},
		{"normal partial", SkyNormal, 50, 30 * math.Pow(0.1, 0.3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, seededRand(1), normalSettings())
			for i := 0; i < tt.stars; i++ {
				w.AddStar(0, 0, components.Red, 0, 0, 1000, 0, 0)
			}
			var sky Sky
			for i := 0; i < 400; i++ {
				sky.Update(w.World, tt.lighting, 1)
			}
			if math.Abs(sky.R-tt.wantR) > 1e-6 {
				t.Errorf("red %.4f, want %.4f", sky.R, tt.wantR)
			}
			// Channel ratios follow the palette.
			wantB := tt.wantR * float64(components.Red.RGB().B) / 255
			if math.Abs(sky.B-wantB) > 1e-6 {
				t.Errorf("blue %.4f, want %.4f", sky.B, wantB)
			}
			if sky.G != 0 {
				t.Errorf("green %.4f, want 0", sky.G)
			}
		})
	}
}

func TestSky_SmoothsTowardTarget(t *testing.T) {
	w := newTestWorld(t, seededRand(1), normalSettings())
	for i := 0; i < 500; i++ {
		w.AddStar(0, 0, components.White, 0, 0, 1000, 0, 0)
	}
	var sky Sky
	sky.Update(w.World, SkyNormal, 1)
	if math.Abs(sky.R-3) > 1e-9 {
		t.Errorf("first step %.4f, want a tenth of the target (3)", sky.R)
	}
}
