package systems

import (
	"math"
	"testing"
)

// ---------- DistributeArc ----------

func TestDistributeArc_ExactCount(t *testing.T) {
	tests := []struct {
		name      string
		start     float64
		arcLength float64
		count     float64
		want      int
	}{
		{"crossette", 0.3, twoPi, 4, 4},
		{"crackle low", 0, twoPi, 16, 16},
		{"crackle high", 0, twoPi, 32, 32},
		{"fractional", 0, twoPi, 55.3, 55},
		{"half arc", 1, math.Pi, 10, 10},
		{"negative arc", 0, -twoPi, 8, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := 0
			for range DistributeArc(seededRand(1), tt.start, tt.arcLength, tt.count, 0) {
				n++
			}
			if n != tt.want {
				t.Errorf("got %d points, want %d", n, tt.want)
			}
		})
	}
}

func TestDistributeArc_NeverReachesEnd(t *testing.T) {
	tests := []struct {
		name       string
		start, arc float64
		randomness float64
	}{
		{"forward", 0.5, twoPi, 0},
		{"forward jitter", 0.5, twoPi, 0.45},
		{"backward", 0, -twoPi, 0},
		{"backward jitter", 0, -math.Pi, 0.45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end := tt.start + tt.arc
			for angle := range DistributeArc(seededRand(7), tt.start, tt.arc, 12, tt.randomness) {
				if tt.arc > 0 && angle >= end {
					t.Errorf("angle %.6f at or beyond end %.6f", angle, end)
				}
				if tt.arc < 0 && angle <= end {
					t.Errorf("angle %.6f at or beyond end %.6f", angle, end)
				}
			}
		})
	}
}

func TestDistributeArc_EvenSpacing(t *testing.T) {
	var angles []float64
	for a := range DistributeArc(seededRand(3), 0, twoPi, 4, 0) {
		angles = append(angles, a)
	}
	for i, a := range angles {
		want := float64(i) * halfPi
		if math.Abs(a-want) > 1e-12 {
			t.Errorf("angle %d = %.6f, want %.6f", i, a, want)
		}
	}
}

func TestDistributeArc_Degenerate(t *testing.T) {
	for _, count := range []float64{0, -3} {
		for range DistributeArc(seededRand(1), 0, twoPi, count, 0) {
			t.Fatalf("count %v yielded a point", count)
		}
	}
	for range DistributeArc(seededRand(1), 0, 0, 5, 0) {
		t.Fatal("zero arc yielded a point")
	}
}

// ---------- DistributePoints ----------

func TestDistributePoints_ApproximatesCount(t *testing.T) {
	for _, count := range []float64{50, 123.4, 500, 2000} {
		n := 0
		for range DistributePoints(seededRand(11), count, 0, twoPi) {
			n++
		}
		if float64(n) < count*0.5 || float64(n) > count*2 {
			t.Errorf("count %.1f: got %d points, outside [%.1f, %.1f]", count, n, count*0.5, count*2)
		}
	}
}

func TestDistributePoints_RadialFactorInRange(t *testing.T) {
	sawFull := false
	for _, radial := range DistributePoints(seededRand(5), 300, 0, twoPi) {
		if radial < 0 || radial > 1 {
			t.Fatalf("radial factor %.6f outside [0, 1]", radial)
		}
		if radial == 1 {
			sawFull = true
		}
	}
	if !sawFull {
		t.Error("expected the outer ring to have radial factor 1")
	}
}

func TestDistributePoints_HalfArcHalvesCount(t *testing.T) {
	full, half := 0, 0
	for range DistributePoints(seededRand(2), 400, 0, twoPi) {
		full++
	}
	for range DistributePoints(seededRand(2), 400, 0, math.Pi) {
		half++
	}
	ratio := float64(half) / float64(full)
	if ratio < 0.4 || ratio > 0.65 {
		t.Errorf("half arc ratio %.3f (half %d, full %d)", ratio, half, full)
	}
}

func TestDistributePoints_FloorsTinyCounts(t *testing.T) {
	for _, count := range []float64{0, 0.2, 1} {
		n := 0
		for range DistributePoints(seededRand(1), count, 0, twoPi) {
			n++
		}
		if n < 1 {
			t.Errorf("count %.1f yielded no points", count)
		}
	}
}

func TestDistributePoints_StopsOnBreak(t *testing.T) {
	n := 0
	for range DistributePoints(seededRand(1), 500, 0, twoPi) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("expected iteration to stop at 3, got %d", n)
	}
}
