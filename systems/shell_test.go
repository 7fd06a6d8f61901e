package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/fireworks/components"
)

// ---------- Construction ----------

func TestNewShell_Defaults(t *testing.T) {
	w := newTestWorld(t, seededRand(1), normalSettings())

	tests := []struct {
		name      string
		spec      components.ShellSpec
		wantCount float64
	}{
		{"derived count", components.ShellSpec{SpreadSize: 540}, 100},
		{"density", components.ShellSpec{SpreadSize: 540, StarDensity: 0.5}, 50},
		{"floor", components.ShellSpec{SpreadSize: 54}, 6},
		{"explicit", components.ShellSpec{SpreadSize: 540, StarCount: 17}, 17},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh, err := w.NewShell(tt.spec)
			if err != nil {
				t.Fatalf("NewShell: %v", err)
			}
			spec := sh.Spec()
			if math.Abs(spec.StarCount-tt.wantCount) > 1e-9 {
				t.Errorf("star count %.4f, want %.4f", spec.StarCount, tt.wantCount)
			}
			if spec.StarLifeVariation != 0.125 {
				t.Errorf("life variation %.3f, want 0.125", spec.StarLifeVariation)
			}
			if spec.Color.Kind != components.ShellColorSingle || !spec.Color.Colors[0].Visible() {
				t.Errorf("expected a random visible single color, got %+v", spec.Color)
			}
			if spec.GlitterColor != spec.Color.Colors[0] {
				t.Errorf("glitter color %s, want primary %s", spec.GlitterColor, spec.Color.Colors[0])
			}
		})
	}
}

func TestNewShell_InvalidColor(t *testing.T) {
	w := newTestWorld(t, seededRand(1), normalSettings())

	tests := []struct {
		name  string
		color components.ShellColor
	}{
		{"unknown kind", components.ShellColor{Kind: 42}},
		{"pair with missing color", components.Pair(components.Red, components.NoColor)},
		{"single out of palette", components.Single(components.Color(99))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := w.NewShell(components.ShellSpec{SpreadSize: 300, StarLife: 900, Color: tt.color})
			if !errors.Is(err, ErrInvalidShellColor) {
				t.Errorf("expected ErrInvalidShellColor, got %v", err)
			}
		})
	}
	if w.StarCount() != 0 {
		t.Error("rejected shells must not emit stars")
	}
}

func TestNewShell_RejectsShellBurstEffect(t *testing.T) {
	w := newTestWorld(t, seededRand(1), normalSettings())
	_, err := w.NewShell(components.ShellSpec{SpreadSize: 300, Effect: components.EffectShellBurst})
	if !errors.Is(err, ErrInvalidEffect) {
		t.Errorf("expected ErrInvalidEffect, got %v", err)
	}
}

// ---------- Launch ----------

func TestLaunch_CometGeometry(t *testing.T) {
	tests := []struct {
		name     string
		position float64
		height   float64
		wantX    float64
		wantDist float64
	}{
		{"center", 0.5, 0.7, 600, 560},
		{"min height", 0, 0.1, 50, 320},
		{"max height", 1, 1, 1150, 740},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, seededRand(1), normalSettings())
			sh, err := w.NewShell(components.ShellSpec{SpreadSize: 300, StarLife: 900, Color: components.Single(components.Red)})
			if err != nil {
				t.Fatalf("NewShell: %v", err)
			}
			if err := sh.Launch(tt.position, tt.height); err != nil {
				t.Fatalf("Launch: %v", err)
			}

			comets := w.StarsOf(components.Red)
			if len(comets) != 1 {
				t.Fatalf("expected one comet, got %d", len(comets))
			}
			c := comets[0]
			v := math.Pow(tt.wantDist*0.04, 0.64)
			if c.X != tt.wantX || c.Y != 800 {
				t.Errorf("comet at (%.1f, %.1f), want (%.1f, 800)", c.X, c.Y, tt.wantX)
			}
			if math.Abs(c.SpeedY+v) > 1e-9 || math.Abs(c.SpeedX) > 1e-9 {
				t.Errorf("comet velocity (%.4f, %.4f), want (0, %.4f)", c.SpeedX, c.SpeedY, -v)
			}
			if math.Abs(c.Life-v*400) > 1e-9 {
				t.Errorf("comet life %.2f, want %.2f", c.Life, v*400)
			}
			if !c.Heavy || c.SpinRadius < 0.32 || c.SpinRadius >= 0.85 {
				t.Errorf("comet heavy=%v spin=%.3f", c.Heavy, c.SpinRadius)
			}
			if c.SparkFreq != 16 || c.SparkLife != 320 || c.SparkLifeVariation != 3 {
				t.Errorf("comet trail freq=%.1f life=%.1f var=%.1f", c.SparkFreq, c.SparkLife, c.SparkLifeVariation)
			}
			if c.Effect != components.EffectShellBurst || c.Shell != sh {
				t.Error("comet is not wired to its shell")
			}
			if w.audio.count(CueLift) != 1 {
				t.Errorf("lift played %d times, want 1", w.audio.count(CueLift))
			}
		})
	}
}

func TestLaunch_TrailVariants(t *testing.T) {
	tests := []struct {
		name      string
		settings  Quality
		spec      components.ShellSpec
		wantFreq  float64
		wantColor components.Color
		wantLife  float64
	}{
		{"high quality", QualityHigh, components.ShellSpec{Color: components.Single(components.Blue)}, 8, components.Blue, 320},
		{"willow", QualityNormal, components.ShellSpec{Color: components.Single(components.Invisible), Glitter: components.GlitterWillow}, 10, components.Gold, 500},
		{"falling leaves low", QualityLow, components.ShellSpec{Color: components.Single(components.Invisible), Effect: components.EffectFallingLeaves}, 20, components.Gold, 500},
		{"random color", QualityNormal, components.ShellSpec{Color: components.RandomColors()}, 16, components.White, 320},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := normalSettings()
			settings.Q = tt.settings
			w := newTestWorld(t, seededRand(3), settings)
			tt.spec.SpreadSize = 300
			tt.spec.StarLife = 900
			sh, err := w.NewShell(tt.spec)
			if err != nil {
				t.Fatalf("NewShell: %v", err)
			}
			if err := sh.Launch(0.5, 0.5); err != nil {
				t.Fatalf("Launch: %v", err)
			}
			c := sh.comet
			if c.SparkFreq != tt.wantFreq || c.SparkColor != tt.wantColor || c.SparkLife != tt.wantLife {
				t.Errorf("trail freq=%.1f color=%s life=%.1f, want %.1f %s %.1f",
					c.SparkFreq, c.SparkColor, c.SparkLife, tt.wantFreq, tt.wantColor, tt.wantLife)
			}
		})
	}
}

func TestLaunch_Horsetail(t *testing.T) {
	w := newTestWorld(t, seededRand(3), normalSettings())
	sh, err := w.NewShell(components.ShellSpec{SpreadSize: 300, StarLife: 900, Color: components.Single(components.Red), Horsetail: true})
	if err != nil {
		t.Fatalf("NewShell: %v", err)
	}
	if err := sh.Launch(0.5, 0.7); err != nil {
		t.Fatalf("Launch: %v", err)
	}
	v := math.Pow(560*0.04, 0.64)
	if math.Abs(sh.comet.SpeedY+v*1.2) > 1e-9 || math.Abs(sh.comet.Life-v*100) > 1e-9 {
		t.Errorf("horsetail comet speed %.4f life %.2f", sh.comet.SpeedY, sh.comet.Life)
	}
}

func TestLaunch_RefusedAtStarLimit(t *testing.T) {
	w := newTestWorld(t, seededRand(1), normalSettings())
	w.maxStars = 5
	for i := 0; i < 5; i++ {
		w.AddStar(0, 0, components.Red, 0, 0, 1000, 0, 0)
	}
	sh, err := w.NewShell(components.ShellSpec{SpreadSize: 300, StarLife: 900})
	if err != nil {
		t.Fatalf("NewShell: %v", err)
	}
	if err := sh.Launch(0.5, 0.5); !errors.Is(err, ErrStarLimit) {
		t.Fatalf("expected ErrStarLimit, got %v", err)
	}
	if w.StarCount() != 5 || w.Counters().LaunchesRefused != 1 {
		t.Errorf("stars=%d refused=%d", w.StarCount(), w.Counters().LaunchesRefused)
	}
	if w.audio.count(CueLift) != 0 {
		t.Error("refused launch played a sound")
	}
}

// ---------- Launch to burst ----------

func TestShell_LaunchBurstsOnceAtApex(t *testing.T) {
	w := newTestWorld(t, fixedRand(0.9), normalSettings())

	spec, err := w.ShellSpecByName(ShellCrysanthemum, 3)
	if err != nil {
		t.Fatalf("ShellSpecByName: %v", err)
	}
	if spec.Glitter != components.GlitterNone || spec.Pistil || spec.Streamers {
		t.Fatalf("expected a plain shell from the fixed source, got %+v", spec)
	}
	if spec.SpreadSize != 600 {
		t.Fatalf("spread %.1f, want 600", spec.SpreadSize)
	}
	sh, err := w.NewShell(spec)
	if err != nil {
		t.Fatalf("NewShell: %v", err)
	}
	if err := sh.Launch(0.5, 0.7); err != nil {
		t.Fatalf("Launch: %v", err)
	}

	if !w.runUntil(1000, func() bool { return w.Counters().Bursts > 0 }) {
		t.Fatal("shell never burst")
	}

	want := sh.Spec().StarCount
	got := float64(w.StarCount())
	if got < want*0.5 || got > want*2 {
		t.Errorf("burst produced %.0f stars, want about %.1f", got, want)
	}
	if w.audio.count(CueBurst) != 1 {
		t.Errorf("burst cue played %d times", w.audio.count(CueBurst))
	}
	for _, c := range w.audio.calls {
		if c.name == CueBurst && math.Abs(c.scale-1) > 1e-12 {
			t.Errorf("full-size shell burst scale %.3f, want 1", c.scale)
		}
	}
	if sh.comet != nil {
		t.Error("shell still references its comet after bursting")
	}

	w.runUntil(300, func() bool { return false })
	if w.Counters().Bursts != 1 {
		t.Errorf("shell burst %d times", w.Counters().Bursts)
	}
}

func TestBurst_SoundScale(t *testing.T) {
	tests := []struct {
		shellSize float64
		want      float64
	}{
		{3, 1},
		{2, 0.85},
		{1, 0.7},
		{0, 0.7},
	}
	for _, tt := range tests {
		w := newTestWorld(t, seededRand(1), normalSettings())
		sh, err := w.NewShell(components.ShellSpec{ShellSize: tt.shellSize, SpreadSize: 300, StarLife: 900})
		if err != nil {
			t.Fatalf("NewShell: %v", err)
		}
		sh.comet = &components.Star{}
		if err := sh.Burst(0, 0); err != nil {
			t.Fatalf("Burst: %v", err)
		}
		last := w.audio.calls[len(w.audio.calls)-1]
		if last.name != CueBurst || math.Abs(last.scale-tt.want) > 1e-9 {
			t.Errorf("size %.0f: cue %s scale %.3f, want burst %.3f", tt.shellSize, last.name, last.scale, tt.want)
		}
	}
}

// ---------- Burst dispatch ----------

func TestBurst_InvalidColorEmitsNothing(t *testing.T) {
	w := newTestWorld(t, seededRand(1), normalSettings())
	sh, err := w.NewShell(components.ShellSpec{SpreadSize: 300, StarLife: 900, Pistil: true, Streamers: true})
	if err != nil {
		t.Fatalf("NewShell: %v", err)
	}
	sh.spec.Color = components.ShellColor{Kind: 9}

	if err := sh.Burst(100, 100); !errors.Is(err, ErrInvalidShellColor) {
		t.Fatalf("expected ErrInvalidShellColor, got %v", err)
	}
	if w.StarCount() != 0 || w.SparkCount() != 0 {
		t.Error("invalid burst emitted particles")
	}
	sink := newRecordingSink()
	w.Render(sink)
	if len(sink.flashes) != 0 {
		t.Error("invalid burst queued a flash")
	}
}

func TestBurst_PistilAndStreamers(t *testing.T) {
	w := newTestWorld(t, seededRand(21), normalSettings())
	sh, err := w.NewShell(components.ShellSpec{
		Name:        "layered",
		SpreadSize:  450,
		StarLife:    1000,
		Color:       components.Single(components.Red),
		Pistil:      true,
		PistilColor: components.Blue,
		Streamers:   true,
	})
	if err != nil {
		t.Fatalf("NewShell: %v", err)
	}
	if err := sh.Burst(600, 300); err != nil {
		t.Fatalf("Burst: %v", err)
	}

	red := w.StarsOf(components.Red)
	blue := w.StarsOf(components.Blue)
	white := w.StarsOf(components.White)
	if len(red) == 0 || len(blue) == 0 || len(white) == 0 {
		t.Fatalf("expected main, pistil and streamer stars: red=%d blue=%d white=%d", len(red), len(blue), len(white))
	}
	for _, s := range red {
		if s.SparkFreq != 0 {
			t.Fatal("main stars without glitter should not emit sparks")
		}
	}
	for _, s := range blue {
		if s.SparkFreq != 200 || s.SparkColor != components.White {
			t.Fatalf("pistil glitter freq=%.1f color=%s, want 200 White", s.SparkFreq, s.SparkColor)
		}
	}
	for _, s := range white {
		if s.SparkFreq != 16 || s.SparkColor != components.White {
			t.Fatalf("streamer glitter freq=%.1f color=%s, want 16 White", s.SparkFreq, s.SparkColor)
		}
	}

	sink := newRecordingSink()
	w.Render(sink)
	radii := map[float64]bool{}
	for _, f := range sink.flashes {
		radii[f.radius] = true
	}
	for _, r := range []float64{450.0 / 4, 225.0 / 4, 405.0 / 4} {
		if !radii[r] {
			t.Errorf("missing flash of radius %.2f in %+v", r, sink.flashes)
		}
	}
	if w.audio.count(CueBurst) != 0 {
		t.Error("a shell without a comet played the burst cue")
	}
}

func TestBurst_GoldPistilKeepsGoldGlitter(t *testing.T) {
	w := newTestWorld(t, seededRand(5), normalSettings())
	sh, err := w.NewShell(components.ShellSpec{
		SpreadSize:  300,
		StarLife:    900,
		Color:       components.Single(components.Red),
		Pistil:      true,
		PistilColor: components.Gold,
	})
	if err != nil {
		t.Fatalf("NewShell: %v", err)
	}
	if err := sh.Burst(0, 0); err != nil {
		t.Fatalf("Burst: %v", err)
	}
	for _, s := range w.StarsOf(components.Gold) {
		if s.SparkColor != components.Gold {
			t.Fatalf("gold pistil glitter color %s", s.SparkColor)
		}
	}
}

func TestBurst_RingKeepsSpeedMagnitude(t *testing.T) {
	w := newTestWorld(t, almostOneRand(), normalSettings())
	sh, err := w.NewShell(components.ShellSpec{
		SpreadSize: 480,
		StarLife:   900,
		StarCount:  30,
		Ring:       true,
		Color:      components.Single(components.Red),
	})
	if err != nil {
		t.Fatalf("NewShell: %v", err)
	}
	if err := sh.Burst(600, 300); err != nil {
		t.Fatalf("Burst: %v", err)
	}

	stars := w.StarsOf(components.Red)
	if len(stars) != 30 {
		t.Fatalf("ring has %d stars, want 30", len(stars))
	}
	speed := 480.0 / 96
	for i, s := range stars {
		got := math.Hypot(s.SpeedX, s.SpeedY)
		if math.Abs(got-speed) > 1e-9 {
			t.Errorf("star %d speed %.12f, want %.12f", i, got, speed)
		}
	}
}

func TestBurst_RingSquashBounds(t *testing.T) {
	w := newTestWorld(t, seededRand(8), normalSettings())
	sh, err := w.NewShell(components.ShellSpec{
		SpreadSize: 480,
		StarLife:   900,
		StarCount:  40,
		Ring:       true,
		Color:      components.Single(components.Green),
		Effect:     components.EffectCrossette,
	})
	if err != nil {
		t.Fatalf("NewShell: %v", err)
	}
	if err := sh.Burst(0, 0); err != nil {
		t.Fatalf("Burst: %v", err)
	}
	speed := 480.0 / 96
	for _, s := range w.StarsOf(components.Green) {
		got := math.Hypot(s.SpeedX, s.SpeedY)
		if got < speed*0.15-1e-9 || got > speed+1e-9 {
			t.Errorf("ring speed %.4f outside [%.4f, %.4f]", got, speed*0.15, speed)
		}
		if s.Effect != components.EffectNone {
			t.Error("ring stars should not carry death effects")
		}
	}
}

func TestBurst_HorsetailInheritsCometVelocity(t *testing.T) {
	w := newTestWorld(t, seededRand(1), normalSettings())
	sh, err := w.NewShell(components.ShellSpec{
		StarLife:  900,
		Horsetail: true,
		Color:     components.Single(components.Purple),
	})
	if err != nil {
		t.Fatalf("NewShell: %v", err)
	}
	sh.comet = &components.Star{SpeedX: 1.5, SpeedY: -2}
	if err := sh.Burst(0, 0); err != nil {
		t.Fatalf("Burst: %v", err)
	}
	stars := w.StarsOf(components.Purple)
	if len(stars) == 0 {
		t.Fatal("no stars")
	}
	for _, s := range stars {
		if math.Abs(s.SpeedX-1.5) > 1e-12 || math.Abs(s.SpeedY+2) > 1e-12 {
			t.Fatalf("star velocity (%.4f, %.4f), want (1.5, -2)", s.SpeedX, s.SpeedY)
		}
	}
}

func TestBurst_PairColors(t *testing.T) {
	for _, v := range []float64{0.3, 0.7} {
		w := newTestWorld(t, fixedRand(v), normalSettings())
		sh, err := w.NewShell(components.ShellSpec{
			SpreadSize: 400,
			StarLife:   900,
			Color:      components.Pair(components.Red, components.Blue),
		})
		if err != nil {
			t.Fatalf("NewShell: %v", err)
		}
		if err := sh.Burst(0, 0); err != nil {
			t.Fatalf("Burst: %v", err)
		}
		if len(w.StarsOf(components.Red)) == 0 || len(w.StarsOf(components.Blue)) == 0 {
			t.Errorf("rand %.1f: red=%d blue=%d", v, len(w.StarsOf(components.Red)), len(w.StarsOf(components.Blue)))
		}
	}
}

func TestBurst_RandomColorsSpreadAcrossPalette(t *testing.T) {
	w := newTestWorld(t, seededRand(13), normalSettings())
	sh, err := w.NewShell(components.ShellSpec{SpreadSize: 500, StarLife: 900, Color: components.RandomColors()})
	if err != nil {
		t.Fatalf("NewShell: %v", err)
	}
	if err := sh.Burst(0, 0); err != nil {
		t.Fatalf("Burst: %v", err)
	}
	used := 0
	for _, c := range components.VisibleColors {
		if len(w.StarsOf(c)) > 0 {
			used++
		}
	}
	if used < 3 {
		t.Errorf("random color burst used only %d colors", used)
	}
}

func TestBurst_StrobeAndSecondColor(t *testing.T) {
	w := newTestWorld(t, seededRand(2), normalSettings())
	sh, err := w.NewShell(components.ShellSpec{
		SpreadSize:  300,
		StarLife:    1000,
		Color:       components.Single(components.Green),
		SecondColor: components.Red,
		Strobe:      true,
		StrobeColor: components.White,
	})
	if err != nil {
		t.Fatalf("NewShell: %v", err)
	}
	if err := sh.Burst(0, 0); err != nil {
		t.Fatalf("Burst: %v", err)
	}
	for _, s := range w.StarsOf(components.Green) {
		if !s.Strobe || s.StrobeFreq < 40 || s.StrobeFreq >= 60 {
			t.Fatalf("strobe=%v freq=%.2f", s.Strobe, s.StrobeFreq)
		}
		if s.SecondColor != components.White {
			t.Fatalf("strobe color should win, got %s", s.SecondColor)
		}
		if s.TransitionTime < 460 || s.TransitionTime >= 540 {
			t.Fatalf("transition time %.2f outside strobe window", s.TransitionTime)
		}
	}
}

func TestBurst_BlessWritesText(t *testing.T) {
	w := newTestWorld(t, seededRand(6), normalSettings())
	sh, err := w.NewShell(components.ShellSpec{SpreadSize: 300, StarLife: 900, Bless: true, Color: components.Single(components.Gold)})
	if err != nil {
		t.Fatalf("NewShell: %v", err)
	}
	if err := sh.Burst(600, 300); err != nil {
		t.Fatalf("Burst: %v", err)
	}
	text := 0
	for _, s := range w.StarsOf(components.Gold) {
		if s.SpeedX == 0 && s.SpeedY == textStarDrift && s.Life == textStarLife {
			text++
			if s.X < 600-60 || s.X > 600+60 {
				t.Errorf("text star x %.1f not centered on the burst", s.X)
			}
		}
	}
	if text == 0 {
		t.Error("bless shell wrote no text")
	}
}

// ---------- Colors ----------

func TestRandomColor_NeverRepeats(t *testing.T) {
	for _, v := range []float64{0, 0.5, 0.99} {
		w := newTestWorld(t, fixedRand(v), normalSettings())
		prev := w.randomColor()
		for i := 0; i < 50; i++ {
			c := w.randomColor()
			if c == prev {
				t.Fatalf("rand %.2f: repeated %s", v, c)
			}
			if !c.Visible() {
				t.Fatalf("picked non-palette color %s", c)
			}
			prev = c
		}
	}
}
