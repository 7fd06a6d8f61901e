package systems

import (
	"math/rand/v2"
	"testing"

	"github.com/pthm-cable/fireworks/components"
)

// constSource returns the same 64-bit value forever.
type constSource uint64

func (s constSource) Uint64() uint64 { return uint64(s) }

// fixedRand returns a source whose Float64 always yields v (v in [0, 1)).
func fixedRand(v float64) *rand.Rand {
	return rand.New(constSource(uint64(v * (1 << 53))))
}

// almostOneRand returns a source whose Float64 is the largest value below 1.
func almostOneRand() *rand.Rand {
	return rand.New(constSource(1<<53 - 1))
}

func seededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// cueCall records one PlayCue invocation.
type cueCall struct {
	name  string
	scale float64
}

type recordingAudio struct {
	calls []cueCall
}

func (a *recordingAudio) PlayCue(name string, scale float64) {
	a.calls = append(a.calls, cueCall{name, scale})
}

func (a *recordingAudio) count(name string) int {
	n := 0
	for _, c := range a.calls {
		if c.name == name {
			n++
		}
	}
	return n
}

type flashCall struct {
	x, y, radius float64
}

type recordingSink struct {
	flashes []flashCall
	stars   map[components.Color]int
	sparks  map[components.Color]int
}

func newRecordingSink() *recordingSink {
	return &recordingSink{
		stars:  make(map[components.Color]int),
		sparks: make(map[components.Color]int),
	}
}

func (s *recordingSink) DrawFlash(x, y, radius float64) {
	s.flashes = append(s.flashes, flashCall{x, y, radius})
}

func (s *recordingSink) DrawStars(c components.Color, stars []*components.Star) {
	s.stars[c] += len(stars)
}

func (s *recordingSink) DrawSparks(c components.Color, sparks []*components.Spark) {
	s.sparks[c] += len(sparks)
}

// squareGlyphs returns the outline of a size x size square for any text.
type squareGlyphs struct{}

func (squareGlyphs) GlyphPoints(_ string, size int) []Point {
	var pts []Point
	for i := 0; i < size; i += 4 {
		f := float64(i)
		pts = append(pts, Point{f, 0}, Point{f, float64(size)}, Point{0, f}, Point{float64(size), f})
	}
	return pts
}

type testWorld struct {
	*World
	audio *recordingAudio
}

func newTestWorld(t *testing.T, rng *rand.Rand, settings StaticSettings) testWorld {
	t.Helper()
	audio := &recordingAudio{}
	w := NewWorld(WorldOptions{
		Rand:     rng,
		Settings: settings,
		Audio:    audio,
		Glyphs:   squareGlyphs{},
		Width:    1200,
		Height:   800,
	})
	return testWorld{World: w, audio: audio}
}

// normalSettings is DefaultSettings with an explicit shell.
func normalSettings() StaticSettings {
	s := DefaultSettings
	s.Shell = ShellCrysanthemum
	return s
}

const frameMs = 1000.0 / 60

// tick advances one nominal 60Hz frame.
func (w testWorld) tick() {
	w.Tick(frameMs, 1)
}

// runUntil ticks until done returns true or limit ticks have run.
func (w testWorld) runUntil(limit int, done func() bool) bool {
	for i := 0; i < limit; i++ {
		if done() {
			return true
		}
		w.tick()
	}
	return done()
}

func bucketContains(bucket []*components.Star, s *components.Star) bool {
	for _, b := range bucket {
		if b == s {
			return true
		}
	}
	return false
}
