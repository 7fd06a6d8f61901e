package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/pthm-cable/fireworks/systems"
)

// shape describes a synthesized cue at a playback rate of 1.
type shape struct {
	duration time.Duration
	tone     float64 // Sine start frequency; 0 = noise only
	toneEnd  float64 // Sine end frequency (sweeps linearly)
	noise    float64 // Noise mix in [0, 1]
	cutoff   float64 // One-pole low-pass cutoff in Hz
	decay    float64 // Exponential decay rate per second
	attack   time.Duration
	clicks   float64 // Crackle impulses per second; 0 = continuous
}

var shapes = map[string]shape{
	systems.CueLift: {
		duration: 1200 * time.Millisecond,
		tone:     380, toneEnd: 1400,
		noise:  0.55,
		cutoff: 5200,
		decay:  0.9,
		attack: 250 * time.Millisecond,
	},
	systems.CueBurst: {
		duration: 1600 * time.Millisecond,
		noise:    1,
		cutoff:   420,
		decay:    3.2,
		attack:   4 * time.Millisecond,
	},
	systems.CueBurstSmall: {
		duration: 500 * time.Millisecond,
		noise:    1,
		cutoff:   900,
		decay:    7,
		attack:   2 * time.Millisecond,
	},
	systems.CueCrackle: {
		duration: 1100 * time.Millisecond,
		noise:    1,
		cutoff:   7000,
		decay:    2.2,
		clicks:   340,
	},
	systems.CueCrackleSmall: {
		duration: 450 * time.Millisecond,
		noise:    1,
		cutoff:   8000,
		decay:    4.5,
		clicks:   220,
	},
}

// synth streams one cue. It owns its random source because it runs on the
// speaker goroutine.
type synth struct {
	s     shape
	sr    beep.SampleRate
	rng   *rand.Rand
	pos   int
	total int
	phase float64
	lp    float64
	alpha float64
}

func newSynth(s shape, sr beep.SampleRate, seed uint64) *synth {
	dt := 1 / float64(sr)
	rc := 1 / (2 * math.Pi * s.cutoff)
	return &synth{
		s:     s,
		sr:    sr,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		total: sr.N(s.duration),
		alpha: dt / (rc + dt),
	}
}

func (g *synth) Stream(samples [][2]float64) (n int, ok bool) {
	attack := g.sr.N(g.s.attack)
	clickChance := g.s.clicks / float64(g.sr)
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.sr)
		progress := float64(g.pos) / float64(g.total)

		var src float64
		if g.s.clicks > 0 {
			if g.rng.Float64() < clickChance*(1-progress) {
				src = g.rng.Float64()*2 - 1
			}
		} else {
			src = g.s.noise * (g.rng.Float64()*2 - 1)
		}
		// Low-pass
		g.lp += g.alpha * (src - g.lp)
		v := g.lp

		if g.s.tone > 0 {
			freq := g.s.tone + (g.s.toneEnd-g.s.tone)*progress
			g.phase += freq / float64(g.sr)
			g.phase -= math.Floor(g.phase)
			v += (1 - g.s.noise) * math.Sin(2*math.Pi*g.phase)
		}

		env := math.Exp(-g.s.decay * t)
		if g.pos < attack {
			env *= float64(g.pos) / float64(attack)
		}
		// Short fade at the tail to avoid a click.
		if tail := g.total - g.pos; tail < 256 {
			env *= float64(tail) / 256
		}

		samples[i][0] = v * env
		samples[i][1] = v * env
		g.pos++
	}
	return len(samples), true
}

func (g *synth) Err() error { return nil }

// newVolume scales s by a linear volume. Zero or negative volume is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
