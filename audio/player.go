// Package audio plays synthesized firework cues through the beep speaker.
package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/fireworks/config"
	"github.com/pthm-cable/fireworks/systems"
)

// Small bursts closer together than this are dropped; floral and falling
// leaves shells trigger many of them at once.
const smallBurstThrottle = 20 * time.Millisecond

var (
	ErrUnknownCue = errors.New("unknown audio cue")
	errThrottled  = errors.New("cue throttled")
)

// voice is a resolved request to play a cue.
type voice struct {
	cue    string
	volume float64
	rate   float64
}

// Player implements systems.AudioSink. Until Init succeeds, or when the
// device is unavailable, it resolves cues but plays nothing.
type Player struct {
	mu     sync.Mutex
	cues   map[string]config.CueConfig
	master float64
	sr     beep.SampleRate
	rng    *rand.Rand
	now    func() time.Time

	mixer       *beep.Mixer
	initialized bool
	muted       bool

	lastSmallBurst time.Time
	seed           uint64
	played         int
}

// NewPlayer creates a player from the audio configuration.
func NewPlayer(cfg config.AudioConfig, rng *rand.Rand) *Player {
	sr := beep.SampleRate(cfg.SampleRate)
	if sr <= 0 {
		sr = 44100
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return &Player{
		cues:   cfg.Cues,
		master: cfg.MasterVolume,
		sr:     sr,
		rng:    rng,
		now:    time.Now,
		mixer:  &beep.Mixer{},
		muted:  !cfg.Enabled,
	}
}

// Init opens the audio device. A failure leaves the player silent; callers
// log it and carry on.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.sr, p.sr.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops playback and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// SetMuted toggles playback without closing the device.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// Played returns how many cues were resolved for playback.
func (p *Player) Played() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

// PlayCue implements systems.AudioSink. Scale is clamped to [0, 1]; smaller
// scales play quieter and faster.
func (p *Player) PlayCue(name string, scale float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	v, err := p.resolve(name, scale)
	if err != nil {
		if errors.Is(err, ErrUnknownCue) {
			slog.Warn("audio cue skipped", "cue", name, "error", err)
		}
		return
	}
	p.played++
	if !p.initialized || p.muted {
		return
	}

	p.seed++
	src := beep.Streamer(newSynth(shapes[v.cue], p.sr, p.seed))
	if v.rate != 1 {
		src = beep.ResampleRatio(3, v.rate, src)
	}
	speaker.Lock()
	p.mixer.Add(newVolume(src, v.volume))
	speaker.Unlock()
}

// resolve applies throttling and the cue table. Caller holds p.mu.
func (p *Player) resolve(name string, scale float64) (voice, error) {
	cue, ok := p.cues[name]
	if _, synthesized := shapes[name]; !ok || !synthesized {
		return voice{}, fmt.Errorf("%w: %q", ErrUnknownCue, name)
	}
	scale = systems.Clamp(scale, 0, 1)

	if name == systems.CueBurstSmall {
		now := p.now()
		if now.Sub(p.lastSmallBurst) < smallBurstThrottle {
			return voice{}, errThrottled
		}
		p.lastSmallBurst = now
	}

	rate := systems.RandomRange(p.rng, cue.RateMin, cue.RateMax)
	return voice{
		cue:    name,
		volume: cue.Volume * scale * p.master,
		rate:   rate * (2 - scale),
	}, nil
}
