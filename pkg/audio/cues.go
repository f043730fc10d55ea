// Package audio plays short tones when a kick starts and when the ball lands.
package audio

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-parabola/pkg/engine"
	"github.com/opd-ai/go-parabola/pkg/event"
	"github.com/opd-ai/go-parabola/pkg/logging"
)

const sampleRate = beep.SampleRate(44100)

// Cue durations and pitches.
const (
	KickDuration    = 90 * time.Millisecond
	KickFrequency   = 660.0
	LandingDuration = 220 * time.Millisecond
	LandingFreq     = 140.0
)

// Player mixes cues into the speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	volume      float64
	initialized bool
	played      int
	subs        []*event.Subscription
	logger      *logging.Logger
}

// NewPlayer creates a player. Nothing is audible until Initialize succeeds.
func NewPlayer(logger *logging.Logger) *Player {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Player{
		mixer:  &beep.Mixer{},
		rate:   sampleRate,
		volume: 0.5,
		logger: logger,
	}
}

// Initialize opens the speaker.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(time.Second/10)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Attach plays the kick cue on RunStarted and the landing cue when a run
// ends on the ground.
func (p *Player) Attach(bus *event.Bus) {
	start := bus.Subscribe(event.RunStarted, func(event.Event) { p.PlayKick() })
	end := bus.Subscribe(event.RunEnded, func(e event.Event) {
		if re, ok := e.(*event.RunEvent); ok && re.Reason == engine.ReasonLanded {
			p.PlayLanding()
		}
	})

	p.mu.Lock()
	p.subs = append(p.subs, start, end)
	p.mu.Unlock()
}

// PlayKick plays a short high blip.
func (p *Player) PlayKick() {
	p.play("kick", KickSound(p.rate, p.volume))
}

// PlayLanding plays a low thud.
func (p *Player) PlayLanding() {
	p.play("landing", LandingSound(p.rate, p.volume))
}

// Played returns how many cues were queued.
func (p *Player) Played() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

func (p *Player) play(name string, s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	p.played++
	p.logger.Debug(context.Background(), "audio cue", "cue", name)
}

// Close detaches from the bus and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, s := range p.subs {
		s.Cancel()
	}
	p.subs = nil

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// KickSound is a sine blip with a linear fade-out.
func KickSound(rate beep.SampleRate, volume float64) beep.Streamer {
	return tone(rate, KickFrequency, KickDuration, volume, func(pos, total int) float64 {
		return 1 - float64(pos)/float64(total)
	})
}

// LandingSound is a low sine with an exponential decay.
func LandingSound(rate beep.SampleRate, volume float64) beep.Streamer {
	return tone(rate, LandingFreq, LandingDuration, volume, func(pos, total int) float64 {
		return math.Exp(-6 * float64(pos) / float64(total))
	})
}

func tone(rate beep.SampleRate, freq float64, d time.Duration, volume float64, shape func(pos, total int) float64) beep.Streamer {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil
	}
	total := rate.N(d)
	shaped := &envelope{streamer: beep.Take(total, sine), total: total, shape: shape}
	return newVolume(shaped, volume)
}

// envelope scales each sample by shape(position).
type envelope struct {
	streamer beep.Streamer
	pos      int
	total    int
	shape    func(pos, total int) float64
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		v := e.shape(e.pos, e.total)
		samples[i][0] *= v
		samples[i][1] *= v
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
