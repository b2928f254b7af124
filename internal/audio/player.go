// Package audio plays simulation cues through the system speaker.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
)

const sampleRate = beep.SampleRate(44100)

// Player implements sim.AudioSink. Until Initialize succeeds loops are
// still tracked but nothing reaches the mixer.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	thrust      *beep.Ctrl
	loops       map[sim.SoundHandle]*beep.Ctrl
	master      float64
	seed        int64
	initialized bool
}

// NewPlayer creates a player with the given master volume in [0, 1].
func NewPlayer(master float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		loops:  make(map[sim.SoundHandle]*beep.Ctrl),
		master: min(max(master, 0), 1),
	}
}

// Initialize opens the speaker. Failure is not fatal: the caller may keep
// using the player silently.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops every sound. The speaker itself stays open.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.withSpeaker(func() {
		p.mixer.Clear()
	})
	p.thrust = nil
	clear(p.loops)
	p.initialized = false
}

// Play handles one cue.
func (p *Player) Play(ev sim.AudioEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch ev.Kind {
	case sim.SoundThrustStart:
		if p.thrust != nil {
			return
		}
		p.seed++
		p.thrust = p.start(thrustLoop(sampleRate, p.seed), ev.Volume)
	case sim.SoundThrustStop:
		p.stop(p.thrust)
		p.thrust = nil
	case sim.SoundFire:
		p.add(fireSound(sampleRate), ev.Volume)
	case sim.SoundSaucerFire:
		p.add(saucerFireSound(sampleRate), ev.Volume)
	case sim.SoundExplosion:
		p.seed++
		p.add(explosionSound(sampleRate, p.seed), ev.Volume)
	case sim.SoundSaucerLoopStart:
		if ev.Handle == 0 {
			return
		}
		if _, ok := p.loops[ev.Handle]; ok {
			return
		}
		p.loops[ev.Handle] = p.start(saucerLoop(sampleRate), ev.Volume)
	case sim.SoundSaucerLoopStop:
		p.stop(p.loops[ev.Handle])
		delete(p.loops, ev.Handle)
	}
}

// ActiveLoops reports how many looping sounds are running.
func (p *Player) ActiveLoops() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.loops)
	if p.thrust != nil {
		n++
	}
	return n
}

func (p *Player) add(s beep.Streamer, vol float64) {
	if !p.initialized {
		return
	}
	s = newVolume(s, vol*p.master)
	p.withSpeaker(func() {
		p.mixer.Add(s)
	})
}

func (p *Player) start(s beep.Streamer, vol float64) *beep.Ctrl {
	ctrl := &beep.Ctrl{Streamer: newVolume(s, vol*p.master)}
	if p.initialized {
		p.withSpeaker(func() {
			p.mixer.Add(ctrl)
		})
	}
	return ctrl
}

// stop silences a loop. A nil ctrl is ignored. The mixer drops the stream
// once it reports exhaustion.
func (p *Player) stop(ctrl *beep.Ctrl) {
	if ctrl == nil {
		return
	}
	p.withSpeaker(func() {
		ctrl.Streamer = nil
	})
}

// withSpeaker runs f while the speaker is not pulling from the mixer.
func (p *Player) withSpeaker(f func()) {
	if !p.initialized {
		f()
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	f()
}
