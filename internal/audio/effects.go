package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Cue shapes
const (
	fireDuration         = 90 * time.Millisecond
	saucerFireDuration   = 140 * time.Millisecond
	explosionDuration    = 450 * time.Millisecond
	explosionAttack      = 5 * time.Millisecond
	saucerWarblePeriod   = 250 * time.Millisecond
	thrustRumbleHz       = 55.0
	saucerLowHz          = 440.0
	saucerHighHz         = 660.0
	fireStartHz          = 1400.0
	fireEndHz            = 500.0
	saucerFireStartHz    = 900.0
	saucerFireEndHz      = 300.0
	explosionRumbleHz    = 70.0
	thrustNoiseSmoothing = 0.08
)

// sweep is a one-shot square wave gliding between two pitches.
type sweep struct {
	rate     beep.SampleRate
	from, to float64
	phase    float64
	pos      int
	total    int
}

func newSweep(rate beep.SampleRate, from, to float64, d time.Duration) *sweep {
	return &sweep{rate: rate, from: from, to: to, total: rate.N(d)}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		progress := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*progress

		val := 1.0
		if s.phase >= 0.5 {
			val = -1.0
		}
		val *= 1 - progress

		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// burst is decaying noise over a low rumble.
type burst struct {
	rate   beep.SampleRate
	rng    *rand.Rand
	pos    int
	total  int
	attack int
}

func newBurst(rate beep.SampleRate, d, attack time.Duration, seed int64) *burst {
	return &burst{
		rate:   rate,
		rng:    rand.New(rand.NewSource(seed)),
		total:  rate.N(d),
		attack: rate.N(attack),
	}
}

func (b *burst) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if b.pos >= b.total {
			return i, i > 0
		}
		t := float64(b.pos) / float64(b.rate)

		env := math.Exp(-t * 9)
		if b.pos < b.attack {
			env *= float64(b.pos) / float64(b.attack)
		}
		noise := b.rng.Float64()*2 - 1
		rumble := math.Sin(2 * math.Pi * explosionRumbleHz * t)
		val := env * (0.6*noise + 0.4*rumble)

		samples[i][0] = val
		samples[i][1] = val
		b.pos++
	}
	return len(samples), true
}

func (b *burst) Err() error { return nil }

// rumble is an endless engine loop: smoothed noise over a low tone.
type rumble struct {
	rate   beep.SampleRate
	rng    *rand.Rand
	pos    int
	smooth float64
}

func newRumble(rate beep.SampleRate, seed int64) *rumble {
	return &rumble{rate: rate, rng: rand.New(rand.NewSource(seed))}
}

func (r *rumble) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(r.pos) / float64(r.rate)
		noise := r.rng.Float64()*2 - 1
		r.smooth += thrustNoiseSmoothing * (noise - r.smooth)
		val := 0.7*r.smooth + 0.3*math.Sin(2*math.Pi*thrustRumbleHz*t)

		samples[i][0] = val
		samples[i][1] = val
		r.pos++
	}
	return len(samples), true
}

func (r *rumble) Err() error { return nil }

// warble is the endless two-tone saucer siren.
type warble struct {
	rate   beep.SampleRate
	period int
	phase  float64
	pos    int
}

func newWarble(rate beep.SampleRate) *warble {
	return &warble{rate: rate, period: rate.N(saucerWarblePeriod)}
}

func (w *warble) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		// Glide up for half a period and back down for the other half.
		cycle := float64(w.pos%w.period) / float64(w.period)
		mix := 1 - math.Abs(2*cycle-1)
		freq := saucerLowHz + (saucerHighHz-saucerLowHz)*mix

		val := math.Sin(2 * math.Pi * w.phase)
		samples[i][0] = val
		samples[i][1] = val

		w.phase += freq / float64(w.rate)
		w.phase -= math.Floor(w.phase)
		w.pos++
	}
	return len(samples), true
}

func (w *warble) Err() error { return nil }

// newVolume scales a stream linearly. Zero or less is silent since the
// effect works in log space.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// fireSound is the player's laser blip with a faint sine click on top.
func fireSound(rate beep.SampleRate) beep.Streamer {
	blip := newSweep(rate, fireStartHz, fireEndHz, fireDuration)
	click, err := generators.SineTone(rate, fireStartHz*2)
	if err != nil {
		return blip
	}
	return beep.Mix(
		newVolume(blip, 0.8),
		newVolume(beep.Take(rate.N(fireDuration/6), click), 0.2),
	)
}

func saucerFireSound(rate beep.SampleRate) beep.Streamer {
	return newSweep(rate, saucerFireStartHz, saucerFireEndHz, saucerFireDuration)
}

func explosionSound(rate beep.SampleRate, seed int64) beep.Streamer {
	return newBurst(rate, explosionDuration, explosionAttack, seed)
}

func thrustLoop(rate beep.SampleRate, seed int64) beep.Streamer {
	return newRumble(rate, seed)
}

func saucerLoop(rate beep.SampleRate) beep.Streamer {
	return newWarble(rate)
}
