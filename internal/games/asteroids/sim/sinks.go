package sim

// SoundKind identifies an audio cue.
type SoundKind int

const (
	SoundThrustStart SoundKind = iota
	SoundThrustStop
	SoundFire
	SoundExplosion
	SoundSaucerFire
	SoundSaucerLoopStart
	SoundSaucerLoopStop
)

// String returns the cue name.
func (k SoundKind) String() string {
	switch k {
	case SoundThrustStart:
		return "thrustStart"
	case SoundThrustStop:
		return "thrustStop"
	case SoundFire:
		return "fire"
	case SoundExplosion:
		return "explosion"
	case SoundSaucerFire:
		return "saucerFire"
	case SoundSaucerLoopStart:
		return "saucerLoopStart"
	case SoundSaucerLoopStop:
		return "saucerLoopStop"
	default:
		return "unknown"
	}
}

// SoundHandle names one looping sound so it can be stopped later.
// Zero means no handle.
type SoundHandle uint64

// AudioEvent is a fire-and-forget cue. Volume is in [0, 1].
type AudioEvent struct {
	Kind   SoundKind
	Volume float64
	Handle SoundHandle
}

// AudioSink receives cues synchronously from inside a tick.
// Implementations must return promptly and must not call back into the Sim.
type AudioSink interface {
	Play(ev AudioEvent)
}

// NopAudio discards every cue.
type NopAudio struct{}

// Play does nothing.
func (NopAudio) Play(AudioEvent) {}

// RenderSink receives one snapshot per tick. The snapshot is a copy and
// may be kept.
type RenderSink interface {
	Present(s Snapshot)
}

// NopRender discards every snapshot.
type NopRender struct{}

// Present does nothing.
func (NopRender) Present(Snapshot) {}
