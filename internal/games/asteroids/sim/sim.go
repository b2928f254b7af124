package sim

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-asteroids/internal/config"
)

// Event names for the deferred queue.
const eventWave = "wave"

// RotateDir is the held rotation input.
type RotateDir int

const (
	RotateLeft  RotateDir = -1
	RotateNone  RotateDir = 0
	RotateRight RotateDir = 1
)

// controls holds the latest control state. Rotation and thrust are levels,
// fire is an edge consumed by the next tick.
type controls struct {
	rotate    RotateDir
	thrusting bool
	fire      bool
}

// Sim is one asteroids session. It is not safe for concurrent use; the
// host calls every method from the goroutine that drives Tick.
type Sim struct {
	cfg        config.AsteroidsConfig
	world      World
	rng        *rand.Rand
	audio      AudioSink
	render     RenderSink
	difficulty *config.DifficultyManager

	reg      Registry
	clock    Clock
	state    GameState
	controls controls
	pending  trigger
	viewport Viewport

	epoch        uint64 // bumped on every session reset
	nextSaucerAt time.Duration
	nextHandle   SoundHandle
}

// New creates a simulation in NOT_STARTED. Nil sinks are replaced by no-ops.
func New(cfg config.AsteroidsConfig, rng *rand.Rand, audio AudioSink, render RenderSink) *Sim {
	if audio == nil {
		audio = NopAudio{}
	}
	if render == nil {
		render = NopRender{}
	}
	return &Sim{
		cfg:        cfg,
		world:      NewWorld(cfg.World),
		rng:        rng,
		audio:      audio,
		render:     render,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		state:      GameState{Wave: 1, Lives: cfg.Ship.Lives, Phase: PhaseNotStarted},
	}
}

// Rotate sets the held rotation direction.
func (s *Sim) Rotate(dir RotateDir) {
	s.controls.rotate = RotateDir(max(-1, min(1, int(dir))))
}

// SetThrusting sets the held thrust state.
func (s *Sim) SetThrusting(on bool) {
	s.controls.thrusting = on
}

// Fire requests one shot on the next tick.
func (s *Sim) Fire() {
	s.controls.fire = true
}

// Start requests the NOT_STARTED -> PLAYING transition on the next tick.
func (s *Sim) Start() {
	s.pending = triggerStart
}

// Restart requests the GAME_OVER -> PLAYING transition on the next tick.
func (s *Sim) Restart() {
	s.pending = triggerRestart
}

// SetViewport records the presentation surface size. It is copied into
// snapshots and never affects the world or collisions.
func (s *Sim) SetViewport(v Viewport) {
	s.viewport = v
}

// State returns the scoreboard.
func (s *Sim) State() GameState { return s.state }

// World returns the fixed world extent.
func (s *Sim) World() World { return s.world }

// Now returns accumulated simulation time.
func (s *Sim) Now() time.Duration { return s.clock.Now() }

// Tick runs one frame: triggers, then (while PLAYING) clock, kinematics,
// collisions, spawns and the terminal check, and finally hands a snapshot
// to the render sink.
func (s *Sim) Tick(elapsed time.Duration) {
	s.applyTrigger()

	if s.state.Phase == PhasePlaying {
		ship := s.reg.Ship()
		shielded := ship.Invulnerable > 0

		dt := s.clock.Advance(elapsed)
		s.updateKinematics(dt)
		s.resolveCollisions()
		if s.state.Phase == PhasePlaying {
			s.updateSpawns(dt)
		}
		s.checkTerminal()

		// A ship that entered the tick shielded could not be hit, so the
		// counter can safely count down. A fresh hit keeps its full window.
		if shielded && ship.Invulnerable > 0 {
			ship.Invulnerable--
		}
	}
	s.controls.fire = false

	s.render.Present(s.Snapshot())
}

// uniform returns a value in [lo, hi).
func (s *Sim) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// uniformDuration returns a value in [lo, hi].
func (s *Sim) uniformDuration(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(s.rng.Int63n(int64(hi-lo)+1))
}

// heading returns a random direction.
func (s *Sim) heading() float64 {
	return s.rng.Float64() * 2 * math.Pi
}

// progress is the difficulty input for the current session.
func (s *Sim) progress() config.Progress {
	return config.Progress{Wave: s.state.Wave, Score: s.state.Score, Ticks: int(s.clock.Ticks())}
}

// newShip returns a ship at rest in the center, pointing up.
func (s *Sim) newShip() Ship {
	return Ship{
		Pos:     s.world.Center(),
		Heading: -math.Pi / 2,
		Radius:  s.cfg.Ship.Radius,
		Lives:   s.cfg.Ship.Lives,
	}
}
