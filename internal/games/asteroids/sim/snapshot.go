package sim

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"time"

	"github.com/vovakirdan/tui-asteroids/internal/core"
)

// Viewport is the presentation surface in cells.
type Viewport struct {
	Width, Height int
}

// ShipView is the rendered ship.
type ShipView struct {
	Pos          core.Vec2
	Heading      float64
	Radius       float64
	Thrusting    bool
	Lives        int
	Invulnerable bool
}

// AsteroidView is a rendered asteroid.
type AsteroidView struct {
	Pos    core.Vec2
	Radius float64
	Seed   int64
}

// SaucerView is a rendered saucer.
type SaucerView struct {
	Pos    core.Vec2
	Radius float64
}

// ParticleView is rendered debris. Life is the remaining fraction.
type ParticleView struct {
	Pos  core.Vec2
	Life float64
}

// Snapshot is a read-only copy of everything the renderer needs.
// Offstage saucers are omitted.
type Snapshot struct {
	Tick     uint64
	Time     time.Duration
	World    World
	Viewport Viewport
	State    GameState

	HasShip       bool
	Ship          ShipView
	Asteroids     []AsteroidView
	Bullets       []core.Vec2
	SaucerBullets []core.Vec2
	Saucers       []SaucerView
	Particles     []ParticleView
}

// Snapshot copies the current state.
func (s *Sim) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:     s.clock.Ticks(),
		Time:     s.clock.Now(),
		World:    s.world,
		Viewport: s.viewport,
		State:    s.state,
	}

	if ship := s.reg.Ship(); ship != nil {
		snap.HasShip = true
		snap.Ship = ShipView{
			Pos:          ship.Pos,
			Heading:      ship.Heading,
			Radius:       ship.Radius,
			Thrusting:    ship.Thrusting,
			Lives:        ship.Lives,
			Invulnerable: ship.Invulnerable > 0,
		}
	}

	snap.Asteroids = make([]AsteroidView, 0, s.reg.Asteroids.Len())
	for _, a := range s.reg.Asteroids.Items() {
		snap.Asteroids = append(snap.Asteroids, AsteroidView{Pos: a.Pos, Radius: a.Radius, Seed: a.Seed})
	}
	snap.Bullets = make([]core.Vec2, 0, s.reg.Bullets.Len())
	for _, b := range s.reg.Bullets.Items() {
		snap.Bullets = append(snap.Bullets, b.Pos)
	}
	snap.SaucerBullets = make([]core.Vec2, 0, s.reg.SaucerBullets.Len())
	for _, b := range s.reg.SaucerBullets.Items() {
		snap.SaucerBullets = append(snap.SaucerBullets, b.Pos)
	}
	snap.Saucers = make([]SaucerView, 0, s.reg.Saucers.Len())
	for _, sc := range s.reg.Saucers.Items() {
		if sc.Offstage(s.world) {
			continue
		}
		snap.Saucers = append(snap.Saucers, SaucerView{Pos: sc.Pos, Radius: sc.Radius})
	}
	snap.Particles = make([]ParticleView, 0, s.reg.Particles.Len())
	for _, p := range s.reg.Particles.Items() {
		snap.Particles = append(snap.Particles, ParticleView{Pos: p.Pos, Life: p.Fraction()})
	}

	return snap
}

// Hash returns a fingerprint of the simulated state for determinism checks.
// Viewport is presentation only and is excluded.
func (snap Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	u := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	f := func(v float64) { u(math.Float64bits(v)) }
	vec := func(v core.Vec2) { f(v.X); f(v.Y) }

	u(snap.Tick)
	u(uint64(snap.Time))
	u(uint64(snap.State.Score))
	u(uint64(snap.State.Wave))
	u(uint64(snap.State.Lives))
	u(uint64(snap.State.Phase))
	if snap.HasShip {
		vec(snap.Ship.Pos)
		f(snap.Ship.Heading)
		u(uint64(snap.Ship.Lives))
	}
	for _, a := range snap.Asteroids {
		vec(a.Pos)
		f(a.Radius)
		u(uint64(a.Seed))
	}
	for _, b := range snap.Bullets {
		vec(b)
	}
	for _, b := range snap.SaucerBullets {
		vec(b)
	}
	for _, sc := range snap.Saucers {
		vec(sc.Pos)
	}
	u(uint64(len(snap.Particles)))
	return h.Sum64()
}
