package sim

import (
	"math"

	"github.com/vovakirdan/tui-asteroids/internal/core"
)

// resolveCollisions runs the fixed resolution order: bullets against
// asteroids, then against saucers, then saucer bullets against the ship,
// then asteroids against the ship. Removals apply immediately.
func (s *Sim) resolveCollisions() {
	s.resolveBullets()

	ship := s.reg.Ship()
	if ship.Invulnerable == 0 && s.state.Phase == PhasePlaying {
		for i := range s.reg.SaucerBullets.Len() {
			b := s.reg.SaucerBullets.At(i)
			if s.world.Overlap(b.Pos, 0, ship.Pos, ship.Radius) {
				s.reg.SaucerBullets.Remove(i)
				s.damageShip()
				break
			}
		}
	}

	// Re-checked: a saucer bullet may have just started the window.
	if ship.Invulnerable == 0 && s.state.Phase == PhasePlaying {
		for _, a := range s.reg.Asteroids.Items() {
			if s.world.Overlap(a.Pos, a.Radius, ship.Pos, ship.Radius) {
				s.damageShip()
				break
			}
		}
	}
}

// resolveBullets tests bullets newest first. A bullet that hits an
// asteroid is consumed and never reaches the saucer test.
func (s *Sim) resolveBullets() {
	for i := s.reg.Bullets.Len() - 1; i >= 0; i-- {
		p := s.reg.Bullets.At(i).Pos

		if j := s.asteroidAt(p); j >= 0 {
			s.reg.Bullets.Remove(i)
			s.destroyAsteroid(j)
			continue
		}
		if k := s.saucerAt(p); k >= 0 {
			s.reg.Bullets.Remove(i)
			s.destroySaucer(k)
		}
	}
}

// asteroidAt returns the index of the first asteroid containing p, or -1.
func (s *Sim) asteroidAt(p core.Vec2) int {
	for j, a := range s.reg.Asteroids.Items() {
		if s.world.Overlap(p, 0, a.Pos, a.Radius) {
			return j
		}
	}
	return -1
}

// saucerAt returns the index of the first onstage saucer containing p, or -1.
func (s *Sim) saucerAt(p core.Vec2) int {
	for k, sc := range s.reg.Saucers.Items() {
		if sc.Offstage(s.world) {
			continue
		}
		if s.world.Overlap(p, 0, sc.Pos, sc.Radius) {
			return k
		}
	}
	return -1
}

// destroyAsteroid removes asteroid j, scores it, and splits it in two
// half-radius children when it is above the split threshold.
func (s *Sim) destroyAsteroid(j int) {
	a := *s.reg.Asteroids.At(j)
	s.reg.Asteroids.Remove(j)

	s.state.Score += s.cfg.Scoring.Asteroid
	s.audio.Play(AudioEvent{Kind: SoundExplosion, Volume: s.explosionVolume(a.Radius)})
	s.burst(a.Pos)

	if a.Radius <= s.cfg.Asteroids.SplitThreshold {
		return
	}
	r := a.Radius / 2
	speed := s.difficulty.Speed(1, s.progress())
	for range 2 {
		h := s.heading()
		s.reg.Asteroids.Insert(Asteroid{
			// Offset along the child's own heading so siblings never coincide.
			Pos:    s.world.Move(a.Pos, core.FromAngle(h, r/2)),
			Vel:    core.FromAngle(h, speed*s.uniform(s.cfg.Asteroids.SplitMinSpeed, s.cfg.Asteroids.SplitMaxSpeed)),
			Radius: r,
			Seed:   s.rng.Int63(),
		})
	}
}

// destroySaucer removes saucer k, stops its loop and reschedules arrival.
func (s *Sim) destroySaucer(k int) {
	sc := s.reg.Saucers.At(k)
	s.stopSaucerLoop(sc)
	pos := sc.Pos
	s.reg.Saucers.Remove(k)

	s.state.Score += s.cfg.Scoring.Saucer
	s.audio.Play(AudioEvent{Kind: SoundExplosion, Volume: 1})
	s.burst(pos)
	s.scheduleSaucer()
}

// damageShip costs one life and resets the ship to the center with a
// fresh invulnerability window. Losing the last life ends the session.
func (s *Sim) damageShip() {
	ship := s.reg.Ship()
	s.burst(ship.Pos)
	s.audio.Play(AudioEvent{Kind: SoundExplosion, Volume: 0.8})

	ship.Lives = max(ship.Lives-1, 0)
	s.state.Lives = ship.Lives

	ship.Pos = s.world.Center()
	ship.Vel = core.Vec2{}
	ship.Heading = -math.Pi / 2
	ship.Invulnerable = s.cfg.Ship.InvulnerableTicks

	if ship.Lives == 0 {
		s.gameOver()
	}
}

// explosionVolume scales with asteroid size.
func (s *Sim) explosionVolume(radius float64) float64 {
	if s.cfg.Asteroids.MaxRadius <= 0 {
		return 1
	}
	return core.ClampF(radius/s.cfg.Asteroids.MaxRadius, 0.3, 1)
}

// burst emits explosion particles at p.
func (s *Sim) burst(p core.Vec2) {
	cfg := s.cfg.Particles
	if cfg.Life <= 0 {
		return
	}
	for range cfg.Count {
		s.reg.Particles.Insert(Particle{
			Pos:     p,
			Vel:     core.FromAngle(s.heading(), s.uniform(cfg.MinSpeed, cfg.MaxSpeed)),
			Life:    cfg.Life,
			MaxLife: cfg.Life,
		})
	}
}
