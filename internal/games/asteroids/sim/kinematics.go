package sim

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-asteroids/internal/core"
)

// updateKinematics moves every entity one tick. The ship, asteroids,
// projectiles and particles move per tick; saucers move by elapsed time.
func (s *Sim) updateKinematics(dt time.Duration) {
	s.updateShip()
	if s.controls.fire {
		s.fireBullet()
	}

	w := s.world
	s.reg.Bullets.Retain(func(b *Bullet) bool {
		b.advance(w)
		return !b.Expired()
	})
	s.reg.SaucerBullets.Retain(func(b *SaucerBullet) bool {
		b.advance(w)
		return !b.Expired()
	})
	for i := range s.reg.Asteroids.Len() {
		a := s.reg.Asteroids.At(i)
		a.Pos = w.Move(a.Pos, a.Vel)
	}
	s.updateSaucers(dt)
	s.reg.Particles.Retain(func(p *Particle) bool {
		p.Pos = w.Move(p.Pos, p.Vel)
		p.Life--
		return p.Life > 0
	})
}

// updateShip applies rotation, thrust, drag and wrap.
func (s *Sim) updateShip() {
	ship := s.reg.Ship()
	cfg := s.cfg.Ship

	ship.Rotation = float64(s.controls.rotate) * cfg.TurnSpeed
	ship.Heading = math.Remainder(ship.Heading+ship.Rotation, 2*math.Pi)

	if s.controls.thrusting != ship.Thrusting {
		ship.Thrusting = s.controls.thrusting
		if ship.Thrusting {
			s.audio.Play(AudioEvent{Kind: SoundThrustStart, Volume: 0.6})
		} else {
			s.audio.Play(AudioEvent{Kind: SoundThrustStop})
		}
	}
	if ship.Thrusting {
		ship.Vel = ship.Vel.Add(core.FromAngle(ship.Heading, cfg.ThrustAccel))
	}
	ship.Vel = ship.Vel.Scale(cfg.Drag)
	ship.Pos = s.world.Move(ship.Pos, ship.Vel)
}

// fireBullet spawns a bullet at the ship's nose unless the cap is reached.
func (s *Sim) fireBullet() {
	if s.reg.Bullets.Len() >= s.cfg.Bullets.MaxLive {
		return
	}
	ship := s.reg.Ship()
	s.reg.Bullets.Insert(Bullet{Projectile{
		Pos:      s.world.Wrap(ship.Nose()),
		Vel:      core.FromAngle(ship.Heading, s.cfg.Bullets.Speed),
		MaxRange: s.cfg.Bullets.MaxRange,
	}})
	s.audio.Play(AudioEvent{Kind: SoundFire, Volume: 0.5})
}

// updateSaucers drifts saucers along their lane and despawns the ones that
// have passed the departure margin.
func (s *Sim) updateSaucers(dt time.Duration) {
	secs := dt.Seconds()
	limit := s.world.W + s.cfg.Saucer.Margin
	s.reg.Saucers.Retain(func(sc *Saucer) bool {
		step := sc.Vel.Scale(secs)
		sc.Pos = s.world.Move(sc.Pos, step)
		sc.Travel += math.Abs(step.X)
		if sc.Travel > limit {
			s.stopSaucerLoop(sc)
			return false
		}
		return true
	})
}

// stopSaucerLoop ends a saucer's engine sound once.
func (s *Sim) stopSaucerLoop(sc *Saucer) {
	if sc.Handle == 0 {
		return
	}
	s.audio.Play(AudioEvent{Kind: SoundSaucerLoopStop, Handle: sc.Handle})
	sc.Handle = 0
}
