package sim

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-asteroids/internal/core"
)

// maxPlacementTries bounds the rejection sampling for wave positions.
const maxPlacementTries = 32

// updateSpawns runs due events, queues wave regeneration when the field is
// clear, fires saucer guns and spawns saucers.
func (s *Sim) updateSpawns(dt time.Duration) {
	s.clock.RunDue()

	if s.reg.Asteroids.Len() == 0 && !s.clock.Pending(eventWave) {
		s.queueWave()
	}

	s.updateSaucerFire(dt)

	if s.clock.Now() >= s.nextSaucerAt {
		if s.reg.Saucers.Len() < s.cfg.Saucer.MaxAlive {
			s.spawnSaucer()
		}
		s.scheduleSaucer()
	}
}

// queueWave schedules the next wave after the pacing delay. The event
// re-checks that it belongs to this session and that the field is still
// empty before acting.
func (s *Sim) queueWave() {
	epoch := s.epoch
	s.clock.Schedule(eventWave, s.cfg.Waves.Delay,
		func() {
			s.state.Wave++
			s.spawnWave()
		},
		func() bool {
			return s.epoch == epoch &&
				s.state.Phase == PhasePlaying &&
				s.reg.Asteroids.Len() == 0
		},
	)
}

// spawnWave inserts BaseCount + (wave-1)*PerWave large asteroids away from the ship.
func (s *Sim) spawnWave() {
	cfg := s.cfg.Asteroids
	count := s.cfg.Waves.BaseCount + (s.state.Wave-1)*s.cfg.Waves.PerWave
	speed := s.difficulty.Speed(1, s.progress())

	for range count {
		h := s.heading()
		s.reg.Asteroids.Insert(Asteroid{
			Pos:    s.safePosition(),
			Vel:    core.FromAngle(h, speed*s.uniform(cfg.MinSpeed, cfg.MaxSpeed)),
			Radius: s.uniform(cfg.MinRadius, cfg.MaxRadius),
			Seed:   s.rng.Int63(),
		})
	}
}

// safePosition draws a position at least SafeRadius from the ship.
func (s *Sim) safePosition() core.Vec2 {
	anchor := s.world.Center()
	if ship := s.reg.Ship(); ship != nil {
		anchor = ship.Pos
	}
	safe := s.cfg.Asteroids.SafeRadius

	var p core.Vec2
	for range maxPlacementTries {
		p = core.V(s.rng.Float64()*s.world.W, s.rng.Float64()*s.world.H)
		if s.world.Delta(anchor, p).Len() >= safe {
			return p
		}
	}
	// Push the last draw out to the edge of the safe zone.
	return s.world.Move(anchor, core.FromAngle(s.world.Delta(anchor, p).Angle(), safe))
}

// scheduleSaucer draws the next saucer arrival time.
func (s *Sim) scheduleSaucer() {
	cfg := s.cfg.Saucer
	wait := s.difficulty.SaucerInterval(s.uniformDuration(cfg.SpawnMin, cfg.SpawnMax), s.progress())
	s.nextSaucerAt = s.clock.Now() + wait
}

// spawnSaucer enters a saucer on a random side.
func (s *Sim) spawnSaucer() {
	cfg := s.cfg.Saucer
	side := 1
	x := 0.0
	if s.rng.Intn(2) == 1 {
		side = -1
		x = math.Nextafter(s.world.W, 0)
	}
	y := s.world.H * s.uniform(cfg.MinY, cfg.MaxY)
	speed := s.uniform(cfg.MinSpeed, cfg.MaxSpeed)

	s.nextHandle++
	sc := Saucer{
		Pos:       s.world.Wrap(core.V(x, y)),
		Vel:       core.V(float64(side)*speed, 0),
		Radius:    cfg.Radius,
		Side:      side,
		FireTimer: s.uniformDuration(cfg.FireMin, cfg.FireMax),
		Handle:    s.nextHandle,
	}
	s.reg.Saucers.Insert(sc)
	s.audio.Play(AudioEvent{Kind: SoundSaucerLoopStart, Volume: 0.4, Handle: sc.Handle})
}

// updateSaucerFire counts down each onstage saucer's timer and fires at
// the ship when it runs out.
func (s *Sim) updateSaucerFire(dt time.Duration) {
	cfg := s.cfg.Saucer
	ship := s.reg.Ship()

	for i := range s.reg.Saucers.Len() {
		sc := s.reg.Saucers.At(i)
		if sc.Offstage(s.world) {
			continue
		}
		sc.FireTimer -= dt
		if sc.FireTimer > 0 {
			continue
		}
		bearing := s.world.Delta(sc.Pos, ship.Pos).Angle() + s.uniform(-cfg.AimError, cfg.AimError)
		s.reg.SaucerBullets.Insert(SaucerBullet{Projectile{
			Pos:      sc.Pos,
			Vel:      core.FromAngle(bearing, cfg.BulletSpeed),
			MaxRange: cfg.BulletRange,
		}})
		s.audio.Play(AudioEvent{Kind: SoundSaucerFire, Volume: 0.5})
		sc.FireTimer = s.uniformDuration(cfg.FireMin, cfg.FireMax)
	}
}
