package sim

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-asteroids/internal/core"
)

// Ship is the player craft. Exactly one exists while a session is running.
type Ship struct {
	Pos          core.Vec2
	Vel          core.Vec2
	Heading      float64 // radians, 0 points along +X, -Pi/2 points up
	Rotation     float64 // radians applied this tick
	Radius       float64
	Thrusting    bool
	Lives        int
	Invulnerable int // ticks remaining
}

// Nose returns the point bullets leave from.
func (s Ship) Nose() core.Vec2 {
	return s.Pos.Add(core.FromAngle(s.Heading, s.Radius))
}

// Projectile is the shared motion state of bullets and saucer bullets.
// Distance is accumulated per axis so range counts path length across wraps.
type Projectile struct {
	Pos       core.Vec2
	Vel       core.Vec2
	TraveledX float64
	TraveledY float64
	MaxRange  float64
}

// Traveled returns the path length covered so far.
func (p Projectile) Traveled() float64 {
	return math.Hypot(p.TraveledX, p.TraveledY)
}

// Expired reports whether the projectile has used up its range.
func (p Projectile) Expired() bool {
	return p.Traveled() >= p.MaxRange
}

func (p *Projectile) advance(w World) {
	p.Pos = w.Move(p.Pos, p.Vel)
	p.TraveledX += math.Abs(p.Vel.X)
	p.TraveledY += math.Abs(p.Vel.Y)
}

// Bullet is fired by the ship.
type Bullet struct {
	Projectile
}

// SaucerBullet is fired by a saucer at the ship.
type SaucerBullet struct {
	Projectile
}

// Asteroid drifts in a straight line until shot.
type Asteroid struct {
	Pos    core.Vec2
	Vel    core.Vec2
	Radius float64
	Seed   int64 // outline shape
}

// Saucer crosses the world horizontally and shoots at the ship.
type Saucer struct {
	Pos       core.Vec2
	Vel       core.Vec2 // units per second
	Radius    float64
	Side      int // +1 enters at the left edge heading right, -1 the reverse
	FireTimer time.Duration
	Travel    float64 // distance covered since entering
	Handle    SoundHandle
}

// Offstage reports whether the saucer has crossed the whole world and is
// coasting out through the departure margin. Offstage saucers are not
// drawn, do not fire and cannot be hit.
func (s Saucer) Offstage(w World) bool {
	return s.Travel >= w.W
}

// Particle is cosmetic explosion debris.
type Particle struct {
	Pos     core.Vec2
	Vel     core.Vec2
	Life    int // ticks remaining
	MaxLife int
}

// Fraction returns remaining life in [0, 1].
func (p Particle) Fraction() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return core.ClampF(float64(p.Life)/float64(p.MaxLife), 0, 1)
}
