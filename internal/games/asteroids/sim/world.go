// Package sim is the asteroids simulation core: a fixed toroidal world,
// the live entity collections, per-tick kinematics, collision resolution,
// wave and saucer spawning, and the start/playing/game-over state machine.
//
// The core is single-threaded and never blocks. Rendering and audio are
// reached only through the RenderSink and AudioSink interfaces, and all
// randomness comes from an injected *rand.Rand.
package sim

import (
	"math"

	"github.com/vovakirdan/tui-asteroids/internal/config"
	"github.com/vovakirdan/tui-asteroids/internal/core"
)

// World is the fixed simulation extent. Every position is wrapped into
// [0, W) x [0, H) after every update.
type World struct {
	W, H float64
}

// NewWorld builds a world from configuration.
func NewWorld(cfg config.WorldConfig) World {
	return World{W: cfg.Width, H: cfg.Height}
}

// Wrap maps p onto the torus.
func (w World) Wrap(p core.Vec2) core.Vec2 {
	return core.Vec2{X: core.Wrap(p.X, w.W), Y: core.Wrap(p.Y, w.H)}
}

// Move returns wrap(p + d).
func (w World) Move(p, d core.Vec2) core.Vec2 {
	return w.Wrap(p.Add(d))
}

// Center returns the middle of the world.
func (w World) Center() core.Vec2 {
	return core.Vec2{X: w.W / 2, Y: w.H / 2}
}

// Contains reports whether p is already in wrapped form.
func (w World) Contains(p core.Vec2) bool {
	return p.X >= 0 && p.X < w.W && p.Y >= 0 && p.Y < w.H
}

// Delta returns the shortest displacement from a to b across the seams.
func (w World) Delta(a, b core.Vec2) core.Vec2 {
	return core.Vec2{X: shortest(b.X-a.X, w.W), Y: shortest(b.Y-a.Y, w.H)}
}

// Overlap reports whether two circles intersect on the torus, so a circle
// straddling a seam is hit from either side of it.
func (w World) Overlap(p1 core.Vec2, r1 float64, p2 core.Vec2, r2 float64) bool {
	return core.CirclesOverlap(p1, r1, p1.Add(w.Delta(p1, p2)), r2)
}

func shortest(d, extent float64) float64 {
	d = math.Mod(d, extent)
	switch {
	case d > extent/2:
		d -= extent
	case d < -extent/2:
		d += extent
	}
	return d
}
