// Package spectate streams live game snapshots to WebSocket watchers.
// Frames are msgpack-encoded and sent as binary messages.
package spectate

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
)

// Point is a world position.
type Point struct {
	X float32 `msgpack:"x"`
	Y float32 `msgpack:"y"`
}

// Body is a round entity.
type Body struct {
	Point
	R float32 `msgpack:"r"`
}

// ShipFrame is the player's ship.
type ShipFrame struct {
	Point
	Heading      float32 `msgpack:"h"`
	Thrusting    bool    `msgpack:"t"`
	Invulnerable bool    `msgpack:"i"`
}

// Frame is one published snapshot.
type Frame struct {
	Player        string     `msgpack:"pl"`
	Tick          uint64     `msgpack:"tick"`
	Phase         string     `msgpack:"ph"`
	Score         int        `msgpack:"sc"`
	Wave          int        `msgpack:"wv"`
	Lives         int        `msgpack:"lv"`
	Width         float32    `msgpack:"w"`
	Height        float32    `msgpack:"hg"`
	Ship          *ShipFrame `msgpack:"s,omitempty"`
	Asteroids     []Body     `msgpack:"a"`
	Saucers       []Body     `msgpack:"u"`
	Bullets       []Point    `msgpack:"b"`
	SaucerBullets []Point    `msgpack:"ub"`
}

// NewFrame converts a snapshot. Particles are left out.
func NewFrame(player string, s sim.Snapshot) Frame {
	f := Frame{
		Player:        player,
		Tick:          s.Tick,
		Phase:         s.State.Phase.String(),
		Score:         s.State.Score,
		Wave:          s.State.Wave,
		Lives:         s.State.Lives,
		Width:         float32(s.World.W),
		Height:        float32(s.World.H),
		Asteroids:     make([]Body, 0, len(s.Asteroids)),
		Saucers:       make([]Body, 0, len(s.Saucers)),
		Bullets:       make([]Point, 0, len(s.Bullets)),
		SaucerBullets: make([]Point, 0, len(s.SaucerBullets)),
	}

	if s.HasShip {
		f.Ship = &ShipFrame{
			Point:        Point{X: float32(s.Ship.Pos.X), Y: float32(s.Ship.Pos.Y)},
			Heading:      float32(s.Ship.Heading),
			Thrusting:    s.Ship.Thrusting,
			Invulnerable: s.Ship.Invulnerable,
		}
	}
	for _, a := range s.Asteroids {
		f.Asteroids = append(f.Asteroids, Body{Point: Point{X: float32(a.Pos.X), Y: float32(a.Pos.Y)}, R: float32(a.Radius)})
	}
	for _, u := range s.Saucers {
		f.Saucers = append(f.Saucers, Body{Point: Point{X: float32(u.Pos.X), Y: float32(u.Pos.Y)}, R: float32(u.Radius)})
	}
	for _, b := range s.Bullets {
		f.Bullets = append(f.Bullets, Point{X: float32(b.X), Y: float32(b.Y)})
	}
	for _, b := range s.SaucerBullets {
		f.SaucerBullets = append(f.SaucerBullets, Point{X: float32(b.X), Y: float32(b.Y)})
	}
	return f
}

// Encode marshals a frame for the wire.
func Encode(f Frame) ([]byte, error) {
	return msgpack.Marshal(&f)
}

// Decode unmarshals a frame read from the wire.
func Decode(data []byte) (Frame, error) {
	var f Frame
	err := msgpack.Unmarshal(data, &f)
	return f, err
}
