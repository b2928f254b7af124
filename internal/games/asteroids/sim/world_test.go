package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-asteroids/internal/core"
)

func TestWorldWrap(t *testing.T) {
	w := World{W: 800, H: 600}

	tests := []struct {
		in, want core.Vec2
	}{
		{core.V(10, 10), core.V(10, 10)},
		{core.V(-5, 300), core.V(795, 300)},
		{core.V(800, 600), core.V(0, 0)},
		{core.V(1605, -1205), core.V(5, 595)},
	}
	for _, tt := range tests {
		got := w.Wrap(tt.in)
		if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
			t.Errorf("Wrap(%v) = %v, expected %v", tt.in, got, tt.want)
		}
		if !w.Contains(got) {
			t.Errorf("Wrap(%v) = %v is not contained", tt.in, got)
		}
	}
}

func TestWorldDelta(t *testing.T) {
	w := World{W: 800, H: 600}

	tests := []struct {
		name string
		a, b core.Vec2
		want core.Vec2
	}{
		{"direct", core.V(100, 100), core.V(150, 80), core.V(50, -20)},
		{"across right seam", core.V(790, 300), core.V(10, 300), core.V(20, 0)},
		{"across left seam", core.V(10, 300), core.V(790, 300), core.V(-20, 0)},
		{"across bottom seam", core.V(400, 590), core.V(400, 5), core.V(0, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := w.Delta(tt.a, tt.b)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("Delta = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestWorldOverlap(t *testing.T) {
	w := World{W: 800, H: 600}

	tests := []struct {
		name   string
		p1     core.Vec2
		r1     float64
		p2     core.Vec2
		r2     float64
		expect bool
	}{
		{"direct hit", core.V(400, 300), 0, core.V(410, 300), 20, true},
		{"direct miss", core.V(400, 300), 0, core.V(450, 300), 20, false},
		{"across left seam", core.V(4, 300), 0, core.V(795, 300), 40, true},
		{"across top seam", core.V(200, 3), 5, core.V(200, 590), 10, true},
		{"across corner", core.V(2, 2), 0, core.V(797, 597), 10, true},
		{"far across seam", core.V(50, 300), 0, core.V(795, 300), 40, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Overlap(tt.p1, tt.r1, tt.p2, tt.r2); got != tt.expect {
				t.Errorf("Overlap = %v, expected %v", got, tt.expect)
			}
			if got := w.Overlap(tt.p2, tt.r2, tt.p1, tt.r1); got != tt.expect {
				t.Errorf("swapped Overlap = %v, expected %v", got, tt.expect)
			}
		})
	}
}

func TestPool(t *testing.T) {
	var p Pool[int]
	for i := range 5 {
		p.Insert(i)
	}

	p.Remove(1)
	if got := p.Items(); len(got) != 4 || got[0] != 0 || got[1] != 2 {
		t.Fatalf("after Remove(1): %v", got)
	}

	removed := p.Retain(func(v *int) bool {
		*v *= 10
		return *v != 30
	})
	if removed != 1 {
		t.Errorf("Retain removed %d, expected 1", removed)
	}
	if got := p.Items(); len(got) != 3 || got[0] != 0 || got[1] != 20 || got[2] != 40 {
		t.Errorf("after Retain: %v", got)
	}

	*p.At(2) = 7
	if p.Items()[2] != 7 {
		t.Error("At should address the stored item")
	}

	p.Clear()
	if p.Len() != 0 {
		t.Error("Clear should empty the pool")
	}
}

func TestRegistryShip(t *testing.T) {
	var r Registry
	if r.Ship() != nil {
		t.Fatal("empty registry should have no ship")
	}
	r.SetShip(Ship{Lives: 3})
	r.Ship().Lives--
	if r.Ship().Lives != 2 {
		t.Error("Ship should return a pointer to the stored ship")
	}
	r.Asteroids.Insert(Asteroid{})
	r.Clear()
	if r.Ship() != nil || r.Asteroids.Len() != 0 {
		t.Error("Clear should drop every entity")
	}
}

func TestProjectileRange(t *testing.T) {
	w := World{W: 100, H: 100}
	p := Projectile{Pos: core.V(50, 50), Vel: core.V(30, 40), MaxRange: 100}

	p.advance(w)
	if p.Traveled() != 50 || p.Expired() {
		t.Errorf("traveled = %v after one step", p.Traveled())
	}
	p.advance(w)
	if !p.Expired() {
		t.Error("projectile should expire at max range")
	}
	if !w.Contains(p.Pos) {
		t.Errorf("projectile at %v is outside the world", p.Pos)
	}
}
