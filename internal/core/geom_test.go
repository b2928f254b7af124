package core

import (
	"math"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		coord, extent, want float64
	}{
		{0, 800, 0},
		{799.5, 800, 799.5},
		{800, 800, 0},
		{805, 800, 5},
		{-1, 800, 799},
		{-800, 800, 0},
		{-1605, 800, 795},
		{2400.25, 800, 0.25},
	}

	for _, tt := range tests {
		got := Wrap(tt.coord, tt.extent)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Wrap(%v, %v) = %v, expected %v", tt.coord, tt.extent, got, tt.want)
		}
	}
}

func TestWrapStaysInRange(t *testing.T) {
	for _, c := range []float64{-1e-18, -1e-12, 1e9, -1e9, 599.9999999999999, 600} {
		got := Wrap(c, 600)
		if got < 0 || got >= 600 {
			t.Errorf("Wrap(%v, 600) = %v, outside [0, 600)", c, got)
		}
	}
}

func TestVec2(t *testing.T) {
	a := V(3, 4)
	if a.Len() != 5 {
		t.Errorf("Len() = %v, expected 5", a.Len())
	}
	if got := a.Add(V(1, 1)); got != V(4, 5) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(V(1, 1)); got != V(2, 3) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != V(6, 8) {
		t.Errorf("Scale = %v", got)
	}

	v := FromAngle(math.Pi/2, 2)
	if math.Abs(v.X) > 1e-12 || math.Abs(v.Y-2) > 1e-12 {
		t.Errorf("FromAngle(pi/2, 2) = %v", v)
	}
	if math.Abs(v.Angle()-math.Pi/2) > 1e-12 {
		t.Errorf("Angle() = %v", v.Angle())
	}
}

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name   string
		p1     Vec2
		r1     float64
		p2     Vec2
		r2     float64
		expect bool
	}{
		{"separate", V(0, 0), 5, V(20, 0), 5, false},
		{"touching", V(0, 0), 5, V(10, 0), 5, false},
		{"overlapping", V(0, 0), 5, V(9.99, 0), 5, true},
		{"point inside", V(3, 4), 0, V(0, 0), 5.01, true},
		{"point on edge", V(3, 4), 0, V(0, 0), 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CirclesOverlap(tt.p1, tt.r1, tt.p2, tt.r2); got != tt.expect {
				t.Errorf("CirclesOverlap = %v, expected %v", got, tt.expect)
			}
		})
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{0.5, 0, 1, 0.5},
		{-2, 0, 1, 0},
		{1.5, 0, 1, 1},
	}

	for _, tt := range tests {
		if result := ClampF(tt.val, tt.min, tt.max); result != tt.expected {
			t.Errorf("ClampF(%v, %v, %v) = %v, expected %v", tt.val, tt.min, tt.max, result, tt.expected)
		}
	}
}

func TestRect(t *testing.T) {
	r := NewRect(2, 3, 10, 5)
	if r.Right() != 12 || r.Bottom() != 8 {
		t.Errorf("Right/Bottom = %d/%d, expected 12/8", r.Right(), r.Bottom())
	}
}

func TestActionString(t *testing.T) {
	if ActionFire.String() != "Fire" {
		t.Errorf("ActionFire.String() = %q", ActionFire.String())
	}
	if Action(99).String() != "Unknown" {
		t.Error("unknown action should stringify as Unknown")
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionThrust)
	f.Set(ActionFire)

	c := f.Clone()
	f.Unset(ActionFire)
	if f.Has(ActionFire) {
		t.Error("Unset should remove the action")
	}
	if !c.Has(ActionFire) {
		t.Error("Clone should be independent")
	}

	f.Clear()
	if f.Has(ActionThrust) {
		t.Error("Clear should remove all actions")
	}

	var zero InputFrame
	if zero.Has(ActionQuit) {
		t.Error("zero frame should report no actions")
	}
}
