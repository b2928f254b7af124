package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorCyan)
	cell := s.GetCell(5, 5)
	if cell.Rune != 'X' || cell.Color != ColorCyan {
		t.Errorf("GetCell(5, 5) = %+v, expected X/cyan", cell)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.GetCell(100, 0).Color != ColorDefault {
		t.Error("Out of bounds GetCell should return default color")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(0, 0, 10, 10), 'X')

	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("After Clear, expected space at (%d, %d), got %q", x, y, s.Get(x, y))
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawText(7, 1, "hello")

	if got := s.Row(1); got != "       hel" {
		t.Errorf("Row(1) = %q, expected clipped text", got)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCenteredColored(0, "abc", ColorYellow)

	if got := s.Row(0); got != "    abc    " {
		t.Errorf("Row(0) = %q", got)
	}
	if s.GetCell(4, 0).Color != ColorYellow {
		t.Error("centered text should carry its color")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3), ColorWhite)

	expected := "┌──┐\n│  │\n└──┘"
	if got := s.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}

func TestScreenDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           [][2]int
	}{
		{"horizontal", 0, 0, 3, 0, [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{"vertical", 1, 3, 1, 1, [][2]int{{1, 1}, {1, 2}, {1, 3}}},
		{"diagonal", 0, 0, 2, 2, [][2]int{{0, 0}, {1, 1}, {2, 2}}},
		{"point", 2, 2, 2, 2, [][2]int{{2, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(5, 5)
			s.DrawLine(tt.x0, tt.y0, tt.x1, tt.y1, '*', ColorWhite)
			count := strings.Count(s.String(), "*")
			if count != len(tt.want) {
				t.Errorf("plotted %d cells, expected %d", count, len(tt.want))
			}
			for _, p := range tt.want {
				if s.Get(p[0], p[1]) != '*' {
					t.Errorf("expected '*' at %v", p)
				}
			}
		})
	}
}

func TestScreenDrawLineClipped(t *testing.T) {
	s := NewScreen(3, 3)
	// Must not panic when endpoints fall outside the buffer.
	s.DrawLine(-5, 1, 10, 1, '-', ColorDefault)
	if got := s.Row(1); got != "---" {
		t.Errorf("Row(1) = %q", got)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(5, 5)
	s.Set(1, 1, 'X')
	s.Resize(8, 2)

	if s.Width() != 8 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, expected 8x2", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("Resize should discard content")
	}
	s.Set(7, 1, 'Y')
	if s.Get(7, 1) != 'Y' {
		t.Error("resized buffer should accept writes in new bounds")
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(4, 2)
	if got := s.Row(5); got != "    " {
		t.Errorf("Row(5) = %q, expected blank row", got)
	}
}
