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

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 5)

	s.SetColored(3, 2, '@', ColorHazard)
	cell := s.GetCell(3, 2)
	if cell.Rune != '@' || cell.Color != ColorHazard {
		t.Errorf("GetCell(3, 2) = %+v, expected '@' with hazard color", cell)
	}

	s.Set(4, 2, 'x')
	if s.GetCell(4, 2).Color != ColorDefault {
		t.Error("Set should use the default color")
	}
}

func TestScreenOutOfBounds(t *testing.T) {
	s := NewScreen(10, 5)

	s.Set(-1, 0, 'x')
	s.Set(10, 0, 'x')
	s.Set(0, -1, 'x')
	s.Set(0, 5, 'x')

	if strings.ContainsRune(s.String(), 'x') {
		t.Error("Out-of-bounds writes should be ignored")
	}
	if s.Get(100, 100) != ' ' {
		t.Error("Out-of-bounds reads should return a space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 3)
	s.DrawText(2, 1, "Score: 100", ColorHUD)

	if got := strings.TrimRight(s.Row(1), " "); got != "  Score: 100" {
		t.Errorf("Row(1) = %q, expected %q", got, "  Score: 100")
	}
	if s.GetCell(2, 1).Color != ColorHUD {
		t.Error("DrawText should apply the color")
	}

	// Clipped at the right edge
	s.DrawText(15, 0, "overflowing", ColorDefault)
	if got := s.Row(0)[15:]; got != "overf" {
		t.Errorf("Clipped text = %q, expected %q", got, "overf")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "abc", ColorDefault)

	if got := s.Row(0); got != "    abc    " {
		t.Errorf("Row(0) = %q, expected centered text", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4), ColorAlert)

	expected := []string{
		"┌────┐",
		"│    │",
		"│    │",
		"└────┘",
	}
	for y, want := range expected {
		if got := s.Row(y); got != want {
			t.Errorf("Row(%d) = %q, expected %q", y, got, want)
		}
	}
}

func TestScreenLines(t *testing.T) {
	s := NewScreen(5, 5)
	s.DrawHLine(0, 4, 5, '=', ColorLane)
	s.DrawVLine(2, 0, 4, '|', ColorLane)

	if s.Row(4) != "=====" {
		t.Errorf("Row(4) = %q, expected ground line", s.Row(4))
	}
	for y := 0; y < 4; y++ {
		if s.Get(2, y) != '|' {
			t.Errorf("Get(2, %d) = %q, expected '|'", y, s.Get(2, y))
		}
	}
}

func TestScreenResizeAndClear(t *testing.T) {
	s := NewScreen(5, 5)
	s.Set(1, 1, 'x')

	s.Resize(8, 3)
	if s.Width() != 8 || s.Height() != 3 {
		t.Errorf("Resize: got %dx%d, expected 8x3", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("Resize should start from a blank buffer")
	}

	s.Set(0, 0, 'y')
	s.Clear()
	if s.Get(0, 0) != ' ' {
		t.Error("Clear should reset cells")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'b')

	if got := s.String(); got != "a  \n  b" {
		t.Errorf("String() = %q, expected %q", got, "a  \n  b")
	}
}
