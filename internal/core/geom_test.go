package core

import (
	"math"
	"testing"
)

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		name               string
		val, min, max, exp float64
	}{
		{"within", 5.5, 0.0, 10.0, 5.5},
		{"below", -5.5, 0.0, 10.0, 0.0},
		{"above", 15.5, 0.0, 10.0, 10.0},
		{"nan", math.NaN(), 0.0, 10.0, 0.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := ClampF(tc.val, tc.min, tc.max)
			if result != tc.exp {
				t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.exp)
			}
		})
	}
}

func TestFinite(t *testing.T) {
	if !Finite(1.5) {
		t.Error("Finite(1.5) should be true")
	}
	if Finite(math.NaN()) {
		t.Error("Finite(NaN) should be false")
	}
	if Finite(math.Inf(-1)) {
		t.Error("Finite(-Inf) should be false")
	}
}

func TestActionIsPose(t *testing.T) {
	for _, a := range []Action{ActionLeft, ActionCenter, ActionRight} {
		if !a.IsPose() {
			t.Errorf("%s should be a pose action", a)
		}
	}
	for _, a := range []Action{ActionNone, ActionRestart, ActionQuit, ActionStop} {
		if a.IsPose() {
			t.Errorf("%s should not be a pose action", a)
		}
	}
}
