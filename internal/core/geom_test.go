package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestPointAdd(t *testing.T) {
	p := Point{X: 3, Y: -1}.Add(Point{X: -4, Y: 2})
	if p != (Point{X: -1, Y: 1}) {
		t.Errorf("Add() = %v, expected (-1, 1)", p)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestGameStateOutcome(t *testing.T) {
	tests := []struct {
		state    GameState
		outcome  string
		finished bool
	}{
		{GameState{}, "", false},
		{GameState{Paused: true}, "", false},
		{GameState{GameOver: true}, "lost", true},
		{GameState{Won: true}, "won", true},
	}

	for _, tc := range tests {
		if got := tc.state.Outcome(); got != tc.outcome {
			t.Errorf("Outcome(%+v) = %q, expected %q", tc.state, got, tc.outcome)
		}
		if got := tc.state.Finished(); got != tc.finished {
			t.Errorf("Finished(%+v) = %v, expected %v", tc.state, got, tc.finished)
		}
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}

	f.Set(ActionLeft)
	if !f.Has(ActionLeft) || f.Has(ActionRight) {
		t.Error("Has() should report only the set action")
	}
	if f.Empty() {
		t.Error("frame with an action should not be empty")
	}

	f.Clear()
	if f.Has(ActionLeft) || !f.Empty() {
		t.Error("Clear() should drop all actions")
	}

	var zero InputFrame
	if zero.Has(ActionDrop) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionDrop)
	if !zero.Has(ActionDrop) {
		t.Error("Set() on zero frame should allocate")
	}
}
