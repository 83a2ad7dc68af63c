package render

import "testing"

func TestCursorHeightOffsetScenario(t *testing.T) {
	// spec.md §8 scenario 5: pane height 10, CursorHeight{0.6}, cursor at
	// document row 100 -> offset 100 - floor(10*0.6) = 100-6 = 94.
	s := CursorHeight(0.6)
	if got := s.Offset(10, 100); got != 94 {
		t.Fatalf("got %d, want 94", got)
	}
}

func TestCursorHeightOffsetClampsAtZero(t *testing.T) {
	s := CursorHeight(0.6)
	if got := s.Offset(10, 2); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

func TestBeginningAlwaysZero(t *testing.T) {
	if got := Beginning().Offset(10, 500); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}
