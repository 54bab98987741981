package game

import "testing"

func TestRollerStaysInDomain(t *testing.T) {
	roller := NewSeededRoller(1)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		value := roller.Roll(6)
		if value < 1 || value > 6 {
			t.Fatalf("roll = %d, want 1..6", value)
		}
		seen[value] = true
	}
	if len(seen) != 6 {
		t.Errorf("saw %d distinct values in 1000 rolls, want all 6", len(seen))
	}
}

func TestSeededRollerIsDeterministic(t *testing.T) {
	a := NewSeededRoller(42)
	b := NewSeededRoller(42)
	for i := 0; i < 50; i++ {
		if x, y := a.Roll(6), b.Roll(6); x != y {
			t.Fatalf("roll %d: %d != %d", i, x, y)
		}
	}
}
