package common

import "testing"

func TestMoveTowards(t *testing.T) {
	cases := []struct {
		name                   string
		current, target, delta float64
		want                   float64
	}{
		{"step_up", 0, 10, 3, 3},
		{"step_down", 10, 0, 4, 6},
		{"no_overshoot", 9, 10, 5, 10},
		{"already_there", 5, 5, 1, 5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := MoveTowards(c.current, c.target, c.delta); got != c.want {
				t.Fatalf("MoveTowards(%v, %v, %v) = %v, want %v", c.current, c.target, c.delta, got, c.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(120, 0, 100); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
	if got := Clamp(-3, 0, 100); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := Clamp01(0.25); got != 0.25 {
		t.Fatalf("expected 0.25, got %v", got)
	}
}

func TestMoveTowards2(t *testing.T) {
	x, y := MoveTowards2(0, 0, 3, 4, 2.5)
	if !Approximately(x, 1.5) || !Approximately(y, 2) {
		t.Fatalf("expected (1.5, 2), got (%v, %v)", x, y)
	}
	x, y = MoveTowards2(0, 0, 3, 4, 10)
	if x != 3 || y != 4 {
		t.Fatalf("expected to snap to target, got (%v, %v)", x, y)
	}
}
