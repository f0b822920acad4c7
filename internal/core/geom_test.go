package core

import "testing"

func TestBoxOverlaps(t *testing.T) {
	bird := Box{X: 80, Y: 250, W: 40, H: 30}

	tests := []struct {
		name     string
		other    Box
		overlaps bool
		overlapX bool
	}{
		{"same box", bird, true, true},
		{"touching right edge", Box{X: 120, Y: 250, W: 10, H: 10}, false, false},
		{"sliver inside", Box{X: 119.5, Y: 279.5, W: 10, H: 10}, true, true},
		{"column above", Box{X: 100, Y: 0, W: 60, H: 100}, false, true},
		{"far left", Box{X: -100, Y: 250, W: 60, H: 30}, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := bird.Overlaps(tc.other); got != tc.overlaps {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.overlaps)
			}
			if got := bird.OverlapsX(tc.other); got != tc.overlapX {
				t.Errorf("OverlapsX() = %v, expected %v", got, tc.overlapX)
			}
		})
	}
}

func TestBoxScale(t *testing.T) {
	b := Box{X: 80, Y: 250, W: 40, H: 30}
	r := b.Scale(0.1, 0.04)
	if r != NewRect(8, 10, 4, 1) {
		t.Errorf("Scale() = %+v", r)
	}

	// Degenerate boxes still occupy one cell
	tiny := Box{X: 5, Y: 5, W: 0.1, H: 0.1}.Scale(0.1, 0.1)
	if tiny.W != 1 || tiny.H != 1 {
		t.Errorf("tiny box scaled to %+v, expected 1x1", tiny)
	}
}

func TestClampF(t *testing.T) {
	if ClampF(1.5, 0, 1) != 1 || ClampF(-0.5, 0, 1) != 0 {
		t.Error("ClampF returned wrong value")
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 || Max(5, 10) != 10 {
		t.Error("Min/Max returned wrong value")
	}
}
