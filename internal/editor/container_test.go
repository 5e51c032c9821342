package editor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestShrinkTerminatesWithinBounds(t *testing.T) {
	tests := []struct {
		name       string
		start      PaneContainer
		wantW      int
		wantH      int
	}{
		{"already fits", PaneContainer{X: 0, Y: 0, W: 10, H: 5, MaxW: 20, MaxH: 10}, 10, 5},
		{"too wide", PaneContainer{X: 5, Y: 0, W: 20, H: 5, MaxW: 20, MaxH: 10}, 15, 5},
		{"too tall", PaneContainer{X: 0, Y: 8, W: 10, H: 5, MaxW: 20, MaxH: 10}, 10, 2},
		{"zero size", PaneContainer{X: 0, Y: 0, W: 0, H: 0, MaxW: 20, MaxH: 10}, 0, 0},
		{"fully outside", PaneContainer{X: 30, Y: 30, W: 5, H: 5, MaxW: 20, MaxH: 10}, 0, 0},
	}
	for _, tc := range tests {
		p := tc.start
		p.Shrink()
		_, _, x2, y2 := p.Corners()
		if x2 > p.MaxW || y2 > p.MaxH {
			t.Errorf("%s: corner (%d,%d) exceeds bound (%d,%d)", tc.name, x2, y2, p.MaxW, p.MaxH)
		}
		if p.W != tc.wantW || p.H != tc.wantH {
			t.Errorf("%s: size %dx%d, want %dx%d", tc.name, p.W, p.H, tc.wantW, tc.wantH)
		}
	}
}

func TestCombineAdjacentPairs(t *testing.T) {
	// Each case combines into the exact union rectangle.
	tests := []struct {
		name  string
		a, b  PaneContainer
		want  PaneContainer
	}{
		{
			"left absorbs right",
			PaneContainer{X: 0, Y: 0, W: 10, H: 5, MaxW: 20, MaxH: 5},
			PaneContainer{X: 10, Y: 0, W: 10, H: 5, MaxW: 20, MaxH: 5},
			PaneContainer{X: 0, Y: 0, W: 20, H: 5, MaxW: 20, MaxH: 5},
		},
		{
			"right absorbs left",
			PaneContainer{X: 10, Y: 0, W: 10, H: 5, MaxW: 20, MaxH: 5},
			PaneContainer{X: 0, Y: 0, W: 10, H: 5, MaxW: 20, MaxH: 5},
			PaneContainer{X: 0, Y: 0, W: 20, H: 5, MaxW: 20, MaxH: 5},
		},
		{
			"top absorbs bottom",
			PaneContainer{X: 0, Y: 0, W: 10, H: 3, MaxW: 10, MaxH: 6},
			PaneContainer{X: 0, Y: 3, W: 10, H: 3, MaxW: 10, MaxH: 6},
			PaneContainer{X: 0, Y: 0, W: 10, H: 6, MaxW: 10, MaxH: 6},
		},
		{
			"bottom absorbs top",
			PaneContainer{X: 0, Y: 3, W: 10, H: 3, MaxW: 10, MaxH: 6},
			PaneContainer{X: 0, Y: 0, W: 10, H: 3, MaxW: 10, MaxH: 6},
			PaneContainer{X: 0, Y: 0, W: 10, H: 6, MaxW: 10, MaxH: 6},
		},
	}
	for _, tc := range tests {
		a := tc.a
		if !a.Combine(&tc.b) {
			t.Errorf("%s: combine returned false", tc.name)
			continue
		}
		if diff := cmp.Diff(tc.want, a); diff != "" {
			t.Errorf("%s: union mismatch (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestCombineRejectsNonAdjacent(t *testing.T) {
	tests := []struct {
		name string
		a, b PaneContainer
	}{
		{
			"gap between",
			PaneContainer{X: 0, Y: 0, W: 5, H: 5, MaxW: 30, MaxH: 30},
			PaneContainer{X: 10, Y: 0, W: 5, H: 5, MaxW: 30, MaxH: 30},
		},
		{
			"different heights",
			PaneContainer{X: 0, Y: 0, W: 5, H: 5, MaxW: 30, MaxH: 30},
			PaneContainer{X: 5, Y: 0, W: 5, H: 4, MaxW: 30, MaxH: 30},
		},
		{
			"offset rows",
			PaneContainer{X: 0, Y: 0, W: 5, H: 5, MaxW: 30, MaxH: 30},
			PaneContainer{X: 5, Y: 1, W: 5, H: 5, MaxW: 30, MaxH: 30},
		},
		{
			"diagonal",
			PaneContainer{X: 0, Y: 0, W: 5, H: 5, MaxW: 30, MaxH: 30},
			PaneContainer{X: 5, Y: 5, W: 5, H: 5, MaxW: 30, MaxH: 30},
		},
	}
	for _, tc := range tests {
		a := tc.a
		if a.Combine(&tc.b) {
			t.Errorf("%s: combine returned true", tc.name)
		}
		if diff := cmp.Diff(tc.a, a); diff != "" {
			t.Errorf("%s: failed combine mutated the container (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestResizeScalesProportionally(t *testing.T) {
	p := PaneContainer{X: 10, Y: 0, W: 10, H: 10, MaxW: 20, MaxH: 10}
	p.Resize(40, 20)
	want := PaneContainer{X: 20, Y: 0, W: 20, H: 20, MaxW: 40, MaxH: 20}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("resize (-want +got):\n%s", diff)
	}
}

func TestResizeEnforcesAnchorMinimum(t *testing.T) {
	p := PaneContainer{X: 0, Y: 0, W: 10, H: 10, MaxW: 100, MaxH: 100}
	p.Resize(5, 5)
	if p.W < minPaneWidth || p.H < minPaneHeight {
		t.Errorf("anchor shrank below minimum: %dx%d", p.W, p.H)
	}
	_, _, x2, y2 := p.Corners()
	if x2 > p.MaxW || y2 > p.MaxH {
		t.Errorf("corner (%d,%d) exceeds bound after resize", x2, y2)
	}
}

func TestResizeKeepsNonAnchorWithinBounds(t *testing.T) {
	p := PaneContainer{X: 10, Y: 0, W: 10, H: 10, MaxW: 20, MaxH: 10}
	p.Resize(10, 5)
	_, _, x2, y2 := p.Corners()
	if x2 > 10 || y2 > 5 {
		t.Errorf("corner (%d,%d) exceeds new bound", x2, y2)
	}
}

func TestContains(t *testing.T) {
	p := PaneContainer{X: 2, Y: 3, W: 4, H: 2, MaxW: 30, MaxH: 30}
	if !p.Contains(2, 3) || !p.Contains(5, 4) {
		t.Error("interior points reported outside")
	}
	if p.Contains(6, 3) || p.Contains(2, 5) || p.Contains(1, 3) {
		t.Error("exterior points reported inside")
	}
}
