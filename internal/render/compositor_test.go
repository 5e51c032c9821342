package render

import "testing"

func fillLayer(l *Layer, r rune) {
	for y := 0; y < l.Height(); y++ {
		for x := 0; x < l.Width(); x++ {
			l.Set(x, y, r, DefaultStyle())
		}
	}
}

func clearChanged(l *Layer) {
	for y := 0; y < l.Height(); y++ {
		for x := 0; x < l.Width(); x++ {
			if c := l.Get(x, y); c != nil {
				c.Changed = false
			}
		}
	}
}

func countRepaints(rows [][]*Cell) int {
	n := 0
	for _, row := range rows {
		for _, c := range row {
			if c != nil {
				n++
			}
		}
	}
	return n
}

func TestMergeSingleLayer(t *testing.T) {
	base := NewLayer(4, 2)
	fillLayer(base, 'a')
	comp := NewCompositor(4, 2)

	rows := comp.Merge([]*Layer{base})
	if got := countRepaints(rows); got != 8 {
		t.Errorf("expected 8 repaints, got %d", got)
	}
	if rows[0][0].Rune != 'a' {
		t.Errorf("rune: %c", rows[0][0].Rune)
	}
}

func TestMergeChangedFlagConsumedOnce(t *testing.T) {
	base := NewLayer(4, 2)
	fillLayer(base, 'a')
	comp := NewCompositor(4, 2)

	comp.Merge([]*Layer{base})
	rows := comp.Merge([]*Layer{base})
	if got := countRepaints(rows); got != 0 {
		t.Errorf("second merge should repaint nothing, got %d", got)
	}
}

func TestMergeUnchangedLowerAllNilUpper(t *testing.T) {
	// Lower layer fully claimed but unchanged, upper layer all empty:
	// nothing repaints.
	lower := NewLayer(3, 3)
	fillLayer(lower, 'x')
	clearChanged(lower)
	upper := NewLayer(3, 3)
	comp := NewCompositor(3, 3)

	rows := comp.Merge([]*Layer{lower, upper})
	if got := countRepaints(rows); got != 0 {
		t.Errorf("expected no repaint signals, got %d", got)
	}
}

func TestMergeTopmostWins(t *testing.T) {
	lower := NewLayer(2, 1)
	fillLayer(lower, 'a')
	upper := NewLayer(2, 1)
	upper.Set(0, 0, 'b', DefaultStyle())
	comp := NewCompositor(2, 1)

	rows := comp.Merge([]*Layer{lower, upper})
	if rows[0][0] == nil || rows[0][0].Rune != 'b' {
		t.Errorf("cell (0,0): %+v (upper layer should win)", rows[0][0])
	}
	if rows[0][1] == nil || rows[0][1].Rune != 'a' {
		t.Errorf("cell (1,0): %+v (lower layer should show through)", rows[0][1])
	}
}

func TestMergeChangedLowerHiddenByUnchangedUpper(t *testing.T) {
	// A changed cell below an unchanged claimed cell must not repaint:
	// the upper layer is authoritative for that position.
	lower := NewLayer(1, 1)
	lower.Set(0, 0, 'a', DefaultStyle())
	upper := NewLayer(1, 1)
	upper.Set(0, 0, 'b', DefaultStyle())
	clearChanged(upper)
	comp := NewCompositor(1, 1)

	rows := comp.Merge([]*Layer{lower, upper})
	if rows[0][0] != nil {
		t.Errorf("cell: %+v (unchanged upper claim must suppress lower repaint)", rows[0][0])
	}
	// The lower cell keeps its pending flag for when the upper layer
	// releases the position.
	if c := lower.Get(0, 0); c == nil || !c.Changed {
		t.Error("hidden lower cell lost its changed flag")
	}
}

func TestMergeSmallerLayerInLargerRegion(t *testing.T) {
	small := NewLayer(2, 1)
	fillLayer(small, 'p')
	comp := NewCompositor(5, 3)

	rows := comp.Merge([]*Layer{small})
	if got := countRepaints(rows); got != 2 {
		t.Errorf("expected 2 repaints, got %d", got)
	}
	if rows[2][4] != nil {
		t.Error("cells outside the layer should stay nil")
	}
}

func TestTouchUnderRepaintsRevealedCells(t *testing.T) {
	base := NewLayer(3, 1)
	fillLayer(base, 'a')
	popup := NewLayer(3, 1)
	popup.Set(1, 0, 'p', DefaultStyle())
	comp := NewCompositor(3, 1)

	comp.Merge([]*Layer{base, popup})

	// Popup closes: its claims are released and the base cells it hid
	// are re-flagged.
	base.TouchUnder(popup)
	popup.Clear()

	rows := comp.Merge([]*Layer{base, popup})
	if rows[0][1] == nil || rows[0][1].Rune != 'a' {
		t.Errorf("cell (1,0): %+v (revealed base cell should repaint)", rows[0][1])
	}
	if rows[0][0] != nil || rows[0][2] != nil {
		t.Error("cells the popup never claimed should not repaint")
	}
}
