package render

import "testing"

func TestLayerSetSameContentKeepsQuiet(t *testing.T) {
	l := NewLayer(3, 1)
	l.Set(0, 0, 'a', DefaultStyle())
	l.Get(0, 0).Changed = false

	// Redrawing identical content must not re-flag the cell, or every
	// frame would repaint the whole pane.
	l.Set(0, 0, 'a', DefaultStyle())
	if l.Get(0, 0).Changed {
		t.Error("identical redraw re-flagged the cell")
	}

	l.Set(0, 0, 'b', DefaultStyle())
	if !l.Get(0, 0).Changed {
		t.Error("content change did not flag the cell")
	}
}

func TestLayerSetStyleChangeFlags(t *testing.T) {
	l := NewLayer(1, 1)
	l.Set(0, 0, 'a', DefaultStyle())
	l.Get(0, 0).Changed = false

	l.Set(0, 0, 'a', Style{FG: 3, BG: ColorDefault})
	if !l.Get(0, 0).Changed {
		t.Error("style change did not flag the cell")
	}
}

func TestLayerOutOfBoundsDropped(t *testing.T) {
	l := NewLayer(2, 2)
	l.Set(-1, 0, 'a', DefaultStyle())
	l.Set(0, 5, 'a', DefaultStyle())
	if l.Get(-1, 0) != nil || l.Get(0, 5) != nil {
		t.Error("out-of-bounds access leaked")
	}
}

func TestLayerSetStringAdvancesByDisplayWidth(t *testing.T) {
	l := NewLayer(6, 1)
	n := l.SetString(0, 0, "a世b", DefaultStyle())
	if n != 4 {
		t.Errorf("columns consumed: %d (expected 4)", n)
	}
	if c := l.Get(2, 0); c == nil || c.Rune != 0 {
		t.Errorf("wide rune spill column not claimed: %+v", c)
	}
	if c := l.Get(3, 0); c == nil || c.Rune != 'b' {
		t.Errorf("cell after wide rune: %+v", c)
	}
}

func TestLayerResizeDropsContent(t *testing.T) {
	l := NewLayer(2, 2)
	l.Set(0, 0, 'a', DefaultStyle())
	l.Resize(4, 4)
	if l.Get(0, 0) != nil {
		t.Error("resize should drop content")
	}
	if l.Width() != 4 || l.Height() != 4 {
		t.Errorf("size: %dx%d", l.Width(), l.Height())
	}
}
