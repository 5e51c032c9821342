package editor

import (
	"testing"

	"github.com/mwhitby/fresco/internal/buffer"
)

func testBuf(lines ...string) *buffer.Buffer {
	b := buffer.NewBuffer("")
	if len(lines) > 0 {
		b.Lines = lines
	}
	return b
}

func TestMoveCursorDownClamps(t *testing.T) {
	b := testBuf("a", "b", "c", "d")
	for _, amount := range []int{0, 1, 3, 4, 100} {
		c := &Cursor{Y: 1}
		c.MoveCursor(DirDown, amount, b)
		want := 1 + amount
		if want > 3 {
			want = 3
		}
		if c.Y != want {
			t.Errorf("down %d from row 1: y=%d, want %d", amount, c.Y, want)
		}
	}
}

func TestMoveCursorUpSaturates(t *testing.T) {
	b := testBuf("a", "b")
	c := &Cursor{Y: 1}
	c.MoveCursor(DirUp, 100, b)
	if c.Y != 0 {
		t.Errorf("y=%d", c.Y)
	}
}

func TestMoveCursorSetsIntentFlags(t *testing.T) {
	b := testBuf("abc", "def")
	c := &Cursor{}
	c.MoveCursor(DirDown, 1, b)
	if !c.WentDown {
		t.Error("down move should set WentDown")
	}
	c.MoveCursor(DirRight, 1, b)
	if !c.WentRight {
		t.Error("right move should set WentRight")
	}
	c.MoveCursor(DirLeft, 1, b)
	if c.WentRight {
		t.Error("left move should clear WentRight")
	}
}

func TestMoveCursorRightWrapsLines(t *testing.T) {
	b := testBuf("ab", "cd")
	c := &Cursor{X: 2, Y: 0}
	c.MoveCursor(DirRight, 1, b)
	if c.X != 0 || c.Y != 1 {
		t.Errorf("pos (%d,%d), want (0,1)", c.X, c.Y)
	}
}

func TestMoveCursorRightClampsAtFileEnd(t *testing.T) {
	b := testBuf("ab", "cd")
	c := &Cursor{X: 0, Y: 1}
	c.MoveCursor(DirRight, 100, b)
	if c.X != 2 || c.Y != 1 {
		t.Errorf("pos (%d,%d), want (2,1)", c.X, c.Y)
	}
}

func TestMoveCursorLeftWrapsLines(t *testing.T) {
	b := testBuf("abc", "d")
	c := &Cursor{X: 0, Y: 1}
	c.MoveCursor(DirLeft, 1, b)
	if c.X != 3 || c.Y != 0 {
		t.Errorf("pos (%d,%d), want (3,0)", c.X, c.Y)
	}
}

func TestMoveCursorDownClampsColumn(t *testing.T) {
	b := testBuf("a long line", "ab")
	c := &Cursor{X: 8, Y: 0}
	c.MoveCursor(DirDown, 1, b)
	if c.X != 2 {
		t.Errorf("x=%d, want 2", c.X)
	}
}

func TestMoveCursorEmptyBufferPinsAtOrigin(t *testing.T) {
	b := testBuf()
	b.Lines = nil
	c := &Cursor{X: 5, Y: 5}
	c.MoveCursor(DirDown, 3, b)
	if c.X != 0 || c.Y != 0 {
		t.Errorf("pos (%d,%d)", c.X, c.Y)
	}
}

func TestSetCursorVariants(t *testing.T) {
	b := testBuf("abcdef", "gh", "ijkl")
	tests := []struct {
		name   string
		x, y   Place
		startX int
		startY int
		wantX  int
		wantY  int
	}{
		{"where", Where(2), Where(2), 0, 0, 2, 2},
		{"amount", Amount(1), Amount(1), 1, 0, 2, 1},
		{"to start", ToStart, ToStart, 3, 2, 0, 0},
		{"to end", ToEnd, Nothing, 0, 0, 6, 0},
		{"to bottom", Nothing, ToBottom, 1, 0, 1, 2},
		{"nothing", Nothing, Nothing, 3, 1, 2, 1}, // x clamped to "gh"
		{"overshoot clamped", Where(100), Where(100), 0, 0, 4, 2},
	}
	for _, tc := range tests {
		c := &Cursor{X: tc.startX, Y: tc.startY}
		c.SetCursor(tc.x, tc.y, b)
		if c.X != tc.wantX || c.Y != tc.wantY {
			t.Errorf("%s: pos (%d,%d), want (%d,%d)", tc.name, c.X, c.Y, tc.wantX, tc.wantY)
		}
	}
}

func TestScrollAdvancesAtFarEdge(t *testing.T) {
	b := testBuf("a", "b", "c", "d", "e", "f")
	c := &Cursor{Y: 5, WentDown: true}
	c.SetViewport(3, 10)
	c.Scroll(b, 4)
	if c.RowOffset != 3 {
		t.Errorf("row offset %d, want 3 (cursor exactly at bottom edge)", c.RowOffset)
	}
}

func TestScrollFollowsAtNearEdge(t *testing.T) {
	b := testBuf("a", "b", "c", "d", "e", "f")
	c := &Cursor{Y: 1, RowOffset: 3}
	c.SetViewport(3, 10)
	c.Scroll(b, 4)
	if c.RowOffset != 1 {
		t.Errorf("row offset %d, want 1", c.RowOffset)
	}
}

func TestScrollIdempotent(t *testing.T) {
	b := testBuf("one line that is fairly long here", "b", "c", "d", "e", "f")
	c := &Cursor{X: 20, Y: 4, WentRight: true, WentDown: true}
	c.SetViewport(3, 10)
	c.Scroll(b, 4)
	ro, co := c.RowOffset, c.ColOffset
	c.Scroll(b, 4)
	if c.RowOffset != ro || c.ColOffset != co {
		t.Errorf("second scroll moved offsets: (%d,%d) -> (%d,%d)", ro, co, c.RowOffset, c.ColOffset)
	}
}

func TestScrollHorizontal(t *testing.T) {
	b := testBuf("0123456789abcdefghij")
	c := &Cursor{X: 15, WentRight: true}
	c.SetViewport(1, 10)
	c.Scroll(b, 4)
	if c.ColOffset != 6 {
		t.Errorf("col offset %d, want 6", c.ColOffset)
	}
	sx, sy := c.RealCursor()
	if sx != 9 || sy != 0 {
		t.Errorf("real cursor (%d,%d), want (9,0)", sx, sy)
	}
}

func TestScrollRealCursorInsideViewport(t *testing.T) {
	b := testBuf("0123456789abcdefghij", "b", "c", "d", "e", "f", "g", "h")
	positions := []struct{ x, y int }{
		{0, 0}, {19, 0}, {0, 7}, {5, 3}, {20, 0},
	}
	for _, p := range positions {
		c := &Cursor{X: p.x, Y: p.y, WentRight: true, WentDown: true}
		c.SetViewport(4, 8)
		c.Scroll(b, 4)
		sx, sy := c.RealCursor()
		if sx < 0 || sx >= 8 || sy < 0 || sy >= 4 {
			t.Errorf("pos (%d,%d): real cursor (%d,%d) outside 8x4 viewport", p.x, p.y, sx, sy)
		}
	}
}

func TestScrollJumpedSkipsRecompute(t *testing.T) {
	b := testBuf("a", "b", "c", "d", "e", "f")
	c := &Cursor{Y: 5, RowOffset: 4, Jumped: true}
	c.SetViewport(3, 10)
	c.Scroll(b, 4)
	if c.RowOffset != 4 {
		t.Errorf("row offset %d, want 4 (jump frame keeps offsets)", c.RowOffset)
	}
	if c.Jumped {
		t.Error("jumped flag should clear after one frame")
	}
}

func TestRealCursorIgnoreOffset(t *testing.T) {
	c := &Cursor{X: 7, Y: 3, RowOffset: 2, ColOffset: 2, IgnoreOffset: true}
	sx, sy := c.RealCursor()
	if sx != 7 || sy != 3 {
		t.Errorf("real cursor (%d,%d), want raw (7,3)", sx, sy)
	}
}

func TestVisualXTabs(t *testing.T) {
	tests := []struct {
		line string
		col  int
		want int
	}{
		{"abc", 2, 2},
		{"\tabc", 1, 4},
		{"a\tb", 2, 4},
		{"\t\t", 2, 8},
		{"世界", 2, 4},
	}
	for _, tc := range tests {
		if got := VisualX(tc.line, tc.col, 4); got != tc.want {
			t.Errorf("VisualX(%q, %d) = %d, want %d", tc.line, tc.col, got, tc.want)
		}
	}
}
