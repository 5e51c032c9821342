package editor

import "github.com/mwhitby/fresco/internal/render"

// Direction of a cursor movement.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// PlaceKind selects how SetCursor interprets a coordinate.
type PlaceKind int

const (
	PlaceNothing PlaceKind = iota // leave the coordinate alone
	PlaceAmount                   // move relative by N
	PlaceWhere                    // absolute position N
	PlaceToStart                  // start of line / top of file
	PlaceToEnd                    // end of line
	PlaceToBottom                 // last line of the file
)

// Place is one axis of an absolute cursor placement.
type Place struct {
	Kind PlaceKind
	N    int
}

func Amount(n int) Place { return Place{Kind: PlaceAmount, N: n} }
func Where(n int) Place  { return Place{Kind: PlaceWhere, N: n} }

var (
	ToStart  = Place{Kind: PlaceToStart}
	ToEnd    = Place{Kind: PlaceToEnd}
	ToBottom = Place{Kind: PlaceToBottom}
	Nothing  = Place{Kind: PlaceNothing}
)

// Cursor is a logical position in a buffer plus the viewport state
// needed to keep it on screen. All arithmetic saturates; an empty
// buffer pins the cursor at the origin.
type Cursor struct {
	X, Y int // logical column (runes), row

	DrawX, DrawY int // last-drawn pane-relative screen position

	WentRight bool // directional intent: which edge triggers scrolling
	WentDown  bool

	RowOffset int // viewport origin within the buffer
	ColOffset int

	Rows, Cols int // last known viewport size

	NumberLineSize int // gutter width, recomputed each draw

	IgnoreOffset bool // popups address absolute screen coordinates
	Jumped       bool // suppress scroll recompute for one frame
}

// MoveCursor advances the cursor by amount in the given direction,
// wrapping at line and file boundaries. Overshoot lands exactly on the
// last valid line or column, never past it.
func (c *Cursor) MoveCursor(dir Direction, amount int, buf Buffer) {
	if amount < 0 {
		amount = 0
	}
	lines := buf.LineCount()
	if lines == 0 {
		c.X, c.Y = 0, 0
		return
	}

	switch dir {
	case DirDown:
		c.Y += amount
		if c.Y > lines-1 {
			c.Y = lines - 1
		}
		c.WentDown = true
		c.clampX(buf)
	case DirUp:
		c.Y -= amount
		if c.Y < 0 {
			c.Y = 0
		}
		c.WentDown = false
		c.clampX(buf)
	case DirRight:
		c.WentRight = true
		for amount > 0 {
			lineLen := buf.LineLength(c.Y)
			if c.X+amount <= lineLen {
				c.X += amount
				break
			}
			if c.Y >= lines-1 {
				// Last line: clamp at its end.
				c.X = lineLen
				break
			}
			// Wrap: spend the remainder of this line plus the
			// newline, continue on the next.
			amount -= lineLen - c.X + 1
			c.Y++
			c.X = 0
		}
	case DirLeft:
		c.WentRight = false
		c.WentDown = false
		for amount > 0 {
			if c.X-amount >= 0 {
				c.X -= amount
				break
			}
			if c.Y == 0 {
				c.X = 0
				break
			}
			amount -= c.X + 1
			c.Y--
			c.X = buf.LineLength(c.Y)
		}
	}
}

// SetCursor places the cursor absolutely, one Place per axis.
func (c *Cursor) SetCursor(xm, ym Place, buf Buffer) {
	lines := buf.LineCount()
	if lines == 0 {
		c.X, c.Y = 0, 0
		return
	}

	prevY := c.Y
	switch ym.Kind {
	case PlaceNothing:
	case PlaceAmount:
		c.Y += ym.N
	case PlaceWhere:
		c.Y = ym.N
	case PlaceToStart:
		c.Y = 0
	case PlaceToBottom, PlaceToEnd:
		c.Y = lines - 1
	}
	if c.Y < 0 {
		c.Y = 0
	}
	if c.Y > lines-1 {
		c.Y = lines - 1
	}
	c.WentDown = c.Y > prevY

	prevX := c.X
	switch xm.Kind {
	case PlaceNothing:
	case PlaceAmount:
		c.X += xm.N
	case PlaceWhere:
		c.X = xm.N
	case PlaceToStart:
		c.X = 0
	case PlaceToEnd, PlaceToBottom:
		c.X = buf.LineLength(c.Y)
	}
	if c.X < 0 {
		c.X = 0
	}
	c.clampX(buf)
	c.WentRight = c.X > prevX
}

// clampX keeps the column within the current line (one past the last
// rune is valid, for insertion at end of line).
func (c *Cursor) clampX(buf Buffer) {
	max := buf.LineLength(c.Y)
	if c.X > max {
		c.X = max
	}
	if c.X < 0 {
		c.X = 0
	}
}

// Scroll recomputes the viewport offsets from the current position and
// the last known pane size, and refreshes the draw position. When the
// cursor moved beyond the far edge on its axis of travel the offset
// advances to keep it exactly at the edge; behind the near edge, the
// offset follows the cursor. Calling it twice without movement is a
// no-op the second time.
func (c *Cursor) Scroll(buf Buffer, tabSize int) {
	if c.Jumped {
		// One frame of grace after a jump so the jump target appears
		// where the jump placed the offsets.
		c.Jumped = false
		c.refreshDraw(buf, tabSize)
		return
	}

	rows := c.Rows
	cols := c.Cols - c.NumberLineSize
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}

	if c.Y >= c.RowOffset+rows {
		c.RowOffset = c.Y - rows + 1
	}
	if c.Y < c.RowOffset {
		c.RowOffset = c.Y
	}

	vx := VisualX(buf.Line(c.Y), c.X, tabSize)
	if vx >= c.ColOffset+cols {
		c.ColOffset = vx - cols + 1
	}
	if vx < c.ColOffset {
		c.ColOffset = vx
	}

	c.refreshDraw(buf, tabSize)
}

func (c *Cursor) refreshDraw(buf Buffer, tabSize int) {
	vx := VisualX(buf.Line(c.Y), c.X, tabSize)
	c.DrawX = vx - c.ColOffset + c.NumberLineSize
	c.DrawY = c.Y - c.RowOffset
	if c.DrawX < 0 {
		c.DrawX = 0
	}
	if c.DrawY < 0 {
		c.DrawY = 0
	}
}

// RealCursor maps the logical position to pane-relative screen
// coordinates. Popups that reuse Cursor for absolute addressing set
// IgnoreOffset and get the raw position back.
func (c *Cursor) RealCursor() (int, int) {
	if c.IgnoreOffset {
		return c.X, c.Y
	}
	return c.DrawX, c.DrawY
}

// SetViewport records the pane's visible size for scroll math.
func (c *Cursor) SetViewport(rows, cols int) {
	c.Rows = rows
	c.Cols = cols
}

// VisualX returns the display column for a rune index, expanding tabs
// to the next tab stop and counting wide runes at their display width.
func VisualX(line string, col, tabSize int) int {
	if tabSize < 1 {
		tabSize = 1
	}
	vx := 0
	for i, r := range []rune(line) {
		if i >= col {
			break
		}
		if r == '\t' {
			vx += tabSize - (vx % tabSize)
			continue
		}
		vx += render.RuneWidth(r)
	}
	return vx
}
