package render

// Layer is one full-screen grid of optional cells. A nil cell means
// "nothing claimed here": the compositor falls through to the layer
// below, and absent any claim the screen keeps what it already shows.
//
// Cells persist between frames. Writers set Changed on every touched
// cell; the compositor clears it when the cell reaches the output, so
// an untouched layer costs no repaints.
type Layer struct {
	width  int
	height int
	cells  [][]*Cell
}

func NewLayer(width, height int) *Layer {
	l := &Layer{}
	l.Resize(width, height)
	return l
}

// Resize reallocates the grid. All content is dropped; callers redraw
// after a resize anyway.
func (l *Layer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	l.width = width
	l.height = height
	l.cells = make([][]*Cell, height)
	for y := range l.cells {
		l.cells[y] = make([]*Cell, width)
	}
}

func (l *Layer) Width() int  { return l.width }
func (l *Layer) Height() int { return l.height }

// Get returns the cell at (x, y), or nil when empty or out of bounds.
func (l *Layer) Get(x, y int) *Cell {
	if x < 0 || x >= l.width || y < 0 || y >= l.height {
		return nil
	}
	return l.cells[y][x]
}

// Set claims the cell at (x, y) and marks it for repaint.
// Out-of-bounds writes are dropped.
func (l *Layer) Set(x, y int, r rune, style Style) {
	if x < 0 || x >= l.width || y < 0 || y >= l.height {
		return
	}
	c := l.cells[y][x]
	if c != nil && c.Rune == r && c.Style == style {
		// Same glyph already on this layer — no repaint needed.
		return
	}
	l.cells[y][x] = &Cell{Rune: r, Style: style, Changed: true}
}

// SetString writes a string starting at (x, y), advancing by display
// width. Wide runes claim their spill column with a zero rune so lower
// layers cannot show through half a glyph. Returns the number of
// columns consumed.
func (l *Layer) SetString(x, y int, s string, style Style) int {
	start := x
	for _, r := range s {
		w := RuneWidth(r)
		l.Set(x, y, r, style)
		if w == 2 {
			l.Set(x+1, y, 0, style)
		}
		x += w
	}
	return x - start
}

// Touch re-flags the cell at (x, y) for repaint without altering its
// content. Used when a layer above this one goes away and the cells it
// was hiding must reach the screen again.
func (l *Layer) Touch(x, y int) {
	if x < 0 || x >= l.width || y < 0 || y >= l.height {
		return
	}
	if c := l.cells[y][x]; c != nil {
		c.Changed = true
	}
}

// TouchUnder re-flags every cell of this layer that sits below a
// claimed cell of the given (departing) layer.
func (l *Layer) TouchUnder(top *Layer) {
	for y := 0; y < top.height; y++ {
		for x := 0; x < top.width; x++ {
			if top.cells[y][x] != nil {
				l.Touch(x, y)
			}
		}
	}
}

// ClearCell releases a single cell back to empty.
func (l *Layer) ClearCell(x, y int) {
	if x < 0 || x >= l.width || y < 0 || y >= l.height {
		return
	}
	l.cells[y][x] = nil
}

// Clear releases every cell. Used when a layer's pane closes so the
// content below repaints.
func (l *Layer) Clear() {
	for y := range l.cells {
		for x := range l.cells[y] {
			l.cells[y][x] = nil
		}
	}
}
