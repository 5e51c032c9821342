package render

import (
	"bytes"
	"fmt"
	"io"
)

// OutputBuffer batches cell writes into per-row strings and performs
// the actual terminal flush. This is the only place in the render
// pipeline that touches I/O.
type OutputBuffer struct {
	w   io.Writer
	buf bytes.Buffer

	lastStyle  Style
	styleValid bool
}

func NewOutputBuffer(w io.Writer) *OutputBuffer {
	return &OutputBuffer{w: w}
}

// Draw appends the changed cells of a merged frame to the pending
// output. Only the min(terminal, contents) region is written. Each
// contiguous run of changed cells in a row becomes one cursor move
// plus its glyphs; styles are re-emitted only when they differ from
// the previous cell's.
func (o *OutputBuffer) Draw(rows [][]*Cell, termWidth, termHeight int) {
	height := len(rows)
	if termHeight < height {
		height = termHeight
	}
	for y := 0; y < height; y++ {
		row := rows[y]
		width := len(row)
		if termWidth < width {
			width = termWidth
		}
		x := 0
		for x < width {
			if row[x] == nil {
				x++
				continue
			}
			// Start of a changed run.
			fmt.Fprintf(&o.buf, "\x1b[%d;%dH", y+1, x+1)
			for x < width && row[x] != nil {
				cell := row[x]
				if !o.styleValid || cell.Style != o.lastStyle {
					o.buf.WriteString(cell.Style.SGR())
					o.lastStyle = cell.Style
					o.styleValid = true
				}
				if cell.Rune == 0 {
					// Spill column of a wide rune; the glyph
					// before it already painted this cell.
					x++
					continue
				}
				o.buf.WriteRune(cell.Rune)
				x += RuneWidth(cell.Rune)
			}
		}
	}
}

// PlaceCursor appends a cursor move to the given 0-based screen
// position, for the final hardware-cursor placement of the tick.
func (o *OutputBuffer) PlaceCursor(x, y int) {
	fmt.Fprintf(&o.buf, "\x1b[%d;%dH", y+1, x+1)
}

// HideCursor and ShowCursor bracket a frame so the hardware cursor
// does not smear across intermediate writes.
func (o *OutputBuffer) HideCursor() { o.buf.WriteString("\x1b[?25l") }
func (o *OutputBuffer) ShowCursor() { o.buf.WriteString("\x1b[?25h") }

// Pending returns the number of buffered bytes awaiting flush.
func (o *OutputBuffer) Pending() int { return o.buf.Len() }

// Flush writes everything accumulated this tick and clears the buffer.
func (o *OutputBuffer) Flush() error {
	if o.buf.Len() == 0 {
		return nil
	}
	_, err := o.w.Write(o.buf.Bytes())
	o.buf.Reset()
	return err
}
