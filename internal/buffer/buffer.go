package buffer

import (
	"os"
	"strings"
)

// Buffer holds text content as a slice of hard lines (split on \n) and
// implements the storage contract the editor core consumes: line/byte
// counts, row slicing, insert/delete by byte position, undo/redo.
//
// Byte positions address the document as if it were the joined lines with
// a single \n after every line, including the last.
type Buffer struct {
	Lines    []string
	Dirty    bool
	Filename string

	undo *UndoStack
}

func NewBuffer(filename string) *Buffer {
	return &Buffer{
		Lines:    []string{""},
		Filename: filename,
		undo:     NewUndoStack(),
	}
}

// Load reads a file into the buffer.
func (b *Buffer) Load() error {
	if b.Filename == "" {
		return nil
	}
	data, err := os.ReadFile(b.Filename)
	if err != nil {
		if os.IsNotExist(err) {
			// New file — start with empty buffer.
			b.Lines = []string{""}
			return nil
		}
		return err
	}
	text := string(data)
	// Strip trailing newline to avoid a phantom empty line.
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		b.Lines = []string{""}
	} else {
		b.Lines = strings.Split(text, "\n")
	}
	b.Dirty = false
	return nil
}

// Save writes the buffer to the given filename (or current filename).
func (b *Buffer) Save(filename string) error {
	if filename != "" {
		b.Filename = filename
	}
	if b.Filename == "" {
		return nil // Caller should prompt for a name.
	}
	content := strings.Join(b.Lines, "\n") + "\n"
	err := os.WriteFile(b.Filename, []byte(content), 0644)
	if err != nil {
		return err
	}
	b.Dirty = false
	return nil
}

// IsDirty reports whether the buffer has unsaved changes.
func (b *Buffer) IsDirty() bool { return b.Dirty }

// Name returns the backing filename, "" for an unnamed buffer.
func (b *Buffer) Name() string { return b.Filename }

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.Lines)
}

// ByteCount returns the total document length in bytes, counting one
// newline per line.
func (b *Buffer) ByteCount() int {
	n := 0
	for _, line := range b.Lines {
		n += len(line) + 1
	}
	return n
}

// LineLength returns the rune-length of a given line.
func (b *Buffer) LineLength(line int) int {
	if line < 0 || line >= len(b.Lines) {
		return 0
	}
	return len([]rune(b.Lines[line]))
}

// Line returns the full text of a line, or "" if out of range.
func (b *Buffer) Line(line int) string {
	if line < 0 || line >= len(b.Lines) {
		return ""
	}
	return b.Lines[line]
}

// GetRow returns the visible slice of a line: width runes starting at
// colOffset. Out-of-range rows and offsets yield "".
func (b *Buffer) GetRow(row, colOffset, width int) string {
	if row < 0 || row >= len(b.Lines) || colOffset < 0 || width <= 0 {
		return ""
	}
	runes := []rune(b.Lines[row])
	if colOffset >= len(runes) {
		return ""
	}
	end := colOffset + width
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[colOffset:end])
}

// ByteAt converts a (line, rune column) position to a byte position.
// Both inputs are clamped to valid values.
func (b *Buffer) ByteAt(line, col int) int {
	if line < 0 {
		line = 0
	}
	if line >= len(b.Lines) {
		return b.ByteCount() - 1
	}
	pos := 0
	for i := 0; i < line; i++ {
		pos += len(b.Lines[i]) + 1
	}
	runes := []rune(b.Lines[line])
	if col < 0 {
		col = 0
	}
	if col > len(runes) {
		col = len(runes)
	}
	return pos + len(string(runes[:col]))
}

// PosOf converts a byte position back to (line, rune column).
func (b *Buffer) PosOf(pos int) (int, int) {
	if pos < 0 {
		pos = 0
	}
	for i, line := range b.Lines {
		span := len(line) + 1
		if pos < span {
			return i, len([]rune(line[:pos]))
		}
		pos -= span
	}
	last := len(b.Lines) - 1
	return last, b.LineLength(last)
}

// locate returns the line index and byte offset within that line for a
// byte position, clamped to the document.
func (b *Buffer) locate(pos int) (int, int) {
	if pos < 0 {
		pos = 0
	}
	for i, line := range b.Lines {
		span := len(line) + 1
		if pos < span {
			if pos > len(line) {
				pos = len(line)
			}
			return i, pos
		}
		pos -= span
	}
	last := len(b.Lines) - 1
	return last, len(b.Lines[last])
}

// Insert inserts text (which may contain newlines) at a byte position
// and records the edit for undo.
func (b *Buffer) Insert(pos int, text string) {
	if text == "" {
		return
	}
	b.spliceIn(pos, text)
	b.undo.pushInsert(pos, text)
	b.Dirty = true
}

// Delete removes the byte range [start, end) and records the edit for
// undo. Returns the deleted text.
func (b *Buffer) Delete(start, end int) string {
	text := b.spliceOut(start, end)
	if text == "" {
		return ""
	}
	b.undo.pushDelete(start, text)
	b.Dirty = true
	return text
}

// Undo reverts the most recent edit. Returns the byte position the
// cursor should move to and whether anything was undone.
func (b *Buffer) Undo() (int, bool) {
	op, ok := b.undo.popUndo()
	if !ok {
		return 0, false
	}
	if op.insert {
		b.spliceOut(op.pos, op.pos+len(op.text))
		b.Dirty = true
		return op.pos, true
	}
	b.spliceIn(op.pos, op.text)
	b.Dirty = true
	return op.pos + len(op.text), true
}

// Redo re-applies the most recently undone edit.
func (b *Buffer) Redo() (int, bool) {
	op, ok := b.undo.popRedo()
	if !ok {
		return 0, false
	}
	if op.insert {
		b.spliceIn(op.pos, op.text)
		b.Dirty = true
		return op.pos + len(op.text), true
	}
	b.spliceOut(op.pos, op.pos+len(op.text))
	b.Dirty = true
	return op.pos, true
}

// spliceIn performs the raw insertion without touching undo state.
func (b *Buffer) spliceIn(pos int, text string) {
	line, off := b.locate(pos)
	cur := b.Lines[line]
	head := cur[:off]
	tail := cur[off:]

	if !strings.Contains(text, "\n") {
		b.Lines[line] = head + text + tail
		return
	}

	parts := strings.Split(text, "\n")
	newLines := make([]string, 0, len(b.Lines)+len(parts)-1)
	newLines = append(newLines, b.Lines[:line]...)
	newLines = append(newLines, head+parts[0])
	newLines = append(newLines, parts[1:len(parts)-1]...)
	newLines = append(newLines, parts[len(parts)-1]+tail)
	newLines = append(newLines, b.Lines[line+1:]...)
	b.Lines = newLines
}

// spliceOut performs the raw deletion without touching undo state and
// returns the removed text. The range is clamped to the document; the
// final newline is not removable (a buffer always has at least one line).
func (b *Buffer) spliceOut(start, end int) string {
	max := b.ByteCount() - 1
	if start < 0 {
		start = 0
	}
	if end > max {
		end = max
	}
	if start >= end {
		return ""
	}

	sLine, sOff := b.locate(start)
	eLine, eOff := b.locate(end)

	if sLine == eLine {
		cur := b.Lines[sLine]
		removed := cur[sOff:eOff]
		b.Lines[sLine] = cur[:sOff] + cur[eOff:]
		return removed
	}

	var removed strings.Builder
	removed.WriteString(b.Lines[sLine][sOff:])
	for i := sLine + 1; i < eLine; i++ {
		removed.WriteString("\n")
		removed.WriteString(b.Lines[i])
	}
	removed.WriteString("\n")
	removed.WriteString(b.Lines[eLine][:eOff])

	joined := b.Lines[sLine][:sOff] + b.Lines[eLine][eOff:]
	newLines := make([]string, 0, len(b.Lines)-(eLine-sLine))
	newLines = append(newLines, b.Lines[:sLine]...)
	newLines = append(newLines, joined)
	newLines = append(newLines, b.Lines[eLine+1:]...)
	b.Lines = newLines
	return removed.String()
}
