package buffer

import "strings"

// op is one undoable edit: text that was inserted or deleted at a byte
// position.
type op struct {
	pos    int
	text   string
	insert bool
}

// UndoStack manages the undo history with coalescing of consecutive
// single-rune inserts (so typing a word undoes as one step).
type UndoStack struct {
	ops     []op
	redoOps []op

	coalescing bool
}

func NewUndoStack() *UndoStack {
	return &UndoStack{}
}

// pushInsert records an insertion, extending the previous insert op when
// the new text lands directly after it on the same line.
func (u *UndoStack) pushInsert(pos int, text string) {
	u.redoOps = nil
	if u.coalescing && len(u.ops) > 0 {
		last := &u.ops[len(u.ops)-1]
		if last.insert && pos == last.pos+len(last.text) &&
			!strings.Contains(text, "\n") && !strings.Contains(last.text, "\n") {
			last.text += text
			return
		}
	}
	u.ops = append(u.ops, op{pos: pos, text: text, insert: true})
	u.coalescing = !strings.Contains(text, "\n")
}

// pushDelete records a deletion. Deletions never coalesce.
func (u *UndoStack) pushDelete(pos int, text string) {
	u.redoOps = nil
	u.coalescing = false
	u.ops = append(u.ops, op{pos: pos, text: text, insert: false})
}

// popUndo moves the most recent op to the redo stack and returns it.
func (u *UndoStack) popUndo() (op, bool) {
	if len(u.ops) == 0 {
		return op{}, false
	}
	u.coalescing = false
	last := u.ops[len(u.ops)-1]
	u.ops = u.ops[:len(u.ops)-1]
	u.redoOps = append(u.redoOps, last)
	return last, true
}

// popRedo moves the most recently undone op back to the undo stack and
// returns it.
func (u *UndoStack) popRedo() (op, bool) {
	if len(u.redoOps) == 0 {
		return op{}, false
	}
	last := u.redoOps[len(u.redoOps)-1]
	u.redoOps = u.redoOps[:len(u.redoOps)-1]
	u.ops = append(u.ops, last)
	return last, true
}

// Depth returns the number of undoable operations.
func (u *UndoStack) Depth() int {
	return len(u.ops)
}
