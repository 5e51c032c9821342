package editor

// jumpDepth bounds the jump history; the oldest entries fall off.
const jumpDepth = 32

// JumpTable is a bounded undo-style stack of cursor snapshots plus
// named marks. Explicit jump commands push the current cursor before
// moving, so `jump prev` walks back through visited positions.
type JumpTable struct {
	entries []Cursor
	index   int // points one past the last replayed entry
	marks   map[string]Cursor
}

func NewJumpTable() *JumpTable {
	return &JumpTable{marks: make(map[string]Cursor)}
}

// Push records a cursor snapshot, discarding any forward history.
func (j *JumpTable) Push(c Cursor) {
	j.entries = append(j.entries[:j.index], c)
	if len(j.entries) > jumpDepth {
		j.entries = j.entries[len(j.entries)-jumpDepth:]
	}
	j.index = len(j.entries)
}

// Prev steps back through the history.
func (j *JumpTable) Prev() (Cursor, bool) {
	if j.index == 0 {
		return Cursor{}, false
	}
	j.index--
	return j.entries[j.index], true
}

// Next re-walks forward after Prev.
func (j *JumpTable) Next() (Cursor, bool) {
	if j.index >= len(j.entries) {
		return Cursor{}, false
	}
	c := j.entries[j.index]
	j.index++
	return c, true
}

// Jump retrieves the snapshot at an absolute history index.
func (j *JumpTable) Jump(i int) (Cursor, bool) {
	if i < 0 || i >= len(j.entries) {
		return Cursor{}, false
	}
	j.index = i
	return j.entries[i], true
}

// Mark stores a named cursor snapshot.
func (j *JumpTable) Mark(name string, c Cursor) {
	j.marks[name] = c
}

// GoMark retrieves a named snapshot.
func (j *JumpTable) GoMark(name string) (Cursor, bool) {
	c, ok := j.marks[name]
	return c, ok
}

// Len returns the number of history entries.
func (j *JumpTable) Len() int { return len(j.entries) }
