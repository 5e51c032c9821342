package editor

// Buffer is the storage contract the UI engine consumes. The concrete
// text structure (rope, line slice, piece table) lives behind it; the
// core only ever slices rows, edits by byte position, and replays the
// undo log.
type Buffer interface {
	LineCount() int
	ByteCount() int
	LineLength(line int) int
	Line(line int) string
	GetRow(row, colOffset, width int) string

	ByteAt(line, col int) int
	PosOf(pos int) (line, col int)

	Insert(pos int, text string)
	Delete(start, end int) string

	// Undo and Redo return the byte position the cursor should land
	// on, and whether anything was applied.
	Undo() (int, bool)
	Redo() (int, bool)

	Load() error
	Save(filename string) error
	IsDirty() bool
	Name() string
}
