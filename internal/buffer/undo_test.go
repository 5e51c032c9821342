package buffer

import "testing"

func TestUndoInsert(t *testing.T) {
	b := bufWith("abc")
	b.Insert(b.ByteAt(0, 3), "def")
	pos, ok := b.Undo()
	if !ok {
		t.Fatal("expected undo to apply")
	}
	if b.Lines[0] != "abc" {
		t.Errorf("line: %q", b.Lines[0])
	}
	if pos != 3 {
		t.Errorf("cursor pos: %d", pos)
	}
}

func TestUndoDelete(t *testing.T) {
	b := bufWith("hello world")
	b.Delete(b.ByteAt(0, 5), b.ByteAt(0, 11))
	if _, ok := b.Undo(); !ok {
		t.Fatal("expected undo to apply")
	}
	if b.Lines[0] != "hello world" {
		t.Errorf("line: %q", b.Lines[0])
	}
}

func TestUndoEmptyStack(t *testing.T) {
	b := bufWith("abc")
	if _, ok := b.Undo(); ok {
		t.Error("undo on empty stack should report false")
	}
}

func TestRedoReappliesInsert(t *testing.T) {
	b := bufWith("ab")
	b.Insert(b.ByteAt(0, 2), "c")
	b.Undo()
	pos, ok := b.Redo()
	if !ok {
		t.Fatal("expected redo to apply")
	}
	if b.Lines[0] != "abc" {
		t.Errorf("line: %q", b.Lines[0])
	}
	if pos != 3 {
		t.Errorf("cursor pos: %d", pos)
	}
}

func TestRedoClearedByNewEdit(t *testing.T) {
	b := bufWith("ab")
	b.Insert(b.ByteAt(0, 2), "c")
	b.Undo()
	b.Insert(b.ByteAt(0, 2), "x")
	if _, ok := b.Redo(); ok {
		t.Error("redo stack should be cleared by a new edit")
	}
}

func TestCoalescedTypingUndoesAsOneStep(t *testing.T) {
	b := bufWith("")
	b.Insert(b.ByteAt(0, 0), "h")
	b.Insert(b.ByteAt(0, 1), "e")
	b.Insert(b.ByteAt(0, 2), "y")
	if b.Lines[0] != "hey" {
		t.Fatalf("line: %q", b.Lines[0])
	}
	if depth := b.undo.Depth(); depth != 1 {
		t.Errorf("expected 1 coalesced op, got %d", depth)
	}
	b.Undo()
	if b.Lines[0] != "" {
		t.Errorf("line after undo: %q", b.Lines[0])
	}
}

func TestCoalescingBreaksOnPositionChange(t *testing.T) {
	b := bufWith("abcd")
	b.Insert(b.ByteAt(0, 1), "x")
	b.Insert(b.ByteAt(0, 4), "y")
	if depth := b.undo.Depth(); depth != 2 {
		t.Errorf("expected 2 ops, got %d", depth)
	}
}

func TestCoalescingBreaksOnNewline(t *testing.T) {
	b := bufWith("")
	b.Insert(b.ByteAt(0, 0), "a")
	b.Insert(b.ByteAt(0, 1), "\n")
	b.Insert(b.ByteAt(1, 0), "b")
	if depth := b.undo.Depth(); depth != 3 {
		t.Errorf("expected 3 ops, got %d", depth)
	}
}

func TestCoalescingBreaksAfterUndo(t *testing.T) {
	b := bufWith("")
	b.Insert(b.ByteAt(0, 0), "a")
	b.Undo()
	b.Redo()
	b.Insert(b.ByteAt(0, 1), "b")
	b.Undo()
	if b.Lines[0] != "a" {
		t.Errorf("line: %q (post-undo insert must not coalesce into redone op)", b.Lines[0])
	}
}

func TestUndoRedoSequenceRestoresDocument(t *testing.T) {
	b := bufWith("one", "two")
	b.Insert(b.ByteAt(1, 3), "!")
	b.Delete(b.ByteAt(0, 0), b.ByteAt(1, 0))
	for {
		if _, ok := b.Undo(); !ok {
			break
		}
	}
	if b.LineCount() != 2 || b.Lines[0] != "one" || b.Lines[1] != "two" {
		t.Errorf("lines: %v", b.Lines)
	}
	for {
		if _, ok := b.Redo(); !ok {
			break
		}
	}
	if b.LineCount() != 1 || b.Lines[0] != "two!" {
		t.Errorf("lines after redo: %v", b.Lines)
	}
}
