package editor

import "testing"

func TestJumpTablePrevNext(t *testing.T) {
	j := NewJumpTable()
	j.Push(Cursor{X: 1, Y: 1})
	j.Push(Cursor{X: 2, Y: 2})

	c, ok := j.Prev()
	if !ok || c.Y != 2 {
		t.Fatalf("prev: %v %v", c, ok)
	}
	c, ok = j.Prev()
	if !ok || c.Y != 1 {
		t.Fatalf("prev: %v %v", c, ok)
	}
	if _, ok := j.Prev(); ok {
		t.Error("prev past the beginning should fail")
	}
	c, ok = j.Next()
	if !ok || c.Y != 1 {
		t.Fatalf("next: %v %v", c, ok)
	}
}

func TestJumpTablePushDiscardsForwardHistory(t *testing.T) {
	j := NewJumpTable()
	j.Push(Cursor{Y: 1})
	j.Push(Cursor{Y: 2})
	j.Prev()
	j.Prev()
	j.Push(Cursor{Y: 9})
	if j.Len() != 1 {
		t.Errorf("len %d, want 1", j.Len())
	}
	if _, ok := j.Next(); ok {
		t.Error("forward history should be gone")
	}
}

func TestJumpTableBounded(t *testing.T) {
	j := NewJumpTable()
	for i := 0; i < jumpDepth*2; i++ {
		j.Push(Cursor{Y: i})
	}
	if j.Len() != jumpDepth {
		t.Errorf("len %d, want %d", j.Len(), jumpDepth)
	}
	// The oldest surviving entry is the one pushed jumpDepth ago.
	c, ok := j.Jump(0)
	if !ok || c.Y != jumpDepth {
		t.Errorf("oldest entry: %v %v", c, ok)
	}
}

func TestJumpTableIndexedJump(t *testing.T) {
	j := NewJumpTable()
	j.Push(Cursor{Y: 5})
	j.Push(Cursor{Y: 7})
	c, ok := j.Jump(1)
	if !ok || c.Y != 7 {
		t.Errorf("jump 1: %v %v", c, ok)
	}
	if _, ok := j.Jump(10); ok {
		t.Error("out-of-range index should fail")
	}
}

func TestJumpTableMarks(t *testing.T) {
	j := NewJumpTable()
	j.Mark("a", Cursor{X: 3, Y: 4})
	c, ok := j.GoMark("a")
	if !ok || c.X != 3 || c.Y != 4 {
		t.Errorf("mark: %v %v", c, ok)
	}
	if _, ok := j.GoMark("zz"); ok {
		t.Error("unknown mark should fail")
	}
}
