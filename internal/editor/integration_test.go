package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mwhitby/fresco/internal/term"
)

func typeKeys(w *Window, keys string) {
	for _, r := range keys {
		w.ProcessKey(term.Rn(r))
		w.HandleMessages()
	}
}

func typeSpecial(w *Window, k term.Key) {
	w.ProcessKey(k)
	w.HandleMessages()
}

// A full modal session: insert text, yank and paste it, chord-delete a
// line, write the result out.
func TestModalEditingSession(t *testing.T) {
	w := testWindow("")
	tp := w.panes[0].text

	typeKeys(w, "ihello")
	typeSpecial(w, term.Key{Type: term.KeyEscape})
	if got := tp.buf.Line(0); got != "hello" {
		t.Fatalf("after insert: %q", got)
	}

	typeKeys(w, "yyp")
	if got := tp.buf.LineCount(); got != 2 {
		t.Fatalf("after yy p: %d lines", got)
	}

	typeKeys(w, "ggdd")
	if got := tp.buf.LineCount(); got != 1 {
		t.Fatalf("after gg dd: %d lines", got)
	}
	if got := tp.buf.Line(0); got != "hello" {
		t.Fatalf("after gg dd: %q", got)
	}

	path := filepath.Join(t.TempDir(), "out.txt")
	typeKeys(w, ":w "+path)
	typeSpecial(w, term.Key{Type: term.KeyEnter})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello\n" {
		t.Fatalf("file = %q, want %q", data, "hello\n")
	}
	if tp.buf.IsDirty() {
		t.Fatal("buffer should be clean after write")
	}
}

// Splitting, editing in one pane, and confirming the shared buffer is
// visible from its sibling.
func TestSplitSharedEditingSession(t *testing.T) {
	w := testWindow("shared")
	typeKeys(w, " v") // leader split
	if len(w.panes) != 2 {
		t.Fatalf("panes = %d, want 2", len(w.panes))
	}

	typeKeys(w, "A") // unbound: no effect
	typeKeys(w, "ix")
	typeSpecial(w, term.Key{Type: term.KeyEscape})

	if got := w.panes[0].text.buf.Line(0); got != "xshared" {
		t.Fatalf("sibling sees %q, want %q", got, "xshared")
	}

	typeKeys(w, " h") // focus left
	if w.active != 0 {
		t.Fatalf("active = %d, want 0", w.active)
	}
}

// Popup flow driven entirely by keys: open via the help command,
// dismiss, and confirm the base layer repaints what was hidden.
func TestPopupRevealSession(t *testing.T) {
	w := testWindow("content line")
	w.Refresh()

	typeKeys(w, ":help")
	typeSpecial(w, term.Key{Type: term.KeyEnter})
	if len(w.popups) != 1 {
		t.Fatalf("popups = %d, want 1", len(w.popups))
	}
	w.Refresh()

	typeSpecial(w, term.Key{Type: term.KeyEscape})
	if len(w.popups) != 0 {
		t.Fatalf("popups = %d, want 0", len(w.popups))
	}

	// The base cells under the departed popup are re-flagged.
	layers := w.Refresh()
	flagged := 0
	base := layers[0]
	for y := 0; y < 24; y++ {
		for x := 0; x < 80; x++ {
			if c := base.Get(x, y); c != nil && c.Changed {
				flagged++
			}
		}
	}
	if flagged == 0 {
		t.Fatal("closing a popup must repaint the cells it covered")
	}
}
