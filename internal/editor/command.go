package editor

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/sajari/fuzzy"
)

// RunCommand executes one command string against the pane. Command
// names are whitespace-separated from their arguments; everything a
// keybinding or the command line can do goes through here.
func (p *Pane) RunCommand(cmd string, cont *PaneContainer) error {
	switch p.kind {
	case PaneText:
		return p.text.runCommand(cmd, cont)
	case PanePopup:
		return p.popup.runCommand(cmd)
	}
	return nil
}

// commandNames feeds the misspelling suggester and the help popup.
var commandNames = []string{
	"move", "mode", "insert_text", "insert_newline", "insert_tab",
	"delete_back", "delete_forward", "delete_line", "yank_line",
	"paste_below", "paste_above", "open_line_below", "open_line_above",
	"undo", "redo", "search", "search_start", "search_next", "search_prev",
	"jump", "set_jump",
	"completion", "goto_definition", "horizontal_split", "vertical_split",
	"pane_left", "pane_right", "pane_up", "pane_down", "pane_close",
	"w", "wq", "q", "qa", "e", "status", "help",
	"tab_new", "tab_next", "tab_prev",
}

var (
	suggestOnce  sync.Once
	suggestModel *fuzzy.Model
)

// suggestCommand offers a "did you mean" for a mistyped command name.
func suggestCommand(name string) string {
	suggestOnce.Do(func() {
		suggestModel = fuzzy.NewModel()
		suggestModel.SetDepth(2)
		for _, w := range commandNames {
			suggestModel.TrainWord(w)
		}
	})
	match := suggestModel.SpellCheck(name)
	if match == "" || match == name {
		return ""
	}
	return match
}

func (tp *TextPane) runCommand(cmd string, cont *PaneContainer) error {
	tp.changed = true
	tp.status = ""

	name, arg, _ := strings.Cut(strings.TrimSpace(cmd), " ")
	bang := strings.HasSuffix(name, "!")
	if bang {
		name = strings.TrimSuffix(name, "!")
	}

	switch name {
	case "":
		return nil

	case "move":
		return tp.moveCommand(arg)

	case "mode":
		kind, ok := ModeKindFromName(arg)
		if !ok {
			return fmt.Errorf("unknown mode %q", arg)
		}
		tp.mode.ChangeMode(kind)

	case "insert_text":
		tp.insertAtCursor(arg)
	case "insert_newline":
		tp.insertAtCursor("\n")
	case "insert_tab":
		tp.insertAtCursor("\t")
	case "delete_back":
		tp.deleteBack()
	case "delete_forward":
		tp.deleteForward()
	case "delete_line":
		tp.deleteLine()
	case "yank_line":
		tp.reg.put(tp.buf.Line(tp.cursor.Y) + "\n")
		tp.status = "yanked 1 line"
	case "paste_below":
		tp.paste(true)
	case "paste_above":
		tp.paste(false)
	case "open_line_below":
		tp.buf.Insert(tp.buf.ByteAt(tp.cursor.Y, tp.buf.LineLength(tp.cursor.Y)), "\n")
		tp.cursor.SetCursor(ToStart, Amount(1), tp.buf)
		tp.mode.ChangeMode(ModeInsert)
	case "open_line_above":
		tp.buf.Insert(tp.buf.ByteAt(tp.cursor.Y, 0), "\n")
		tp.cursor.SetCursor(ToStart, Nothing, tp.buf)
		tp.mode.ChangeMode(ModeInsert)

	case "undo":
		if pos, ok := tp.buf.Undo(); ok {
			tp.placeAtBytePos(pos)
		} else {
			tp.status = "already at oldest change"
		}
	case "redo":
		if pos, ok := tp.buf.Redo(); ok {
			tp.placeAtBytePos(pos)
		} else {
			tp.status = "already at newest change"
		}

	case "search":
		if arg == "" {
			return fmt.Errorf("search: missing term")
		}
		tp.search = arg
		tp.jumps.Push(tp.cursor)
		if !tp.findTerm(arg, tp.cursor.X, tp.cursor.Y, true) {
			tp.status = fmt.Sprintf("pattern not found: %s", arg)
		}
	case "search_start":
		tp.mode.ChangeMode(ModeCommand)
		tp.mode.Prefill("search ")
	case "search_next":
		tp.repeatSearch(true)
	case "search_prev":
		tp.repeatSearch(false)

	case "jump":
		return tp.jumpCommand(arg)
	case "set_jump":
		// Bare set_jump records a history snapshot; with a name it
		// places a mark.
		if arg == "" {
			tp.jumps.Push(tp.cursor)
		} else {
			tp.jumps.Mark(arg, tp.cursor)
		}

	case "completion":
		tp.pendingCompletion = tp.lang.RequestCompletions(tp.buf.Name(), tp.cursor.Y, tp.cursor.X)
	case "goto_definition":
		tp.pendingDefinition = tp.lang.RequestDefinition(tp.buf.Name(), tp.cursor.Y, tp.cursor.X)

	case "horizontal_split":
		tp.win.Send(WindowMsg{Kind: MsgHorizontalSplit})
	case "vertical_split":
		tp.win.Send(WindowMsg{Kind: MsgVerticalSplit})
	case "pane_left":
		tp.win.Send(WindowMsg{Kind: MsgFocusLeft})
	case "pane_right":
		tp.win.Send(WindowMsg{Kind: MsgFocusRight})
	case "pane_up":
		tp.win.Send(WindowMsg{Kind: MsgFocusUp})
	case "pane_down":
		tp.win.Send(WindowMsg{Kind: MsgFocusDown})
	case "pane_close":
		tp.win.Send(WindowMsg{Kind: MsgClosePane})

	case "w":
		return tp.save(arg)
	case "wq":
		if err := tp.save(arg); err != nil {
			return err
		}
		tp.win.Send(WindowMsg{Kind: MsgClosePane})
	case "q":
		if tp.buf.IsDirty() && !bang {
			return fmt.Errorf("unsaved changes (q! to discard)")
		}
		tp.win.Send(WindowMsg{Kind: MsgClosePane})
	case "qa":
		if !bang {
			return fmt.Errorf("qa requires ! (unsaved buffers may be lost)")
		}
		tp.win.Send(WindowMsg{Kind: MsgForward, Arg: "quit_all"})
	case "e":
		if arg == "" {
			return fmt.Errorf("e: missing filename")
		}
		tp.win.Send(WindowMsg{Kind: MsgOpenFile, Arg: arg})

	case "tab_new":
		tp.win.Send(WindowMsg{Kind: MsgForward, Arg: strings.TrimSpace("tab_new " + arg)})
	case "tab_next":
		tp.win.Send(WindowMsg{Kind: MsgForward, Arg: "tab_next"})
	case "tab_prev":
		tp.win.Send(WindowMsg{Kind: MsgForward, Arg: "tab_prev"})

	case "status":
		tp.status = arg
	case "help":
		tp.win.Send(WindowMsg{Kind: MsgOpenPopup, Popup: &PopupContent{
			Kind:  PopupInfo,
			Title: "commands",
			Text:  strings.Join(commandNames, "  "),
		}})

	default:
		if hint := suggestCommand(name); hint != "" {
			return fmt.Errorf("unknown command %q (did you mean %q?)", name, hint)
		}
		return fmt.Errorf("unknown command %q", name)
	}
	return nil
}

// jumpCommand resolves a jump target: history steps, an absolute
// history index, or a named mark.
func (tp *TextPane) jumpCommand(arg string) error {
	switch arg {
	case "":
		return fmt.Errorf("jump: missing target")
	case "prev":
		if c, ok := tp.jumps.Prev(); ok {
			tp.restoreJump(c)
		}
		return nil
	case "next":
		if c, ok := tp.jumps.Next(); ok {
			tp.restoreJump(c)
		}
		return nil
	}
	if i, err := strconv.Atoi(arg); err == nil {
		c, ok := tp.jumps.Jump(i)
		if !ok {
			return fmt.Errorf("jump: no history entry %d", i)
		}
		tp.restoreJump(c)
		return nil
	}
	c, ok := tp.jumps.GoMark(arg)
	if !ok {
		return fmt.Errorf("jump: no mark %q", arg)
	}
	tp.jumps.Push(tp.cursor)
	tp.restoreJump(c)
	return nil
}

func (tp *TextPane) moveCommand(arg string) error {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		return fmt.Errorf("move: missing direction")
	}
	amount := 1
	if len(fields) > 1 {
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("move: bad amount %q", fields[1])
		}
		amount = n
	}

	switch fields[0] {
	case "up":
		tp.cursor.MoveCursor(DirUp, amount, tp.buf)
	case "down":
		tp.cursor.MoveCursor(DirDown, amount, tp.buf)
	case "left":
		tp.cursor.MoveCursor(DirLeft, amount, tp.buf)
	case "right":
		tp.cursor.MoveCursor(DirRight, amount, tp.buf)
	case "line_start":
		tp.cursor.SetCursor(ToStart, Nothing, tp.buf)
	case "line_end":
		tp.cursor.SetCursor(ToEnd, Nothing, tp.buf)
	case "file_top":
		tp.jumps.Push(tp.cursor)
		tp.cursor.SetCursor(ToStart, ToStart, tp.buf)
	case "file_bottom":
		tp.jumps.Push(tp.cursor)
		tp.cursor.SetCursor(ToStart, ToBottom, tp.buf)
	case "page_up":
		rows := tp.cursor.Rows
		if rows < 1 {
			rows = 1
		}
		tp.cursor.MoveCursor(DirUp, rows*amount, tp.buf)
	case "page_down":
		rows := tp.cursor.Rows
		if rows < 1 {
			rows = 1
		}
		tp.cursor.MoveCursor(DirDown, rows*amount, tp.buf)
	case "word_next":
		for i := 0; i < amount; i++ {
			x, y := wordNext(tp.buf, tp.cursor.X, tp.cursor.Y)
			tp.cursor.SetCursor(Where(x), Where(y), tp.buf)
		}
	case "word_prev":
		for i := 0; i < amount; i++ {
			x, y := wordPrev(tp.buf, tp.cursor.X, tp.cursor.Y)
			tp.cursor.SetCursor(Where(x), Where(y), tp.buf)
		}
	default:
		return fmt.Errorf("move: unknown direction %q", fields[0])
	}
	return nil
}

func (tp *TextPane) insertAtCursor(text string) {
	pos := tp.buf.ByteAt(tp.cursor.Y, tp.cursor.X)
	tp.buf.Insert(pos, text)
	tp.placeAtBytePos(pos + len(text))
}

// deleteBack removes the rune before the cursor, joining lines at
// column zero.
func (tp *TextPane) deleteBack() {
	x, y := tp.cursor.X, tp.cursor.Y
	var prev int
	switch {
	case x > 0:
		prev = tp.buf.ByteAt(y, x-1)
	case y > 0:
		prev = tp.buf.ByteAt(y-1, tp.buf.LineLength(y-1))
	default:
		return
	}
	tp.buf.Delete(prev, tp.buf.ByteAt(y, x))
	tp.placeAtBytePos(prev)
}

// deleteForward removes the rune under the cursor. The final newline
// of the buffer is not deletable.
func (tp *TextPane) deleteForward() {
	x, y := tp.cursor.X, tp.cursor.Y
	pos := tp.buf.ByteAt(y, x)
	var next int
	switch {
	case x < tp.buf.LineLength(y):
		next = tp.buf.ByteAt(y, x+1)
	case y < tp.buf.LineCount()-1:
		next = tp.buf.ByteAt(y+1, 0)
	default:
		return
	}
	tp.buf.Delete(pos, next)
	tp.placeAtBytePos(pos)
}

// deleteLine removes the whole current line and yanks it. Deleting the
// last line consumes the preceding newline instead of the (fixed)
// final one.
func (tp *TextPane) deleteLine() {
	y := tp.cursor.Y
	lines := tp.buf.LineCount()
	line := tp.buf.Line(y)
	tp.reg.put(line + "\n")

	var start, end int
	switch {
	case y < lines-1:
		start = tp.buf.ByteAt(y, 0)
		end = tp.buf.ByteAt(y+1, 0)
	case y > 0:
		start = tp.buf.ByteAt(y-1, tp.buf.LineLength(y-1))
		end = tp.buf.ByteAt(y, tp.buf.LineLength(y))
	default:
		// Only line: empty it, keep the line itself.
		start = tp.buf.ByteAt(0, 0)
		end = tp.buf.ByteAt(0, tp.buf.LineLength(0))
		if start == end {
			return
		}
	}
	tp.buf.Delete(start, end)
	tp.cursor.SetCursor(ToStart, Nothing, tp.buf)
	tp.cursor.clampX(tp.buf)
	if tp.cursor.Y > tp.buf.LineCount()-1 {
		tp.cursor.Y = tp.buf.LineCount() - 1
	}
}

// paste inserts the register. Text ending in a newline pastes
// linewise, below or above the current line; anything else pastes at
// the cursor.
func (tp *TextPane) paste(below bool) {
	text := tp.reg.get()
	if text == "" {
		tp.status = "register empty"
		return
	}
	if !strings.HasSuffix(text, "\n") {
		tp.insertAtCursor(text)
		return
	}

	content := strings.TrimSuffix(text, "\n")
	y := tp.cursor.Y
	if below {
		pos := tp.buf.ByteAt(y, tp.buf.LineLength(y))
		tp.buf.Insert(pos, "\n"+content)
		tp.cursor.SetCursor(ToStart, Amount(1), tp.buf)
	} else {
		pos := tp.buf.ByteAt(y, 0)
		tp.buf.Insert(pos, content+"\n")
		tp.cursor.SetCursor(ToStart, Nothing, tp.buf)
	}
}

func (tp *TextPane) save(name string) error {
	if name == "" {
		name = tp.buf.Name()
	}
	if name == "" {
		return fmt.Errorf("no filename (use :w <name>)")
	}
	if err := tp.buf.Save(name); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	tp.status = fmt.Sprintf("%q written", name)
	return nil
}

// placeAtBytePos moves the cursor to a byte position in the buffer.
func (tp *TextPane) placeAtBytePos(pos int) {
	line, col := tp.buf.PosOf(pos)
	tp.cursor.SetCursor(Where(col), Where(line), tp.buf)
}

// restoreJump reinstates a saved cursor including its viewport, with
// one frame of scroll grace so the restored offsets survive.
func (tp *TextPane) restoreJump(c Cursor) {
	tp.cursor = c
	tp.cursor.clampX(tp.buf)
	if max := tp.buf.LineCount() - 1; tp.cursor.Y > max {
		tp.cursor.Y = max
		if tp.cursor.Y < 0 {
			tp.cursor.Y = 0
		}
	}
	tp.cursor.Jumped = true
}

func (tp *TextPane) repeatSearch(forward bool) {
	if tp.search == "" {
		tp.status = "no previous search"
		return
	}
	x, y := tp.cursor.X, tp.cursor.Y
	if forward {
		x++
	} else {
		x--
		if x < 0 {
			// Step to the previous line, unbounded column.
			y--
			if y < 0 {
				y = tp.buf.LineCount() - 1
			}
			x = -1
		}
	}
	if !tp.findTerm(tp.search, x, y, forward) {
		tp.status = fmt.Sprintf("pattern not found: %s", tp.search)
	}
}

// findTerm scans for the term starting at (x, y), wrapping around the
// buffer once.
func (tp *TextPane) findTerm(term string, x, y int, forward bool) bool {
	lines := tp.buf.LineCount()
	if lines == 0 {
		return false
	}
	for i := 0; i <= lines; i++ {
		var line int
		if forward {
			line = (y + i) % lines
		} else {
			line = ((y-i)%lines + lines) % lines
		}
		fromCol := -1
		toCol := -1
		if i == 0 || i == lines {
			if forward {
				fromCol = x
			} else {
				toCol = x
			}
		}
		if col, ok := findInLine(tp.buf.Line(line), term, fromCol, toCol, forward); ok {
			tp.jumps.Push(tp.cursor)
			tp.cursor.SetCursor(Where(col), Where(line), tp.buf)
			return true
		}
	}
	return false
}

// findInLine locates term in a line by rune column. fromCol bounds the
// earliest match (-1 for none), toCol the latest.
func findInLine(line, term string, fromCol, toCol int, forward bool) (int, bool) {
	runes := []rune(line)
	trunes := []rune(term)
	if len(trunes) == 0 || len(trunes) > len(runes) {
		return 0, false
	}

	match := func(at int) bool {
		for j, r := range trunes {
			if runes[at+j] != r {
				return false
			}
		}
		return true
	}

	last := len(runes) - len(trunes)
	if forward {
		start := 0
		if fromCol >= 0 {
			start = fromCol
		}
		for col := start; col <= last; col++ {
			if match(col) {
				return col, true
			}
		}
	} else {
		end := last
		if toCol >= 0 && toCol < end {
			end = toCol
		}
		for col := end; col >= 0; col-- {
			if match(col) {
				return col, true
			}
		}
	}
	return 0, false
}
