package editor

import (
	"strconv"

	"github.com/mwhitby/fresco/internal/render"
	"github.com/mwhitby/fresco/internal/term"
)

// PaneKind discriminates the pane union.
type PaneKind int

const (
	PaneText PaneKind = iota
	PanePopup
)

// Pane is a tagged union over the pane variants. Dispatch is by
// switching on the tag, so the full set of variants is visible at
// every call site.
type Pane struct {
	kind  PaneKind
	text  *TextPane
	popup *PopupPane
}

func NewTextPane(buf Buffer, win *Mailbox[WindowMsg], clip Clipboard, lang LangClient) *Pane {
	tp := &TextPane{
		buf:     buf,
		mode:    NewMode(ModeNormal, DefaultKeymaps()),
		jumps:   NewJumpTable(),
		win:     win,
		reg:     newRegister(clip),
		syntax:  DetectSyntax(buf.Name()),
		lang:    lang,
		tabSize: defaultTabSize,
		changed: true,
	}
	return &Pane{kind: PaneText, text: tp}
}

func (p *Pane) Kind() PaneKind { return p.kind }

// Buffer returns the text pane's buffer, nil for popups. Splits use it
// to share one buffer across sibling panes.
func (p *Pane) Buffer() Buffer {
	if p.kind == PaneText {
		return p.text.buf
	}
	return nil
}

func (p *Pane) ProcessKey(k term.Key, cont *PaneContainer) error {
	switch p.kind {
	case PaneText:
		p.text.changed = true
		// User-level failures surface on the status row, they never
		// unwind the run loop.
		if err := p.text.mode.ProcessKey(k, p, cont); err != nil {
			p.text.status = err.Error()
		}
	case PanePopup:
		p.popup.changed = true
		if err := p.popup.mode.ProcessKey(k, p, cont); err != nil {
			p.popup.win.Send(WindowMsg{Kind: MsgStatus, Arg: err.Error()})
		}
	}
	return nil
}

func (p *Pane) Draw(cont *PaneContainer, layer *render.Layer) {
	switch p.kind {
	case PaneText:
		p.text.draw(cont, layer)
	case PanePopup:
		p.popup.draw(cont, layer)
	}
}

// Changed reports whether the pane needs redrawing this frame.
func (p *Pane) Changed() bool {
	switch p.kind {
	case PaneText:
		return p.text.changed
	case PanePopup:
		return p.popup.changed
	}
	return false
}

func (p *Pane) ResetChanged() {
	switch p.kind {
	case PaneText:
		p.text.changed = false
	case PanePopup:
		p.popup.changed = false
	}
}

// ForceChange marks the pane for redraw regardless of its own state,
// e.g. after a resize or a tab switch.
func (p *Pane) ForceChange() {
	switch p.kind {
	case PaneText:
		p.text.changed = true
	case PanePopup:
		p.popup.changed = true
	}
}

// Poll gives the pane one non-blocking look at its outstanding
// asynchronous requests. Returns true when a reply arrived.
func (p *Pane) Poll() bool {
	if p.kind == PaneText {
		return p.text.poll(p)
	}
	return false
}

// CursorPos maps the pane's cursor to absolute screen coordinates. In
// Command mode the cursor sits on the status row inside the typed
// line.
func (p *Pane) CursorPos(cont *PaneContainer) (int, int) {
	switch p.kind {
	case PaneText:
		tp := p.text
		if tp.mode.Kind == ModeCommand {
			_, pos := tp.mode.CommandLine()
			return cont.X + 1 + pos, cont.Y + cont.H - 1
		}
		dx, dy := tp.cursor.RealCursor()
		return cont.X + dx, cont.Y + dy
	case PanePopup:
		return p.popup.cursorPos(cont)
	}
	return cont.X, cont.Y
}

const defaultTabSize = 4

// TextPane is a buffer shown in a container, with its own cursor,
// modal state, jump history, and outstanding language requests.
type TextPane struct {
	buf    Buffer
	cursor Cursor
	mode   *Mode
	jumps  *JumpTable
	win    *Mailbox[WindowMsg]
	reg    *register
	syntax Syntax
	lang   LangClient

	tabSize int
	changed bool
	status  string // transient message shown until the next command
	search  string // last search term, for search_next/search_prev

	pendingCompletion <-chan []Completion
	pendingDefinition <-chan Location
	diagnostics       []Diagnostic
}

// draw renders the pane's content rows plus its status row into the
// layer. Every cell of the container is claimed, so stale content from
// a previous occupant cannot show through.
func (tp *TextPane) draw(cont *PaneContainer, layer *render.Layer) {
	rows := cont.H - 1
	if rows < 1 {
		rows = cont.H
	}
	gw := gutterWidth(tp.buf.LineCount())
	if gw+2 > cont.W {
		// No room for line numbers in a sliver pane.
		gw = 0
	}

	tp.cursor.NumberLineSize = gw
	tp.cursor.SetViewport(rows, cont.W)
	tp.cursor.Scroll(tp.buf, tp.tabSize)

	for row := 0; row < rows; row++ {
		tp.drawRow(row, cont, layer, gw)
	}
	if cont.H >= 2 {
		tp.drawStatus(cont, layer)
	}
}

func (tp *TextPane) drawRow(row int, cont *PaneContainer, layer *render.Layer, gw int) {
	y := cont.Y + row
	lineIdx := tp.cursor.RowOffset + row

	if lineIdx >= tp.buf.LineCount() {
		layer.Set(cont.X, y, '~', styleGutter)
		for i := 1; i < cont.W; i++ {
			layer.Set(cont.X+i, y, ' ', styleDefault)
		}
		return
	}

	if gw > 0 {
		// Gutter: right-aligned line number, one space of padding.
		num := strconv.Itoa(lineIdx + 1)
		gstyle := styleGutter
		if tp.hasDiagnostic(lineIdx) {
			gstyle = styleDiagnostic
		}
		pad := gw - 1 - len(num)
		for i := 0; i < pad; i++ {
			layer.Set(cont.X+i, y, ' ', gstyle)
		}
		layer.SetString(cont.X+pad, y, num, gstyle)
		layer.Set(cont.X+gw-1, y, ' ', gstyle)
	}

	line := tp.buf.Line(lineIdx)
	classes := tp.syntax.LineClasses(line)
	textW := cont.W - gw
	sx := cont.X + gw

	// Walk the line in visual columns, expanding tabs, skipping the
	// horizontal offset, stopping at the pane edge.
	col := tp.cursor.ColOffset
	vx, drawn := 0, 0
	for i, r := range []rune(line) {
		if drawn >= textW {
			break
		}
		var cls SyntaxClass
		if i < len(classes) {
			cls = classes[i]
		}
		st := classStyle(cls)

		if r == '\t' {
			cells := tp.tabSize - (vx % tp.tabSize)
			for j := 0; j < cells; j++ {
				if vx >= col && drawn < textW {
					layer.Set(sx+drawn, y, ' ', st)
					drawn++
				}
				vx++
			}
			continue
		}

		w := render.RuneWidth(r)
		if vx >= col {
			if drawn+w <= textW {
				layer.SetString(sx+drawn, y, string(r), st)
				drawn += w
			} else {
				// Wide rune split by the pane edge: blank the stub.
				layer.Set(sx+drawn, y, ' ', styleDefault)
				drawn++
			}
		}
		vx += w
	}
	for ; drawn < textW; drawn++ {
		layer.Set(sx+drawn, y, ' ', styleDefault)
	}
}

func (tp *TextPane) hasDiagnostic(line int) bool {
	for _, d := range tp.diagnostics {
		if d.Line == line {
			return true
		}
	}
	return false
}

// poll drains the pane's outstanding async requests, one non-blocking
// look each. Closed channels resolve to "no result" and are dropped.
func (tp *TextPane) poll(p *Pane) bool {
	got := false

	if tp.pendingCompletion != nil {
		select {
		case items, ok := <-tp.pendingCompletion:
			tp.pendingCompletion = nil
			if ok && len(items) > 0 {
				tp.openCompletionPopup(items)
			}
			got = true
		default:
		}
	}

	if tp.pendingDefinition != nil {
		select {
		case loc, ok := <-tp.pendingDefinition:
			tp.pendingDefinition = nil
			if ok {
				tp.gotoLocation(loc)
			}
			got = true
		default:
		}
	}

	if ch := tp.lang.Diagnostics(); ch != nil {
		select {
		case batch, ok := <-ch:
			if ok {
				tp.diagnostics = batch
				got = true
			}
		default:
		}
	}

	if got {
		tp.changed = true
	}
	return got
}

func (tp *TextPane) openCompletionPopup(items []Completion) {
	opts := make([]PopupOption, len(items))
	for i, c := range items {
		opts[i] = PopupOption{Label: c.Label, Command: "insert_text " + c.Insert}
	}
	tp.win.Send(WindowMsg{Kind: MsgOpenPopup, Popup: &PopupContent{
		Kind:    PopupDropDown,
		Options: opts,
	}})
}

func (tp *TextPane) gotoLocation(loc Location) {
	if loc.Path != "" && loc.Path != tp.buf.Name() {
		tp.win.Send(WindowMsg{Kind: MsgOpenFile, Arg: loc.Path})
		return
	}
	tp.jumps.Push(tp.cursor)
	tp.cursor.SetCursor(Where(loc.Col), Where(loc.Line), tp.buf)
	tp.cursor.RowOffset = loc.Line
	tp.cursor.Jumped = true
}

// gutterWidth is the digits of the largest line number plus a space.
func gutterWidth(lineCount int) int {
	digits := 1
	for lineCount >= 10 {
		lineCount /= 10
		digits++
	}
	return digits + 1
}
