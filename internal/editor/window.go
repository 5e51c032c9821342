package editor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mwhitby/fresco/internal/render"
	"github.com/mwhitby/fresco/internal/term"
)

// windowMailboxCap bounds how many pane messages can queue between
// ticks. The loop drains the mailbox every tick, so a burst this large
// means something is looping; dropping is safer than growing.
const windowMailboxCap = 64

// Window is one tab: a set of panes tiling its area, plus a stack of
// popups. Containers use window-local coordinates; the vertical offset
// of the tab bar is applied only when drawing and placing the cursor.
type Window struct {
	panes  []*Pane
	conts  []*PaneContainer
	active int

	popups     []*Pane
	popupConts []*PaneContainer
	layers     []*render.Layer // layers[0] is the base, popups above

	w, h int // window-local area
	y0   int // screen row of the window's first line

	mail   *Mailbox[WindowMsg]
	editor *Mailbox[EditorMsg]

	clip Clipboard
	lang LangClient
	open func(path string) (Buffer, error)

	force bool // full redraw pending (resize, tab switch, layout change)
}

func NewWindow(termW, termH, y0 int, buf Buffer, editorMail *Mailbox[EditorMsg],
	clip Clipboard, lang LangClient, open func(string) (Buffer, error)) *Window {

	w := &Window{
		w:      termW,
		h:      termH - y0,
		y0:     y0,
		mail:   NewMailbox[WindowMsg](windowMailboxCap),
		editor: editorMail,
		clip:   clip,
		lang:   lang,
		open:   open,
		force:  true,
	}
	w.layers = []*render.Layer{render.NewLayer(termW, termH)}
	w.panes = []*Pane{NewTextPane(buf, w.mail, clip, lang)}
	w.conts = []*PaneContainer{NewPaneContainer(0, 0, w.w, w.h, w.w, w.h)}
	return w
}

// Title names the window for the tab bar.
func (w *Window) Title() string {
	if buf := w.panes[w.active].Buffer(); buf != nil && buf.Name() != "" {
		return buf.Name()
	}
	return "[no name]"
}

// Dirty reports whether any pane's buffer holds unsaved changes.
func (w *Window) Dirty() bool {
	for _, p := range w.panes {
		if buf := p.Buffer(); buf != nil && buf.IsDirty() {
			return true
		}
	}
	return false
}

// ForceRedraw marks every pane and the frame for a full repaint.
func (w *Window) ForceRedraw() {
	w.force = true
	for _, p := range w.panes {
		p.ForceChange()
	}
	for _, p := range w.popups {
		p.ForceChange()
	}
}

// Invalidate drops all drawn layer content so the next refresh
// repaints every cell. Needed when another window's frame is on
// screen: identical re-draws are normally suppressed.
func (w *Window) Invalidate() {
	for _, l := range w.layers {
		l.Clear()
	}
	w.ForceRedraw()
}

// ProcessKey routes a keypress: the topmost popup is modal, otherwise
// the active pane gets it.
func (w *Window) ProcessKey(k term.Key) {
	if n := len(w.popups); n > 0 {
		w.popups[n-1].ProcessKey(k, w.popupConts[n-1])
		return
	}
	w.panes[w.active].ProcessKey(k, w.conts[w.active])
}

// Click focuses the pane under the screen position and moves its
// cursor to the clicked cell.
func (w *Window) Click(col, row int) {
	if len(w.popups) > 0 {
		return
	}
	x, y := col, row-w.y0
	for i, c := range w.conts {
		if !c.Contains(x, y) {
			continue
		}
		w.active = i
		if tp := w.panes[i].text; tp != nil {
			line := tp.cursor.RowOffset + (y - c.Y)
			col := tp.cursor.ColOffset + (x - c.X - tp.cursor.NumberLineSize)
			if col < 0 {
				col = 0
			}
			tp.cursor.SetCursor(Where(col), Where(line), tp.buf)
			tp.changed = true
		}
		return
	}
}

// Wheel scrolls the pane under the screen position.
func (w *Window) Wheel(col, row int, up bool) {
	if len(w.popups) > 0 {
		return
	}
	x, y := col, row-w.y0
	for i, c := range w.conts {
		if !c.Contains(x, y) {
			continue
		}
		if tp := w.panes[i].text; tp != nil {
			if up {
				tp.cursor.MoveCursor(DirUp, 3, tp.buf)
			} else {
				tp.cursor.MoveCursor(DirDown, 3, tp.buf)
			}
			tp.changed = true
		}
		return
	}
}

// HandleMessages drains the window mailbox, applying pane lifecycle
// requests. Called once per tick before drawing.
func (w *Window) HandleMessages() {
	for {
		msg, ok := w.mail.Recv()
		if !ok {
			return
		}
		w.handle(msg)
	}
}

func (w *Window) handle(msg WindowMsg) {
	switch msg.Kind {
	case MsgHorizontalSplit:
		w.split(false)
	case MsgVerticalSplit:
		w.split(true)
	case MsgClosePane:
		w.closeActive()
	case MsgFocusLeft:
		w.focus(DirLeft)
	case MsgFocusRight:
		w.focus(DirRight)
	case MsgFocusUp:
		w.focus(DirUp)
	case MsgFocusDown:
		w.focus(DirDown)
	case MsgOpenFile:
		w.openFile(msg.Arg)
	case MsgOpenPopup:
		w.openPopup(msg.Popup)
	case MsgClosePopup:
		w.closePopup(msg.Arg)
	case MsgStatus:
		w.setStatus(msg.Arg)
	case MsgForward:
		w.forward(msg.Arg)
	}
}

// forward escalates a pane command that only the editor can satisfy.
func (w *Window) forward(cmd string) {
	name, arg, _ := strings.Cut(cmd, " ")
	switch name {
	case "quit_all":
		w.editor.Send(EditorMsg{Kind: MsgQuitAll})
	case "tab_new":
		w.editor.Send(EditorMsg{Kind: MsgNewWindow, Arg: arg})
	case "tab_next":
		w.editor.Send(EditorMsg{Kind: MsgNextWindow})
	case "tab_prev":
		w.editor.Send(EditorMsg{Kind: MsgPrevWindow})
	}
}

// split bisects the active container, the new sibling sharing the
// buffer. Vertical splits divide width, horizontal splits divide
// height.
func (w *Window) split(vertical bool) {
	cont := w.conts[w.active]

	var a, b *PaneContainer
	if vertical {
		half := cont.W / 2
		if half < minPaneWidth || cont.W-half < minPaneWidth {
			w.setStatus("pane too small to split")
			return
		}
		a = NewPaneContainer(cont.X, cont.Y, cont.W-half, cont.H, cont.MaxW, cont.MaxH)
		b = NewPaneContainer(cont.X+cont.W-half, cont.Y, half, cont.H, cont.MaxW, cont.MaxH)
	} else {
		half := cont.H / 2
		if half < minPaneHeight || cont.H-half < minPaneHeight {
			w.setStatus("pane too small to split")
			return
		}
		a = NewPaneContainer(cont.X, cont.Y, cont.W, cont.H-half, cont.MaxW, cont.MaxH)
		b = NewPaneContainer(cont.X, cont.Y+cont.H-half, cont.W, half, cont.MaxW, cont.MaxH)
	}

	buf := w.panes[w.active].Buffer()
	if buf == nil {
		return
	}
	sibling := NewTextPane(buf, w.mail, w.clip, w.lang)

	w.conts[w.active] = a
	w.conts = append(w.conts, b)
	w.panes = append(w.panes, sibling)
	w.active = len(w.panes) - 1
	w.ForceRedraw()
}

// closeActive removes the active pane and gives its area back to the
// neighbours. The last pane escalates to the editor instead.
func (w *Window) closeActive() {
	if len(w.panes) == 1 {
		w.editor.Send(EditorMsg{Kind: MsgCloseWindow})
		return
	}

	closed := w.conts[w.active]
	w.panes = append(w.panes[:w.active], w.panes[w.active+1:]...)
	w.conts = append(w.conts[:w.active], w.conts[w.active+1:]...)

	combined := false
	for _, c := range w.conts {
		if c.Combine(closed) {
			combined = true
			break
		}
	}
	if !combined {
		w.expandEdge(closed)
	}

	if w.active >= len(w.panes) {
		w.active = len(w.panes) - 1
	}
	w.ForceRedraw()
}

// expandEdge reclaims a closed container's area when no single
// neighbour lines up with it: a run of containers flush against one of
// its edges, together spanning it exactly, each grow into the space.
func (w *Window) expandEdge(closed *PaneContainer) {
	x1, y1, x2, y2 := closed.Corners()

	type edge struct {
		match  func(c *PaneContainer) bool
		along  func(c *PaneContainer) (lo, hi int)
		span   [2]int
		expand func(c *PaneContainer)
	}
	edges := []edge{
		{ // neighbours on the right grow left
			match:  func(c *PaneContainer) bool { return c.X == x2 && c.Y >= y1 && c.Y+c.H <= y2 },
			along:  func(c *PaneContainer) (int, int) { return c.Y, c.Y + c.H },
			span:   [2]int{y1, y2},
			expand: func(c *PaneContainer) { c.X = x1; c.W += closed.W },
		},
		{ // neighbours on the left grow right
			match:  func(c *PaneContainer) bool { return c.X+c.W == x1 && c.Y >= y1 && c.Y+c.H <= y2 },
			along:  func(c *PaneContainer) (int, int) { return c.Y, c.Y + c.H },
			span:   [2]int{y1, y2},
			expand: func(c *PaneContainer) { c.W += closed.W },
		},
		{ // neighbours below grow up
			match:  func(c *PaneContainer) bool { return c.Y == y2 && c.X >= x1 && c.X+c.W <= x2 },
			along:  func(c *PaneContainer) (int, int) { return c.X, c.X + c.W },
			span:   [2]int{x1, x2},
			expand: func(c *PaneContainer) { c.Y = y1; c.H += closed.H },
		},
		{ // neighbours above grow down
			match:  func(c *PaneContainer) bool { return c.Y+c.H == y1 && c.X >= x1 && c.X+c.W <= x2 },
			along:  func(c *PaneContainer) (int, int) { return c.X, c.X + c.W },
			span:   [2]int{x1, x2},
			expand: func(c *PaneContainer) { c.H += closed.H },
		},
	}

	for _, e := range edges {
		var run []*PaneContainer
		for _, c := range w.conts {
			if e.match(c) {
				run = append(run, c)
			}
		}
		if len(run) == 0 {
			continue
		}
		sort.Slice(run, func(i, j int) bool {
			a, _ := e.along(run[i])
			b, _ := e.along(run[j])
			return a < b
		})
		// The run must tile the edge exactly, no gaps or overhang.
		at := e.span[0]
		ok := true
		for _, c := range run {
			lo, hi := e.along(c)
			if lo != at {
				ok = false
				break
			}
			at = hi
		}
		if !ok || at != e.span[1] {
			continue
		}
		for _, c := range run {
			e.expand(c)
		}
		return
	}
}

// focus moves the active pane geometrically: step one cell past the
// active container's edge and take whichever container is there.
func (w *Window) focus(dir Direction) {
	cont := w.conts[w.active]
	x1, y1, x2, y2 := cont.Corners()
	cx := (x1 + x2) / 2
	cy := (y1 + y2) / 2

	var px, py int
	switch dir {
	case DirLeft:
		px, py = x1-1, cy
	case DirRight:
		px, py = x2, cy
	case DirUp:
		px, py = cx, y1-1
	case DirDown:
		px, py = cx, y2
	}

	for i, c := range w.conts {
		if c.Contains(px, py) {
			w.active = i
			w.panes[i].ForceChange()
			return
		}
	}
}

func (w *Window) openFile(path string) {
	buf, err := w.open(path)
	if err != nil {
		w.setStatus(fmt.Sprintf("cannot open %q: %v", path, err))
		return
	}
	w.panes[w.active] = NewTextPane(buf, w.mail, w.clip, w.lang)
}

func (w *Window) openPopup(content *PopupContent) {
	if content == nil {
		w.setStatus("popup request with no content")
		return
	}
	p, err := NewPopupPane(content, w.mail)
	if err != nil {
		w.setStatus(err.Error())
		return
	}

	pw, ph := p.popup.Size(w.w, w.h)
	cont := NewPaneContainer((w.w-pw)/2, (w.h-ph)/2, pw, ph, w.w, w.h)

	w.popups = append(w.popups, p)
	w.popupConts = append(w.popupConts, cont)
	w.layers = append(w.layers, render.NewLayer(w.w, w.h+w.y0))
}

// closePopup pops the top popup and runs its result commands, one per
// line, on the pane it covered. The layer below is re-flagged so the
// hidden cells repaint.
func (w *Window) closePopup(commands string) {
	n := len(w.popups)
	if n == 0 {
		return
	}
	top := w.layers[len(w.layers)-1]
	w.popups = w.popups[:n-1]
	w.popupConts = w.popupConts[:n-1]
	w.layers = w.layers[:len(w.layers)-1]
	w.layers[len(w.layers)-1].TouchUnder(top)

	if commands == "" {
		return
	}
	pane := w.panes[w.active]
	cont := w.conts[w.active]
	for _, cmd := range splitLines(commands) {
		if err := pane.RunCommand(cmd, cont); err != nil {
			w.setStatus(err.Error())
			return
		}
	}
}

func (w *Window) setStatus(msg string) {
	if tp := w.panes[w.active].text; tp != nil {
		tp.status = msg
		tp.changed = true
	}
}

// Refresh polls async replies, redraws what changed, and returns the
// window's layer stack bottom-up for the compositor.
func (w *Window) Refresh() []*render.Layer {
	for i, p := range w.panes {
		p.Poll()
		if p.Changed() || w.force {
			sc := *w.conts[i]
			sc.Y += w.y0
			p.Draw(&sc, w.layers[0])
			p.ResetChanged()
		}
	}
	for i, p := range w.popups {
		if p.Changed() || w.force {
			sc := *w.popupConts[i]
			sc.Y += w.y0
			p.Draw(&sc, w.layers[i+1])
			p.ResetChanged()
		}
	}
	w.force = false
	return w.layers
}

// CursorPos returns the screen position of the focused cursor: the top
// popup's when one is open, the active pane's otherwise.
func (w *Window) CursorPos() (int, int) {
	if n := len(w.popups); n > 0 {
		sc := *w.popupConts[n-1]
		sc.Y += w.y0
		return w.popups[n-1].CursorPos(&sc)
	}
	sc := *w.conts[w.active]
	sc.Y += w.y0
	return w.panes[w.active].CursorPos(&sc)
}

// Resize rescales every container into the new area and rebuilds the
// layers (layers drop content on resize, so everything repaints).
func (w *Window) Resize(termW, termH, y0 int) {
	w.y0 = y0
	newW, newH := termW, termH-y0
	for _, c := range w.conts {
		c.Resize(newW, newH)
	}
	w.w, w.h = newW, newH
	for _, l := range w.layers {
		l.Resize(termW, termH)
	}
	// Recenter popups.
	for i, p := range w.popups {
		pw, ph := p.popup.Size(w.w, w.h)
		w.popupConts[i] = NewPaneContainer((w.w-pw)/2, (w.h-ph)/2, pw, ph, w.w, w.h)
	}
	w.ForceRedraw()
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
