package editor

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mwhitby/fresco/internal/buffer"
	"github.com/mwhitby/fresco/internal/render"
	"github.com/mwhitby/fresco/internal/term"
)

const editorMailboxCap = 16

// Editor owns the terminal, the compositor, and the window (tab) list.
// Everything runs on one goroutine: input is read blocking, messages
// are drained between keys, and exactly one frame is emitted per tick.
type Editor struct {
	term *term.Terminal
	comp *render.Compositor
	out  *render.OutputBuffer
	mail *Mailbox[EditorMsg]

	clip Clipboard
	lang LangClient

	windows  []*Window
	active   int
	tabLayer *render.Layer

	quit bool
}

// NewEditor opens one window per file, or a single empty window.
func NewEditor(t *term.Terminal, files []string, clip Clipboard, lang LangClient) (*Editor, error) {
	e := &Editor{
		term: t,
		comp: render.NewCompositor(t.Width(), t.Height()),
		out:  render.NewOutputBuffer(os.Stdout),
		mail: NewMailbox[EditorMsg](editorMailboxCap),
		clip: clip,
		lang: lang,
	}

	if len(files) == 0 {
		files = []string{""}
	}
	for _, f := range files {
		buf, err := e.openBuffer(f)
		if err != nil {
			return nil, err
		}
		e.windows = append(e.windows, e.newWindow(buf))
	}
	e.tabLayer = render.NewLayer(t.Width(), t.Height())
	e.layoutWindows()
	return e, nil
}

// openBuffer loads a file; a missing or empty path is a fresh unsaved
// buffer.
func (e *Editor) openBuffer(path string) (Buffer, error) {
	b := buffer.NewBuffer(path)
	if err := b.Load(); err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return b, nil
}

func (e *Editor) newWindow(buf Buffer) *Window {
	return NewWindow(e.term.Width(), e.term.Height(), e.tabBarRows(), buf,
		e.mail, e.clip, e.lang, e.openBuffer)
}

// tabBarRows is 1 when the tab bar is visible, 0 with a single window.
func (e *Editor) tabBarRows() int {
	if len(e.windows) > 1 {
		return 1
	}
	return 0
}

// layoutWindows re-bounds every window for the current terminal size
// and tab bar visibility.
func (e *Editor) layoutWindows() {
	y0 := e.tabBarRows()
	for _, w := range e.windows {
		w.Resize(e.term.Width(), e.term.Height(), y0)
	}
	e.tabLayer.Resize(e.term.Width(), e.term.Height())
	e.comp.Resize(e.term.Width(), e.term.Height())
}

// Run is the cooperative loop: drain messages, absorb a resize, draw a
// frame, then block for the next input event.
func (e *Editor) Run() error {
	for {
		e.drainMail()
		if e.quit {
			return nil
		}
		if len(e.windows) == 0 {
			return nil
		}

		select {
		case <-e.term.SigwinchChan():
			if e.term.Resize() {
				e.layoutWindows()
			}
		default:
		}

		if err := e.refresh(); err != nil {
			return err
		}

		ev, err := e.term.ReadEvent()
		if err != nil {
			return err
		}
		e.dispatch(ev)
	}
}

func (e *Editor) dispatch(ev term.InputEvent) {
	w := e.windows[e.active]
	switch ev.Type {
	case term.EventKey:
		w.ProcessKey(ev.Key)
	case term.EventMouse:
		m := ev.Mouse
		switch m.Button {
		case term.MouseWheelUp:
			w.Wheel(m.Col-1, m.Row-1, true)
		case term.MouseWheelDown:
			w.Wheel(m.Col-1, m.Row-1, false)
		case term.MouseLeft:
			if m.Press {
				w.Click(m.Col-1, m.Row-1)
			}
		}
	}
	w.HandleMessages()
}

func (e *Editor) drainMail() {
	for {
		msg, ok := e.mail.Recv()
		if !ok {
			return
		}
		switch msg.Kind {
		case MsgQuitAll:
			e.quit = true
			return
		case MsgNewWindow:
			buf, err := e.openBuffer(msg.Arg)
			if err != nil {
				continue
			}
			e.windows = append(e.windows, e.newWindow(buf))
			e.active = len(e.windows) - 1
			e.layoutWindows()
		case MsgCloseWindow:
			e.closeActiveWindow()
		case MsgNextWindow:
			e.switchWindow(+1)
		case MsgPrevWindow:
			e.switchWindow(-1)
		case MsgEditorOpenFile:
			e.windows[e.active].mail.Send(WindowMsg{Kind: MsgOpenFile, Arg: msg.Arg})
		}
	}
}

func (e *Editor) closeActiveWindow() {
	e.windows = append(e.windows[:e.active], e.windows[e.active+1:]...)
	if len(e.windows) == 0 {
		e.quit = true
		return
	}
	if e.active >= len(e.windows) {
		e.active = len(e.windows) - 1
	}
	e.layoutWindows()
	e.windows[e.active].Invalidate()
}

func (e *Editor) switchWindow(delta int) {
	if len(e.windows) < 2 {
		return
	}
	n := len(e.windows)
	e.active = ((e.active+delta)%n + n) % n
	e.windows[e.active].Invalidate()
}

// refresh draws one frame: the active window's layers, the tab bar on
// top, merged and diffed out to the terminal.
func (e *Editor) refresh() error {
	w := e.windows[e.active]
	w.HandleMessages()

	layers := w.Refresh()
	if e.tabBarRows() > 0 {
		e.drawTabs()
		layers = append(append([]*render.Layer{}, layers...), e.tabLayer)
	}

	e.out.HideCursor()
	rows := e.comp.Merge(layers)
	e.out.Draw(rows, e.term.Width(), e.term.Height())

	x, y := w.CursorPos()
	e.out.PlaceCursor(x, y)
	e.out.ShowCursor()
	return e.out.Flush()
}

// drawTabs renders the tab bar into its own topmost layer.
func (e *Editor) drawTabs() {
	x := 0
	for i, w := range e.windows {
		st := styleStatus
		if i == e.active {
			st = styleDefault
		}
		label := " " + strconv.Itoa(i+1) + ":" + w.Title()
		if w.Dirty() {
			label += " [+]"
		}
		label += " "
		x += e.tabLayer.SetString(x, 0, label, st)
		if x >= e.term.Width() {
			break
		}
	}
	for ; x < e.term.Width(); x++ {
		e.tabLayer.Set(x, 0, ' ', styleStatus)
	}
}
