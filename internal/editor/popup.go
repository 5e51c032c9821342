package editor

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/mwhitby/fresco/internal/render"
)

// PopupKind discriminates popup content.
type PopupKind int

const (
	PopupInfo PopupKind = iota
	PopupPrompt
	PopupButtons
	PopupCheckboxes
	PopupDropDown
)

// PopupOption is one selectable entry; its command runs on the pane
// under the popup when chosen.
type PopupOption struct {
	Label   string
	Command string
}

// PopupContent describes a popup. Which fields are meaningful depends
// on Kind; NewPopupPane rejects mismatched content.
type PopupContent struct {
	Kind    PopupKind
	Title   string
	Text    string // Info body
	Prompt  string // Prompt label
	Submit  string // Prompt command prefix; typed text is appended
	Options []PopupOption
	Checked []bool // Checkboxes initial state
}

// PopupPane is a popup overlaying a text pane. It owns its selection
// state and a modal input handler, and reports its result to the
// window as a close message carrying a command.
type PopupPane struct {
	content *PopupContent
	mode    *Mode
	win     *Mailbox[WindowMsg]
	sel     int
	checked []bool
	changed bool
}

// NewPopupPane validates the content against its kind. Mismatched
// content is an error, never a panic: the popup request may come from
// user-reachable paths.
func NewPopupPane(content *PopupContent, win *Mailbox[WindowMsg]) (*Pane, error) {
	pp := &PopupPane{content: content, win: win, changed: true}

	switch content.Kind {
	case PopupInfo:
		if content.Text == "" {
			return nil, fmt.Errorf("info popup with no text")
		}
		pp.mode = NewMode(ModeInfo, nil)
	case PopupPrompt:
		if content.Submit == "" {
			return nil, fmt.Errorf("prompt popup with no submit command")
		}
		pp.mode = NewMode(ModePrompt, nil)
	case PopupButtons, PopupDropDown:
		if len(content.Options) == 0 {
			return nil, fmt.Errorf("selection popup with no options")
		}
		pp.mode = NewMode(ModeDropDown, nil)
	case PopupCheckboxes:
		if len(content.Options) == 0 {
			return nil, fmt.Errorf("checkbox popup with no options")
		}
		if content.Checked != nil && len(content.Checked) != len(content.Options) {
			return nil, fmt.Errorf("checkbox popup: %d options, %d checked states",
				len(content.Options), len(content.Checked))
		}
		pp.mode = NewMode(ModeDropDown, nil)
		pp.checked = make([]bool, len(content.Options))
		copy(pp.checked, content.Checked)
	default:
		return nil, fmt.Errorf("unknown popup kind %d", content.Kind)
	}

	return &Pane{kind: PanePopup, popup: pp}, nil
}

// runCommand handles the popup command vocabulary issued by the modal
// handlers.
func (pp *PopupPane) runCommand(cmd string) error {
	name, arg, _ := strings.Cut(cmd, " ")
	switch name {
	case "popup_cancel":
		pp.win.Send(WindowMsg{Kind: MsgClosePopup})
	case "popup_up":
		if pp.sel > 0 {
			pp.sel--
		} else {
			pp.sel = len(pp.content.Options) - 1
		}
		pp.changed = true
	case "popup_down":
		pp.sel++
		if pp.sel >= len(pp.content.Options) {
			pp.sel = 0
		}
		pp.changed = true
	case "popup_toggle":
		if pp.content.Kind == PopupCheckboxes && pp.sel < len(pp.checked) {
			pp.checked[pp.sel] = !pp.checked[pp.sel]
			pp.changed = true
		}
	case "popup_select":
		switch pp.content.Kind {
		case PopupButtons, PopupDropDown:
			pp.win.Send(WindowMsg{Kind: MsgClosePopup, Arg: pp.content.Options[pp.sel].Command})
		case PopupCheckboxes:
			// Enter confirms: run the command of every checked option.
			var cmds []string
			for i, on := range pp.checked {
				if on {
					cmds = append(cmds, pp.content.Options[i].Command)
				}
			}
			pp.win.Send(WindowMsg{Kind: MsgClosePopup, Arg: strings.Join(cmds, "\n")})
		default:
			pp.win.Send(WindowMsg{Kind: MsgClosePopup})
		}
	case "popup_submit":
		pp.win.Send(WindowMsg{Kind: MsgClosePopup, Arg: pp.content.Submit + " " + arg})
	default:
		return fmt.Errorf("unknown popup command %q", name)
	}
	return nil
}

// Size computes the popup box for the window to place, bounded by the
// screen.
func (pp *PopupPane) Size(maxW, maxH int) (int, int) {
	w := 0
	for _, o := range pp.content.Options {
		if n := len([]rune(o.Label)) + 4; n > w {
			w = n
		}
	}
	if n := len([]rune(pp.content.Title)) + 4; n > w {
		w = n
	}
	switch pp.content.Kind {
	case PopupInfo:
		if w < 40 {
			w = 40
		}
	case PopupPrompt:
		if n := len([]rune(pp.content.Prompt)) + 24; n > w {
			w = n
		}
	}
	if w > maxW-2 {
		w = maxW - 2
	}
	if w < 4 {
		w = 4
	}

	h := 2 // title + padding
	switch pp.content.Kind {
	case PopupInfo:
		h += len(strings.Split(wordwrap.String(pp.content.Text, w-4), "\n"))
	case PopupPrompt:
		h += 1
	default:
		h += len(pp.content.Options)
	}
	if h > maxH-2 {
		h = maxH - 2
	}
	if h < 3 {
		h = 3
	}
	return w, h
}

func (pp *PopupPane) draw(cont *PaneContainer, layer *render.Layer) {
	// Claim the whole box first so stale cells never show through.
	for y := 0; y < cont.H; y++ {
		for x := 0; x < cont.W; x++ {
			layer.Set(cont.X+x, cont.Y+y, ' ', stylePopup)
		}
	}

	if pp.content.Title != "" {
		layer.SetString(cont.X+2, cont.Y, pp.content.Title, stylePopupSel)
	}

	switch pp.content.Kind {
	case PopupInfo:
		wrapped := strings.Split(wordwrap.String(pp.content.Text, cont.W-4), "\n")
		for i, line := range wrapped {
			if i+1 >= cont.H {
				break
			}
			layer.SetString(cont.X+2, cont.Y+1+i, line, stylePopup)
		}
	case PopupPrompt:
		line, _ := pp.mode.CommandLine()
		layer.SetString(cont.X+2, cont.Y+1, pp.content.Prompt+" "+line, stylePopup)
	default:
		for i, o := range pp.content.Options {
			if i+1 >= cont.H {
				break
			}
			st := stylePopup
			if i == pp.sel {
				st = stylePopupSel
			}
			label := o.Label
			if pp.content.Kind == PopupCheckboxes {
				mark := "[ ] "
				if pp.checked[i] {
					mark = "[x] "
				}
				label = mark + label
			}
			layer.SetString(cont.X+2, cont.Y+1+i, label, st)
		}
	}
}

func (pp *PopupPane) cursorPos(cont *PaneContainer) (int, int) {
	if pp.content.Kind == PopupPrompt {
		_, pos := pp.mode.CommandLine()
		return cont.X + 2 + len([]rune(pp.content.Prompt)) + 1 + pos, cont.Y + 1
	}
	y := cont.Y + 1 + pp.sel
	if y >= cont.Y+cont.H {
		y = cont.Y + cont.H - 1
	}
	return cont.X + 1, y
}
