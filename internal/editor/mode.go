package editor

import (
	"strconv"
	"strings"
	"time"

	"github.com/mwhitby/fresco/internal/term"
)

// ModeKind identifies the modal input state.
type ModeKind int

const (
	ModeNormal ModeKind = iota
	ModeInsert
	ModeCommand
	ModePrompt
	ModeDropDown
	ModeInfo
)

func (k ModeKind) String() string {
	switch k {
	case ModeNormal:
		return "Normal"
	case ModeInsert:
		return "Insert"
	case ModeCommand:
		return "Command"
	case ModePrompt:
		return "Prompt"
	case ModeDropDown:
		return "DropDown"
	case ModeInfo:
		return "Info"
	}
	return "?"
}

// ModeKindFromName parses a mode name as used by the `mode` command.
func ModeKindFromName(name string) (ModeKind, bool) {
	switch name {
	case "Normal":
		return ModeNormal, true
	case "Insert":
		return ModeInsert, true
	case "Command":
		return ModeCommand, true
	case "Prompt":
		return ModePrompt, true
	case "DropDown":
		return ModeDropDown, true
	case "Info":
		return ModeInfo, true
	}
	return ModeNormal, false
}

// chordTimeout is how long an in-progress key chord survives without a
// follow-up keypress.
const chordTimeout = time.Second

// countCap bounds the repeat-count accumulator to 4 digits.
const countCap = 4

// Binding maps one key chord to a command string.
type Binding struct {
	Chord   []term.Key
	Command string
}

// Mode is the modal input state machine. It holds the keybinding
// tables, the in-progress chord, and the line editor used by Command
// mode. It owns no pane state: the pane is an explicit parameter of
// every call.
type Mode struct {
	Kind ModeKind

	keymaps map[ModeKind][]Binding
	timeout time.Duration
	now     func() time.Time

	chord   []term.Key
	lastKey time.Time

	count []rune // Normal-mode repeat count accumulator

	// Command-mode line editor; its cursor is independent of the
	// buffer cursor.
	line    []rune
	linePos int
}

func NewMode(kind ModeKind, keymaps map[ModeKind][]Binding) *Mode {
	return &Mode{
		Kind:    kind,
		keymaps: keymaps,
		timeout: chordTimeout,
		now:     time.Now,
	}
}

// ChangeMode switches the modal state. Only command execution calls
// this — transitions never happen implicitly.
func (m *Mode) ChangeMode(kind ModeKind) {
	m.Kind = kind
	m.chord = nil
	m.count = nil
	if kind == ModeCommand || kind == ModePrompt {
		m.line = nil
		m.linePos = 0
	}
}

// PendingChord renders the in-progress chord and count for the status
// bar, e.g. "3g".
func (m *Mode) PendingChord() string {
	var b strings.Builder
	b.WriteString(string(m.count))
	for _, k := range m.chord {
		if k.Type == term.KeyRune {
			b.WriteRune(k.Rune)
		}
	}
	return b.String()
}

// Prefill seeds the Command/Prompt line editor, cursor at the end.
func (m *Mode) Prefill(s string) {
	m.line = []rune(s)
	m.linePos = len(m.line)
}

// CommandLine returns the Command/Prompt line and its edit position.
func (m *Mode) CommandLine() (string, int) {
	return string(m.line), m.linePos
}

// ProcessKey consumes one keypress for the owning pane. The pane and
// its container are explicit parameters; Mode never retains either.
func (m *Mode) ProcessKey(k term.Key, p *Pane, cont *PaneContainer) error {
	m.refreshChord()

	switch m.Kind {
	case ModeNormal:
		return m.normalKey(k, p, cont)
	case ModeInsert:
		return m.insertKey(k, p, cont)
	case ModeCommand:
		return m.commandKey(k, p, cont)
	case ModePrompt:
		return m.promptKey(k, p, cont)
	case ModeDropDown:
		return m.dropdownKey(k, p, cont)
	case ModeInfo:
		return m.infoKey(k, p, cont)
	}
	return nil
}

// refreshChord flushes a stale chord. The buffer never carries state
// across an unrelated keypress indefinitely: past the timeout it is
// discarded before the new key is considered.
func (m *Mode) refreshChord() {
	if len(m.chord) > 0 && m.now().Sub(m.lastKey) > m.timeout {
		m.chord = nil
	}
}

func (m *Mode) normalKey(k term.Key, p *Pane, cont *PaneContainer) error {
	if k.Type == term.KeyEscape {
		m.chord = nil
		m.count = nil
		return nil
	}

	// Digit fast path: accumulate a repeat count. A leading 0 is not a
	// count (it is bindable, conventionally to line_start).
	if len(m.chord) == 0 && k.Type == term.KeyRune && k.Rune >= '0' && k.Rune <= '9' {
		if k.Rune != '0' || len(m.count) > 0 {
			if len(m.count) < countCap {
				m.count = append(m.count, k.Rune)
			}
			m.lastKey = m.now()
			return nil
		}
	}

	return m.matchChord(k, p, cont)
}

func (m *Mode) insertKey(k term.Key, p *Pane, cont *PaneContainer) error {
	// Editing fast paths come before the chord matcher.
	switch k.Type {
	case term.KeyEscape:
		m.chord = nil
		return p.RunCommand("mode Normal", cont)
	case term.KeyEnter:
		return p.RunCommand("insert_newline", cont)
	case term.KeyTab:
		return p.RunCommand("insert_tab", cont)
	case term.KeyBackspace:
		return p.RunCommand("delete_back", cont)
	case term.KeyDelete:
		return p.RunCommand("delete_forward", cont)
	case term.KeyRune:
		return p.RunCommand("insert_text "+string(k.Rune), cont)
	}
	return m.matchChord(k, p, cont)
}

func (m *Mode) commandKey(k term.Key, p *Pane, cont *PaneContainer) error {
	switch k.Type {
	case term.KeyEscape:
		m.line = nil
		m.linePos = 0
		m.ChangeMode(ModeNormal)
		return nil
	case term.KeyEnter:
		cmd := strings.TrimSpace(string(m.line))
		m.line = nil
		m.linePos = 0
		var err error
		if cmd != "" {
			err = p.RunCommand(cmd, cont)
		}
		// Return to Normal unless the command itself moved the mode
		// somewhere else.
		if m.Kind == ModeCommand {
			m.ChangeMode(ModeNormal)
		}
		return err
	case term.KeyBackspace:
		if len(m.line) == 0 {
			m.ChangeMode(ModeNormal)
			return nil
		}
		if m.linePos > 0 {
			m.line = append(m.line[:m.linePos-1], m.line[m.linePos:]...)
			m.linePos--
		}
	case term.KeyDelete:
		if m.linePos < len(m.line) {
			m.line = append(m.line[:m.linePos], m.line[m.linePos+1:]...)
		}
	case term.KeyLeft:
		if m.linePos > 0 {
			m.linePos--
		}
	case term.KeyRight:
		if m.linePos < len(m.line) {
			m.linePos++
		}
	case term.KeyHome:
		m.linePos = 0
	case term.KeyEnd:
		m.linePos = len(m.line)
	case term.KeyRune:
		m.line = append(m.line[:m.linePos], append([]rune{k.Rune}, m.line[m.linePos:]...)...)
		m.linePos++
	}
	return nil
}

// promptKey drives a popup's single-line input. It shares the line
// editor with Command mode but submits to the popup.
func (m *Mode) promptKey(k term.Key, p *Pane, cont *PaneContainer) error {
	switch k.Type {
	case term.KeyEscape:
		m.line = nil
		m.linePos = 0
		return p.RunCommand("popup_cancel", cont)
	case term.KeyEnter:
		text := string(m.line)
		m.line = nil
		m.linePos = 0
		return p.RunCommand("popup_submit "+text, cont)
	case term.KeyBackspace:
		if m.linePos > 0 {
			m.line = append(m.line[:m.linePos-1], m.line[m.linePos:]...)
			m.linePos--
		}
	case term.KeyLeft:
		if m.linePos > 0 {
			m.linePos--
		}
	case term.KeyRight:
		if m.linePos < len(m.line) {
			m.linePos++
		}
	case term.KeyRune:
		m.line = append(m.line[:m.linePos], append([]rune{k.Rune}, m.line[m.linePos:]...)...)
		m.linePos++
	}
	return nil
}

func (m *Mode) dropdownKey(k term.Key, p *Pane, cont *PaneContainer) error {
	switch {
	case k.Type == term.KeyEscape:
		return p.RunCommand("popup_cancel", cont)
	case k.Type == term.KeyEnter:
		return p.RunCommand("popup_select", cont)
	case k.Type == term.KeyUp:
		return p.RunCommand("popup_up", cont)
	case k.Type == term.KeyDown:
		return p.RunCommand("popup_down", cont)
	case k.Type == term.KeyRune && k.Rune == 'k':
		return p.RunCommand("popup_up", cont)
	case k.Type == term.KeyRune && k.Rune == 'j':
		return p.RunCommand("popup_down", cont)
	case k.Type == term.KeyRune && k.Rune == ' ':
		return p.RunCommand("popup_toggle", cont)
	}
	return nil
}

func (m *Mode) infoKey(k term.Key, p *Pane, cont *PaneContainer) error {
	switch {
	case k.Type == term.KeyEscape, k.Type == term.KeyEnter:
		return p.RunCommand("popup_cancel", cont)
	case k.Type == term.KeyRune && k.Rune == 'q':
		return p.RunCommand("popup_cancel", cont)
	}
	return nil
}

// matchChord appends the key to the chord buffer and resolves it
// against the keybinding table. An exact match executes and flushes; a
// strict prefix of some binding is retained for the next keypress so
// multi-key chords can complete (the timeout reclaims abandoned
// prefixes); anything else flushes immediately.
func (m *Mode) matchChord(k term.Key, p *Pane, cont *PaneContainer) error {
	m.chord = append(m.chord, k)
	m.lastKey = m.now()

	cmd, exact, prefix := m.lookup()
	if exact {
		m.chord = nil
		return m.executeCommand(cmd, p, cont)
	}
	if !prefix {
		m.chord = nil
	}
	return nil
}

// lookup resolves the chord buffer: an exact binding, or whether the
// buffer is a strict prefix of one.
func (m *Mode) lookup() (cmd string, exact, prefix bool) {
	for _, b := range m.keymaps[m.Kind] {
		if chordsEqual(b.Chord, m.chord) {
			return b.Command, true, false
		}
		if len(b.Chord) > len(m.chord) && chordsEqual(b.Chord[:len(m.chord)], m.chord) {
			prefix = true
		}
	}
	return "", false, prefix
}

func chordsEqual(a, b []term.Key) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// executeCommand applies the pending repeat count to the bound command
// and dispatches it to the pane.
func (m *Mode) executeCommand(cmd string, p *Pane, cont *PaneContainer) error {
	repeat := m.takeCount()
	if repeat > 1 {
		if scaled, ok := scaleMove(cmd, repeat); ok {
			return p.RunCommand(scaled, cont)
		}
		if repeatable(cmd) {
			for i := 0; i < repeat; i++ {
				if err := p.RunCommand(cmd, cont); err != nil {
					return err
				}
			}
			return nil
		}
	}
	return p.RunCommand(cmd, cont)
}

// takeCount consumes the accumulated repeat count, defaulting to 1.
func (m *Mode) takeCount() int {
	if len(m.count) == 0 {
		return 1
	}
	n, err := strconv.Atoi(string(m.count))
	m.count = nil
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// scaleMove multiplies the amount of a movement command by the repeat
// count: count 3 over "move down 1" issues "move down 3".
func scaleMove(cmd string, repeat int) (string, bool) {
	fields := strings.Fields(cmd)
	if len(fields) < 2 || fields[0] != "move" {
		return "", false
	}
	amount := 1
	if len(fields) >= 3 {
		n, err := strconv.Atoi(fields[2])
		if err != nil {
			return "", false
		}
		amount = n
	}
	return "move " + fields[1] + " " + strconv.Itoa(amount*repeat), true
}

// repeatable commands re-run once per count unit.
func repeatable(cmd string) bool {
	switch cmd {
	case "delete_line", "paste_below", "paste_above", "undo", "redo":
		return true
	}
	return false
}
