package editor

import (
	"strings"

	"github.com/mwhitby/fresco/internal/term"
)

// ParseChord turns a space-separated chord description into keys.
// Plain tokens are single runes; angle-bracket tokens name special
// keys ("<esc>", "<cr>", "<space>", "<c-r>", "<up>").
func ParseChord(s string) []term.Key {
	var chord []term.Key
	for _, tok := range strings.Fields(s) {
		chord = append(chord, parseToken(tok))
	}
	return chord
}

func parseToken(tok string) term.Key {
	if strings.HasPrefix(tok, "<") && strings.HasSuffix(tok, ">") {
		name := strings.ToLower(tok[1 : len(tok)-1])
		if strings.HasPrefix(name, "c-") && len(name) == 3 {
			return term.Ctrl(rune(name[2]))
		}
		switch name {
		case "space":
			return term.Rn(' ')
		case "esc":
			return term.Key{Type: term.KeyEscape}
		case "cr":
			return term.Key{Type: term.KeyEnter}
		case "tab":
			return term.Key{Type: term.KeyTab}
		case "bs":
			return term.Key{Type: term.KeyBackspace}
		case "del":
			return term.Key{Type: term.KeyDelete}
		case "up":
			return term.Key{Type: term.KeyUp}
		case "down":
			return term.Key{Type: term.KeyDown}
		case "left":
			return term.Key{Type: term.KeyLeft}
		case "right":
			return term.Key{Type: term.KeyRight}
		case "home":
			return term.Key{Type: term.KeyHome}
		case "end":
			return term.Key{Type: term.KeyEnd}
		case "pgup":
			return term.Key{Type: term.KeyPgUp}
		case "pgdn":
			return term.Key{Type: term.KeyPgDn}
		}
		return term.Key{Type: term.KeyUnknown}
	}
	runes := []rune(tok)
	if len(runes) == 1 {
		return term.Rn(runes[0])
	}
	return term.Key{Type: term.KeyUnknown}
}

func bind(chord, command string) Binding {
	return Binding{Chord: ParseChord(chord), Command: command}
}

// DefaultKeymaps is the stock binding table. Order matters only for
// readability; lookup is exact-match.
func DefaultKeymaps() map[ModeKind][]Binding {
	normal := []Binding{
		bind("h", "move left 1"),
		bind("j", "move down 1"),
		bind("k", "move up 1"),
		bind("l", "move right 1"),
		bind("<left>", "move left 1"),
		bind("<down>", "move down 1"),
		bind("<up>", "move up 1"),
		bind("<right>", "move right 1"),
		bind("0", "move line_start"),
		bind("$", "move line_end"),
		bind("g g", "move file_top"),
		bind("G", "move file_bottom"),
		bind("<pgup>", "move page_up"),
		bind("<pgdn>", "move page_down"),
		bind("w", "move word_next"),
		bind("b", "move word_prev"),

		bind("i", "mode Insert"),
		bind("o", "open_line_below"),
		bind("O", "open_line_above"),
		bind(":", "mode Command"),
		bind("/", "search_start"),

		bind("x", "delete_forward"),
		bind("d d", "delete_line"),
		bind("y y", "yank_line"),
		bind("p", "paste_below"),
		bind("P", "paste_above"),
		bind("u", "undo"),
		bind("<c-r>", "redo"),

		bind("n", "search_next"),
		bind("N", "search_prev"),
		bind("<c-o>", "jump prev"),
		bind("<c-i>", "jump next"),
		bind("g d", "goto_definition"),

		bind("<space> s", "horizontal_split"),
		bind("<space> v", "vertical_split"),
		bind("<space> h", "pane_left"),
		bind("<space> j", "pane_down"),
		bind("<space> k", "pane_up"),
		bind("<space> l", "pane_right"),
		bind("<space> q", "pane_close"),

		bind("g t", "tab_next"),
		bind("g T", "tab_prev"),
	}

	insert := []Binding{
		bind("<left>", "move left 1"),
		bind("<down>", "move down 1"),
		bind("<up>", "move up 1"),
		bind("<right>", "move right 1"),
		bind("<home>", "move line_start"),
		bind("<end>", "move line_end"),
		bind("<pgup>", "move page_up"),
		bind("<pgdn>", "move page_down"),
		bind("<c-n>", "completion"),
	}

	return map[ModeKind][]Binding{
		ModeNormal: normal,
		ModeInsert: insert,
	}
}
