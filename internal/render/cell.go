package render

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Color is a 256-colour palette index, or ColorDefault for the
// terminal's default.
type Color int16

const ColorDefault Color = -1

// Style describes how a cell is painted.
type Style struct {
	FG        Color
	BG        Color
	Bold      bool
	Underline bool
	Reverse   bool
}

// DefaultStyle returns the terminal's default rendition.
func DefaultStyle() Style {
	return Style{FG: ColorDefault, BG: ColorDefault}
}

// SGR returns the escape sequence that selects this style from any
// previous state (always starts from a reset).
func (s Style) SGR() string {
	var b strings.Builder
	b.WriteString("\x1b[0")
	if s.Bold {
		b.WriteString(";1")
	}
	if s.Underline {
		b.WriteString(";4")
	}
	if s.Reverse {
		b.WriteString(";7")
	}
	if s.FG != ColorDefault {
		b.WriteString(";38;5;")
		b.WriteString(strconv.Itoa(int(s.FG)))
	}
	if s.BG != ColorDefault {
		b.WriteString(";48;5;")
		b.WriteString(strconv.Itoa(int(s.BG)))
	}
	b.WriteString("m")
	return b.String()
}

// Cell is one styled glyph. Changed is the repaint signal: the
// compositor only pushes a cell to the output when it is set, and
// clears it in the process.
type Cell struct {
	Rune    rune
	Style   Style
	Changed bool
}

// RuneWidth returns the number of terminal columns a rune occupies.
func RuneWidth(r rune) int {
	if r == 0 {
		return 1
	}
	return runewidth.RuneWidth(r)
}
