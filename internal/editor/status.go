package editor

import (
	"fmt"

	"github.com/mwhitby/fresco/internal/render"
)

// drawStatus renders the container's bottom row: mode and file on the
// left, pending chord and position on the right. Command mode replaces
// the row with the line being typed.
func (tp *TextPane) drawStatus(cont *PaneContainer, layer *render.Layer) {
	y := cont.Y + cont.H - 1

	var left string
	if tp.mode.Kind == ModeCommand {
		line, _ := tp.mode.CommandLine()
		left = ":" + line
	} else {
		name := tp.buf.Name()
		if name == "" {
			name = "[no name]"
		}
		dirty := ""
		if tp.buf.IsDirty() {
			dirty = " [+]"
		}
		left = fmt.Sprintf(" %s  %s%s", tp.mode.Kind, name, dirty)
		if tp.status != "" {
			left += "  " + tp.status
		}
	}

	right := fmt.Sprintf("%s %d:%d ", tp.mode.PendingChord(), tp.cursor.Y+1, tp.cursor.X+1)

	// Left text, padding, then the right block flush against the edge.
	x := cont.X
	x += layer.SetString(x, y, truncate(left, cont.W), styleStatus)
	rw := len([]rune(right))
	for ; x < cont.X+cont.W-rw; x++ {
		layer.Set(x, y, ' ', styleStatus)
	}
	if cont.W > rw {
		layer.SetString(cont.X+cont.W-rw, y, right, styleStatus)
	}
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width < 1 {
		return ""
	}
	return string(runes[:width])
}
