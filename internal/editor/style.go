package editor

import "github.com/mwhitby/fresco/internal/render"

// The palette. 256-color indices, default terminal background
// throughout so the editor inherits the terminal theme.
var (
	styleDefault    = render.DefaultStyle()
	styleGutter     = render.Style{FG: 242, BG: render.ColorDefault}
	styleDiagnostic = render.Style{FG: 167, BG: render.ColorDefault, Bold: true}
	styleStatus     = render.Style{FG: render.ColorDefault, BG: render.ColorDefault, Reverse: true}
	styleKeyword    = render.Style{FG: 173, BG: render.ColorDefault}
	styleString     = render.Style{FG: 108, BG: render.ColorDefault}
	styleComment    = render.Style{FG: 245, BG: render.ColorDefault}
	styleNumber     = render.Style{FG: 139, BG: render.ColorDefault}
	styleHeading    = render.Style{FG: 109, BG: render.ColorDefault, Bold: true}
	stylePopup      = render.Style{FG: render.ColorDefault, BG: 237}
	stylePopupSel   = render.Style{FG: render.ColorDefault, BG: 237, Reverse: true}
)

func classStyle(c SyntaxClass) render.Style {
	switch c {
	case ClassKeyword:
		return styleKeyword
	case ClassString:
		return styleString
	case ClassComment:
		return styleComment
	case ClassNumber:
		return styleNumber
	case ClassHeading:
		return styleHeading
	}
	return styleDefault
}
