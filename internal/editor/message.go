package editor

// WindowMsgKind enumerates the lifecycle messages a pane can send its
// window.
type WindowMsgKind int

const (
	MsgHorizontalSplit WindowMsgKind = iota
	MsgVerticalSplit
	MsgClosePane
	MsgFocusUp
	MsgFocusDown
	MsgFocusLeft
	MsgFocusRight
	MsgOpenFile    // Arg: path
	MsgOpenPopup   // Popup carries the content
	MsgClosePopup  // Arg: command to run on the pane under the popup, "" for none
	MsgStatus      // Arg: transient status-bar message
	MsgForward     // Arg: editor-level command escalated upward
)

// WindowMsg is one message on a window's mailbox.
type WindowMsg struct {
	Kind  WindowMsgKind
	Arg   string
	Popup *PopupContent
}

// EditorMsgKind enumerates the global lifecycle messages.
type EditorMsgKind int

const (
	MsgNewWindow EditorMsgKind = iota
	MsgCloseWindow
	MsgNextWindow
	MsgPrevWindow
	MsgEditorOpenFile // Arg: path, opens in the active window
	MsgQuitAll
)

// EditorMsg is one message on the editor's mailbox.
type EditorMsg struct {
	Kind EditorMsgKind
	Arg  string
}
