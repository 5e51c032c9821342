package term

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Terminal manages raw mode, the alternate screen buffer, and terminal
// dimensions.
type Terminal struct {
	oldState *term.State
	width    int
	height   int
	sigwinch chan os.Signal
}

func NewTerminal() (*Terminal, error) {
	t := &Terminal{}

	// Switch to raw mode.
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return nil, err
	}
	t.oldState = oldState

	// Enter alternate screen buffer.
	os.Stdout.WriteString("\x1b[?1049h")

	// Hide cursor during setup.
	os.Stdout.WriteString("\x1b[?25l")

	// Enable SGR mouse protocol: button events + extended coordinates.
	os.Stdout.WriteString("\x1b[?1000h")
	os.Stdout.WriteString("\x1b[?1006h")

	// Query size.
	t.width, t.height, err = termSize()
	if err != nil {
		t.Restore()
		return nil, err
	}

	// Listen for resize signals.
	t.sigwinch = make(chan os.Signal, 1)
	signal.Notify(t.sigwinch, syscall.SIGWINCH)

	return t, nil
}

// termSize queries the terminal dimensions, falling back to a TIOCGWINSZ
// ioctl when the portable query fails (some ptys reject it).
func termSize() (int, int, error) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err == nil {
		return w, h, nil
	}
	ws, ierr := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if ierr != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

// Resize re-queries terminal dimensions. Returns true if the size changed.
func (t *Terminal) Resize() bool {
	w, h, err := termSize()
	if err != nil {
		return false
	}
	changed := w != t.width || h != t.height
	t.width = w
	t.height = h
	return changed
}

// Width returns the current terminal width.
func (t *Terminal) Width() int { return t.width }

// Height returns the current terminal height.
func (t *Terminal) Height() int { return t.height }

// SigwinchChan returns the channel that receives SIGWINCH signals.
func (t *Terminal) SigwinchChan() <-chan os.Signal {
	return t.sigwinch
}

// Restore returns the terminal to its original state.
func (t *Terminal) Restore() {
	// Disable mouse protocols.
	os.Stdout.WriteString("\x1b[?1006l")
	os.Stdout.WriteString("\x1b[?1000l")
	// Show cursor.
	os.Stdout.WriteString("\x1b[?25h")
	// Leave alternate screen buffer.
	os.Stdout.WriteString("\x1b[?1049l")
	if t.oldState != nil {
		term.Restore(int(os.Stdin.Fd()), t.oldState)
	}
	signal.Stop(t.sigwinch)
}

// ReadEvent reads a single input event from stdin in raw mode.
// Returns an InputEvent which may contain a Key or MouseEvent.
func (t *Terminal) ReadEvent() (InputEvent, error) {
	buf := make([]byte, 32) // Larger buffer for SGR mouse sequences
	n, err := os.Stdin.Read(buf)
	if err != nil {
		return InputEvent{}, err
	}
	return ParseInput(buf[:n]), nil
}
