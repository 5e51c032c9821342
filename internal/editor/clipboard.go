package editor

import "github.com/atotto/clipboard"

// Clipboard is where yanked and deleted lines go. The system clipboard
// is best-effort: headless sessions fall back to the in-process
// register transparently.
type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

// SystemClipboard bridges to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) Write(text string) error { return clipboard.WriteAll(text) }
func (SystemClipboard) Read() (string, error)   { return clipboard.ReadAll() }

// register pairs a clipboard with an internal fallback buffer. Writes
// go to both; reads prefer the clipboard and fall back on error.
type register struct {
	clip Clipboard
	text string
}

func newRegister(clip Clipboard) *register {
	return &register{clip: clip}
}

func (r *register) put(text string) {
	r.text = text
	if r.clip != nil {
		r.clip.Write(text) // best effort
	}
}

func (r *register) get() string {
	if r.clip != nil {
		if text, err := r.clip.Read(); err == nil && text != "" {
			return text
		}
	}
	return r.text
}
