package editor

// The language-server collaborator. The core never speaks the wire
// protocol; it issues requests and polls the reply channels once per
// tick with non-blocking receives. A reply that has not arrived is
// simply absent this tick and retried the next. A pane that closes
// with a request outstanding stops polling; the late reply is dropped.

// Completion is one completion candidate.
type Completion struct {
	Label  string // shown in the drop-down
	Insert string // text inserted on selection
}

// Diagnostic is one reported problem at a buffer position.
type Diagnostic struct {
	Line    int
	Col     int
	Message string
}

// Location is a resolved definition or reference target.
type Location struct {
	Path string
	Line int
	Col  int
}

// LangClient is the asynchronous request/notification surface of a
// language server.
type LangClient interface {
	// RequestCompletions asks for candidates at a position. The
	// channel delivers at most one reply and is then closed.
	RequestCompletions(path string, line, col int) <-chan []Completion

	// RequestDefinition asks for the definition of the symbol at a
	// position. The channel delivers at most one reply.
	RequestDefinition(path string, line, col int) <-chan Location

	// Diagnostics delivers diagnostic batches as they arrive. May
	// return nil when the client publishes none.
	Diagnostics() <-chan []Diagnostic
}

// NopLangClient satisfies LangClient with no server behind it. Every
// request channel is closed immediately, so waiting panes resolve to
// "no result" on their next poll.
type NopLangClient struct{}

func (NopLangClient) RequestCompletions(string, int, int) <-chan []Completion {
	ch := make(chan []Completion)
	close(ch)
	return ch
}

func (NopLangClient) RequestDefinition(string, int, int) <-chan Location {
	ch := make(chan Location)
	close(ch)
	return ch
}

func (NopLangClient) Diagnostics() <-chan []Diagnostic { return nil }
