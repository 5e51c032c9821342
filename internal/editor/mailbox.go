package editor

// Mailbox is a one-directional intra-process queue. The concurrency
// model is cooperative, not parallel: senders never block (a full
// mailbox drops the message and reports it) and receivers poll. It
// exists so components communicate by passing messages instead of
// holding aliased mutable references to each other.
type Mailbox[T any] struct {
	ch chan T
}

func NewMailbox[T any](capacity int) *Mailbox[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Mailbox[T]{ch: make(chan T, capacity)}
}

// Send enqueues a message without blocking. Returns false if the
// mailbox is full.
func (m *Mailbox[T]) Send(v T) bool {
	select {
	case m.ch <- v:
		return true
	default:
		return false
	}
}

// Recv dequeues one message without blocking.
func (m *Mailbox[T]) Recv() (T, bool) {
	select {
	case v, ok := <-m.ch:
		if !ok {
			var zero T
			return zero, false
		}
		return v, true
	default:
		var zero T
		return zero, false
	}
}

// Len returns the number of queued messages.
func (m *Mailbox[T]) Len() int { return len(m.ch) }
