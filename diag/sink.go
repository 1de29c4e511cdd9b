package diag

// Sink receives diagnostic messages. Receive is called on the thread that
// issued the API call that produced the message, before that call returns.
type Sink interface {
	Receive(Message)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Message)

// Receive calls f(m).
func (f SinkFunc) Receive(m Message) { f(m) }

// Discard drops every message.
var Discard Sink = SinkFunc(func(Message) {})

// Tee returns a Sink that forwards each message to every sink in order.
// Nil sinks are skipped.
func Tee(sinks ...Sink) Sink {
	out := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return tee(out)
}

type tee []Sink

func (t tee) Receive(m Message) {
	for _, s := range t {
		s.Receive(m)
	}
}

// Recorder keeps every message it receives in arrival order. The zero value
// is ready to use. It is not safe for concurrent use; delivery is
// synchronous on a single thread.
type Recorder struct {
	messages []Message
}

// Receive appends m.
func (r *Recorder) Receive(m Message) {
	r.messages = append(r.messages, m)
}

// Messages returns the recorded messages in arrival order.
func (r *Recorder) Messages() []Message {
	return append([]Message(nil), r.messages...)
}

// Len is the number of recorded messages.
func (r *Recorder) Len() int { return len(r.messages) }

// Errors returns the recorded error-severity messages in arrival order.
func (r *Recorder) Errors() []Message {
	var out []Message
	for _, m := range r.messages {
		if m.IsError() {
			out = append(out, m)
		}
	}
	return out
}

// HasErrors reports whether any error-severity message was recorded.
func (r *Recorder) HasErrors() bool {
	for _, m := range r.messages {
		if m.IsError() {
			return true
		}
	}
	return false
}

// Reset forgets all recorded messages.
func (r *Recorder) Reset() {
	r.messages = r.messages[:0]
}
