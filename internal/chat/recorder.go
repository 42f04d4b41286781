package chat

import "sync"

// RecordedMessage is one message captured by the Recorder.
type RecordedMessage struct {
	Kind   string
	Target string
	Text   string
}

// Recorder is a Transport that captures outbound messages for tests.
type Recorder struct {
	mu       sync.Mutex
	Messages []RecordedMessage
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Send records a channel message.
func (r *Recorder) Send(channel, text string) {
	r.record("send", channel, text)
}

// SendPrivate records a private message.
func (r *Recorder) SendPrivate(user, text string) {
	r.record("private", user, text)
}

// SendAction records an action message.
func (r *Recorder) SendAction(channel, text string) {
	r.record("action", channel, text)
}

func (r *Recorder) record(kind, target, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, RecordedMessage{Kind: kind, Target: target, Text: text})
}

// All returns a copy of the captured messages.
func (r *Recorder) All() []RecordedMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedMessage, len(r.Messages))
	copy(out, r.Messages)
	return out
}

// Reset clears captured messages.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = nil
}
