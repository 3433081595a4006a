// Package memory provides a sink that keeps messages in process memory.
package memory

import "github.com/loykin/logmirror/internal/sink"

// Sink stores appended messages in an in-process slice. It holds no
// external resource; Close is a no-op and Append/ReadAll never fail.
type Sink struct {
	messages []string
}

// New returns an empty in-memory sink.
func New() *Sink {
	return &Sink{}
}

var _ sink.Sink = (*Sink)(nil)

func (s *Sink) Name() string { return "memory" }

// Append adds the message to the end of the internal sequence.
func (s *Sink) Append(msg string) error {
	s.messages = append(s.messages, msg)
	return nil
}

// ReadAll returns a copy of the recorded messages in append order.
// Callers may mutate the returned slice freely.
func (s *Sink) ReadAll() ([]string, error) {
	out := make([]string, len(s.messages))
	copy(out, s.messages)
	return out, nil
}

func (s *Sink) Close() error { return nil }
