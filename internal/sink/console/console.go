// Package console provides a sink that echoes messages to a terminal
// stream while keeping an in-memory copy for read-back.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/loykin/logmirror/internal/sink"
)

// Sink writes each appended message to an io.Writer (stdout or stderr)
// as it arrives. The terminal itself cannot be read back, so the sink
// retains the sequence in memory to satisfy the read-back contract.
type Sink struct {
	w        io.Writer
	messages []string
}

// New returns a console sink writing to stdout or stderr depending on stream.
// stream: "stdout" (default) or "stderr".
func New(stream string) *Sink {
	w := io.Writer(os.Stdout)
	if stream == "stderr" {
		w = os.Stderr
	}
	return &Sink{w: w}
}

// NewWriter returns a console sink writing to an arbitrary writer.
func NewWriter(w io.Writer) *Sink {
	return &Sink{w: w}
}

var _ sink.Sink = (*Sink)(nil)

func (s *Sink) Name() string { return "console" }

func (s *Sink) Append(msg string) error {
	if _, err := fmt.Fprintln(s.w, msg); err != nil {
		return fmt.Errorf("console write failed: %w", err)
	}
	s.messages = append(s.messages, msg)
	return nil
}

func (s *Sink) ReadAll() ([]string, error) {
	out := make([]string, len(s.messages))
	copy(out, s.messages)
	return out, nil
}

func (s *Sink) Close() error { return nil }
