// Package file provides a sink backed by a newline-delimited text file.
package file

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"github.com/loykin/logmirror/internal/sink"
)

// Sink appends messages as lines to a backing file, syncing after every
// write. Reads never touch the write handle: ReadAll opens its own
// read-only handle each call, so the recorded sequence can be inspected
// at any point between appends.
type Sink struct {
	path      string
	f         *os.File
	closeOnce sync.Once
}

// New opens (creating or truncating) the backing file for writing.
// The write handle stays open until Close; an open failure is returned
// for the caller to treat as fatal.
func New(path string) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open backing file %s: %w", path, err)
	}
	return &Sink{path: path, f: f}, nil
}

var _ sink.Sink = (*Sink)(nil)

func (s *Sink) Name() string { return "file" }

// Path returns the backing file path.
func (s *Sink) Path() string { return s.path }

// Append writes the message plus a newline and syncs before returning,
// so the message is visible to an independent reader immediately.
func (s *Sink) Append(msg string) error {
	if _, err := fmt.Fprintln(s.f, msg); err != nil {
		return fmt.Errorf("failed to append to %s: %w", s.path, err)
	}
	if err := s.f.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", s.path, err)
	}
	return nil
}

// ReadAll opens an independent read-only handle, scans the file line by
// line, and returns one message per line with the terminator stripped.
func (s *Sink) ReadAll() ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s for reading: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()

	var messages []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		messages = append(messages, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return messages, nil
}

// Close closes the write handle exactly once; later calls are no-ops.
func (s *Sink) Close() error {
	var err error
	s.closeOnce.Do(func() { err = s.f.Close() })
	return err
}
