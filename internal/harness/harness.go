// Package harness drives an identical message stream through a set of
// sinks and verifies that every sink reproduces it exactly.
package harness

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/loykin/logmirror/internal/metrics"
	"github.com/loykin/logmirror/internal/sink"
)

// Harness exclusively owns an ordered collection of sinks for the
// duration of a run.
type Harness struct {
	sinks []sink.Sink
}

// New returns a harness over the given sinks, in the given order.
func New(sinks ...sink.Sink) *Harness {
	return &Harness{sinks: sinks}
}

// Add appends a sink to the collection.
func (h *Harness) Add(s sink.Sink) {
	h.sinks = append(h.sinks, s)
}

// Sinks returns the owned sinks in collection order.
func (h *Harness) Sinks() []sink.Sink {
	return h.sinks
}

// Run appends every message to every sink (message outer, sinks inner,
// so each sink sees the full set in original order), then verifies each
// sink's read-back against the input. The first failure aborts the run.
func (h *Harness) Run(msgs []string) error {
	for _, m := range msgs {
		for _, s := range h.sinks {
			start := time.Now()
			err := s.Append(m)
			metrics.AppendObserve(s.Name(), time.Since(start), err == nil)
			if err != nil {
				return fmt.Errorf("append to sink %s failed: %w", s.Name(), err)
			}
		}
	}
	return h.Verify(msgs)
}

// Verify compares every sink's read-back element-for-element against
// the expected sequence.
func (h *Harness) Verify(expected []string) error {
	for _, s := range h.sinks {
		observed, err := s.ReadAll()
		if err != nil {
			return fmt.Errorf("read-back from sink %s failed: %w", s.Name(), err)
		}
		metrics.AddReadback(s.Name(), len(observed))
		if !equal(expected, observed) {
			metrics.VerifyObserve(s.Name(), false)
			return &MismatchError{Sink: s.Name(), Expected: expected, Observed: observed}
		}
		metrics.VerifyObserve(s.Name(), true)
		slog.Debug("sink verified", "sink", s.Name(), "messages", len(observed))
	}
	return nil
}

// Close closes all owned sinks, joining any errors. Every sink is
// closed even when an earlier one fails.
func (h *Harness) Close() error {
	var errs []error
	for _, s := range h.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close sink %s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
