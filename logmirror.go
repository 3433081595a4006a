// Package logmirror provides a simplified, stable root-level API for external users.
//
// Instead of importing internal subpackages, consumers can just:
//
//	import "github.com/loykin/logmirror"
//
// and then use logmirror.NewHarness and the sink constructors directly.
package logmirror

import (
	"github.com/loykin/logmirror/internal/harness"
	"github.com/loykin/logmirror/internal/metrics"
	"github.com/loykin/logmirror/internal/sink"
	"github.com/loykin/logmirror/internal/sink/file"
	"github.com/loykin/logmirror/internal/sink/memory"
	"github.com/loykin/logmirror/internal/source"
	pkgmetrics "github.com/loykin/logmirror/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// Sink re-exports sink.Sink, the contract every backend satisfies.
// This is a type alias, so it's fully compatible with the underlying type.
type Sink = sink.Sink

// Harness re-exports harness.Harness so callers can keep the concrete type
// when using the root-level constructor.
type Harness = harness.Harness

// MismatchError re-exports harness.MismatchError for root-level error checks.
type MismatchError = harness.MismatchError

// NewHarness constructs a harness over the given sinks.
func NewHarness(sinks ...Sink) *Harness { return harness.New(sinks...) }

// IsMismatch reports whether err is a read-back mismatch.
func IsMismatch(err error) bool { return harness.IsMismatch(err) }

// NewMemorySink constructs an in-memory sink.
func NewMemorySink() Sink { return memory.New() }

// NewFileSink constructs a file-backed sink at path, truncating any
// existing content.
func NewFileSink(path string) (Sink, error) { return file.New(path) }

// DefaultMessages returns the built-in demo message set.
func DefaultMessages() []string { return source.DefaultMessages() }

// StartMetrics registers logmirror metrics on the default Prometheus registry and starts an HTTP server.
// It returns a stop function to gracefully shut down the metrics server.
func StartMetrics(addr string) (func() error, error) {
	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return nil, err
	}
	srv, err := pkgmetrics.Start(addr)
	if err != nil {
		return nil, err
	}
	return srv.Stop, nil
}
