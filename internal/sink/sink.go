// Package sink defines the contract shared by every logmirror backend.
//
// A sink records messages in append order and can hand the full sequence
// back. Backends differ only in where the sequence lives (process memory,
// a file, a database, a search index); the harness treats them uniformly
// through this interface.
package sink

// Sink is the common interface for a message-recording backend.
//
// Append must make the message durable/visible before returning; there is
// no batching across calls. ReadAll returns every message recorded so far,
// in append order, and may be called any number of times without affecting
// subsequent appends. Close releases backend resources and is safe to call
// more than once.
type Sink interface {
	Name() string
	Append(msg string) error
	ReadAll() ([]string, error)
	Close() error
}
