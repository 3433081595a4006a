package harness

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/loykin/logmirror/internal/sink"
	"github.com/loykin/logmirror/internal/sink/file"
	"github.com/loykin/logmirror/internal/sink/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// faultySink lets tests inject arbitrary sequences and failures.
type faultySink struct {
	name      string
	messages  []string
	readBack  []string
	appendErr error
	readErr   error
	closeErr  error
	closed    int
}

func (f *faultySink) Name() string { return f.name }

func (f *faultySink) Append(msg string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.messages = append(f.messages, msg)
	return nil
}

func (f *faultySink) ReadAll() ([]string, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	if f.readBack != nil {
		return f.readBack, nil
	}
	return f.messages, nil
}

func (f *faultySink) Close() error {
	f.closed++
	return f.closeErr
}

func TestHarness_RunMatchesAcrossSinks(t *testing.T) {
	fs, err := file.New(filepath.Join(t.TempDir(), "mirror.txt"))
	require.NoError(t, err)

	h := New(memory.New(), fs)
	defer func() { _ = h.Close() }()

	msgs := []string{"Hello, World!", "abracadabra", "Sayonara!"}
	require.NoError(t, h.Run(msgs))

	// Each sink independently reproduces the full set.
	for _, s := range h.Sinks() {
		got, err := s.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, msgs, got, "sink %s", s.Name())
	}
}

func TestHarness_SinkIndependence(t *testing.T) {
	a := memory.New()
	b := memory.New()

	require.NoError(t, a.Append("only in a"))

	// Appending to one sink never leaks into another.
	got, err := b.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, New(a).Verify([]string{"only in a"}))
	require.NoError(t, New(b).Verify(nil))
}

func TestHarness_MismatchReportsSequences(t *testing.T) {
	s := &faultySink{name: "lossy", readBack: []string{"Hello, World!", "Sayonara!"}}
	h := New(s)

	msgs := []string{"Hello, World!", "abracadabra", "Sayonara!"}
	err := h.Run(msgs)
	require.Error(t, err)
	require.True(t, IsMismatch(err))

	var mismatch *MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "lossy", mismatch.Sink)
	assert.Equal(t, msgs, mismatch.Expected)
	assert.Equal(t, []string{"Hello, World!", "Sayonara!"}, mismatch.Observed)
	assert.Contains(t, err.Error(), "lossy")
}

func TestHarness_MismatchOnReorder(t *testing.T) {
	s := &faultySink{name: "shuffled", readBack: []string{"b", "a"}}
	h := New(s)
	err := h.Run([]string{"a", "b"})
	require.Error(t, err)
	assert.True(t, IsMismatch(err))
}

func TestHarness_AppendErrorAborts(t *testing.T) {
	s := &faultySink{name: "broken", appendErr: fmt.Errorf("disk on fire")}
	h := New(memory.New(), s)

	err := h.Run([]string{"one"})
	require.Error(t, err)
	assert.False(t, IsMismatch(err))
	assert.Contains(t, err.Error(), "broken")
}

func TestHarness_ReadErrorAborts(t *testing.T) {
	s := &faultySink{name: "unreadable", readErr: fmt.Errorf("gone")}
	h := New(s)

	err := h.Run([]string{"one"})
	require.Error(t, err)
	assert.False(t, IsMismatch(err))
}

func TestHarness_CloseClosesAllSinks(t *testing.T) {
	a := &faultySink{name: "a", closeErr: fmt.Errorf("a close failed")}
	b := &faultySink{name: "b"}
	h := New(a, b)

	err := h.Close()
	require.Error(t, err)
	assert.Equal(t, 1, a.closed)
	assert.Equal(t, 1, b.closed, "later sinks still closed after an error")
}

func TestIsMismatch(t *testing.T) {
	assert.False(t, IsMismatch(nil))
	assert.False(t, IsMismatch(errors.New("plain")))
	assert.True(t, IsMismatch(fmt.Errorf("wrapped: %w", &MismatchError{Sink: "x"})))
}

var _ sink.Sink = (*faultySink)(nil)
