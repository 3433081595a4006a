package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteSink(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "mirror.db")

	s, err := New(dbPath)
	require.NoError(t, err)
	require.NotNil(t, s)
	defer func() { _ = s.Close() }()

	t.Run("Round trip preserves order", func(t *testing.T) {
		msgs := []string{"Hello, World!", "abracadabra", "Sayonara!"}
		for _, m := range msgs {
			require.NoError(t, s.Append(m))
		}

		got, err := s.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, msgs, got)
	})

	t.Run("ReadAll is idempotent", func(t *testing.T) {
		first, err := s.ReadAll()
		require.NoError(t, err)
		second, err := s.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestSQLiteSink_EmptyDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")

	s, err := New(dbPath)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	got, err := s.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLiteSink_CreatesParentDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "mirror.db")

	s, err := New(dbPath)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.NoError(t, s.Append("one"))
	got, err := s.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, got)
}

func TestSQLiteSink_ReopenKeepsMessages(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "mirror.db")

	s, err := New(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Append("persisted"))
	require.NoError(t, s.Close())

	// Unlike the file sink, the database is not truncated on open;
	// migrations are idempotent and prior rows survive.
	s2, err := New(dbPath)
	require.NoError(t, err)
	defer func() { _ = s2.Close() }()

	got, err := s2.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"persisted"}, got)
}
