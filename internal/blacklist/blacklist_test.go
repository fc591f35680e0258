package blacklist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "gulag.txt"))
}

func TestMissingFileIsEmptySet(t *testing.T) {
	s := newTestService(t)

	require.False(t, s.IsBlacklisted("123"))

	ids, err := s.List()
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestAddIsIdempotent(t *testing.T) {
	s := newTestService(t)

	changed, err := s.Add("123")
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = s.Add("123")
	require.NoError(t, err)
	require.False(t, changed)

	ids, err := s.List()
	require.NoError(t, err)
	require.Equal(t, []string{"123"}, ids)
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	s := newTestService(t)

	_, err := s.Add("123")
	require.NoError(t, err)

	changed, err := s.Remove("456")
	require.NoError(t, err)
	require.False(t, changed)

	ids, err := s.List()
	require.NoError(t, err)
	require.Equal(t, []string{"123"}, ids)
}

func TestAddRemoveRoundTrip(t *testing.T) {
	s := newTestService(t)

	for _, id := range []string{"1", "2", "3"} {
		_, err := s.Add(id)
		require.NoError(t, err)
	}

	changed, err := s.Remove("2")
	require.NoError(t, err)
	require.True(t, changed)

	require.True(t, s.IsBlacklisted("1"))
	require.False(t, s.IsBlacklisted("2"))
	require.True(t, s.IsBlacklisted("3"))
}

// The file is re-read on every check, so out-of-band edits are visible
// immediately.
func TestChecksSeeFreshFileState(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gulag.txt")
	s := New(path)

	require.False(t, s.IsBlacklisted("999"))

	require.NoError(t, os.WriteFile(path, []byte("999\n"), 0644))
	require.True(t, s.IsBlacklisted("999"))
}

func TestSkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gulag.txt")
	require.NoError(t, os.WriteFile(path, []byte("1\n\n  \n2\n"), 0644))

	ids, err := New(path).List()
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2"}, ids)
}
