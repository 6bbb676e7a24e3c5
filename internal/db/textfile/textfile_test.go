package textfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestEnsureWithDefaultCreatesOnce(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.EnsureWithDefault("guild", "a\nb\n"))
	lines, err := s.ReadLines("guild")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lines)

	// Повторный вызов не перезаписывает существующую запись
	require.NoError(t, s.EnsureWithDefault("guild", "other\n"))
	lines, err = s.ReadLines("guild")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lines)
}

func TestReadLinesTrimsAndSkipsEmpty(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.EnsureWithDefault("guild", "  spam  \n\n eggs\n"))

	lines, err := s.ReadLines("guild")
	require.NoError(t, err)
	assert.Equal(t, []string{"spam", "eggs"}, lines)
}

func TestWriteLinesRewritesAtomically(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.WriteLines("guild", []string{"one", "two"}))
	require.NoError(t, s.WriteLines("guild", []string{"three"}))

	lines, err := s.ReadLines("guild")
	require.NoError(t, err)
	assert.Equal(t, []string{"three"}, lines)

	// Временных файлов после перезаписи не остаётся
	entries, err := os.ReadDir(s.dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "guild.txt", entries[0].Name())
}

func TestAppendLine(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.AppendLine("guild", "spam"))
	require.NoError(t, s.AppendLine("guild", "eggs"))

	lines, err := s.ReadLines("guild")
	require.NoError(t, err)
	assert.Equal(t, []string{"spam", "eggs"}, lines)
}

func TestRemoveMissingIsNoError(t *testing.T) {
	s := newStore(t)
	assert.NoError(t, s.Remove("nothing"))
}

func TestRename(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.WriteLines("before", []string{"spam"}))

	require.NoError(t, s.Rename("before", "after"))

	_, err := os.Stat(filepath.Join(s.dir, "before.txt"))
	assert.True(t, os.IsNotExist(err))

	lines, err := s.ReadLines("after")
	require.NoError(t, err)
	assert.Equal(t, []string{"spam"}, lines)
}

// Ключи приходят из имён серверов; имя с разделителем пути не должно
// увести запись за пределы каталога хранилища.
func TestKeysWithPathSeparatorsAreRejected(t *testing.T) {
	s := newStore(t)

	for _, key := range []string{"", ".", "..", "../escape", "evil/guild", `evil\guild`} {
		assert.Error(t, s.EnsureWithDefault(key, ""), "key %q", key)
		assert.Error(t, s.WriteLines(key, []string{"x"}), "key %q", key)
		_, err := s.ReadLines(key)
		assert.Error(t, err, "key %q", key)
		assert.Error(t, s.AppendLine(key, "x"), "key %q", key)
		assert.Error(t, s.Remove(key), "key %q", key)
		assert.Error(t, s.Rename(key, "good"), "key %q", key)
		assert.Error(t, s.Rename("good", key), "key %q", key)
	}

	// Ни одна операция не оставила файлов
	entries, err := os.ReadDir(s.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRenameMissingFails(t *testing.T) {
	s := newStore(t)
	assert.Error(t, s.Rename("ghost", "after"))
}
