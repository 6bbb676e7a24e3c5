package blacklist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnmenator/modbot/internal/common"
	"github.com/mnmenator/modbot/internal/db/textfile"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	files, err := textfile.New(dir)
	require.NoError(t, err)
	store := NewStore(files)
	require.NoError(t, store.Load("guild"))
	return store, dir
}

func TestAddKeepsOrderAndLowercases(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Add("guild", "Spam"))
	require.NoError(t, store.Add("guild", "eggs"))

	assert.Equal(t, []string{"spam", "eggs"}, store.Words("guild"))
}

func TestAddDuplicateIsRejected(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Add("guild", "spam"))

	err := store.Add("guild", "SPAM")
	assert.ErrorIs(t, err, common.ErrAlreadyBlacklisted)

	// Список не изменился
	assert.Equal(t, []string{"spam"}, store.Words("guild"))
}

func TestRemoveAbsentIsRejected(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Add("guild", "spam"))

	err := store.Remove("guild", "eggs")
	assert.ErrorIs(t, err, common.ErrNotBlacklisted)
	assert.Equal(t, []string{"spam"}, store.Words("guild"))
}

func TestRemoveMatchesExactLineOnly(t *testing.T) {
	store, dir := newTestStore(t)
	require.NoError(t, store.Add("guild", "spam"))
	require.NoError(t, store.Add("guild", "spammer"))

	// Удаление "spam" не должно зацепить "spammer"
	require.NoError(t, store.Remove("guild", "spam"))
	assert.Equal(t, []string{"spammer"}, store.Words("guild"))

	data, err := os.ReadFile(filepath.Join(dir, "guild.txt"))
	require.NoError(t, err)
	assert.Equal(t, "spammer\n", string(data))
}

func TestRoundTripThroughDisk(t *testing.T) {
	store, dir := newTestStore(t)
	require.NoError(t, store.Add("guild", "spam"))
	require.NoError(t, store.Add("guild", "eggs"))

	files, err := textfile.New(dir)
	require.NoError(t, err)
	reloaded := NewStore(files)
	require.NoError(t, reloaded.Load("guild"))

	assert.Equal(t, []string{"spam", "eggs"}, reloaded.Words("guild"))
}

func TestRenameMovesRecord(t *testing.T) {
	store, dir := newTestStore(t)
	require.NoError(t, store.Add("guild", "spam"))

	require.NoError(t, store.Rename("guild", "renamed"))

	_, err := os.Stat(filepath.Join(dir, "guild.txt"))
	assert.True(t, os.IsNotExist(err))
	assert.Empty(t, store.Words("guild"))
	assert.Equal(t, []string{"spam"}, store.Words("renamed"))
}

func TestMatchFirstWordWinsCaseInsensitive(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Add("guild", "eggs"))
	require.NoError(t, store.Add("guild", "spam"))

	// Оба слова в тексте — сообщается первое по порядку хранения
	word, ok := store.Match("guild", "I like SPAM and EGGS a lot")
	require.True(t, ok)
	assert.Equal(t, "eggs", word)

	// Совпадение по подстроке, не по целому слову
	word, ok = store.Match("guild", "unSPAMmable")
	require.True(t, ok)
	assert.Equal(t, "spam", word)

	_, ok = store.Match("guild", "perfectly innocent")
	assert.False(t, ok)
}
