package members

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnmenator/modbot/internal/common"
)

// fakeDirectory — справочник с фиксированными участниками и банами.
type fakeDirectory struct {
	members []Member
	bans    []Member

	kicked   []string
	banned   []string
	unbanned []string
	kickErr  error
}

func (f *fakeDirectory) Members(guildID string) ([]Member, error) { return f.members, nil }
func (f *fakeDirectory) Bans(guildID string) ([]Member, error)    { return f.bans, nil }

func (f *fakeDirectory) Kick(guildID, userID, reason string) error {
	if f.kickErr != nil {
		return f.kickErr
	}
	f.kicked = append(f.kicked, userID)
	return nil
}

func (f *fakeDirectory) Ban(guildID, userID, reason string) error {
	f.banned = append(f.banned, userID)
	return nil
}

func (f *fakeDirectory) Unban(guildID, userID string) error {
	f.unbanned = append(f.unbanned, userID)
	return nil
}

// fakeSender копит отправленные ответы.
type fakeSender struct {
	mu    sync.Mutex
	texts []string
}

func (f *fakeSender) Send(channelID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	return nil
}

func TestResolveMemberCaseInsensitive(t *testing.T) {
	dir := &fakeDirectory{members: []Member{{ID: "1", Name: "Alice"}}}
	svc := NewService(dir)

	id, err := svc.ResolveMember("g", "alice")
	require.NoError(t, err)
	assert.Equal(t, "1", id)
}

func TestResolveMemberNotFound(t *testing.T) {
	svc := NewService(&fakeDirectory{})
	_, err := svc.ResolveMember("g", "ghost")
	assert.ErrorIs(t, err, common.ErrMemberNotFound)
}

func TestUnbanResolvesAgainstBans(t *testing.T) {
	dir := &fakeDirectory{
		members: []Member{{ID: "1", Name: "Alice"}},
		bans:    []Member{{ID: "2", Name: "Bob"}},
	}
	svc := NewService(dir)

	require.NoError(t, svc.Unban("g", "bob"))
	assert.Equal(t, []string{"2"}, dir.unbanned)

	// Участник без бана не разбанивается
	err := svc.Unban("g", "alice")
	assert.ErrorIs(t, err, common.ErrBanNotFound)
}

// Неудача по одному имени не прерывает обработку остальных имён пачки.
func TestBatchContinuesAfterFailure(t *testing.T) {
	dir := &fakeDirectory{members: []Member{
		{ID: "1", Name: "Alice"},
		{ID: "2", Name: "Bob"},
	}}
	sender := &fakeSender{}
	h := NewHandler(NewService(dir), sender)

	h.HandleBan("g", "c", []string{"ghost", "bob"})

	require.Len(t, sender.texts, 2)
	assert.Equal(t, "failed to ban ghost", sender.texts[0])
	assert.Equal(t, "bob: ban succeeded", sender.texts[1])
	assert.Equal(t, []string{"2"}, dir.banned)
}

func TestKickReportsPerName(t *testing.T) {
	dir := &fakeDirectory{
		members: []Member{{ID: "1", Name: "Alice"}},
		kickErr: assert.AnError,
	}
	sender := &fakeSender{}
	h := NewHandler(NewService(dir), sender)

	// Транспорт отказал (например, не хватает прав) — сообщаем и живём дальше
	h.HandleKick("g", "c", []string{"alice"})

	require.Len(t, sender.texts, 1)
	assert.Equal(t, "failed to kick alice", sender.texts[0])
}
