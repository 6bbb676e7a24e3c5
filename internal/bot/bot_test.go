package bot

import (
	"fmt"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnmenator/modbot/internal/features/settings"
)

func newBotFixture(t *testing.T, rateLimit int) (*Bot, *routerFixture) {
	t.Helper()

	f := newRouterFixture(t)
	cfg := *f.router.cfg
	cfg.RateLimitRequests = rateLimit

	b := New(nil, &cfg, f.settings, f.blacklist, f.ledger, f.router.screener, f.router)
	t.Cleanup(b.rateLimiter.Close)
	return b, f
}

func TestGatewayIntentsCoverModerationSurface(t *testing.T) {
	for _, intent := range []discordgo.Intent{
		discordgo.IntentGuilds,
		discordgo.IntentGuildMembers,
		discordgo.IntentGuildMessages,
		discordgo.IntentGuildModeration,
		discordgo.IntentDirectMessages,
		discordgo.IntentMessageContent,
	} {
		assert.NotZero(t, gatewayIntents&intent, "intent %d", intent)
	}
}

// Превысивший лимит команд не выпадает из модерации: префикс команды
// не должен быть лазейкой от страйков для флудера.
func TestRateLimitedCommandTextIsStillScreened(t *testing.T) {
	b, f := newBotFixture(t, 3)
	require.NoError(t, f.blacklist.Add("testguild", "badword"))

	for i := 0; i < 6; i++ {
		m := commandMessage("general")
		m.ID = fmt.Sprintf("m%d", i)
		m.Content = "!say badword"
		b.dispatch(m, "u1", []string{"Member"})
	}

	// Каждое из шести сообщений получило страйк и удалено
	assert.Equal(t, 6, f.ledger.Count("g1", "u1"))
	assert.Len(t, f.transport.deleted, 6)
}

func TestRateLimitedKnownCommandIsNotRouted(t *testing.T) {
	b, f := newBotFixture(t, 1)

	m := commandMessage("bot-cli")
	m.Content = "!hello"
	b.dispatch(m, "u1", []string{"Admin"})
	b.dispatch(m, "u1", []string{"Admin"})

	// Вторая команда отсечена лимитом; её чистый текст скринер пропускает
	assert.Equal(t, []string{"Hello World!"}, f.transport.sent["c1"])
	assert.Empty(t, f.transport.deleted)
}

func TestPlainTextGoesToScreener(t *testing.T) {
	b, f := newBotFixture(t, 10)
	require.NoError(t, f.blacklist.Add("testguild", "badword"))

	m := commandMessage("general")
	m.Content = "just a badword here"
	b.dispatch(m, "u1", []string{"Member"})

	assert.Equal(t, 1, f.ledger.Count("g1", "u1"))
}

func TestGuildRenameMovesBothRecords(t *testing.T) {
	b, f := newBotFixture(t, 10)
	b.names["g1"] = "old"
	require.NoError(t, f.settings.Load("old"))
	require.NoError(t, f.blacklist.Load("old"))
	require.NoError(t, f.blacklist.Add("old", "spam"))

	b.onGuildUpdate(nil, &discordgo.GuildUpdate{Guild: &discordgo.Guild{ID: "g1", Name: "new"}})

	assert.Equal(t, []string{"spam"}, f.blacklist.Words("new"))
	assert.Empty(t, f.blacklist.Words("old"))
	assert.Equal(t, "new", b.names["g1"])
}

// Переименование сервера атомарно для обеих записей: если чёрный список
// переехать не смог, настройки откатываются под старое имя — иначе
// половина данных сервера тихо потерялась бы в дефолтах.
func TestGuildRenameRollsBackWhenBlacklistRenameFails(t *testing.T) {
	b, f := newBotFixture(t, 10)
	b.names["g1"] = "old"
	require.NoError(t, f.settings.Load("old"))
	require.NoError(t, f.blacklist.Load("old"))
	require.NoError(t, f.settings.Set("old", settings.KeyStrikeThreshold, "7"))

	// Ломаем перенос чёрного списка: его дисковая запись исчезает
	require.NoError(t, f.blacklist.Delete("old"))

	b.onGuildUpdate(nil, &discordgo.GuildUpdate{Guild: &discordgo.Guild{ID: "g1", Name: "new"}})

	// Настройки по-прежнему под старым именем, имя сервера не обновилось
	assert.Equal(t, 7, f.settings.Get("old").StrikeThreshold)
	assert.Equal(t, settings.Defaults(), f.settings.Get("new"))
	assert.Equal(t, "old", b.names["g1"])
}
