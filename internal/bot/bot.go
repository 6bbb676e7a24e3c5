// Package bot содержит главный модуль бота — подключение к шлюзу Discord
// и перевод его событий в операции ядра.
// bot.go регистрирует обработчики событий и управляет жизненным циклом
// сессии; вся логика модерации живёт в internal/features.
package bot

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/mnmenator/modbot/internal/bot/middleware"
	"github.com/mnmenator/modbot/internal/config"
	"github.com/mnmenator/modbot/internal/features/blacklist"
	"github.com/mnmenator/modbot/internal/features/settings"
	"github.com/mnmenator/modbot/internal/features/strikes"
)

// gatewayIntents — все события шлюза, на которые подписывается бот:
// серверы и их участники, серверные сообщения с текстом, баны, личка.
const gatewayIntents = discordgo.IntentGuilds |
	discordgo.IntentGuildMembers |
	discordgo.IntentGuildMessages |
	discordgo.IntentGuildModeration |
	discordgo.IntentDirectMessages |
	discordgo.IntentMessageContent

// Bot — главная структура бота, объединяющая все компоненты.
type Bot struct {
	session *discordgo.Session
	cfg     *config.Config

	settings    *settings.Store
	blacklist   *blacklist.Store
	ledger      *strikes.Ledger
	screener    *strikes.Screener
	router      *Router
	parser      *CommandParser
	rateLimiter *middleware.RateLimiter

	// Имена серверов по ID — чтобы при переименовании знать старое имя
	mu    sync.Mutex
	names map[string]string
}

// New создаёт нового бота со всеми зависимостями.
func New(
	session *discordgo.Session,
	cfg *config.Config,
	settingsStore *settings.Store,
	blacklistStore *blacklist.Store,
	ledger *strikes.Ledger,
	screener *strikes.Screener,
	router *Router,
) *Bot {
	return &Bot{
		session:     session,
		cfg:         cfg,
		settings:    settingsStore,
		blacklist:   blacklistStore,
		ledger:      ledger,
		screener:    screener,
		router:      router,
		parser:      NewCommandParser(cfg.CommandPrefix),
		rateLimiter: middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		names:       make(map[string]string),
	}
}

// Start подключается к шлюзу Discord и работает до отмены контекста.
func (b *Bot) Start(ctx context.Context) error {
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onGuildCreate)
	b.session.AddHandler(b.onGuildDelete)
	b.session.AddHandler(b.onGuildUpdate)
	b.session.AddHandler(b.onMemberAdd)
	b.session.AddHandler(b.onMemberRemove)
	b.session.AddHandler(b.onMessageCreate)

	b.session.Identify.Intents = gatewayIntents

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("не удалось открыть сессию Discord: %w", err)
	}

	log.WithField("prefix", b.cfg.CommandPrefix).Info("Бот запущен и ожидает сообщения...")

	<-ctx.Done()
	log.Info("Бот останавливается (ctx done)...")
	b.rateLimiter.Close()
	return b.session.Close()
}

// onReady срабатывает после подключения к шлюзу.
// Перечисление серверов здесь не нужно: Discord присылает GuildCreate
// по каждому доступному серверу, onGuildCreate загрузит каждый.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.WithFields(log.Fields{
		"user":   r.User.Username,
		"guilds": len(r.Guilds),
	}).Info("Подключились к Discord")
}

// onGuildCreate срабатывает при подключении к серверу — и на старте,
// и при добавлении бота на новый сервер. Загружает настройки и чёрный
// список, заводит нулевые счётчики страйков для всех участников.
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	defer middleware.RecoverFromPanic()

	b.mu.Lock()
	b.names[g.ID] = g.Name
	b.mu.Unlock()

	if err := b.settings.Load(g.Name); err != nil {
		log.WithError(err).WithField("guild", g.Name).Error("Не удалось загрузить настройки сервера")
	}
	if err := b.blacklist.Load(g.Name); err != nil {
		log.WithError(err).WithField("guild", g.Name).Error("Не удалось загрузить чёрный список")
	}

	ids := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		ids = append(ids, m.User.ID)
	}
	b.ledger.InitGuild(g.ID, ids)

	log.WithFields(log.Fields{
		"guild":   g.Name,
		"members": len(ids),
	}).Info("Сервер подключен")
}

// onGuildDelete срабатывает, когда бот покидает сервер.
// Уничтожает настройки, чёрный список и счётчики страйков сервера.
func (b *Bot) onGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	defer middleware.RecoverFromPanic()

	if g.Unavailable {
		// Сбой на стороне Discord, а не уход с сервера
		return
	}

	b.mu.Lock()
	name := b.names[g.ID]
	delete(b.names, g.ID)
	b.mu.Unlock()

	if name == "" {
		log.WithField("guild_id", g.ID).Warn("GuildDelete для неизвестного сервера")
		return
	}

	if err := b.settings.Delete(name); err != nil {
		log.WithError(err).WithField("guild", name).Error("Не удалось удалить настройки сервера")
	}
	if err := b.blacklist.Delete(name); err != nil {
		log.WithError(err).WithField("guild", name).Error("Не удалось удалить чёрный список")
	}
	b.ledger.ClearGuild(g.ID)

	log.WithField("guild", name).Info("Сервер отключен, данные удалены")
}

// onGuildUpdate переносит дисковые записи при переименовании сервера.
// Ошибка переноса фатальна для операции переименования, но не для бота.
func (b *Bot) onGuildUpdate(s *discordgo.Session, g *discordgo.GuildUpdate) {
	defer middleware.RecoverFromPanic()

	b.mu.Lock()
	defer b.mu.Unlock()

	before := b.names[g.ID]
	if before == "" || before == g.Name {
		b.names[g.ID] = g.Name
		return
	}

	logger := log.WithFields(log.Fields{"before": before, "after": g.Name})
	if err := b.settings.Rename(before, g.Name); err != nil {
		logger.WithError(err).Error("Не удалось переименовать запись настроек")
		return
	}
	if err := b.blacklist.Rename(before, g.Name); err != nil {
		logger.WithError(err).Error("Не удалось переименовать запись чёрного списка")
		// Откат настроек: обе записи должны остаться под одним именем,
		// иначе половина данных сервера потеряется в дефолтах
		if rbErr := b.settings.Rename(g.Name, before); rbErr != nil {
			logger.WithError(rbErr).Error("Не удалось откатить переименование настроек")
		}
		return
	}
	b.names[g.ID] = g.Name
	logger.Info("Сервер переименован, записи перенесены")
}

// onMemberAdd заводит нулевой счётчик страйков новому участнику.
func (b *Bot) onMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	defer middleware.RecoverFromPanic()

	b.ledger.AddMember(m.GuildID, m.User.ID)
	log.WithFields(log.Fields{
		"guild_id": m.GuildID,
		"user":     m.User.Username,
	}).Info("Новый участник, счётчик страйков заведён")
}

// onMemberRemove удаляет счётчик страйков ушедшего участника.
func (b *Bot) onMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	defer middleware.RecoverFromPanic()

	b.ledger.RemoveMember(m.GuildID, m.User.ID)
	log.WithFields(log.Fields{
		"guild_id": m.GuildID,
		"user":     m.User.Username,
	}).Info("Участник ушёл, счётчик страйков удалён")
}

// onMessageCreate — главный вход: команды в роутер, остальное в скринер.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	defer middleware.RecoverFromPanic()

	// Свои сообщения не обрабатываем никогда
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}

	middleware.LogMessage(m)

	b.dispatch(b.coreMessage(m), m.Author.ID, b.roleNames(m.GuildID, m))
}

// dispatch направляет сообщение: команды в роутер, остальное в скринер.
// Превысивший лимит команд НЕ выпадает из модерации: его текст идёт в
// скринер как обычное сообщение, иначе префикс команды стал бы лазейкой
// от страйков для флудера.
func (b *Bot) dispatch(msg strikes.Message, authorID string, roles []string) {
	cmd, args, isCommand := b.parser.ParseCommand(msg.Content)
	if isCommand {
		if b.rateLimiter.Allow(authorID) {
			b.router.Route(cmd, args, msg, roles)
			return
		}
		log.WithField("author_id", authorID).Debug("rate limited")
	}

	// Сообщения без серверного контекста не проверяются
	if msg.GuildID != "" {
		b.screener.Screen(msg)
	}
}

// coreMessage переводит discordgo-сообщение в сообщение ядра, разрешая
// имя канала, имя сервера и журнальный канал.
func (b *Bot) coreMessage(m *discordgo.MessageCreate) strikes.Message {
	msg := strikes.Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
		AuthorID:  m.Author.ID,
		Content:   m.Content,
	}
	msg.AuthorName = m.Author.Username

	if ch, err := b.session.State.Channel(m.ChannelID); err == nil {
		msg.ChannelName = ch.Name
	}
	if m.GuildID != "" {
		b.mu.Lock()
		msg.GuildName = b.names[m.GuildID]
		b.mu.Unlock()
		msg.LogChannelID = b.findChannelByName(m.GuildID, b.cfg.LogChannel)
	}
	return msg
}

// findChannelByName возвращает ID канала сервера с данным именем,
// пустую строку — если такого канала нет (это допустимо для журнала).
func (b *Bot) findChannelByName(guildID, name string) string {
	g, err := b.session.State.Guild(guildID)
	if err != nil {
		return ""
	}
	for _, ch := range g.Channels {
		if ch.Name == name {
			return ch.ID
		}
	}
	return ""
}

// roleNames переводит ID ролей автора сообщения в имена ролей.
func (b *Bot) roleNames(guildID string, m *discordgo.MessageCreate) []string {
	if guildID == "" || m.Member == nil {
		return nil
	}
	g, err := b.session.State.Guild(guildID)
	if err != nil {
		return nil
	}

	byID := make(map[string]string, len(g.Roles))
	for _, r := range g.Roles {
		byID[r.ID] = r.Name
	}

	names := make([]string, 0, len(m.Member.Roles))
	for _, id := range m.Member.Roles {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return names
}
