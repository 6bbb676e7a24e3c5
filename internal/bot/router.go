// Package bot — router.go маршрутизирует админ-команды к обработчикам.
// Перед любым обработчиком вызов проходит шлюз авторизации.
package bot

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mnmenator/modbot/internal/bot/filters"
	"github.com/mnmenator/modbot/internal/config"
	"github.com/mnmenator/modbot/internal/features/blacklist"
	"github.com/mnmenator/modbot/internal/features/members"
	"github.com/mnmenator/modbot/internal/features/settings"
	"github.com/mnmenator/modbot/internal/features/strikes"
)

// Router маршрутизирует команды.
type Router struct {
	cfg      *config.Config
	gate     *filters.Gate
	screener *strikes.Screener
	effects  strikes.Effects

	settingsHandler  *settings.Handler
	blacklistHandler *blacklist.Handler
	membersHandler   *members.Handler
	strikesHandler   *strikes.Handler
}

// NewRouter создаёт роутер команд.
func NewRouter(
	cfg *config.Config,
	gate *filters.Gate,
	screener *strikes.Screener,
	effects strikes.Effects,
	settingsHandler *settings.Handler,
	blacklistHandler *blacklist.Handler,
	membersHandler *members.Handler,
	strikesHandler *strikes.Handler,
) *Router {
	return &Router{
		cfg:              cfg,
		gate:             gate,
		screener:         screener,
		effects:          effects,
		settingsHandler:  settingsHandler,
		blacklistHandler: blacklistHandler,
		membersHandler:   membersHandler,
		strikesHandler:   strikesHandler,
	}
}

// knownCommands — полный набор админ-команд.
var knownCommands = map[string]struct{}{
	"hello":        {},
	"test":         {},
	"kick":         {},
	"ban":          {},
	"unban":        {},
	"strike_count": {},
	"blacklist":    {},
	"configure":    {},
}

// Route обрабатывает одну распознанную по префиксу команду.
// m — сообщение в терминах ядра, roles — имена ролей автора.
func (r *Router) Route(name string, args []string, m strikes.Message, roles []string) {
	if _, ok := knownCommands[name]; !ok {
		r.handleUnknown(name, m, roles)
		return
	}

	verdict := r.gate.Authorize(filters.Invocation{
		GuildID:     m.GuildID,
		ChannelName: m.ChannelName,
		AuthorRoles: roles,
	})
	switch verdict {
	case filters.NoPrivateMessage:
		// Молча: не раскрываем бота в личке посторонним
		return
	case filters.MissingRole, filters.DisabledCommand:
		r.reject(verdict, name, m)
		return
	}

	log.WithFields(log.Fields{
		"cmd":    name,
		"args":   args,
		"author": m.AuthorName,
		"guild":  m.GuildName,
	}).Debug("Команда принята")

	switch name {
	case "hello":
		r.send(m.ChannelID, "Hello World!")
	case "test":
		r.send(m.ChannelID, "All systems operational.")
	case "kick":
		r.membersHandler.HandleKick(m.GuildID, m.ChannelID, args)
	case "ban":
		r.membersHandler.HandleBan(m.GuildID, m.ChannelID, args)
	case "unban":
		r.membersHandler.HandleUnban(m.GuildID, m.ChannelID, args)
	case "strike_count":
		r.strikesHandler.HandleCount(m.GuildID, m.ChannelID, args)
	case "blacklist":
		r.blacklistHandler.Handle(m.GuildName, m.ChannelID, args)
	case "configure":
		r.settingsHandler.Handle(m.GuildName, m.ChannelID, args)
	}
}

// reject обрабатывает отказ шлюза: сообщение-нарушитель удаляется,
// отказ логируется и попадает в журнальный канал, если тот есть.
func (r *Router) reject(verdict filters.Verdict, name string, m strikes.Message) {
	logger := log.WithFields(log.Fields{
		"cmd":     name,
		"author":  m.AuthorName,
		"channel": m.ChannelName,
		"guild":   m.GuildName,
		"verdict": verdict.String(),
	})
	logger.Warn("Команда отклонена шлюзом авторизации")

	if err := r.effects.DeleteMessage(m.ChannelID, m.ID); err != nil {
		logger.WithError(err).Error("Не удалось удалить отклонённую команду")
	}
	if m.LogChannelID != "" {
		notice := fmt.Sprintf("%s was denied command %q in #%s: %s",
			m.AuthorName, name, m.ChannelName, verdict)
		if err := r.effects.Send(m.LogChannelID, notice); err != nil {
			logger.WithError(err).Error("Не удалось записать в журнальный канал")
		}
	}
}

// handleUnknown обрабатывает нераспознанную команду.
// Защита в глубину: текст от не-админа всё равно прогоняется через
// скринер — в нераспознанной «команде» может быть запрещённое слово.
func (r *Router) handleUnknown(name string, m strikes.Message, roles []string) {
	if !filters.HasRole(roles, r.cfg.AdminRole) {
		r.screener.Screen(m)
		return
	}
	if m.ChannelName != r.cfg.AdminChannel {
		// Админ ошибся каналом — молча подчищаем
		if err := r.effects.DeleteMessage(m.ChannelID, m.ID); err != nil {
			log.WithError(err).Debug("Не удалось удалить нераспознанную команду")
		}
		return
	}
	r.send(m.ChannelID, fmt.Sprintf("command %q not recognized", name))
}

// send — утилита отправки с логированием ошибки транспорта.
func (r *Router) send(channelID, text string) {
	if err := r.effects.Send(channelID, text); err != nil {
		log.WithError(err).WithField("channel_id", channelID).Error("Ошибка отправки сообщения")
	}
}
