// Package settings — handlers.go обрабатывает команду:
// !configure show|strike_threshold <int>|strike_expiration <float>|punishment <kick|ban>
package settings

import (
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// Sender отправляет текст в канал. Реализуется discord-адаптером бота.
type Sender interface {
	Send(channelID, text string) error
}

// Handler обрабатывает команду configure.
type Handler struct {
	store  *Store
	sender Sender
}

// NewHandler создаёт обработчик настроек.
func NewHandler(store *Store, sender Sender) *Handler {
	return &Handler{store: store, sender: sender}
}

// Handle разбирает подкоманду configure и выполняет её.
// guildName — имя сервера, channelID — куда отвечать.
func (h *Handler) Handle(guildName, channelID string, args []string) {
	if len(args) == 0 {
		h.send(channelID, "Usage: configure show | strike_threshold <int> | strike_expiration <float> | punishment <kick|ban>")
		return
	}

	sub := args[0]
	if sub == "show" {
		h.send(channelID, describe(h.store.Get(guildName)))
		return
	}

	if len(args) < 2 {
		h.send(channelID, fmt.Sprintf("configure %s requires a value", sub))
		return
	}

	if err := h.store.Set(guildName, sub, args[1]); err != nil {
		// Ошибки валидации несут готовый текст для пользователя
		h.send(channelID, err.Error())
		return
	}
	h.send(channelID, fmt.Sprintf("%s is now %s", sub, args[1]))
}

// describe форматирует настройки для ответа на configure show.
func describe(s Settings) string {
	return fmt.Sprintf("strike_threshold: %d\nstrike_expiration: %s\npunishment: %s",
		s.StrikeThreshold,
		strconv.FormatFloat(s.StrikeExpiration, 'g', -1, 64),
		s.Punishment)
}

// send — утилита отправки с логированием ошибки транспорта.
func (h *Handler) send(channelID, text string) {
	if err := h.sender.Send(channelID, text); err != nil {
		log.WithError(err).WithField("channel_id", channelID).Error("Ошибка отправки сообщения")
	}
}
