// Package blacklist — handlers.go обрабатывает команду:
// !blacklist show | add <слова...> | remove <слова...>
package blacklist

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mnmenator/modbot/internal/common"
)

// Sender отправляет текст в канал. Реализуется discord-адаптером бота.
type Sender interface {
	Send(channelID, text string) error
}

// Handler обрабатывает команду blacklist.
type Handler struct {
	store  *Store
	sender Sender
}

// NewHandler создаёт обработчик чёрного списка.
func NewHandler(store *Store, sender Sender) *Handler {
	return &Handler{store: store, sender: sender}
}

// Handle разбирает подкоманду blacklist и выполняет её.
// После add/remove в канал отправляется полный обновлённый список.
func (h *Handler) Handle(guildName, channelID string, args []string) {
	if len(args) == 0 {
		h.send(channelID, "Usage: blacklist show | add <words...> | remove <words...>")
		return
	}

	switch args[0] {
	case "show":
		h.send(channelID, "Blacklist: "+common.JoinWords(h.store.Words(guildName)))

	case "add":
		if len(args) < 2 {
			h.send(channelID, "blacklist add requires at least one word")
			return
		}
		for _, word := range args[1:] {
			if err := h.store.Add(guildName, word); err != nil {
				h.reportWordError(channelID, word, err)
			}
		}
		h.send(channelID, "Blacklist: "+common.JoinWords(h.store.Words(guildName)))

	case "remove":
		if len(args) < 2 {
			h.send(channelID, "blacklist remove requires at least one word")
			return
		}
		for _, word := range args[1:] {
			if err := h.store.Remove(guildName, word); err != nil {
				h.reportWordError(channelID, word, err)
			}
		}
		h.send(channelID, "Blacklist: "+common.JoinWords(h.store.Words(guildName)))

	default:
		h.send(channelID, fmt.Sprintf("unknown blacklist subcommand %q", args[0]))
	}
}

// reportWordError сообщает пользователю про одно слово, не прерывая пачку.
func (h *Handler) reportWordError(channelID, word string, err error) {
	switch {
	case errors.Is(err, common.ErrAlreadyBlacklisted):
		h.send(channelID, fmt.Sprintf("%s is already blacklisted", word))
	case errors.Is(err, common.ErrNotBlacklisted):
		h.send(channelID, fmt.Sprintf("%s is not blacklisted", word))
	default:
		// Ошибка диска — не ошибка пользователя
		log.WithError(err).WithField("word", word).Error("Ошибка записи чёрного списка")
		h.send(channelID, fmt.Sprintf("failed to update blacklist for %s", word))
	}
}

// send — утилита отправки с логированием ошибки транспорта.
func (h *Handler) send(channelID, text string) {
	if err := h.sender.Send(channelID, text); err != nil {
		log.WithError(err).WithField("channel_id", channelID).Error("Ошибка отправки сообщения")
	}
}
