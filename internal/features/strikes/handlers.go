// Package strikes — handlers.go обрабатывает команду:
// !strike_count <имена...>
package strikes

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Sender отправляет текст в канал. Реализуется discord-адаптером бота.
type Sender interface {
	Send(channelID, text string) error
}

// Resolver находит ID участника по имени. Реализуется сервисом участников.
type Resolver interface {
	ResolveMember(guildID, name string) (string, error)
}

// Handler обрабатывает команду strike_count.
type Handler struct {
	ledger   *Ledger
	resolver Resolver
	sender   Sender
}

// NewHandler создаёт обработчик счётчиков страйков.
func NewHandler(ledger *Ledger, resolver Resolver, sender Sender) *Handler {
	return &Handler{ledger: ledger, resolver: resolver, sender: sender}
}

// HandleCount показывает текущее число страйков каждого названного
// участника. Неизвестное имя не прерывает обработку остальных.
func (h *Handler) HandleCount(guildID, channelID string, names []string) {
	if len(names) == 0 {
		h.send(channelID, "Usage: strike_count <names...>")
		return
	}

	for _, name := range names {
		memberID, err := h.resolver.ResolveMember(guildID, name)
		if err != nil {
			h.send(channelID, fmt.Sprintf("%s is not a member of this server", name))
			continue
		}
		h.send(channelID, fmt.Sprintf("%s has %d strikes", name, h.ledger.Count(guildID, memberID)))
	}
}

// send — утилита отправки с логированием ошибки транспорта.
func (h *Handler) send(channelID, text string) {
	if err := h.sender.Send(channelID, text); err != nil {
		log.WithError(err).WithField("channel_id", channelID).Error("Ошибка отправки сообщения")
	}
}
