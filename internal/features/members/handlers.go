// Package members — handlers.go обрабатывает команды:
// !kick <имена...>, !ban <имена...>, !unban <имена...>
package members

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Sender отправляет текст в канал. Реализуется discord-адаптером бота.
type Sender interface {
	Send(channelID, text string) error
}

// Handler обрабатывает команды членства.
type Handler struct {
	service *Service
	sender  Sender
}

// NewHandler создаёт обработчик команд членства.
func NewHandler(service *Service, sender Sender) *Handler {
	return &Handler{service: service, sender: sender}
}

// HandleKick выгоняет каждого названного участника.
// Неудача по одному имени не прерывает обработку остальных.
func (h *Handler) HandleKick(guildID, channelID string, names []string) {
	h.batch(guildID, channelID, names, "kick", h.service.Kick)
}

// HandleBan банит каждого названного участника.
func (h *Handler) HandleBan(guildID, channelID string, names []string) {
	h.batch(guildID, channelID, names, "ban", h.service.Ban)
}

// HandleUnban снимает бан с каждого названного пользователя.
func (h *Handler) HandleUnban(guildID, channelID string, names []string) {
	h.batch(guildID, channelID, names, "unban", h.service.Unban)
}

// batch выполняет действие по каждому имени и отчитывается по каждому отдельно.
func (h *Handler) batch(guildID, channelID string, names []string, verb string, action func(guildID, name string) error) {
	if len(names) == 0 {
		h.send(channelID, fmt.Sprintf("Usage: %s <names...>", verb))
		return
	}

	for _, name := range names {
		if err := action(guildID, name); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"guild_id": guildID,
				"name":     name,
				"action":   verb,
			}).Warn("Действие членства не удалось")
			h.send(channelID, fmt.Sprintf("failed to %s %s", verb, name))
			continue
		}
		h.send(channelID, fmt.Sprintf("%s: %s succeeded", name, verb))
	}
}

// send — утилита отправки с логированием ошибки транспорта.
func (h *Handler) send(channelID, text string) {
	if err := h.sender.Send(channelID, text); err != nil {
		log.WithError(err).WithField("channel_id", channelID).Error("Ошибка отправки сообщения")
	}
}
