// Package middleware содержит промежуточные обработчики для логирования,
// восстановления после паники и rate-limiting.
package middleware

import (
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/mnmenator/modbot/internal/common"
)

// LogMessage логирует входящее сообщение.
// Записывает: author_id, guild_id, channel_id, текст (первые 50 символов).
func LogMessage(m *discordgo.MessageCreate) {
	if m == nil || m.Author == nil {
		return
	}

	log.WithFields(log.Fields{
		"author_id":  m.Author.ID,
		"author":     m.Author.Username,
		"guild_id":   m.GuildID,
		"channel_id": m.ChannelID,
		"text":       common.Truncate(m.Content, 50),
	}).Debug("Входящее сообщение")
}
