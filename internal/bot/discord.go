// Package bot — discord.go адаптирует discordgo-сессию к интерфейсам ядра:
// эффекты скринера (strikes.Effects), справочник участников
// (members.Directory) и отправка ответов обработчиков (Sender).
// Ядро типов discordgo не видит.
package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/mnmenator/modbot/internal/features/members"
)

// Discord — адаптер исходящих запросов к Discord API.
type Discord struct {
	session *discordgo.Session
}

// NewDiscord создаёт адаптер поверх открытой сессии.
func NewDiscord(session *discordgo.Session) *Discord {
	return &Discord{session: session}
}

// Send отправляет текст в канал.
func (d *Discord) Send(channelID, text string) error {
	_, err := d.session.ChannelMessageSend(channelID, text)
	return err
}

// SendDM отправляет пользователю личное сообщение.
func (d *Discord) SendDM(userID, text string) error {
	ch, err := d.session.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("не удалось открыть личный канал: %w", err)
	}
	_, err = d.session.ChannelMessageSend(ch.ID, text)
	return err
}

// DeleteMessage удаляет сообщение.
func (d *Discord) DeleteMessage(channelID, messageID string) error {
	return d.session.ChannelMessageDelete(channelID, messageID)
}

// Kick выгоняет участника с сервера.
func (d *Discord) Kick(guildID, userID, reason string) error {
	return d.session.GuildMemberDeleteWithReason(guildID, userID, reason)
}

// Ban банит участника.
func (d *Discord) Ban(guildID, userID, reason string) error {
	return d.session.GuildBanCreateWithReason(guildID, userID, reason, 0)
}

// Unban снимает бан.
func (d *Discord) Unban(guildID, userID string) error {
	return d.session.GuildBanDelete(guildID, userID)
}

// Members возвращает текущих участников сервера.
// Сначала кеш состояния, при пустом кеше — запрос к API.
func (d *Discord) Members(guildID string) ([]members.Member, error) {
	if g, err := d.session.State.Guild(guildID); err == nil && len(g.Members) > 0 {
		out := make([]members.Member, 0, len(g.Members))
		for _, m := range g.Members {
			out = append(out, members.Member{ID: m.User.ID, Name: m.User.Username})
		}
		return out, nil
	}

	list, err := d.session.GuildMembers(guildID, "", 1000)
	if err != nil {
		return nil, err
	}
	out := make([]members.Member, 0, len(list))
	for _, m := range list {
		out = append(out, members.Member{ID: m.User.ID, Name: m.User.Username})
	}
	return out, nil
}

// Bans возвращает текущие баны сервера.
func (d *Discord) Bans(guildID string) ([]members.Member, error) {
	bans, err := d.session.GuildBans(guildID, 100, "", "")
	if err != nil {
		return nil, err
	}
	out := make([]members.Member, 0, len(bans))
	for _, b := range bans {
		out = append(out, members.Member{ID: b.User.ID, Name: b.User.Username})
	}
	return out, nil
}
