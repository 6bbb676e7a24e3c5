// Package strikes — screener.go проверяет входящие сообщения.
//
// Машина состояний одного сообщения:
// SCAN → (нет совпадения: CLEAR)
//      | (совпадение: STRIKE_RECORDED → {BELOW_THRESHOLD, AT_OR_ABOVE_THRESHOLD})
package strikes

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mnmenator/modbot/internal/common"
	"github.com/mnmenator/modbot/internal/features/blacklist"
	"github.com/mnmenator/modbot/internal/features/settings"
)

// Message — входящее сообщение в терминах ядра, без типов транспорта.
type Message struct {
	ID          string
	ChannelID   string
	ChannelName string
	GuildID     string
	GuildName   string
	AuthorID    string
	AuthorName  string
	Content     string
	// ID журнального канала сервера; пустая строка — журнала нет,
	// и это молча допускается
	LogChannelID string
}

// Effects — запросы к чат-транспорту. Все они fire-and-forget:
// ошибка логируется и никогда не роняет обработку.
type Effects interface {
	SendDM(userID, text string) error
	Send(channelID, text string) error
	DeleteMessage(channelID, messageID string) error
	Kick(guildID, userID, reason string) error
	Ban(guildID, userID, reason string) error
}

// Expiry планирует сгорание страйка через заданное время.
type Expiry interface {
	Schedule(guildID, memberID string, after time.Duration)
}

// Screener — скринер сообщений: сопоставляет текст с чёрным списком
// и ведёт цикл страйк → предупреждение → журнал → наказание → удаление.
type Screener struct {
	blacklist *blacklist.Store
	settings  *settings.Store
	ledger    *Ledger
	expiry    Expiry
	effects   Effects
}

// NewScreener создаёт скринер.
func NewScreener(bl *blacklist.Store, st *settings.Store, ledger *Ledger, expiry Expiry, effects Effects) *Screener {
	return &Screener{
		blacklist: bl,
		settings:  st,
		ledger:    ledger,
		expiry:    expiry,
		effects:   effects,
	}
}

// Screen проверяет одно сообщение. Сообщения без серверного контекста
// не проверяются никогда (отсев сообщений самого бота — на уровне событий).
//
// При совпадении:
//  1. Участнику начисляется страйк.
//  2. Достигнут порог — предупреждение об удалении, запись в журнал,
//     наказание (kick/ban по настройкам), затем удаление сообщения.
//     Наказание идёт ДО удаления, чтобы текст удаляемого сообщения
//     успел попасть в аудит.
//  3. Ниже порога — обычное предупреждение со счётом, планирование
//     сгорания через strike_expiration секунд, журнал, удаление.
//  4. Предупреждение уходит автору в личку, журнал — в журнальный канал,
//     если он есть.
func (sc *Screener) Screen(m Message) {
	if m.GuildID == "" {
		return
	}

	word, ok := sc.blacklist.Match(m.GuildName, m.Content)
	if !ok {
		return
	}

	set := sc.settings.Get(m.GuildName)
	count := sc.ledger.Increment(m.GuildID, m.AuthorID)

	logger := log.WithFields(log.Fields{
		"guild":   m.GuildName,
		"channel": m.ChannelName,
		"author":  m.AuthorName,
		"word":    word,
		"strikes": count,
		"text":    common.Truncate(m.Content, 100),
	})

	var warning, notice string
	if count >= set.StrikeThreshold {
		warning = fmt.Sprintf(
			"%s is a blacklisted word in %s. That was strike %d of %d, so you are being removed.",
			word, m.GuildName, count, set.StrikeThreshold)
		notice = fmt.Sprintf(
			"Removing %s (%s) for saying %q in #%s. Deleted message: %q",
			m.AuthorName, set.Punishment, word, m.ChannelName, m.Content)
		logger.Warn("Порог страйков достигнут, участник удаляется")

		sc.punish(m, set.Punishment, word)
	} else {
		warning = fmt.Sprintf(
			"%s is a blacklisted word in %s, you have %d strikes out of an allowed %d.",
			word, m.GuildName, count, set.StrikeThreshold)
		notice = fmt.Sprintf(
			"%s said %q in #%s and now has %d strikes. Deleted message: %q",
			m.AuthorName, word, m.ChannelName, count, m.Content)
		logger.Info("Страйк начислен")

		sc.expiry.Schedule(m.GuildID, m.AuthorID, expirationDelay(set.StrikeExpiration))
	}

	if err := sc.effects.DeleteMessage(m.ChannelID, m.ID); err != nil {
		logger.WithError(err).Error("Не удалось удалить сообщение")
	}
	if err := sc.effects.SendDM(m.AuthorID, warning); err != nil {
		// Забаненному участнику личка может быть уже недоступна
		logger.WithError(err).Warn("Не удалось отправить предупреждение в личку")
	}
	if m.LogChannelID != "" {
		if err := sc.effects.Send(m.LogChannelID, notice); err != nil {
			logger.WithError(err).Error("Не удалось записать в журнальный канал")
		}
	}
}

// punish выполняет настроенное наказание.
func (sc *Screener) punish(m Message, punishment, word string) {
	reason := fmt.Sprintf("said blacklisted word %q", word)

	var err error
	switch punishment {
	case settings.PunishmentBan:
		err = sc.effects.Ban(m.GuildID, m.AuthorID, reason)
	default:
		err = sc.effects.Kick(m.GuildID, m.AuthorID, reason)
	}
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"guild":      m.GuildName,
			"author":     m.AuthorName,
			"punishment": punishment,
		}).Error("Не удалось наказать участника")
	}
}

// expirationDelay переводит strike_expiration (секунды, дробные) в Duration.
func expirationDelay(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
