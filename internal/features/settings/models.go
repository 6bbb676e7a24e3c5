// Package settings — models.go описывает запись настроек сервера
// и её дисковый формат.
package settings

import "strconv"

// Ключи настроек. Других ключей в записи не бывает.
const (
	KeyStrikeThreshold  = "strike_threshold"
	KeyStrikeExpiration = "strike_expiration"
	KeyPunishment       = "punishment"
)

// Виды наказания при достижении порога страйков.
const (
	PunishmentKick = "kick"
	PunishmentBan  = "ban"
)

// DefaultRecord — содержимое записи настроек нового сервера.
// Формат строки: "ключ значение тип", тип ∈ {i=int, f=float, s=string}.
const DefaultRecord = "strike_threshold 3 i\nstrike_expiration 60.0 f\npunishment kick s\n"

// Settings — типизированные настройки модерации одного сервера.
type Settings struct {
	// Порог страйков, при достижении которого участник наказывается (>= 1)
	StrikeThreshold int
	// Через сколько секунд страйк сгорает (> 0)
	StrikeExpiration float64
	// Что делать при достижении порога: kick или ban
	Punishment string
}

// Defaults возвращает настройки по умолчанию: 3 страйка, 60 секунд, kick.
func Defaults() Settings {
	return Settings{
		StrikeThreshold:  3,
		StrikeExpiration: 60.0,
		Punishment:       PunishmentKick,
	}
}

// Lines сериализует настройки в строки дисковой записи.
// Порядок фиксированный: порог, время жизни, наказание.
func (s Settings) Lines() []string {
	return []string{
		KeyStrikeThreshold + " " + strconv.Itoa(s.StrikeThreshold) + " i",
		KeyStrikeExpiration + " " + strconv.FormatFloat(s.StrikeExpiration, 'g', -1, 64) + " f",
		KeyPunishment + " " + s.Punishment + " s",
	}
}
