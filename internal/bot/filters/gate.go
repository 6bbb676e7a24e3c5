// Package filters — gate.go решает, кому и где доступны админ-команды.
//
// Проверки выстроены явным упорядоченным списком предикатов, каждый
// возвращает вердикт. Первый не-Allow побеждает, поэтому порядок задаёт,
// какая из ошибок сообщается, когда нарушены сразу несколько условий:
// не-админ, написавший в админ-канале, получает отказ по роли, а не по
// каналу.
package filters

// Verdict — исход проверки авторизации.
type Verdict int

const (
	// Allow — команда разрешена
	Allow Verdict = iota
	// NoPrivateMessage — команда пришла в личку; молча игнорируется,
	// чтобы не раскрывать бота посторонним
	NoPrivateMessage
	// MissingRole — у автора нет админ-роли
	MissingRole
	// DisabledCommand — команда вызвана вне админ-канала
	DisabledCommand
)

// String возвращает имя вердикта для журнала.
func (v Verdict) String() string {
	switch v {
	case Allow:
		return "Allow"
	case NoPrivateMessage:
		return "NoPrivateMessage"
	case MissingRole:
		return "MissingRole"
	case DisabledCommand:
		return "DisabledCommand"
	default:
		return "Unknown"
	}
}

// Invocation — контекст вызова команды: где и кем она вызвана.
type Invocation struct {
	// Пустой GuildID означает личное сообщение
	GuildID     string
	ChannelName string
	AuthorRoles []string
}

// Check — один предикат авторизации.
type Check func(inv Invocation) Verdict

// Gate — упорядоченный список проверок перед любым мутирующим обработчиком.
type Gate struct {
	checks []Check
}

// NewGate собирает проверки в фиксированном порядке:
// серверный контекст → роль → канал.
func NewGate(adminRole, adminChannel string) *Gate {
	return &Gate{checks: []Check{
		func(inv Invocation) Verdict {
			if inv.GuildID == "" {
				return NoPrivateMessage
			}
			return Allow
		},
		func(inv Invocation) Verdict {
			if !HasRole(inv.AuthorRoles, adminRole) {
				return MissingRole
			}
			return Allow
		},
		func(inv Invocation) Verdict {
			if inv.ChannelName != adminChannel {
				return DisabledCommand
			}
			return Allow
		},
	}}
}

// Authorize прогоняет вызов через все проверки по порядку.
func (g *Gate) Authorize(inv Invocation) Verdict {
	for _, check := range g.checks {
		if v := check(inv); v != Allow {
			return v
		}
	}
	return Allow
}

// HasRole проверяет наличие роли в списке ролей автора.
func HasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
