// Package bot — parser.go разбирает текст на команду и аргументы.
package bot

import "strings"

// CommandParser парсит команды с настроенным префиксом.
type CommandParser struct {
	prefix string
}

// NewCommandParser создаёт парсер команд.
func NewCommandParser(prefix string) *CommandParser {
	return &CommandParser{prefix: prefix}
}

// ParseCommand разбирает текст на команду и аргументы.
// Текст без префикса командой не является.
func (p *CommandParser) ParseCommand(text string) (string, []string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, p.prefix) {
		return "", nil, false
	}
	text = strings.TrimSpace(strings.TrimPrefix(text, p.prefix))

	parts := strings.Fields(text)
	if len(parts) == 0 {
		return "", nil, false
	}

	command := strings.ToLower(parts[0])
	var args []string
	if len(parts) > 1 {
		args = parts[1:]
	}
	return command, args, true
}
