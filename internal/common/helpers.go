// Package common содержит общие утилиты, используемые во всём проекте.
package common

import "strings"

// Truncate обрезает строку до максимум n рун, добавляя многоточие.
// Используется при логировании текста сообщений.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// JoinWords форматирует список слов для ответа пользователю.
// Пример: JoinWords([]string{"a", "b"}) → "a, b"
func JoinWords(words []string) string {
	if len(words) == 0 {
		return "(empty)"
	}
	return strings.Join(words, ", ")
}
