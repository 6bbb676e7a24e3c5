// Package blacklist — matcher.go проверяет текст сообщения на запрещённые слова.
package blacklist

import "strings"

// Match возвращает ПЕРВОЕ слово чёрного списка (в порядке хранения),
// являющееся подстрокой текста. Регистр не важен, совпадение по
// подстроке, не по целому слову. Даже если запрещённых слов в тексте
// несколько, сообщается только первое найденное.
func (s *Store) Match(name, text string) (string, bool) {
	lowered := strings.ToLower(text)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, word := range s.byGuild[name] {
		if strings.Contains(lowered, word) {
			return word, true
		}
	}
	return "", false
}
