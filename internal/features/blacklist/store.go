// Package blacklist — store.go хранит чёрные списки слов по серверам.
// В памяти — упорядоченный список на сервер, на диске — по одному слову
// на строку. Дубликаты запрещены, слова нормализуются к нижнему регистру.
package blacklist

import (
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/mnmenator/modbot/internal/common"
	"github.com/mnmenator/modbot/internal/db/textfile"
)

// Store управляет чёрными списками всех серверов.
type Store struct {
	mu      sync.RWMutex
	files   *textfile.Store
	byGuild map[string][]string
}

// NewStore создаёт хранилище чёрных списков поверх файлового стора.
func NewStore(files *textfile.Store) *Store {
	return &Store{
		files:   files,
		byGuild: make(map[string][]string),
	}
}

// Load загружает чёрный список сервера с диска.
// Если записи ещё нет — создаёт пустую.
func (s *Store) Load(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.files.EnsureWithDefault(name, ""); err != nil {
		return err
	}
	words, err := s.files.ReadLines(name)
	if err != nil {
		return err
	}
	s.byGuild[name] = words
	return nil
}

// Words возвращает копию чёрного списка в порядке хранения.
func (s *Store) Words(name string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	words := s.byGuild[name]
	out := make([]string, len(words))
	copy(out, words)
	return out
}

// Add добавляет слово в чёрный список.
// Уже имеющееся слово не дублируется: возвращается ErrAlreadyBlacklisted.
// Новое слово дописывается в память и строкой в дисковую запись.
func (s *Store) Add(name, word string) error {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return common.ErrNotBlacklisted
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range s.byGuild[name] {
		if w == word {
			return common.ErrAlreadyBlacklisted
		}
	}
	if err := s.files.AppendLine(name, word); err != nil {
		return err
	}
	s.byGuild[name] = append(s.byGuild[name], word)

	log.WithFields(log.Fields{"guild": name, "word": word}).Info("Слово добавлено в чёрный список")
	return nil
}

// Remove убирает слово из чёрного списка.
// Отсутствующее слово — ErrNotBlacklisted. Дисковая запись переписывается
// целиком без строк, совпадающих со словом ТОЧНО (не по подстроке), чтобы
// не зацепить слово, частью которого является удаляемое.
func (s *Store) Remove(name, word string) error {
	word = strings.ToLower(strings.TrimSpace(word))

	s.mu.Lock()
	defer s.mu.Unlock()

	words := s.byGuild[name]
	kept := make([]string, 0, len(words))
	found := false
	for _, w := range words {
		if w == word {
			found = true
			continue
		}
		kept = append(kept, w)
	}
	if !found {
		return common.ErrNotBlacklisted
	}

	if err := s.files.WriteLines(name, kept); err != nil {
		return err
	}
	s.byGuild[name] = kept

	log.WithFields(log.Fields{"guild": name, "word": word}).Info("Слово убрано из чёрного списка")
	return nil
}

// Delete удаляет чёрный список сервера из памяти и с диска.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byGuild, name)
	return s.files.Remove(name)
}

// Rename переносит чёрный список на новое имя сервера.
// Ошибка переименования файла пробрасывается.
func (s *Store) Rename(before, after string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.files.Rename(before, after); err != nil {
		return err
	}
	if words, ok := s.byGuild[before]; ok {
		s.byGuild[after] = words
		delete(s.byGuild, before)
	}
	return nil
}
