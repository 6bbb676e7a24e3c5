// Package settings — store.go хранит настройки модерации по серверам.
// В памяти — map по имени сервера, на диске — по одной текстовой записи
// на сервер (write-through: память и диск обновляются вместе).
package settings

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/mnmenator/modbot/internal/common"
	"github.com/mnmenator/modbot/internal/db/textfile"
)

// Store управляет настройками всех серверов.
type Store struct {
	mu      sync.RWMutex
	files   *textfile.Store
	byGuild map[string]Settings
}

// NewStore создаёт хранилище настроек поверх файлового стора.
func NewStore(files *textfile.Store) *Store {
	return &Store{
		files:   files,
		byGuild: make(map[string]Settings),
	}
}

// Load загружает настройки сервера с диска.
// Если записи ещё нет — создаёт её со значениями по умолчанию.
func (s *Store) Load(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.files.EnsureWithDefault(name, DefaultRecord); err != nil {
		return err
	}
	lines, err := s.files.ReadLines(name)
	if err != nil {
		return err
	}

	parsed, err := parseRecord(name, lines)
	if err != nil {
		return err
	}
	s.byGuild[name] = parsed
	return nil
}

// parseRecord разбирает строки записи "ключ значение тип".
// Недостающие ключи добираются из значений по умолчанию.
func parseRecord(name string, lines []string) (Settings, error) {
	out := Defaults()
	for _, line := range lines {
		info := strings.Fields(line)
		if len(info) != 3 {
			return out, fmt.Errorf("повреждённая запись настроек %q: строка %q", name, line)
		}
		key, value, tag := info[0], info[1], info[2]

		switch tag {
		case "i":
			n, err := strconv.Atoi(value)
			if err != nil {
				return out, fmt.Errorf("повреждённая запись настроек %q: %w", name, err)
			}
			if key == KeyStrikeThreshold {
				out.StrikeThreshold = n
			}
		case "f":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return out, fmt.Errorf("повреждённая запись настроек %q: %w", name, err)
			}
			if key == KeyStrikeExpiration {
				out.StrikeExpiration = f
			}
		case "s":
			if key == KeyPunishment {
				out.Punishment = value
			}
		default:
			return out, fmt.Errorf("повреждённая запись настроек %q: неизвестный тип %q", name, tag)
		}
	}
	return out, nil
}

// Get возвращает настройки сервера. Для известного сервера не падает
// никогда; для неизвестного возвращает значения по умолчанию.
func (s *Store) Get(name string) Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if set, ok := s.byGuild[name]; ok {
		return set
	}
	return Defaults()
}

// Set валидирует и сохраняет одно значение настройки.
// При ошибке валидации хранилище остаётся нетронутым, а вызывающему
// возвращается ошибка с текстом для пользователя.
func (s *Store) Set(name, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.byGuild[name]
	if !ok {
		cur = Defaults()
	}

	switch key {
	case KeyStrikeThreshold:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return common.ErrBadThreshold
		}
		cur.StrikeThreshold = n
	case KeyStrikeExpiration:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return common.ErrBadExpiration
		}
		cur.StrikeExpiration = f
	case KeyPunishment:
		if value != PunishmentKick && value != PunishmentBan {
			return common.ErrBadPunishment
		}
		cur.Punishment = value
	default:
		return common.ErrUnknownSetting
	}

	// Write-through: сначала диск, потом память. Упавшую запись на диск
	// пробрасываем, память в этом случае не трогаем.
	if err := s.files.WriteLines(name, cur.Lines()); err != nil {
		return err
	}
	s.byGuild[name] = cur

	log.WithFields(log.Fields{
		"guild": name,
		"key":   key,
		"value": value,
	}).Info("Настройка обновлена")
	return nil
}

// Delete удаляет настройки сервера из памяти и с диска.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byGuild, name)
	return s.files.Remove(name)
}

// Rename переносит настройки на новое имя сервера.
// Ошибка переименования файла пробрасывается, память при этом не трогается.
func (s *Store) Rename(before, after string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.files.Rename(before, after); err != nil {
		return err
	}
	if set, ok := s.byGuild[before]; ok {
		s.byGuild[after] = set
		delete(s.byGuild, before)
	}
	return nil
}
