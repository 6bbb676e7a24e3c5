// Package textfile управляет плоскими текстовыми записями на диске.
// Одна запись = один файл <dir>/<key>.txt. Это вся «база данных» бота:
// чёрные списки и настройки хранятся по одному файлу на сервер.
//
// Полная перезапись выполняется атомарно: содержимое пишется во временный
// файл в том же каталоге, затем rename поверх целевого. Частично
// записанная запись не видна читателю ни при каком падении процесса.
package textfile

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Store хранит по одной текстовой записи на ключ в заданном каталоге.
type Store struct {
	dir string
}

// New создаёт хранилище, при необходимости создавая каталог.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("не удалось создать каталог %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// path возвращает путь файла записи для ключа.
func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".txt")
}

// checkKey отклоняет ключи, способные увести запись за пределы каталога.
// Ключи приходят из имён серверов, то есть от внешнего мира.
func checkKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("недопустимый ключ записи %q", key)
	}
	return nil
}

// EnsureWithDefault создаёт запись с содержимым def, если её ещё нет.
// Существующая запись не трогается.
func (s *Store) EnsureWithDefault(key, def string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path(key), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil
		}
		return fmt.Errorf("не удалось создать запись %q: %w", key, err)
	}
	defer f.Close()

	if _, err := f.WriteString(def); err != nil {
		return fmt.Errorf("не удалось записать значения по умолчанию %q: %w", key, err)
	}
	return nil
}

// ReadLines читает запись построчно, обрезая пробелы по краям строк.
// Пустые строки пропускаются.
func (s *Store) ReadLines(key string) ([]string, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path(key))
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть запись %q: %w", key, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("не удалось прочитать запись %q: %w", key, err)
	}
	return lines, nil
}

// WriteLines атомарно перезаписывает запись целиком.
func (s *Store) WriteLines(key string, lines []string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, key+".tmp-*")
	if err != nil {
		return fmt.Errorf("не удалось создать временный файл для %q: %w", key, err)
	}
	tmpName := tmp.Name()

	// При любой ошибке ниже временный файл подчищается
	cleanup := func() {
		tmp.Close()
		if rmErr := os.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			log.WithError(rmErr).WithField("file", tmpName).Warn("Не удалось удалить временный файл")
		}
	}

	for _, line := range lines {
		if _, err := tmp.WriteString(line + "\n"); err != nil {
			cleanup()
			return fmt.Errorf("не удалось записать %q: %w", key, err)
		}
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("не удалось закрыть временный файл %q: %w", key, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		cleanup()
		return fmt.Errorf("не удалось заменить запись %q: %w", key, err)
	}
	return nil
}

// AppendLine дописывает одну строку в конец записи.
func (s *Store) AppendLine(key, line string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path(key), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("не удалось открыть запись %q для дозаписи: %w", key, err)
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("не удалось дописать в запись %q: %w", key, err)
	}
	return nil
}

// Remove удаляет запись. Отсутствие файла ошибкой не считается.
func (s *Store) Remove(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("не удалось удалить запись %q: %w", key, err)
	}
	return nil
}

// Rename переименовывает запись. Ошибка ФС здесь фатальна для операции
// переименования сервера и пробрасывается наверх, не проглатывается.
func (s *Store) Rename(before, after string) error {
	if err := checkKey(before); err != nil {
		return err
	}
	if err := checkKey(after); err != nil {
		return err
	}
	if err := os.Rename(s.path(before), s.path(after)); err != nil {
		return fmt.Errorf("не удалось переименовать запись %q -> %q: %w", before, after, err)
	}
	return nil
}
