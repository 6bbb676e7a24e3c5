// Package members — service.go содержит бизнес-логику управления участниками:
// разрешение имён в ID и действия членства (kick/ban/unban).
package members

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/mnmenator/modbot/internal/common"
)

// Member — участник или бан в терминах ядра.
type Member struct {
	ID   string
	Name string
}

// Directory — справочник участников и действия членства.
// Реализуется discord-адаптером бота.
type Directory interface {
	Members(guildID string) ([]Member, error)
	Bans(guildID string) ([]Member, error)
	Kick(guildID, userID, reason string) error
	Ban(guildID, userID, reason string) error
	Unban(guildID, userID string) error
}

// Service управляет участниками сервера.
type Service struct {
	dir Directory
}

// NewService создаёт сервис участников.
func NewService(dir Directory) *Service {
	return &Service{dir: dir}
}

// ResolveMember находит ID участника по имени (без учёта регистра).
func (s *Service) ResolveMember(guildID, name string) (string, error) {
	list, err := s.dir.Members(guildID)
	if err != nil {
		return "", fmt.Errorf("не удалось получить список участников: %w", err)
	}
	for _, m := range list {
		if strings.EqualFold(m.Name, name) {
			return m.ID, nil
		}
	}
	return "", common.ErrMemberNotFound
}

// resolveBan находит ID забаненного пользователя по имени.
func (s *Service) resolveBan(guildID, name string) (string, error) {
	list, err := s.dir.Bans(guildID)
	if err != nil {
		return "", fmt.Errorf("не удалось получить список банов: %w", err)
	}
	for _, m := range list {
		if strings.EqualFold(m.Name, name) {
			return m.ID, nil
		}
	}
	return "", common.ErrBanNotFound
}

// Kick выгоняет участника по имени.
func (s *Service) Kick(guildID, name string) error {
	id, err := s.ResolveMember(guildID, name)
	if err != nil {
		return err
	}
	if err := s.dir.Kick(guildID, id, "kicked by an administrator"); err != nil {
		return err
	}
	log.WithFields(log.Fields{"guild_id": guildID, "name": name}).Info("Участник выгнан")
	return nil
}

// Ban банит участника по имени.
func (s *Service) Ban(guildID, name string) error {
	id, err := s.ResolveMember(guildID, name)
	if err != nil {
		return err
	}
	if err := s.dir.Ban(guildID, id, "banned by an administrator"); err != nil {
		return err
	}
	log.WithFields(log.Fields{"guild_id": guildID, "name": name}).Info("Участник забанен")
	return nil
}

// Unban снимает бан по имени, сверяясь со списком текущих банов.
func (s *Service) Unban(guildID, name string) error {
	id, err := s.resolveBan(guildID, name)
	if err != nil {
		return err
	}
	if err := s.dir.Unban(guildID, id); err != nil {
		return err
	}
	log.WithFields(log.Fields{"guild_id": guildID, "name": name}).Info("Бан снят")
	return nil
}
