// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях бота.
// Эти ошибки позволяют обработчикам различать типы проблем
// и отправлять пользователю понятные сообщения.
package common

import "errors"

// Ошибки чёрного списка
var (
	// ErrAlreadyBlacklisted — слово уже есть в чёрном списке
	ErrAlreadyBlacklisted = errors.New("already blacklisted")
	// ErrNotBlacklisted — слова нет в чёрном списке
	ErrNotBlacklisted = errors.New("not blacklisted")
)

// Ошибки настроек. Текст показывается пользователю как есть,
// хранилище при этих ошибках остаётся нетронутым.
var (
	// ErrUnknownSetting — такого ключа настройки не существует
	ErrUnknownSetting = errors.New("unknown setting")
	// ErrBadThreshold — порог страйков должен быть целым числом >= 1
	ErrBadThreshold = errors.New("strike_threshold must be a whole number of at least 1")
	// ErrBadExpiration — время жизни страйка должно быть числом > 0
	ErrBadExpiration = errors.New("strike_expiration must be a number greater than 0")
	// ErrBadPunishment — наказание бывает только kick или ban
	ErrBadPunishment = errors.New("punishment must be either kick or ban")
)

// Ошибки управления участниками
var (
	// ErrMemberNotFound — участник с таким именем не найден на сервере
	ErrMemberNotFound = errors.New("member not found")
	// ErrBanNotFound — бан с таким именем не найден
	ErrBanNotFound = errors.New("no ban found for that name")
)
