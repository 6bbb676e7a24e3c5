// Package config загружает конфигурацию бота из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- Discord ---
	DiscordToken string `envconfig:"DISCORD_TOKEN" required:"true"`
	// Префикс команд. Всё, что начинается с него, идёт в роутер команд,
	// остальное — в скринер сообщений.
	CommandPrefix string `envconfig:"COMMAND_PREFIX" default:"!"`
	// Имя роли, дающей доступ к админ-командам
	AdminRole string `envconfig:"ADMIN_ROLE" default:"Admin"`
	// Имя канала, в котором принимаются админ-команды
	AdminChannel string `envconfig:"ADMIN_CHANNEL" default:"bot-cli"`
	// Имя канала для журнала модерации. Если такого канала на сервере нет —
	// журнал туда просто не пишется (это не ошибка).
	LogChannel string `envconfig:"LOG_CHANNEL" default:"bot-log"`

	// --- Storage ---
	// Каталоги плоских файлов. Один файл на сервер:
	// blacklists/<guild>.txt и settings/<guild>.txt
	BlacklistDir string `envconfig:"BLACKLIST_DIR" default:"blacklists"`
	SettingsDir  string `envconfig:"SETTINGS_DIR" default:"settings"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`

	// --- Rate Limiting ---
	// Лимит команд на пользователя (не лимит транспорта!)
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"10"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

// Validate проверяет согласованность конфигурации.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.CommandPrefix) == "" {
		return fmt.Errorf("COMMAND_PREFIX не может быть пустым")
	}
	if strings.ContainsAny(c.CommandPrefix, " \t\n") {
		return fmt.Errorf("COMMAND_PREFIX не может содержать пробелы")
	}
	if c.AdminRole == "" {
		return fmt.Errorf("ADMIN_ROLE не может быть пустым")
	}
	if c.AdminChannel == "" {
		return fmt.Errorf("ADMIN_CHANNEL не может быть пустым")
	}
	if c.BlacklistDir == "" || c.SettingsDir == "" {
		return fmt.Errorf("BLACKLIST_DIR/SETTINGS_DIR не могут быть пустыми")
	}
	if c.RateLimitRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS должен быть > 0")
	}
	return nil
}

// Load читает переменные окружения и заполняет структуру Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
