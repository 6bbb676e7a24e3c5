// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт файловые хранилища, реестр страйков,
// скринер, шлюз авторизации, обработчики и собирает всё в один объект Bot.
package app

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/mnmenator/modbot/internal/bot"
	"github.com/mnmenator/modbot/internal/bot/filters"
	"github.com/mnmenator/modbot/internal/config"
	"github.com/mnmenator/modbot/internal/db/textfile"
	"github.com/mnmenator/modbot/internal/features/blacklist"
	"github.com/mnmenator/modbot/internal/features/members"
	"github.com/mnmenator/modbot/internal/features/settings"
	"github.com/mnmenator/modbot/internal/features/strikes"
	"github.com/mnmenator/modbot/internal/jobs"
)

// App содержит все компоненты приложения.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	Session   *discordgo.Session
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(cfg *config.Config) (*App, error) {
	// === 1. Файловые хранилища ===
	settingsFiles, err := textfile.New(cfg.SettingsDir)
	if err != nil {
		return nil, fmt.Errorf("хранилище настроек: %w", err)
	}
	blacklistFiles, err := textfile.New(cfg.BlacklistDir)
	if err != nil {
		return nil, fmt.Errorf("хранилище чёрных списков: %w", err)
	}

	// === 2. Discord-сессия ===
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Discord-сессии: %w", err)
	}
	session.StateEnabled = true

	// === 3. Хранилища и реестр ===
	settingsStore := settings.NewStore(settingsFiles)
	blacklistStore := blacklist.NewStore(blacklistFiles)
	ledger := strikes.NewLedger()

	// === 4. Планировщик сгорания страйков ===
	scheduler := jobs.NewScheduler(ledger)

	// === 5. Адаптер транспорта и сервисы ===
	discord := bot.NewDiscord(session)
	memberService := members.NewService(discord)

	// === 6. Скринер и шлюз авторизации ===
	screener := strikes.NewScreener(blacklistStore, settingsStore, ledger, scheduler, discord)
	gate := filters.NewGate(cfg.AdminRole, cfg.AdminChannel)

	// === 7. Обработчики ===
	settingsHandler := settings.NewHandler(settingsStore, discord)
	blacklistHandler := blacklist.NewHandler(blacklistStore, discord)
	membersHandler := members.NewHandler(memberService, discord)
	strikesHandler := strikes.NewHandler(ledger, memberService, discord)

	// === 8. Роутер и бот ===
	router := bot.NewRouter(cfg, gate, screener, discord,
		settingsHandler, blacklistHandler, membersHandler, strikesHandler)
	b := bot.New(session, cfg, settingsStore, blacklistStore, ledger, screener, router)

	log.WithFields(log.Fields{
		"settings_dir":  cfg.SettingsDir,
		"blacklist_dir": cfg.BlacklistDir,
		"admin_role":    cfg.AdminRole,
		"admin_channel": cfg.AdminChannel,
	}).Info("Приложение собрано")

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		Session:   session,
	}, nil
}
