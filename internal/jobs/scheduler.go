// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ежесекундный прогон очереди
// сгорания страйков и часовая сводка по реестру.
//
// Сгорания специально НЕ делаются отдельными таймерами на каждый страйк:
// единый прогон проводит их через тот же мьютекс реестра, что и
// инкременты, поэтому гонка «новый страйк против сгорания» невозможна.
// Сгорание по уже удалённому счётчику реестр молча игнорирует.
package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/mnmenator/modbot/internal/features/strikes"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron   *cron.Cron
	queue  *ExpiryQueue
	ledger *strikes.Ledger
}

// NewScheduler создаёт планировщик сгорания страйков.
func NewScheduler(ledger *strikes.Ledger) *Scheduler {
	return &Scheduler{
		// Поле секунд нужно для ежесекундного прогона очереди
		cron:   cron.New(cron.WithSeconds()),
		queue:  NewExpiryQueue(),
		ledger: ledger,
	}
}

// Schedule ставит сгорание одного страйка через after.
// Реализует strikes.Expiry.
func (s *Scheduler) Schedule(guildID, memberID string, after time.Duration) {
	s.queue.Add(guildID, memberID, time.Now().Add(after))
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start() {
	// Прогон очереди сгораний каждую секунду. Дедлайн strike_expiration
	// задаётся в секундах, так что опоздание до секунды несущественно.
	s.cron.AddFunc("* * * * * *", s.sweep)

	// Часовая сводка по реестру
	s.cron.AddFunc("0 0 * * * *", func() {
		members, total := s.ledger.Summary()
		log.WithFields(log.Fields{
			"members": members,
			"strikes": total,
			"pending": s.queue.Len(),
		}).Info("[CRON] Сводка реестра страйков")
	})

	s.cron.Start()
	log.Info("Планировщик задач запущен")
}

// sweep проводит все созревшие сгорания через реестр.
func (s *Scheduler) sweep() {
	due := s.queue.PopDue(time.Now())
	for _, e := range due {
		s.ledger.Expire(e.GuildID, e.MemberID)
	}
	if len(due) > 0 {
		log.WithField("count", len(due)).Debug("[CRON] Страйки сгорели")
	}
}

// Stop останавливает планировщик, дождавшись текущих задач.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
