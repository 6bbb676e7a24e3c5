// Package strikes — ledger.go ведёт счётчики страйков в памяти.
// Ключ счётчика — пара (сервер, участник) по стабильным ID.
//
// Инкременты из обработчика сообщений, сгорание из планировщика и
// очистка при выходе участника приходят из РАЗНЫХ горутин, поэтому все
// мутации сериализованы одним мьютексом. Счётчик никогда не уходит в
// минус: сгорание по отсутствующему или нулевому счётчику — тихий no-op.
package strikes

import "sync"

// pair — ключ счётчика страйков.
type pair struct {
	Guild  string
	Member string
}

// Ledger хранит счётчики страйков всех серверов.
type Ledger struct {
	mu     sync.Mutex
	counts map[pair]int
}

// NewLedger создаёт пустой реестр страйков.
func NewLedger() *Ledger {
	return &Ledger{counts: make(map[pair]int)}
}

// InitGuild заводит нулевые счётчики для всех перечисленных участников.
// Вызывается при подключении бота к серверу.
func (l *Ledger) InitGuild(guildID string, memberIDs []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, id := range memberIDs {
		l.counts[pair{guildID, id}] = 0
	}
}

// ClearGuild удаляет все счётчики сервера (бот покинул сервер).
func (l *Ledger) ClearGuild(guildID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for k := range l.counts {
		if k.Guild == guildID {
			delete(l.counts, k)
		}
	}
}

// AddMember заводит нулевой счётчик для нового участника.
func (l *Ledger) AddMember(guildID, memberID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.counts[pair{guildID, memberID}] = 0
}

// RemoveMember удаляет счётчик ушедшего участника.
// Запланированные на него сгорания отменять не нужно: они превратятся
// в no-op при срабатывании.
func (l *Ledger) RemoveMember(guildID, memberID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.counts, pair{guildID, memberID})
}

// Increment добавляет страйк и возвращает новое значение.
// Отсутствующий счётчик сначала заводится с нуля (подстраховка: участник
// мог отправить сообщение раньше, чем пришло событие о его вступлении).
func (l *Ledger) Increment(guildID, memberID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := pair{guildID, memberID}
	l.counts[k]++
	return l.counts[k]
}

// Expire снимает один страйк по истечении strike_expiration.
// Если счётчика уже нет или он нулевой — ничего не происходит.
func (l *Ledger) Expire(guildID, memberID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := pair{guildID, memberID}
	if n, ok := l.counts[k]; ok && n > 0 {
		l.counts[k] = n - 1
	}
}

// Count возвращает текущее значение счётчика (0, если счётчика нет).
func (l *Ledger) Count(guildID, memberID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.counts[pair{guildID, memberID}]
}

// Summary возвращает число отслеживаемых участников и сумму всех
// страйков. Используется часовым сводным логом планировщика.
func (l *Ledger) Summary() (members, total int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, n := range l.counts {
		members++
		total += n
	}
	return members, total
}
