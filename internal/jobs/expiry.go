// Package jobs — expiry.go хранит очередь отложенных сгораний страйков.
package jobs

import (
	"sync"
	"time"
)

// Expiration — одно запланированное сгорание страйка.
type Expiration struct {
	GuildID  string
	MemberID string
	FireAt   time.Time
}

// ExpiryQueue — очередь с дедлайнами. Счёт записей мал (по одной на
// незакрытый страйк), поэтому выборка линейная, без кучи.
type ExpiryQueue struct {
	mu      sync.Mutex
	entries []Expiration
}

// NewExpiryQueue создаёт пустую очередь.
func NewExpiryQueue() *ExpiryQueue {
	return &ExpiryQueue{}
}

// Add ставит сгорание в очередь на момент at.
func (q *ExpiryQueue) Add(guildID, memberID string, at time.Time) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.entries = append(q.entries, Expiration{
		GuildID:  guildID,
		MemberID: memberID,
		FireAt:   at,
	})
}

// PopDue забирает из очереди все записи с дедлайном не позже now.
func (q *ExpiryQueue) PopDue(now time.Time) []Expiration {
	q.mu.Lock()
	defer q.mu.Unlock()

	var due []Expiration
	kept := q.entries[:0]
	for _, e := range q.entries {
		if !e.FireAt.After(now) {
			due = append(due, e)
			continue
		}
		kept = append(kept, e)
	}
	q.entries = kept
	return due
}

// Len возвращает число ожидающих записей.
func (q *ExpiryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.entries)
}
