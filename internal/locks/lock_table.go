package locks

import (
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultTTL bounds how long a booking attempt may hold its lock. A crashed
// request self-heals once the entry expires.
const DefaultTTL = 30 * time.Second

type entry struct {
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Table is a process-local, time-boxed mutual-exclusion map keyed by
// (car, exact date range). It serializes concurrent booking attempts within
// one process; the unique index on bookings is the durable backstop across
// processes.
type Table struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func NewTable(ttl time.Duration) *Table {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Table{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Key derives the deterministic contention key for a booking attempt. Both
// timestamps are normalized to UTC RFC3339 before serialization, so any two
// date-string formats denoting the same instant produce the same key.
func Key(carID primitive.ObjectID, pickupDate, returnDate time.Time) string {
	return fmt.Sprintf("%s_%s_%s",
		carID.Hex(),
		pickupDate.UTC().Format(time.RFC3339),
		returnDate.UTC().Format(time.RFC3339),
	)
}

// IsLocked reports whether key holds a live lock. A discovered-expired entry
// is evicted as a side effect; there is no background sweep.
func (t *Table) IsLocked(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.isLockedLocked(key)
}

func (t *Table) isLockedLocked(key string) bool {
	e, ok := t.entries[key]
	if !ok {
		return false
	}
	if t.now().After(e.ExpiresAt) {
		delete(t.entries, key)
		return false
	}
	return true
}

// Acquire inserts or refreshes the entry for key with expiry now+TTL.
func (t *Table) Acquire(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	t.entries[key] = entry{CreatedAt: now, ExpiresAt: now.Add(t.ttl)}
}

// TryAcquire atomically checks and takes the lock, returning false if another
// attempt already holds it. Callers use this rather than IsLocked+Acquire so
// two goroutines cannot both pass the check.
func (t *Table) TryAcquire(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.isLockedLocked(key) {
		return false
	}
	now := t.now()
	t.entries[key] = entry{CreatedAt: now, ExpiresAt: now.Add(t.ttl)}
	return true
}

// Release removes the entry for key. Releasing an absent key is a no-op.
func (t *Table) Release(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, key)
}

// Len counts live entries, evicting expired ones along the way.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	for key, e := range t.entries {
		if now.After(e.ExpiresAt) {
			delete(t.entries, key)
		}
	}
	return len(t.entries)
}
