package gate

import (
	"sync"
	"time"
)

// attempt is one IP's failed-attempt record.
type attempt struct {
	count   int
	resetAt time.Time
}

// BruteForce tracks failed authentication attempts per IP. Once an IP reaches
// the cap within the window, every request from it is rejected until the
// window expires. A successful authenticated action clears the record.
type BruteForce struct {
	mu       sync.Mutex
	attempts map[string]*attempt
	max      int
	period   time.Duration
	clock    Clock
}

// NewBruteForce creates a tracker blocking an IP after max failures per period.
func NewBruteForce(max int, period time.Duration, clock Clock) *BruteForce {
	if clock == nil {
		clock = SystemClock()
	}
	return &BruteForce{
		attempts: make(map[string]*attempt),
		max:      max,
		period:   period,
		clock:    clock,
	}
}

// IsBlocked reports whether ip has reached the failure cap. Expired records
// are deleted on read.
func (b *BruteForce) IsBlocked(ip string) bool {
	now := b.clock.Now()

	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.attempts[ip]
	if !ok {
		return false
	}

	if now.After(a.resetAt) {
		delete(b.attempts, ip)
		return false
	}

	return a.count >= b.max
}

// RecordFailure increments ip's failure count, starting a fresh window if the
// record is absent or expired.
func (b *BruteForce) RecordFailure(ip string) {
	now := b.clock.Now()

	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.attempts[ip]
	if !ok || now.After(a.resetAt) {
		b.attempts[ip] = &attempt{count: 1, resetAt: now.Add(b.period)}
		return
	}

	a.count++
}

// Clear removes ip's failure record, reopening the gate after a successful
// authenticated action.
func (b *BruteForce) Clear(ip string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.attempts, ip)
}
