// Package gate rejects abusive traffic before it reaches dispatch: per-IP
// rate limits and brute-force lockouts over in-memory fixed windows.
//
// All state lives in process memory with lazy expiry on read; a restart
// clears every counter. That is an accepted tradeoff for a single-instance
// proxy, not an oversight.
package gate

import (
	"sync"
	"time"
)

// window tracks one IP's request count within the current fixed window.
type window struct {
	count   int
	resetAt time.Time
}

// Limiter is a per-IP fixed-window rate limiter. Increments are atomic under
// the mutex so concurrent requests from one IP never under-count.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	max     int
	period  time.Duration
	clock   Clock
}

// NewLimiter creates a Limiter allowing max requests per period per IP.
func NewLimiter(max int, period time.Duration, clock Clock) *Limiter {
	if clock == nil {
		clock = SystemClock()
	}
	return &Limiter{
		windows: make(map[string]*window),
		max:     max,
		period:  period,
		clock:   clock,
	}
}

// Allow records one request from ip and reports whether it is within the
// limit. Expired windows are evicted on read rather than by a background
// sweep, keeping behavior deterministic under test.
func (l *Limiter) Allow(ip string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[ip]
	if !ok || now.After(w.resetAt) {
		l.windows[ip] = &window{count: 1, resetAt: now.Add(l.period)}
		return true
	}

	w.count++
	return w.count <= l.max
}
