// Package ratelimit provides a fixed-window request counter keyed by an
// arbitrary identifier (typically client IP + route).
//
// Windows reset on a per-key timestamp rather than sliding continuously, so a
// burst straddling a window boundary can admit up to twice the limit. That is
// an accepted trade-off for O(1) state per key. State is process-local and not
// shared between replicas; a distributed deployment needs an external counter.
package ratelimit

import (
	"sync"
	"time"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

type window struct {
	count   int
	resetAt time.Time
}

// Limiter counts requests per key within fixed windows.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*window

	limit    int
	windowMs time.Duration
	clock    func() time.Time

	sweepEvery time.Duration
	done       chan struct{}
	closeOnce  sync.Once
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock injects a time source. Tests use this for deterministic windows.
func WithClock(clock func() time.Time) Option {
	return func(l *Limiter) { l.clock = clock }
}

// WithSweepInterval overrides how often expired entries are reclaimed.
// Sweeping is memory hygiene only; it never affects Allow decisions.
func WithSweepInterval(d time.Duration) Option {
	return func(l *Limiter) { l.sweepEvery = d }
}

// NewLimiter creates a limiter admitting limit requests per window per key and
// starts the background sweeper. Call Close to stop it.
func NewLimiter(limit int, windowSize time.Duration, opts ...Option) *Limiter {
	l := &Limiter{
		entries:    make(map[string]*window),
		limit:      limit,
		windowMs:   windowSize,
		clock:      time.Now,
		sweepEvery: windowSize,
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	go l.sweepLoop()
	return l
}

// Allow records a request for key and reports whether it is admitted.
//
// The read-modify-write on the key's counter happens under one lock so two
// concurrent requests can never both observe count == limit-1 and both pass.
// Once a window is over its limit the counter stops incrementing; rejected
// requests are not charged beyond the first overage.
func (l *Limiter) Allow(key string) Decision {
	now := l.clock()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok || !now.Before(entry.resetAt) {
		l.entries[key] = &window{count: 1, resetAt: now.Add(l.windowMs)}
		return Decision{Allowed: true, Remaining: l.limit - 1, ResetIn: l.windowMs}
	}

	resetIn := entry.resetAt.Sub(now)
	if entry.count >= l.limit {
		return Decision{Allowed: false, Remaining: 0, ResetIn: resetIn}
	}

	entry.count++
	return Decision{Allowed: true, Remaining: l.limit - entry.count, ResetIn: resetIn}
}

// Close stops the background sweeper.
func (l *Limiter) Close() {
	l.closeOnce.Do(func() { close(l.done) })
}

func (l *Limiter) sweepLoop() {
	ticker := time.NewTicker(l.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

// sweep drops entries whose window has already elapsed.
func (l *Limiter) sweep() {
	now := l.clock()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, entry := range l.entries {
		if !now.Before(entry.resetAt) {
			delete(l.entries, key)
		}
	}
}

// size reports the number of tracked keys. Test hook.
func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
