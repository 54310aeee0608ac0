// Package ratelimit implements a process-local fixed-window request
// counter. It is best-effort only and not a security boundary; a
// multi-instance deployment gets per-instance limits.
package ratelimit

import (
	"sync"
	"time"
)

type Decision struct {
	Allowed   bool
	Remaining int
	// RetryAfter is the remaining window on rejection,
	// rounded up to whole seconds, minimum one second.
	RetryAfter time.Duration
}

type window struct {
	count   int
	startAt time.Time
}

type Limiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

func NewLimiter(limit int, windowSize time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  windowSize,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

// Allow counts one request for key. The first request from a key, or
// any request after the window elapsed, resets the counter to 1.
func (l *Limiter) Allow(key string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.startAt) >= l.window {
		l.windows[key] = &window{count: 1, startAt: now}

		return Decision{Allowed: true, Remaining: l.limit - 1}
	}

	if w.count < l.limit {
		w.count++

		return Decision{Allowed: true, Remaining: l.limit - w.count}
	}

	retryAfter := (l.window - now.Sub(w.startAt)).Round(0)
	retryAfter = ceilToSecond(retryAfter)

	return Decision{Allowed: false, RetryAfter: retryAfter}
}

func ceilToSecond(d time.Duration) time.Duration {
	if d <= time.Second {
		return time.Second
	}
	if rem := d % time.Second; rem != 0 {
		return d - rem + time.Second
	}

	return d
}
