package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

type window struct {
	start time.Time
	count int
}

// FixedWindowLimiter counts requests per client key inside fixed time
// windows. When a window elapses the counter resets; a burst of up to twice
// the cap across a window boundary is accepted. This is deliberately not a
// token bucket: the contract is "at most N submissions per window".
type FixedWindowLimiter struct {
	mu        sync.Mutex
	windows   map[string]*window
	max       int
	windowDur time.Duration
}

func NewFixedWindowLimiter(max int, windowDur time.Duration) *FixedWindowLimiter {
	l := &FixedWindowLimiter{
		windows:   make(map[string]*window),
		max:       max,
		windowDur: windowDur,
	}
	go l.cleanup()
	return l
}

// take records an attempt for key at time now. It returns the remaining
// budget, the time until the window resets, and whether the attempt is
// allowed. The attempt is counted even when it is rejected.
func (l *FixedWindowLimiter) take(key string, now time.Time) (remaining int, reset time.Duration, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, exists := l.windows[key]
	if !exists || now.Sub(w.start) > l.windowDur {
		w = &window{start: now}
		l.windows[key] = w
	}
	w.count++

	remaining = l.max - w.count
	if remaining < 0 {
		remaining = 0
	}
	reset = w.start.Add(l.windowDur).Sub(now)
	return remaining, reset, w.count <= l.max
}

// cleanup drops windows that rolled over long ago.
func (l *FixedWindowLimiter) cleanup() {
	for {
		time.Sleep(10 * time.Minute)
		now := time.Now()
		l.mu.Lock()
		for key, w := range l.windows {
			if now.Sub(w.start) > 2*l.windowDur {
				delete(l.windows, key)
			}
		}
		l.mu.Unlock()
	}
}

// Limit enforces the fixed-window limit per remote IP. It runs before any
// request validation, so a malformed request still consumes a slot.
func (l *FixedWindowLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		remaining, reset, ok := l.take(realIP(r), time.Now())

		w.Header().Set("RateLimit-Limit", fmt.Sprintf("%d", l.max))
		w.Header().Set("RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		w.Header().Set("RateLimit-Reset", fmt.Sprintf("%d", int(reset.Seconds())))

		if !ok {
			retryAfter := int(reset.Minutes()) + 1
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"error":      "Too many support requests. Please try again later.",
				"retryAfter": retryAfter,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
