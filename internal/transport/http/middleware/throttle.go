package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Throttle is a per-IP token-bucket limiter with automatic stale-entry
// cleanup. Used on the chat proxy, where short bursts are fine but sustained
// hammering of the upstream completion API is not.
type Throttle struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	r        rate.Limit
	burst    int
}

// NewThrottle creates a per-IP limiter: r requests/second, burst up to burst requests.
func NewThrottle(r rate.Limit, burst int) *Throttle {
	t := &Throttle{
		limiters: make(map[string]*clientLimiter),
		r:        r,
		burst:    burst,
	}
	go t.cleanup()
	return t
}

func (t *Throttle) get(ip string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v, ok := t.limiters[ip]; ok {
		v.lastSeen = time.Now()
		return v.limiter
	}
	l := rate.NewLimiter(t.r, t.burst)
	t.limiters[ip] = &clientLimiter{limiter: l, lastSeen: time.Now()}
	return l
}

// cleanup removes stale entries every 5 minutes.
func (t *Throttle) cleanup() {
	for {
		time.Sleep(5 * time.Minute)
		t.mu.Lock()
		for ip, v := range t.limiters {
			if time.Since(v.lastSeen) > 10*time.Minute {
				delete(t.limiters, ip)
			}
		}
		t.mu.Unlock()
	}
}

// Limit is the middleware handler that enforces the throttle per remote IP.
func (t *Throttle) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !t.get(realIP(r)).Allow() {
			writeJSONError(w, http.StatusTooManyRequests, "Too many messages. Try again in a few seconds.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
