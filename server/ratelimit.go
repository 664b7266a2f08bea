package server

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// rateLimiter enforces per-client throttling over a sliding token bucket.
type rateLimiter struct {
	limit  rate.Limit
	burst  int
	window time.Duration

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// newRateLimiter budgets requests per window per client IP, e.g. 100 requests
// every 15 minutes.
func newRateLimiter(requests int, window time.Duration) *rateLimiter {
	if requests <= 0 || window <= 0 {
		return nil
	}
	burst := requests / 10
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limit:   rate.Limit(float64(requests) / window.Seconds()),
		burst:   burst,
		window:  window,
		clients: make(map[string]*clientLimiter),
	}
}

func (rl *rateLimiter) allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

func (rl *rateLimiter) getLimiter(key string) *rate.Limiter {
	now := time.Now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if entry, ok := rl.clients[key]; ok {
		entry.lastSeen = now
		return entry.limiter
	}

	limiter := rate.NewLimiter(rl.limit, rl.burst)
	rl.clients[key] = &clientLimiter{limiter: limiter, lastSeen: now}
	rl.cleanupLocked(now)
	return limiter
}

// cleanupLocked drops clients idle for longer than the window; called with
// the lock held whenever a new client is added.
func (rl *rateLimiter) cleanupLocked(now time.Time) {
	for key, entry := range rl.clients {
		if now.Sub(entry.lastSeen) > rl.window {
			delete(rl.clients, key)
		}
	}
}
