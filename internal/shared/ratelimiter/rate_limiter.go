// Package ratelimiter throttles operations per caller key.
package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterInterface reports whether key may perform one more operation now.
type RateLimiterInterface interface {
	Allow(key string) bool
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter allows up to limit operations per interval for each key,
// refilled continuously. Keys idle for longer than interval are forgotten.
type RateLimiter struct {
	mu       sync.Mutex
	limit    int
	interval time.Duration
	visitors map[string]*visitor
	lastGC   time.Time
	now      func() time.Time
}

// NewRateLimiter creates a new RateLimiter instance.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit < 1 {
		limit = 1
	}
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		visitors: make(map[string]*visitor),
		lastGC:   time.Now(),
		now:      time.Now,
	}
}

// Allow consumes one token of key's budget.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastGC) >= rl.interval {
		for k, v := range rl.visitors {
			if now.Sub(v.lastSeen) >= rl.interval {
				delete(rl.visitors, k)
			}
		}
		rl.lastGC = now
	}

	v, ok := rl.visitors[key]
	if !ok {
		every := rl.interval / time.Duration(rl.limit)
		v = &visitor{limiter: rate.NewLimiter(rate.Every(every), rl.limit)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Len returns the number of tracked keys.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}
