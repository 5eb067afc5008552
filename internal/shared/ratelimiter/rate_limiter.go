// Package ratelimiter provides a fixed-window limiter for operations that
// must not exceed an upstream quota, such as queue refreshes.
package ratelimiter

import (
	"log"
	"sync"
	"time"
)

// RateLimiterInterface limits how often an operation may run.
type RateLimiterInterface interface {
	WaitIfNeeded()
}

// RateLimiter counts calls within a fixed window and blocks the caller once
// the limit is exceeded, until the window rolls over.
type RateLimiter struct {
	limit    int
	interval time.Duration

	mu        sync.Mutex
	count     int
	lastReset time.Time
}

// NewRateLimiter creates a limiter allowing limit calls per interval.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
	}
}

// WaitIfNeeded records one call, sleeping until the window rolls over when
// the limit has been reached. The lock is released before sleeping so other
// callers keep making progress.
func (rl *RateLimiter) WaitIfNeeded() {
	if rl.limit <= 0 {
		return
	}
	for {
		rl.mu.Lock()
		now := time.Now()
		if now.Sub(rl.lastReset) >= rl.interval {
			rl.count = 0
			rl.lastReset = now
		}
		if rl.count < rl.limit {
			rl.count++
			rl.mu.Unlock()
			return
		}
		sleep := rl.interval - now.Sub(rl.lastReset)
		rl.mu.Unlock()

		if sleep > 0 {
			log.Printf("[RATE LIMIT] hit %d calls, sleeping for %v...", rl.limit, sleep)
			time.Sleep(sleep)
		}
	}
}
