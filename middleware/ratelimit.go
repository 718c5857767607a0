package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter throttles the login and token-refresh endpoints per client
// IP. There is exactly one admin account, so the policy is a blunt fixed
// window: the counter resets when the window rolls over, no burst credit
// carries across windows. Stale entries are pruned lazily on rollover,
// which keeps the map bounded without a background goroutine.
type RateLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	visitors map[string]*windowCounter
}

type windowCounter struct {
	count   int
	started time.Time
}

// NewRateLimiter allows up to limit requests per window for each client IP.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		window:   window,
		visitors: make(map[string]*windowCounter),
	}
}

func (rl *RateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	v, ok := rl.visitors[clientIP]
	if !ok || now.Sub(v.started) >= rl.window {
		rl.prune(now)
		rl.visitors[clientIP] = &windowCounter{count: 1, started: now}
		return true
	}
	if v.count >= rl.limit {
		return false
	}
	v.count++
	return true
}

// prune drops counters whose window expired a full window ago. Caller
// holds rl.mu.
func (rl *RateLimiter) prune(now time.Time) {
	for ip, v := range rl.visitors {
		if now.Sub(v.started) >= 2*rl.window {
			delete(rl.visitors, ip)
		}
	}
}

// Middleware rejects over-limit requests with 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many attempts, please wait before trying again"})
			c.Abort()
			return
		}
		c.Next()
	}
}
