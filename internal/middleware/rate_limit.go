// internal/middleware/rate_limit.go
package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/artstylelab/backend/internal/utils"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a token-bucket limiter keyed by client IP, applied across
// the whole API surface.
type RateLimiter struct {
	visitors map[string]*visitor
	mtx      sync.Mutex
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
	}

	// Clean up old visitors every minute
	go rl.cleanupVisitors()

	return rl
}

func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)
		rl.mtx.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(rl.visitors, ip)
			}
		}
		rl.mtx.Unlock()
	}
}

func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.rate, rl.burst)
		rl.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		limiter := rl.getVisitor(ip)

		if !limiter.Allow() {
			utils.TooManyRequestsResponse(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}

type windowEntry struct {
	count       int
	windowStart time.Time
}

// FixedWindowLimiter counts requests per caller id inside a fixed window.
// State lives in process memory only: it resets on restart and is not shared
// across instances. The clock is injectable for tests.
type FixedWindowLimiter struct {
	mtx     sync.Mutex
	entries map[string]*windowEntry
	window  time.Duration
	limit   int
	now     func() time.Time
}

func NewFixedWindowLimiter(window time.Duration, limit int) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		entries: make(map[string]*windowEntry),
		window:  window,
		limit:   limit,
		now:     time.Now,
	}
}

// Allow reports whether the caller may make another request in the current
// window, and counts the request when it may.
func (l *FixedWindowLimiter) Allow(key string) bool {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	now := l.now()
	e, exists := l.entries[key]
	if !exists {
		l.entries[key] = &windowEntry{count: 1, windowStart: now}
		l.sweep(now)
		return true
	}

	if now.Sub(e.windowStart) > l.window {
		e.count = 0
		e.windowStart = now
	}

	if e.count >= l.limit {
		return false
	}

	e.count++
	return true
}

// sweep drops entries whose window expired long ago. Called with the lock
// held.
func (l *FixedWindowLimiter) sweep(now time.Time) {
	if len(l.entries) < 1024 {
		return
	}
	for key, e := range l.entries {
		if now.Sub(e.windowStart) > 3*l.window {
			delete(l.entries, key)
		}
	}
}
