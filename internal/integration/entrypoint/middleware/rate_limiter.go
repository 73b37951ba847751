// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/branchledger/backend/internal/domain/error"
	"github.com/branchledger/backend/internal/integration/entrypoint/dto"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 1 * time.Minute

	// sweepEvery bounds how many buckets accumulate before expired
	// ones are pruned on the next request.
	sweepEvery = 256
)

// bucket counts requests from one client within the current window.
type bucket struct {
	count       int
	windowStart time.Time
}

// RateLimiter throttles requests per client IP using a fixed window.
// Expired buckets are swept lazily on the request path, so no
// background goroutine is needed.
type RateLimiter struct {
	mu          sync.Mutex
	buckets     map[string]*bucket
	maxAttempts int
	window      time.Duration
	sinceSweep  int
}

// NewRateLimiter creates a rate limiter with the default login limits.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(defaultMaxAttempts, defaultWindow)
}

// NewRateLimiterWithConfig creates a rate limiter with custom limits.
func NewRateLimiterWithConfig(maxAttempts int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets:     make(map[string]*bucket),
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Middleware returns a Gin handler that rejects over-limit clients
// with 429 and the shared error envelope.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if key == "" {
			key = c.Request.RemoteAddr
		}

		if !rl.allow(key, time.Now()) {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(key string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.sinceSweep++
	if rl.sinceSweep >= sweepEvery {
		rl.sweep(now)
	}

	b, ok := rl.buckets[key]
	if !ok || now.Sub(b.windowStart) >= rl.window {
		rl.buckets[key] = &bucket{count: 1, windowStart: now}
		return true
	}

	if b.count >= rl.maxAttempts {
		return false
	}
	b.count++
	return true
}

// sweep drops buckets whose window has passed. Caller holds the lock.
func (rl *RateLimiter) sweep(now time.Time) {
	for key, b := range rl.buckets {
		if now.Sub(b.windowStart) >= rl.window {
			delete(rl.buckets, key)
		}
	}
	rl.sinceSweep = 0
}
