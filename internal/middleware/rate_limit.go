package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/maxviazov/ledger-service/internal/config"
	"github.com/maxviazov/ledger-service/pkg/response"
)

const (
	defaultLimiterCacheSize = 5000
	defaultLimiterCacheTTL  = time.Hour
)

// RateLimiter hands out one token bucket per client key. Idle buckets fall out
// of the LRU after the configured TTL.
type RateLimiter struct {
	mu      sync.Mutex
	clients *expirable.LRU[string, *rate.Limiter]
	r       rate.Limit
	b       int
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	size := cfg.CacheSize
	if size <= 0 {
		size = defaultLimiterCacheSize
	}
	ttl := time.Duration(cfg.CacheTTL) * time.Second
	if ttl <= 0 {
		ttl = defaultLimiterCacheTTL
	}
	return &RateLimiter{
		clients: expirable.NewLRU[string, *rate.Limiter](size, nil, ttl),
		r:       rate.Limit(cfg.RequestsPerSecond),
		b:       cfg.Burst,
	}
}

// Limiter returns the bucket for key, creating it on first use.
// Concurrent first requests for the same key share one bucket.
func (rl *RateLimiter) Limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if l, ok := rl.clients.Get(key); ok {
		return l
	}
	l := rate.NewLimiter(rl.r, rl.b)
	rl.clients.Add(key, l)
	return l
}

// RateLimit throttles requests per client IP. A disabled config yields a pass-through.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	rl := NewRateLimiter(cfg)
	return func(c *gin.Context) {
		if !rl.Limiter(c.ClientIP()).Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.ErrorPayload{
				Error:   "too_many_requests",
				Message: "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
