package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/maxviazov/ledger-service/internal/config"
)

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		cfg            config.RateLimitConfig
		requests       int
		expectFailures bool
	}{
		{
			name:     "allow within burst",
			cfg:      config.RateLimitConfig{Enabled: true, RequestsPerSecond: 10, Burst: 20},
			requests: 10,
		},
		{
			name:           "block after burst",
			cfg:            config.RateLimitConfig{Enabled: true, RequestsPerSecond: 1, Burst: 1},
			requests:       5,
			expectFailures: true,
		},
		{
			name:     "disabled",
			cfg:      config.RateLimitConfig{Enabled: false, RequestsPerSecond: 1, Burst: 1},
			requests: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RateLimit(tt.cfg))
			r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

			failed := false
			for i := 0; i < tt.requests; i++ {
				w := httptest.NewRecorder()
				r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
				if w.Code == http.StatusTooManyRequests {
					failed = true
					assert.Equal(t, "1", w.Header().Get("Retry-After"))
					assert.Contains(t, w.Body.String(), "too_many_requests")
				}
			}
			assert.Equal(t, tt.expectFailures, failed)
		})
	}
}

func TestRateLimiter_PerClientBuckets(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 1})

	a := rl.Limiter("10.0.0.1")
	assert.Same(t, a, rl.Limiter("10.0.0.1"))
	assert.NotSame(t, a, rl.Limiter("10.0.0.2"))

	assert.True(t, a.Allow())
	assert.False(t, a.Allow())
	assert.True(t, rl.Limiter("10.0.0.2").Allow())
}

func TestRateLimiter_ConcurrentFirstUseSharesBucket(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 1})

	const workers = 32
	got := make([]*rate.Limiter, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = rl.Limiter("10.0.0.9")
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Same(t, got[0], got[i])
	}
}

func TestRateLimiter_ZeroCacheSettingsUseDefaults(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RequestsPerSecond: 5, Burst: 2})
	l := rl.Limiter("client")
	assert.Equal(t, rate.Limit(5), l.Limit())
	assert.Equal(t, 2, l.Burst())
}
