package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("Success_IndependentBucketsPerIP", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		router := gin.New()
		router.Use(RateLimitMiddleware(ctx, 0.01, 1, discardLogger()))
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		request := func(ip string) int {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = ip + ":1234"
			router.ServeHTTP(w, req)
			return w.Code
		}

		assert.Equal(t, http.StatusOK, request("10.0.0.1"))
		assert.Equal(t, http.StatusTooManyRequests, request("10.0.0.1"))
		assert.Equal(t, http.StatusOK, request("10.0.0.2"))
	})

	t.Run("Success_RetryAfterIsPositive", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		router := gin.New()
		router.Use(RateLimitMiddleware(ctx, 1, 1, discardLogger()))
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		for range 2 {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			if w.Code == http.StatusTooManyRequests {
				assert.JSONEq(t,
					`{"error":"rate_limit_exceeded","message":"Too many requests from this IP, retry after the specified delay"}`,
					w.Body.String())
				assert.NotEqual(t, "0", w.Header().Get("Retry-After"))
			}
		}
	})
}

func TestRateLimiterStore_EvictIdle(t *testing.T) {
	store := &rateLimiterStore{rps: 1, burst: 1}
	now := time.Now()

	store.getLimiter("10.0.0.1", now.Add(-2*time.Hour))
	store.getLimiter("10.0.0.2", now)

	store.evictIdle(now.Add(-time.Hour))

	_, staleFound := store.limiters.Load("10.0.0.1")
	_, freshFound := store.limiters.Load("10.0.0.2")
	assert.False(t, staleFound)
	assert.True(t, freshFound)
}

func TestRateLimiterStore_ReusesLimiter(t *testing.T) {
	store := &rateLimiterStore{rps: 1, burst: 1}

	first := store.getLimiter("10.0.0.1", time.Now())
	second := store.getLimiter("10.0.0.1", time.Now())

	assert.Same(t, first, second)
}
