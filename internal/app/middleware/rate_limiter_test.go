package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func hitFrom(r *gin.Engine, ip string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.RemoteAddr = ip + ":5000"
	r.ServeHTTP(w, req)
	return w.Code
}

func TestTokenBucketBurstAndRefill(t *testing.T) {
	tb := NewTokenBucket(10, 5)

	for i := 0; i < 5; i++ {
		assert.True(t, tb.Allow(), "request %d within burst", i)
	}
	assert.False(t, tb.Allow(), "burst exhausted")

	// one second of refill at 10/s restores the bucket to capacity
	tb.lastRefill = time.Now().Add(-time.Second)
	for i := 0; i < 5; i++ {
		assert.True(t, tb.Allow(), "request %d after refill", i)
	}
	assert.False(t, tb.Allow())
}

func TestIPRateLimiterAllowsFullBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", IPRateLimiter(10, 20), func(c *gin.Context) { c.Status(http.StatusOK) })

	ok, limited := 0, 0
	for i := 0; i < 30; i++ {
		if hitFrom(r, "10.0.0.1") == http.StatusOK {
			ok++
		} else {
			limited++
		}
	}

	assert.Equal(t, 20, ok, "the full configured burst passes")
	assert.Equal(t, 10, limited)
}

func TestIPRateLimiterIsolatesClients(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", IPRateLimiter(10, 5), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hitFrom(r, "10.0.0.1"))
	}
	assert.Equal(t, http.StatusTooManyRequests, hitFrom(r, "10.0.0.1"))

	assert.Equal(t, http.StatusOK, hitFrom(r, "10.0.0.2"), "one client exhausting its bucket does not throttle another")
}

func TestStackedLimitersKeepSeparateBuckets(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// two instances chained on one route: each applies its own burst,
	// so the tighter one governs and a request costs one token from
	// each bucket, not two from a shared one
	r.GET("/x", IPRateLimiter(10, 20), IPRateLimiter(30, 50), func(c *gin.Context) { c.Status(http.StatusOK) })

	ok, limited := 0, 0
	for i := 0; i < 50; i++ {
		if hitFrom(r, "10.0.0.1") == http.StatusOK {
			ok++
		} else {
			limited++
		}
	}

	assert.Equal(t, 20, ok, "the tighter burst governs; buckets are per limiter instance")
	assert.Equal(t, 30, limited)
}

func TestSeparateGroupsDoNotShareLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := func(c *gin.Context) { c.Status(http.StatusOK) }

	public := r.Group("/")
	public.Use(IPRateLimiter(10, 5))
	public.GET("/x", handler)

	private := r.Group("/private")
	private.Use(IPRateLimiter(30, 50))
	private.GET("/x", handler)

	// exhaust the public bucket
	for i := 0; i < 6; i++ {
		hitFrom(r, "10.0.0.1")
	}

	// the other group's limiter still has its full burst
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private/x", nil)
	req.RemoteAddr = "10.0.0.1:5000"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "an exhausted public bucket must not throttle the other group")
}
