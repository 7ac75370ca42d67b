package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/manjito26/ESTOP-System/internal/error/code"
	"github.com/manjito26/ESTOP-System/internal/error/response"
)

// TokenBucket is a simple token bucket rate limiter
type TokenBucket struct {
	rate       float64 // tokens added per second
	capacity   int
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

// NewTokenBucket creates a new token bucket limiter
func NewTokenBucket(rate float64, capacity int) *TokenBucket {
	return &TokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// Allow tries to take one token
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.lastRefill = now

	tb.tokens += elapsed * tb.rate
	if tb.tokens > float64(tb.capacity) {
		tb.tokens = float64(tb.capacity)
	}

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// bucketSet holds one bucket per key for a single limiter instance.
// Each IPRateLimiter/PathRateLimiter call owns its own set, so two
// limiters installed on different route groups never share buckets or
// each other's rate parameters.
type bucketSet struct {
	rate    float64
	burst   int
	mu      sync.RWMutex
	buckets map[string]*TokenBucket
}

func newBucketSet(rate float64, burst int) *bucketSet {
	return &bucketSet{
		rate:    rate,
		burst:   burst,
		buckets: make(map[string]*TokenBucket),
	}
}

func (s *bucketSet) get(key string) *TokenBucket {
	s.mu.RLock()
	bucket, exists := s.buckets[key]
	s.mu.RUnlock()
	if exists {
		return bucket
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if bucket, exists = s.buckets[key]; !exists {
		bucket = NewTokenBucket(s.rate, s.burst)
		s.buckets[key] = bucket
	}
	return bucket
}

// IPRateLimiter limits requests per client IP
func IPRateLimiter(rate float64, burst int) gin.HandlerFunc {
	buckets := newBucketSet(rate, burst)
	return func(c *gin.Context) {
		if !buckets.get(c.ClientIP()).Allow() {
			response.Fail(c, code.ErrTooManyRequests, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// PathRateLimiter limits requests per route path
func PathRateLimiter(rate float64, burst int) gin.HandlerFunc {
	buckets := newBucketSet(rate, burst)
	return func(c *gin.Context) {
		if !buckets.get(c.FullPath()).Allow() {
			response.Fail(c, code.ErrTooManyRequests, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
