// Package ratelimit provides per-client rate limiting using the token bucket algorithm.
package ratelimit

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// TokenBucket represents a token bucket rate limiter.
// It allows a certain number of requests (tokens) per time window,
// with tokens refilling at a steady rate.
type TokenBucket struct {
	capacity   int        // Maximum tokens (burst capacity)
	refillRate float64    // Tokens per second
	tokens     float64    // Current tokens available
	lastRefill time.Time  // Last time tokens were refilled
	mu         sync.Mutex // Mutex for thread safety
}

// newTokenBucket creates a new token bucket with the specified capacity and refill rate.
func newTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity), // Start with full bucket
		lastRefill: time.Now(),
	}
}

// refill adds the tokens accrued since the last refill. Caller holds tb.mu.
func (tb *TokenBucket) refill(now time.Time) {
	elapsed := now.Sub(tb.lastRefill)
	tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed.Seconds()*tb.refillRate)
	tb.lastRefill = now
}

// take consumes a token if one is available and reports the bucket state
// after the attempt.
func (tb *TokenBucket) take() (allowed bool, remaining int, resetTime time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	tb.refill(now)

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		allowed = true
	}

	remaining = int(tb.tokens)
	resetTime = now
	if tb.tokens < float64(tb.capacity) {
		secondsUntilFull := (float64(tb.capacity) - tb.tokens) / tb.refillRate
		resetTime = now.Add(time.Duration(secondsUntilFull * float64(time.Second)))
	}
	return allowed, remaining, resetTime
}

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled       bool
	DefaultLimit  int
	DefaultWindow time.Duration
	// MaxBuckets bounds the number of tracked client/endpoint pairs;
	// the least recently used bucket is evicted first.
	MaxBuckets      int
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// Limiter manages rate limiting for multiple clients using token buckets.
type Limiter struct {
	buckets *lru.Cache[string, *TokenBucket] // client:endpoint:method -> bucket
	mu      sync.Mutex                       // serializes get-or-create
	config  *Config
}

// NewLimiter creates a new rate limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    DefaultLimit,
			DefaultWindow:   DefaultWindow,
			MaxBuckets:      DefaultMaxBuckets,
			EndpointConfigs: DefaultEndpointConfigs(),
		}
	}

	size := config.MaxBuckets
	if size <= 0 {
		size = DefaultMaxBuckets
	}
	// lru.New only fails for a non-positive size
	buckets, _ := lru.New[string, *TokenBucket](size)

	return &Limiter{
		buckets: buckets,
		config:  config,
	}
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
// Returns true if allowed, false if rate limited, along with rate limit information.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}

	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	endpointConfig := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if endpointConfig == nil {
		endpointConfig = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}

	// Unlimited endpoint (e.g., health check)
	if endpointConfig.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	bucketKey := clientID + ":" + endpoint + ":" + method
	bucket := l.getBucket(bucketKey, endpointConfig.Limit, endpointConfig.Window, endpointConfig.Burst)

	allowed, remaining, resetTime := bucket.take()

	var retryAfter time.Duration
	if !allowed {
		retryAfter = max(time.Until(resetTime), 0)
	}

	return allowed, Info{
		Allowed:    allowed,
		Limit:      endpointConfig.Limit,
		Remaining:  remaining,
		ResetTime:  resetTime,
		RetryAfter: retryAfter,
	}
}

// Deferred reports whether requests to endpoint are charged by the handler
// rather than up front. Always false when limiting is disabled.
func (l *Limiter) Deferred(endpoint string, method string) bool {
	if !l.config.Enabled {
		return false
	}
	ec := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	return ec != nil && ec.Deferred
}

// Len returns the number of tracked buckets
func (l *Limiter) Len() int {
	return l.buckets.Len()
}

// getBucket gets or creates a token bucket for the given key.
func (l *Limiter) getBucket(key string, limit int, window time.Duration, burst int) *TokenBucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if bucket, ok := l.buckets.Get(key); ok {
		return bucket
	}

	if window <= 0 {
		window = DefaultWindow
	}
	refillRate := float64(limit) / window.Seconds()
	capacity := burst
	if capacity <= 0 {
		capacity = limit
	}

	bucket := newTokenBucket(capacity, refillRate)
	l.buckets.Add(key, bucket)
	return bucket
}
