// Package ratelimit provides rate limiting for the endpoints that reach
// outside the process: sign-in, publishing and the purchase webhook.
// It implements the token bucket algorithm with per-category rates.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a token bucket for one client in one category. Tokens are
// added at a fixed rate and every request consumes one.
type Limiter struct {
	tokens   float64
	lastTime time.Time
	lastSeen time.Time
	rate     float64
	capacity float64
	mu       sync.Mutex
}

// Rate controls how many requests per second are allowed
type Rate struct {
	// RequestsPerSecond defines how many tokens are added per second
	RequestsPerSecond float64

	// Burst defines the maximum size of the token bucket
	Burst int
}

// NewLimiter creates a new rate limiter with the specified rate and burst capacity.
//
// Parameters:
//   - rate: The number of tokens per second to add to the bucket
//   - burst: The maximum capacity of the bucket
//
// Returns:
//   - A configured rate limiter with a full bucket
func NewLimiter(rate float64, burst int) *Limiter {
	now := time.Now()
	return &Limiter{
		tokens:   float64(burst),
		lastTime: now,
		lastSeen: now,
		rate:     rate,
		capacity: float64(burst),
	}
}

// Allow reports whether a request arriving now may proceed.
func (l *Limiter) Allow() bool {
	return l.AllowAt(time.Now())
}

// AllowAt reports whether a request arriving at now may proceed, consuming
// a token when it does.
func (l *Limiter) AllowAt(now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if elapsed := now.Sub(l.lastTime).Seconds(); elapsed > 0 {
		l.tokens += elapsed * l.rate
		l.lastTime = now
	}
	if l.tokens > l.capacity {
		l.tokens = l.capacity
	}
	l.lastSeen = now

	if l.tokens < 1 {
		return false
	}

	l.tokens--
	return true
}

// RetryAfter estimates how long until the next token becomes available.
func (l *Limiter) RetryAfter() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.tokens >= 1 || l.rate <= 0 {
		return 0
	}
	return time.Duration((1 - l.tokens) / l.rate * float64(time.Second))
}

// idleSince reports whether the limiter has seen no request since cutoff.
func (l *Limiter) idleSince(cutoff time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastSeen.Before(cutoff)
}
