// Package ratelimiter implements a per-key token bucket used to throttle
// HTTP traffic. This is transport-level protection only; the per-actor
// placement cooldown is a domain rule enforced inside the placement
// transaction.
package ratelimiter

import (
	"sync"
	"time"
)

// RateLimiter implements a token bucket rate limiter
type RateLimiter struct {
	tokens     float64
	capacity   float64
	rate       float64
	lastRefill time.Time
	mu         sync.Mutex
	timer      *time.Timer
	key        string            // reference to key for cleanup
	parent     *KeyedRateLimiter // reference to parent for cleanup
}

// KeyedRateLimiter manages rate limiting for multiple keys (IPs, actors)
type KeyedRateLimiter struct {
	limiters       map[string]*RateLimiter
	mu             sync.RWMutex
	rate           float64
	capacity       float64
	expirationTime time.Duration
}

// New creates a new KeyedRateLimiter instance
func New(rate float64, capacity float64, expirationTime time.Duration) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		limiters:       make(map[string]*RateLimiter),
		rate:           rate,
		capacity:       capacity,
		expirationTime: expirationTime,
	}
}

// cleanup removes a specific limiter
func (krl *KeyedRateLimiter) cleanup(key string) {
	krl.mu.Lock()
	delete(krl.limiters, key)
	krl.mu.Unlock()
}

// resetTimer resets the expiration timer for a limiter
func (rl *RateLimiter) resetTimer() {
	if rl.timer != nil {
		rl.timer.Stop()
	}

	rl.timer = time.AfterFunc(rl.parent.expirationTime, func() {
		rl.parent.cleanup(rl.key)
	})
}

// getLimiter gets or creates a rate limiter for a key
func (krl *KeyedRateLimiter) getLimiter(key string) *RateLimiter {
	// First try read-only lookup
	krl.mu.RLock()
	limiter, exists := krl.limiters[key]
	krl.mu.RUnlock()

	if exists {
		limiter.resetTimer()
		return limiter
	}

	// If not found, acquire write lock and create new
	krl.mu.Lock()
	defer krl.mu.Unlock()

	// Double-check after acquiring write lock
	limiter, exists = krl.limiters[key]
	if exists {
		limiter.resetTimer()
		return limiter
	}

	limiter = &RateLimiter{
		tokens:     krl.capacity,
		capacity:   krl.capacity,
		rate:       krl.rate,
		lastRefill: time.Now(),
		key:        key,
		parent:     krl,
	}
	krl.limiters[key] = limiter
	limiter.resetTimer()

	return limiter
}

func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(rl.lastRefill).Seconds()

	// Refill tokens based on elapsed time
	rl.tokens += elapsed * rl.rate
	if rl.tokens > rl.capacity {
		rl.tokens = rl.capacity
	}

	rl.lastRefill = now

	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}

	return false
}

// Allow checks if a request should be allowed for a given key
func (krl *KeyedRateLimiter) Allow(key string) bool {
	limiter := krl.getLimiter(key)

	return limiter.Allow()
}

// Stop cleans up all timers
func (krl *KeyedRateLimiter) Stop() {
	krl.mu.Lock()
	defer krl.mu.Unlock()

	for _, limiter := range krl.limiters {
		if limiter.timer != nil {
			limiter.timer.Stop()
		}
	}
}

func Rps10() *KeyedRateLimiter {
	return New(10, 10, 1*time.Hour)
}

func Rps100() *KeyedRateLimiter {
	return New(100, 100, 1*time.Hour)
}

func OnceInSecond() *KeyedRateLimiter {
	return New(1, 1, 1*time.Hour)
}
