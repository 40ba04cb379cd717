// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements an in-memory token-bucket rate limiter with
// per-identity buckets and opportunistic garbage collection, for a
// single-process deployment.
//
// Features:
//   - Per-key token buckets using golang.org/x/time/rate
//   - Pluggable identity function (admin ID or client IP)
//   - Best-effort cleanup of idle buckets to bound memory
//   - Bypass for idempotent replays (set by IdempotencyValidator)
//   - Bypass for requests carrying a valid admin bearer token
//
// The limiter is process-local. With several replicas each one enforces its
// own budget.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// keyFunc selects the identity used to key a rate-limit bucket.
type keyFunc func(*gin.Context) string

// KeyByIP returns a keyFunc that buckets requests by client IP
// ("ip:203.0.113.7"). Forwarding headers only count when the engine trusts
// the immediate peer (gin.Engine.SetTrustedProxies).
func KeyByIP() keyFunc {
	return func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}
}

// visitor holds a single rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter implements a per-key token-bucket rate limiter.
//
// Buckets are created on demand. Idle buckets are evicted after a TTL during
// lookups. Safe for concurrent use.
type RateLimiter struct {
	rps      rate.Limit
	burst    int
	keyFn    keyFunc
	bypass   TokenParser
	mu       sync.Mutex
	visitors map[string]*visitor

	ttl      time.Duration
	cleanupN uint64
}

// NewRateLimiter constructs a RateLimiter with the given tokens-per-second
// and burst size, keyed by keyFn. Burst values <= 0 are coerced to 1.
func NewRateLimiter(rps float64, burst int, keyFn keyFunc) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		keyFn:    keyFn,
		visitors: make(map[string]*visitor),
		ttl:      10 * time.Minute,
	}
}

// BypassAdmins exempts requests whose bearer token p accepts. The token is
// only parsed here; route authorization is still RequireAdmin's job.
func (rl *RateLimiter) BypassAdmins(p TokenParser) *RateLimiter {
	rl.bypass = p
	return rl
}

// getVisitor returns (and updates) the limiter for key, creating it if absent.
// Idle entries are collected every 5000 lookups, before the requested entry
// is touched so an expired bucket can be evicted even when it is the one
// being fetched.
func (rl *RateLimiter) getVisitor(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.cleanupN++
	if rl.cleanupN >= 5000 {
		for k, vv := range rl.visitors {
			if now.Sub(vv.lastSeen) >= rl.ttl {
				delete(rl.visitors, k)
			}
		}
		rl.cleanupN = 0
	}

	if v, ok := rl.visitors[key]; ok {
		v.lastSeen = now
		return v.limiter
	}
	lim := rate.NewLimiter(rl.rps, rl.burst)
	rl.visitors[key] = &visitor{limiter: lim, lastSeen: now}
	return lim
}

// IsRateBypass reports whether IdempotencyValidator marked this request as a
// replay that should not consume tokens.
func IsRateBypass(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyRateBypass)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

func (rl *RateLimiter) isAdmin(c *gin.Context) bool {
	if rl.bypass == nil {
		return false
	}
	tok, ok := bearerToken(c.Request)
	if !ok {
		return false
	}
	_, err := rl.bypass.ParseToken(tok)
	return err == nil
}

// Handler returns a Gin middleware that enforces per-key token-bucket limits.
// A limited request gets
//
//	HTTP/1.1 429 Too Many Requests
//	Retry-After: 1
//	{"request_id": "<uuid>", "code": "too_many_requests", "message": "rate limit exceeded"}
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsRateBypass(c) || rl.isAdmin(c) {
			c.Next()
			return
		}

		if rl.getVisitor(rl.keyFn(c)).Allow() {
			c.Next()
			return
		}

		httpRateLimited.WithLabelValues(routePath(c)).Inc()
		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"request_id": GetRequestID(c),
			"code":       "too_many_requests",
			"message":    "rate limit exceeded",
		})
	}
}
