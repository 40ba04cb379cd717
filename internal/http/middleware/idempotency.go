// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements idempotency support for unsafe HTTP methods. It
// validates an Idempotency-Key request header, optionally asks a lookup
// whether the key already completed, and annotates the request context so
// downstream handlers can:
//   - read the validated key (GetIdempotencyKey)
//   - detect replayed requests (IsReplay)
//   - skip rate limiting when a replay is served
//
// Keys are scoped by route template (c.FullPath()) and client IP, so the same
// key sent to two endpoints, or from two clients, names two operations.
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the request header that carries the key.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotencyReplayed is set to "true" on responses served from a
// stored result.
const HeaderIdempotencyReplayed = "Idempotency-Replayed"

// Context keys used internally to stash idempotency state.
const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay" // bool: a stored result exists
	ctxKeyRateBypass = "rate.bypass" // bool: skip rate limiting
)

// GetIdempotencyKey returns the validated key stored by IdempotencyValidator.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IdempotencyScope returns the scope a key is stored under for this request:
// the route template and the client IP.
func IdempotencyScope(c *gin.Context) string {
	return routePath(c) + "|ip:" + c.ClientIP()
}

// IsReplay reports whether the lookup found a still-valid stored result.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IdempotencyOptions configures header validation. TTL enforcement belongs
// to the lookup.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters. Nil means ^[A-Za-z0-9._~\-:]+$
	Pattern *regexp.Regexp
}

// IdempotencyLookup reports whether a still-valid result exists for
// (scope, key) at now. Errors are treated as "not found".
type IdempotencyLookup func(ctx context.Context, scope, key string, now time.Time) (exists bool, err error)

// IdempotencyValidator validates the Idempotency-Key header on POST, PUT and
// PATCH requests, stashes it in the context and, when lookup reports a
// stored result, marks the request as a replay that bypasses rate limiting.
//
// Requests without the header pass through. An invalid key is answered with
// 400 bad_request. The middleware never serves the stored payload itself.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": GetRequestID(c),
				"code":       "bad_request",
				"message":    "invalid Idempotency-Key",
			})
			return
		}

		c.Set(ctxKeyIdemKey, key)

		if lookup != nil {
			exists, err := lookup(c.Request.Context(), IdempotencyScope(c), key, time.Now().UTC())
			if err != nil {
				LoggerFrom(c).Warn().Err(err).Msg("idempotency lookup failed")
			}
			if exists {
				c.Set(ctxKeyIdemReplay, true)
				c.Set(ctxKeyRateBypass, true)
			}
		}

		c.Next()
	}
}
