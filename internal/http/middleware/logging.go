// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides the request ID injector, the panic-safe recovery
// handler and access to the request-scoped logger:
//
//   - RequestID() makes every request carry a correlation ID, propagated via
//     X-Request-ID and stored in the Gin context.
//   - Recovery() converts panics into the JSON error envelope while keeping
//     the correlation ID and logging a stack trace.
//   - LoggerFrom() returns the request-scoped zerolog.Logger attached by
//     RedactingLogger, so handlers can log with request fields.
//
// Recommended order: RequestID, RedactingLogger, Recovery. Panics and errors
// then carry the correlation ID.
package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// requestIDKey is the Gin context key under which the request ID is stored.
	requestIDKey = "requestID"
	// requestIDHeader is the HTTP header used to propagate the correlation ID.
	requestIDHeader = "X-Request-ID"
	// loggerKey is the Gin context key of the request-scoped logger.
	loggerKey = "logger"
	// maxQueryLogLength caps the number of bytes of the raw query string logged.
	maxQueryLogLength = 2048
	// maxRequestIDLength bounds client-supplied correlation IDs.
	maxRequestIDLength = 128
)

// RequestID attaches (or propagates) a correlation identifier per request.
//
// An incoming X-Request-ID of at most 128 bytes is reused; otherwise a new
// UUIDv4 is generated. The ID is echoed in the response header and stored in
// the Gin context under "requestID".
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" || len(rid) > maxRequestIDLength {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		c.Next()
	}
}

// GetRequestID returns the correlation ID set by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	v, _ := c.Get(requestIDKey)
	return asString(v)
}

// Recovery intercepts panics, logs a stack trace, and returns a JSON 500
// error of the form
//
//	{ "request_id": "...", "code": "internal_error", "message": "internal server error" }
//
// when nothing has been written yet.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				rid := GetRequestID(c)
				LoggerFrom(c).Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Str("request_id", rid).
					Msg("panic recovered")

				if !c.Writer.Written() {
					c.Header(requestIDHeader, rid)
					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
						"request_id": rid,
						"code":       "internal_error",
						"message":    "internal server error",
					})
					return
				}
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// LoggerFrom returns the request-scoped zerolog.Logger.
//
// Without RedactingLogger in the chain it falls back to the global logger,
// so callers never need a nil check.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if lg, ok := v.(*zerolog.Logger); ok {
			return lg
		}
	}
	l := log.With().Logger()
	return &l
}

// asString converts an arbitrary value to a string, returning "" when the
// value is not a string. Used for context values.
func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// truncate returns s unchanged when within max bytes, otherwise it cuts s to
// max bytes and appends an ellipsis. A max <= 0 disables truncation.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
