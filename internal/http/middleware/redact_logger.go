// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements RedactingLogger, the access logger. It scrubs obvious
// PII from request metadata before emitting logs and attaches a
// request-scoped logger to both the Gin context and the request context, so
// services reach it through zerolog.Ctx.
//
// Request and response bodies are never logged. Visitor chat messages in
// particular only reach the chat log table.
//
// Usage:
//
//	r := gin.New()
//	r.Use(middleware.RequestID())
//	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
//	    MaskHeaders: []string{middleware.HeaderIdempotencyKey},
//	}))
package middleware

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RedactOptions configures additional scrub behavior for RedactingLogger.
//
// MaskHeaders lists extra header names whose values are replaced with
// "[REDACTED]". Matching is case-insensitive and merged with the built-in
// set ("Authorization", "Cookie", "Set-Cookie").
//
// Logger is the base logger. Nil means the global zerolog logger.
type RedactOptions struct {
	MaskHeaders []string
	Logger      *zerolog.Logger
}

var (
	// UUIDs are redacted before phone numbers so the phone pattern cannot
	// eat the digit groups of a UUID.
	uuidRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	// Digits-only phone pattern, e.g. "+1 212-555-1212", "(212) 555-1212".
	phoneRE = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

// redact scrubs ids, emails and phone numbers from s, loosest pattern last.
func redact(s string) string {
	if s == "" {
		return s
	}
	s = uuidRE.ReplaceAllString(s, "[REDACTED:id]")
	s = emailRE.ReplaceAllString(s, "[REDACTED:email]")
	return phoneRE.ReplaceAllString(s, "[REDACTED:phone]")
}

// RedactingLogger returns a Gin middleware that logs one line per request
// with sensitive values scrubbed.
//
// The line carries request_id, method, route path, redacted query, client
// IP, status, bytes, latency, scrubbed headers and the admin id when the
// request was authenticated. Level is info, warn for 4xx and error for 5xx
// or when handlers recorded gin errors.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	maskHeaders := map[string]struct{}{
		"authorization": {},
		"cookie":        {},
		"set-cookie":    {},
	}
	for _, h := range opts.MaskHeaders {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			maskHeaders[h] = struct{}{}
		}
	}
	base := opts.Logger
	if base == nil {
		base = &log.Logger
	}

	return func(c *gin.Context) {
		start := time.Now()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		l := base.With().
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", path).
			Logger()
		c.Set(loggerKey, &l)
		c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))

		safeQuery := truncate(redact(c.Request.URL.RawQuery), maxQueryLogLength)
		safeHeaders := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			if _, ok := maskHeaders[strings.ToLower(k)]; ok {
				safeHeaders[k] = "[REDACTED]"
				continue
			}
			safeHeaders[k] = redact(strings.Join(vv, ", "))
		}

		c.Next()

		status := c.Writer.Status()
		var ev *zerolog.Event
		switch {
		case status >= 500 || len(c.Errors) > 0:
			ev = l.Error()
			if len(c.Errors) > 0 {
				ev = ev.Str("errors", c.Errors.String())
			}
		case status >= 400:
			ev = l.Warn()
		default:
			ev = l.Info()
		}
		if id, ok := AdminIDFrom(c); ok {
			ev = ev.Uint("admin_id", id).Str("admin", AdminUsernameFrom(c))
		}
		if IsReplay(c) {
			ev = ev.Bool("idempotent_replay", true)
		}

		ev.
			Str("query", safeQuery).
			Str("remote_ip", c.ClientIP()).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", safeHeaders).
			Msg("http_request")
	}
}
