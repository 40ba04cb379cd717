// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides SecurityHeaders, a hardening middleware that attaches a
// conservative set of HTTP security headers for JSON APIs behind a reverse
// proxy, and NoStore for routes whose responses must never be cached.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SecurityOptions configures HTTP security headers emitted by SecurityHeaders.
//
// EnableHSTS emits Strict-Transport-Security on HTTPS requests only. Enable it
// only when traffic is HTTPS end-to-end.
//
// HSTSMaxAge defaults to 180 days when not positive.
//
// NoStore adds Cache-Control: no-store (plus legacy Pragma/Expires) to every
// response.
//
// EnablePolicy sends Permissions-Policy and X-Permitted-Cross-Domain-Policies.
//
// CrossOriginResources sets Cross-Origin-Resource-Policy: cross-origin so the
// portfolio front end on another origin can embed the bot avatar and API
// responses.
type SecurityOptions struct {
	EnableHSTS           bool
	HSTSMaxAge           time.Duration
	NoStore              bool
	EnablePolicy         bool
	CrossOriginResources bool
}

// SecurityHeaders returns a Gin middleware that adds security headers:
//
//   - always: X-Content-Type-Options: nosniff, X-Frame-Options: DENY,
//     Referrer-Policy: no-referrer
//   - EnablePolicy: Permissions-Policy, X-Permitted-Cross-Domain-Policies
//   - NoStore: Cache-Control: no-store, Pragma: no-cache, Expires: 0
//   - EnableHSTS on HTTPS: Strict-Transport-Security with includeSubDomains
//   - CrossOriginResources: Cross-Origin-Resource-Policy: cross-origin
//
// When X-Request-ID is present it is added to Access-Control-Expose-Headers
// so browser clients can read it.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := int(opt.HSTSMaxAge.Seconds())
	if maxAge <= 0 {
		maxAge = int((180 * 24 * time.Hour).Seconds())
	}
	hsts := "max-age=" + strconv.Itoa(maxAge) + "; includeSubDomains; preload"

	return func(c *gin.Context) {
		h := c.Writer.Header()

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}
		if opt.CrossOriginResources {
			h.Set("Cross-Origin-Resource-Policy", "cross-origin")
		}
		if opt.NoStore {
			setNoStore(h)
		}
		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}

		if h.Get(requestIDHeader) != "" {
			const hdr = "Access-Control-Expose-Headers"
			cur := h.Get(hdr)
			if cur == "" {
				h.Set(hdr, requestIDHeader)
			} else if !strings.Contains(cur, requestIDHeader) {
				h.Set(hdr, cur+", "+requestIDHeader)
			}
		}

		c.Next()
	}
}

// NoStore marks responses of a route group as uncacheable. Admin routes use
// it since they return tokens and visitor data.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		setNoStore(c.Writer.Header())
		c.Next()
	}
}

func setNoStore(h http.Header) {
	h.Set("Cache-Control", "no-store")
	h.Set("Pragma", "no-cache")
	h.Set("Expires", "0")
}

// isHTTPS reports whether the request used HTTPS directly or via a reverse
// proxy that set X-Forwarded-Proto: https.
func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
