// Package handlers provides HTTP handler implementations for the public and
// admin API.
//
// This file defines the response helpers shared by all endpoints:
//   - fail() writes the error envelope with a stable `code` and logs 5xx
//     responses with request context.
//   - failService() maps service errors onto status codes and messages.
//   - ok() writes success bodies.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "Q&A rule not found"
//	}
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-portfolio-backend/internal/http/middleware"
	"github.com/tbourn/go-portfolio-backend/internal/services"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"Q&A rule not found"`
}

// MessageResponse is the body of endpoints that only confirm an action.
type MessageResponse struct {
	Message string `json:"message" example:"Q&A rule deleted"`
}

// fail aborts the request with a structured error. Server errors (>=500)
// are logged with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail() for the router's 404/405 handlers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// failService translates a service error. Validation messages are passed to
// the client; storage and unknown errors are logged and hidden behind a
// generic 500.
func failService(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, validationMessage(err))
	case errors.Is(err, services.ErrRuleNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "Q&A rule not found")
	case errors.Is(err, services.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid credentials")
	case errors.Is(err, services.ErrUnauthorized):
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
	case errors.Is(err, services.ErrIdempotencyConflict):
		fail(c, http.StatusConflict, ErrCodeConflict, "Idempotency-Key already used for a different request")
	default:
		_ = c.Error(err)
		middleware.LoggerFrom(c).Error().Err(err).Msg("service error")
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}

// validationMessage strips the "validation: " prefix of a wrapped
// ErrValidation.
func validationMessage(err error) string {
	msg := err.Error()
	if rest, found := strings.CutPrefix(msg, services.ErrValidation.Error()+": "); found {
		return rest
	}
	return msg
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
