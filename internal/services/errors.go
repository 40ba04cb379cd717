// Package services defines the business logic of the portfolio chatbot:
// the Q&A store, matching, configuration, chat logging, stats and admin
// authentication. This file centralizes service-level error values so they
// can be returned consistently and checked with errors.Is by callers.
//
// Translation into HTTP status codes belongs to the handler layer.
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks invalid input. It is always wrapped with a
	// field-level message, e.g. "validation: question is required".
	ErrValidation = errors.New("validation")

	// ErrRuleNotFound indicates that the requested Q&A rule does not exist.
	ErrRuleNotFound = errors.New("rule not found")

	// ErrInvalidCredentials is returned for a wrong username or password.
	// Both cases share the error so callers cannot probe usernames.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized is returned when a token is missing, malformed or
	// expired, or names an admin that no longer exists.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrIdempotencyConflict is returned when an idempotency key is reused
	// for a different request.
	ErrIdempotencyConflict = errors.New("idempotency key reused")

	// ErrStorage wraps failures of the underlying database.
	ErrStorage = errors.New("storage error")
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func storage(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}
