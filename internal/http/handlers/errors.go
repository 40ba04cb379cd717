// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// The codes give clients a stable, machine-readable error taxonomy next to
// the human-readable message. They are lowercase snake_case and mirror HTTP
// status semantics.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "bad_request",
//	  "message": "message is required"
//	}
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
