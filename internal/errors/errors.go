package errors

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Domain error taxonomy. Services wrap these sentinels with context via
// fmt.Errorf("...: %w", ...); the handler boundary maps them to HTTP status
// codes and a generic client-facing message.
var (
	// ErrUnauthorized means the caller identity is missing or invalid.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidOperation means the request is semantically nonsensical
	// (self-like, malformed identifiers) and no persistence was attempted.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists means a new resource collides with an existing one
	// (duplicate registration email). Duplicate likes/matches/suggestions
	// never surface this: they are treated as success.
	ErrAlreadyExists = errors.New("already exists")

	// ErrStoreUnavailable means the persistence collaborator is unreachable
	// or timed out; the operation is retryable.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// HTTPStatus maps a service error to an HTTP status code.
// Keeps handlers clean by centralizing error mapping.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidOperation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the client-facing message for an error. Internal
// detail stays in logs; callers only learn the broad category.
func PublicMessage(err error) string {
	switch HTTPStatus(err) {
	case http.StatusUnauthorized:
		return "authorization required"
	case http.StatusBadRequest:
		return "invalid request"
	case http.StatusNotFound:
		return "not found"
	case http.StatusConflict:
		return "already exists"
	default:
		return "could not complete action"
	}
}
