// Package apperrors defines the error kinds the matching core returns to
// its callers. Handlers translate them into HTTP status codes; services
// wrap them with fmt.Errorf("...: %w", ...) to add context.
package apperrors

import "errors"

var (
	// ErrServiceUnavailable means the embedding model, cluster model or
	// vector store is not loaded. Never defaulted, never silently skipped.
	ErrServiceUnavailable = errors.New("service not initialized")

	// ErrNotFound covers missing rows and empty candidate sets alike:
	// callers treat "no candidates" the same as a missing resource.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a unique constraint rejects a write.
	ErrConflict = errors.New("already exists")

	// ErrInvalidInput is returned when a required field is missing or malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnreadableDocument is returned when resume text extraction fails.
	ErrUnreadableDocument = errors.New("unreadable document")
)
