package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing note.
	ErrNotFound = errors.New("note not found")
	// ErrUnauthorized signals a note owned by another user.
	ErrUnauthorized = errors.New("access denied: note does not belong to this user")
	// ErrInvalidInput signals a malformed request value.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEnrichmentValidation signals a model reply that does not match the result schema.
	ErrEnrichmentValidation = errors.New("enrichment validation failed")
	// ErrEnrichmentTransport signals a failed model call (network, empty reply, timeout).
	ErrEnrichmentTransport = errors.New("enrichment transport failed")
	// ErrEnrichmentExhausted signals that every attempt ended in a validation failure.
	ErrEnrichmentExhausted = errors.New("enrichment attempts exhausted")
	// ErrEnrichmentQuotaExceeded signals an exhausted model token budget.
	ErrEnrichmentQuotaExceeded = errors.New("enrichment quota exceeded")
	// ErrEnrichmentFailed is the opaque error surfaced by the orchestrator.
	ErrEnrichmentFailed = errors.New("enrichment failed")
)

// ValidationError describes why a model reply was rejected.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return ErrEnrichmentValidation.Error() + ": " + e.Reason }

func (e *ValidationError) Unwrap() error { return ErrEnrichmentValidation }

// ExhaustedError carries the last validation message after all attempts failed.
type ExhaustedError struct {
	Attempts  int
	LastError string
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s after %d attempts: %s", ErrEnrichmentExhausted.Error(), e.Attempts, e.LastError)
}

func (e *ExhaustedError) Unwrap() error { return ErrEnrichmentExhausted }

// EnrichmentFailedError hides the engine cause from errors.Is chains.
// Cause is kept for logging only.
type EnrichmentFailedError struct {
	Cause error
}

func (e *EnrichmentFailedError) Error() string { return ErrEnrichmentFailed.Error() }

func (e *EnrichmentFailedError) Unwrap() error { return ErrEnrichmentFailed }

// NewEnrichmentFailed wraps an engine error into the opaque orchestrator error.
func NewEnrichmentFailed(cause error) error {
	return &EnrichmentFailedError{Cause: cause}
}
