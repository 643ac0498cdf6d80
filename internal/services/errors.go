package services

import "errors"

// Error conditions surfaced by the request workflows. Wrapped with
// fmt.Errorf("...: %w", Err...) so callers can attribute failures with
// errors.Is without string matching.
var (
	// ErrValidation marks missing or malformed request parameters,
	// surfaced synchronously before any background work starts.
	ErrValidation = errors.New("invalid request")

	// ErrAuthorization marks a target page outside the expected database.
	// The workflow aborts before any write is attempted.
	ErrAuthorization = errors.New("access denied")

	// ErrGeneration marks a generation backend call that produced no
	// usable result. Fatal for the request, never retried.
	ErrGeneration = errors.New("generation failed")

	// ErrPersistence marks a failed remote write. Earlier writes in the
	// same workflow may already be applied; there is no rollback.
	ErrPersistence = errors.New("persistence failed")

	// ErrConfiguration marks a required deployment parameter that is
	// absent.
	ErrConfiguration = errors.New("missing configuration")
)
