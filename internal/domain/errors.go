package domain

import "errors"

var (
	// ErrValidation signals malformed or oversized caller input, rejected before any I/O.
	ErrValidation = errors.New("validation failed")
	// ErrEmbeddingUnavailable signals that the embedding provider failed or timed out.
	// Search never degrades to keyword-only ranking; the whole request fails.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")
	// ErrStorage signals a failed storage query. Internal detail is logged, not returned.
	ErrStorage = errors.New("storage error")
	// ErrCancelled signals a caller-initiated abort, distinct from ErrStorage so it is
	// not alerted as a failure.
	ErrCancelled = errors.New("request cancelled")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
)
