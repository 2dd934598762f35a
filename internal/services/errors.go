package services

import "errors"

// Storage failures are logged with full detail server-side and surfaced to
// callers as one of these opaque errors, so raw driver messages never reach
// the boundary.
var (
	// ErrPersistence is returned when a write-path statement fails.
	ErrPersistence = errors.New("database error: failed to persist invoice")

	// ErrDataFetch is returned when a read-path query fails.
	ErrDataFetch = errors.New("database error: failed to fetch data")

	// ErrNotFound is returned by single-row lookups when no row matches.
	ErrNotFound = errors.New("not found")
)
