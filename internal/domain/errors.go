package domain

import "errors"

// Error taxonomy for the accounting core. Callers wrap these with context and
// match them with errors.Is. None of them is ever retried internally.
var (
	// ErrConflict marks an invariant violation: a second open session, an
	// overlapping manual session, or a lost compare-and-swap.
	ErrConflict = errors.New("conflict")

	// ErrValidation marks structurally invalid input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an operation on a nonexistent entity.
	ErrNotFound = errors.New("not found")
)
