package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a uniqueness violation, e.g. a duplicate
	// check-in token.
	ErrConflict = errors.New("conflict")
	// ErrConcurrencyConflict reports a conditional write that lost a race
	// (version changed since read, or a serialization failure).
	ErrConcurrencyConflict = errors.New("concurrent modification")
)
