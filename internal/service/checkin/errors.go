package checkin

import "errors"

var (
	ErrTokenNotFound       = errors.New("check-in token not found")
	ErrEmptyToken          = errors.New("check-in token is empty")
	ErrConcurrencyConflict = errors.New("registration was modified concurrently")
)
