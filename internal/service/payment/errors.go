package payment

import "errors"

var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrInvalidOutcome       = errors.New("invalid payment outcome")
	ErrEmptyReference       = errors.New("payment reference is empty")
	ErrPaymentIDTaken       = errors.New("payment reference belongs to another registration")
	ErrConcurrencyConflict  = errors.New("registration was modified concurrently")
	// ErrVehicleSync means the registration is resolved but the vehicle
	// status could not be updated; a repeated notification retries it.
	ErrVehicleSync = errors.New("vehicle status update failed")
)
