package registration

import "errors"

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrVehicleNotFound      = errors.New("vehicle not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrInvalidStatus        = errors.New("invalid payment status")
)
