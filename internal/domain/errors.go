package domain

import "errors"

var (
	ErrEventNotUpcoming  = errors.New("event is not upcoming")
	ErrCapacityExceeded  = errors.New("event capacity exceeded")
	ErrAlreadyRegistered = errors.New("vehicle already has an active registration for this event")

	ErrNotPending       = errors.New("registration is not pending")
	ErrNotExpired       = errors.New("registration hold has not expired")
	ErrAlreadyResolved  = errors.New("registration already resolved with a different outcome")
	ErrNotEligible      = errors.New("registration is not eligible for check-in")
	ErrAlreadyCheckedIn = errors.New("registration already checked in")
	ErrPaymentAttached  = errors.New("registration already has a different payment reference")

	ErrInvalidRegistration = errors.New("invalid registration state")
)
