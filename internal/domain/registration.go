package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewRegistration returns a pending registration holding a slot until
// now+hold.
func NewRegistration(eventID, vehicleID, userID uuid.UUID, now time.Time, hold time.Duration) Registration {
	expires := now.Add(hold)
	return Registration{
		ID:            uuid.New(),
		EventID:       eventID,
		VehicleID:     vehicleID,
		UserID:        userID,
		PaymentStatus: PaymentPending,
		ExpiresAt:     &expires,
		CreatedAt:     now,
	}
}

// Validate reports whether the field combination is reachable. Stores call
// it before every write.
func (r Registration) Validate() error {
	if !r.PaymentStatus.Valid() {
		return fmt.Errorf("%w: unknown payment status %q", ErrInvalidRegistration, r.PaymentStatus)
	}
	if (r.ExpiresAt != nil) != (r.PaymentStatus == PaymentPending) {
		return fmt.Errorf("%w: expiresAt must be set iff pending", ErrInvalidRegistration)
	}
	if r.CheckedIn && r.PaymentStatus != PaymentCompleted {
		return fmt.Errorf("%w: checked in without completed payment", ErrInvalidRegistration)
	}
	if r.CheckedIn != (r.CheckedInAt != nil) || r.CheckedIn != (r.CheckedInBy != nil) {
		return fmt.Errorf("%w: check-in fields must be set together", ErrInvalidRegistration)
	}
	if r.QRCodeData != nil && r.PaymentStatus != PaymentCompleted {
		return fmt.Errorf("%w: check-in token issued without completed payment", ErrInvalidRegistration)
	}
	return nil
}

// Expired reports whether a pending hold has lapsed at now.
func (r Registration) Expired(now time.Time) bool {
	return r.PaymentStatus == PaymentPending && r.ExpiresAt != nil && !r.ExpiresAt.After(now)
}

// Active reports whether the registration counts against event capacity
// at now: completed, or pending with a hold still in the future.
func (r Registration) Active(now time.Time) bool {
	switch r.PaymentStatus {
	case PaymentCompleted:
		return true
	case PaymentPending:
		return r.ExpiresAt == nil || r.ExpiresAt.After(now)
	}
	return false
}

// AttachPayment records the processor's payment reference.
func (r Registration) AttachPayment(paymentID string) (Registration, bool, error) {
	if r.StripePaymentID != nil {
		if *r.StripePaymentID == paymentID {
			return r, false, nil
		}
		return r, false, ErrPaymentAttached
	}
	if r.PaymentStatus != PaymentPending {
		return r, false, ErrNotPending
	}

	next := r
	next.StripePaymentID = &paymentID

	return next, true, nil
}

// ApplyOutcome resolves a registration with a processor outcome. A repeat
// of the outcome already applied returns changed=false and no error; a
// conflicting outcome returns ErrAlreadyResolved. token is used as the
// check-in token when the registration completes without one.
func (r Registration) ApplyOutcome(outcome PaymentOutcome, token string) (Registration, bool, error) {
	target := outcome.Status()

	if r.PaymentStatus != PaymentPending {
		if r.PaymentStatus == target {
			return r, false, nil
		}
		return r, false, ErrAlreadyResolved
	}

	next := r
	next.PaymentStatus = target
	next.ExpiresAt = nil
	if target == PaymentCompleted && next.QRCodeData == nil {
		next.QRCodeData = &token
	}

	return next, true, nil
}

// Reclaim fails a pending registration whose hold lapsed at or before now.
func (r Registration) Reclaim(now time.Time) (Registration, error) {
	if r.PaymentStatus != PaymentPending {
		return r, ErrNotPending
	}
	if !r.Expired(now) {
		return r, ErrNotExpired
	}

	next := r
	next.PaymentStatus = PaymentFailed
	next.ExpiresAt = nil

	return next, nil
}

// CheckIn redeems a completed registration. The transition is terminal.
func (r Registration) CheckIn(by uuid.UUID, now time.Time) (Registration, error) {
	if r.PaymentStatus != PaymentCompleted {
		return r, ErrNotEligible
	}
	if r.CheckedIn {
		return r, ErrAlreadyCheckedIn
	}

	next := r
	next.CheckedIn = true
	next.CheckedInAt = &now
	next.CheckedInBy = &by

	return next, nil
}
