package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newPending(t *testing.T) Registration {
	t.Helper()
	r := NewRegistration(uuid.New(), uuid.New(), uuid.New(), t0, 15*time.Minute)
	require.NoError(t, r.Validate())
	return r
}

func TestNewRegistration(t *testing.T) {
	r := newPending(t)

	assert.Equal(t, PaymentPending, r.PaymentStatus)
	require.NotNil(t, r.ExpiresAt)
	assert.Equal(t, t0.Add(15*time.Minute), *r.ExpiresAt)
	assert.Equal(t, t0, r.CreatedAt)
	assert.False(t, r.CheckedIn)
	assert.Nil(t, r.QRCodeData)
}

func TestApplyOutcome_Succeeded(t *testing.T) {
	r := newPending(t)

	next, changed, err := r.ApplyOutcome(OutcomeSucceeded, "tok-1")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, PaymentCompleted, next.PaymentStatus)
	assert.Nil(t, next.ExpiresAt)
	require.NotNil(t, next.QRCodeData)
	assert.Equal(t, "tok-1", *next.QRCodeData)
	assert.NoError(t, next.Validate())

	// the receiver is not mutated
	assert.Equal(t, PaymentPending, r.PaymentStatus)
}

func TestApplyOutcome_Failed(t *testing.T) {
	next, changed, err := newPending(t).ApplyOutcome(OutcomeFailed, "unused")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, PaymentFailed, next.PaymentStatus)
	assert.Nil(t, next.ExpiresAt)
	assert.Nil(t, next.QRCodeData)
	assert.NoError(t, next.Validate())
}

func TestApplyOutcome_Idempotent(t *testing.T) {
	done, _, err := newPending(t).ApplyOutcome(OutcomeSucceeded, "tok-1")
	require.NoError(t, err)

	again, changed, err := done.ApplyOutcome(OutcomeSucceeded, "tok-2")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "tok-1", *again.QRCodeData)

	_, _, err = done.ApplyOutcome(OutcomeFailed, "")
	assert.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestApplyOutcome_NoResurrection(t *testing.T) {
	r := newPending(t)

	reclaimed, err := r.Reclaim(t0.Add(time.Hour))
	require.NoError(t, err)

	_, _, err = reclaimed.ApplyOutcome(OutcomeSucceeded, "tok")
	assert.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestReclaim(t *testing.T) {
	r := newPending(t)

	_, err := r.Reclaim(t0.Add(time.Minute))
	assert.ErrorIs(t, err, ErrNotExpired)

	next, err := r.Reclaim(t0.Add(15 * time.Minute))
	require.NoError(t, err, "hold expiring exactly now is reclaimable")
	assert.Equal(t, PaymentFailed, next.PaymentStatus)
	assert.Nil(t, next.ExpiresAt)
	assert.NoError(t, next.Validate())

	_, err = next.Reclaim(t0.Add(time.Hour))
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestCheckIn(t *testing.T) {
	staff := uuid.New()
	r := newPending(t)

	_, err := r.CheckIn(staff, t0)
	assert.ErrorIs(t, err, ErrNotEligible)

	done, _, err := r.ApplyOutcome(OutcomeSucceeded, "tok")
	require.NoError(t, err)

	in, err := done.CheckIn(staff, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, in.CheckedIn)
	assert.Equal(t, t0.Add(time.Hour), *in.CheckedInAt)
	assert.Equal(t, staff, *in.CheckedInBy)
	assert.NoError(t, in.Validate())

	_, err = in.CheckIn(uuid.New(), t0.Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

func TestAttachPayment(t *testing.T) {
	r := newPending(t)

	next, changed, err := r.AttachPayment("pi_1")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "pi_1", *next.StripePaymentID)

	_, changed, err = next.AttachPayment("pi_1")
	require.NoError(t, err)
	assert.False(t, changed)

	_, _, err = next.AttachPayment("pi_2")
	assert.ErrorIs(t, err, ErrPaymentAttached)

	failed, _, err := r.ApplyOutcome(OutcomeFailed, "")
	require.NoError(t, err)
	_, _, err = failed.AttachPayment("pi_3")
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestValidate_RejectsUnreachableStates(t *testing.T) {
	exp := t0
	by := uuid.New()
	token := "tok"

	tests := []struct {
		name string
		reg  Registration
	}{
		{"pending without expiry", Registration{PaymentStatus: PaymentPending}},
		{"completed with expiry", Registration{PaymentStatus: PaymentCompleted, ExpiresAt: &exp}},
		{"checked in while pending", Registration{PaymentStatus: PaymentPending, ExpiresAt: &exp, CheckedIn: true, CheckedInAt: &exp, CheckedInBy: &by}},
		{"checked in while failed", Registration{PaymentStatus: PaymentFailed, CheckedIn: true, CheckedInAt: &exp, CheckedInBy: &by}},
		{"checked in without stamp", Registration{PaymentStatus: PaymentCompleted, CheckedIn: true}},
		{"token on failed", Registration{PaymentStatus: PaymentFailed, QRCodeData: &token}},
		{"unknown status", Registration{PaymentStatus: "refunded"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.reg.Validate(), ErrInvalidRegistration)
		})
	}
}
