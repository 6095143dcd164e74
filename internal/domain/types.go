package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}

// PaymentOutcome is the terminal result reported by the payment processor.
type PaymentOutcome string

const (
	OutcomeSucceeded PaymentOutcome = "succeeded"
	OutcomeFailed    PaymentOutcome = "failed"
)

func (o PaymentOutcome) Valid() bool {
	return o == OutcomeSucceeded || o == OutcomeFailed
}

// Status returns the payment status a pending registration moves to.
func (o PaymentOutcome) Status() PaymentStatus {
	if o == OutcomeSucceeded {
		return PaymentCompleted
	}
	return PaymentFailed
}

type Event struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organizationId"`
	Title          string    `json:"title"`
	Date           time.Time `json:"date"`
	Capacity       int       `json:"capacity"`
	VendorPrice    int64     `json:"vendorPrice"` // minor currency units
	CreatedAt      time.Time `json:"createdAt"`
}

// Registration is a seller's reserved, payable slot for showing one
// vehicle at one event.
type Registration struct {
	ID              uuid.UUID     `json:"id"`
	EventID         uuid.UUID     `json:"eventId"`
	VehicleID       uuid.UUID     `json:"vehicleId"`
	UserID          uuid.UUID     `json:"userId"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	StripePaymentID *string       `json:"stripePaymentId,omitempty"`
	QRCodeData      *string       `json:"qrCodeData,omitempty"`
	CheckedIn       bool          `json:"checkedIn"`
	CheckedInAt     *time.Time    `json:"checkedInAt,omitempty"`
	CheckedInBy     *uuid.UUID    `json:"checkedInBy,omitempty"`
	ExpiresAt       *time.Time    `json:"expiresAt,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`

	// Version is bumped by the store on every write; updates are
	// conditioned on it.
	Version int64 `json:"-"`
}

type Occupancy struct {
	EventID   uuid.UUID `json:"eventId"`
	Capacity  int       `json:"capacity"`
	Occupied  int       `json:"occupied"`
	Available int       `json:"available"`
}

type Counter string

const (
	CounterViews  Counter = "views"
	CounterShares Counter = "shares"
)

func (c Counter) Valid() bool {
	return c == CounterViews || c == CounterShares
}

type VehicleAnalytics struct {
	VehicleID uuid.UUID `json:"vehicleId"`
	Views     int64     `json:"views"`
	Shares    int64     `json:"shares"`
}

type Vehicle struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       uuid.UUID `json:"ownerId"`
	Title         string    `json:"title"`
	SaleStatus    string    `json:"saleStatus"`
	PaymentStatus string    `json:"paymentStatus"`
}

// Vehicle statuses written by the payment bridge once a registration fee
// is paid.
const (
	VehiclePaymentPaid       = "paid"
	VehicleSaleRegistered    = "registered"
	VehiclePaymentUnpaid     = "unpaid"
	VehicleSaleNotRegistered = "available"
)
