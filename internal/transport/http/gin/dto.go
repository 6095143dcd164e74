package httpgin

import (
	"time"

	"github.com/kirinyoku/carmeet/internal/domain"
)

type ReserveRequest struct {
	VehicleID string `json:"vehicleId" binding:"required,uuid"`
	UserID    string `json:"userId" binding:"required,uuid"`
}

type AttachPaymentRequest struct {
	StripePaymentID string `json:"stripePaymentId" binding:"required"`
}

// PaymentWebhookRequest is the processor's notification. Reference is the
// payment intent id or the registration id passed as metadata.
type PaymentWebhookRequest struct {
	Reference string `json:"reference" binding:"required"`
	Outcome   string `json:"outcome" binding:"required,oneof=succeeded failed"`
}

type CheckInRequest struct {
	Token string `json:"token" binding:"required"`
}

type CreateEventRequest struct {
	OrganizationID string    `json:"organizationId" binding:"omitempty,uuid"`
	Title          string    `json:"title" binding:"required"`
	Date           time.Time `json:"date" binding:"required"`
	Capacity       int       `json:"capacity" binding:"required,gt=0"`
	VendorPrice    int64     `json:"vendorPrice" binding:"gte=0"`
}

type CreateVehicleRequest struct {
	OwnerID string `json:"ownerId" binding:"required,uuid"`
	Title   string `json:"title" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// PaymentWebhookResponse acknowledges a delivery. Result is "applied", or
// "already_resolved" when the registration kept an earlier outcome.
type PaymentWebhookResponse struct {
	RegistrationID string               `json:"registrationId"`
	PaymentStatus  domain.PaymentStatus `json:"paymentStatus"`
	Result         string               `json:"result"`
}

// publicRegistration hides the check-in token and the payment reference.
// Unauthenticated routes only ever return this form.
func publicRegistration(r domain.Registration) domain.Registration {
	r.QRCodeData = nil
	r.StripePaymentID = nil
	return r
}

func publicRegistrations(regs []domain.Registration) []domain.Registration {
	out := make([]domain.Registration, 0, len(regs))
	for _, r := range regs {
		out = append(out, publicRegistration(r))
	}
	return out
}
