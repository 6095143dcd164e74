package repository

import (
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/carmeet/internal/domain"
)

// Registrations is the registration store. Every method is atomic with
// respect to other callers.
type Registrations interface {
	// Admit inserts reg if the admission rule holds for its event at now.
	// Counting occupancy and inserting happen under a per-event lock.
	// Returns ErrNotFound if the event does not exist, or one of
	// domain.ErrEventNotUpcoming, domain.ErrCapacityExceeded,
	// domain.ErrAlreadyRegistered.
	Admit(ctx context.Context, reg domain.Registration, now time.Time) (domain.Registration, error)

	// Update writes reg if the stored version still equals reg.Version and
	// returns it with the new version. Returns ErrConcurrencyConflict when
	// the version moved, ErrConflict when the check-in token is taken.
	Update(ctx context.Context, reg domain.Registration) (domain.Registration, error)

	Get(ctx context.Context, id uuid.UUID) (domain.Registration, error)
	GetByPaymentID(ctx context.Context, paymentID string) (domain.Registration, error)
	GetByToken(ctx context.Context, token string) (domain.Registration, error)

	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Registration, error)
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]domain.Registration, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Registration, error)
	ListByStatus(ctx context.Context, status domain.PaymentStatus, limit int) ([]domain.Registration, error)

	// ListExpired returns up to limit pending registrations whose hold
	// lapsed at or before now, ordered by (expiresAt, id). A non-nil after
	// resumes strictly past that position.
	ListExpired(ctx context.Context, now time.Time, after *ExpiredCursor, limit int) ([]domain.Registration, error)

	// Occupancy counts registrations holding a slot of eventID at now.
	Occupancy(ctx context.Context, eventID uuid.UUID, now time.Time) (int, error)
}

// ExpiredCursor is a position in the ListExpired order.
type ExpiredCursor struct {
	ExpiresAt time.Time
	ID        uuid.UUID
}

// CursorOf returns the position of reg, which must be pending.
func CursorOf(reg domain.Registration) *ExpiredCursor {
	return &ExpiredCursor{ExpiresAt: *reg.ExpiresAt, ID: reg.ID}
}

// Less orders cursors by expiry, then by id bytes as Postgres orders uuid.
func (c ExpiredCursor) Less(o ExpiredCursor) bool {
	if !c.ExpiresAt.Equal(o.ExpiresAt) {
		return c.ExpiresAt.Before(o.ExpiresAt)
	}
	return bytes.Compare(c.ID[:], o.ID[:]) < 0
}

type Events interface {
	Create(ctx context.Context, e domain.Event) error
	Get(ctx context.Context, id uuid.UUID) (domain.Event, error)
}

// Vehicles is the vehicle collaborator used by the payment bridge.
type Vehicles interface {
	Create(ctx context.Context, v domain.Vehicle) error
	Get(ctx context.Context, id uuid.UUID) (domain.Vehicle, error)
	UpdateSaleStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) error
}

type Analytics interface {
	// Increment adds one to counter for vehicleID, creating the row on
	// first use, in a single atomic step.
	Increment(ctx context.Context, vehicleID uuid.UUID, counter domain.Counter) (domain.VehicleAnalytics, error)
	Get(ctx context.Context, vehicleID uuid.UUID) (domain.VehicleAnalytics, error)
}

// Store groups the repositories a backend provides.
type Store interface {
	Registrations() Registrations
	Events() Events
	Vehicles() Vehicles
	Analytics() Analytics
}
