package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/carmeet/internal/clock"
	"github.com/kirinyoku/carmeet/internal/domain"
	"github.com/kirinyoku/carmeet/internal/repository"
)

type Service struct {
	store repository.Store
	clock clock.Clock
}

func New(store repository.Store, clk clock.Clock) *Service {
	return &Service{
		store: store,
		clock: clk,
	}
}

type NewEvent struct {
	OrganizationID uuid.UUID
	Title          string
	Date           time.Time
	Capacity       int
	VendorPrice    int64
}

// CreateEvent validates and stores a new upcoming event.
//
// Parameters:
//   - ctx: request-scoped context.
//   - in: event attributes; the title is required, capacity must be
//     positive, the vendor price non-negative and the date in the future.
//
// Returns:
//   - domain.Event: the created event.
//   - error: admin.ErrInvalidEvent if validation fails.
//   - error: admin.ErrEventConflict if the id is already taken.
func (s *Service) CreateEvent(ctx context.Context, in NewEvent) (domain.Event, error) {
	const op = "service.admin.CreateEvent"

	now := s.clock.Now()

	title := strings.TrimSpace(in.Title)
	switch {
	case title == "":
		return domain.Event{}, fmt.Errorf("%s:%w: title is required", op, ErrInvalidEvent)
	case in.Capacity <= 0:
		return domain.Event{}, fmt.Errorf("%s:%w: capacity must be positive", op, ErrInvalidEvent)
	case in.VendorPrice < 0:
		return domain.Event{}, fmt.Errorf("%s:%w: vendor price must not be negative", op, ErrInvalidEvent)
	case !in.Date.After(now):
		return domain.Event{}, fmt.Errorf("%s:%w: date must be in the future", op, ErrInvalidEvent)
	}

	e := domain.Event{
		ID:             uuid.New(),
		OrganizationID: in.OrganizationID,
		Title:          title,
		Date:           in.Date.UTC(),
		Capacity:       in.Capacity,
		VendorPrice:    in.VendorPrice,
		CreatedAt:      now,
	}

	if err := s.store.Events().Create(ctx, e); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return domain.Event{}, fmt.Errorf("%s:%w", op, ErrEventConflict)
		}
		return domain.Event{}, fmt.Errorf("%s:%w", op, err)
	}

	return e, nil
}

// CreateVehicle registers a vehicle with the collaborator store so it can be
// entered into events.
func (s *Service) CreateVehicle(ctx context.Context, ownerID uuid.UUID, title string) (domain.Vehicle, error) {
	const op = "service.admin.CreateVehicle"

	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Vehicle{}, fmt.Errorf("%s:%w: title is required", op, ErrInvalidVehicle)
	}
	if ownerID == uuid.Nil {
		return domain.Vehicle{}, fmt.Errorf("%s:%w: owner is required", op, ErrInvalidVehicle)
	}

	v := domain.Vehicle{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Title:         title,
		SaleStatus:    domain.VehicleSaleNotRegistered,
		PaymentStatus: domain.VehiclePaymentUnpaid,
	}

	if err := s.store.Vehicles().Create(ctx, v); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return domain.Vehicle{}, fmt.Errorf("%s:%w", op, ErrVehicleConflict)
		}
		return domain.Vehicle{}, fmt.Errorf("%s:%w", op, err)
	}

	return v, nil
}
