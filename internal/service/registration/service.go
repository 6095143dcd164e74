package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/carmeet/internal/clock"
	"github.com/kirinyoku/carmeet/internal/domain"
	"github.com/kirinyoku/carmeet/internal/repository"
)

type Config struct {
	HoldDuration time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, id string) error
}

type Notifier interface {
	RegistrationChanged(ctx context.Context, eventID, registrationID uuid.UUID)
}

type Cache interface {
	Occupancy(ctx context.Context, eventID uuid.UUID, load func(ctx context.Context) (domain.Occupancy, error)) (domain.Occupancy, error)
	Event(ctx context.Context, eventID uuid.UUID, load func(ctx context.Context) (domain.Event, error)) (domain.Event, error)
}

// Service admits sellers to events and serves registration reads.
// cache, notifier and limiter are optional.
type Service struct {
	store    repository.Store
	clock    clock.Clock
	cache    Cache
	notifier Notifier
	limiter  Limiter
	logger   *slog.Logger
	cfg      Config
}

func New(
	store repository.Store,
	clk clock.Clock,
	cache Cache,
	notifier Notifier,
	limiter Limiter,
	logger *slog.Logger,
	cfg Config,
) *Service {
	if cfg.HoldDuration <= 0 {
		cfg.HoldDuration = 15 * time.Minute
	}

	return &Service{
		store:    store,
		clock:    clk,
		cache:    cache,
		notifier: notifier,
		limiter:  limiter,
		logger:   logger,
		cfg:      cfg,
	}
}

// Reserve admits vehicleID to eventID and returns the pending registration
// holding the slot.
//
// Parameters:
//   - ctx: request-scoped context.
//   - eventID: event to register for.
//   - vehicleID: vehicle to show at the event.
//   - userID: seller making the reservation.
//   - clientKey: rate limit bucket, empty to skip limiting.
//
// Returns:
//   - domain.Registration: the pending registration.
//   - error: registration.ErrEventNotFound, registration.ErrVehicleNotFound,
//     domain.ErrEventNotUpcoming, domain.ErrCapacityExceeded,
//     domain.ErrAlreadyRegistered or *redis.RateLimitedError.
func (s *Service) Reserve(
	ctx context.Context,
	eventID, vehicleID, userID uuid.UUID,
	clientKey string,
) (domain.Registration, error) {
	const op = "service.registration.Reserve"

	if s.limiter != nil && clientKey != "" {
		if err := s.limiter.Allow(ctx, clientKey); err != nil {
			return domain.Registration{}, fmt.Errorf("%s:%w", op, err)
		}
	}

	if _, err := s.store.Vehicles().Get(ctx, vehicleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Registration{}, fmt.Errorf("%s:%w", op, ErrVehicleNotFound)
		}
		return domain.Registration{}, fmt.Errorf("%s:%w", op, err)
	}

	now := s.clock.Now()
	reg := domain.NewRegistration(eventID, vehicleID, userID, now, s.cfg.HoldDuration)

	created, err := s.store.Registrations().Admit(ctx, reg, now)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Registration{}, fmt.Errorf("%s:%w", op, ErrEventNotFound)
		}
		return domain.Registration{}, fmt.Errorf("%s:%w", op, err)
	}

	s.logger.Info("registration admitted",
		"registration_id", created.ID,
		"event_id", created.EventID,
		"vehicle_id", created.VehicleID,
		"expires_at", created.ExpiresAt,
	)

	if s.notifier != nil {
		s.notifier.RegistrationChanged(ctx, created.EventID, created.ID)
	}

	return created, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Registration, error) {
	const op = "service.registration.Get"

	reg, err := s.store.Registrations().Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Registration{}, fmt.Errorf("%s:%w", op, ErrRegistrationNotFound)
		}
		return domain.Registration{}, fmt.Errorf("%s:%w", op, err)
	}

	return reg, nil
}

// ListByEvent returns the registrations of an existing event.
func (s *Service) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Registration, error) {
	const op = "service.registration.ListByEvent"

	if _, err := s.Event(ctx, eventID); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	regs, err := s.store.Registrations().ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return regs, nil
}

func (s *Service) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]domain.Registration, error) {
	const op = "service.registration.ListByVehicle"

	regs, err := s.store.Registrations().ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return regs, nil
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Registration, error) {
	const op = "service.registration.ListByUser"

	regs, err := s.store.Registrations().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return regs, nil
}

func (s *Service) ListByStatus(ctx context.Context, status domain.PaymentStatus, limit int) ([]domain.Registration, error) {
	const op = "service.registration.ListByStatus"

	if !status.Valid() {
		return nil, fmt.Errorf("%s:%w: %q", op, ErrInvalidStatus, status)
	}

	regs, err := s.store.Registrations().ListByStatus(ctx, status, limit)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return regs, nil
}

func (s *Service) Event(ctx context.Context, eventID uuid.UUID) (domain.Event, error) {
	const op = "service.registration.Event"

	load := func(ctx context.Context) (domain.Event, error) {
		return s.store.Events().Get(ctx, eventID)
	}

	var (
		e   domain.Event
		err error
	)
	if s.cache != nil {
		e, err = s.cache.Event(ctx, eventID, load)
	} else {
		e, err = load(ctx)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Event{}, fmt.Errorf("%s:%w", op, ErrEventNotFound)
		}
		return domain.Event{}, fmt.Errorf("%s:%w", op, err)
	}

	return e, nil
}

// Occupancy reports how many slots of the event are held at the current
// time. The result may be served from cache for a few seconds.
func (s *Service) Occupancy(ctx context.Context, eventID uuid.UUID) (domain.Occupancy, error) {
	const op = "service.registration.Occupancy"

	load := func(ctx context.Context) (domain.Occupancy, error) {
		e, err := s.store.Events().Get(ctx, eventID)
		if err != nil {
			return domain.Occupancy{}, err
		}
		n, err := s.store.Registrations().Occupancy(ctx, eventID, s.clock.Now())
		if err != nil {
			return domain.Occupancy{}, err
		}
		return domain.NewOccupancy(e, n), nil
	}

	var (
		occ domain.Occupancy
		err error
	)
	if s.cache != nil {
		occ, err = s.cache.Occupancy(ctx, eventID, load)
	} else {
		occ, err = load(ctx)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Occupancy{}, fmt.Errorf("%s:%w", op, ErrEventNotFound)
		}
		return domain.Occupancy{}, fmt.Errorf("%s:%w", op, err)
	}

	return occ, nil
}
