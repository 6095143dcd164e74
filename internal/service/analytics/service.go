package analytics

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kirinyoku/carmeet/internal/domain"
	"github.com/kirinyoku/carmeet/internal/repository"
)

var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrUnknownCounter  = errors.New("unknown counter")
)

type Service struct {
	store repository.Store
}

func New(store repository.Store) *Service {
	return &Service{store: store}
}

// Increment adds one view or share to the vehicle's counters and returns
// the counters after the increment.
func (s *Service) Increment(ctx context.Context, vehicleID uuid.UUID, counter domain.Counter) (domain.VehicleAnalytics, error) {
	const op = "service.analytics.Increment"

	if !counter.Valid() {
		return domain.VehicleAnalytics{}, fmt.Errorf("%s:%w: %q", op, ErrUnknownCounter, counter)
	}

	if err := s.vehicleExists(ctx, vehicleID); err != nil {
		return domain.VehicleAnalytics{}, fmt.Errorf("%s:%w", op, err)
	}

	row, err := s.store.Analytics().Increment(ctx, vehicleID, counter)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.VehicleAnalytics{}, fmt.Errorf("%s:%w", op, ErrVehicleNotFound)
		}
		return domain.VehicleAnalytics{}, fmt.Errorf("%s:%w", op, err)
	}

	return row, nil
}

func (s *Service) Get(ctx context.Context, vehicleID uuid.UUID) (domain.VehicleAnalytics, error) {
	const op = "service.analytics.Get"

	if err := s.vehicleExists(ctx, vehicleID); err != nil {
		return domain.VehicleAnalytics{}, fmt.Errorf("%s:%w", op, err)
	}

	row, err := s.store.Analytics().Get(ctx, vehicleID)
	if err != nil {
		return domain.VehicleAnalytics{}, fmt.Errorf("%s:%w", op, err)
	}

	return row, nil
}

func (s *Service) vehicleExists(ctx context.Context, vehicleID uuid.UUID) error {
	if _, err := s.store.Vehicles().Get(ctx, vehicleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVehicleNotFound
		}
		return err
	}
	return nil
}
