package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kirinyoku/carmeet/internal/domain"
)

type AnalyticsRepo struct {
	s *Store
}

func (r *AnalyticsRepo) Increment(
	ctx context.Context,
	vehicleID uuid.UUID,
	counter domain.Counter,
) (domain.VehicleAnalytics, error) {
	if !counter.Valid() {
		return domain.VehicleAnalytics{}, fmt.Errorf("memory.AnalyticsRepo.Increment: unknown counter %q", counter)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.analytics[vehicleID]
	if !ok {
		row = domain.VehicleAnalytics{VehicleID: vehicleID}
	}

	switch counter {
	case domain.CounterViews:
		row.Views++
	case domain.CounterShares:
		row.Shares++
	}
	r.s.analytics[vehicleID] = row

	return row, nil
}

// Get returns zero counters for a vehicle that was never counted.
func (r *AnalyticsRepo) Get(ctx context.Context, vehicleID uuid.UUID) (domain.VehicleAnalytics, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.analytics[vehicleID]
	if !ok {
		return domain.VehicleAnalytics{VehicleID: vehicleID}, nil
	}

	return row, nil
}
