package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kirinyoku/carmeet/internal/domain"
	"github.com/kirinyoku/carmeet/internal/repository"
)

type VehicleRepo struct {
	s *Store
}

func (r *VehicleRepo) Create(ctx context.Context, v domain.Vehicle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.vehicles[v.ID]; ok {
		return fmt.Errorf("memory.VehicleRepo.Create:%w", repository.ErrConflict)
	}
	r.s.vehicles[v.ID] = v

	return nil
}

func (r *VehicleRepo) Get(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.vehicles[id]
	if !ok {
		return domain.Vehicle{}, fmt.Errorf("memory.VehicleRepo.Get:%w", repository.ErrNotFound)
	}

	return v, nil
}

func (r *VehicleRepo) UpdateSaleStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.patch("memory.VehicleRepo.UpdateSaleStatus", id, func(v *domain.Vehicle) { v.SaleStatus = status })
}

func (r *VehicleRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.patch("memory.VehicleRepo.UpdatePaymentStatus", id, func(v *domain.Vehicle) { v.PaymentStatus = status })
}

func (r *VehicleRepo) patch(op string, id uuid.UUID, fn func(*domain.Vehicle)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.vehicles[id]
	if !ok {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}
	fn(&v)
	r.s.vehicles[id] = v

	return nil
}
