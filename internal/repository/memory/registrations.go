package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/carmeet/internal/domain"
	"github.com/kirinyoku/carmeet/internal/repository"
)

type RegistrationRepo struct {
	s *Store
}

func (r *RegistrationRepo) Admit(
	ctx context.Context,
	reg domain.Registration,
	now time.Time,
) (domain.Registration, error) {
	const op = "memory.RegistrationRepo.Admit"

	if err := reg.Validate(); err != nil {
		return domain.Registration{}, fmt.Errorf("%s:%w", op, err)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	event, ok := r.s.events[reg.EventID]
	if !ok {
		return domain.Registration{}, fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	existing := r.filterLocked(func(x domain.Registration) bool { return x.EventID == reg.EventID })

	if err := domain.CheckAdmission(event, domain.CountOccupancy(existing, now), now); err != nil {
		return domain.Registration{}, fmt.Errorf("%s:%w", op, err)
	}

	if domain.HasActiveRegistration(existing, reg.VehicleID, now) {
		return domain.Registration{}, fmt.Errorf("%s:%w", op, domain.ErrAlreadyRegistered)
	}

	if _, dup := r.s.registrations[reg.ID]; dup {
		return domain.Registration{}, fmt.Errorf("%s:%w", op, repository.ErrConflict)
	}

	reg.Version = 1
	r.s.registrations[reg.ID] = clone(reg)
	r.indexLocked(reg)

	return clone(reg), nil
}

func (r *RegistrationRepo) Update(ctx context.Context, reg domain.Registration) (domain.Registration, error) {
	const op = "memory.RegistrationRepo.Update"

	if err := reg.Validate(); err != nil {
		return domain.Registration{}, fmt.Errorf("%s:%w", op, err)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.registrations[reg.ID]
	if !ok {
		return domain.Registration{}, fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}
	if cur.Version != reg.Version {
		return domain.Registration{}, fmt.Errorf("%s:%w", op, repository.ErrConcurrencyConflict)
	}

	if reg.QRCodeData != nil {
		if owner, taken := r.s.byToken[*reg.QRCodeData]; taken && owner != reg.ID {
			return domain.Registration{}, fmt.Errorf("%s:%w", op, repository.ErrConflict)
		}
	}
	if reg.StripePaymentID != nil {
		if owner, taken := r.s.byPaymentID[*reg.StripePaymentID]; taken && owner != reg.ID {
			return domain.Registration{}, fmt.Errorf("%s:%w", op, repository.ErrConflict)
		}
	}

	r.unindexLocked(cur)
	reg.Version = cur.Version + 1
	r.s.registrations[reg.ID] = clone(reg)
	r.indexLocked(reg)

	return clone(reg), nil
}

func (r *RegistrationRepo) Get(ctx context.Context, id uuid.UUID) (domain.Registration, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	reg, ok := r.s.registrations[id]
	if !ok {
		return domain.Registration{}, fmt.Errorf("memory.RegistrationRepo.Get:%w", repository.ErrNotFound)
	}
	return clone(reg), nil
}

func (r *RegistrationRepo) GetByPaymentID(ctx context.Context, paymentID string) (domain.Registration, error) {
	return r.getByIndex("memory.RegistrationRepo.GetByPaymentID", r.s.byPaymentID, paymentID)
}

func (r *RegistrationRepo) GetByToken(ctx context.Context, token string) (domain.Registration, error) {
	return r.getByIndex("memory.RegistrationRepo.GetByToken", r.s.byToken, token)
}

func (r *RegistrationRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Registration, error) {
	return r.list(func(x domain.Registration) bool { return x.EventID == eventID }, 0), nil
}

func (r *RegistrationRepo) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]domain.Registration, error) {
	return r.list(func(x domain.Registration) bool { return x.VehicleID == vehicleID }, 0), nil
}

func (r *RegistrationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Registration, error) {
	return r.list(func(x domain.Registration) bool { return x.UserID == userID }, 0), nil
}

func (r *RegistrationRepo) ListByStatus(
	ctx context.Context,
	status domain.PaymentStatus,
	limit int,
) ([]domain.Registration, error) {
	return r.list(func(x domain.Registration) bool { return x.PaymentStatus == status }, limit), nil
}

func (r *RegistrationRepo) ListExpired(
	ctx context.Context,
	now time.Time,
	after *repository.ExpiredCursor,
	limit int,
) ([]domain.Registration, error) {
	out := r.list(func(x domain.Registration) bool {
		if !x.Expired(now) {
			return false
		}
		return after == nil || after.Less(*repository.CursorOf(x))
	}, 0)

	sort.Slice(out, func(i, j int) bool {
		return repository.CursorOf(out[i]).Less(*repository.CursorOf(out[j]))
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *RegistrationRepo) Occupancy(ctx context.Context, eventID uuid.UUID, now time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.events[eventID]; !ok {
		return 0, fmt.Errorf("memory.RegistrationRepo.Occupancy:%w", repository.ErrNotFound)
	}

	regs := r.filterLocked(func(x domain.Registration) bool { return x.EventID == eventID })

	return domain.CountOccupancy(regs, now), nil
}

func (r *RegistrationRepo) getByIndex(op string, index map[string]uuid.UUID, key string) (domain.Registration, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := index[key]
	if !ok {
		return domain.Registration{}, fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}
	return clone(r.s.registrations[id]), nil
}

// list returns matches ordered by creation time.
func (r *RegistrationRepo) list(match func(domain.Registration) bool, limit int) []domain.Registration {
	r.s.mu.RLock()
	out := r.filterLocked(match)
	r.s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}

func (r *RegistrationRepo) filterLocked(match func(domain.Registration) bool) []domain.Registration {
	var out []domain.Registration
	for _, reg := range r.s.registrations {
		if match(reg) {
			out = append(out, clone(reg))
		}
	}
	return out
}

func (r *RegistrationRepo) indexLocked(reg domain.Registration) {
	if reg.StripePaymentID != nil {
		r.s.byPaymentID[*reg.StripePaymentID] = reg.ID
	}
	if reg.QRCodeData != nil {
		r.s.byToken[*reg.QRCodeData] = reg.ID
	}
}

func (r *RegistrationRepo) unindexLocked(reg domain.Registration) {
	if reg.StripePaymentID != nil {
		delete(r.s.byPaymentID, *reg.StripePaymentID)
	}
	if reg.QRCodeData != nil {
		delete(r.s.byToken, *reg.QRCodeData)
	}
}
