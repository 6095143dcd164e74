package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kirinyoku/carmeet/internal/domain"
	"github.com/kirinyoku/carmeet/internal/repository"
)

type EventRepo struct {
	s *Store
}

func (r *EventRepo) Create(ctx context.Context, e domain.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[e.ID]; ok {
		return fmt.Errorf("memory.EventRepo.Create:%w", repository.ErrConflict)
	}
	r.s.events[e.ID] = e

	return nil
}

func (r *EventRepo) Get(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.events[id]
	if !ok {
		return domain.Event{}, fmt.Errorf("memory.EventRepo.Get:%w", repository.ErrNotFound)
	}

	return e, nil
}
