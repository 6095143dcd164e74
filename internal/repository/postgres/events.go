package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/carmeet/internal/domain"
)

type EventRepo struct {
	pool *pgxpool.Pool
}

func (r *EventRepo) Create(ctx context.Context, e domain.Event) error {
	const op = "postgres.EventRepo.Create"

	_, err := r.pool.Exec(ctx,
		`INSERT INTO events (id, organization_id, title, date, capacity, vendor_price, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.OrganizationID, e.Title, e.Date, e.Capacity, e.VendorPrice, e.CreatedAt,
	)

	return wrapDBErr(op, err)
}

// Get retrieves an event by its ID.
//
// Returns:
//   - error: repository.ErrNotFound if the event is not found.
func (r *EventRepo) Get(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	const op = "postgres.EventRepo.Get"

	var e domain.Event
	err := r.pool.QueryRow(ctx,
		`SELECT id, organization_id, title, date, capacity, vendor_price, created_at
		 FROM events WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.OrganizationID, &e.Title, &e.Date, &e.Capacity, &e.VendorPrice, &e.CreatedAt)
	if err != nil {
		return domain.Event{}, wrapDBErr(op, err)
	}

	return e, nil
}
