package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/carmeet/internal/domain"
	"github.com/kirinyoku/carmeet/internal/repository"
)

type VehicleRepo struct {
	pool *pgxpool.Pool
}

func (r *VehicleRepo) Create(ctx context.Context, v domain.Vehicle) error {
	const op = "postgres.VehicleRepo.Create"

	_, err := r.pool.Exec(ctx,
		`INSERT INTO vehicles (id, owner_id, title, sale_status, payment_status)
		 VALUES ($1, $2, $3, $4, $5)`,
		v.ID, v.OwnerID, v.Title, v.SaleStatus, v.PaymentStatus,
	)

	return wrapDBErr(op, err)
}

func (r *VehicleRepo) Get(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	const op = "postgres.VehicleRepo.Get"

	var v domain.Vehicle
	err := r.pool.QueryRow(ctx,
		`SELECT id, owner_id, title, sale_status, payment_status
		 FROM vehicles WHERE id = $1`,
		id,
	).Scan(&v.ID, &v.OwnerID, &v.Title, &v.SaleStatus, &v.PaymentStatus)
	if err != nil {
		return domain.Vehicle{}, wrapDBErr(op, err)
	}

	return v, nil
}

func (r *VehicleRepo) UpdateSaleStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.set(ctx, "postgres.VehicleRepo.UpdateSaleStatus",
		`UPDATE vehicles SET sale_status = $2 WHERE id = $1`, id, status)
}

func (r *VehicleRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.set(ctx, "postgres.VehicleRepo.UpdatePaymentStatus",
		`UPDATE vehicles SET payment_status = $2 WHERE id = $1`, id, status)
}

func (r *VehicleRepo) set(ctx context.Context, op, sql string, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx, sql, id, status)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}
