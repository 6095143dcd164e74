package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/carmeet/internal/domain"
)

type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// Increment upserts the counter row in one statement, so concurrent
// increments for the same vehicle cannot lose updates.
func (r *AnalyticsRepo) Increment(
	ctx context.Context,
	vehicleID uuid.UUID,
	counter domain.Counter,
) (domain.VehicleAnalytics, error) {
	const op = "postgres.AnalyticsRepo.Increment"

	var views, shares int64
	switch counter {
	case domain.CounterViews:
		views = 1
	case domain.CounterShares:
		shares = 1
	default:
		return domain.VehicleAnalytics{}, fmt.Errorf("%s: unknown counter %q", op, counter)
	}

	var out domain.VehicleAnalytics
	err := r.pool.QueryRow(ctx,
		`INSERT INTO vehicle_analytics (vehicle_id, views, shares)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (vehicle_id) DO UPDATE
		 SET views = vehicle_analytics.views + EXCLUDED.views,
		     shares = vehicle_analytics.shares + EXCLUDED.shares
		 RETURNING vehicle_id, views, shares`,
		vehicleID, views, shares,
	).Scan(&out.VehicleID, &out.Views, &out.Shares)
	if err != nil {
		return domain.VehicleAnalytics{}, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *AnalyticsRepo) Get(ctx context.Context, vehicleID uuid.UUID) (domain.VehicleAnalytics, error) {
	const op = "postgres.AnalyticsRepo.Get"

	out := domain.VehicleAnalytics{VehicleID: vehicleID}
	err := r.pool.QueryRow(ctx,
		`SELECT views, shares FROM vehicle_analytics WHERE vehicle_id = $1`,
		vehicleID,
	).Scan(&out.Views, &out.Shares)
	if errors.Is(err, pgx.ErrNoRows) {
		return out, nil
	}
	if err != nil {
		return domain.VehicleAnalytics{}, wrapDBErr(op, err)
	}

	return out, nil
}
