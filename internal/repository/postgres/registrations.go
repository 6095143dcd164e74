package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/carmeet/internal/domain"
	"github.com/kirinyoku/carmeet/internal/repository"
)

const registrationColumns = `id, event_id, vehicle_id, user_id, payment_status,
	stripe_payment_id, qr_code_data, checked_in, checked_in_at, checked_in_by,
	expires_at, created_at, version`

// activeAt matches registrations that hold a slot at $2.
const activeAt = `(payment_status = 'completed'
	OR (payment_status = 'pending' AND (expires_at IS NULL OR expires_at > $2)))`

type RegistrationRepo struct {
	store *Store
	pool  *pgxpool.Pool
}

// Admit inserts a pending registration if the event admits it.
//
// The event row is locked with SELECT ... FOR UPDATE, so concurrent
// admissions for the same event serialize on it while the occupancy count
// and the insert run. Admissions for different events do not contend.
//
// Returns:
//   - error: repository.ErrNotFound if the event does not exist.
//   - error: domain.ErrEventNotUpcoming, domain.ErrCapacityExceeded or
//     domain.ErrAlreadyRegistered if the admission rule rejects it.
func (r *RegistrationRepo) Admit(
	ctx context.Context,
	reg domain.Registration,
	now time.Time,
) (domain.Registration, error) {
	const op = "postgres.RegistrationRepo.Admit"

	if err := reg.Validate(); err != nil {
		return domain.Registration{}, fmt.Errorf("%s:%w", op, err)
	}

	var out domain.Registration
	err := r.store.RunTx(ctx, &pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	}, func(ctx context.Context, tx DB) error {
		var err error
		out, err = r.admitCore(ctx, tx, reg, now)
		return err
	})
	if err != nil {
		return domain.Registration{}, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (r *RegistrationRepo) admitCore(
	ctx context.Context,
	db DB,
	reg domain.Registration,
	now time.Time,
) (domain.Registration, error) {
	const op = "postgres.RegistrationRepo.admitCore"

	var e domain.Event
	if err := db.QueryRow(ctx,
		`SELECT id, date, capacity
		 FROM events WHERE id = $1
		 FOR UPDATE`,
		reg.EventID,
	).Scan(&e.ID, &e.Date, &e.Capacity); err != nil {
		return domain.Registration{}, wrapDBErr(op, err)
	}

	var occupied int
	if err := db.QueryRow(ctx,
		`SELECT count(*) FROM registrations
		 WHERE event_id = $1 AND `+activeAt,
		reg.EventID, now,
	).Scan(&occupied); err != nil {
		return domain.Registration{}, wrapDBErr(op, err)
	}

	if err := domain.CheckAdmission(e, occupied, now); err != nil {
		return domain.Registration{}, fmt.Errorf("%s:%w", op, err)
	}

	var dup bool
	if err := db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM registrations
			WHERE event_id = $1 AND vehicle_id = $3 AND `+activeAt+`
		 )`,
		reg.EventID, now, reg.VehicleID,
	).Scan(&dup); err != nil {
		return domain.Registration{}, wrapDBErr(op, err)
	}
	if dup {
		return domain.Registration{}, fmt.Errorf("%s:%w", op, domain.ErrAlreadyRegistered)
	}

	if err := db.QueryRow(ctx,
		`INSERT INTO registrations (
			id, event_id, vehicle_id, user_id, payment_status,
			stripe_payment_id, expires_at, created_at, version
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1)
		 RETURNING version`,
		reg.ID, reg.EventID, reg.VehicleID, reg.UserID, string(reg.PaymentStatus),
		reg.StripePaymentID, reg.ExpiresAt, reg.CreatedAt,
	).Scan(&reg.Version); err != nil {
		return domain.Registration{}, wrapDBErr(op, err)
	}

	return reg, nil
}

// Update writes reg conditioned on its version.
//
// Returns:
//   - error: repository.ErrConcurrencyConflict if the row changed since it was read.
//   - error: repository.ErrConflict if the check-in token or payment reference is taken.
//   - error: repository.ErrNotFound if the registration does not exist.
func (r *RegistrationRepo) Update(ctx context.Context, reg domain.Registration) (domain.Registration, error) {
	const op = "postgres.RegistrationRepo.Update"

	if err := reg.Validate(); err != nil {
		return domain.Registration{}, fmt.Errorf("%s:%w", op, err)
	}

	db := r.pool

	var version int64
	err := db.QueryRow(ctx,
		`UPDATE registrations
		 SET payment_status = $2,
		     stripe_payment_id = $3,
		     qr_code_data = $4,
		     checked_in = $5,
		     checked_in_at = $6,
		     checked_in_by = $7,
		     expires_at = $8,
		     version = version + 1
		 WHERE id = $1 AND version = $9
		 RETURNING version`,
		reg.ID, string(reg.PaymentStatus), reg.StripePaymentID, reg.QRCodeData,
		reg.CheckedIn, reg.CheckedInAt, reg.CheckedInBy, reg.ExpiresAt, reg.Version,
	).Scan(&version)
	if err == nil {
		reg.Version = version
		return reg, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Registration{}, wrapDBErr(op, err)
	}

	var exists bool
	if err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM registrations WHERE id = $1)`,
		reg.ID,
	).Scan(&exists); err != nil {
		return domain.Registration{}, wrapDBErr(op, err)
	}
	if !exists {
		return domain.Registration{}, fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return domain.Registration{}, fmt.Errorf("%s:%w", op, repository.ErrConcurrencyConflict)
}

func (r *RegistrationRepo) Get(ctx context.Context, id uuid.UUID) (domain.Registration, error) {
	return r.getOne(ctx, "postgres.RegistrationRepo.Get", `id = $1`, id)
}

func (r *RegistrationRepo) GetByPaymentID(ctx context.Context, paymentID string) (domain.Registration, error) {
	return r.getOne(ctx, "postgres.RegistrationRepo.GetByPaymentID", `stripe_payment_id = $1`, paymentID)
}

func (r *RegistrationRepo) GetByToken(ctx context.Context, token string) (domain.Registration, error) {
	return r.getOne(ctx, "postgres.RegistrationRepo.GetByToken", `qr_code_data = $1`, token)
}

func (r *RegistrationRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Registration, error) {
	return r.list(ctx, "postgres.RegistrationRepo.ListByEvent",
		`WHERE event_id = $1 ORDER BY created_at`, eventID)
}

func (r *RegistrationRepo) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]domain.Registration, error) {
	return r.list(ctx, "postgres.RegistrationRepo.ListByVehicle",
		`WHERE vehicle_id = $1 ORDER BY created_at`, vehicleID)
}

func (r *RegistrationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Registration, error) {
	return r.list(ctx, "postgres.RegistrationRepo.ListByUser",
		`WHERE user_id = $1 ORDER BY created_at`, userID)
}

func (r *RegistrationRepo) ListByStatus(
	ctx context.Context,
	status domain.PaymentStatus,
	limit int,
) ([]domain.Registration, error) {
	return r.list(ctx, "postgres.RegistrationRepo.ListByStatus",
		`WHERE payment_status = $1 ORDER BY created_at LIMIT $2`, string(status), limitOrAll(limit))
}

func (r *RegistrationRepo) ListExpired(
	ctx context.Context,
	now time.Time,
	after *repository.ExpiredCursor,
	limit int,
) ([]domain.Registration, error) {
	const op = "postgres.RegistrationRepo.ListExpired"

	if after == nil {
		return r.list(ctx, op,
			`WHERE payment_status = 'pending' AND expires_at <= $1
			 ORDER BY expires_at, id LIMIT $2`, now, limitOrAll(limit))
	}

	return r.list(ctx, op,
		`WHERE payment_status = 'pending' AND expires_at <= $1
		   AND (expires_at, id) > ($2, $3)
		 ORDER BY expires_at, id LIMIT $4`, now, after.ExpiresAt, after.ID, limitOrAll(limit))
}

func (r *RegistrationRepo) Occupancy(ctx context.Context, eventID uuid.UUID, now time.Time) (int, error) {
	const op = "postgres.RegistrationRepo.Occupancy"

	db := r.pool

	var exists bool
	var occupied int
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM events WHERE id = $1),
		        (SELECT count(*) FROM registrations WHERE event_id = $1 AND `+activeAt+`)`,
		eventID, now,
	).Scan(&exists, &occupied)
	if err != nil {
		return 0, wrapDBErr(op, err)
	}
	if !exists {
		return 0, fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return occupied, nil
}

func (r *RegistrationRepo) getOne(ctx context.Context, op, where string, arg any) (domain.Registration, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE `+where,
		arg,
	)

	reg, err := scanRegistration(row)
	if err != nil {
		return domain.Registration{}, wrapDBErr(op, err)
	}

	return reg, nil
}

func (r *RegistrationRepo) list(ctx context.Context, op, tail string, args ...any) ([]domain.Registration, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+registrationColumns+` FROM registrations `+tail,
		args...,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func scanRegistration(row pgx.Row) (domain.Registration, error) {
	var reg domain.Registration
	var status string

	err := row.Scan(
		&reg.ID,
		&reg.EventID,
		&reg.VehicleID,
		&reg.UserID,
		&status,
		&reg.StripePaymentID,
		&reg.QRCodeData,
		&reg.CheckedIn,
		&reg.CheckedInAt,
		&reg.CheckedInBy,
		&reg.ExpiresAt,
		&reg.CreatedAt,
		&reg.Version,
	)
	if err != nil {
		return domain.Registration{}, err
	}
	reg.PaymentStatus = domain.PaymentStatus(status)

	return reg, nil
}

// limitOrAll turns a non-positive limit into NULL, which Postgres reads as
// LIMIT ALL.
func limitOrAll(limit int) *int {
	if limit <= 0 {
		return nil
	}
	return &limit
}
