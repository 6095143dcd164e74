package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/kirinyoku/carmeet/internal/domain"
	"github.com/kirinyoku/carmeet/internal/metrics"
	"github.com/kirinyoku/carmeet/internal/repository"
	"github.com/kirinyoku/carmeet/internal/uow"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Notifier interface {
	RegistrationChanged(ctx context.Context, eventID, registrationID uuid.UUID)
}

// Service is the bridge between payment processor notifications and
// registration state.
type Service struct {
	store    repository.Store
	notifier Notifier
	uow      *uow.UoW
	logger   *slog.Logger
	newToken func() string
	outcomes metric.Int64Counter
}

func New(store repository.Store, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		uow:      uow.New(3),
		logger:   logger,
		newToken: uuid.NewString,
		outcomes: metrics.Counter(
			"carmeet.payment.outcomes",
			"Payment outcomes received from the processor",
			"{outcome}",
		),
	}
}

// ApplyOutcome resolves the registration identified by ref with the
// processor's outcome. ref is the stored payment reference or the
// registration id.
//
// The first terminal transition wins: repeating the outcome already applied
// is a no-op success, a different outcome returns domain.ErrAlreadyResolved
// together with the registration as stored.
// On success the vehicle is marked paid and registered; repeated success
// notifications repeat that update.
func (s *Service) ApplyOutcome(
	ctx context.Context,
	ref string,
	outcome domain.PaymentOutcome,
) (domain.Registration, error) {
	const op = "service.payment.ApplyOutcome"

	if !outcome.Valid() {
		return domain.Registration{}, fmt.Errorf("%s:%w: %q", op, ErrInvalidOutcome, outcome)
	}

	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Registration{}, fmt.Errorf("%s:%w", op, ErrEmptyReference)
	}

	var (
		result  domain.Registration
		applied bool
	)

	err := s.uow.Do(ctx, func(ctx context.Context, after func(uow.AfterCommit)) error {
		reg, err := s.lookup(ctx, ref)
		if err != nil {
			return err
		}

		next, changed, err := reg.ApplyOutcome(outcome, s.newToken())
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyResolved) {
				result = reg
			}
			return err
		}

		if !changed {
			result, applied = reg, false
			return nil
		}

		updated, err := s.store.Registrations().Update(ctx, next)
		if err != nil {
			if errors.Is(err, repository.ErrConflict) {
				// check-in token collision; retry with a fresh one
				return fmt.Errorf("%w: %v", repository.ErrConcurrencyConflict, err)
			}
			return err
		}

		result, applied = updated, true

		after(func(ctx context.Context) {
			if s.notifier != nil {
				s.notifier.RegistrationChanged(ctx, updated.EventID, updated.ID)
			}
		})

		return nil
	})
	if err != nil {
		s.record(ctx, outcome, "rejected")

		switch {
		case errors.Is(err, domain.ErrAlreadyResolved):
			s.logger.Warn("conflicting payment outcome ignored",
				"ref", ref,
				"outcome", outcome,
				"payment_status", result.PaymentStatus,
			)
			return result, fmt.Errorf("%s:%w", op, err)
		case errors.Is(err, repository.ErrConcurrencyConflict):
			return domain.Registration{}, fmt.Errorf("%s:%w", op, ErrConcurrencyConflict)
		}

		return domain.Registration{}, fmt.Errorf("%s:%w", op, err)
	}

	if applied {
		s.record(ctx, outcome, "applied")
		s.logger.Info("payment outcome applied",
			"registration_id", result.ID,
			"event_id", result.EventID,
			"payment_status", result.PaymentStatus,
		)
	} else {
		s.record(ctx, outcome, "duplicate")
	}

	if result.PaymentStatus == domain.PaymentCompleted {
		if err := s.syncVehicle(ctx, result.VehicleID); err != nil {
			s.logger.Error("vehicle status update failed",
				"registration_id", result.ID,
				"vehicle_id", result.VehicleID,
				"error", err,
			)
			return result, fmt.Errorf("%s:%w: %v", op, ErrVehicleSync, err)
		}
	}

	return result, nil
}

// AttachPayment records the processor's payment reference on a pending
// registration. Attaching the same reference again is a no-op.
func (s *Service) AttachPayment(ctx context.Context, id uuid.UUID, paymentID string) (domain.Registration, error) {
	const op = "service.payment.AttachPayment"

	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return domain.Registration{}, fmt.Errorf("%s:%w", op, ErrEmptyReference)
	}

	var result domain.Registration

	err := s.uow.Do(ctx, func(ctx context.Context, after func(uow.AfterCommit)) error {
		reg, err := s.store.Registrations().Get(ctx, id)
		if err != nil {
			return err
		}

		next, changed, err := reg.AttachPayment(paymentID)
		if err != nil {
			return err
		}
		if !changed {
			result = reg
			return nil
		}

		result, err = s.store.Registrations().Update(ctx, next)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return domain.Registration{}, fmt.Errorf("%s:%w", op, ErrRegistrationNotFound)
		case errors.Is(err, repository.ErrConflict):
			return domain.Registration{}, fmt.Errorf("%s:%w", op, ErrPaymentIDTaken)
		case errors.Is(err, repository.ErrConcurrencyConflict):
			return domain.Registration{}, fmt.Errorf("%s:%w", op, ErrConcurrencyConflict)
		}
		return domain.Registration{}, fmt.Errorf("%s:%w", op, err)
	}

	return result, nil
}

func (s *Service) lookup(ctx context.Context, ref string) (domain.Registration, error) {
	reg, err := s.store.Registrations().GetByPaymentID(ctx, ref)
	if err == nil || !errors.Is(err, repository.ErrNotFound) {
		return reg, err
	}

	id, parseErr := uuid.Parse(ref)
	if parseErr != nil {
		return domain.Registration{}, ErrRegistrationNotFound
	}

	reg, err = s.store.Registrations().Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Registration{}, ErrRegistrationNotFound
	}

	return reg, err
}

func (s *Service) syncVehicle(ctx context.Context, vehicleID uuid.UUID) error {
	vehicles := s.store.Vehicles()

	if err := vehicles.UpdatePaymentStatus(ctx, vehicleID, domain.VehiclePaymentPaid); err != nil {
		return err
	}

	return vehicles.UpdateSaleStatus(ctx, vehicleID, domain.VehicleSaleRegistered)
}

func (s *Service) record(ctx context.Context, outcome domain.PaymentOutcome, result string) {
	s.outcomes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", string(outcome)),
		attribute.String("result", result),
	))
}
