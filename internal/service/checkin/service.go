package checkin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/kirinyoku/carmeet/internal/clock"
	"github.com/kirinyoku/carmeet/internal/domain"
	"github.com/kirinyoku/carmeet/internal/metrics"
	"github.com/kirinyoku/carmeet/internal/repository"
	"github.com/kirinyoku/carmeet/internal/uow"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Service struct {
	store  repository.Store
	clock  clock.Clock
	uow    *uow.UoW
	logger *slog.Logger
	scans  metric.Int64Counter
}

func New(store repository.Store, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		clock:  clk,
		uow:    uow.New(3),
		logger: logger,
		scans: metrics.Counter(
			"carmeet.checkin.scans",
			"Check-in token scans",
			"{scan}",
		),
	}
}

// CheckIn redeems the registration holding token on behalf of staff member
// by. Of two concurrent scans of one token exactly one succeeds; the other
// re-reads the registration and gets domain.ErrAlreadyCheckedIn.
//
// Returns:
//   - error: checkin.ErrTokenNotFound, domain.ErrNotEligible when the
//     payment is not completed, domain.ErrAlreadyCheckedIn.
func (s *Service) CheckIn(ctx context.Context, token string, by uuid.UUID) (domain.Registration, error) {
	const op = "service.checkin.CheckIn"

	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Registration{}, fmt.Errorf("%s:%w", op, ErrEmptyToken)
	}

	var result domain.Registration

	err := s.uow.Do(ctx, func(ctx context.Context, after func(uow.AfterCommit)) error {
		reg, err := s.store.Registrations().GetByToken(ctx, token)
		if err != nil {
			return err
		}

		next, err := reg.CheckIn(by, s.clock.Now())
		if err != nil {
			return err
		}

		result, err = s.store.Registrations().Update(ctx, next)
		return err
	})
	if err != nil {
		s.record(ctx, err)

		switch {
		case errors.Is(err, repository.ErrNotFound):
			return domain.Registration{}, fmt.Errorf("%s:%w", op, ErrTokenNotFound)
		case errors.Is(err, repository.ErrConcurrencyConflict):
			return domain.Registration{}, fmt.Errorf("%s:%w", op, ErrConcurrencyConflict)
		}
		return domain.Registration{}, fmt.Errorf("%s:%w", op, err)
	}

	s.record(ctx, nil)
	s.logger.Info("checked in",
		"registration_id", result.ID,
		"event_id", result.EventID,
		"checked_in_by", by,
	)

	return result, nil
}

func (s *Service) record(ctx context.Context, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrAlreadyCheckedIn):
		result = "already_checked_in"
	case errors.Is(err, domain.ErrNotEligible):
		result = "not_eligible"
	case errors.Is(err, repository.ErrNotFound):
		result = "not_found"
	default:
		result = "error"
	}
	s.scans.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
