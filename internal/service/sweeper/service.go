package sweeper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/carmeet/internal/clock"
	"github.com/kirinyoku/carmeet/internal/domain"
	"github.com/kirinyoku/carmeet/internal/metrics"
	"github.com/kirinyoku/carmeet/internal/repository"
	"github.com/kirinyoku/carmeet/internal/uow"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Config struct {
	Interval  time.Duration
	BatchSize int
}

type Notifier interface {
	RegistrationChanged(ctx context.Context, eventID, registrationID uuid.UUID)
}

// Result summarises one sweep. Failed rows stay pending and are picked up
// again by the next sweep.
type Result struct {
	Reclaimed int `json:"reclaimed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// Service reclaims pending registrations whose hold lapsed.
type Service struct {
	store    repository.Store
	clock    clock.Clock
	notifier Notifier
	uow      *uow.UoW
	logger   *slog.Logger
	cfg      Config

	rows     metric.Int64Counter
	duration metric.Float64Histogram
}

func New(store repository.Store, clk clock.Clock, notifier Notifier, logger *slog.Logger, cfg Config) *Service {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}

	return &Service{
		store:    store,
		clock:    clk,
		notifier: notifier,
		uow:      uow.New(2),
		logger:   logger,
		cfg:      cfg,
		rows: metrics.Counter(
			"carmeet.sweeper.rows",
			"Expired registrations visited by the sweeper",
			"{registration}",
		),
		duration: metrics.Histogram(
			"carmeet.sweeper.duration",
			"Duration of one sweep",
			"s",
		),
	}
}

// Sweep fails every pending registration whose hold lapsed at the current
// time. A row that was resolved in the meantime is skipped; a row that
// cannot be written is logged and counted without stopping the sweep.
// The returned error is only set when expired rows could not be listed.
func (s *Service) Sweep(ctx context.Context) (Result, error) {
	const op = "service.sweeper.Sweep"

	started := time.Now()
	now := s.clock.Now()

	var res Result
	var after *repository.ExpiredCursor

	// Pages move forward by (expiresAt, id), so rows that keep failing are
	// retried on the next sweep without hiding the rows behind them.
	for {
		batch, err := s.store.Registrations().ListExpired(ctx, now, after, s.cfg.BatchSize)
		if err != nil {
			s.finish(ctx, res, started)
			return res, fmt.Errorf("%s:%w", op, err)
		}

		for _, reg := range batch {
			switch err := s.reclaim(ctx, reg, now); {
			case err == nil:
				res.Reclaimed++
			case errors.Is(err, domain.ErrNotPending), errors.Is(err, domain.ErrNotExpired):
				res.Skipped++
				s.logger.Debug("registration resolved before reclaim", "registration_id", reg.ID)
			default:
				res.Failed++
				s.logger.Error("reclaim failed",
					"registration_id", reg.ID,
					"event_id", reg.EventID,
					"error", err,
				)
			}
		}

		if len(batch) < s.cfg.BatchSize || ctx.Err() != nil {
			break
		}
		after = repository.CursorOf(batch[len(batch)-1])
	}

	s.finish(ctx, res, started)

	return res, nil
}

// reclaim writes the failed state conditioned on the version listed. When
// that version moved, the row is read again and re-evaluated once.
func (s *Service) reclaim(ctx context.Context, reg domain.Registration, now time.Time) error {
	first := true

	return s.uow.Do(ctx, func(ctx context.Context, after func(uow.AfterCommit)) error {
		if !first {
			cur, err := s.store.Registrations().Get(ctx, reg.ID)
			if err != nil {
				return err
			}
			reg = cur
		}
		first = false

		next, err := reg.Reclaim(now)
		if err != nil {
			return err
		}

		updated, err := s.store.Registrations().Update(ctx, next)
		if err != nil {
			return err
		}

		after(func(ctx context.Context) {
			if s.notifier != nil {
				s.notifier.RegistrationChanged(ctx, updated.EventID, updated.ID)
			}
		})

		return nil
	})
}

func (s *Service) finish(ctx context.Context, res Result, started time.Time) {
	s.rows.Add(ctx, int64(res.Reclaimed), metric.WithAttributes(attribute.String("result", "reclaimed")))
	s.rows.Add(ctx, int64(res.Skipped), metric.WithAttributes(attribute.String("result", "skipped")))
	s.rows.Add(ctx, int64(res.Failed), metric.WithAttributes(attribute.String("result", "failed")))
	s.duration.Record(ctx, time.Since(started).Seconds())

	if res != (Result{}) {
		s.logger.Info("sweep finished",
			"reclaimed", res.Reclaimed,
			"skipped", res.Skipped,
			"failed", res.Failed,
		)
	}
}

// Run sweeps once immediately and then every Interval until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.logger.Info("sweeper started", "interval", s.cfg.Interval, "batch_size", s.cfg.BatchSize)

	for {
		if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("sweep failed", "error", err)
		}

		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopping", "reason", ctx.Err())
			return nil
		case <-ticker.C:
		}
	}
}
