package service

import (
	"log/slog"

	"github.com/kirinyoku/carmeet/internal/clock"
	"github.com/kirinyoku/carmeet/internal/repository"
	"github.com/kirinyoku/carmeet/internal/service/admin"
	"github.com/kirinyoku/carmeet/internal/service/analytics"
	"github.com/kirinyoku/carmeet/internal/service/checkin"
	"github.com/kirinyoku/carmeet/internal/service/payment"
	"github.com/kirinyoku/carmeet/internal/service/registration"
	"github.com/kirinyoku/carmeet/internal/service/sweeper"
)

type Services struct {
	Registration *registration.Service
	Payment      *payment.Service
	Sweeper      *sweeper.Service
	CheckIn      *checkin.Service
	Analytics    *analytics.Service
	Admin        *admin.Service
}

type Config struct {
	Registration registration.Config
	Sweeper      sweeper.Config
}

// Notifier is told about every registration write so cached occupancy can
// be dropped.
type Notifier interface {
	registration.Notifier
}

func NewServices(
	store repository.Store,
	clk clock.Clock,
	cache registration.Cache,
	notifier Notifier,
	limiter registration.Limiter,
	logger *slog.Logger,
	cfg Config,
) *Services {
	return &Services{
		Registration: registration.New(store, clk, cache, notifier, limiter, logger, cfg.Registration),
		Payment:      payment.New(store, notifier, logger),
		Sweeper:      sweeper.New(store, clk, notifier, logger, cfg.Sweeper),
		CheckIn:      checkin.New(store, clk, logger),
		Analytics:    analytics.New(store),
		Admin:        admin.New(store, clk),
	}
}
