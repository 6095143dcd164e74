package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/carmeet/internal/clock"
	"github.com/kirinyoku/carmeet/internal/config"
	"github.com/kirinyoku/carmeet/internal/postgres"
	"github.com/kirinyoku/carmeet/internal/redis"
	"github.com/kirinyoku/carmeet/internal/repository"
	"github.com/kirinyoku/carmeet/internal/repository/memory"
	postgresrepo "github.com/kirinyoku/carmeet/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/carmeet/internal/repository/redis"
	"github.com/kirinyoku/carmeet/internal/service"
	"github.com/kirinyoku/carmeet/internal/service/registration"
	"github.com/kirinyoku/carmeet/internal/service/sweeper"
	httpgin "github.com/kirinyoku/carmeet/internal/transport/http/gin"
	"golang.org/x/sync/errgroup"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	services   *service.Services
	cache      *redisrepo.Cache
	pubsub     *redisrepo.EventsPubSub
	httpServer *http.Server
	closers    []func()
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	store, err := a.newStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	rdb, err := redis.New(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	a.closers = append(a.closers, func() { _ = rdb.Close() })

	a.cache = redisrepo.New(rdb)
	a.pubsub = redisrepo.NewEventsPubSub(rdb)
	notifier := redisrepo.NewChangeNotifier(a.cache, a.pubsub, logger)
	occupancy := redisrepo.NewOccupancyCache(a.cache, cfg.Lifecycle.OccupancyTTL)
	limiter := redisrepo.NewSlidingWindowLimiter(rdb, "reserve", cfg.Server.RateLimitPerMinute, time.Minute)
	idempotencyStore := redisrepo.NewIdempotencyStore(rdb, 24*time.Hour)

	a.services = service.NewServices(store, clock.Real(), occupancy, notifier, limiter, logger, service.Config{
		Registration: registration.Config{
			HoldDuration: cfg.Lifecycle.HoldDuration,
		},
		Sweeper: sweeper.Config{
			Interval:  cfg.Lifecycle.SweepInterval,
			BatchSize: cfg.Lifecycle.SweepBatchSize,
		},
	})

	router := httpgin.NewRouter(a.services, idempotencyStore, httpgin.Config{
		WebhookSecret:  cfg.Auth.WebhookSecret,
		StaffJWTSecret: []byte(cfg.Auth.StaffJWTSecret),
	}, logger)

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return a, nil
}

func (a *App) newStore(ctx context.Context) (repository.Store, error) {
	if a.cfg.Store.Driver == config.DriverMemory {
		a.logger.Warn("using in-memory store, data is lost on restart")
		return memory.New(), nil
	}

	pool, err := postgres.New(ctx, postgres.Config{
		DSN:             a.cfg.Postgres.DSN(),
		MaxConns:        int32(a.cfg.Postgres.MaxConns),
		ApplicationName: "carmeet",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}
	a.closers = append(a.closers, pool.Close)

	store := postgresrepo.NewStore(pool)
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return store, nil
}

// Run serves HTTP, sweeps expired holds and listens for registration changes
// until ctx is cancelled or the process receives SIGINT/SIGTERM.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return a.services.Sweeper.Run(gCtx)
	})

	// A second delete after the publish round trip drops values that a
	// loader started before the write may have stored.
	g.Go(func() error {
		err := a.pubsub.Subscribe(gCtx, func(ctx context.Context, eventID uuid.UUID) {
			if err := a.cache.InvalidateEvent(ctx, eventID); err != nil {
				a.logger.Warn("cache invalidation failed", "event_id", eventID, "error", err)
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("registration change subscriber: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	err := g.Wait()
	a.Close()

	return err
}

// SweepOnce runs a single expiration sweep, for cron-style deployments.
func (a *App) SweepOnce(ctx context.Context) (sweeper.Result, error) {
	defer a.Close()
	return a.services.Sweeper.Sweep(ctx)
}

// Close releases connections in reverse order of creation.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
