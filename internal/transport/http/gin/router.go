package httpgin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kirinyoku/carmeet/internal/domain"
	redisrepo "github.com/kirinyoku/carmeet/internal/repository/redis"
	"github.com/kirinyoku/carmeet/internal/service"
	"github.com/kirinyoku/carmeet/internal/service/admin"
	"github.com/kirinyoku/carmeet/internal/service/analytics"
	"github.com/kirinyoku/carmeet/internal/service/checkin"
	"github.com/kirinyoku/carmeet/internal/service/payment"
	"github.com/kirinyoku/carmeet/internal/service/registration"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Idempotency remembers responses of keyed requests.
type Idempotency interface {
	Begin(ctx context.Context, key string, lockTTL time.Duration) (result string, done, claimed bool, err error)
	Complete(ctx context.Context, key string, payload string) error
	Release(ctx context.Context, key string) error
}

type Config struct {
	WebhookSecret  string
	StaffJWTSecret []byte
	// Now is used for webhook timestamp checks; time.Now when nil.
	Now func() time.Time
}

type handler struct {
	svcs   *service.Services
	idem   Idempotency
	cfg    Config
	logger *slog.Logger
}

func NewRouter(
	svcs *service.Services,
	idem Idempotency,
	cfg Config,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	h := &handler{svcs: svcs, idem: idem, cfg: cfg, logger: logger}

	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/events/:id", h.getEvent)
	r.GET("/events/:id/occupancy", h.getOccupancy)
	r.GET("/events/:id/registrations", h.listEventRegistrations)
	r.POST("/events/:id/registrations", h.reserve)

	backend := StaffAuth(cfg.StaffJWTSecret, RoleService, RoleAdmin)

	r.GET("/registrations/:id", h.getRegistration)
	r.GET("/registrations/:id/ticket", backend, h.getTicket)
	r.POST("/registrations/:id/payment", backend, h.attachPayment)

	r.GET("/vehicles/:id/registrations", h.listVehicleRegistrations)
	r.GET("/users/:id/registrations", h.listUserRegistrations)

	r.POST("/vehicles/:id/views", h.increment(domain.CounterViews))
	r.POST("/vehicles/:id/shares", h.increment(domain.CounterShares))
	r.GET("/vehicles/:id/analytics", h.getAnalytics)

	r.POST("/webhooks/payments", h.paymentWebhook)

	r.POST("/checkins", StaffAuth(cfg.StaffJWTSecret, RoleStaff, RoleAdmin), h.checkIn)

	adm := r.Group("/admin", StaffAuth(cfg.StaffJWTSecret, RoleAdmin))
	{
		adm.POST("/events", h.createEvent)
		adm.POST("/vehicles", h.createVehicle)
		adm.POST("/sweep", h.sweep)
		adm.GET("/registrations", h.listByStatus)
	}

	return r
}

// --- Helpers ---

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// errMapping turns a service error into a response. An empty msg sends the
// sentinel's text plus any detail wrapped after it, never the op chain.
type errMapping struct {
	target error
	status int
	code   string
	msg    string
	retry  bool
}

var errMappings = []errMapping{
	{target: registration.ErrEventNotFound, status: http.StatusNotFound, code: "not_found"},
	{target: registration.ErrVehicleNotFound, status: http.StatusNotFound, code: "not_found"},
	{target: analytics.ErrVehicleNotFound, status: http.StatusNotFound, code: "not_found"},
	{target: registration.ErrRegistrationNotFound, status: http.StatusNotFound, code: "not_found"},
	{target: payment.ErrRegistrationNotFound, status: http.StatusNotFound, code: "not_found"},
	{target: checkin.ErrTokenNotFound, status: http.StatusNotFound, code: "not_found"},

	{target: domain.ErrCapacityExceeded, status: http.StatusConflict, code: "capacity_exceeded"},
	{target: domain.ErrAlreadyRegistered, status: http.StatusConflict, code: "already_registered"},
	{target: domain.ErrAlreadyResolved, status: http.StatusConflict, code: "already_resolved"},
	{target: domain.ErrAlreadyCheckedIn, status: http.StatusConflict, code: "already_checked_in"},
	{target: domain.ErrPaymentAttached, status: http.StatusConflict, code: "payment_conflict"},
	{target: payment.ErrPaymentIDTaken, status: http.StatusConflict, code: "payment_conflict"},
	{target: domain.ErrNotPending, status: http.StatusConflict, code: "not_pending"},
	{target: payment.ErrConcurrencyConflict, status: http.StatusConflict, code: "concurrency_conflict",
		msg: "concurrent modification, retry", retry: true},
	{target: checkin.ErrConcurrencyConflict, status: http.StatusConflict, code: "concurrency_conflict",
		msg: "concurrent modification, retry", retry: true},
	{target: admin.ErrEventConflict, status: http.StatusConflict, code: "conflict"},
	{target: admin.ErrVehicleConflict, status: http.StatusConflict, code: "conflict"},

	{target: domain.ErrEventNotUpcoming, status: http.StatusUnprocessableEntity, code: "event_not_upcoming"},
	{target: domain.ErrNotEligible, status: http.StatusUnprocessableEntity, code: "not_eligible"},
	{target: admin.ErrInvalidEvent, status: http.StatusUnprocessableEntity, code: "invalid"},
	{target: admin.ErrInvalidVehicle, status: http.StatusUnprocessableEntity, code: "invalid"},
	{target: registration.ErrInvalidStatus, status: http.StatusUnprocessableEntity, code: "invalid"},
	{target: payment.ErrInvalidOutcome, status: http.StatusUnprocessableEntity, code: "invalid"},
	{target: payment.ErrEmptyReference, status: http.StatusUnprocessableEntity, code: "invalid"},
	{target: checkin.ErrEmptyToken, status: http.StatusUnprocessableEntity, code: "invalid"},
	{target: analytics.ErrUnknownCounter, status: http.StatusUnprocessableEntity, code: "invalid"},

	// the registration is resolved, the vehicle update is retried on redelivery
	{target: payment.ErrVehicleSync, status: http.StatusServiceUnavailable, code: "vehicle_sync",
		msg: "vehicle update failed"},
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	_ = c.Error(err)

	var rl *redisrepo.RateLimitedError
	if errors.As(err, &rl) {
		secs := int(rl.RetryAfter.Round(time.Second) / time.Second)
		if secs < 1 {
			secs = 1
		}
		c.Header("Retry-After", strconv.Itoa(secs))
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limited", Code: "rate_limited"})
		return
	}

	for _, m := range errMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		msg := m.msg
		if msg == "" {
			msg = clientMessage(err, m.target)
		}
		if m.retry {
			c.Header("Retry-After", "1")
		}
		c.JSON(m.status, ErrorResponse{Error: msg, Code: m.code})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// clientMessage cuts the "pkg.Op:" prefixes in front of target's text.
func clientMessage(err, target error) string {
	full, text := err.Error(), target.Error()
	if i := strings.Index(full, text); i >= 0 {
		return full[i:]
	}
	return text
}
