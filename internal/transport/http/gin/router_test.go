package httpgin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kirinyoku/carmeet/internal/clock"
	"github.com/kirinyoku/carmeet/internal/domain"
	"github.com/kirinyoku/carmeet/internal/repository/memory"
	redisrepo "github.com/kirinyoku/carmeet/internal/repository/redis"
	"github.com/kirinyoku/carmeet/internal/service"
	"github.com/kirinyoku/carmeet/internal/service/admin"
	"github.com/kirinyoku/carmeet/internal/service/payment"
	"github.com/kirinyoku/carmeet/internal/service/registration"
	"github.com/kirinyoku/carmeet/internal/service/sweeper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

const webhookSecret = "whsec_test"

var jwtSecret = []byte("staff-secret")

type memIdem struct {
	mu   sync.Mutex
	vals map[string]string
}

func (m *memIdem) Begin(_ context.Context, key string, _ time.Duration) (string, bool, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.vals[key]; ok {
		if v == "LOCK" {
			return "", false, false, nil
		}
		return v, true, false, nil
	}
	m.vals[key] = "LOCK"
	return "", false, true, nil
}

func (m *memIdem) Complete(_ context.Context, key, payload string) error {
	m.mu.Lock()
	m.vals[key] = payload
	m.mu.Unlock()
	return nil
}

func (m *memIdem) Release(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.vals, key)
	m.mu.Unlock()
	return nil
}

type env struct {
	t      *testing.T
	router *gin.Engine
	store  *memory.Store
	clk    *clock.FakeClock
	idem   *memIdem
	admin   string
	staff   string
	backend string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.New()
	clk := clock.Fake(t0)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svcs := service.NewServices(store, clk, nil, nil, nil, logger, service.Config{
		Registration: registration.Config{HoldDuration: 5 * time.Minute},
		Sweeper:      sweeper.Config{BatchSize: 10},
	})
	idem := &memIdem{vals: map[string]string{}}

	adminTok, err := SignStaffToken(jwtSecret, uuid.New(), RoleAdmin, time.Hour)
	require.NoError(t, err)
	staffTok, err := SignStaffToken(jwtSecret, uuid.New(), RoleStaff, time.Hour)
	require.NoError(t, err)
	backendTok, err := SignStaffToken(jwtSecret, uuid.New(), RoleService, time.Hour)
	require.NoError(t, err)

	r := NewRouter(svcs, idem, Config{
		WebhookSecret:  webhookSecret,
		StaffJWTSecret: jwtSecret,
		Now:            clk.Now,
	}, logger)

	return &env{
		t:       t,
		router:  r,
		store:   store,
		clk:     clk,
		idem:    idem,
		admin:   adminTok,
		staff:   staffTok,
		backend: backendTok,
	}
}

func (e *env) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	e.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(e.t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func bearer(tok string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + tok}
}

func (e *env) webhook(body any, deliveryID string) *httptest.ResponseRecorder {
	e.t.Helper()
	b, err := json.Marshal(body)
	require.NoError(e.t, err)
	ts := strconv.FormatInt(e.clk.Now().Unix(), 10)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderWebhookTimestamp, ts)
	req.Header.Set(HeaderWebhookSignature, SignWebhook(webhookSecret, ts, b))
	if deliveryID != "" {
		req.Header.Set(HeaderWebhookID, deliveryID)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (e *env) createEvent(capacity int) domain.Event {
	e.t.Helper()
	w := e.do(http.MethodPost, "/admin/events", CreateEventRequest{
		Title:    "Cars & Coffee",
		Date:     t0.Add(7 * 24 * time.Hour),
		Capacity: capacity,
	}, bearer(e.admin))
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[domain.Event](e.t, w)
}

func (e *env) createVehicle() domain.Vehicle {
	e.t.Helper()
	w := e.do(http.MethodPost, "/admin/vehicles", CreateVehicleRequest{
		OwnerID: uuid.NewString(),
		Title:   "Datsun 240Z",
	}, bearer(e.admin))
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[domain.Vehicle](e.t, w)
}

func (e *env) reserve(eventID uuid.UUID, v domain.Vehicle, headers map[string]string) *httptest.ResponseRecorder {
	return e.do(http.MethodPost, "/events/"+eventID.String()+"/registrations", ReserveRequest{
		VehicleID: v.ID.String(),
		UserID:    v.OwnerID.String(),
	}, headers)
}

func TestHealthz(t *testing.T) {
	e := newEnv(t)
	w := e.do(http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestLifecycle_ReservePayCheckIn(t *testing.T) {
	e := newEnv(t)
	ev := e.createEvent(2)
	v := e.createVehicle()

	w := e.reserve(ev.ID, v, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reg := decode[domain.Registration](t, w)
	assert.Equal(t, domain.PaymentPending, reg.PaymentStatus)
	require.NotNil(t, reg.ExpiresAt)

	w = e.do(http.MethodGet, "/events/"+ev.ID.String()+"/occupancy", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[domain.Occupancy](t, w).Occupied)

	w = e.do(http.MethodPost, "/registrations/"+reg.ID.String()+"/payment",
		AttachPaymentRequest{StripePaymentID: "pi_42"}, bearer(e.backend))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.webhook(PaymentWebhookRequest{Reference: "pi_42", Outcome: "succeeded"}, "evt_1")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, domain.PaymentCompleted, decode[PaymentWebhookResponse](t, w).PaymentStatus)

	w = e.do(http.MethodGet, "/registrations/"+reg.ID.String()+"/ticket", nil, bearer(e.backend))
	require.Equal(t, http.StatusOK, w.Code)
	paid := decode[domain.Registration](t, w)
	require.NotNil(t, paid.QRCodeData)
	assert.Nil(t, paid.ExpiresAt)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	w = e.do(http.MethodPost, "/checkins", CheckInRequest{Token: *paid.QRCodeData}, bearer(e.staff))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, decode[domain.Registration](t, w).CheckedIn)

	w = e.do(http.MethodPost, "/checkins", CheckInRequest{Token: *paid.QRCodeData}, bearer(e.staff))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "already_checked_in", decode[ErrorResponse](t, w).Code)

	// event listing never leaks the token
	w = e.do(http.MethodGet, "/events/"+ev.ID.String()+"/registrations", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed := decode[[]domain.Registration](t, w)
	require.Len(t, listed, 1)
	assert.Nil(t, listed[0].QRCodeData)

	w = e.do(http.MethodGet, "/vehicles/"+v.ID.String()+"/registrations", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Registration](t, w), 1)
}

func TestPublicReadsHideCheckInToken(t *testing.T) {
	e := newEnv(t)
	ev := e.createEvent(2)
	v := e.createVehicle()

	w := e.reserve(ev.ID, v, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	reg := decode[domain.Registration](t, w)

	w = e.webhook(PaymentWebhookRequest{Reference: reg.ID.String(), Outcome: "succeeded"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored, err := e.store.Registrations().Get(context.Background(), reg.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.QRCodeData)

	for _, path := range []string{
		"/events/" + ev.ID.String() + "/registrations",
		"/vehicles/" + v.ID.String() + "/registrations",
		"/users/" + v.OwnerID.String() + "/registrations",
	} {
		w = e.do(http.MethodGet, path, nil, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		listed := decode[[]domain.Registration](t, w)
		require.Len(t, listed, 1, path)
		assert.Nil(t, listed[0].QRCodeData, path)
		assert.Nil(t, listed[0].StripePaymentID, path)
		assert.NotContains(t, w.Body.String(), *stored.QRCodeData, path)
	}

	w = e.do(http.MethodGet, "/registrations/"+reg.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[domain.Registration](t, w).QRCodeData)
	assert.Equal(t, domain.PaymentCompleted, decode[domain.Registration](t, w).PaymentStatus)

	// only the backend and admins get the token
	ticket := "/registrations/" + reg.ID.String() + "/ticket"
	w = e.do(http.MethodGet, ticket, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = e.do(http.MethodGet, ticket, nil, bearer(e.staff))
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = e.do(http.MethodGet, ticket, nil, bearer(e.admin))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, stored.QRCodeData, decode[domain.Registration](t, w).QRCodeData)
}

func TestAttachPayment_RequiresBackend(t *testing.T) {
	e := newEnv(t)
	ev := e.createEvent(2)

	w := e.reserve(ev.ID, e.createVehicle(), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	reg := decode[domain.Registration](t, w)
	path := "/registrations/" + reg.ID.String() + "/payment"

	w = e.do(http.MethodPost, path, AttachPaymentRequest{StripePaymentID: "pi_attacker"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = e.do(http.MethodPost, path, AttachPaymentRequest{StripePaymentID: "pi_attacker"}, bearer(e.staff))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(http.MethodPost, path, AttachPaymentRequest{StripePaymentID: "pi_real"}, bearer(e.backend))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.webhook(PaymentWebhookRequest{Reference: "pi_real", Outcome: "succeeded"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, domain.PaymentCompleted, decode[PaymentWebhookResponse](t, w).PaymentStatus)

	// a different reference afterwards is a conflict without internal detail
	w = e.do(http.MethodPost, path, AttachPaymentRequest{StripePaymentID: "pi_other"}, bearer(e.backend))
	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decode[ErrorResponse](t, w)
	assert.NotContains(t, resp.Error, "service.")
}

func TestReserve_ErrorMapping(t *testing.T) {
	e := newEnv(t)
	ev := e.createEvent(1)

	w := e.reserve(ev.ID, e.createVehicle(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.reserve(ev.ID, e.createVehicle(), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, ErrorResponse{Error: domain.ErrCapacityExceeded.Error(), Code: "capacity_exceeded"},
		decode[ErrorResponse](t, w))

	w = e.reserve(uuid.New(), e.createVehicle(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(http.MethodPost, "/events/not-a-uuid/registrations", ReserveRequest{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	later := e.createEvent(3)
	v := e.createVehicle()
	e.clk.Set(later.Date)
	w = e.reserve(later.ID, v, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "event_not_upcoming", decode[ErrorResponse](t, w).Code)
}

func TestReserve_IdempotencyKeyReplays(t *testing.T) {
	e := newEnv(t)
	ev := e.createEvent(5)
	v := e.createVehicle()
	hdr := map[string]string{"Idempotency-Key": "k-1"}

	first := e.reserve(ev.ID, v, hdr)
	require.Equal(t, http.StatusCreated, first.Code)

	second := e.reserve(ev.ID, v, hdr)
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "k-1", second.Header().Get("Idempotency-Key"))

	// a failed request releases its key
	full := e.createEvent(1)
	_ = e.reserve(full.ID, e.createVehicle(), nil)
	key := map[string]string{"Idempotency-Key": "k-2"}
	w := e.reserve(full.ID, e.createVehicle(), key)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NotContains(t, e.idem.vals, redisrepo.KeyIdemReservation(full.ID, "k-2"))
}

func TestWebhook_Auth(t *testing.T) {
	e := newEnv(t)

	body := []byte(`{"reference":"pi_1","outcome":"succeeded"}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", bytes.NewReader(body))
	req.Header.Set(HeaderWebhookTimestamp, strconv.FormatInt(t0.Unix(), 10))
	req.Header.Set(HeaderWebhookSignature, SignWebhook("wrong", strconv.FormatInt(t0.Unix(), 10), body))
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.webhook(map[string]string{"reference": "pi_1", "outcome": "refunded"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.webhook(PaymentWebhookRequest{Reference: "pi_missing", Outcome: "failed"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWebhook_ConflictingOutcomeAndRedelivery(t *testing.T) {
	e := newEnv(t)
	ev := e.createEvent(2)

	w := e.reserve(ev.ID, e.createVehicle(), nil)
	reg := decode[domain.Registration](t, w)

	w = e.webhook(PaymentWebhookRequest{Reference: reg.ID.String(), Outcome: "failed"}, "evt_a")
	require.Equal(t, http.StatusOK, w.Code)
	first := w.Body.String()

	w = e.webhook(PaymentWebhookRequest{Reference: reg.ID.String(), Outcome: "failed"}, "evt_a")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, first, w.Body.String())

	// the late conflicting outcome is acknowledged, not bounced back
	w = e.webhook(PaymentWebhookRequest{Reference: reg.ID.String(), Outcome: "succeeded"}, "evt_b")
	require.Equal(t, http.StatusOK, w.Code)
	ack := decode[PaymentWebhookResponse](t, w)
	assert.Equal(t, "already_resolved", ack.Result)
	assert.Equal(t, domain.PaymentFailed, ack.PaymentStatus)
	assert.Equal(t, reg.ID.String(), ack.RegistrationID)

	// and remembered under its delivery id
	stored, done, _, err := e.idem.Begin(context.Background(), redisrepo.KeyWebhookDelivery("evt_b"), time.Minute)
	require.NoError(t, err)
	assert.True(t, done)
	assert.JSONEq(t, w.Body.String(), stored)

	w = e.webhook(PaymentWebhookRequest{Reference: reg.ID.String(), Outcome: "succeeded"}, "evt_b")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "already_resolved", decode[PaymentWebhookResponse](t, w).Result)
}

func TestStaffAuth(t *testing.T) {
	e := newEnv(t)

	w := e.do(http.MethodPost, "/checkins", CheckInRequest{Token: "x"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(http.MethodPost, "/checkins", CheckInRequest{Token: "x"}, bearer("garbage"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	other, err := SignStaffToken([]byte("another-secret"), uuid.New(), RoleStaff, time.Hour)
	require.NoError(t, err)
	w = e.do(http.MethodPost, "/checkins", CheckInRequest{Token: "x"}, bearer(other))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	expired, err := SignStaffToken(jwtSecret, uuid.New(), RoleStaff, -time.Minute)
	require.NoError(t, err)
	w = e.do(http.MethodPost, "/checkins", CheckInRequest{Token: "x"}, bearer(expired))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(http.MethodPost, "/admin/sweep", nil, bearer(e.staff))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(http.MethodPost, "/checkins", CheckInRequest{Token: "x"}, bearer(e.staff))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminSweepAndStatusListing(t *testing.T) {
	e := newEnv(t)
	ev := e.createEvent(2)
	w := e.reserve(ev.ID, e.createVehicle(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	e.clk.Advance(10 * time.Minute)

	w = e.do(http.MethodPost, "/admin/sweep", nil, bearer(e.admin))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, sweeper.Result{Reclaimed: 1}, decode[sweeper.Result](t, w))

	w = e.do(http.MethodGet, "/admin/registrations?status=failed", nil, bearer(e.admin))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Registration](t, w), 1)

	w = e.do(http.MethodGet, "/admin/registrations?status=bogus", nil, bearer(e.admin))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAnalyticsEndpoints(t *testing.T) {
	e := newEnv(t)
	v := e.createVehicle()

	for i := 0; i < 3; i++ {
		w := e.do(http.MethodPost, "/vehicles/"+v.ID.String()+"/views", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := e.do(http.MethodPost, "/vehicles/"+v.ID.String()+"/shares", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(http.MethodGet, "/vehicles/"+v.ID.String()+"/analytics", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[domain.VehicleAnalytics](t, w)
	assert.EqualValues(t, 3, got.Views)
	assert.EqualValues(t, 1, got.Shares)

	w = e.do(http.MethodPost, "/vehicles/"+uuid.NewString()+"/views", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOccupancy_ETag(t *testing.T) {
	e := newEnv(t)
	ev := e.createEvent(2)
	path := "/events/" + ev.ID.String() + "/occupancy"

	w := e.do(http.MethodGet, path, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	tag := w.Header().Get("ETag")
	require.NotEmpty(t, tag)

	w = e.do(http.MethodGet, path, nil, map[string]string{"If-None-Match": tag})
	assert.Equal(t, http.StatusNotModified, w.Code)

	_ = e.reserve(ev.ID, e.createVehicle(), nil)
	w = e.do(http.MethodGet, path, nil, map[string]string{"If-None-Match": tag})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRespondErr_RateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondErr(c, errors.Join(errors.New("reserve"), &redisrepo.RateLimitedError{RetryAfter: 2400 * time.Millisecond}))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
}

func TestEtagMatches(t *testing.T) {
	assert.True(t, etagMatches(`W/"abc"`, `W/"abc"`))
	assert.True(t, etagMatches(`"abc"`, `W/"abc"`))
	assert.True(t, etagMatches(`"x", W/"abc"`, `W/"abc"`))
	assert.True(t, etagMatches(`*`, `"abc"`))
	assert.False(t, etagMatches(``, `"abc"`))
	assert.False(t, etagMatches(`"abd"`, `"abc"`))
}

func TestRespondErr_HidesOperationChain(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		code int
		want ErrorResponse
	}{
		{
			name: "sentinel only",
			err:  fmt.Errorf("service.payment.AttachPayment:%w", domain.ErrPaymentAttached),
			code: http.StatusConflict,
			want: ErrorResponse{Error: domain.ErrPaymentAttached.Error(), Code: "payment_conflict"},
		},
		{
			name: "detail after sentinel",
			err:  fmt.Errorf("service.admin.CreateEvent:%w: title is required", admin.ErrInvalidEvent),
			code: http.StatusUnprocessableEntity,
			want: ErrorResponse{Error: "invalid event: title is required", Code: "invalid"},
		},
		{
			name: "fixed message",
			err:  fmt.Errorf("service.payment.ApplyOutcome:%w: dial tcp: refused", payment.ErrVehicleSync),
			code: http.StatusServiceUnavailable,
			want: ErrorResponse{Error: "vehicle update failed", Code: "vehicle_sync"},
		},
		{
			name: "unmapped",
			err:  errors.New("postgres.RegistrationRepo.Get:connection reset"),
			code: http.StatusInternalServerError,
			want: ErrorResponse{Error: "internal error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondErr(c, tt.err)

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.want, decode[ErrorResponse](t, w))
			require.Len(t, c.Errors, 1)
			assert.ErrorIs(t, c.Errors[0].Err, tt.err)
		})
	}
}
