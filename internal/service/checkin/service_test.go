package checkin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/carmeet/internal/clock"
	"github.com/kirinyoku/carmeet/internal/domain"
	"github.com/kirinyoku/carmeet/internal/repository/memory"
	"github.com/kirinyoku/carmeet/internal/service/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc     *Service
	payment *payment.Service
	store   *memory.Store
	clk     *clock.FakeClock
	event   domain.Event
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.New()
	clk := clock.Fake(t0)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := domain.Event{ID: uuid.New(), Title: "Cars & Coffee", Date: t0.Add(7 * 24 * time.Hour), Capacity: 2}
	require.NoError(t, store.Events().Create(context.Background(), e))

	return fixture{
		svc:     New(store, clk, logger),
		payment: payment.New(store, nil, logger),
		store:   store,
		clk:     clk,
		event:   e,
	}
}

func (f fixture) reserve(t *testing.T) domain.Registration {
	t.Helper()
	ctx := context.Background()
	v := domain.Vehicle{ID: uuid.New(), OwnerID: uuid.New()}
	require.NoError(t, f.store.Vehicles().Create(ctx, v))

	reg, err := f.store.Registrations().Admit(ctx,
		domain.NewRegistration(f.event.ID, v.ID, v.OwnerID, f.clk.Now(), 5*time.Minute), f.clk.Now())
	require.NoError(t, err)
	return reg
}

func (f fixture) pay(t *testing.T, reg domain.Registration) string {
	t.Helper()
	done, err := f.payment.ApplyOutcome(context.Background(), reg.ID.String(), domain.OutcomeSucceeded)
	require.NoError(t, err)
	require.NotNil(t, done.QRCodeData)
	return *done.QRCodeData
}

func TestScenario_PaidRegistrationChecksInOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	staff := uuid.New()

	reg := f.reserve(t)
	token := f.pay(t, reg)

	f.clk.Set(f.event.Date)

	got, err := f.svc.CheckIn(ctx, token, staff)
	require.NoError(t, err)
	assert.True(t, got.CheckedIn)
	require.NotNil(t, got.CheckedInAt)
	assert.Equal(t, f.event.Date, *got.CheckedInAt)
	require.NotNil(t, got.CheckedInBy)
	assert.Equal(t, staff, *got.CheckedInBy)

	_, err = f.svc.CheckIn(ctx, token, uuid.New())
	assert.ErrorIs(t, err, domain.ErrAlreadyCheckedIn)

	stored, err := f.store.Registrations().Get(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, staff, *stored.CheckedInBy)
}

func TestCheckIn_UnknownToken(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CheckIn(context.Background(), "nope", uuid.New())
	assert.ErrorIs(t, err, ErrTokenNotFound)

	_, err = f.svc.CheckIn(context.Background(), "  ", uuid.New())
	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestCheckIn_ConcurrentScans(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	token := f.pay(t, f.reserve(t))

	const scanners = 8
	var wg sync.WaitGroup
	errs := make([]error, scanners)
	staff := make([]uuid.UUID, scanners)
	for i := range errs {
		staff[i] = uuid.New()
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.CheckIn(ctx, token, staff[i])
		}(i)
	}
	wg.Wait()

	var winner uuid.UUID
	ok, already := 0, 0
	for i, err := range errs {
		switch {
		case err == nil:
			ok++
			winner = staff[i]
		case errors.Is(err, domain.ErrAlreadyCheckedIn):
			already++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, scanners-1, already)

	reg, err := f.store.Registrations().GetByToken(ctx, token)
	require.NoError(t, err)
	assert.True(t, reg.CheckedIn)
	assert.Equal(t, winner, *reg.CheckedInBy)
}
