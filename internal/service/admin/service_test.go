package admin

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/carmeet/internal/clock"
	"github.com/kirinyoku/carmeet/internal/domain"
	"github.com/kirinyoku/carmeet/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := New(store, clock.Fake(t0))

	org := uuid.New()
	e, err := svc.CreateEvent(ctx, NewEvent{
		OrganizationID: org,
		Title:          "  Cars & Coffee ",
		Date:           t0.Add(72 * time.Hour),
		Capacity:       40,
		VendorPrice:    2500,
	})
	require.NoError(t, err)
	assert.Equal(t, "Cars & Coffee", e.Title)
	assert.Equal(t, org, e.OrganizationID)
	assert.Equal(t, t0, e.CreatedAt)

	stored, err := store.Events().Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e, stored)
}

func TestCreateEvent_Validation(t *testing.T) {
	svc := New(memory.New(), clock.Fake(t0))
	valid := NewEvent{Title: "Meet", Date: t0.Add(time.Hour), Capacity: 1}

	cases := map[string]func(e *NewEvent){
		"empty title":    func(e *NewEvent) { e.Title = " " },
		"zero capacity":  func(e *NewEvent) { e.Capacity = 0 },
		"negative price": func(e *NewEvent) { e.VendorPrice = -1 },
		"date is now":    func(e *NewEvent) { e.Date = t0 },
		"date in past":   func(e *NewEvent) { e.Date = t0.Add(-time.Hour) },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := valid
			mutate(&in)
			_, err := svc.CreateEvent(context.Background(), in)
			assert.ErrorIs(t, err, ErrInvalidEvent)
		})
	}
}

func TestCreateVehicle(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := New(store, clock.Fake(t0))

	owner := uuid.New()
	v, err := svc.CreateVehicle(ctx, owner, "BMW E30 M3")
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleSaleNotRegistered, v.SaleStatus)
	assert.Equal(t, domain.VehiclePaymentUnpaid, v.PaymentStatus)

	got, err := store.Vehicles().Get(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	_, err = svc.CreateVehicle(ctx, owner, "")
	assert.ErrorIs(t, err, ErrInvalidVehicle)

	_, err = svc.CreateVehicle(ctx, uuid.Nil, "Golf GTI")
	assert.ErrorIs(t, err, ErrInvalidVehicle)
}
