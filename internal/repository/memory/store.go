// Package memory is an in-process implementation of the repository
// interfaces. It backs STORE_DRIVER=memory and the service tests.
package memory

import (
	"sync"

	"github.com/google/uuid"
	"github.com/kirinyoku/carmeet/internal/domain"
	"github.com/kirinyoku/carmeet/internal/repository"
)

// Store keeps all rows behind one RWMutex. Writes hold the lock for the
// whole read-check-write sequence, which gives the same atomicity the
// Postgres store gets from transactions and conditional updates.
type Store struct {
	mu            sync.RWMutex
	events        map[uuid.UUID]domain.Event
	vehicles      map[uuid.UUID]domain.Vehicle
	registrations map[uuid.UUID]domain.Registration
	analytics     map[uuid.UUID]domain.VehicleAnalytics

	// secondary indexes
	byPaymentID map[string]uuid.UUID
	byToken     map[string]uuid.UUID
}

var _ repository.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		events:        make(map[uuid.UUID]domain.Event),
		vehicles:      make(map[uuid.UUID]domain.Vehicle),
		registrations: make(map[uuid.UUID]domain.Registration),
		analytics:     make(map[uuid.UUID]domain.VehicleAnalytics),
		byPaymentID:   make(map[string]uuid.UUID),
		byToken:       make(map[string]uuid.UUID),
	}
}

func (s *Store) Registrations() repository.Registrations { return &RegistrationRepo{s: s} }
func (s *Store) Events() repository.Events               { return &EventRepo{s: s} }
func (s *Store) Vehicles() repository.Vehicles           { return &VehicleRepo{s: s} }
func (s *Store) Analytics() repository.Analytics         { return &AnalyticsRepo{s: s} }

// clone detaches the optional fields so callers cannot alias stored rows.
func clone(r domain.Registration) domain.Registration {
	out := r
	if r.StripePaymentID != nil {
		v := *r.StripePaymentID
		out.StripePaymentID = &v
	}
	if r.QRCodeData != nil {
		v := *r.QRCodeData
		out.QRCodeData = &v
	}
	if r.CheckedInAt != nil {
		v := *r.CheckedInAt
		out.CheckedInAt = &v
	}
	if r.CheckedInBy != nil {
		v := *r.CheckedInBy
		out.CheckedInBy = &v
	}
	if r.ExpiresAt != nil {
		v := *r.ExpiresAt
		out.ExpiresAt = &v
	}
	return out
}
