package domain

import (
	"time"

	"github.com/google/uuid"
)

// CountOccupancy counts registrations that hold a slot at now.
func CountOccupancy(regs []Registration, now time.Time) int {
	n := 0
	for _, r := range regs {
		if r.Active(now) {
			n++
		}
	}
	return n
}

// HasActiveRegistration reports whether vehicleID already holds a slot
// among regs.
func HasActiveRegistration(regs []Registration, vehicleID uuid.UUID, now time.Time) bool {
	for _, r := range regs {
		if r.VehicleID == vehicleID && r.Active(now) {
			return true
		}
	}
	return false
}

// CheckAdmission applies the reservation admission rule. Callers must hold
// the event's admission lock between counting occupancy and inserting.
func CheckAdmission(e Event, occupied int, now time.Time) error {
	if !e.Date.After(now) {
		return ErrEventNotUpcoming
	}
	if occupied >= e.Capacity {
		return ErrCapacityExceeded
	}
	return nil
}

func NewOccupancy(e Event, occupied int) Occupancy {
	available := e.Capacity - occupied
	if available < 0 {
		available = 0
	}
	return Occupancy{
		EventID:   e.ID,
		Capacity:  e.Capacity,
		Occupied:  occupied,
		Available: available,
	}
}
