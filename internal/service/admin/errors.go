package admin

import (
	"errors"
)

var (
	ErrEventConflict   = errors.New("event already exists")
	ErrVehicleConflict = errors.New("vehicle already exists")
	ErrInvalidEvent    = errors.New("invalid event")
	ErrInvalidVehicle  = errors.New("invalid vehicle")
)
