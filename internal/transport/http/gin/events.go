package httpgin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	redisrepo "github.com/kirinyoku/carmeet/internal/repository/redis"
)

// @Summary  Get event
// @Param    id  path  string  true  "Event ID (uuid)"
// @Success  200  {object}  domain.Event
// @Failure  404  {object}  ErrorResponse
// @Router   /events/{id} [get]
func (h *handler) getEvent(c *gin.Context) {
	eventID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	e, err := h.svcs.Registration.Event(c.Request.Context(), eventID)
	if err != nil {
		respondErr(c, err)
		return
	}
	writeJSONWithCache(c, http.StatusOK, e, "public, max-age=60", true)
}

// @Summary  Get event occupancy
// @Param    id  path  string  true  "Event ID (uuid)"
// @Success  200  {object}  domain.Occupancy
// @Failure  404  {object}  ErrorResponse
// @Router   /events/{id}/occupancy [get]
func (h *handler) getOccupancy(c *gin.Context) {
	eventID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	occ, err := h.svcs.Registration.Occupancy(c.Request.Context(), eventID)
	if err != nil {
		respondErr(c, err)
		return
	}
	writeJSONWithCache(c, http.StatusOK, occ, "public, max-age=5", true)
}

// @Summary  List registrations of an event
// @Param    id  path  string  true  "Event ID (uuid)"
// @Success  200  {array}   domain.Registration
// @Failure  404  {object}  ErrorResponse
// @Router   /events/{id}/registrations [get]
func (h *handler) listEventRegistrations(c *gin.Context) {
	eventID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	regs, err := h.svcs.Registration.ListByEvent(c.Request.Context(), eventID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, publicRegistrations(regs))
}

// @Summary  Reserve a slot (idempotent)
// @Param    id  path  string  true  "Event ID (uuid)"
// @Param    req body  ReserveRequest true "payload"
// @Param    Idempotency-Key header string false "client generated key"
// @Success  201 {object} domain.Registration
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse "event or vehicle not found"
// @Failure  409 {object} ErrorResponse "capacity exceeded / already registered / idem in progress"
// @Failure  422 {object} ErrorResponse "event not upcoming"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /events/{id}/registrations [post]
func (h *handler) reserve(c *gin.Context) {
	eventID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		badRequest(c, "invalid vehicleId")
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		badRequest(c, "invalid userId")
		return
	}

	var storageKey string
	if idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key")); idemKey != "" {
		storageKey = redisrepo.KeyIdemReservation(eventID, idemKey)
		c.Header("Idempotency-Key", idemKey)
	}

	h.runIdempotent(c, storageKey, http.StatusCreated, func() (any, error) {
		return h.svcs.Registration.Reserve(
			c.Request.Context(),
			eventID,
			vehicleID,
			userID,
			"ip:"+c.ClientIP(),
		)
	})
}

// @Summary  Get registration
// @Description The check-in token and payment reference are omitted.
// @Param    id  path  string  true  "Registration ID (uuid)"
// @Success  200 {object} domain.Registration
// @Failure  404 {object} ErrorResponse
// @Router   /registrations/{id} [get]
func (h *handler) getRegistration(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	reg, err := h.svcs.Registration.Get(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, publicRegistration(reg))
}

// @Summary  Get registration with its check-in token
// @Description For the marketplace backend, which hands the token to the
// @Description seller it has authenticated.
// @Security BearerAuth
// @Param    id  path  string  true  "Registration ID (uuid)"
// @Success  200 {object} domain.Registration
// @Failure  401 {object} ErrorResponse
// @Failure  403 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Router   /registrations/{id}/ticket [get]
func (h *handler) getTicket(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	reg, err := h.svcs.Registration.Get(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, reg)
}

// @Summary  List registrations of a vehicle
// @Param    id  path  string  true  "Vehicle ID (uuid)"
// @Success  200 {array} domain.Registration
// @Router   /vehicles/{id}/registrations [get]
func (h *handler) listVehicleRegistrations(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	regs, err := h.svcs.Registration.ListByVehicle(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, publicRegistrations(regs))
}

// @Summary  List registrations of a user
// @Param    id  path  string  true  "User ID (uuid)"
// @Success  200 {array} domain.Registration
// @Router   /users/{id}/registrations [get]
func (h *handler) listUserRegistrations(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	regs, err := h.svcs.Registration.ListByUser(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, publicRegistrations(regs))
}
