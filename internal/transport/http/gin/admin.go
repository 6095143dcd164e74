package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kirinyoku/carmeet/internal/domain"
	"github.com/kirinyoku/carmeet/internal/service/admin"
)

// @Summary  Create event
// @Security BearerAuth
// @Param    req body  CreateEventRequest true "payload"
// @Success  201 {object} domain.Event
// @Failure  422 {object} ErrorResponse
// @Router   /admin/events [post]
func (h *handler) createEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	var orgID uuid.UUID
	if req.OrganizationID != "" {
		id, err := uuid.Parse(req.OrganizationID)
		if err != nil {
			badRequest(c, "invalid organizationId")
			return
		}
		orgID = id
	}
	e, err := h.svcs.Admin.CreateEvent(c.Request.Context(), admin.NewEvent{
		OrganizationID: orgID,
		Title:          req.Title,
		Date:           req.Date,
		Capacity:       req.Capacity,
		VendorPrice:    req.VendorPrice,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// @Summary  Create vehicle
// @Security BearerAuth
// @Param    req body  CreateVehicleRequest true "payload"
// @Success  201 {object} domain.Vehicle
// @Router   /admin/vehicles [post]
func (h *handler) createVehicle(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		badRequest(c, "invalid ownerId")
		return
	}
	v, err := h.svcs.Admin.CreateVehicle(c.Request.Context(), ownerID, req.Title)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// @Summary  Run the expiration sweep now
// @Security BearerAuth
// @Success  200 {object} sweeper.Result
// @Router   /admin/sweep [post]
func (h *handler) sweep(c *gin.Context) {
	res, err := h.svcs.Sweeper.Sweep(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary  List registrations by payment status
// @Security BearerAuth
// @Param    status query string true  "pending | completed | failed"
// @Param    limit  query int    false "page size"
// @Success  200 {array} domain.Registration
// @Failure  422 {object} ErrorResponse
// @Router   /admin/registrations [get]
func (h *handler) listByStatus(c *gin.Context) {
	status := domain.PaymentStatus(c.Query("status"))
	limit := parseIntDefault(c.Query("limit"), 100)

	regs, err := h.svcs.Registration.ListByStatus(c.Request.Context(), status, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, regs)
}
