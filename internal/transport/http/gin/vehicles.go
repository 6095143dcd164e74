package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/carmeet/internal/domain"
)

// @Summary  Count a vehicle view or share
// @Param    id  path  string  true  "Vehicle ID (uuid)"
// @Success  200 {object} domain.VehicleAnalytics
// @Failure  404 {object} ErrorResponse
// @Router   /vehicles/{id}/views [post]
// @Router   /vehicles/{id}/shares [post]
func (h *handler) increment(counter domain.Counter) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		row, err := h.svcs.Analytics.Increment(c.Request.Context(), id, counter)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, row)
	}
}

// @Summary  Get vehicle counters
// @Param    id  path  string  true  "Vehicle ID (uuid)"
// @Success  200 {object} domain.VehicleAnalytics
// @Failure  404 {object} ErrorResponse
// @Router   /vehicles/{id}/analytics [get]
func (h *handler) getAnalytics(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	row, err := h.svcs.Analytics.Get(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}
