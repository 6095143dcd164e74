package httpgin

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	jsonContentType = "application/json; charset=utf-8"
	idemLockTTL     = time.Minute
)

// runIdempotent executes fn at most once per storage key. A replay gets the
// stored body, a duplicate arriving while fn runs gets 409. Failed calls
// release the key so the client may retry. An empty key disables the check.
func (h *handler) runIdempotent(c *gin.Context, storageKey string, status int, fn func() (any, error)) {
	ctx := c.Request.Context()
	claimed := false

	if h.idem != nil && storageKey != "" {
		payload, done, ok, err := h.idem.Begin(ctx, storageKey, idemLockTTL)
		if err != nil {
			respondErr(c, err)
			return
		}
		if done {
			c.Data(status, jsonContentType, []byte(payload))
			return
		}
		if !ok {
			c.Header("Retry-After", "1")
			c.JSON(http.StatusConflict, ErrorResponse{
				Error: "request with this key is in progress",
				Code:  "idempotency_in_progress",
			})
			return
		}
		claimed = true
	}

	v, err := fn()
	if err != nil {
		if claimed {
			if relErr := h.idem.Release(ctx, storageKey); relErr != nil {
				h.logger.Warn("idempotency release failed", "key", storageKey, "error", relErr)
			}
		}
		respondErr(c, err)
		return
	}

	b, err := json.Marshal(v)
	if err != nil {
		respondErr(c, err)
		return
	}

	if claimed {
		if err := h.idem.Complete(ctx, storageKey, string(b)); err != nil {
			h.logger.Warn("idempotency save failed", "key", storageKey, "error", err)
		}
	}

	c.Data(status, jsonContentType, b)
}
