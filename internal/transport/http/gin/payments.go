package httpgin

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/kirinyoku/carmeet/internal/domain"
	redisrepo "github.com/kirinyoku/carmeet/internal/repository/redis"
)

const maxWebhookBody = 1 << 20

const (
	webhookApplied         = "applied"
	webhookAlreadyResolved = "already_resolved"
)

// @Summary  Attach payment reference
// @Security BearerAuth
// @Param    id  path  string  true  "Registration ID (uuid)"
// @Param    req body  AttachPaymentRequest true "payload"
// @Success  200 {object} domain.Registration
// @Failure  401 {object} ErrorResponse
// @Failure  403 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "different reference already attached / not pending"
// @Router   /registrations/{id}/payment [post]
func (h *handler) attachPayment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req AttachPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	reg, err := h.svcs.Payment.AttachPayment(c.Request.Context(), id, req.StripePaymentID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, reg)
}

// @Summary  Payment processor notification
// @Description Signed with HMAC-SHA256 over "<timestamp>.<body>".
// @Param    X-Webhook-Timestamp header string true "unix seconds"
// @Param    X-Webhook-Signature header string true "hex HMAC"
// @Param    X-Webhook-Id        header string false "delivery id"
// @Param    req body  PaymentWebhookRequest true "payload"
// @Success  200 {object} PaymentWebhookResponse
// @Failure  401 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Failure  503 {object} ErrorResponse "vehicle update failed, redeliver"
// @Router   /webhooks/payments [post]
func (h *handler) paymentWebhook(c *gin.Context) {
	if h.cfg.WebhookSecret == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "webhook secret is not configured"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		badRequest(c, "unreadable body")
		return
	}

	if err := VerifyWebhook(
		h.cfg.WebhookSecret,
		c.GetHeader(HeaderWebhookTimestamp),
		c.GetHeader(HeaderWebhookSignature),
		body,
		h.cfg.Now(),
	); err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		return
	}

	var req PaymentWebhookRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		badRequest(c, err.Error())
		return
	}

	var storageKey string
	if id := strings.TrimSpace(c.GetHeader(HeaderWebhookID)); id != "" {
		storageKey = redisrepo.KeyWebhookDelivery(id)
	}

	h.runIdempotent(c, storageKey, http.StatusOK, func() (any, error) {
		reg, err := h.svcs.Payment.ApplyOutcome(
			c.Request.Context(),
			req.Reference,
			domain.PaymentOutcome(req.Outcome),
		)
		// acknowledged and stored so the processor stops redelivering
		if errors.Is(err, domain.ErrAlreadyResolved) {
			return PaymentWebhookResponse{
				RegistrationID: reg.ID.String(),
				PaymentStatus:  reg.PaymentStatus,
				Result:         webhookAlreadyResolved,
			}, nil
		}
		if err != nil {
			return nil, err
		}
		return PaymentWebhookResponse{
			RegistrationID: reg.ID.String(),
			PaymentStatus:  reg.PaymentStatus,
			Result:         webhookApplied,
		}, nil
	})
}

// @Summary  Check in with a registration token
// @Security BearerAuth
// @Param    req body  CheckInRequest true "payload"
// @Success  200 {object} domain.Registration
// @Failure  401 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "already checked in"
// @Failure  422 {object} ErrorResponse "payment not completed"
// @Router   /checkins [post]
func (h *handler) checkIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	reg, err := h.svcs.CheckIn.CheckIn(c.Request.Context(), req.Token, staffID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, reg)
}
