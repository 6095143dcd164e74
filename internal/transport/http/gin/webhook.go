package httpgin

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidTimestamp       = errors.New("invalid timestamp")
	ErrTimestampOutsideWindow = errors.New("timestamp outside allowed window")
	ErrInvalidSignature       = errors.New("invalid signature")
)

const (
	HeaderWebhookTimestamp = "X-Webhook-Timestamp"
	HeaderWebhookSignature = "X-Webhook-Signature"
	HeaderWebhookID        = "X-Webhook-Id"

	webhookWindow = 5 * time.Minute
)

// VerifyWebhook checks a hex HMAC-SHA256 signature over "<ts>.<body>" and
// rejects timestamps more than five minutes away from now.
func VerifyWebhook(secret, tsHeader, sigHeader string, body []byte, now time.Time) error {
	tsHeader = strings.TrimSpace(tsHeader)

	ts, err := strconv.ParseInt(tsHeader, 10, 64)
	if err != nil {
		return ErrInvalidTimestamp
	}

	sent := time.Unix(ts, 0).UTC()
	now = now.UTC()
	if sent.Before(now.Add(-webhookWindow)) || sent.After(now.Add(webhookWindow)) {
		return ErrTimestampOutsideWindow
	}

	provided, err := hex.DecodeString(strings.TrimSpace(sigHeader))
	if err != nil {
		return ErrInvalidSignature
	}

	if !hmac.Equal(provided, webhookMAC(secret, tsHeader, body)) {
		return ErrInvalidSignature
	}

	return nil
}

// SignWebhook returns the hex signature VerifyWebhook expects.
func SignWebhook(secret, tsHeader string, body []byte) string {
	return hex.EncodeToString(webhookMAC(secret, tsHeader, body))
}

func webhookMAC(secret, tsHeader string, body []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(tsHeader))
	_, _ = mac.Write([]byte{'.'})
	_, _ = mac.Write(body)
	return mac.Sum(nil)
}
