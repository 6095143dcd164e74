package redis

import (
	"fmt"

	"github.com/google/uuid"
)

const ns = "carmeet:v1"

func KeyEvent(eventID uuid.UUID) string {
	return fmt.Sprintf("%s:event:%s", ns, eventID)
}

func KeyEventOccupancy(eventID uuid.UUID) string {
	return fmt.Sprintf("%s:event:%s:occupancy", ns, eventID)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func KeyIdemReservation(eventID uuid.UUID, idemKey string) string {
	return fmt.Sprintf("%s:idem:registrations:%s:%s", ns, eventID, idemKey)
}

func KeyWebhookDelivery(deliveryID string) string {
	return fmt.Sprintf("%s:idem:webhooks:%s", ns, deliveryID)
}

func ChannelRegistrationsChanged() string {
	return ns + ":registrations:changed"
}
