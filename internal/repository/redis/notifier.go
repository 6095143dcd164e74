package redis

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// ChangeNotifier drops the local cache entries for an event and tells the
// other instances to do the same.
type ChangeNotifier struct {
	cache  *Cache
	pubsub *EventsPubSub
	logger *slog.Logger
}

func NewChangeNotifier(cache *Cache, pubsub *EventsPubSub, logger *slog.Logger) *ChangeNotifier {
	return &ChangeNotifier{cache: cache, pubsub: pubsub, logger: logger}
}

// RegistrationChanged is best effort: cached occupancy has a short TTL, so
// a lost invalidation only delays freshness.
func (n *ChangeNotifier) RegistrationChanged(ctx context.Context, eventID, registrationID uuid.UUID) {
	if err := n.cache.InvalidateEvent(ctx, eventID); err != nil {
		n.logger.Warn("cache invalidation failed", "event_id", eventID, "error", err)
	}
	if err := n.pubsub.PublishRegistrationChanged(ctx, eventID, registrationID); err != nil {
		n.logger.Warn("publish registration change failed", "event_id", eventID, "error", err)
	}
}
