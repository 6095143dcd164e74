package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// EventsPubSub broadcasts registration changes so every instance can drop
// its cached view of the affected event.
type EventsPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewEventsPubSub(rdb *redis.Client) *EventsPubSub {
	return &EventsPubSub{
		rdb:     rdb,
		channel: ChannelRegistrationsChanged(),
	}
}

type registrationChangedMsg struct {
	Type           string    `json:"type"`
	EventID        uuid.UUID `json:"event_id"`
	RegistrationID uuid.UUID `json:"registration_id"`
	TsUnix         int64     `json:"ts_unix"`
}

func (p *EventsPubSub) PublishRegistrationChanged(ctx context.Context, eventID, registrationID uuid.UUID) error {
	msg := registrationChangedMsg{
		Type:           "registration_changed",
		EventID:        eventID,
		RegistrationID: registrationID,
		TsUnix:         time.Now().Unix(),
	}

	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

// Subscribe calls handler for every change until ctx is done.
func (p *EventsPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, eventID uuid.UUID)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var msg registrationChangedMsg
			if err := json.Unmarshal([]byte(m.Payload), &msg); err == nil &&
				msg.EventID != uuid.Nil {
				handler(ctx, msg.EventID)
			}
		}
	}
}
