package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/carmeet/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache is a read-through JSON cache in front of the registration store.
// The store stays authoritative: a redis failure on read falls through to
// the loader, and a failed write is ignored.
type Cache struct {
	rdb *redis.Client
	sf  singleflight.Group
}

func New(client *redis.Client) *Cache {
	return &Cache{rdb: client}
}

func (c *Cache) lookup(ctx context.Context, key string, out any) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}

	return json.Unmarshal(raw, out) == nil
}

func (c *Cache) store(ctx context.Context, key string, val any, ttl time.Duration) {
	raw, err := json.Marshal(val)
	if err != nil {
		return
	}

	_ = c.rdb.Set(ctx, key, raw, ttl).Err()
}

// readThrough returns the cached value for key or calls load once per key
// across concurrent misses.
func readThrough[T any](
	ctx context.Context,
	c *Cache,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (T, error),
) (T, error) {
	var cached T
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}

	res, err, _ := c.sf.Do(key, func() (any, error) {
		var again T
		if c.lookup(ctx, key, &again) {
			return again, nil
		}

		v, err := load(ctx)
		if err != nil {
			return nil, err
		}

		c.store(ctx, key, v, ttl)

		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	v, ok := res.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("redis.readThrough: unexpected %T for %s", res, key)
	}

	return v, nil
}

// InvalidateEvent drops every cached view derived from the event.
func (c *Cache) InvalidateEvent(ctx context.Context, eventID uuid.UUID) error {
	const op = "redis.Cache.InvalidateEvent"

	err := c.rdb.Del(ctx, KeyEvent(eventID), KeyEventOccupancy(eventID)).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// OccupancyCache serves event occupancy and event records through a short
// lived cache entry.
type OccupancyCache struct {
	cache *Cache
	ttl   time.Duration
}

func NewOccupancyCache(cache *Cache, ttl time.Duration) *OccupancyCache {
	return &OccupancyCache{cache: cache, ttl: ttl}
}

func (o *OccupancyCache) Occupancy(
	ctx context.Context,
	eventID uuid.UUID,
	load func(ctx context.Context) (domain.Occupancy, error),
) (domain.Occupancy, error) {
	return readThrough(ctx, o.cache, KeyEventOccupancy(eventID), o.ttl, load)
}

func (o *OccupancyCache) Event(
	ctx context.Context,
	eventID uuid.UUID,
	load func(ctx context.Context) (domain.Event, error),
) (domain.Event, error) {
	return readThrough(ctx, o.cache, KeyEvent(eventID), o.ttl, load)
}
