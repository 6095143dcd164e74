package redis

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/carmeet/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachable returns a client whose every command fails fast.
func unreachable(t *testing.T) *redis.Client {
	t.Helper()

	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	return rdb
}

func TestOccupancyCacheFallsThroughWhenRedisDown(t *testing.T) {
	oc := NewOccupancyCache(New(unreachable(t)), time.Second)
	eventID := uuid.New()

	got, err := oc.Occupancy(context.Background(), eventID, func(context.Context) (domain.Occupancy, error) {
		return domain.Occupancy{EventID: eventID, Capacity: 10, Occupied: 4, Available: 6}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 6, got.Available)
}

func TestOccupancyCacheLoaderError(t *testing.T) {
	oc := NewOccupancyCache(New(unreachable(t)), time.Second)
	boom := errors.New("boom")

	_, err := oc.Event(context.Background(), uuid.New(), func(context.Context) (domain.Event, error) {
		return domain.Event{}, boom
	})

	assert.ErrorIs(t, err, boom)
}

func TestReadThroughSharesConcurrentMisses(t *testing.T) {
	c := New(unreachable(t))
	release := make(chan struct{})
	var calls atomic.Int32

	load := func(context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := readThrough(context.Background(), c, "carmeet:v1:test", time.Second, load)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, []int{42, 42, 42, 42}, results)
}

func TestInvalidateEventReportsRedisError(t *testing.T) {
	err := New(unreachable(t)).InvalidateEvent(context.Background(), uuid.New())

	assert.Error(t, err)
}
