package clock

import (
	"sync"
	"time"
)

// Clock supplies wall-clock timestamps used for hold expiration and audit
// fields. Services take a Clock instead of calling time.Now directly so
// tests can pin time.
type Clock interface {
	Now() time.Time
}

// Real returns a Clock backed by the time package. Readings never go
// backwards, even if the wall clock is stepped.
func Real() Clock {
	return Monotonic(systemClock{})
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

type monotonic struct {
	mu   sync.Mutex
	src  Clock
	last time.Time
}

// Monotonic wraps src so that successive readings are non-decreasing.
func Monotonic(src Clock) Clock {
	return &monotonic{src: src}
}

func (m *monotonic) Now() time.Time {
	now := m.src.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if now.Before(m.last) {
		return m.last
	}
	m.last = now

	return now
}
