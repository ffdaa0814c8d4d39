// Package cache holds short-lived copies of slow-changing reference data such as
// base prices. Rental and vehicle state must never go through it: a stale
// schedule breaks the no-double-booking guarantee.
package cache

import (
	"context"
	"sync"
	"time"

	"fleet-rental-backend/internal/clock"
)

type Cache interface {
	// Get returns ok=false on a miss or an expired entry.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Invalidate(ctx context.Context, key string) error
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is a process-local TTL cache. Expiry is judged against the injected
// clock so tests can step through the staleness window.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	clock   clock.Clock
	entries map[string]entry
}

func NewMemoryCache(ttl time.Duration, c clock.Clock) *MemoryCache {
	if c == nil {
		c = clock.Real{}
	}
	return &MemoryCache{ttl: ttl, clock: c, entries: make(map[string]entry)}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !m.clock.Now().Before(e.expiresAt) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry{value: value, expiresAt: m.clock.Now().Add(m.ttl)}
	return nil
}

func (m *MemoryCache) Invalidate(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Len reports the number of stored (possibly expired) entries.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Noop) Set(context.Context, string, []byte) error         { return nil }
func (Noop) Invalidate(context.Context, string) error          { return nil }
