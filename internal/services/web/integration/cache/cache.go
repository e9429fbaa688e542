// Package cache memoizes collaborator lookups for a fixed time-to-live.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Config sets the TTL. Fields map to PORTFOLIO_CACHE_* variables.
type Config struct {
	TTL time.Duration `env:"TTL" envDefault:"1h"`
}

type entry[V any] struct {
	value   V
	expires time.Time
}

// Memo caches the result of a loader per key. Concurrent misses for the same
// key share one load. Only results the keep predicate accepts are stored, so
// empty fallbacks from a failing collaborator are retried on the next call.
type Memo[V any] struct {
	ttl   time.Duration
	now   func() time.Time
	keep  func(V) bool
	group singleflight.Group

	mu      sync.Mutex
	entries map[string]entry[V]
}

// Option customizes a Memo.
type Option[V any] func(*Memo[V])

// WithClock replaces time.Now.
func WithClock[V any](now func() time.Time) Option[V] {
	return func(m *Memo[V]) {
		if now != nil {
			m.now = now
		}
	}
}

// WithKeep sets the predicate deciding whether a loaded value is cached.
func WithKeep[V any](keep func(V) bool) Option[V] {
	return func(m *Memo[V]) {
		if keep != nil {
			m.keep = keep
		}
	}
}

// New returns a Memo. A non-positive ttl disables caching but keeps request
// coalescing.
func New[V any](ttl time.Duration, opts ...Option[V]) *Memo[V] {
	m := &Memo[V]{
		ttl:     ttl,
		now:     time.Now,
		keep:    func(V) bool { return true },
		entries: map[string]entry[V]{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the cached value for key or calls load.
func (m *Memo[V]) Get(ctx context.Context, key string, load func(context.Context) V) V {
	if value, ok := m.lookup(key); ok {
		return value
	}
	result, _, _ := m.group.Do(key, func() (any, error) {
		if value, ok := m.lookup(key); ok {
			return value, nil
		}
		value := load(context.WithoutCancel(ctx))
		if m.ttl > 0 && m.keep(value) {
			m.mu.Lock()
			m.entries[key] = entry[V]{value: value, expires: m.now().Add(m.ttl)}
			m.mu.Unlock()
		}
		return value, nil
	})
	return result.(V)
}

// Invalidate drops key.
func (m *Memo[V]) Invalidate(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

func (m *Memo[V]) lookup(key string) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cached, ok := m.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !m.now().Before(cached.expires) {
		delete(m.entries, key)
		var zero V
		return zero, false
	}
	return cached.value, true
}

// NonEmpty is a keep predicate for slice results.
func NonEmpty[E any](values []E) bool {
	return len(values) > 0
}
