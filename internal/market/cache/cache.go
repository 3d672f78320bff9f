package cache

import (
    "sync"
    "time"
)

// entry stores one cached value with expiry.
type entry[V any] struct {
    expiresAt time.Time
    value     V
}

// Store is a small per-key TTL cache with a best-effort max-items cap.
// A nil Store or a non-positive TTL disables caching: Get always misses
// and Set is a no-op, so callers need no enabled checks.
type Store[V any] struct {
    TTL      time.Duration
    MaxItems int

    mu    sync.RWMutex
    items map[string]entry[V]
}

func New[V any](ttl time.Duration, maxItems int) *Store[V] {
    return &Store[V]{TTL: ttl, MaxItems: maxItems}
}

func (s *Store[V]) Get(key string) (V, bool) {
    var zero V
    if s == nil || s.TTL <= 0 { return zero, false }
    s.mu.RLock()
    e, ok := s.items[key]
    s.mu.RUnlock()
    if !ok || time.Now().After(e.expiresAt) {
        return zero, false
    }
    return e.value, true
}

func (s *Store[V]) Set(key string, v V) {
    if s == nil || s.TTL <= 0 { return }
    now := time.Now()
    s.mu.Lock()
    if s.items == nil { s.items = make(map[string]entry[V]) }
    s.items[key] = entry[V]{expiresAt: now.Add(s.TTL), value: v}
    // best-effort cap: drop expired entries first, then arbitrary ones
    if s.MaxItems > 0 && len(s.items) > s.MaxItems {
        for k, e := range s.items {
            if now.After(e.expiresAt) {
                delete(s.items, k)
            }
            if len(s.items) <= s.MaxItems { break }
        }
        for k := range s.items {
            if len(s.items) <= s.MaxItems { break }
            delete(s.items, k)
        }
    }
    s.mu.Unlock()
}
