package ratelimit

import (
    "context"
    "sync"
    "time"
)

// Limiter gates outbound provider calls. Wait blocks until a call may
// proceed or the context is canceled.
type Limiter interface {
    Wait(ctx context.Context) error
}

// None admits every call immediately.
type None struct{}

func (None) Wait(context.Context) error { return nil }

// MinInterval enforces a minimum time between admitted calls. Concurrent
// callers wait until the interval has elapsed since the last admission,
// or return early if the context is canceled.
type MinInterval struct {
    Interval time.Duration

    mu   sync.Mutex
    last time.Time
}

func (m *MinInterval) Wait(ctx context.Context) error {
    if m.Interval <= 0 { return nil }
    for {
        m.mu.Lock()
        wait := time.Until(m.last.Add(m.Interval))
        if wait <= 0 {
            m.last = time.Now()
            m.mu.Unlock()
            return nil
        }
        m.mu.Unlock()
        t := time.NewTimer(wait)
        select {
        case <-ctx.Done():
            t.Stop()
            return ctx.Err()
        case <-t.C:
        }
        // re-check: another caller may have been admitted while we slept
    }
}
