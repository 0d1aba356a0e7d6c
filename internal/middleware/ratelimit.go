package middleware

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

// CounterStore increments a fixed-window counter keyed by client identity.
// The first hit in a window starts it; the returned duration is the time
// until the window resets.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

type memoryWindow struct {
	count   int64
	resetAt time.Time
}

// memorySweepInterval bounds how long expired windows for clients that never
// return can linger in the map.
const memorySweepInterval = 5 * time.Minute

// MemoryCounterStore is an in-process CounterStore. Suitable for tests and
// single-replica deployments where Redis is unavailable.
type MemoryCounterStore struct {
	mu        sync.Mutex
	windows   map[string]*memoryWindow
	nextSweep time.Time
}

// NewMemoryCounterStore constructs an empty in-memory store.
func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{
		windows:   make(map[string]*memoryWindow),
		nextSweep: time.Now().Add(memorySweepInterval),
	}
}

// Incr implements CounterStore. An expired window is replaced on the next hit
// for its key; all expired windows are swept periodically.
func (s *MemoryCounterStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if now.After(s.nextSweep) {
		for k, w := range s.windows {
			if now.After(w.resetAt) {
				delete(s.windows, k)
			}
		}
		s.nextSweep = now.Add(memorySweepInterval)
	}

	w, ok := s.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &memoryWindow{resetAt: now.Add(window)}
		s.windows[key] = w
	}
	w.count++
	return w.count, time.Until(w.resetAt), nil
}

// RateLimit rejects clients exceeding max requests per fixed window, keyed
// by client IP. Counter store failures let the request through.
func RateLimit(store CounterStore, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || max <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s", c.ClientIP())
		count, remaining, err := store.Incr(c.Request.Context(), key, window)
		if err != nil {
			c.Next()
			return
		}

		left := int64(max) - count
		if left < 0 {
			left = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(max))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(left, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(remaining).Unix(), 10))

		if count > int64(max) {
			response.Error(c, appErrors.ErrRateLimited)
			c.Abort()
			return
		}

		c.Next()
	}
}
