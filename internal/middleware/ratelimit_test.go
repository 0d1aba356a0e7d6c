package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateLimitedRouter(store CounterStore, max int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(store, max, window))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRateLimitAllowsUnderLimit(t *testing.T) {
	r := newRateLimitedRouter(NewMemoryCounterStore(), 3, time.Minute)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitRejectsOverLimit(t *testing.T) {
	r := newRateLimitedRouter(NewMemoryCounterStore(), 2, time.Minute)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many requests. Please try again later.")
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
}

func TestRateLimitHeadersCountDown(t *testing.T) {
	r := newRateLimitedRouter(NewMemoryCounterStore(), 5, time.Minute)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, "3", w.Header().Get("X-RateLimit-Remaining"))
}

func TestMemoryCounterStoreResetsAfterWindow(t *testing.T) {
	store := NewMemoryCounterStore()

	count, _, err := store.Incr(context.Background(), "k", 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, _, err = store.Incr(context.Background(), "k", 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	time.Sleep(15 * time.Millisecond)

	count, _, err = store.Incr(context.Background(), "k", 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "a fresh window starts after expiry")
}

func TestMemoryCounterStoreSweepsStaleKeys(t *testing.T) {
	store := NewMemoryCounterStore()

	_, _, err := store.Incr(context.Background(), "gone", 5*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	store.nextSweep = time.Now().Add(-time.Second)

	_, _, err = store.Incr(context.Background(), "fresh", time.Minute)
	require.NoError(t, err)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.NotContains(t, store.windows, "gone", "expired windows for absent clients are dropped")
	assert.Contains(t, store.windows, "fresh")
}

type failingStore struct{}

func (failingStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	return 0, 0, context.DeadlineExceeded
}

func TestRateLimitFailsOpen(t *testing.T) {
	r := newRateLimitedRouter(failingStore{}, 1, time.Minute)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
