package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// memoryStore 内存版幂等存储
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]*redis.StoredResponse // nil值表示处理中
	fail    bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[string]*redis.StoredResponse)}
}

func (s *memoryStore) Reserve(_ context.Context, key string, _ time.Duration) (bool, *redis.StoredResponse, error) {
	if s.fail {
		return false, nil, errors.New("redis down")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if resp, ok := s.entries[key]; ok {
		return false, resp, nil
	}
	s.entries[key] = nil
	return true, nil, nil
}

func (s *memoryStore) Complete(_ context.Context, key string, resp *redis.StoredResponse, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = resp
	return nil
}

func (s *memoryStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func newIdempotentRouter(store IdempotencyStore, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := gin.New()
	r.Use(Idempotency(store, config.IdempotencyConfig{Enabled: true, TTL: time.Hour, LockTTL: time.Minute}, lg))
	r.POST("/api/v1/borrows", handler)
	r.GET("/api/v1/borrows", handler)
	return r
}

func doRequest(r http.Handler, method, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/v1/borrows", nil)
	if key != "" {
		req.Header.Set(HeaderIdempotencyKey, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_Replay(t *testing.T) {
	store := newMemoryStore()
	calls := 0
	r := newIdempotentRouter(store, func(c *gin.Context) {
		calls++
		response.Success(c, gin.H{"calls": calls})
	})

	first := doRequest(r, http.MethodPost, "k1")
	require.Equal(t, http.StatusOK, first.Code)

	second := doRequest(r, http.MethodPost, "k1")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String(), "应该重放第一次的响应")
	assert.Equal(t, "true", second.Header().Get(HeaderIdempotentReplayed))
	assert.Equal(t, 1, calls, "处理函数只执行一次")

	doRequest(r, http.MethodPost, "k2")
	assert.Equal(t, 2, calls, "不同的键分别处理")

	doRequest(r, http.MethodPost, "")
	doRequest(r, http.MethodGet, "k1")
	assert.Equal(t, 4, calls, "无键请求和GET不去重")
}

func TestIdempotency_InFlight(t *testing.T) {
	store := newMemoryStore()
	store.entries[redis.Key(http.MethodPost, "/api/v1/borrows", "k1")] = nil

	r := newIdempotentRouter(store, func(c *gin.Context) {
		t.Fatal("处理中的请求不应该再次执行")
	})

	w := doRequest(r, http.MethodPost, "k1")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"code":40010`)
}

func TestIdempotency_ReleaseOnServerError(t *testing.T) {
	store := newMemoryStore()
	calls := 0
	r := newIdempotentRouter(store, func(c *gin.Context) {
		calls++
		response.Error(c, apperrors.ErrWriteConflict)
	})

	doRequest(r, http.MethodPost, "k1")
	doRequest(r, http.MethodPost, "k1")
	assert.Equal(t, 2, calls, "写冲突后允许用同一个键重试")
	assert.Empty(t, store.entries)
}

func TestIdempotency_StoreFailureFallsThrough(t *testing.T) {
	store := newMemoryStore()
	store.fail = true
	calls := 0
	r := newIdempotentRouter(store, func(c *gin.Context) {
		calls++
		response.Success(c, nil)
	})

	doRequest(r, http.MethodPost, "k1")
	doRequest(r, http.MethodPost, "k1")
	assert.Equal(t, 2, calls)
}

func TestIdempotency_ReleaseOnPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := newMemoryStore()
	calls := 0
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := gin.New()
	r.Use(gin.RecoveryWithWriter(io.Discard))
	r.Use(Idempotency(store, config.IdempotencyConfig{Enabled: true, TTL: time.Hour, LockTTL: time.Minute}, lg))
	r.POST("/api/v1/borrows", func(c *gin.Context) {
		calls++
		panic("boom")
	})

	w := doRequest(r, http.MethodPost, "k1")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, store.entries, "panic后占位应被删除")

	// 同一个键重试不会收到409
	w = doRequest(r, http.MethodPost, "k1")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 2, calls)
}
