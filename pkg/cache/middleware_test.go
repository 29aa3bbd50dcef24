package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeCache is an in-process Service with injectable failures.
type fakeCache struct {
	mu        sync.Mutex
	entries   map[string][]byte
	getErr    error
	setErr    error
	available bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}, available: true}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return f.getErr
	}
	data, ok := f.entries[key]
	if !ok {
		return ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = data
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, key)
	return nil
}

func (f *fakeCache) Available() bool { return f.available }

func (f *fakeCache) Ping(ctx context.Context) error { return nil }

func (f *fakeCache) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

func newCachedRouter(svc Service, originCalls *int, status int) *gin.Engine {
	engine := gin.New()
	group := engine.Group("/flights")
	group.Use(ReadCache(svc, "skybook:flights:read", time.Minute))
	group.GET("", func(c *gin.Context) {
		*originCalls++
		c.JSON(status, gin.H{"flights": []string{"SB101"}, "calls": *originCalls})
	})
	return engine
}

func doGet(t *testing.T, engine *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	engine.ServeHTTP(rec, req)
	return rec
}

func TestReadCacheHitServesStoredBody(t *testing.T) {
	fake := newFakeCache()
	originCalls := 0
	engine := newCachedRouter(fake, &originCalls, http.StatusOK)

	first := doGet(t, engine, "/flights?origin=CGK")
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, 1, originCalls)

	// The store happens in a detached goroutine after the response.
	require.Eventually(t, func() bool { return fake.size() == 1 }, time.Second, 5*time.Millisecond)

	second := doGet(t, engine, "/flights?origin=CGK")
	require.Equal(t, http.StatusOK, second.Code)
	require.Equal(t, 1, originCalls, "hit must not reach the origin handler")
	require.Equal(t, first.Body.Bytes(), second.Body.Bytes(), "replayed body must be byte-identical")
}

func TestReadCacheHitReplaysAllHeaders(t *testing.T) {
	fake := newFakeCache()
	originCalls := 0
	engine := gin.New()
	engine.GET("/flights", ReadCache(fake, "skybook:flights:read", time.Minute), func(c *gin.Context) {
		originCalls++
		c.Header("X-Total-Count", "6")
		c.Header("ETag", `"v1"`)
		c.JSON(http.StatusOK, gin.H{"flights": []string{"SB101"}})
	})

	first := doGet(t, engine, "/flights")
	require.Eventually(t, func() bool { return fake.size() == 1 }, time.Second, 5*time.Millisecond)

	second := doGet(t, engine, "/flights")
	require.Equal(t, 1, originCalls)
	require.Equal(t, first.Header(), second.Header(), "hit must carry every header the origin set")
	require.Equal(t, "6", second.Header().Get("X-Total-Count"))
	require.Equal(t, `"v1"`, second.Header().Get("ETag"))
}

func TestReadCacheKeyIncludesQuery(t *testing.T) {
	fake := newFakeCache()
	originCalls := 0
	engine := newCachedRouter(fake, &originCalls, http.StatusOK)

	doGet(t, engine, "/flights?origin=CGK")
	require.Eventually(t, func() bool { return fake.size() == 1 }, time.Second, 5*time.Millisecond)

	doGet(t, engine, "/flights?origin=DPS")
	require.Equal(t, 2, originCalls, "different query must be a different cache entry")
	require.Eventually(t, func() bool { return fake.size() == 2 }, time.Second, 5*time.Millisecond)
}

func TestReadCacheFailsOpenOnBackendError(t *testing.T) {
	fake := newFakeCache()
	fake.getErr = errors.New("connection refused")
	originCalls := 0
	engine := newCachedRouter(fake, &originCalls, http.StatusOK)

	for i := 0; i < 3; i++ {
		rec := doGet(t, engine, "/flights")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	require.Equal(t, 3, originCalls, "every request must reach the origin when the cache errors")
}

func TestReadCacheWriteFailureDoesNotAffectResponse(t *testing.T) {
	fake := newFakeCache()
	fake.setErr = errors.New("connection refused")
	originCalls := 0
	engine := newCachedRouter(fake, &originCalls, http.StatusOK)

	rec := doGet(t, engine, "/flights")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, originCalls)
}

func TestReadCacheSkipsNon200Responses(t *testing.T) {
	fake := newFakeCache()
	originCalls := 0
	engine := newCachedRouter(fake, &originCalls, http.StatusNotFound)

	doGet(t, engine, "/flights")
	doGet(t, engine, "/flights")

	require.Equal(t, 2, originCalls)
	require.Equal(t, 0, fake.size(), "error responses must not be cached")
}

func TestReadCacheSkipsUnavailableBackend(t *testing.T) {
	fake := newFakeCache()
	fake.available = false
	originCalls := 0
	engine := newCachedRouter(fake, &originCalls, http.StatusOK)

	doGet(t, engine, "/flights")
	doGet(t, engine, "/flights")

	require.Equal(t, 2, originCalls)
	require.Equal(t, 0, fake.size())
}

func TestReadCacheIgnoresNonGET(t *testing.T) {
	fake := newFakeCache()
	engine := gin.New()
	calls := 0
	engine.POST("/flights", ReadCache(fake, "skybook:flights:read", time.Minute), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/flights", nil)
		engine.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	require.Equal(t, 2, calls)
	require.Equal(t, 0, fake.size())
}
