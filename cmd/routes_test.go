package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fabhomes/internal/config"
	"fabhomes/internal/models"
	"fabhomes/internal/services"
)

func testApp(t *testing.T) *application {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return initializeApp(nil, log, config.Default(), dependencies{})
}

func serve(app *application, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.routes().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := serve(testApp(t), http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestCallerRequiredRoutesReject(t *testing.T) {
	app := testApp(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/properties"},
		{http.MethodPatch, "/properties/8d3e1c2a-5b7f-4a1e-9c0d-2f6b8a4e7d10"},
		{http.MethodGet, "/favorites"},
		{http.MethodPost, "/favorites/toggle"},
		{http.MethodGet, "/transactions"},
		{http.MethodGet, "/users/me"},
	} {
		rec := serve(app, tc.method, tc.path)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestUnknownRoute(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, serve(testApp(t), http.MethodGet, "/listings").Code)
}

func TestRecoverPanic(t *testing.T) {
	// without a database the repository call panics
	rec := serve(testApp(t), http.MethodGet, "/analytics")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "close", rec.Header().Get("Connection"))
	assert.Contains(t, rec.Body.String(), "internal_server_error")
}

type countingStore struct{ calls atomic.Int32 }

func (s *countingStore) Counts(context.Context) (models.Analytics, error) {
	n := s.calls.Add(1)
	return models.Analytics{TotalProperties: int(n)}, nil
}

type memoryCache struct{ writes atomic.Int32 }

func (c *memoryCache) GetJSON(context.Context, string, interface{}) (bool, error) { return false, nil }

func (c *memoryCache) SetJSON(context.Context, string, interface{}, time.Duration) error {
	c.writes.Add(1)
	return nil
}

func TestAnalyticsRefresher(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	store, cache := &countingStore{}, &memoryCache{}
	ttl := 40 * time.Millisecond
	app := &application{log: log, analytics: &services.AnalyticsService{Store: store, Cache: cache, TTL: ttl, Log: log}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app.startAnalyticsRefresher(ctx, ttl)

	require.Eventually(t, func() bool { return cache.writes.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestAnalyticsRefresherNeedsCache(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	store := &countingStore{}
	app := &application{log: log, analytics: &services.AnalyticsService{Store: store, Log: log}}

	app.startAnalyticsRefresher(context.Background(), time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, store.calls.Load())
}
