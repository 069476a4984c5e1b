package ratelimit

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddlewareRejectsOverLimit(t *testing.T) {
	store := NewMemoryStore()
	mw := NewMiddleware(store, slog.Default(), nil)
	h := mw.Limit("api", 2, time.Minute)(okHandler())

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/bills", nil)
		req.RemoteAddr = "203.0.113.9:1234"
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/bills", nil)
	req.RemoteAddr = "203.0.113.9:1234"
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "rate_limited")
}

func TestMiddlewareScopesSeparateClients(t *testing.T) {
	store := NewMemoryStore()
	mw := NewMiddleware(store, slog.Default(), nil)
	h := mw.Limit("api", 1, time.Minute)(okHandler())

	first := httptest.NewRequest(http.MethodGet, "/", nil)
	first.RemoteAddr = "203.0.113.9:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, first)
	assert.Equal(t, http.StatusOK, rec.Code)

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "198.51.100.7:9999"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}

type failingStore struct{}

func (failingStore) Allow(_ context.Context, _ string, _ int, _ time.Duration) (*Result, error) {
	return nil, errors.New("backend down")
}

func TestMiddlewareFailsOpenOnStoreError(t *testing.T) {
	mw := NewMiddleware(failingStore{}, slog.Default(), nil)
	h := mw.Limit("api", 1, time.Minute)(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
