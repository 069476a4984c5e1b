package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDPassthrough(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "req-123", seen)
}

func TestClientIPFromForwardedFor(t *testing.T) {
	var seen string
	h := ClientIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetClientIP(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "203.0.113.9", seen)
}

func TestClientIPFromRemoteAddr(t *testing.T) {
	var seen string
	h := ClientIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetClientIP(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.7:52100"
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "198.51.100.7", seen)
}

func TestContentTypeJSONRejectsForm(t *testing.T) {
	h := ContentTypeJSON(noopHandler())

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestContentTypeJSONAllowsCharsetSuffix(t *testing.T) {
	h := ContentTypeJSON(noopHandler())

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdminToken(t *testing.T) {
	logger := slog.Default()

	t.Run("missing token rejected", func(t *testing.T) {
		h := RequireAdminToken("sekrit", logger)(noopHandler())
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("matching token passes", func(t *testing.T) {
		h := RequireAdminToken("sekrit", logger)(noopHandler())
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("X-Admin-Token", "sekrit")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unconfigured token hides the route", func(t *testing.T) {
		h := RequireAdminToken("", logger)(noopHandler())
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("X-Admin-Token", "anything")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
