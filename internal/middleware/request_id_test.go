package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(RequestIDFromContext(r.Context())))
	})

	t.Run("generates when absent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequestID("")(echo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		rid := rec.Header().Get("X-Request-ID")
		require.NotEmpty(t, rid)
		require.Equal(t, rid, rec.Body.String())
	})

	t.Run("reuses inbound ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		rec := httptest.NewRecorder()
		RequestID("")(echo).ServeHTTP(rec, req)

		require.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
		require.Equal(t, "abc-123", rec.Body.String())
	})

	t.Run("replaces oversized inbound ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", strings.Repeat("a", 200))
		rec := httptest.NewRecorder()
		RequestID("")(echo).ServeHTTP(rec, req)

		got := rec.Header().Get("X-Request-ID")
		require.NotEmpty(t, got)
		require.Less(t, len(got), 64)
	})

	t.Run("custom header name", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "corr-9")
		rec := httptest.NewRecorder()
		RequestID("X-Correlation-ID")(echo).ServeHTTP(rec, req)

		require.Equal(t, "corr-9", rec.Header().Get("X-Correlation-ID"))
		require.Empty(t, rec.Header().Get("X-Request-ID"))
		require.Equal(t, "corr-9", rec.Body.String())
	})
}
