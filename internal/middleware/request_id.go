package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const defaultRequestIDHeader = "X-Request-ID"

type ctxKeyRequestID struct{}

// RequestID tags every request with a correlation ID and echoes it on
// the response, so a portal error can be matched against gateway logs.
// An inbound ID under the given header is reused when it looks sane;
// anything missing or oversized is replaced with a fresh UUID. An empty
// header name selects X-Request-ID.
func RequestID(header string) func(http.Handler) http.Handler {
	if header == "" {
		header = defaultRequestIDHeader
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := r.Header.Get(header)
			if rid == "" || len(rid) > 64 {
				rid = uuid.NewString()
			}
			ctx := context.WithValue(r.Context(), ctxKeyRequestID{}, rid)
			w.Header().Set(header, rid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext returns the ID set by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	rid, _ := ctx.Value(ctxKeyRequestID{}).(string)
	return rid
}
