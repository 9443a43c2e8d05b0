// internal/middleware/session_id.go
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/Gamgom29/multi-tanent-front/internal/auth"
)

type ctxKeySID struct{}

// SessionID ensures every browser carries a sid cookie identifying its
// slot in the durable token store. The cookie outlives the token cookies
// so a browser keeps the same slot across logins.
func SessionID(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := ""
			if c, err := r.Cookie(auth.SIDCookie); err == nil {
				sid = c.Value
			}
			if sid == "" {
				sid = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     auth.SIDCookie,
					Value:    sid,
					Path:     "/",
					MaxAge:   365 * 24 * 3600,
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(WithSID(r.Context(), sid)))
		})
	}
}

// WithSID returns ctx carrying the browser session id.
func WithSID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, ctxKeySID{}, sid)
}

func SIDFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(ctxKeySID{}).(string)
	return sid
}
