// internal/auth/token.go
package auth

import "net/http"

// Scope names one of the two independent sessions a browser can hold.
// An operator may be logged into the admin console and a tenant portal at
// the same time; the two tokens never stand in for each other.
type Scope string

const (
	ScopeAdmin  Scope = "admin"
	ScopeTenant Scope = "tenant"
)

// TokenMaxAge is the cookie lifetime in seconds. Expiry is enforced only
// here; neither the durable store nor the route guard inspects token age.
const TokenMaxAge = 86400

// SIDCookie identifies the browser session the durable store is keyed by.
const SIDCookie = "sid"

var scopes = []Scope{ScopeAdmin, ScopeTenant}

// CookieName returns the mirror cookie for the scope: admin_token or
// tenant_token. These are also the durable storage keys.
func (s Scope) CookieName() string {
	return string(s) + "_token"
}

func SetTokenCookie(w http.ResponseWriter, scope Scope, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     scope.CookieName(),
		Value:    token,
		Path:     "/",
		MaxAge:   TokenMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearTokenCookie(w http.ResponseWriter, scope Scope, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     scope.CookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// HasTokenCookie reports cookie presence only. A stale-but-present cookie
// passes; the upstream API is the authority on first real request.
func HasTokenCookie(r *http.Request, scope Scope) bool {
	c, err := r.Cookie(scope.CookieName())
	return err == nil && c.Value != ""
}
