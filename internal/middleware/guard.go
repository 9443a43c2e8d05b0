// internal/middleware/guard.go
package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/Gamgom29/multi-tanent-front/internal/auth"
)

var (
	bareTenantRoot = regexp.MustCompile(`^/t/[^/]+$`)
	tenantLogin    = regexp.MustCompile(`^/t/[^/]+/login$`)
)

// GuardTarget classifies a request path against cookie presence and
// returns the redirect target, if any. Rules are evaluated in order,
// first match wins:
//
//   - /admin... without an admin cookie      -> /admin/login
//   - /admin/login with an admin cookie      -> /admin
//   - /t/{slug}/... without a tenant cookie  -> /t/{slug}/login
//   - /t/{slug}/login with a tenant cookie   -> /t/{slug}/dashboard
//   - anything else                          -> continue
//
// The bare tenant root /t/{slug} is the public landing page and always
// renders. The slug is taken positionally; unknown slugs redirect to a
// login page whose own data load surfaces the not-found state.
func GuardTarget(path string, hasAdmin, hasTenant bool) (string, bool) {
	if strings.HasPrefix(path, "/admin") && path != "/admin/login" {
		if !hasAdmin {
			return "/admin/login", true
		}
		return "", false
	}

	if path == "/admin/login" {
		if hasAdmin {
			return "/admin", true
		}
		return "", false
	}

	if strings.HasPrefix(path, "/t/") && !strings.Contains(path, "/login") && !bareTenantRoot.MatchString(path) {
		if !hasTenant {
			return "/t/" + pathSlug(path) + "/login", true
		}
		return "", false
	}

	if tenantLogin.MatchString(path) && hasTenant {
		return "/t/" + pathSlug(path) + "/dashboard", true
	}

	return "", false
}

// pathSlug is the second path segment, positionally.
func pathSlug(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) > 2 {
		return parts[2]
	}
	return ""
}

// Guard runs once per incoming navigation, before any handler. Cookie
// presence is taken as proof of authentication; content is never
// inspected, the upstream API re-validates on the first real call.
func Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hasAdmin := auth.HasTokenCookie(r, auth.ScopeAdmin)
		hasTenant := auth.HasTokenCookie(r, auth.ScopeTenant)
		if target, ok := GuardTarget(r.URL.Path, hasAdmin, hasTenant); ok {
			http.Redirect(w, r, target, http.StatusTemporaryRedirect)
			return
		}
		next.ServeHTTP(w, r)
	})
}
