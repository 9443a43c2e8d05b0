// internal/auth/flash.go
package auth

import (
	"net/http"
	"net/url"
)

// FlashCookie carries a single localized message across one navigation,
// typically the authorization-failure notice set before redirecting to a
// login page. It survives the redirect but not a reload.
const FlashCookie = "auth_error"

func SetFlash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookie,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// TakeFlash returns the stashed message, clearing it so a second read
// comes back empty.
func TakeFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(FlashCookie)
	if err != nil || c.Value == "" {
		return ""
	}
	msg, err := url.QueryUnescape(c.Value)
	if err != nil {
		msg = ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return msg
}
