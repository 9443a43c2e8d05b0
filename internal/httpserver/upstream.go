// internal/httpserver/upstream.go
package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Gamgom29/multi-tanent-front/internal/auth"
	"github.com/Gamgom29/multi-tanent-front/internal/gateway"
	"github.com/Gamgom29/multi-tanent-front/internal/middleware"
)

// UpstreamError renders an error from the gateway client. A 401 or 403 is
// handled once here for every page: both tokens are cleared from both
// locations, a one-shot message is stashed, and the browser is sent to
// the login page matching the path it is currently on. The slug for
// tenant paths is taken positionally from that path, not from the failed
// request. Paths under neither area fall through to plain rendering, as
// does every other status.
func UpstreamError(w http.ResponseWriter, r *http.Request, sessions *auth.Manager, err error, fallback string) {
	if gateway.IsAuthFailure(err) {
		sid := middleware.SIDFromContext(r.Context())
		if clearErr := sessions.ClearAll(r.Context(), w, sid); clearErr != nil {
			log.Warn().Err(clearErr).Msg("session clear after auth failure")
		}

		path := r.URL.Path
		if strings.HasPrefix(path, "/admin") {
			auth.SetFlash(w, MsgUnauthorized)
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		if strings.HasPrefix(path, "/t/") {
			parts := strings.Split(path, "/")
			slug := ""
			if len(parts) > 2 {
				slug = parts[2]
			}
			auth.SetFlash(w, MsgUnauthorized)
			http.Redirect(w, r, "/t/"+slug+"/login", http.StatusSeeOther)
			return
		}
	}

	status := http.StatusBadGateway
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.StatusCode
	}
	JSON(w, status, map[string]string{"error": gateway.Message(err, fallback)})
}
