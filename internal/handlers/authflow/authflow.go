// internal/handlers/authflow/authflow.go
package authflow

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Gamgom29/multi-tanent-front/internal/auth"
	"github.com/Gamgom29/multi-tanent-front/internal/gateway"
	"github.com/Gamgom29/multi-tanent-front/internal/httpserver"
	"github.com/Gamgom29/multi-tanent-front/internal/middleware"
)

type Handler struct {
	api      *gateway.Client
	sessions *auth.Manager
}

func New(api *gateway.Client, sessions *auth.Manager) *Handler {
	return &Handler{api: api, sessions: sessions}
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// readCredentials accepts either a JSON body or a form post.
func readCredentials(r *http.Request) (credentialsBody, error) {
	var b credentialsBody
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		err := json.NewDecoder(r.Body).Decode(&b)
		return b, err
	}
	if err := r.ParseForm(); err != nil {
		return b, err
	}
	b.Email = r.PostFormValue("email")
	b.Password = r.PostFormValue("password")
	return b, nil
}

// AdminLoginPage renders the admin login view. A message stashed by an
// earlier authorization failure is read and cleared here so it shows
// exactly once.
func (h *Handler) AdminLoginPage(w http.ResponseWriter, r *http.Request) {
	msg := auth.TakeFlash(w, r)
	httpserver.JSON(w, http.StatusOK, map[string]string{"error": msg})
}

func (h *Handler) AdminLoginSubmit(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, auth.ScopeAdmin, "/admin")
}

// TenantLoginPage renders the tenant login view for /t/{slug}/login.
func (h *Handler) TenantLoginPage(w http.ResponseWriter, r *http.Request) {
	msg := auth.TakeFlash(w, r)
	httpserver.JSON(w, http.StatusOK, map[string]string{
		"slug":  chi.URLParam(r, "slug"),
		"error": msg,
	})
}

func (h *Handler) TenantLoginSubmit(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	h.login(w, r, auth.ScopeTenant, "/t/"+slug+"/dashboard")
}

// login exchanges credentials upstream, commits the returned token to
// both storage locations, and redirects into the protected area. A reply
// without any recognised token field commits nothing and renders the
// fixed error; an upstream rejection renders the backend message when it
// sent one.
func (h *Handler) login(w http.ResponseWriter, r *http.Request, scope auth.Scope, dest string) {
	body, err := readCredentials(r)
	if err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": httpserver.MsgBadCredentials})
		return
	}

	var res gateway.LoginResult
	if scope == auth.ScopeAdmin {
		res, err = h.api.AdminLogin(r.Context(), body.Email, body.Password)
	} else {
		res, err = h.api.TenantLogin(r.Context(), body.Email, body.Password)
	}
	if err != nil {
		// A rejection keeps the backend's status and message; a transport
		// failure never reached the backend and is not the caller's fault.
		var apiErr *gateway.APIError
		if errors.As(err, &apiErr) {
			httpserver.JSON(w, apiErr.StatusCode, map[string]string{
				"error": gateway.Message(err, httpserver.MsgBadCredentials),
			})
			return
		}
		log.Warn().Err(err).Str("scope", string(scope)).Msg("login exchange failed")
		httpserver.JSON(w, http.StatusBadGateway, map[string]string{"error": httpserver.MsgUnexpected})
		return
	}

	token := res.Token()
	if token == "" {
		httpserver.JSON(w, http.StatusBadGateway, map[string]string{"error": httpserver.MsgNoAccessToken})
		return
	}

	sid := middleware.SIDFromContext(r.Context())
	if err := h.sessions.SetToken(r.Context(), w, sid, scope, token); err != nil {
		log.Error().Err(err).Str("scope", string(scope)).Msg("token commit failed")
		httpserver.JSON(w, http.StatusInternalServerError, map[string]string{"error": httpserver.MsgUnexpected})
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// AdminLogout clears both scopes from both locations and returns to the
// admin login page.
func (h *Handler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	h.logout(w, r, "/admin/login")
}

func (h *Handler) TenantLogout(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	h.logout(w, r, "/t/"+slug+"/login")
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request, dest string) {
	sid := middleware.SIDFromContext(r.Context())
	if err := h.sessions.ClearAll(r.Context(), w, sid); err != nil {
		log.Warn().Err(err).Msg("logout clear failed")
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
