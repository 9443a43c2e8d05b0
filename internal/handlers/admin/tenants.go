// internal/handlers/admin/tenants.go
package admin

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Gamgom29/multi-tanent-front/internal/auth"
	"github.com/Gamgom29/multi-tanent-front/internal/gateway"
	"github.com/Gamgom29/multi-tanent-front/internal/httpserver"
	"github.com/Gamgom29/multi-tanent-front/internal/middleware"
)

// slugRe is the shape every tenant identifier must have: lowercase
// letters, digits, and hyphens.
var slugRe = regexp.MustCompile(`^[a-z0-9-]+$`)

type Handler struct {
	api      *gateway.Client
	sessions *auth.Manager
}

func New(api *gateway.Client, sessions *auth.Manager) *Handler {
	return &Handler{api: api, sessions: sessions}
}

func (h *Handler) creds(r *http.Request) gateway.Credentials {
	sid := middleware.SIDFromContext(r.Context())
	return gateway.Credentials{
		Admin:  h.sessions.TokenOrEmpty(r.Context(), sid, auth.ScopeAdmin),
		Tenant: h.sessions.TokenOrEmpty(r.Context(), sid, auth.ScopeTenant),
	}
}

// Home is the console landing view; it loads nothing upstream.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	httpserver.JSON(w, http.StatusOK, map[string]any{"ok": true})
}

// ListTenants proxies the tenant list with search and paging passthrough.
func (h *Handler) ListTenants(w http.ResponseWriter, r *http.Request) {
	p := gateway.TenantListParams{Search: strings.TrimSpace(r.URL.Query().Get("search"))}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		p.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		p.Limit = v
	}

	res, err := h.api.ListTenants(r.Context(), h.creds(r), p)
	if err != nil {
		httpserver.UpstreamError(w, r, h.sessions, err, httpserver.MsgUnexpected)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{
		"tenants":    res.Items(),
		"pagination": res.Pagination,
	})
}

func (h *Handler) GetTenant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	tenant, err := h.api.GetTenant(r.Context(), h.creds(r), id)
	if err != nil {
		if gateway.IsNotFound(err) {
			httpserver.JSON(w, http.StatusNotFound, map[string]string{"error": httpserver.MsgTenantNotFound})
			return
		}
		httpserver.UpstreamError(w, r, h.sessions, err, httpserver.MsgUnexpected)
		return
	}
	httpserver.JSON(w, http.StatusOK, tenant)
}

func (h *Handler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var body gateway.CreateTenantParams
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&body); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	// Same normalization the console form applies.
	body.Slug = strings.ToLower(strings.Join(strings.Fields(body.Slug), "-"))
	if body.Name == "" || !slugRe.MatchString(body.Slug) {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "معرّف الشركة غير صالح"})
		return
	}

	tenant, err := h.api.CreateTenant(r.Context(), h.creds(r), body)
	if err != nil {
		httpserver.UpstreamError(w, r, h.sessions, err, httpserver.MsgUnexpected)
		return
	}
	httpserver.JSON(w, http.StatusCreated, tenant)
}
