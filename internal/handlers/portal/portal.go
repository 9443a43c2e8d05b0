// internal/handlers/portal/portal.go
package portal

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

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

func (h *Handler) creds(r *http.Request) gateway.Credentials {
	sid := middleware.SIDFromContext(r.Context())
	return gateway.Credentials{
		Admin:  h.sessions.TokenOrEmpty(r.Context(), sid, auth.ScopeAdmin),
		Tenant: h.sessions.TokenOrEmpty(r.Context(), sid, auth.ScopeTenant),
	}
}

// Landing serves the public tenant page at /t/{slug}. It renders without
// a session; an unknown slug is this page's own not-found state.
func (h *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	tenant, err := h.api.GetTenantBySlug(r.Context(), slug)
	if err != nil {
		if gateway.IsNotFound(err) {
			httpserver.JSON(w, http.StatusNotFound, map[string]string{"error": httpserver.MsgTenantNotFound})
			return
		}
		httpserver.JSON(w, http.StatusBadGateway, map[string]string{"error": gateway.Message(err, httpserver.MsgUnexpected)})
		return
	}
	httpserver.JSON(w, http.StatusOK, tenant)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.api.DashboardSummary(r.Context(), h.creds(r))
	if err != nil {
		httpserver.UpstreamError(w, r, h.sessions, err, httpserver.MsgUnexpected)
		return
	}
	httpserver.JSON(w, http.StatusOK, summary)
}

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.api.ListCustomers(r.Context(), h.creds(r))
	if err != nil {
		httpserver.UpstreamError(w, r, h.sessions, err, httpserver.MsgCustomersFailed)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{"customers": customers})
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var body gateway.CreateCustomerParams
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&body); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	customer, err := h.api.CreateCustomer(r.Context(), h.creds(r), body)
	if err != nil {
		httpserver.UpstreamError(w, r, h.sessions, err, httpserver.MsgUnexpected)
		return
	}
	httpserver.JSON(w, http.StatusCreated, customer)
}

func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.api.ListInvoices(r.Context(), h.creds(r))
	if err != nil {
		httpserver.UpstreamError(w, r, h.sessions, err, httpserver.MsgUnexpected)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{"invoices": invoices})
}

func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	invoice, err := h.api.GetInvoice(r.Context(), h.creds(r), id)
	if err != nil {
		if gateway.IsNotFound(err) {
			httpserver.JSON(w, http.StatusNotFound, map[string]string{"error": httpserver.MsgInvoiceNotFound})
			return
		}
		httpserver.UpstreamError(w, r, h.sessions, err, httpserver.MsgUnexpected)
		return
	}
	httpserver.JSON(w, http.StatusOK, invoice)
}

func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var body gateway.CreateInvoiceParams
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&body); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	invoice, err := h.api.CreateInvoice(r.Context(), h.creds(r), body)
	if err != nil {
		httpserver.UpstreamError(w, r, h.sessions, err, httpserver.MsgUnexpected)
		return
	}
	httpserver.JSON(w, http.StatusCreated, invoice)
}

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.api.ListPayments(r.Context(), h.creds(r))
	if err != nil {
		httpserver.UpstreamError(w, r, h.sessions, err, httpserver.MsgUnexpected)
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]any{"payments": payments})
}

func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var body gateway.CreatePaymentParams
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&body); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	payment, err := h.api.CreatePayment(r.Context(), h.creds(r), body)
	if err != nil {
		httpserver.UpstreamError(w, r, h.sessions, err, httpserver.MsgUnexpected)
		return
	}
	httpserver.JSON(w, http.StatusCreated, payment)
}
