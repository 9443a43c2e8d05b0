// internal/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Gamgom29/multi-tanent-front/internal/auth"
	"github.com/Gamgom29/multi-tanent-front/internal/gateway"
	"github.com/Gamgom29/multi-tanent-front/internal/handlers/admin"
	"github.com/Gamgom29/multi-tanent-front/internal/handlers/authflow"
	"github.com/Gamgom29/multi-tanent-front/internal/handlers/portal"
	"github.com/Gamgom29/multi-tanent-front/internal/httpserver"
	"github.com/Gamgom29/multi-tanent-front/internal/middleware"
)

// RegisterRoutes mounts the whole route surface. The route guard covers
// the /admin and /t subtrees only, matching the edge matcher of the
// original deployment.
func RegisterRoutes(mux *chi.Mux, api *gateway.Client, sessions *auth.Manager) {
	flows := authflow.New(api, sessions)
	console := admin.New(api, sessions)
	tenant := portal.New(api, sessions)

	mux.Route("/admin", func(sr chi.Router) {
		sr.Use(middleware.Guard)

		sr.Get("/", console.Home)
		sr.Get("/login", flows.AdminLoginPage)
		sr.Post("/login", flows.AdminLoginSubmit)
		sr.Post("/logout", flows.AdminLogout)

		sr.Get("/tenants", console.ListTenants)
		sr.Post("/tenants", console.CreateTenant)
		sr.Get("/tenants/new", newFormView)
		sr.Get("/tenants/{id}", console.GetTenant)
	})

	mux.Route("/t/{slug}", func(sr chi.Router) {
		sr.Use(middleware.Guard)

		sr.Get("/", tenant.Landing)
		sr.Get("/login", flows.TenantLoginPage)
		sr.Post("/login", flows.TenantLoginSubmit)
		sr.Post("/logout", flows.TenantLogout)

		sr.Get("/dashboard", tenant.Dashboard)
		sr.Get("/customers", tenant.ListCustomers)
		sr.Post("/customers", tenant.CreateCustomer)
		sr.Get("/invoices", tenant.ListInvoices)
		sr.Post("/invoices", tenant.CreateInvoice)
		sr.Get("/invoices/new", newFormView)
		sr.Get("/invoices/{id}", tenant.GetInvoice)
		sr.Get("/payments", tenant.ListPayments)
		sr.Post("/payments", tenant.CreatePayment)
	})
}

// newFormView backs the static create-form pages; they load nothing.
func newFormView(w http.ResponseWriter, r *http.Request) {
	httpserver.JSON(w, http.StatusOK, map[string]any{"ok": true})
}
