// internal/gateway/api.go
package gateway

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/Gamgom29/multi-tanent-front/internal/models"
)

// LoginResult tolerates the backend's historical token field names; the
// first non-empty one wins.
type LoginResult struct {
	AccessTokenCamel string `json:"accessToken"`
	AccessTokenSnake string `json:"access_token"`
	TokenPlain       string `json:"token"`
}

func (r LoginResult) Token() string {
	switch {
	case r.AccessTokenCamel != "":
		return r.AccessTokenCamel
	case r.AccessTokenSnake != "":
		return r.AccessTokenSnake
	default:
		return r.TokenPlain
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) AdminLogin(ctx context.Context, email, password string) (LoginResult, error) {
	var res LoginResult
	err := c.post(ctx, Credentials{}, "/admin/auth/login", loginRequest{Email: email, Password: password}, &res)
	return res, err
}

func (c *Client) TenantLogin(ctx context.Context, email, password string) (LoginResult, error) {
	var res LoginResult
	err := c.post(ctx, Credentials{}, "/auth/login", loginRequest{Email: email, Password: password}, &res)
	return res, err
}

// ---------------- Admin console ----------------

type TenantListParams struct {
	Search string
	Page   int
	Limit  int
}

// TenantList carries one page of the admin tenant listing. The backend
// has shipped three shapes for this reply: {items, meta} (current), a
// bare array, and {data} with flat pagination fields. All three decode
// here so the console keeps rendering through backend upgrades.
type TenantList struct {
	Tenants    []models.Tenant
	Pagination models.Pagination
}

func (l *TenantList) UnmarshalJSON(b []byte) error {
	var arr []models.Tenant
	if err := json.Unmarshal(b, &arr); err == nil {
		l.Tenants = arr
		l.Pagination = models.Pagination{Total: len(arr), TotalPages: 1}
		return nil
	}

	var env struct {
		Items []models.Tenant `json:"items"`
		Meta  *struct {
			Page       int `json:"page"`
			Limit      int `json:"limit"`
			TotalItems int `json:"totalItems"`
			TotalPages int `json:"totalPages"`
		} `json:"meta"`
		Data       []models.Tenant `json:"data"`
		Page       int             `json:"page"`
		Limit      int             `json:"limit"`
		Total      int             `json:"total"`
		TotalPages int             `json:"totalPages"`
	}
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}

	switch {
	case env.Items != nil:
		l.Tenants = env.Items
		l.Pagination = models.Pagination{Total: len(env.Items), TotalPages: 1}
		if m := env.Meta; m != nil {
			l.Pagination = models.Pagination{Page: m.Page, Limit: m.Limit, Total: m.TotalItems, TotalPages: m.TotalPages}
		}
	case env.Data != nil:
		l.Tenants = env.Data
		l.Pagination = models.Pagination{Page: env.Page, Limit: env.Limit, Total: env.Total, TotalPages: env.TotalPages}
	default:
		l.Tenants = nil
		return nil
	}
	if l.Pagination.Total == 0 {
		l.Pagination.Total = len(l.Tenants)
	}
	if l.Pagination.TotalPages == 0 {
		l.Pagination.TotalPages = 1
	}
	return nil
}

// Items returns the decoded page, whatever shape it arrived in.
func (l TenantList) Items() []models.Tenant {
	return l.Tenants
}

func (c *Client) ListTenants(ctx context.Context, creds Credentials, p TenantListParams) (TenantList, error) {
	q := url.Values{}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	var res TenantList
	err := c.get(ctx, creds, "/admin/tenants", q, &res)
	return res, err
}

func (c *Client) GetTenant(ctx context.Context, creds Credentials, id string) (models.Tenant, error) {
	var res models.Tenant
	err := c.get(ctx, creds, "/admin/tenants/"+url.PathEscape(id), nil, &res)
	return res, err
}

type CreateTenantParams struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (c *Client) CreateTenant(ctx context.Context, creds Credentials, p CreateTenantParams) (models.Tenant, error) {
	var res models.Tenant
	err := c.post(ctx, creds, "/admin/tenants", p, &res)
	return res, err
}

// ---------------- Public ----------------

func (c *Client) GetTenantBySlug(ctx context.Context, slug string) (models.Tenant, error) {
	var res models.Tenant
	err := c.get(ctx, Credentials{}, "/tenants/by-slug/"+url.PathEscape(slug), nil, &res)
	return res, err
}

// ---------------- Tenant portal ----------------

// resourceList decodes collection replies that arrive as a bare array,
// wrapped under "data", or wrapped under the resource's own key
// ("customers", "invoices", "payments"). An object with none of those
// keys decodes as empty rather than failing.
type resourceList[T any] struct {
	key   string
	items []T
}

func (l *resourceList[T]) UnmarshalJSON(b []byte) error {
	if err := json.Unmarshal(b, &l.items); err == nil {
		return nil
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return err
	}
	for _, k := range []string{"data", l.key} {
		if raw, ok := wrapped[k]; ok && string(raw) != "null" {
			return json.Unmarshal(raw, &l.items)
		}
	}
	l.items = nil
	return nil
}

func (c *Client) DashboardSummary(ctx context.Context, creds Credentials) (models.DashboardSummary, error) {
	var res models.DashboardSummary
	err := c.get(ctx, creds, "/dashboard", nil, &res)
	return res, err
}

func (c *Client) ListCustomers(ctx context.Context, creds Credentials) ([]models.Customer, error) {
	res := resourceList[models.Customer]{key: "customers"}
	err := c.get(ctx, creds, "/customers", nil, &res)
	return res.items, err
}

type CreateCustomerParams struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func (c *Client) CreateCustomer(ctx context.Context, creds Credentials, p CreateCustomerParams) (models.Customer, error) {
	var res models.Customer
	err := c.post(ctx, creds, "/customers", p, &res)
	return res, err
}

func (c *Client) ListInvoices(ctx context.Context, creds Credentials) ([]models.Invoice, error) {
	res := resourceList[models.Invoice]{key: "invoices"}
	err := c.get(ctx, creds, "/invoices", nil, &res)
	return res.items, err
}

func (c *Client) GetInvoice(ctx context.Context, creds Credentials, id string) (models.Invoice, error) {
	var res models.Invoice
	err := c.get(ctx, creds, "/invoices/"+url.PathEscape(id), nil, &res)
	return res, err
}

type CreateInvoiceParams struct {
	CustomerID string               `json:"customerId"`
	Items      []models.InvoiceItem `json:"items"`
}

func (c *Client) CreateInvoice(ctx context.Context, creds Credentials, p CreateInvoiceParams) (models.Invoice, error) {
	var res models.Invoice
	err := c.post(ctx, creds, "/invoices", p, &res)
	return res, err
}

func (c *Client) ListPayments(ctx context.Context, creds Credentials) ([]models.Payment, error) {
	res := resourceList[models.Payment]{key: "payments"}
	err := c.get(ctx, creds, "/payments", nil, &res)
	return res.items, err
}

type CreatePaymentParams struct {
	InvoiceID string  `json:"invoiceId"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method,omitempty"`
}

func (c *Client) CreatePayment(ctx context.Context, creds Credentials, p CreatePaymentParams) (models.Payment, error) {
	var res models.Payment
	err := c.post(ctx, creds, "/payments", p, &res)
	return res, err
}
