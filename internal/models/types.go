// internal/models/types.go
package models

// Tenant is a company as the admin console sees it. Slug is the URL-safe
// identifier embedded in every tenant-scoped route (/t/{slug}/...).
type Tenant struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Slug      string       `json:"slug,omitempty"`
	Code      string       `json:"code,omitempty"`
	CreatedAt string       `json:"createdAt,omitempty"`
	Stats     *TenantStats `json:"stats,omitempty"`
}

type TenantStats struct {
	CustomersCount int     `json:"customersCount"`
	InvoicesCount  int     `json:"invoicesCount"`
	RevenueSum     float64 `json:"revenueSum"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type Customer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type InvoiceItem struct {
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name"`
	Qty       float64 `json:"qty"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal,omitempty"`
}

// Invoice carries both customerName and a nested customer object because the
// upstream API has returned either shape across versions.
type Invoice struct {
	ID           string        `json:"id"`
	Number       string        `json:"number,omitempty"`
	CustomerID   string        `json:"customerId,omitempty"`
	CustomerName string        `json:"customerName,omitempty"`
	Customer     *CustomerRef  `json:"customer,omitempty"`
	Items        []InvoiceItem `json:"items,omitempty"`
	Total        float64       `json:"total,omitempty"`
	Amount       float64       `json:"amount,omitempty"`
	Status       string        `json:"status,omitempty"`
	CreatedAt    string        `json:"createdAt,omitempty"`
	Date         string        `json:"date,omitempty"`
}

type CustomerRef struct {
	Name string `json:"name"`
}

type Payment struct {
	ID            string  `json:"id"`
	InvoiceID     string  `json:"invoiceId,omitempty"`
	InvoiceNumber string  `json:"invoiceNumber,omitempty"`
	Amount        float64 `json:"amount,omitempty"`
	Method        string  `json:"method,omitempty"`
	CreatedAt     string  `json:"createdAt,omitempty"`
	Date          string  `json:"date,omitempty"`
}

type DashboardSummary struct {
	CustomersCount int       `json:"customersCount,omitempty"`
	InvoicesCount  int       `json:"invoicesCount,omitempty"`
	RevenueSum     float64   `json:"revenueSum,omitempty"`
	DueSum         float64   `json:"dueSum,omitempty"`
	RecentInvoices []Invoice `json:"recentInvoices,omitempty"`
	RecentPayments []Payment `json:"recentPayments,omitempty"`
}
