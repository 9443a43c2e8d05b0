package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/Gamgom29/multi-tanent-front/internal/auth"
	"github.com/Gamgom29/multi-tanent-front/internal/gateway"
	"github.com/Gamgom29/multi-tanent-front/internal/middleware"
)

// newTestApp wires the production router against a stub upstream API.
func newTestApp(t *testing.T, upstream http.Handler) (*chi.Mux, *auth.Manager) {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	store, err := auth.NewSQLiteStore(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	sessions := auth.NewManager(store, false)

	mux := chi.NewRouter()
	mux.Use(middleware.SessionID(false))
	RegisterRoutes(mux, gateway.New(srv.URL), sessions)
	return mux, sessions
}

func respCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func loginForm(path string) *http.Request {
	form := url.Values{"email": {"a@b.c"}, "password": {"pw"}}
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestAdminLogin_CommitsTokenAndRedirects(t *testing.T) {
	mux, sessions := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accessToken":"X"}`))
	}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, loginForm("/admin/login"))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/admin", rec.Header().Get("Location"))

	c := respCookie(rec, "admin_token")
	require.NotNil(t, c)
	require.Equal(t, "X", c.Value)
	require.Equal(t, auth.TokenMaxAge, c.MaxAge)

	sid := respCookie(rec, "sid")
	require.NotNil(t, sid)
	require.Equal(t, "X", sessions.TokenOrEmpty(context.Background(), sid.Value, auth.ScopeAdmin))
}

func TestTenantLogin_RedirectsToDashboard(t *testing.T) {
	mux, _ := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"Y"}`))
	}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, loginForm("/t/acme/login"))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/t/acme/dashboard", rec.Header().Get("Location"))
	require.NotNil(t, respCookie(rec, "tenant_token"))
}

func TestLogin_EmptyResponseCommitsNothing(t *testing.T) {
	mux, sessions := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, loginForm("/admin/login"))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Contains(t, rec.Body.String(), "لم يتم استلام رمز الوصول")
	require.Empty(t, rec.Header().Get("Location"))
	require.Nil(t, respCookie(rec, "admin_token"))

	sid := respCookie(rec, "sid")
	require.NotNil(t, sid)
	require.False(t, sessions.IsAuthenticated(context.Background(), sid.Value, auth.ScopeAdmin))
}

func TestLogin_UpstreamRejectionShowsBackendMessage(t *testing.T) {
	mux, _ := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"حساب موقوف"}`))
	}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, loginForm("/t/acme/login"))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "حساب موقوف")
	require.Nil(t, respCookie(rec, "tenant_token"))
}

func TestLogin_UpstreamStatusIsReflected(t *testing.T) {
	mux, _ := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"message":"محاولات كثيرة، حاول لاحقاً"}`))
	}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, loginForm("/admin/login"))

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Contains(t, rec.Body.String(), "محاولات كثيرة")
}

func TestLogin_UnreachableUpstreamIs502(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	store, err := auth.NewSQLiteStore(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	sessions := auth.NewManager(store, false)

	mux := chi.NewRouter()
	mux.Use(middleware.SessionID(false))
	RegisterRoutes(mux, gateway.New(srv.URL), sessions)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, loginForm("/admin/login"))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Contains(t, rec.Body.String(), "حدث خطأ غير متوقع")
	require.Nil(t, respCookie(rec, "admin_token"))
}

func TestLoginPage_ShowsFlashOnce(t *testing.T) {
	mux, _ := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	setRec := httptest.NewRecorder()
	auth.SetFlash(setRec, "غير مصرح لك بالوصول. يرجى تسجيل الدخول مرة أخرى.")

	req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	for _, c := range setRec.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "غير مصرح لك بالوصول")

	cleared := respCookie(rec, auth.FlashCookie)
	require.NotNil(t, cleared)
	require.Negative(t, cleared.MaxAge)
}

func TestGuard_ProtectsTenantPages(t *testing.T) {
	mux, _ := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","name":"Acme","slug":"acme"}`))
	}))

	t.Run("dashboard without cookie redirects to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/t/acme/dashboard", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		require.Equal(t, "/t/acme/login", rec.Header().Get("Location"))
	})

	t.Run("bare tenant root is public", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/t/acme", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Acme")
	})
}

func TestAuthFailure_EndToEnd(t *testing.T) {
	mux, sessions := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	// Seed a tenant session the hard way, then watch a rejected page load
	// tear the whole thing down.
	seed := httptest.NewRecorder()
	require.NoError(t, sessions.SetToken(context.Background(), seed, "sid-1", auth.ScopeTenant, "stale"))

	req := httptest.NewRequest(http.MethodGet, "/t/acme/invoices", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-1"})
	req.AddCookie(&http.Cookie{Name: "tenant_token", Value: "stale"})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/t/acme/login", rec.Header().Get("Location"))
	require.False(t, sessions.IsAuthenticated(context.Background(), "sid-1", auth.ScopeTenant))
	require.NotNil(t, respCookie(rec, auth.FlashCookie))
}

func TestAdminTenants_ProxiesListAndCreate(t *testing.T) {
	mux, sessions := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer adm", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet:
			require.Equal(t, "acme", r.URL.Query().Get("search"))
			_, _ = w.Write([]byte(`{"items":[{"id":"1","name":"Acme","slug":"acme"}],"meta":{"page":1,"limit":20,"totalItems":1,"totalPages":1}}`))
		default:
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"2","name":"Beta","slug":"beta-co"}`))
		}
	}))

	require.NoError(t, sessions.SetToken(context.Background(), httptest.NewRecorder(), "sid-1", auth.ScopeAdmin, "adm"))
	withSession := func(r *http.Request) *http.Request {
		r.AddCookie(&http.Cookie{Name: "sid", Value: "sid-1"})
		r.AddCookie(&http.Cookie{Name: "admin_token", Value: "adm"})
		return r
	}

	t.Run("list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodGet, "/admin/tenants?search=acme", nil)))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Acme")
		require.Contains(t, rec.Body.String(), `"totalPages":1`)
	})

	t.Run("create normalizes slug", func(t *testing.T) {
		body := strings.NewReader(`{"name":"Beta","slug":"Beta Co"}`)
		req := withSession(httptest.NewRequest(http.MethodPost, "/admin/tenants", body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("create rejects bad slug", func(t *testing.T) {
		body := strings.NewReader(`{"name":"Beta","slug":"Beta_Co!"}`)
		req := withSession(httptest.NewRequest(http.MethodPost, "/admin/tenants", body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestInvoiceNotFound_RendersNotFoundView(t *testing.T) {
	mux, sessions := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	require.NoError(t, sessions.SetToken(context.Background(), httptest.NewRecorder(), "sid-1", auth.ScopeTenant, "t"))
	req := httptest.NewRequest(http.MethodGet, "/t/acme/invoices/42", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-1"})
	req.AddCookie(&http.Cookie{Name: "tenant_token", Value: "t"})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "الفاتورة غير موجودة")
}

func TestLogout_ClearsEverything(t *testing.T) {
	mux, sessions := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	require.NoError(t, sessions.SetToken(context.Background(), httptest.NewRecorder(), "sid-1", auth.ScopeTenant, "t"))
	req := httptest.NewRequest(http.MethodPost, "/t/acme/logout", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-1"})
	req.AddCookie(&http.Cookie{Name: "tenant_token", Value: "t"})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/t/acme/login", rec.Header().Get("Location"))
	require.False(t, sessions.IsAuthenticated(context.Background(), "sid-1", auth.ScopeTenant))

	c := respCookie(rec, "tenant_token")
	require.NotNil(t, c)
	require.Negative(t, c.MaxAge)
}
