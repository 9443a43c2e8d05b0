package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlash_ReadAndClear(t *testing.T) {
	setRec := httptest.NewRecorder()
	SetFlash(setRec, "غير مصرح لك بالوصول. يرجى تسجيل الدخول مرة أخرى.")

	// First read after the redirect returns the message and clears it.
	r := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	for _, c := range setRec.Result().Cookies() {
		r.AddCookie(c)
	}
	takeRec := httptest.NewRecorder()
	require.Equal(t, "غير مصرح لك بالوصول. يرجى تسجيل الدخول مرة أخرى.", TakeFlash(takeRec, r))

	// The clearing cookie must expire the slot.
	var cleared *http.Cookie
	for _, c := range takeRec.Result().Cookies() {
		if c.Name == FlashCookie {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	require.Negative(t, cleared.MaxAge)

	// A reload carries no cookie; the second read is empty.
	r2 := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	require.Empty(t, TakeFlash(httptest.NewRecorder(), r2))
}

func TestFlash_AbsentIsEmpty(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	require.Empty(t, TakeFlash(httptest.NewRecorder(), r))
}
