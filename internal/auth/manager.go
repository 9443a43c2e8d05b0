// internal/auth/manager.go
package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Manager is the credential store: every write goes to both the durable
// backend and the cookie mirror, and every clear removes both scopes from
// both locations. Callers never touch the two halves separately.
type Manager struct {
	store  TokenStore
	secure bool
}

func NewManager(store TokenStore, secure bool) *Manager {
	return &Manager{store: store, secure: secure}
}

// SetToken commits a freshly issued token for one scope: durable row plus
// mirror cookie (path=/, max-age 86400, SameSite=Lax).
func (m *Manager) SetToken(ctx context.Context, w http.ResponseWriter, sid string, scope Scope, token string) error {
	if err := m.store.SetToken(ctx, sid, scope, token); err != nil {
		return err
	}
	SetTokenCookie(w, scope, token, m.secure)
	return nil
}

// ClearAll wipes both scopes from both locations, whichever scope
// triggered it. Any auth failure resets the whole browser session rather
// than guessing which of the two tokens went stale.
func (m *Manager) ClearAll(ctx context.Context, w http.ResponseWriter, sid string) error {
	err := m.store.ClearAll(ctx, sid)
	if err != nil {
		log.Warn().Err(err).Str("sid", sid).Msg("durable token clear failed")
	}
	for _, scope := range scopes {
		ClearTokenCookie(w, scope, m.secure)
	}
	return err
}

// Token reads the durable store. No expiry check happens here; a row can
// outlive its mirror cookie.
func (m *Manager) Token(ctx context.Context, sid string, scope Scope) (string, error) {
	return m.store.Token(ctx, sid, scope)
}

// TokenOrEmpty is Token with absence collapsed to the empty string, for
// building per-request upstream credentials.
func (m *Manager) TokenOrEmpty(ctx context.Context, sid string, scope Scope) string {
	token, err := m.store.Token(ctx, sid, scope)
	if err != nil {
		return ""
	}
	return token
}

func (m *Manager) IsAuthenticated(ctx context.Context, sid string, scope Scope) bool {
	token, err := m.store.Token(ctx, sid, scope)
	if err != nil {
		if !errors.Is(err, ErrNoToken) {
			log.Warn().Err(err).Str("sid", sid).Msg("token lookup failed")
		}
		return false
	}
	return token != ""
}

func (m *Manager) Close() error { return m.store.Close() }
