// internal/auth/store.go
package auth

import (
	"context"
	"errors"
)

// ErrNoToken is returned by TokenStore.Token when no token is held for the
// session/scope pair.
var ErrNoToken = errors.New("no token for scope")

// TokenStore is the durable half of the credential store, keyed by browser
// session id and scope. Rows are replaced wholesale, never updated in
// place, and carry no expiry: the cookie mirror's max-age is the only
// expiry mechanism.
type TokenStore interface {
	SetToken(ctx context.Context, sid string, scope Scope, token string) error
	Token(ctx context.Context, sid string, scope Scope) (string, error)
	ClearAll(ctx context.Context, sid string) error
	Close() error
}
