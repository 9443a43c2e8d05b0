// internal/gateway/client.go
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

// Credentials is the session context a call runs under. It is built per
// request from the credential store and passed explicitly, so the
// precedence rule below is visible at every call site instead of hiding
// in ambient state.
type Credentials struct {
	Admin  string
	Tenant string
}

// bearer picks the token to attach. Admin wins when both are held: a
// single call cannot be authorized as both identities, and the tie-break
// is fixed. Empty means the request goes out unauthenticated and the
// backend decides.
func (c Credentials) bearer() string {
	if c.Admin != "" {
		return c.Admin
	}
	return c.Tenant
}

// Client is the single outbound client for the upstream API. It decodes
// success payloads and converts non-2xx replies into *APIError; it never
// retries and sets no timeout beyond transport defaults.
type Client struct {
	baseURL string
	httpc   *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
	}
}

// NewWithHTTPClient exists for tests that need to point the client at an
// httptest server transport.
func NewWithHTTPClient(baseURL string, httpc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpc: httpc}
}

func (c *Client) do(ctx context.Context, creds Credentials, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := creds.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&payload) == nil {
			apiErr.Message = payload.Message
		}
		log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("api error")
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, creds Credentials, path string, query url.Values, out any) error {
	return c.do(ctx, creds, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, creds Credentials, path string, body, out any) error {
	return c.do(ctx, creds, http.MethodPost, path, nil, body, out)
}
