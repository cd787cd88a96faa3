// Package zitadel is a minimal client for the Zitadel v2 user API, covering
// the passkey management rally exposes to signed-in users.
package zitadel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
)

// TokenSource yields a bearer token for the management API.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// invalidator is implemented by token sources that cache. A rejected bearer
// is dropped so the next call exchanges a fresh one; the failed call is not
// retried.
type invalidator interface {
	Invalidate()
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource
}

func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Tokens:     tokens,
	}
}

// Passkey is a registered WebAuthn credential.
type Passkey struct {
	ID    string `json:"id"`
	State string `json:"state"`
	Name  string `json:"name"`
}

type listPasskeysResponse struct {
	Result []Passkey `json:"result"`
}

// errorBody is Zitadel's gRPC-gateway error shape.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ListPasskeys returns the passkeys registered to userID.
func (c *Client) ListPasskeys(ctx context.Context, userID string) ([]Passkey, error) {
	path := fmt.Sprintf("/v2/users/%s/passkeys/_search", url.PathEscape(userID))

	var out listPasskeysResponse
	if err := c.do(ctx, http.MethodPost, path, struct{}{}, &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

// RemovePasskey deletes one of userID's passkeys.
func (c *Client) RemovePasskey(ctx context.Context, userID, passkeyID string) error {
	path := fmt.Sprintf("/v2/users/%s/passkeys/%s", url.PathEscape(userID), url.PathEscape(passkeyID))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	bearer, err := c.Tokens.Token(ctx)
	if err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("zitadel: encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("zitadel: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &domain.UpstreamError{Service: "zitadel", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &domain.UpstreamError{Service: "zitadel", StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if inv, ok := c.Tokens.(invalidator); ok {
			inv.Invalidate()
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		msg := eb.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &domain.UpstreamError{Service: "zitadel", StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.UpstreamError{Service: "zitadel", StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}
