package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
	"github.com/aussiebroadwan/rally/pkg/slogx"
)

// ServiceTokenBuffer is how close to expiry a cached token is still served.
const ServiceTokenBuffer = 60 * time.Second

// ServiceTokenCache holds one client-credentials access token for calls to
// the identity provider's management API.
//
// Concurrent misses are not coalesced: each exchanges on its own and the
// last writer wins the slot. The mutex guards the slot, never the exchange.
type ServiceTokenCache struct {
	Config *clientcredentials.Config

	// HTTPClient is used for the token exchange when set.
	HTTPClient *http.Client
	Now        func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewServiceTokenCache(tokenURL, clientID, clientSecret string, scopes []string) *ServiceTokenCache {
	return &ServiceTokenCache{
		Config: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			Scopes:       scopes,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
	}
}

// Token returns a bearer token with more than ServiceTokenBuffer of life
// left, exchanging credentials first if the cached one is too close to
// expiry.
func (c *ServiceTokenCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	token, expiresAt := c.token, c.expiresAt
	c.mu.Unlock()

	if token != "" && expiresAt.Sub(clock(c.Now)) > ServiceTokenBuffer {
		return token, nil
	}
	return c.Refresh(ctx)
}

// Refresh exchanges credentials unconditionally and replaces the cached
// token. A token issued with no more than ServiceTokenBuffer of life is
// rejected. On failure the slot keeps its previous value.
func (c *ServiceTokenCache) Refresh(ctx context.Context) (string, error) {
	if c.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.HTTPClient)
	}

	now := clock(c.Now)
	tok, err := c.Config.Token(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("service token exchange failed", slog.Any("error", err))
		return "", exchangeError(err)
	}

	lifetime := tokenLifetime(tok)
	if lifetime <= ServiceTokenBuffer {
		slogx.FromContext(ctx).Error("service token lifetime below refresh buffer",
			slog.Duration("lifetime", lifetime),
		)
		return "", &domain.UpstreamError{Service: "token exchange", Message: "token lifetime below refresh buffer"}
	}
	expiresAt := now.Add(lifetime)

	c.mu.Lock()
	c.token, c.expiresAt = tok.AccessToken, expiresAt
	c.mu.Unlock()

	slogx.FromContext(ctx).Debug("service token refreshed", slog.Time("expires_at", expiresAt))
	return tok.AccessToken, nil
}

// tokenLifetime is how long tok stays valid from now. The library stamps
// Expiry with the wall clock, so it is measured against the wall clock too.
// Zero means the provider sent no lifetime.
func tokenLifetime(tok *oauth2.Token) time.Duration {
	switch {
	case tok.ExpiresIn > 0:
		return time.Duration(tok.ExpiresIn) * time.Second
	case !tok.Expiry.IsZero():
		return time.Until(tok.Expiry)
	}
	return 0
}

// Invalidate empties the slot so the next Token call exchanges.
func (c *ServiceTokenCache) Invalidate() {
	c.mu.Lock()
	c.token, c.expiresAt = "", time.Time{}
	c.mu.Unlock()
}

func exchangeError(err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) && re.Response != nil {
		msg := re.ErrorDescription
		if msg == "" {
			msg = re.ErrorCode
		}
		return &domain.UpstreamError{Service: "token exchange", StatusCode: re.Response.StatusCode, Message: msg, Err: err}
	}
	return &domain.UpstreamError{Service: "token exchange", Err: err}
}
