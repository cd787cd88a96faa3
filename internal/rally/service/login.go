package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
	"github.com/aussiebroadwan/rally/pkg/cryptox"
	"github.com/aussiebroadwan/rally/pkg/slogx"
)

// LoginService runs the authorization-code flow with PKCE against the
// identity provider.
type LoginService struct {
	OAuth       *oauth2.Config
	UserInfoURL string

	// HTTPClient is used for the code exchange and userinfo when set.
	HTTPClient *http.Client
}

// NewLoginService configures the flow against a Zitadel-style issuer.
func NewLoginService(issuer, clientID, clientSecret, redirectURL string) *LoginService {
	issuer = strings.TrimSuffix(issuer, "/")
	return &LoginService{
		OAuth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  issuer + "/oauth/v2/authorize",
				TokenURL: issuer + "/oauth/v2/token",
			},
		},
		UserInfoURL: issuer + "/oidc/v1/userinfo",
	}
}

// LoginStart is the redirect to send the browser to, plus the state and
// verifier to keep until the callback.
type LoginStart struct {
	URL      string
	State    string
	Verifier string
}

// Identity is the verified caller as reported by userinfo.
type Identity struct {
	Subject string
	Email   string
}

type userInfo struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified *bool  `json:"email_verified"`
}

func (s *LoginService) Start() (LoginStart, error) {
	state, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return LoginStart{}, err
	}
	verifier := oauth2.GenerateVerifier()

	return LoginStart{
		URL:      s.OAuth.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier)),
		State:    state,
		Verifier: verifier,
	}, nil
}

// Finish checks the returned state, exchanges code and reads the identity.
func (s *LoginService) Finish(ctx context.Context, code, state, wantState, verifier string) (Identity, error) {
	log := slogx.FromContext(ctx)

	if state == "" || wantState == "" || !cryptox.SecretEqual(wantState, state) {
		return Identity{}, ErrInvalidState
	}
	if code == "" {
		return Identity{}, ErrLoginRejected
	}
	if s.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, s.HTTPClient)
	}

	tok, err := s.OAuth.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil && re.Response.StatusCode < 500 {
			log.Warn("authorization code rejected", slog.String("error_code", re.ErrorCode))
			return Identity{}, ErrLoginRejected
		}
		return Identity{}, exchangeError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.UserInfoURL, nil)
	if err != nil {
		return Identity{}, err
	}
	resp, err := s.OAuth.Client(ctx, tok).Do(req)
	if err != nil {
		return Identity{}, &domain.UpstreamError{Service: "userinfo", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, &domain.UpstreamError{Service: "userinfo", StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	var info userInfo
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&info); err != nil {
		return Identity{}, fmt.Errorf("decode userinfo: %w", err)
	}
	if info.Subject == "" || info.Email == "" || (info.EmailVerified != nil && !*info.EmailVerified) {
		log.Warn("identity provider returned no verified email")
		return Identity{}, ErrLoginRejected
	}

	return Identity{Subject: info.Subject, Email: domain.NormalizeEmail(info.Email)}, nil
}
