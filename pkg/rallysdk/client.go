package rallysdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient calls the public rally routes and creates sessions for the
// authenticated ones.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for the service at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			// Magic-link redemption answers with a redirect the caller wants
			// to see, not follow.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Session is a client bound to a session token.
type Session struct {
	client *SDKClient
	token  string
}

// NewSession binds token to a Session.
func (c *SDKClient) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}
