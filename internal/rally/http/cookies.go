package http

import (
	"net/http"
	"strings"
	"time"
)

const (
	loginStateCookie = "rally_login"
	loginStateTTL    = 10 * time.Minute
)

// cookieJar writes the session and login-state cookies.
type cookieJar struct {
	SessionName string
	Secure      bool
}

func (c cookieJar) setSession(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.SessionName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c cookieJar) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.SessionName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// setLoginState stores state and PKCE verifier for the OIDC callback.
func (c cookieJar) setLoginState(w http.ResponseWriter, state, verifier string) {
	http.SetCookie(w, &http.Cookie{
		Name:     loginStateCookie,
		Value:    state + "." + verifier,
		Path:     "/auth",
		MaxAge:   int(loginStateTTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeLoginState reads and clears the login-state cookie.
func (c cookieJar) takeLoginState(w http.ResponseWriter, r *http.Request) (state, verifier string) {
	ck, err := r.Cookie(loginStateCookie)
	if err != nil {
		return "", ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     loginStateCookie,
		Path:     "/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	state, verifier, _ = strings.Cut(ck.Value, ".")
	return state, verifier
}
