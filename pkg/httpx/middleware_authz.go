package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/rally/pkg/cryptox"
)

// RequireSharedSecret admits only callers presenting the configured secret as
// a bearer token. Used for machine callers such as the reminder scheduler.
// An empty secret locks the route entirely.
func RequireSharedSecret(secret string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !cryptox.SecretEqual(secret, strings.TrimSpace(presented)) {
				WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid shared secret")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
