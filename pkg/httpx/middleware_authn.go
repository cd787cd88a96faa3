package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/rally/pkg/jwtx"
	"github.com/aussiebroadwan/rally/pkg/slogx"
)

// SessionToken returns the raw session JWT from the named cookie, falling
// back to an Authorization: Bearer header for non-browser clients.
func SessionToken(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	authz := r.Header.Get("Authorization")
	if raw, ok := strings.CutPrefix(authz, "Bearer "); ok {
		return strings.TrimSpace(raw)
	}
	return ""
}

// SessionMiddleware rejects requests without a valid session with 401 and
// injects the caller's email and claims otherwise.
func SessionMiddleware(v jwtx.Verifier, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw := SessionToken(r, cookieName)
			if raw == "" {
				writeUnauthorized(w, "missing session")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				slogx.FromContext(ctx).Debug("session verify failed", "err", err)
				writeUnauthorized(w, "invalid session")
				return
			}
			if claims.Email == "" {
				writeUnauthorized(w, "invalid session")
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithSession(ctx, claims)))
		})
	}
}

// OptionalSession injects the session when one is present and valid, and
// otherwise passes the request through untouched.
func OptionalSession(v jwtx.Verifier, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := SessionToken(r, cookieName)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := v.Verify(raw)
			if err != nil || claims.Email == "" {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(contextWithSession(r.Context(), claims)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "unauthorized", desc)
}
