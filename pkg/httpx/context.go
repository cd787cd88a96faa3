package httpx

import (
	"context"

	"github.com/aussiebroadwan/rally/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyEmail  ctxKey = "email"
	CtxKeyClaims ctxKey = "claims"
)

// EmailFromContext returns the authenticated email, if the request carried a
// valid session.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(CtxKeyEmail).(string)
	return email, ok && email != ""
}

// ClaimsFromContext returns the verified session claims.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}

func contextWithSession(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyEmail, c.Email)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}
