package httpx

import (
	"context"

	"github.com/aussiebroadwan/climblog/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyClaims ctxKey = "claims"
)

func contextWithAuth(ctx context.Context, c jwtx.AccessClaims) context.Context {
	id, _ := c.UserID()
	ctx = context.WithValue(ctx, CtxKeyUserID, id)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// UserIDFromContext returns the user id from the verified token set by
// AuthnMiddleware.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(CtxKeyUserID).(int64)
	return id, ok && id > 0
}

// ClaimsFromContext returns the verified claims set by AuthnMiddleware.
func ClaimsFromContext(ctx context.Context) (jwtx.AccessClaims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.AccessClaims)
	return c, ok
}
