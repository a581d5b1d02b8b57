package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/climblog/pkg/jwtx"
	"github.com/aussiebroadwan/climblog/pkg/slogx"
)

// Messages sent in the {"msg": ...} body of a bearer failure. Clients show
// them as is.
const (
	MsgMissingToken = "Missing Authorization Header"
	MsgExpiredToken = "Token has expired"
	MsgInvalidToken = "Invalid token"
)

// AuthnMiddleware rejects requests without a valid bearer token and stores
// the verified claims in the request context.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token", MsgMissingToken)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))

			claims, err := v.Verify(raw)
			switch {
			case errors.Is(err, jwtx.ErrExpired):
				writeBearerError(w, "token expired", MsgExpiredToken)
				return
			case err != nil:
				log.Warn("jwt verify failed", "err", err)
				writeBearerError(w, "token verification failed", MsgInvalidToken)
				return
			}

			ctx = slogx.With(ctx, "user_id", claims.Subject)
			next.ServeHTTP(w, r.WithContext(contextWithAuth(ctx, claims)))
		})
	}
}

// RFC 6750 challenge plus a JSON body.
func writeBearerError(w http.ResponseWriter, desc, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{"msg": msg})
}
