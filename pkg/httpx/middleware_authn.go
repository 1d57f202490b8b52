package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/ovenbird/recipebox/pkg/slogx"
)

// ErrInvalidToken is returned by Authenticator implementations when the
// presented token does not resolve to an active identity.
var ErrInvalidToken = errors.New("httpx: invalid token")

// Authenticator resolves an opaque bearer token into a Principal. Tokens that
// are unknown, or whose owning account is inactive, must fail with
// ErrInvalidToken.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (Principal, error)
}

// AuthnMiddleware guards a route with bearer-token authentication. Requests
// without a valid token are rejected with 401 before reaching the handler.
func AuthnMiddleware(a Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			principal, err := a.Authenticate(ctx, raw)
			if err != nil {
				if !errors.Is(err, ErrInvalidToken) {
					log.Warn("token authentication failed", "err", err)
				}
				writeBearerError(w, "invalid token")
				return
			}

			// Inject the identity into context for downstream handlers.
			ctx = context.WithValue(ctx, CtxKeyUserID, principal.UserID)
			ctx = context.WithValue(ctx, CtxKeyPrincipal, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "unauthenticated", desc)
}
