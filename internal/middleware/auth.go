package middleware

import (
	"net/http"
	"strings"
	"time"

	"woa-fleet/hangar/internal/auth"
	"woa-fleet/hangar/internal/common"
	"woa-fleet/hangar/internal/constants"
)

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the caller in the request context.
func AuthMiddleware(tokens *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initTime := time.Now()

			token := bearerToken(r)
			if token == "" {
				common.RespondError(w, initTime, constants.ErrMissingToken, "", http.StatusUnauthorized)
				return
			}

			p, err := tokens.Verify(token)
			if err != nil {
				common.RespondError(w, initTime, constants.ErrInvalidToken, "", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetPrincipal(r.Context(), p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthMiddleware resolves the caller when a valid token is sent
// and otherwise lets the request through anonymously.
func OptionalAuthMiddleware(tokens *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				if p, err := tokens.Verify(token); err == nil {
					r = r.WithContext(auth.SetPrincipal(r.Context(), p))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
