package middleware

import (
	"context"
	"net/http"
	"time"

	"woa-fleet/hangar/internal/auth"
	"woa-fleet/hangar/internal/common"
	"woa-fleet/hangar/internal/constants"
	"woa-fleet/hangar/internal/logging"
)

// RoleLookup reads the stored role of a user.
type RoleLookup interface {
	Role(ctx context.Context, userID string) (constants.UserRole, error)
}

// IsAdminMiddleware checks the stored role rather than the token claim, so
// a demoted admin loses access before their token expires.
func IsAdminMiddleware(roles RoleLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initTime := time.Now()

			p, ok := auth.GetPrincipal(r.Context())
			if !ok {
				common.RespondError(w, initTime, constants.ErrMissingToken, "", http.StatusUnauthorized)
				return
			}

			role, err := roles.Role(r.Context(), p.UserID)
			if err != nil || role != constants.RoleAdmin {
				if err != nil {
					logging.Warn("Admin role lookup failed", "user_id", p.UserID, "error", err)
				}
				common.RespondError(w, initTime, constants.ErrAccessDenied, "", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
