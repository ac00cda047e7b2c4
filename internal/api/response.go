package api

import (
	"encoding/json"
	"net/http"
	"time"

	"woa-fleet/hangar/internal/auth"
	"woa-fleet/hangar/internal/common"
	"woa-fleet/hangar/internal/logging"
)

// respondServiceError is the single place a service error becomes an
// HTTP response.
func respondServiceError(w http.ResponseWriter, r *http.Request, initTime time.Time, err error) {
	code := common.StatusFor(err)
	if code == http.StatusInternalServerError {
		p, _ := auth.GetPrincipal(r.Context())
		logging.WithRequest(auth.GetRequestID(r.Context()), p.UserID, r.URL.Path).
			Errorw("Request failed", "error", err)
		common.RespondError(w, initTime, nil, "Server Error", code)
		return
	}
	common.RespondError(w, initTime, err, "", code)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, initTime time.Time, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		common.RespondError(w, initTime, nil, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// principal returns the authenticated caller; routes behind the auth
// middleware always have one.
func principal(w http.ResponseWriter, r *http.Request, initTime time.Time) (auth.Principal, bool) {
	p, ok := auth.GetPrincipal(r.Context())
	if !ok {
		common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
	}
	return p, ok
}
