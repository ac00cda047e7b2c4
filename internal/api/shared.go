package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"woa-fleet/hangar/internal/auth"
	"woa-fleet/hangar/internal/common"
	"woa-fleet/hangar/internal/models/dtos"
	"woa-fleet/hangar/internal/services"
)

// viewer is nil for anonymous callers.
func viewer(r *http.Request) *auth.Principal {
	if p, ok := auth.GetPrincipal(r.Context()); ok {
		return &p
	}
	return nil
}

// SharedGroupHandler handles GET /api/v1/shared/{username}/{groupId}
func SharedGroupHandler(sharedSvc *services.SharedGroupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		query, err := parseListQuery(r)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		shared, err := sharedSvc.GetGroup(r.Context(), chi.URLParam(r, "username"), chi.URLParam(r, "groupId"), viewer(r), query)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Shared group fetched", dtos.SharedGroupResponse{
			Owner: shared.Owner,
			Group: groupViewResponse(shared.View),
		})
	}
}

// SharedAircraftHandler handles GET /api/v1/shared/{username}/{groupId}/{aircraftId}
func SharedAircraftHandler(sharedSvc *services.SharedGroupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		aircraft, err := sharedSvc.GetAircraft(r.Context(),
			chi.URLParam(r, "username"), chi.URLParam(r, "groupId"), chi.URLParam(r, "aircraftId"), viewer(r))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Shared aircraft fetched", dtos.NewAircraftResponse(*aircraft))
	}
}
