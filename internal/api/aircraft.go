package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"woa-fleet/hangar/internal/common"
	"woa-fleet/hangar/internal/lifecycle"
	"woa-fleet/hangar/internal/models/dtos"
	"woa-fleet/hangar/internal/services"
)

func parseListQuery(r *http.Request) (lifecycle.Query, error) {
	q := r.URL.Query()
	return lifecycle.ParseQuery(q.Get("sortBy"), q.Get("sortMode"), q.Get("filterBy"), q.Get("filterValue"))
}

// ListAircraftHandler handles GET /api/v1/aircraft
func ListAircraftHandler(aircraftSvc *services.AircraftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		p, ok := principal(w, r, initTime)
		if !ok {
			return
		}

		query, err := parseListQuery(r)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		list, err := aircraftSvc.List(r.Context(), p, query)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft fetched", dtos.NewAircraftListResponse(list))
	}
}

// FleetStatsHandler handles GET /api/v1/aircraft/stats
func FleetStatsHandler(aircraftSvc *services.AircraftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		p, ok := principal(w, r, initTime)
		if !ok {
			return
		}

		q := r.URL.Query()
		filter, err := services.ParseStatsFilter(q.Get("airport"), q.Get("size"), q.Get("type"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		stats, err := aircraftSvc.Stats(r.Context(), p, filter)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Fleet statistics", stats)
	}
}

// CreateAircraftHandler handles POST /api/v1/aircraft
func CreateAircraftHandler(aircraftSvc *services.AircraftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		p, ok := principal(w, r, initTime)
		if !ok {
			return
		}

		var req dtos.CreateAircraftRequest
		if !decodeJSON(w, r, initTime, &req) {
			return
		}

		aircraft, err := aircraftSvc.Create(r.Context(), p, req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft created", dtos.NewAircraftResponse(*aircraft), http.StatusCreated)
	}
}

// GetAircraftHandler handles GET /api/v1/aircraft/{id}
func GetAircraftHandler(aircraftSvc *services.AircraftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		p, ok := principal(w, r, initTime)
		if !ok {
			return
		}

		aircraft, err := aircraftSvc.Get(r.Context(), p, chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft fetched", dtos.NewAircraftResponse(*aircraft))
	}
}

// UpdateAircraftHandler handles PUT /api/v1/aircraft/{id}
func UpdateAircraftHandler(aircraftSvc *services.AircraftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		p, ok := principal(w, r, initTime)
		if !ok {
			return
		}

		var req dtos.UpdateAircraftRequest
		if !decodeJSON(w, r, initTime, &req) {
			return
		}

		aircraft, err := aircraftSvc.Update(r.Context(), p, chi.URLParam(r, "id"), req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft updated", dtos.NewAircraftResponse(*aircraft))
	}
}

// SellAircraftHandler handles PUT /api/v1/aircraft/{id}/sell
func SellAircraftHandler(aircraftSvc *services.AircraftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		p, ok := principal(w, r, initTime)
		if !ok {
			return
		}

		aircraft, err := aircraftSvc.Sell(r.Context(), p, chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft sold", dtos.NewAircraftResponse(*aircraft))
	}
}

// DeleteAircraftHandler handles DELETE /api/v1/aircraft/{id}
func DeleteAircraftHandler(aircraftSvc *services.AircraftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		p, ok := principal(w, r, initTime)
		if !ok {
			return
		}

		if err := aircraftSvc.Delete(r.Context(), p, chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft removed", nil)
	}
}
