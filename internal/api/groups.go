package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"woa-fleet/hangar/internal/common"
	"woa-fleet/hangar/internal/models/dtos"
	"woa-fleet/hangar/internal/services"
)

func groupViewResponse(view *services.GroupView) dtos.GroupResponse {
	resp := dtos.NewGroupResponse(view.Group, view.Total)
	resp.Aircraft = dtos.NewAircraftListResponse(view.Aircraft)
	return resp
}

// ListGroupsHandler handles GET /api/v1/groups
func ListGroupsHandler(groupSvc *services.GroupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		p, ok := principal(w, r, initTime)
		if !ok {
			return
		}

		summaries, err := groupSvc.List(r.Context(), p)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		out := make([]dtos.GroupResponse, 0, len(summaries))
		for _, s := range summaries {
			out = append(out, dtos.NewGroupResponse(s.Group, s.Count))
		}
		common.RespondSuccess(w, initTime, "Aircraft groups fetched", out)
	}
}

// CreateGroupHandler handles POST /api/v1/groups
func CreateGroupHandler(groupSvc *services.GroupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		p, ok := principal(w, r, initTime)
		if !ok {
			return
		}

		var req dtos.CreateGroupRequest
		if !decodeJSON(w, r, initTime, &req) {
			return
		}

		group, err := groupSvc.Create(r.Context(), p, req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft group created", dtos.NewGroupResponse(*group, 0), http.StatusCreated)
	}
}

// GetGroupHandler handles GET /api/v1/groups/{id}
func GetGroupHandler(groupSvc *services.GroupService) http.HandlerFunc {
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

		view, err := groupSvc.Get(r.Context(), p, chi.URLParam(r, "id"), query)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft group fetched", groupViewResponse(view))
	}
}

// UpdateGroupHandler handles PUT /api/v1/groups/{id}
func UpdateGroupHandler(groupSvc *services.GroupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		p, ok := principal(w, r, initTime)
		if !ok {
			return
		}

		var req dtos.UpdateGroupRequest
		if !decodeJSON(w, r, initTime, &req) {
			return
		}

		group, err := groupSvc.Update(r.Context(), p, chi.URLParam(r, "id"), req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft group updated", dtos.NewGroupResponse(*group, 0))
	}
}

// DeleteGroupHandler handles DELETE /api/v1/groups/{id}
func DeleteGroupHandler(groupSvc *services.GroupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		p, ok := principal(w, r, initTime)
		if !ok {
			return
		}

		if err := groupSvc.Delete(r.Context(), p, chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft group deleted", nil)
	}
}

// AddGroupAircraftHandler handles PUT /api/v1/groups/{id}/aircraft/{aircraftId}
func AddGroupAircraftHandler(groupSvc *services.GroupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		p, ok := principal(w, r, initTime)
		if !ok {
			return
		}

		if err := groupSvc.AddAircraft(r.Context(), p, chi.URLParam(r, "id"), chi.URLParam(r, "aircraftId")); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft added to group", nil)
	}
}

// RemoveGroupAircraftHandler handles DELETE /api/v1/groups/{id}/aircraft/{aircraftId}
func RemoveGroupAircraftHandler(groupSvc *services.GroupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		p, ok := principal(w, r, initTime)
		if !ok {
			return
		}

		if err := groupSvc.RemoveAircraft(r.Context(), p, chi.URLParam(r, "id"), chi.URLParam(r, "aircraftId")); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft removed from group", nil)
	}
}
