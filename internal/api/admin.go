package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"woa-fleet/hangar/internal/common"
	"woa-fleet/hangar/internal/models/dtos"
	"woa-fleet/hangar/internal/services"
)

// ListUsersHandler handles GET /api/v1/admin/users
func ListUsersHandler(adminSvc *services.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		users, err := adminSvc.ListUsers(r.Context())
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		out := make([]dtos.UserResponse, 0, len(users))
		for _, u := range users {
			out = append(out, dtos.NewUserResponse(u))
		}
		common.RespondSuccess(w, initTime, "Users fetched", out)
	}
}

// DeleteUserHandler handles DELETE /api/v1/admin/users/{id}
func DeleteUserHandler(adminSvc *services.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		p, ok := principal(w, r, initTime)
		if !ok {
			return
		}

		if err := adminSvc.DeleteUser(r.Context(), p, chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "User deleted", nil)
	}
}

// ListInvitationsHandler handles GET /api/v1/admin/invitations
func ListInvitationsHandler(invitationSvc *services.InvitationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		invitations, err := invitationSvc.List(r.Context())
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Invitations fetched", invitations)
	}
}

// CreateInvitationHandler handles POST /api/v1/admin/invitations
func CreateInvitationHandler(invitationSvc *services.InvitationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreateInvitationRequest
		if !decodeJSON(w, r, initTime, &req) {
			return
		}

		invitation, err := invitationSvc.Create(r.Context(), req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Invitation created", invitation, http.StatusCreated)
	}
}

// DeleteInvitationHandler handles DELETE /api/v1/admin/invitations/{id}
func DeleteInvitationHandler(invitationSvc *services.InvitationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if err := invitationSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Invitation deleted", nil)
	}
}
