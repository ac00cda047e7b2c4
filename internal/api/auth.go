package api

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"woa-fleet/hangar/internal/common"
	"woa-fleet/hangar/internal/config"
	"woa-fleet/hangar/internal/models/dtos"
	"woa-fleet/hangar/internal/services"
)

func remoteIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// RegisterHandler handles POST /api/v1/auth/register
func RegisterHandler(authSvc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.RegisterRequest
		if !decodeJSON(w, r, initTime, &req) {
			return
		}

		resp, err := authSvc.Register(r.Context(), req, remoteIP(r))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "User registered successfully", resp, http.StatusCreated)
	}
}

// LoginHandler handles POST /api/v1/auth/login
func LoginHandler(authSvc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.LoginRequest
		if !decodeJSON(w, r, initTime, &req) {
			return
		}

		resp, err := authSvc.Login(r.Context(), req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Logged in", resp)
	}
}

// UsernameAvailableHandler handles GET /api/v1/auth/username/{username}
func UsernameAvailableHandler(authSvc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		available, err := authSvc.UsernameAvailable(r.Context(), chi.URLParam(r, "username"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Username checked", dtos.UsernameAvailabilityResponse{Available: available})
	}
}

// MeHandler handles GET /api/v1/auth/me
func MeHandler(authSvc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		p, ok := principal(w, r, initTime)
		if !ok {
			return
		}

		user, err := authSvc.Me(r.Context(), p)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "User fetched", dtos.NewUserResponse(*user))
	}
}

// ChangeUsernameHandler handles PUT /api/v1/auth/me/username
func ChangeUsernameHandler(authSvc *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		p, ok := principal(w, r, initTime)
		if !ok {
			return
		}

		var req dtos.ChangeUsernameRequest
		if !decodeJSON(w, r, initTime, &req) {
			return
		}

		user, err := authSvc.ChangeUsername(r.Context(), p, req.Username)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Username updated", dtos.NewUserResponse(*user))
	}
}

// CaptchaSiteKeyHandler handles GET /api/v1/captcha/site-key
func CaptchaSiteKeyHandler(cfg config.CaptchaConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		common.RespondSuccess(w, time.Now(), "CAPTCHA site key", dtos.SiteKeyResponse{SiteKey: cfg.SiteKey})
	}
}
