package routes

import (
	"github.com/go-chi/chi/v5"

	"woa-fleet/hangar/internal/api"
	"woa-fleet/hangar/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies) {
	svc := deps.Services
	limiter := middleware.NewRateLimiter(deps.Config.Auth.RateLimitRPS, deps.Config.Auth.RateLimitBurst)

	r.Route("/api/v1", func(v1 chi.Router) {
		// Public routes
		v1.Group(func(public chi.Router) {
			public.Group(func(limited chi.Router) {
				limited.Use(limiter.Middleware)
				limited.Post("/auth/register", api.RegisterHandler(svc.Auth))
				limited.Post("/auth/login", api.LoginHandler(svc.Auth))
				limited.Get("/auth/username/{username}", api.UsernameAvailableHandler(svc.Auth))
			})

			public.Get("/captcha/site-key", api.CaptchaSiteKeyHandler(deps.Config.Captcha))
			public.Get("/images/{aircraftId}", api.GetImageHandler(svc.Images))

			public.Group(func(shared chi.Router) {
				shared.Use(middleware.OptionalAuthMiddleware(deps.Tokens))
				shared.Get("/shared/{username}/{groupId}", api.SharedGroupHandler(svc.Shared))
				shared.Get("/shared/{username}/{groupId}/{aircraftId}", api.SharedAircraftHandler(svc.Shared))
			})
		})

		// Authenticated routes
		v1.Group(func(authed chi.Router) {
			authed.Use(middleware.AuthMiddleware(deps.Tokens))

			authed.Get("/auth/me", api.MeHandler(svc.Auth))
			authed.Put("/auth/me/username", api.ChangeUsernameHandler(svc.Auth))

			authed.Route("/aircraft", func(ac chi.Router) {
				ac.Get("/", api.ListAircraftHandler(svc.Aircraft))
				ac.Post("/", api.CreateAircraftHandler(svc.Aircraft))
				ac.Get("/stats", api.FleetStatsHandler(svc.Aircraft))

				ac.Route("/{id}", func(one chi.Router) {
					one.Get("/", api.GetAircraftHandler(svc.Aircraft))
					one.Put("/", api.UpdateAircraftHandler(svc.Aircraft))
					one.Delete("/", api.DeleteAircraftHandler(svc.Aircraft))
					one.Put("/sell", api.SellAircraftHandler(svc.Aircraft))

					one.Post("/image", api.UploadImageHandler(svc.Images))
					one.Delete("/image", api.DeleteImageHandler(svc.Images))

					one.Post("/contracts", api.CreateContractHandler(svc.Contracts))
					one.Post("/contracts/{contractId}/profits", api.LogProfitHandler(svc.Contracts))
					one.Put("/contracts/{contractId}/finish", api.FinishContractHandler(svc.Contracts))
					one.Delete("/contracts/{contractId}", api.DeleteContractHandler(svc.Contracts))
				})
			})

			authed.Route("/groups", func(g chi.Router) {
				g.Get("/", api.ListGroupsHandler(svc.Groups))
				g.Post("/", api.CreateGroupHandler(svc.Groups))
				g.Get("/{id}", api.GetGroupHandler(svc.Groups))
				g.Put("/{id}", api.UpdateGroupHandler(svc.Groups))
				g.Delete("/{id}", api.DeleteGroupHandler(svc.Groups))
				g.Put("/{id}/aircraft/{aircraftId}", api.AddGroupAircraftHandler(svc.Groups))
				g.Delete("/{id}/aircraft/{aircraftId}", api.RemoveGroupAircraftHandler(svc.Groups))
			})

			// Admin-only group
			authed.Group(func(admin chi.Router) {
				admin.Use(middleware.IsAdminMiddleware(svc.Auth))

				admin.Get("/admin/users", api.ListUsersHandler(svc.Admin))
				admin.Delete("/admin/users/{id}", api.DeleteUserHandler(svc.Admin))
				admin.Get("/admin/invitations", api.ListInvitationsHandler(svc.Invitations))
				admin.Post("/admin/invitations", api.CreateInvitationHandler(svc.Invitations))
				admin.Delete("/admin/invitations/{id}", api.DeleteInvitationHandler(svc.Invitations))
			})
		})
	})
}
