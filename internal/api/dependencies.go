package api

import (
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"woa-fleet/hangar/internal/auth"
	"woa-fleet/hangar/internal/common"
	"woa-fleet/hangar/internal/config"
	"woa-fleet/hangar/internal/db/repositories"
	"woa-fleet/hangar/internal/metrics"
	"woa-fleet/hangar/internal/services"
	"woa-fleet/hangar/internal/storage"
)

type Services struct {
	Auth        *services.AuthService
	Aircraft    *services.AircraftService
	Contracts   *services.ContractService
	Groups      *services.GroupService
	Shared      *services.SharedGroupService
	Images      *services.ImageService
	Admin       *services.AdminService
	Invitations *services.InvitationService
}

type Dependencies struct {
	ORM      *gorm.DB
	SQLX     *sqlx.DB
	Cache    common.CacheInterface
	Metrics  *metrics.MetricsRegistry
	Tokens   *auth.TokenIssuer
	Config   *config.Config
	Services *Services
}

// InitDependencies builds every service on top of the shared connections.
func InitDependencies(
	cfg *config.Config,
	orm *gorm.DB,
	sqlxDB *sqlx.DB,
	cache common.CacheInterface,
	store storage.ImageStore,
	metricsReg *metrics.MetricsRegistry,
) (*Dependencies, error) {
	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)

	var captcha services.CaptchaVerifier
	if cfg.Captcha.Enabled() {
		captcha = services.NewHTTPCaptchaVerifier(cfg.Captcha)
	}

	invitationRepo := repositories.NewInvitationRepo(sqlxDB)
	images := services.NewImageService(orm, store, metricsReg)

	svcs := &Services{
		Auth:        services.NewAuthService(orm, invitationRepo, tokens, captcha, cache, metricsReg, cfg.Auth.InvitationMode),
		Aircraft:    services.NewAircraftService(orm, cache, images, metricsReg),
		Contracts:   services.NewContractService(orm, cache, metricsReg),
		Groups:      services.NewGroupService(orm),
		Shared:      services.NewSharedGroupService(orm, cache, metricsReg),
		Images:      images,
		Admin:       services.NewAdminService(orm, images, cache),
		Invitations: services.NewInvitationService(invitationRepo),
	}

	return &Dependencies{
		ORM:      orm,
		SQLX:     sqlxDB,
		Cache:    cache,
		Metrics:  metricsReg,
		Tokens:   tokens,
		Config:   cfg,
		Services: svcs,
	}, nil
}
