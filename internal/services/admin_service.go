package services

import (
	"context"

	"gorm.io/gorm"

	"woa-fleet/hangar/internal/auth"
	"woa-fleet/hangar/internal/common"
	"woa-fleet/hangar/internal/constants"
	"woa-fleet/hangar/internal/db/repositories"
	"woa-fleet/hangar/internal/logging"
	gormModels "woa-fleet/hangar/internal/models/gorm"
)

type AdminService struct {
	users  *repositories.UserRepositoryGORM
	images *ImageService
	cache  common.CacheInterface
}

func NewAdminService(db *gorm.DB, images *ImageService, cache common.CacheInterface) *AdminService {
	return &AdminService{
		users:  repositories.NewUserRepositoryGORM(db),
		images: images,
		cache:  cache,
	}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]gormModels.User, error) {
	return s.users.List(ctx)
}

// DeleteUser removes the account with its aircraft and groups, then
// clears their stored images and cached entries.
func (s *AdminService) DeleteUser(ctx context.Context, p auth.Principal, userID string) error {
	if userID == p.UserID {
		return constants.Validationf("Admins cannot delete their own account")
	}

	imageKeys, err := s.users.DeleteCascade(ctx, userID)
	if err != nil {
		return err
	}

	if s.images != nil {
		s.images.Cleanup(ctx, imageKeys...)
	}
	s.cache.Delete(usernameKey(userID))
	s.cache.DeletePrefix(fleetStatsPrefix(userID))

	logging.Info("User deleted", "admin_id", p.UserID, "user_id", userID, "images_removed", len(imageKeys))
	return nil
}
