package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"woa-fleet/hangar/internal/constants"
	gormModels "woa-fleet/hangar/internal/models/gorm"
)

type UserRepositoryGORM struct {
	db *gorm.DB
}

// NewUserRepositoryGORM creates a new GORM-based user repository
func NewUserRepositoryGORM(db *gorm.DB) *UserRepositoryGORM {
	return &UserRepositoryGORM{db: db}
}

func (r *UserRepositoryGORM) Create(ctx context.Context, user *gormModels.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return constants.ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepositoryGORM) GetByID(ctx context.Context, id string) (*gormModels.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepositoryGORM) GetByUsername(ctx context.Context, username string) (*gormModels.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *UserRepositoryGORM) first(ctx context.Context, query string, arg string) (*gormModels.User, error) {
	var user gormModels.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, constants.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

func (r *UserRepositoryGORM) UpdateUsername(ctx context.Context, id, username string) error {
	res := r.db.WithContext(ctx).Model(&gormModels.User{}).Where("id = ?", id).Update("username", username)
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return constants.ErrUsernameTaken
	}
	if res.Error != nil {
		return fmt.Errorf("failed to update username: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return constants.ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryGORM) List(ctx context.Context) ([]gormModels.User, error) {
	var users []gormModels.User
	if err := r.db.WithContext(ctx).Order("created_at ASC, username ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// DeleteCascade removes the user together with their aircraft, groups and
// group memberships in one transaction. It returns the image keys of the
// deleted aircraft so the caller can clean up storage.
func (r *UserRepositoryGORM) DeleteCascade(ctx context.Context, id string) ([]string, error) {
	var imageKeys []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&gormModels.User{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return constants.ErrUserNotFound
		}

		err := tx.Model(&gormModels.Aircraft{}).
			Where("user_id = ? AND image_key IS NOT NULL", id).
			Pluck("image_key", &imageKeys).Error
		if err != nil {
			return fmt.Errorf("failed to collect image keys: %w", err)
		}

		owned := tx.Model(&gormModels.Aircraft{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("aircraft_id IN (?)", owned).Delete(&gormModels.AircraftGroupMember{}).Error; err != nil {
			return fmt.Errorf("failed to delete memberships: %w", err)
		}
		groups := tx.Model(&gormModels.AircraftGroup{}).Select("id").Where("owner_id = ?", id)
		if err := tx.Where("group_id IN (?)", groups).Delete(&gormModels.AircraftGroupMember{}).Error; err != nil {
			return fmt.Errorf("failed to delete group memberships: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&gormModels.Aircraft{}).Error; err != nil {
			return fmt.Errorf("failed to delete aircraft: %w", err)
		}
		if err := tx.Where("owner_id = ?", id).Delete(&gormModels.AircraftGroup{}).Error; err != nil {
			return fmt.Errorf("failed to delete groups: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return imageKeys, nil
}
