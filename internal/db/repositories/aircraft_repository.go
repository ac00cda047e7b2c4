package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"woa-fleet/hangar/internal/constants"
	gormModels "woa-fleet/hangar/internal/models/gorm"
)

type AircraftRepositoryGORM struct {
	db *gorm.DB
}

// NewAircraftRepositoryGORM creates a new GORM-based aircraft repository
func NewAircraftRepositoryGORM(db *gorm.DB) *AircraftRepositoryGORM {
	return &AircraftRepositoryGORM{db: db}
}

// WithTx returns a copy bound to an open transaction.
func (r *AircraftRepositoryGORM) WithTx(tx *gorm.DB) *AircraftRepositoryGORM {
	return &AircraftRepositoryGORM{db: tx}
}

func (r *AircraftRepositoryGORM) Create(ctx context.Context, aircraft *gormModels.Aircraft) error {
	err := r.db.WithContext(ctx).Create(aircraft).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return constants.ErrRegistrationExists
	}
	if err != nil {
		return fmt.Errorf("failed to create aircraft: %w", err)
	}
	return nil
}

func (r *AircraftRepositoryGORM) GetByID(ctx context.Context, id string) (*gormModels.Aircraft, error) {
	var aircraft gormModels.Aircraft
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&aircraft).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, constants.ErrAircraftNotFound
		}
		return nil, fmt.Errorf("failed to fetch aircraft: %w", err)
	}
	return &aircraft, nil
}

// GetOwned loads an aircraft and checks it belongs to userID. A missing
// aircraft is ErrAircraftNotFound, someone else's is ErrNotOwner.
func (r *AircraftRepositoryGORM) GetOwned(ctx context.Context, id, userID string) (*gormModels.Aircraft, error) {
	aircraft, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if aircraft.UserID != userID {
		return nil, constants.ErrNotOwner
	}
	return aircraft, nil
}

// ListByOwner returns the user's fleet, oldest first.
func (r *AircraftRepositoryGORM) ListByOwner(ctx context.Context, userID string) ([]gormModels.Aircraft, error) {
	var list []gormModels.Aircraft
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list aircraft: %w", err)
	}
	return list, nil
}

// ListByIDs keeps the order of ids and silently skips unknown ones.
func (r *AircraftRepositoryGORM) ListByIDs(ctx context.Context, ids []string) ([]gormModels.Aircraft, error) {
	if len(ids) == 0 {
		return []gormModels.Aircraft{}, nil
	}

	var found []gormModels.Aircraft
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to list aircraft by id: %w", err)
	}

	byID := make(map[string]gormModels.Aircraft, len(found))
	for _, a := range found {
		byID[a.ID] = a
	}
	list := make([]gormModels.Aircraft, 0, len(found))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			list = append(list, a)
		}
	}
	return list, nil
}

func (r *AircraftRepositoryGORM) CountByOwner(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gormModels.Aircraft{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count aircraft: %w", err)
	}
	return count, nil
}

// ExistsByRegistration checks the global registration namespace,
// ignoring excludeID so an aircraft can keep its own code on update.
func (r *AircraftRepositoryGORM) ExistsByRegistration(ctx context.Context, registration, excludeID string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&gormModels.Aircraft{}).Where("registration = ?", registration)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check registration: %w", err)
	}
	return count > 0, nil
}

// Save writes the whole aircraft row, contracts included.
func (r *AircraftRepositoryGORM) Save(ctx context.Context, aircraft *gormModels.Aircraft) error {
	err := r.db.WithContext(ctx).Save(aircraft).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return constants.ErrRegistrationExists
	}
	if err != nil {
		return fmt.Errorf("failed to save aircraft: %w", err)
	}
	return nil
}

// SetGroup points the aircraft at a group, or clears it when groupID is nil.
func (r *AircraftRepositoryGORM) SetGroup(ctx context.Context, id string, groupID *string) error {
	err := r.db.WithContext(ctx).
		Model(&gormModels.Aircraft{}).
		Where("id = ?", id).
		Update("aircraft_group_id", groupID).Error
	if err != nil {
		return fmt.Errorf("failed to set aircraft group: %w", err)
	}
	return nil
}

func (r *AircraftRepositoryGORM) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&gormModels.Aircraft{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete aircraft: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return constants.ErrAircraftNotFound
	}
	return nil
}
