package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"woa-fleet/hangar/internal/constants"
	gormModels "woa-fleet/hangar/internal/models/gorm"
)

type GroupRepositoryGORM struct {
	db *gorm.DB
}

// NewGroupRepositoryGORM creates a new GORM-based aircraft group repository
func NewGroupRepositoryGORM(db *gorm.DB) *GroupRepositoryGORM {
	return &GroupRepositoryGORM{db: db}
}

func (r *GroupRepositoryGORM) WithTx(tx *gorm.DB) *GroupRepositoryGORM {
	return &GroupRepositoryGORM{db: tx}
}

func (r *GroupRepositoryGORM) Create(ctx context.Context, group *gormModels.AircraftGroup) error {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

func (r *GroupRepositoryGORM) GetByID(ctx context.Context, id string) (*gormModels.AircraftGroup, error) {
	var group gormModels.AircraftGroup
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, constants.ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to fetch group: %w", err)
	}
	return &group, nil
}

func (r *GroupRepositoryGORM) ListByOwner(ctx context.Context, ownerID string) ([]gormModels.AircraftGroup, error) {
	var groups []gormModels.AircraftGroup
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC, id ASC").
		Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

func (r *GroupRepositoryGORM) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gormModels.AircraftGroup{}).Where("owner_id = ?", ownerID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count groups: %w", err)
	}
	return count, nil
}

func (r *GroupRepositoryGORM) Save(ctx context.Context, group *gormModels.AircraftGroup) error {
	if err := r.db.WithContext(ctx).Save(group).Error; err != nil {
		return fmt.Errorf("failed to save group: %w", err)
	}
	return nil
}

// Delete removes only the group row; call DetachAll first in the same
// transaction.
func (r *GroupRepositoryGORM) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&gormModels.AircraftGroup{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete group: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return constants.ErrGroupNotFound
	}
	return nil
}

// AddMember moves the aircraft into the group, leaving any previous group.
func (r *GroupRepositoryGORM) AddMember(ctx context.Context, groupID, aircraftID string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("aircraft_id = ?", aircraftID).Delete(&gormModels.AircraftGroupMember{}).Error; err != nil {
		return fmt.Errorf("failed to leave previous group: %w", err)
	}
	if err := db.Create(&gormModels.AircraftGroupMember{GroupID: groupID, AircraftID: aircraftID}).Error; err != nil {
		return fmt.Errorf("failed to add group member: %w", err)
	}
	return nil
}

func (r *GroupRepositoryGORM) RemoveMember(ctx context.Context, groupID, aircraftID string) error {
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND aircraft_id = ?", groupID, aircraftID).
		Delete(&gormModels.AircraftGroupMember{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove group member: %w", err)
	}
	return nil
}

// MemberIDs returns aircraft ids in the order they joined.
func (r *GroupRepositoryGORM) MemberIDs(ctx context.Context, groupID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&gormModels.AircraftGroupMember{}).
		Where("group_id = ?", groupID).
		Order("added_at ASC, aircraft_id ASC").
		Pluck("aircraft_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	return ids, nil
}

// MemberCounts maps group id to member count for the given groups.
func (r *GroupRepositoryGORM) MemberCounts(ctx context.Context, groupIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(groupIDs))
	if len(groupIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		GroupID string
		Total   int
	}
	err := r.db.WithContext(ctx).
		Model(&gormModels.AircraftGroupMember{}).
		Select("group_id, COUNT(*) AS total").
		Where("group_id IN ?", groupIDs).
		Group("group_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count group members: %w", err)
	}
	for _, row := range rows {
		counts[row.GroupID] = row.Total
	}
	return counts, nil
}

// DetachAll empties the group and clears the pointer on its aircraft.
func (r *GroupRepositoryGORM) DetachAll(ctx context.Context, groupID string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("group_id = ?", groupID).Delete(&gormModels.AircraftGroupMember{}).Error; err != nil {
		return fmt.Errorf("failed to remove group members: %w", err)
	}
	err := db.Model(&gormModels.Aircraft{}).
		Where("aircraft_group_id = ?", groupID).
		Update("aircraft_group_id", nil).Error
	if err != nil {
		return fmt.Errorf("failed to detach aircraft: %w", err)
	}
	return nil
}
