package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"woa-fleet/hangar/internal/constants"
)

type AircraftGroup struct {
	ID          string                    `gorm:"column:id;primaryKey;type:uuid"`
	OwnerID     string                    `gorm:"column:owner_id;type:uuid;index;not null"`
	Name        string                    `gorm:"column:name;size:50;not null"`
	Description string                    `gorm:"column:description;size:500"`
	Colour      string                    `gorm:"column:colour;size:7;not null"`
	Visibility  constants.GroupVisibility `gorm:"column:visibility;type:varchar(16);not null"`
	CreatedAt   time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (AircraftGroup) TableName() string {
	return "aircraft_groups"
}

func (g *AircraftGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// AircraftGroupMember is the group side of membership. An aircraft is in
// at most one group, which Aircraft.AircraftGroupID mirrors.
type AircraftGroupMember struct {
	GroupID    string    `gorm:"column:group_id;type:uuid;primaryKey"`
	AircraftID string    `gorm:"column:aircraft_id;type:uuid;primaryKey;uniqueIndex"`
	AddedAt    time.Time `gorm:"column:added_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (AircraftGroupMember) TableName() string {
	return "aircraft_group_members"
}
