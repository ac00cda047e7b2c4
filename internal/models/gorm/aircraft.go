package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"woa-fleet/hangar/internal/lifecycle"
)

// Configuration is the seat/cargo layout of an aircraft.
type Configuration struct {
	Economy  int `gorm:"column:e;not null;default:0" json:"e"`
	Business int `gorm:"column:b;not null;default:0" json:"b"`
	First    int `gorm:"column:f;not null;default:0" json:"f"`
	Cargo    int `gorm:"column:cargo;not null;default:0" json:"cargo"`
}

// Aircraft is one owned aircraft. Its contracts live in a JSON column so
// every contract change persists the aircraft as a whole.
type Aircraft struct {
	ID               string           `gorm:"column:id;primaryKey;type:uuid"`
	UserID           string           `gorm:"column:user_id;type:uuid;index;not null"`
	lifecycle.Record `gorm:"embedded"`
	Configuration    Configuration    `gorm:"embedded;embeddedPrefix:config_"`
	AircraftGroupID  *string          `gorm:"column:aircraft_group_id;type:uuid;index"`
	ImageKey         *string          `gorm:"column:image_key"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Aircraft) TableName() string {
	return "aircraft"
}

func (a *Aircraft) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Contracts == nil {
		a.Contracts = lifecycle.Contracts{}
	}
	return nil
}

// LifecycleRecord lets the lifecycle sort, filter and stats helpers work
// directly on persisted aircraft.
func (a Aircraft) LifecycleRecord() lifecycle.Record {
	return a.Record
}
