package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"woa-fleet/hangar/internal/constants"
)

type User struct {
	ID           string             `gorm:"column:id;primaryKey;type:uuid"`
	Username     string             `gorm:"column:username;uniqueIndex;size:20;not null"`
	PasswordHash string             `gorm:"column:password_hash;not null"`
	Role         constants.UserRole `gorm:"column:role;type:varchar(16);not null;default:user"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = constants.RoleUser
	}
	return nil
}
