package gorm

import "time"

// Invitation only exists here so AutoMigrate owns the table; reads and
// writes go through the sqlx invitation repository.
type Invitation struct {
	ID            string    `gorm:"column:id;primaryKey;type:uuid"`
	Code          string    `gorm:"column:code;uniqueIndex;not null"`
	RemainingUses int       `gorm:"column:remaining_uses;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Invitation) TableName() string {
	return "invitations"
}

// Models lists every table AutoMigrate manages.
func Models() []any {
	return []any{&User{}, &Aircraft{}, &AircraftGroup{}, &AircraftGroupMember{}, &Invitation{}}
}
