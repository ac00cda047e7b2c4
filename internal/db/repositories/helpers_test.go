package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"woa-fleet/hangar/internal/config"
	"woa-fleet/hangar/internal/constants"
	"woa-fleet/hangar/internal/db"
	"woa-fleet/hangar/internal/lifecycle"
	gormModels "woa-fleet/hangar/internal/models/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	orm, err := db.InitORM(config.DBConfig{Driver: "sqlite", DSN: ":memory:"})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := orm.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return orm
}

func newAircraft(userID, registration string) *gormModels.Aircraft {
	return &gormModels.Aircraft{
		UserID: userID,
		Record: lifecycle.Record{
			Model:        "A320",
			Size:         constants.SizeMedium,
			Type:         constants.AircraftTypePax,
			Registration: registration,
			Airport:      "LHR",
			Status:       constants.StatusIdle,
		},
		Configuration: gormModels.Configuration{Economy: 150, Business: 24},
	}
}
