package services

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"woa-fleet/hangar/internal/auth"
	"woa-fleet/hangar/internal/common"
	"woa-fleet/hangar/internal/config"
	"woa-fleet/hangar/internal/constants"
	"woa-fleet/hangar/internal/db"
	"woa-fleet/hangar/internal/metrics"
	"woa-fleet/hangar/internal/models/dtos"
	gormModels "woa-fleet/hangar/internal/models/gorm"
	"woa-fleet/hangar/internal/storage"
)

var testNow = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

var (
	alice = auth.Principal{UserID: "00000000-0000-0000-0000-00000000000a", Role: constants.RoleUser}
	bob   = auth.Principal{UserID: "00000000-0000-0000-0000-00000000000b", Role: constants.RoleUser}
	admin = auth.Principal{UserID: "00000000-0000-0000-0000-0000000000ad", Role: constants.RoleAdmin}
)

// 1x1 transparent PNG
var tinyPNG, _ = base64.StdEncoding.DecodeString("iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII=")

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

// testEnv bundles the services over one in-memory database.
type testEnv struct {
	db       *gorm.DB
	cache    *common.CacheService
	metrics  *metrics.MetricsRegistry
	fs       afero.Fs
	store    *storage.LocalImageStore
	images   *ImageService
	aircraft *AircraftService
	contract *ContractService
	groups   *GroupService
	shared   *SharedGroupService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	orm := setupTestDB(t)
	cache := common.NewCacheService(time.Minute, time.Minute)
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())

	fs := afero.NewMemMapFs()
	store, err := storage.NewLocalImageStore(fs, "images")
	require.NoError(t, err)

	images := NewImageService(orm, store, m)
	env := &testEnv{
		db:       orm,
		cache:    cache,
		metrics:  m,
		fs:       fs,
		store:    store,
		images:   images,
		aircraft: NewAircraftService(orm, cache, images, m),
		contract: NewContractService(orm, cache, m),
		groups:   NewGroupService(orm),
		shared:   NewSharedGroupService(orm, cache, m),
	}
	clock := func() time.Time { return testNow }
	env.aircraft.now = clock
	env.contract.now = clock
	env.groups.now = clock
	env.shared.now = clock
	return env
}

func createUser(t *testing.T, orm *gorm.DB, p auth.Principal, username string) {
	t.Helper()
	require.NoError(t, orm.Create(&gormModels.User{ID: p.UserID, Username: username, PasswordHash: "x", Role: p.Role}).Error)
}

func aircraftRequest(registration string) dtos.CreateAircraftRequest {
	return dtos.CreateAircraftRequest{
		Model:         "A320neo",
		Size:          "M",
		Type:          "PAX",
		Registration:  registration,
		Configuration: dtos.ConfigurationDTO{Economy: 150, Business: 24},
		Airport:       "lhr",
	}
}

func groupRequest(name string, visibility constants.GroupVisibility) dtos.CreateGroupRequest {
	return dtos.CreateGroupRequest{Name: name, Colour: "#336699", Visibility: string(visibility)}
}

func mustCreateAircraft(t *testing.T, env *testEnv, p auth.Principal, registration string) *gormModels.Aircraft {
	t.Helper()
	a, err := env.aircraft.Create(context.Background(), p, aircraftRequest(registration))
	require.NoError(t, err)
	return a
}

func mustCreateGroup(t *testing.T, env *testEnv, p auth.Principal, name string, visibility constants.GroupVisibility) *gormModels.AircraftGroup {
	t.Helper()
	g, err := env.groups.Create(context.Background(), p, groupRequest(name, visibility))
	require.NoError(t, err)
	return g
}

func profit(v float64) dtos.LogProfitRequest {
	return dtos.LogProfitRequest{Profit: &v}
}

func strPtr(s string) *string { return &s }
