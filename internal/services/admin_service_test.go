package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"woa-fleet/hangar/internal/constants"
	"woa-fleet/hangar/internal/lifecycle"
)

func TestAdminService_DeleteUserCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewAdminService(env.db, env.images, env.cache)
	createUser(t, env.db, admin, "boss")
	createUser(t, env.db, alice, "alice")
	createUser(t, env.db, bob, "bob")

	g := mustCreateGroup(t, env, alice, "Mine", constants.VisibilityPublic)
	a := mustCreateAircraft(t, env, alice, "G-GONE")
	require.NoError(t, env.groups.AddAircraft(ctx, alice, g.ID, a.ID))
	_, err := env.images.Upload(ctx, alice, a.ID, tinyPNG)
	require.NoError(t, err)
	withImage, err := env.aircraft.Get(ctx, alice, a.ID)
	require.NoError(t, err)
	kept := mustCreateAircraft(t, env, bob, "G-KEEP")

	_, err = env.aircraft.Stats(ctx, alice, lifecycle.StatsFilter{})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, admin, alice.UserID))

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = env.aircraft.Get(ctx, alice, a.ID)
	assert.ErrorIs(t, err, constants.ErrAircraftNotFound)
	_, err = env.groups.Get(ctx, alice, g.ID, lifecycle.Query{})
	assert.ErrorIs(t, err, constants.ErrGroupNotFound)
	_, err = env.store.Open(ctx, *withImage.ImageKey)
	assert.Error(t, err)
	_, err = env.aircraft.Get(ctx, bob, kept.ID)
	assert.NoError(t, err)

	_, found := env.cache.Get(fleetStatsPrefix(alice.UserID) + lifecycle.StatsFilter{}.Key())
	assert.False(t, found)

	assert.ErrorIs(t, svc.DeleteUser(ctx, admin, alice.UserID), constants.ErrUserNotFound)
	assert.ErrorIs(t, svc.DeleteUser(ctx, admin, admin.UserID), constants.ErrValidation)
}
