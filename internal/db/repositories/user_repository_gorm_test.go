package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"woa-fleet/hangar/internal/constants"
	gormModels "woa-fleet/hangar/internal/models/gorm"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	repo := NewUserRepositoryGORM(setupTestDB(t))
	ctx := context.Background()

	u := &gormModels.User{Username: "maverick", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, constants.RoleUser, u.Role)

	byName, err := repo.GetByUsername(ctx, "maverick")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	_, err = repo.GetByID(ctx, "ghost")
	assert.ErrorIs(t, err, constants.ErrUserNotFound)

	err = repo.Create(ctx, &gormModels.User{Username: "maverick", PasswordHash: "other"})
	assert.ErrorIs(t, err, constants.ErrUsernameTaken)
}

func TestUserRepository_UpdateUsername(t *testing.T) {
	repo := NewUserRepositoryGORM(setupTestDB(t))
	ctx := context.Background()
	a := &gormModels.User{Username: "goose", PasswordHash: "x"}
	b := &gormModels.User{Username: "iceman", PasswordHash: "x"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.UpdateUsername(ctx, a.ID, "goose2"))
	assert.ErrorIs(t, repo.UpdateUsername(ctx, a.ID, "iceman"), constants.ErrUsernameTaken)
	assert.ErrorIs(t, repo.UpdateUsername(ctx, "ghost", "whoever"), constants.ErrUserNotFound)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserRepository_DeleteCascade(t *testing.T) {
	orm := setupTestDB(t)
	users := NewUserRepositoryGORM(orm)
	aircraft := NewAircraftRepositoryGORM(orm)
	groups := NewGroupRepositoryGORM(orm)
	ctx := context.Background()

	victim := &gormModels.User{Username: "victim", PasswordHash: "x"}
	bystander := &gormModels.User{Username: "bystander", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, victim))
	require.NoError(t, users.Create(ctx, bystander))

	key := "images/victim.png"
	owned := newAircraft(victim.ID, "VIC1")
	owned.ImageKey = &key
	require.NoError(t, aircraft.Create(ctx, owned))
	kept := newAircraft(bystander.ID, "KEEP1")
	require.NoError(t, aircraft.Create(ctx, kept))

	g := newGroup(victim.ID, "Victim group")
	require.NoError(t, groups.Create(ctx, g))
	require.NoError(t, groups.AddMember(ctx, g.ID, owned.ID))

	keys, err := users.DeleteCascade(ctx, victim.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{key}, keys)

	_, err = users.GetByID(ctx, victim.ID)
	assert.ErrorIs(t, err, constants.ErrUserNotFound)
	_, err = aircraft.GetByID(ctx, owned.ID)
	assert.ErrorIs(t, err, constants.ErrAircraftNotFound)
	_, err = groups.GetByID(ctx, g.ID)
	assert.ErrorIs(t, err, constants.ErrGroupNotFound)
	ids, err := groups.MemberIDs(ctx, g.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = aircraft.GetByID(ctx, kept.ID)
	assert.NoError(t, err)

	_, err = users.DeleteCascade(ctx, victim.ID)
	assert.ErrorIs(t, err, constants.ErrUserNotFound)
}
