package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"woa-fleet/hangar/internal/config"
	"woa-fleet/hangar/internal/constants"
	"woa-fleet/hangar/internal/db"
	"woa-fleet/hangar/internal/db/repositories"
	"woa-fleet/hangar/internal/models/dtos"
)

func newInvitationTestService(t *testing.T) *InvitationService {
	t.Helper()
	orm := setupTestDB(t)
	sqlxDB, err := db.InitSQLX(config.DBConfig{Driver: "sqlite"}, orm)
	require.NoError(t, err)
	return NewInvitationService(repositories.NewInvitationRepo(sqlxDB))
}

func TestInvitationService_Lifecycle(t *testing.T) {
	svc := newInvitationTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, dtos.CreateInvitationRequest{Code: "X", RemainingUses: 0})
	assert.ErrorIs(t, err, constants.ErrInvalidRemainingUses)

	generated, err := svc.Create(ctx, dtos.CreateInvitationRequest{RemainingUses: 1})
	require.NoError(t, err)
	assert.Len(t, generated.Code, generatedCodeLength)

	named, err := svc.Create(ctx, dtos.CreateInvitationRequest{Code: " FRIENDS ", RemainingUses: 2})
	require.NoError(t, err)
	assert.Equal(t, "FRIENDS", named.Code)

	_, err = svc.Create(ctx, dtos.CreateInvitationRequest{Code: "FRIENDS", RemainingUses: 2})
	assert.ErrorIs(t, err, constants.ErrInvitationExists)

	left, err := svc.Consume(ctx, "FRIENDS")
	require.NoError(t, err)
	assert.Equal(t, 1, left)
	left, err = svc.Consume(ctx, "FRIENDS")
	require.NoError(t, err)
	assert.Equal(t, 0, left)
	_, err = svc.Consume(ctx, "FRIENDS")
	assert.ErrorIs(t, err, constants.ErrInvalidInvitation)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, svc.Delete(ctx, named.ID))
	assert.ErrorIs(t, svc.Delete(ctx, named.ID), constants.ErrInvitationNotFound)
}
