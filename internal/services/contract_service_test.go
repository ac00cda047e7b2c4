package services

import (
	"context"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"woa-fleet/hangar/internal/constants"
	"woa-fleet/hangar/internal/models/dtos"
)

func TestContractService_ComputerScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := mustCreateAircraft(t, env, alice, "G-COMP")

	a, err := env.contract.Create(ctx, alice, a.ID, dtos.CreateContractRequest{ContractType: "Computer", Destination: "jfk"})
	require.NoError(t, err)
	require.Len(t, a.Contracts, 1)
	assert.Equal(t, constants.StatusInService, a.Status)
	assert.Equal(t, "JFK", a.Contracts[0].Destination)
	contractID := a.Contracts[0].ID

	for _, p := range []float64{100, 200, 50} {
		_, err := env.contract.LogProfit(ctx, alice, a.ID, contractID, profit(p))
		require.NoError(t, err)
	}

	got, err := env.aircraft.Get(ctx, alice, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 350.0, got.TotalProfits)
	assert.Equal(t, []float64{100, 200, 50}, got.Contracts[0].Profits)
	assert.Equal(t, 3, got.Contracts[0].Progress)
	assert.Equal(t, constants.StatusInService, got.Status)
	assert.Equal(t, 3.0, testutil.ToFloat64(env.metrics.ProfitLoggedTotal))

	finished, err := env.contract.Finish(ctx, alice, a.ID, contractID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusIdle, finished.Status)
	assert.True(t, finished.Contracts[0].Finished)

	// finishing again is a no-op
	_, err = env.contract.Finish(ctx, alice, a.ID, contractID)
	assert.NoError(t, err)
}

func TestContractService_PlayerAutoFinishes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := mustCreateAircraft(t, env, alice, "G-PLYR")

	a, err := env.contract.Create(ctx, alice, a.ID, dtos.CreateContractRequest{ContractType: "Player", Player: "Maverick", Destination: "SAN"})
	require.NoError(t, err)
	contractID := a.Contracts[0].ID

	for i := 0; i < constants.PlayerContractLength; i++ {
		a, err = env.contract.LogProfit(ctx, alice, a.ID, contractID, profit(10))
		require.NoError(t, err)
	}
	assert.True(t, a.Contracts[0].Finished)
	assert.Equal(t, constants.StatusIdle, a.Status)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.ContractEventsTotal.WithLabelValues("completed", "Player")))

	_, err = env.contract.LogProfit(ctx, alice, a.ID, contractID, profit(10))
	assert.ErrorIs(t, err, constants.ErrContractFinished)

	got, err := env.aircraft.Get(ctx, alice, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.TotalProfits)
}

func TestContractService_SecondActiveRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := mustCreateAircraft(t, env, alice, "G-TWO")

	_, err := env.contract.Create(ctx, alice, a.ID, dtos.CreateContractRequest{ContractType: "Random", Destination: "LAX"})
	require.NoError(t, err)
	_, err = env.contract.Create(ctx, alice, a.ID, dtos.CreateContractRequest{ContractType: "Random", Destination: "SFO"})
	assert.ErrorIs(t, err, constants.ErrActiveContractExists)

	got, err := env.aircraft.Get(ctx, alice, a.ID)
	require.NoError(t, err)
	assert.Len(t, got.Contracts, 1)
	assert.Equal(t, "LAX", got.Contracts[0].Destination)
}

func TestContractService_DeleteKeepsProfits(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := mustCreateAircraft(t, env, alice, "G-DELC")

	a, err := env.contract.Create(ctx, alice, a.ID, dtos.CreateContractRequest{ContractType: "Random", Destination: "LAX"})
	require.NoError(t, err)
	first := a.Contracts[0].ID
	_, err = env.contract.LogProfit(ctx, alice, a.ID, first, profit(40))
	require.NoError(t, err)
	_, err = env.contract.Finish(ctx, alice, a.ID, first)
	require.NoError(t, err)

	a, err = env.contract.Create(ctx, alice, a.ID, dtos.CreateContractRequest{ContractType: "Random", Destination: "SFO"})
	require.NoError(t, err)
	second := a.Contracts[0].ID
	assert.Equal(t, constants.StatusInService, a.Status)

	a, err = env.contract.Delete(ctx, alice, a.ID, second)
	require.NoError(t, err)
	require.Len(t, a.Contracts, 1)
	assert.Equal(t, first, a.Contracts[0].ID)
	assert.Equal(t, constants.StatusIdle, a.Status)
	assert.Equal(t, 40.0, a.TotalProfits)

	_, err = env.contract.Delete(ctx, alice, a.ID, second)
	assert.ErrorIs(t, err, constants.ErrContractNotFound)
}

func TestContractService_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := mustCreateAircraft(t, env, alice, "G-ERR")
	a, err := env.contract.Create(ctx, alice, a.ID, dtos.CreateContractRequest{ContractType: "Computer", Destination: "JFK"})
	require.NoError(t, err)
	contractID := a.Contracts[0].ID

	_, err = env.contract.LogProfit(ctx, alice, a.ID, contractID, dtos.LogProfitRequest{})
	assert.ErrorIs(t, err, constants.ErrValidation)
	_, err = env.contract.LogProfit(ctx, alice, a.ID, contractID, profit(math.Inf(-1)))
	assert.ErrorIs(t, err, constants.ErrInvalidProfit)
	_, err = env.contract.LogProfit(ctx, bob, a.ID, contractID, profit(5))
	assert.ErrorIs(t, err, constants.ErrNotOwner)
	_, err = env.contract.Finish(ctx, alice, "00000000-0000-0000-0000-000000000999", contractID)
	assert.ErrorIs(t, err, constants.ErrAircraftNotFound)
	idle := mustCreateAircraft(t, env, alice, "G-IDLE")
	_, err = env.contract.Create(ctx, alice, idle.ID, dtos.CreateContractRequest{ContractType: "Charter", Destination: "JFK"})
	assert.ErrorIs(t, err, constants.ErrInvalidContractType)

	got, err := env.aircraft.Get(ctx, alice, a.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Contracts[0].Profits)
	assert.Zero(t, got.TotalProfits)
}
