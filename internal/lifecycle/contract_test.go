package lifecycle

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"woa-fleet/hangar/internal/constants"
)

var testNow = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

func newRecord() *Record {
	return &Record{
		Model:        "A320neo",
		Size:         constants.SizeMedium,
		Type:         constants.AircraftTypePax,
		Registration: "ABC123",
		Airport:      "LHR",
		Status:       constants.StatusIdle,
		Contracts:    Contracts{},
	}
}

func openComputer(t *testing.T, r *Record, id string) *Contract {
	t.Helper()
	c, err := OpenContract(r, ContractInput{Type: constants.ContractComputer, Destination: "cdg"}, id, testNow)
	require.NoError(t, err)
	return c
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name      string
		contracts []Contract
		current   constants.AircraftStatus
		want      constants.AircraftStatus
	}{
		{"no contracts", nil, constants.StatusInService, constants.StatusIdle},
		{"all finished", []Contract{{Finished: true}, {Finished: true}}, constants.StatusInService, constants.StatusIdle},
		{"one unfinished", []Contract{{Finished: true}, {Finished: false}}, constants.StatusIdle, constants.StatusInService},
		{"sold with unfinished", []Contract{{Finished: false}}, constants.StatusSold, constants.StatusSold},
		{"sold empty", nil, constants.StatusSold, constants.StatusSold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.contracts, tt.current))
		})
	}
}

func TestOpenContract_PrependsAndGoesInService(t *testing.T) {
	r := newRecord()
	first := openComputer(t, r, "c1")
	assert.Equal(t, "CDG", first.Destination)
	assert.Empty(t, first.Profits)
	assert.Equal(t, 0, first.Progress)
	assert.False(t, first.Finished)
	require.NotNil(t, first.LastHandled)
	assert.Equal(t, constants.StatusInService, r.Status)

	_, err := FinishContract(r, "c1")
	require.NoError(t, err)

	second := openComputer(t, r, "c2")
	assert.Equal(t, "c2", second.ID)
	require.Len(t, r.Contracts, 2)
	assert.Equal(t, "c2", r.Contracts[0].ID)
	assert.Equal(t, "c1", r.Contracts[1].ID)
}

func TestOpenContract_RejectsSecondActiveWithoutMutation(t *testing.T) {
	r := newRecord()
	openComputer(t, r, "c1")
	before := *r
	beforeContracts := append(Contracts{}, r.Contracts...)

	_, err := OpenContract(r, ContractInput{Type: constants.ContractRandom, Destination: "JFK"}, "c2", testNow)
	assert.ErrorIs(t, err, constants.ErrActiveContractExists)
	assert.ErrorIs(t, err, constants.ErrConflict)
	assert.Equal(t, before.Status, r.Status)
	assert.Equal(t, beforeContracts, r.Contracts)
}

func TestOpenContract_LimitReached(t *testing.T) {
	r := newRecord()
	for i := 0; i < constants.MaxContractsPerAircraft; i++ {
		id := fmt.Sprintf("c%d", i)
		openComputer(t, r, id)
		_, err := FinishContract(r, id)
		require.NoError(t, err)
	}

	_, err := OpenContract(r, ContractInput{Type: constants.ContractComputer, Destination: "JFK"}, "extra", testNow)
	assert.ErrorIs(t, err, constants.ErrContractLimitReached)
	assert.Len(t, r.Contracts, constants.MaxContractsPerAircraft)
	assert.Equal(t, constants.StatusIdle, r.Status)
}

func TestOpenContract_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   ContractInput
		want error
	}{
		{"bad type", ContractInput{Type: "Charter", Destination: "JFK"}, constants.ErrInvalidContractType},
		{"missing destination", ContractInput{Type: constants.ContractRandom, Destination: "  "}, constants.ErrDestinationRequired},
		{"player without name", ContractInput{Type: constants.ContractPlayer, Destination: "JFK"}, constants.ErrPlayerRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRecord()
			_, err := OpenContract(r, tt.in, "c1", testNow)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, constants.ErrValidation)
			assert.Empty(t, r.Contracts)
			assert.Equal(t, constants.StatusIdle, r.Status)
		})
	}
}

func TestOpenContract_DropsPlayerForNonPlayerTypes(t *testing.T) {
	r := newRecord()
	c, err := OpenContract(r, ContractInput{Type: constants.ContractRandom, Player: "someone", Destination: "JFK"}, "c1", testNow)
	require.NoError(t, err)
	assert.Empty(t, c.Player)
}

func TestLogProfit_ComputerScenario(t *testing.T) {
	r := newRecord()
	openComputer(t, r, "c1")

	for _, p := range []float64{100, 200, 50} {
		_, err := LogProfit(r, "c1", p, testNow.Add(time.Minute))
		require.NoError(t, err)
	}

	c := r.Contracts[0]
	assert.Equal(t, 350.0, r.TotalProfits)
	assert.Equal(t, []float64{100, 200, 50}, c.Profits)
	assert.Equal(t, 3, c.Progress)
	assert.False(t, c.Finished)
	assert.Equal(t, testNow.Add(time.Minute), *c.LastHandled)
	assert.Equal(t, constants.StatusInService, r.Status)

	_, err := FinishContract(r, "c1")
	require.NoError(t, err)
	assert.Equal(t, constants.StatusIdle, r.Status)
}

func TestLogProfit_PlayerAutoFinishesAtTen(t *testing.T) {
	r := newRecord()
	_, err := OpenContract(r, ContractInput{Type: constants.ContractPlayer, Player: "Maverick", Destination: "SAN"}, "p1", testNow)
	require.NoError(t, err)

	for i := 0; i < constants.PlayerContractLength; i++ {
		require.False(t, r.Contracts[0].Finished, "finished early at %d", i)
		_, err := LogProfit(r, "p1", 10, testNow)
		require.NoError(t, err)
	}

	assert.True(t, r.Contracts[0].Finished)
	assert.Equal(t, 100.0, r.TotalProfits)
	assert.Equal(t, constants.StatusIdle, r.Status)

	_, err = LogProfit(r, "p1", 10, testNow)
	assert.ErrorIs(t, err, constants.ErrContractFinished)
	assert.Equal(t, 100.0, r.TotalProfits)
}

func TestLogProfit_Fractional(t *testing.T) {
	r := newRecord()
	openComputer(t, r, "c1")
	_, err := LogProfit(r, "c1", 12.5, testNow)
	require.NoError(t, err)
	_, err = LogProfit(r, "c1", -2.25, testNow)
	require.NoError(t, err)
	assert.InDelta(t, 10.25, r.TotalProfits, 1e-9)
}

func TestLogProfit_Errors(t *testing.T) {
	r := newRecord()
	openComputer(t, r, "c1")

	_, err := LogProfit(r, "missing", 5, testNow)
	assert.ErrorIs(t, err, constants.ErrContractNotFound)

	_, err = LogProfit(r, "c1", math.NaN(), testNow)
	assert.ErrorIs(t, err, constants.ErrInvalidProfit)

	_, err = LogProfit(r, "c1", math.Inf(1), testNow)
	assert.ErrorIs(t, err, constants.ErrInvalidProfit)

	assert.Zero(t, r.TotalProfits)
	assert.Empty(t, r.Contracts[0].Profits)
}

func TestRemoveContract_KeepsSiblingsAndCascades(t *testing.T) {
	r := newRecord()
	openComputer(t, r, "old")
	_, err := LogProfit(r, "old", 40, testNow)
	require.NoError(t, err)
	_, err = FinishContract(r, "old")
	require.NoError(t, err)
	openComputer(t, r, "new")
	assert.Equal(t, constants.StatusInService, r.Status)

	require.NoError(t, RemoveContract(r, "new"))
	require.Len(t, r.Contracts, 1)
	assert.Equal(t, "old", r.Contracts[0].ID)
	assert.Equal(t, []float64{40}, r.Contracts[0].Profits)
	assert.Equal(t, constants.StatusIdle, r.Status)
	assert.Equal(t, 40.0, r.TotalProfits)

	assert.ErrorIs(t, RemoveContract(r, "new"), constants.ErrContractNotFound)
}

func TestFinishContract_NotFound(t *testing.T) {
	r := newRecord()
	_, err := FinishContract(r, "nope")
	assert.ErrorIs(t, err, constants.ErrContractNotFound)
}

func TestSell_FinishesEverythingAndBlocksFurtherWork(t *testing.T) {
	r := newRecord()
	openComputer(t, r, "c1")

	Sell(r)
	assert.Equal(t, constants.StatusSold, r.Status)
	for _, c := range r.Contracts {
		assert.True(t, c.Finished)
	}

	_, err := LogProfit(r, "c1", 10, testNow)
	assert.ErrorIs(t, err, constants.ErrAircraftSold)

	_, err = OpenContract(r, ContractInput{Type: constants.ContractRandom, Destination: "JFK"}, "c2", testNow)
	assert.ErrorIs(t, err, constants.ErrAircraftSold)

	_, err = FinishContract(r, "c1")
	require.NoError(t, err)
	require.NoError(t, RemoveContract(r, "c1"))
	assert.Equal(t, constants.StatusSold, r.Status)
}

func TestBackfillLastHandled(t *testing.T) {
	stamped := testNow.Add(-time.Hour)
	r := newRecord()
	r.Contracts = Contracts{{ID: "a"}, {ID: "b", LastHandled: &stamped}}

	assert.True(t, r.BackfillLastHandled(testNow))
	assert.Equal(t, testNow, *r.Contracts[0].LastHandled)
	assert.Equal(t, stamped, *r.Contracts[1].LastHandled)
	assert.False(t, r.BackfillLastHandled(testNow))
}

func TestContracts_ScanValue(t *testing.T) {
	in := Contracts{{ID: "a", ContractType: constants.ContractRandom, Destination: "JFK", Profits: []float64{1.5}}}
	raw, err := in.Value()
	require.NoError(t, err)

	var out Contracts
	require.NoError(t, out.Scan(raw))
	assert.Equal(t, in, out)

	require.NoError(t, out.Scan(nil))
	assert.Empty(t, out)

	assert.Error(t, out.Scan(42))
}
