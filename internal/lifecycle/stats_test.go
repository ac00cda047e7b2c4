package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"woa-fleet/hangar/internal/constants"
)

func TestComputeStats(t *testing.T) {
	s := ComputeStats(fleet(), StatsFilter{})
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 800.0, s.TotalProfits)
	assert.Equal(t, 1, s.BySize[constants.SizeSmall])
	assert.Equal(t, 2, s.ByStatus[constants.StatusInService])
	assert.Equal(t, 1, s.ByStatus[constants.StatusSold])
	assert.Equal(t, 1, s.ByAirport["LHR"])
	assert.Equal(t, 1, s.ByAirport["lhr"])
}

func TestComputeStats_Filters(t *testing.T) {
	s := ComputeStats(fleet(), StatsFilter{Airport: "lhr", Type: constants.AircraftTypePax})
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, 500.0, s.TotalProfits)

	s = ComputeStats(fleet(), StatsFilter{Size: constants.SizeMedium, Type: constants.AircraftTypePax})
	assert.Zero(t, s.Count)
	assert.Len(t, s.BySize, len(constants.AircraftSizes))
	assert.Len(t, s.ByStatus, len(constants.AircraftStatuses))
	assert.Zero(t, s.ByStatus[constants.StatusIdle])
}

func TestStatsFilterKey(t *testing.T) {
	assert.Equal(t, StatsFilter{Airport: "lhr"}.Key(), StatsFilter{Airport: "LHR"}.Key())
	assert.NotEqual(t, StatsFilter{Size: constants.SizeSmall}.Key(), StatsFilter{}.Key())
}
