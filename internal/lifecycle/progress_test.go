package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"woa-fleet/hangar/internal/constants"
)

func TestViewProgress_Player(t *testing.T) {
	tests := []struct {
		progress int
		percent  float64
	}{
		{0, 0},
		{3, 30},
		{10, 100},
		{12, 100},
	}

	for _, tt := range tests {
		v := ViewProgress(Contract{ContractType: constants.ContractPlayer, Progress: tt.progress})
		assert.Equal(t, tt.progress, v.Value)
		assert.Equal(t, constants.PlayerContractLength, v.CycleLength)
		assert.Equal(t, tt.percent, v.Percent)
	}
}

func TestViewProgress_Cycles(t *testing.T) {
	tests := []struct {
		progress int
		leg      int
		length   int
	}{
		{0, 0, 1},
		{1, 0, 2},
		{2, 1, 2},
		{3, 0, 3},
		{5, 2, 3},
		{6, 0, 4},
		// 1+2+...+10 = 55, after which every cycle is 10 long.
		{54, 9, 10},
		{55, 0, 10},
		{67, 2, 10},
	}

	for _, tt := range tests {
		v := ViewProgress(Contract{ContractType: constants.ContractRandom, Progress: tt.progress})
		assert.Equal(t, tt.leg, v.Leg, "leg for progress %d", tt.progress)
		assert.Equal(t, tt.length, v.CycleLength, "length for progress %d", tt.progress)
		assert.InDelta(t, float64(tt.leg)*100/float64(tt.length), v.Percent, 1e-9)
	}
}
