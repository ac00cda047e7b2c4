package lifecycle

import "woa-fleet/hangar/internal/constants"

// ProgressView is the display decomposition of a contract's progress
// counter. It is computed on read and never stored.
type ProgressView struct {
	Value       int     `json:"value"`
	Leg         int     `json:"leg"`
	CycleLength int     `json:"cycleLength"`
	Percent     float64 `json:"percent"`
}

// ViewProgress splits progress for display. Player contracts are a linear
// 0-10 counter. Random and Computer contracts run through cycles of length
// 1, 2, 3 ... up to 10, after which every cycle has length 10; Leg is the
// position inside the current cycle.
func ViewProgress(c Contract) ProgressView {
	if c.ContractType == constants.ContractPlayer {
		pct := float64(c.Progress) * 100 / constants.PlayerContractLength
		if pct > 100 {
			pct = 100
		}
		return ProgressView{
			Value:       c.Progress,
			Leg:         c.Progress,
			CycleLength: constants.PlayerContractLength,
			Percent:     pct,
		}
	}

	leg, length := c.Progress, 1
	for leg >= length {
		leg -= length
		if length < constants.MaxProgressCycleLength {
			length++
		}
	}
	return ProgressView{
		Value:       c.Progress,
		Leg:         leg,
		CycleLength: length,
		Percent:     float64(leg) * 100 / float64(length),
	}
}
