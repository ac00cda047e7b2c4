package lifecycle

import "woa-fleet/hangar/internal/constants"

// DeriveStatus is the single place aircraft status is computed from
// contract state. Sold is terminal and is returned unchanged.
func DeriveStatus(contracts []Contract, current constants.AircraftStatus) constants.AircraftStatus {
	if current == constants.StatusSold {
		return constants.StatusSold
	}
	for _, c := range contracts {
		if !c.Finished {
			return constants.StatusInService
		}
	}
	return constants.StatusIdle
}

func (r *Record) refreshStatus() {
	r.Status = DeriveStatus(r.Contracts, r.Status)
}
