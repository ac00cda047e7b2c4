package lifecycle

import (
	"strings"

	"woa-fleet/hangar/internal/constants"
)

// StatsFilter narrows fleet statistics. Empty fields match everything and
// the fields compose.
type StatsFilter struct {
	Airport string
	Size    constants.AircraftSize
	Type    constants.AircraftType
}

func (f StatsFilter) matches(r Record) bool {
	if f.Airport != "" && !strings.EqualFold(f.Airport, r.Airport) {
		return false
	}
	if f.Size != "" && f.Size != r.Size {
		return false
	}
	if f.Type != "" && f.Type != r.Type {
		return false
	}
	return true
}

// Key is used for caching per filter combination.
func (f StatsFilter) Key() string {
	return strings.ToUpper(f.Airport) + "|" + string(f.Size) + "|" + string(f.Type)
}

type Stats struct {
	Count        int                              `json:"count"`
	TotalProfits float64                          `json:"totalProfits"`
	BySize       map[constants.AircraftSize]int   `json:"bySize"`
	ByStatus     map[constants.AircraftStatus]int `json:"byStatus"`
	ByAirport    map[string]int                   `json:"byAirport"`
}

// ComputeStats aggregates counts and profits over the matching aircraft.
func ComputeStats[T Tracked](list []T, f StatsFilter) Stats {
	s := Stats{
		BySize:    make(map[constants.AircraftSize]int, len(constants.AircraftSizes)),
		ByStatus:  make(map[constants.AircraftStatus]int, len(constants.AircraftStatuses)),
		ByAirport: make(map[string]int),
	}
	for _, size := range constants.AircraftSizes {
		s.BySize[size] = 0
	}
	for _, status := range constants.AircraftStatuses {
		s.ByStatus[status] = 0
	}

	for _, item := range list {
		r := item.LifecycleRecord()
		if !f.matches(r) {
			continue
		}
		s.Count++
		s.TotalProfits += r.TotalProfits
		s.BySize[r.Size]++
		s.ByStatus[r.Status]++
		s.ByAirport[r.Airport]++
	}
	return s
}
