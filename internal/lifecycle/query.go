package lifecycle

import (
	"cmp"
	"slices"
	"strings"

	"woa-fleet/hangar/internal/constants"
)

type SortKey string

const (
	SortNone         SortKey = ""
	SortRegistration SortKey = "registration"
	SortStatus       SortKey = "status"
	SortAirport      SortKey = "airport"
	SortType         SortKey = "type"
	SortSize         SortKey = "size"
	SortTotalProfits SortKey = "totalProfits"
	SortMeanProfit   SortKey = "meanProfit"
	SortLastHandled  SortKey = "lastHandled"
)

type SortMode string

const (
	SortAscending  SortMode = "asc"
	SortDescending SortMode = "desc"
)

type FilterKey string

const (
	FilterNone         FilterKey = ""
	FilterSize         FilterKey = "size"
	FilterAirport      FilterKey = "airport"
	FilterStatus       FilterKey = "status"
	FilterType         FilterKey = "type"
	FilterModel        FilterKey = "model"
	FilterRegistration FilterKey = "registration"
	FilterDestination  FilterKey = "destination"
	FilterContractType FilterKey = "contractType"
	FilterPlayer       FilterKey = "player"
)

// Query is a parsed sort and single-key filter request.
type Query struct {
	SortBy      SortKey
	SortMode    SortMode
	FilterBy    FilterKey
	FilterValue string
}

// ParseQuery validates raw query-string values. Empty values mean "none";
// the sort mode defaults to ascending.
func ParseQuery(sortBy, sortMode, filterBy, filterValue string) (Query, error) {
	q := Query{
		SortBy:      SortKey(sortBy),
		SortMode:    SortMode(strings.ToLower(sortMode)),
		FilterBy:    FilterKey(filterBy),
		FilterValue: strings.TrimSpace(filterValue),
	}

	switch q.SortBy {
	case SortNone, SortRegistration, SortStatus, SortAirport, SortType, SortSize,
		SortTotalProfits, SortMeanProfit, SortLastHandled:
	default:
		return Query{}, constants.ErrInvalidSortKey
	}

	switch q.SortMode {
	case "":
		q.SortMode = SortAscending
	case SortAscending, SortDescending:
	default:
		return Query{}, constants.ErrInvalidSortMode
	}

	switch q.FilterBy {
	case FilterNone, FilterSize, FilterAirport, FilterStatus, FilterType, FilterModel,
		FilterRegistration, FilterDestination, FilterContractType, FilterPlayer:
	default:
		return Query{}, constants.ErrInvalidFilterKey
	}

	return q, nil
}

// Apply filters then sorts, returning a new slice.
func Apply[T Tracked](list []T, q Query) []T {
	out := FilterAircraft(list, q.FilterBy, q.FilterValue)
	SortAircraft(out, q.SortBy, q.SortMode)
	return out
}

// compareBy orders a against b for one key. aMissing/bMissing report an
// aircraft with no value for the key (no current contract, no profits yet).
func compareBy(key SortKey, a, b Record) (result int, aMissing, bMissing bool) {
	switch key {
	case SortRegistration:
		return strings.Compare(a.Registration, b.Registration), false, false
	case SortStatus:
		return strings.Compare(string(a.Status), string(b.Status)), false, false
	case SortAirport:
		return strings.Compare(a.Airport, b.Airport), false, false
	case SortType:
		return strings.Compare(string(a.Type), string(b.Type)), false, false
	case SortSize:
		return cmp.Compare(a.Size.Ordinal(), b.Size.Ordinal()), false, false
	case SortTotalProfits:
		return cmp.Compare(a.TotalProfits, b.TotalProfits), false, false
	case SortMeanProfit:
		am, aok := meanOfCurrent(a)
		bm, bok := meanOfCurrent(b)
		if !aok || !bok {
			return 0, !aok, !bok
		}
		return cmp.Compare(am, bm), false, false
	case SortLastHandled:
		ac, bc := a.CurrentContract(), b.CurrentContract()
		aMissing = ac == nil || ac.LastHandled == nil
		bMissing = bc == nil || bc.LastHandled == nil
		if aMissing || bMissing {
			return 0, aMissing, bMissing
		}
		return ac.LastHandled.Compare(*bc.LastHandled), false, false
	}
	return 0, false, false
}

func meanOfCurrent(r Record) (float64, bool) {
	c := r.CurrentContract()
	if c == nil {
		return 0, false
	}
	return c.MeanProfit()
}

// SortAircraft sorts in place and is stable. Aircraft with no value for a
// contract-derived key go last in either direction.
func SortAircraft[T Tracked](list []T, key SortKey, mode SortMode) {
	if key == SortNone {
		return
	}
	desc := mode == SortDescending

	slices.SortStableFunc(list, func(x, y T) int {
		a, b := x.LifecycleRecord(), y.LifecycleRecord()
		res, aMissing, bMissing := compareBy(key, a, b)
		switch {
		case aMissing && bMissing:
			return 0
		case aMissing:
			return 1
		case bMissing:
			return -1
		}
		if desc {
			return -res
		}
		return res
	})
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// Matches reports whether the record passes a single filter.
func Matches(r Record, key FilterKey, value string) bool {
	if key == FilterNone || value == "" {
		return true
	}

	switch key {
	case FilterSize:
		return strings.EqualFold(string(r.Size), value)
	case FilterAirport:
		return strings.EqualFold(r.Airport, value)
	case FilterStatus:
		return containsFold(string(r.Status), value)
	case FilterType:
		return containsFold(string(r.Type), value)
	case FilterModel:
		return containsFold(r.Model, value)
	case FilterRegistration:
		return containsFold(r.Registration, value)
	}

	c := r.CurrentContract()
	if c == nil {
		return false
	}
	switch key {
	case FilterDestination:
		return containsFold(c.Destination, value)
	case FilterContractType:
		return containsFold(string(c.ContractType), value)
	case FilterPlayer:
		return containsFold(c.Player, value)
	}
	return false
}

// FilterAircraft returns the aircraft matching one filter key, preserving
// order. The input slice is not modified.
func FilterAircraft[T Tracked](list []T, key FilterKey, value string) []T {
	out := make([]T, 0, len(list))
	for _, item := range list {
		if Matches(item.LifecycleRecord(), key, value) {
			out = append(out, item)
		}
	}
	return out
}
