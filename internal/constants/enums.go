package constants

// AircraftSize is the in-game size class. The declaration order is the
// sort order.
type AircraftSize string

const (
	SizeSmall  AircraftSize = "S"
	SizeMedium AircraftSize = "M"
	SizeLarge  AircraftSize = "L"
	SizeXLarge AircraftSize = "X"
)

var AircraftSizes = []AircraftSize{SizeSmall, SizeMedium, SizeLarge, SizeXLarge}

// Ordinal returns the position of the size in S<M<L<X, or -1.
func (s AircraftSize) Ordinal() int {
	for i, v := range AircraftSizes {
		if v == s {
			return i
		}
	}
	return -1
}

func (s AircraftSize) IsValid() bool { return s.Ordinal() >= 0 }

type AircraftType string

const (
	AircraftTypePax   AircraftType = "PAX"
	AircraftTypeCargo AircraftType = "CARGO"
)

func (t AircraftType) IsValid() bool {
	return t == AircraftTypePax || t == AircraftTypeCargo
}

// AircraftStatus is derived from contract state, except Sold which is
// terminal.
type AircraftStatus string

const (
	StatusIdle      AircraftStatus = "Idle"
	StatusInService AircraftStatus = "In Service"
	StatusSold      AircraftStatus = "Sold"
)

var AircraftStatuses = []AircraftStatus{StatusIdle, StatusInService, StatusSold}

type ContractType string

const (
	ContractPlayer   ContractType = "Player"
	ContractRandom   ContractType = "Random"
	ContractComputer ContractType = "Computer"
)

func (c ContractType) IsValid() bool {
	switch c {
	case ContractPlayer, ContractRandom, ContractComputer:
		return true
	}
	return false
}

type GroupVisibility string

const (
	VisibilityPublic     GroupVisibility = "Public"
	VisibilityRegistered GroupVisibility = "Registered"
	VisibilityPrivate    GroupVisibility = "Private"
)

func (v GroupVisibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityRegistered, VisibilityPrivate:
		return true
	}
	return false
}
