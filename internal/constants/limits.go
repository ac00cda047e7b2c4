package constants

import "time"

// Per-user and per-aircraft ceilings.
const (
	MaxAircraft             = 600
	MaxAircraftGroups       = 20
	MaxContractsPerAircraft = 10

	// PlayerContractLength is the number of logged profits after which a
	// Player contract finishes on its own.
	PlayerContractLength = 10

	// Random and Computer contracts grow their cycle length up to this.
	MaxProgressCycleLength = 10

	MinUsernameLength = 3
	MaxUsernameLength = 20
	MinPasswordLength = 6
	MaxPasswordLength = 100

	MaxModelLength                    = 100
	MaxRegistrationCodeLength         = 10
	MaxAirportCodeLength              = 3
	MaxPlayerNameLength               = 50
	MaxAircraftGroupNameLength        = 50
	MaxAircraftGroupDescriptionLength = 500

	MaxImageBytes = 5 << 20
)

const (
	FleetStatsTTL = 5 * time.Minute
	UsernameTTL   = 30 * time.Minute
)
