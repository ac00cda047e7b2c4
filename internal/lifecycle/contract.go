package lifecycle

import (
	"math"
	"strings"
	"time"

	"woa-fleet/hangar/internal/constants"
)

// ContractInput is what a caller supplies when opening a contract.
type ContractInput struct {
	Type        constants.ContractType
	Player      string
	Destination string
}

func (in ContractInput) normalize() (ContractInput, error) {
	if !in.Type.IsValid() {
		return in, constants.ErrInvalidContractType
	}

	in.Destination = strings.ToUpper(strings.TrimSpace(in.Destination))
	if in.Destination == "" {
		return in, constants.ErrDestinationRequired
	}

	in.Player = strings.TrimSpace(in.Player)
	if in.Type == constants.ContractPlayer {
		if in.Player == "" {
			return in, constants.ErrPlayerRequired
		}
		if len(in.Player) > constants.MaxPlayerNameLength {
			return in, constants.Validationf("Player name must be at most %d characters", constants.MaxPlayerNameLength)
		}
	} else {
		in.Player = ""
	}
	return in, nil
}

// OpenContract prepends a new contract and puts the aircraft in service.
// The record is left untouched when any precondition fails.
func OpenContract(r *Record, in ContractInput, id string, now time.Time) (*Contract, error) {
	if r.Status == constants.StatusSold {
		return nil, constants.ErrAircraftSold
	}
	if r.ActiveContract() != nil {
		return nil, constants.ErrActiveContractExists
	}
	if len(r.Contracts) >= constants.MaxContractsPerAircraft {
		return nil, constants.ErrContractLimitReached
	}

	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	handled := now
	c := Contract{
		ID:           id,
		ContractType: in.Type,
		Player:       in.Player,
		Destination:  in.Destination,
		Profits:      []float64{},
		Progress:     0,
		Finished:     false,
		LastHandled:  &handled,
	}

	contracts := make(Contracts, 0, len(r.Contracts)+1)
	contracts = append(contracts, c)
	contracts = append(contracts, r.Contracts...)
	r.Contracts = contracts
	r.refreshStatus()

	return &r.Contracts[0], nil
}

// LogProfit appends amount to the contract, advances its progress, adds
// the amount to the aircraft total and re-derives status. Player
// contracts finish once PlayerContractLength profits are logged.
func LogProfit(r *Record, contractID string, amount float64, now time.Time) (*Contract, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, constants.ErrInvalidProfit
	}
	if r.Status == constants.StatusSold {
		return nil, constants.ErrAircraftSold
	}

	c, err := r.Contract(contractID)
	if err != nil {
		return nil, err
	}
	if c.Finished {
		return nil, constants.ErrContractFinished
	}

	c.Profits = append(c.Profits, amount)
	c.Progress++
	handled := now
	c.LastHandled = &handled
	if c.ContractType == constants.ContractPlayer && len(c.Profits) >= constants.PlayerContractLength {
		c.Finished = true
	}

	r.TotalProfits += amount
	r.refreshStatus()
	return c, nil
}

// FinishContract marks the contract finished. Finishing twice is a no-op.
func FinishContract(r *Record, contractID string) (*Contract, error) {
	c, err := r.Contract(contractID)
	if err != nil {
		return nil, err
	}
	c.Finished = true
	r.refreshStatus()
	return c, nil
}

// RemoveContract drops the contract. Profits already added to the
// aircraft total stay there.
func RemoveContract(r *Record, contractID string) error {
	i := r.indexOf(contractID)
	if i < 0 {
		return constants.ErrContractNotFound
	}

	contracts := make(Contracts, 0, len(r.Contracts)-1)
	contracts = append(contracts, r.Contracts[:i]...)
	contracts = append(contracts, r.Contracts[i+1:]...)
	r.Contracts = contracts
	r.refreshStatus()
	return nil
}

// Sell marks the aircraft Sold and finishes every contract.
func Sell(r *Record) {
	for i := range r.Contracts {
		r.Contracts[i].Finished = true
	}
	r.Status = constants.StatusSold
}
