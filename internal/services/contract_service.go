package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"woa-fleet/hangar/internal/auth"
	"woa-fleet/hangar/internal/common"
	"woa-fleet/hangar/internal/constants"
	"woa-fleet/hangar/internal/db/repositories"
	"woa-fleet/hangar/internal/lifecycle"
	"woa-fleet/hangar/internal/logging"
	"woa-fleet/hangar/internal/metrics"
	"woa-fleet/hangar/internal/models/dtos"
	gormModels "woa-fleet/hangar/internal/models/gorm"
)

// ContractService runs contract operations as a load, apply, save cycle
// on the owning aircraft. Concurrent writes to the same aircraft are last
// writer wins.
type ContractService struct {
	aircraft *repositories.AircraftRepositoryGORM
	cache    common.CacheInterface
	metrics  *metrics.MetricsRegistry
	now      func() time.Time
	newID    func() string
}

func NewContractService(db *gorm.DB, cache common.CacheInterface, m *metrics.MetricsRegistry) *ContractService {
	return &ContractService{
		aircraft: repositories.NewAircraftRepositoryGORM(db),
		cache:    cache,
		metrics:  m,
		now:      systemNow,
		newID:    uuid.NewString,
	}
}

// mutate loads the caller's aircraft, applies fn to its record and saves
// the whole document when fn succeeds.
func (s *ContractService) mutate(ctx context.Context, p auth.Principal, aircraftID string, fn func(r *lifecycle.Record, now time.Time) error) (*gormModels.Aircraft, error) {
	aircraft, err := s.aircraft.GetOwned(ctx, aircraftID, p.UserID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	aircraft.BackfillLastHandled(now)
	if err := fn(&aircraft.Record, now); err != nil {
		return nil, err
	}
	if err := s.aircraft.Save(ctx, aircraft); err != nil {
		return nil, err
	}

	s.cache.DeletePrefix(fleetStatsPrefix(p.UserID))
	return aircraft, nil
}

func (s *ContractService) Create(ctx context.Context, p auth.Principal, aircraftID string, req dtos.CreateContractRequest) (*gormModels.Aircraft, error) {
	in := lifecycle.ContractInput{
		Type:        constants.ContractType(req.ContractType),
		Player:      req.Player,
		Destination: req.Destination,
	}

	var opened *lifecycle.Contract
	aircraft, err := s.mutate(ctx, p, aircraftID, func(r *lifecycle.Record, now time.Time) error {
		c, err := lifecycle.OpenContract(r, in, s.newID(), now)
		opened = c
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ContractEvent("opened", string(opened.ContractType))
	logging.Info("Contract opened",
		"aircraft_id", aircraftID,
		"contract_id", opened.ID,
		"contract_type", opened.ContractType,
		"destination", opened.Destination,
	)
	return aircraft, nil
}

// LogProfit records one leg's profit. A Player contract finishes itself
// on its tenth entry.
func (s *ContractService) LogProfit(ctx context.Context, p auth.Principal, aircraftID, contractID string, req dtos.LogProfitRequest) (*gormModels.Aircraft, error) {
	if req.Profit == nil {
		return nil, constants.Validationf("Profit is required")
	}
	amount := *req.Profit

	var logged lifecycle.Contract
	aircraft, err := s.mutate(ctx, p, aircraftID, func(r *lifecycle.Record, now time.Time) error {
		c, err := lifecycle.LogProfit(r, contractID, amount, now)
		if err != nil {
			return err
		}
		logged = *c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ProfitLogged()
	if logged.Finished {
		s.metrics.ContractEvent("completed", string(logged.ContractType))
	}
	logging.Info("Profit logged",
		"aircraft_id", aircraftID,
		"contract_id", contractID,
		"amount", amount,
		"progress", logged.Progress,
		"status", aircraft.Status,
	)
	return aircraft, nil
}

func (s *ContractService) Finish(ctx context.Context, p auth.Principal, aircraftID, contractID string) (*gormModels.Aircraft, error) {
	var finished lifecycle.Contract
	aircraft, err := s.mutate(ctx, p, aircraftID, func(r *lifecycle.Record, _ time.Time) error {
		c, err := lifecycle.FinishContract(r, contractID)
		if err != nil {
			return err
		}
		finished = *c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ContractEvent("finished", string(finished.ContractType))
	logging.Info("Contract finished", "aircraft_id", aircraftID, "contract_id", contractID, "status", aircraft.Status)
	return aircraft, nil
}

func (s *ContractService) Delete(ctx context.Context, p auth.Principal, aircraftID, contractID string) (*gormModels.Aircraft, error) {
	var removed lifecycle.Contract
	aircraft, err := s.mutate(ctx, p, aircraftID, func(r *lifecycle.Record, _ time.Time) error {
		c, err := r.Contract(contractID)
		if err != nil {
			return err
		}
		removed = *c
		return lifecycle.RemoveContract(r, contractID)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ContractEvent("deleted", string(removed.ContractType))
	logging.Info("Contract deleted", "aircraft_id", aircraftID, "contract_id", contractID, "status", aircraft.Status)
	return aircraft, nil
}
