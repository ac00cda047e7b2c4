package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"woa-fleet/hangar/internal/auth"
	"woa-fleet/hangar/internal/common"
	"woa-fleet/hangar/internal/constants"
	"woa-fleet/hangar/internal/db"
	"woa-fleet/hangar/internal/db/repositories"
	"woa-fleet/hangar/internal/lifecycle"
	"woa-fleet/hangar/internal/logging"
	"woa-fleet/hangar/internal/metrics"
	"woa-fleet/hangar/internal/models/dtos"
	gormModels "woa-fleet/hangar/internal/models/gorm"
)

// AircraftService owns the aircraft document: creation, edits, selling,
// deletion, and the read-side list and statistics.
type AircraftService struct {
	db       *gorm.DB
	aircraft *repositories.AircraftRepositoryGORM
	groups   *repositories.GroupRepositoryGORM
	images   *ImageService
	cache    common.CacheInterface
	metrics  *metrics.MetricsRegistry
	now      func() time.Time
}

func NewAircraftService(
	gdb *gorm.DB,
	cache common.CacheInterface,
	images *ImageService,
	m *metrics.MetricsRegistry,
) *AircraftService {
	return &AircraftService{
		db:       gdb,
		aircraft: repositories.NewAircraftRepositoryGORM(gdb),
		groups:   repositories.NewGroupRepositoryGORM(gdb),
		images:   images,
		cache:    cache,
		metrics:  m,
		now:      systemNow,
	}
}

func normalizeModel(model string) (string, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return "", constants.ErrModelRequired
	}
	if len([]rune(model)) > constants.MaxModelLength {
		return "", constants.Validationf("Aircraft model must be at most %d characters", constants.MaxModelLength)
	}
	return model, nil
}

func normalizeSize(size string) (constants.AircraftSize, error) {
	s := constants.AircraftSize(strings.ToUpper(strings.TrimSpace(size)))
	if !s.IsValid() {
		return "", constants.ErrInvalidSize
	}
	return s, nil
}

func normalizeType(t string) (constants.AircraftType, error) {
	at := constants.AircraftType(strings.ToUpper(strings.TrimSpace(t)))
	if !at.IsValid() {
		return "", constants.ErrInvalidAircraftType
	}
	return at, nil
}

func normalizeRegistration(reg string) (string, error) {
	reg = strings.TrimSpace(reg)
	if !lengthBetween(reg, 1, constants.MaxRegistrationCodeLength) {
		return "", constants.ErrInvalidRegistration
	}
	return reg, nil
}

func normalizeAirport(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !lengthBetween(code, 1, constants.MaxAirportCodeLength) {
		return "", constants.ErrInvalidAirport
	}
	return code, nil
}

func toConfiguration(c dtos.ConfigurationDTO) (gormModels.Configuration, error) {
	if c.Economy < 0 || c.Business < 0 || c.First < 0 || c.Cargo < 0 {
		return gormModels.Configuration{}, constants.ErrInvalidConfiguration
	}
	return gormModels.Configuration{
		Economy:  c.Economy,
		Business: c.Business,
		First:    c.First,
		Cargo:    c.Cargo,
	}, nil
}

func newAircraftFromRequest(userID string, req dtos.CreateAircraftRequest) (*gormModels.Aircraft, error) {
	model, err := normalizeModel(req.Model)
	if err != nil {
		return nil, err
	}
	size, err := normalizeSize(req.Size)
	if err != nil {
		return nil, err
	}
	acType, err := normalizeType(req.Type)
	if err != nil {
		return nil, err
	}
	reg, err := normalizeRegistration(req.Registration)
	if err != nil {
		return nil, err
	}
	airport, err := normalizeAirport(req.Airport)
	if err != nil {
		return nil, err
	}
	cfg, err := toConfiguration(req.Configuration)
	if err != nil {
		return nil, err
	}

	return &gormModels.Aircraft{
		UserID: userID,
		Record: lifecycle.Record{
			Model:        model,
			Size:         size,
			Type:         acType,
			Registration: reg,
			Airport:      airport,
			Status:       constants.StatusIdle,
			Contracts:    lifecycle.Contracts{},
		},
		Configuration: cfg,
	}, nil
}

// ownedGroup loads a group the caller may put aircraft into.
func ownedGroup(ctx context.Context, groups *repositories.GroupRepositoryGORM, groupID, userID string) (*gormModels.AircraftGroup, error) {
	group, err := groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.OwnerID != userID {
		return nil, constants.ErrNotOwner
	}
	return group, nil
}

// Create adds an aircraft to the caller's fleet and, when requested, to
// one of their groups. The limit check, registration check, insert and
// group attach share one transaction.
func (s *AircraftService) Create(ctx context.Context, p auth.Principal, req dtos.CreateAircraftRequest) (*gormModels.Aircraft, error) {
	aircraft, err := newAircraftFromRequest(p.UserID, req)
	if err != nil {
		return nil, err
	}

	err = db.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		aircraftRepo := s.aircraft.WithTx(tx)
		groupRepo := s.groups.WithTx(tx)

		count, err := aircraftRepo.CountByOwner(ctx, p.UserID)
		if err != nil {
			return err
		}
		if count >= constants.MaxAircraft {
			return constants.ErrAircraftLimitReached
		}

		exists, err := aircraftRepo.ExistsByRegistration(ctx, aircraft.Registration, "")
		if err != nil {
			return err
		}
		if exists {
			return constants.ErrRegistrationExists
		}

		groupID := trimmedPtr(req.AircraftGroup)
		if groupID != nil && *groupID != "" {
			if _, err := ownedGroup(ctx, groupRepo, *groupID, p.UserID); err != nil {
				return err
			}
			aircraft.AircraftGroupID = groupID
		}

		if err := aircraftRepo.Create(ctx, aircraft); err != nil {
			return err
		}
		if aircraft.AircraftGroupID != nil {
			return groupRepo.AddMember(ctx, *aircraft.AircraftGroupID, aircraft.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.AircraftEvent("created")
	s.invalidateStats(p.UserID)
	logging.Info("Aircraft created", "user_id", p.UserID, "aircraft_id", aircraft.ID, "registration", aircraft.Registration)
	return aircraft, nil
}

// Get returns one of the caller's aircraft.
func (s *AircraftService) Get(ctx context.Context, p auth.Principal, id string) (*gormModels.Aircraft, error) {
	aircraft, err := s.aircraft.GetOwned(ctx, id, p.UserID)
	if err != nil {
		return nil, err
	}
	aircraft.BackfillLastHandled(s.now())
	return aircraft, nil
}

// List returns the caller's fleet filtered and sorted by q.
func (s *AircraftService) List(ctx context.Context, p auth.Principal, q lifecycle.Query) ([]gormModels.Aircraft, error) {
	list, err := s.aircraft.ListByOwner(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range list {
		list[i].BackfillLastHandled(now)
	}
	return lifecycle.Apply(list, q), nil
}

// Update applies a partial edit. Status, profits and contracts are not
// editable here; they only change through contract operations.
func (s *AircraftService) Update(ctx context.Context, p auth.Principal, id string, req dtos.UpdateAircraftRequest) (*gormModels.Aircraft, error) {
	var updated *gormModels.Aircraft

	err := db.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		aircraftRepo := s.aircraft.WithTx(tx)
		groupRepo := s.groups.WithTx(tx)

		aircraft, err := aircraftRepo.GetOwned(ctx, id, p.UserID)
		if err != nil {
			return err
		}
		aircraft.BackfillLastHandled(s.now())

		if err := applyAircraftUpdate(aircraft, req); err != nil {
			return err
		}

		if req.Registration != nil {
			exists, err := aircraftRepo.ExistsByRegistration(ctx, aircraft.Registration, aircraft.ID)
			if err != nil {
				return err
			}
			if exists {
				return constants.ErrRegistrationExists
			}
		}

		if groupID := trimmedPtr(req.AircraftGroup); groupID != nil {
			if err := moveToGroup(ctx, groupRepo, aircraft, *groupID, p.UserID); err != nil {
				return err
			}
		}

		if err := aircraftRepo.Save(ctx, aircraft); err != nil {
			return err
		}
		updated = aircraft
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats(p.UserID)
	logging.Info("Aircraft updated", "user_id", p.UserID, "aircraft_id", id)
	return updated, nil
}

func applyAircraftUpdate(aircraft *gormModels.Aircraft, req dtos.UpdateAircraftRequest) error {
	if req.Model != nil {
		model, err := normalizeModel(*req.Model)
		if err != nil {
			return err
		}
		aircraft.Model = model
	}
	if req.Size != nil {
		size, err := normalizeSize(*req.Size)
		if err != nil {
			return err
		}
		aircraft.Size = size
	}
	if req.Type != nil {
		acType, err := normalizeType(*req.Type)
		if err != nil {
			return err
		}
		aircraft.Type = acType
	}
	if req.Registration != nil {
		reg, err := normalizeRegistration(*req.Registration)
		if err != nil {
			return err
		}
		aircraft.Registration = reg
	}
	if req.Airport != nil {
		airport, err := normalizeAirport(*req.Airport)
		if err != nil {
			return err
		}
		aircraft.Airport = airport
	}
	if req.Configuration != nil {
		cfg, err := toConfiguration(*req.Configuration)
		if err != nil {
			return err
		}
		aircraft.Configuration = cfg
	}
	return nil
}

// moveToGroup points the aircraft at groupID, or takes it out of its
// group when groupID is empty. Membership rows follow the pointer.
func moveToGroup(ctx context.Context, groups *repositories.GroupRepositoryGORM, aircraft *gormModels.Aircraft, groupID, userID string) error {
	if groupID == "" {
		if aircraft.AircraftGroupID != nil {
			if err := groups.RemoveMember(ctx, *aircraft.AircraftGroupID, aircraft.ID); err != nil {
				return err
			}
		}
		aircraft.AircraftGroupID = nil
		return nil
	}

	if aircraft.AircraftGroupID != nil && *aircraft.AircraftGroupID == groupID {
		return nil
	}
	if _, err := ownedGroup(ctx, groups, groupID, userID); err != nil {
		return err
	}
	if err := groups.AddMember(ctx, groupID, aircraft.ID); err != nil {
		return err
	}
	aircraft.AircraftGroupID = &groupID
	return nil
}

// Sell marks the aircraft Sold and finishes its contracts.
func (s *AircraftService) Sell(ctx context.Context, p auth.Principal, id string) (*gormModels.Aircraft, error) {
	aircraft, err := s.aircraft.GetOwned(ctx, id, p.UserID)
	if err != nil {
		return nil, err
	}
	aircraft.BackfillLastHandled(s.now())

	lifecycle.Sell(&aircraft.Record)
	if err := s.aircraft.Save(ctx, aircraft); err != nil {
		return nil, err
	}

	s.metrics.AircraftEvent("sold")
	s.invalidateStats(p.UserID)
	logging.Info("Aircraft sold", "user_id", p.UserID, "aircraft_id", id, "total_profits", aircraft.TotalProfits)
	return aircraft, nil
}

// Delete removes the aircraft and its group membership together; its
// stored image is cleaned up afterwards.
func (s *AircraftService) Delete(ctx context.Context, p auth.Principal, id string) error {
	var imageKey *string

	err := db.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		aircraftRepo := s.aircraft.WithTx(tx)

		aircraft, err := aircraftRepo.GetOwned(ctx, id, p.UserID)
		if err != nil {
			return err
		}
		if aircraft.AircraftGroupID != nil {
			if err := s.groups.WithTx(tx).RemoveMember(ctx, *aircraft.AircraftGroupID, aircraft.ID); err != nil {
				return err
			}
		}
		imageKey = aircraft.ImageKey
		return aircraftRepo.Delete(ctx, aircraft.ID)
	})
	if err != nil {
		return err
	}

	if imageKey != nil && s.images != nil {
		s.images.Cleanup(ctx, *imageKey)
	}

	s.metrics.AircraftEvent("deleted")
	s.invalidateStats(p.UserID)
	logging.Info("Aircraft deleted", "user_id", p.UserID, "aircraft_id", id)
	return nil
}

// ParseStatsFilter validates the optional size and type parts.
func ParseStatsFilter(airport, size, acType string) (lifecycle.StatsFilter, error) {
	f := lifecycle.StatsFilter{Airport: strings.ToUpper(strings.TrimSpace(airport))}
	if strings.TrimSpace(size) != "" {
		s, err := normalizeSize(size)
		if err != nil {
			return f, err
		}
		f.Size = s
	}
	if strings.TrimSpace(acType) != "" {
		t, err := normalizeType(acType)
		if err != nil {
			return f, err
		}
		f.Type = t
	}
	return f, nil
}

// Stats aggregates the caller's fleet. Results are cached per user and
// filter until the next aircraft or contract change.
func (s *AircraftService) Stats(ctx context.Context, p auth.Principal, f lifecycle.StatsFilter) (lifecycle.Stats, error) {
	key := fleetStatsPrefix(p.UserID) + f.Key()
	if cached, found := s.cache.Get(key); found {
		if stats, ok := common.Decode[lifecycle.Stats](cached); ok {
			s.metrics.CacheLookup("fleet_stats", true)
			return stats, nil
		}
	}
	s.metrics.CacheLookup("fleet_stats", false)

	list, err := s.aircraft.ListByOwner(ctx, p.UserID)
	if err != nil {
		return lifecycle.Stats{}, err
	}
	stats := lifecycle.ComputeStats(list, f)
	s.cache.Set(key, stats, constants.FleetStatsTTL)
	return stats, nil
}

func (s *AircraftService) invalidateStats(userID string) {
	s.cache.DeletePrefix(fleetStatsPrefix(userID))
}
