package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"woa-fleet/hangar/internal/auth"
	"woa-fleet/hangar/internal/constants"
	"woa-fleet/hangar/internal/db"
	"woa-fleet/hangar/internal/db/repositories"
	"woa-fleet/hangar/internal/lifecycle"
	"woa-fleet/hangar/internal/logging"
	"woa-fleet/hangar/internal/models/dtos"
	gormModels "woa-fleet/hangar/internal/models/gorm"
)

// GroupSummary is a group with its member count.
type GroupSummary struct {
	Group gormModels.AircraftGroup
	Count int
}

// GroupView is a group with its member aircraft loaded.
type GroupView struct {
	Group    gormModels.AircraftGroup
	Aircraft []gormModels.Aircraft
	Total    int
}

type GroupService struct {
	db       *gorm.DB
	groups   *repositories.GroupRepositoryGORM
	aircraft *repositories.AircraftRepositoryGORM
	now      func() time.Time
}

func NewGroupService(gdb *gorm.DB) *GroupService {
	return &GroupService{
		db:       gdb,
		groups:   repositories.NewGroupRepositoryGORM(gdb),
		aircraft: repositories.NewAircraftRepositoryGORM(gdb),
		now:      systemNow,
	}
}

func normalizeGroupName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if !lengthBetween(name, 1, constants.MaxAircraftGroupNameLength) {
		return "", constants.ErrInvalidGroupName
	}
	return name, nil
}

func normalizeGroupDescription(desc string) (string, error) {
	desc = strings.TrimSpace(desc)
	if len([]rune(desc)) > constants.MaxAircraftGroupDescriptionLength {
		return "", constants.ErrInvalidGroupDesc
	}
	return desc, nil
}

func normalizeColour(colour string) (string, error) {
	colour = strings.ToLower(strings.TrimSpace(colour))
	if !colourPattern.MatchString(colour) {
		return "", constants.ErrInvalidColour
	}
	return colour, nil
}

func normalizeVisibility(v string) (constants.GroupVisibility, error) {
	vis := constants.GroupVisibility(strings.TrimSpace(v))
	if !vis.IsValid() {
		return "", constants.ErrInvalidVisibility
	}
	return vis, nil
}

func (s *GroupService) Create(ctx context.Context, p auth.Principal, req dtos.CreateGroupRequest) (*gormModels.AircraftGroup, error) {
	name, err := normalizeGroupName(req.Name)
	if err != nil {
		return nil, err
	}
	desc, err := normalizeGroupDescription(req.Description)
	if err != nil {
		return nil, err
	}
	colour, err := normalizeColour(req.Colour)
	if err != nil {
		return nil, err
	}
	visibility, err := normalizeVisibility(req.Visibility)
	if err != nil {
		return nil, err
	}

	group := &gormModels.AircraftGroup{
		OwnerID:     p.UserID,
		Name:        name,
		Description: desc,
		Colour:      colour,
		Visibility:  visibility,
	}

	err = db.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		repo := s.groups.WithTx(tx)
		count, err := repo.CountByOwner(ctx, p.UserID)
		if err != nil {
			return err
		}
		if count >= constants.MaxAircraftGroups {
			return constants.ErrGroupLimitReached
		}
		return repo.Create(ctx, group)
	})
	if err != nil {
		return nil, err
	}

	logging.Info("Aircraft group created", "user_id", p.UserID, "group_id", group.ID, "visibility", group.Visibility)
	return group, nil
}

func (s *GroupService) List(ctx context.Context, p auth.Principal) ([]GroupSummary, error) {
	groups, err := s.groups.ListByOwner(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	counts, err := s.groups.MemberCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]GroupSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupSummary{Group: g, Count: counts[g.ID]})
	}
	return out, nil
}

// Get returns one of the caller's groups with its aircraft sorted and
// filtered by q. Total is the unfiltered member count.
func (s *GroupService) Get(ctx context.Context, p auth.Principal, id string, q lifecycle.Query) (*GroupView, error) {
	group, err := ownedGroup(ctx, s.groups, id, p.UserID)
	if err != nil {
		return nil, err
	}
	return loadGroupView(ctx, s.groups, s.aircraft, *group, q, s.now())
}

func loadGroupView(
	ctx context.Context,
	groups *repositories.GroupRepositoryGORM,
	aircraft *repositories.AircraftRepositoryGORM,
	group gormModels.AircraftGroup,
	q lifecycle.Query,
	now time.Time,
) (*GroupView, error) {
	ids, err := groups.MemberIDs(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	members, err := aircraft.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range members {
		members[i].BackfillLastHandled(now)
	}
	return &GroupView{
		Group:    group,
		Aircraft: lifecycle.Apply(members, q),
		Total:    len(members),
	}, nil
}

func (s *GroupService) Update(ctx context.Context, p auth.Principal, id string, req dtos.UpdateGroupRequest) (*gormModels.AircraftGroup, error) {
	group, err := ownedGroup(ctx, s.groups, id, p.UserID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if group.Name, err = normalizeGroupName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		if group.Description, err = normalizeGroupDescription(*req.Description); err != nil {
			return nil, err
		}
	}
	if req.Colour != nil {
		if group.Colour, err = normalizeColour(*req.Colour); err != nil {
			return nil, err
		}
	}
	if req.Visibility != nil {
		if group.Visibility, err = normalizeVisibility(*req.Visibility); err != nil {
			return nil, err
		}
	}

	if err := s.groups.Save(ctx, group); err != nil {
		return nil, err
	}
	logging.Info("Aircraft group updated", "user_id", p.UserID, "group_id", id)
	return group, nil
}

// Delete removes the group and clears the group pointer on every member
// aircraft in the same transaction.
func (s *GroupService) Delete(ctx context.Context, p auth.Principal, id string) error {
	err := db.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		repo := s.groups.WithTx(tx)
		if _, err := ownedGroup(ctx, repo, id, p.UserID); err != nil {
			return err
		}
		if err := repo.DetachAll(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	logging.Info("Aircraft group deleted", "user_id", p.UserID, "group_id", id)
	return nil
}

// AddAircraft moves one of the caller's aircraft into the group, taking it
// out of any group it was in.
func (s *GroupService) AddAircraft(ctx context.Context, p auth.Principal, groupID, aircraftID string) error {
	err := db.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		groupRepo := s.groups.WithTx(tx)
		aircraftRepo := s.aircraft.WithTx(tx)

		if _, err := ownedGroup(ctx, groupRepo, groupID, p.UserID); err != nil {
			return err
		}
		aircraft, err := aircraftRepo.GetOwned(ctx, aircraftID, p.UserID)
		if err != nil {
			return err
		}
		if err := groupRepo.AddMember(ctx, groupID, aircraft.ID); err != nil {
			return err
		}
		return aircraftRepo.SetGroup(ctx, aircraft.ID, &groupID)
	})
	if err != nil {
		return err
	}
	logging.Info("Aircraft added to group", "user_id", p.UserID, "group_id", groupID, "aircraft_id", aircraftID)
	return nil
}

// RemoveAircraft takes the aircraft out of the group. Removing an
// aircraft that is not a member is a no-op.
func (s *GroupService) RemoveAircraft(ctx context.Context, p auth.Principal, groupID, aircraftID string) error {
	err := db.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		groupRepo := s.groups.WithTx(tx)
		aircraftRepo := s.aircraft.WithTx(tx)

		if _, err := ownedGroup(ctx, groupRepo, groupID, p.UserID); err != nil {
			return err
		}
		aircraft, err := aircraftRepo.GetOwned(ctx, aircraftID, p.UserID)
		if err != nil {
			return err
		}
		if err := groupRepo.RemoveMember(ctx, groupID, aircraft.ID); err != nil {
			return err
		}
		if aircraft.AircraftGroupID != nil && *aircraft.AircraftGroupID == groupID {
			return aircraftRepo.SetGroup(ctx, aircraft.ID, nil)
		}
		return nil
	})
	if err != nil {
		return err
	}
	logging.Info("Aircraft removed from group", "user_id", p.UserID, "group_id", groupID, "aircraft_id", aircraftID)
	return nil
}
