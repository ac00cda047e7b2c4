package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"woa-fleet/hangar/internal/auth"
	"woa-fleet/hangar/internal/common"
	"woa-fleet/hangar/internal/constants"
	"woa-fleet/hangar/internal/db/repositories"
	"woa-fleet/hangar/internal/lifecycle"
	"woa-fleet/hangar/internal/metrics"
	gormModels "woa-fleet/hangar/internal/models/gorm"
)

// SharedGroupService serves read-only group links. The viewer is nil for
// anonymous callers.
type SharedGroupService struct {
	groups   *repositories.GroupRepositoryGORM
	aircraft *repositories.AircraftRepositoryGORM
	users    *repositories.UserRepositoryGORM
	cache    common.CacheInterface
	metrics  *metrics.MetricsRegistry
	now      func() time.Time
}

func NewSharedGroupService(db *gorm.DB, cache common.CacheInterface, m *metrics.MetricsRegistry) *SharedGroupService {
	return &SharedGroupService{
		groups:   repositories.NewGroupRepositoryGORM(db),
		aircraft: repositories.NewAircraftRepositoryGORM(db),
		users:    repositories.NewUserRepositoryGORM(db),
		cache:    cache,
		metrics:  m,
		now:      systemNow,
	}
}

// SharedGroup is what a share link resolves to.
type SharedGroup struct {
	Owner string
	View  *GroupView
}

// CheckVisibility applies the share rules once the owner is known.
func CheckVisibility(group gormModels.AircraftGroup, viewer *auth.Principal) error {
	switch group.Visibility {
	case constants.VisibilityPublic:
		return nil
	case constants.VisibilityRegistered:
		if viewer == nil {
			return constants.ErrRegisteredOnly
		}
		return nil
	default:
		if viewer == nil || viewer.UserID != group.OwnerID {
			return constants.ErrAccessDenied
		}
		return nil
	}
}

func (s *SharedGroupService) ownerUsername(ctx context.Context, userID string) (string, error) {
	key := usernameKey(userID)
	if cached, found := s.cache.Get(key); found {
		if name, ok := common.Decode[string](cached); ok {
			s.metrics.CacheLookup("username", true)
			return name, nil
		}
	}
	s.metrics.CacheLookup("username", false)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	s.cache.Set(key, user.Username, constants.UsernameTTL)
	return user.Username, nil
}

// GetGroup resolves /shared/{username}/{groupId}. The owner lookup and the
// member load run concurrently.
func (s *SharedGroupService) GetGroup(ctx context.Context, ownerUsername, groupID string, viewer *auth.Principal, q lifecycle.Query) (*SharedGroup, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	var (
		owner string
		view  *GroupView
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		name, err := s.ownerUsername(gctx, group.OwnerID)
		if err != nil {
			return err
		}
		owner = name
		return nil
	})
	g.Go(func() error {
		v, err := loadGroupView(gctx, s.groups, s.aircraft, *group, q, s.now())
		if err != nil {
			return err
		}
		view = v
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, constants.ErrUserNotFound) {
			return nil, constants.ErrGroupNotFound
		}
		return nil, err
	}

	if owner != ownerUsername {
		return nil, constants.ErrGroupNotFound
	}
	if err := CheckVisibility(*group, viewer); err != nil {
		return nil, err
	}
	return &SharedGroup{Owner: owner, View: view}, nil
}

// GetAircraft resolves /shared/{username}/{groupId}/{aircraftId}; the
// aircraft must be a member of the group.
func (s *SharedGroupService) GetAircraft(ctx context.Context, ownerUsername, groupID, aircraftID string, viewer *auth.Principal) (*gormModels.Aircraft, error) {
	shared, err := s.GetGroup(ctx, ownerUsername, groupID, viewer, lifecycle.Query{})
	if err != nil {
		return nil, err
	}
	for i := range shared.View.Aircraft {
		if shared.View.Aircraft[i].ID == aircraftID {
			return &shared.View.Aircraft[i], nil
		}
	}
	return nil, constants.ErrAircraftNotFound
}
