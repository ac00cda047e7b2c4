package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"woa-fleet/hangar/internal/constants"
	"woa-fleet/hangar/internal/db/repositories"
	"woa-fleet/hangar/internal/logging"
	"woa-fleet/hangar/internal/models/dtos"
	"woa-fleet/hangar/internal/models/entities"
)

const generatedCodeLength = 10

type InvitationService struct {
	repo *repositories.InvitationRepo
}

func NewInvitationService(repo *repositories.InvitationRepo) *InvitationService {
	return &InvitationService{repo: repo}
}

// GenerateInvitationCode returns a random upper-case code.
func GenerateInvitationCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:generatedCodeLength])
}

func (s *InvitationService) List(ctx context.Context) ([]entities.Invitation, error) {
	return s.repo.List(ctx)
}

// Create stores a new code. An empty code is generated.
func (s *InvitationService) Create(ctx context.Context, req dtos.CreateInvitationRequest) (*entities.Invitation, error) {
	if req.RemainingUses <= 0 {
		return nil, constants.ErrInvalidRemainingUses
	}
	code := strings.TrimSpace(req.Code)
	if code == "" {
		code = GenerateInvitationCode()
	}

	inv, err := s.repo.Create(ctx, code, req.RemainingUses)
	if err != nil {
		return nil, err
	}
	logging.Info("Invitation created", "invitation_id", inv.ID, "remaining_uses", inv.RemainingUses)
	return inv, nil
}

func (s *InvitationService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Consume takes one use of code and returns the uses left.
func (s *InvitationService) Consume(ctx context.Context, code string) (int, error) {
	return s.repo.ConsumeUse(ctx, strings.TrimSpace(code))
}
