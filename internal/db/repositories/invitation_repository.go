package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"woa-fleet/hangar/internal/constants"
	"woa-fleet/hangar/internal/models/entities"
)

type InvitationRepo struct {
	db *sqlx.DB
}

func NewInvitationRepo(db *sqlx.DB) *InvitationRepo {
	return &InvitationRepo{db}
}

func (r *InvitationRepo) List(ctx context.Context) ([]entities.Invitation, error) {
	invitations := []entities.Invitation{}
	if err := r.db.SelectContext(ctx, &invitations, constants.ListInvitations); err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, nil
}

func (r *InvitationRepo) Create(ctx context.Context, code string, remainingUses int) (*entities.Invitation, error) {
	inv := entities.Invitation{
		ID:            uuid.NewString(),
		Code:          code,
		RemainingUses: remainingUses,
		CreatedAt:     time.Now().UTC(),
	}
	_, err := r.db.ExecContext(ctx, constants.InsertInvitation, inv.ID, inv.Code, inv.RemainingUses, inv.CreatedAt)
	if isUniqueViolation(err) {
		return nil, constants.ErrInvitationExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}
	return &inv, nil
}

func (r *InvitationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, constants.DeleteInvitation, id)
	if err != nil {
		return fmt.Errorf("failed to delete invitation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete invitation: %w", err)
	}
	if n == 0 {
		return constants.ErrInvitationNotFound
	}
	return nil
}

// ConsumeUse atomically takes one use of the code. Unknown and exhausted
// codes are both ErrInvalidInvitation.
func (r *InvitationRepo) ConsumeUse(ctx context.Context, code string) (int, error) {
	var remaining int
	err := r.db.QueryRowxContext(ctx, constants.ConsumeInvitation, code).Scan(&remaining)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, constants.ErrInvalidInvitation
	}
	if err != nil {
		return 0, fmt.Errorf("failed to consume invitation: %w", err)
	}
	return remaining, nil
}

// RestoreUse gives back a use taken by ConsumeUse when the registration
// that needed it failed afterwards.
func (r *InvitationRepo) RestoreUse(ctx context.Context, code string) error {
	if _, err := r.db.ExecContext(ctx, constants.RestoreInvitation, code); err != nil {
		return fmt.Errorf("failed to restore invitation use: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
