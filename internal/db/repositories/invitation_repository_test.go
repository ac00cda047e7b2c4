package repositories

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"woa-fleet/hangar/internal/constants"
)

func newMockInvitationRepo(t *testing.T) (*InvitationRepo, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mockDB.Close()
	})
	return NewInvitationRepo(sqlx.NewDb(mockDB, "postgres")), mock
}

var invitationColumns = []string{"id", "code", "remaining_uses", "created_at"}

func TestInvitationRepo_List(t *testing.T) {
	repo, mock := newMockInvitationRepo(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, code, remaining_uses, created_at FROM invitations")).
		WillReturnRows(sqlmock.NewRows(invitationColumns).
			AddRow("inv-1", "WELCOME", 3, created).
			AddRow("inv-2", "FRIENDS", 0, created))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "WELCOME", list[0].Code)
	assert.Equal(t, 3, list[0].RemainingUses)
}

func TestInvitationRepo_Create(t *testing.T) {
	repo, mock := newMockInvitationRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO invitations")).
		WithArgs(sqlmock.AnyArg(), "WELCOME", 5, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	inv, err := repo.Create(context.Background(), "WELCOME", 5)
	require.NoError(t, err)
	assert.NotEmpty(t, inv.ID)
	assert.Equal(t, "WELCOME", inv.Code)
	assert.Equal(t, 5, inv.RemainingUses)
	assert.False(t, inv.CreatedAt.IsZero())
}

func TestInvitationRepo_CreateDuplicate(t *testing.T) {
	repo, mock := newMockInvitationRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO invitations")).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), "WELCOME", 5)
	assert.ErrorIs(t, err, constants.ErrInvitationExists)
}

func TestInvitationRepo_Delete(t *testing.T) {
	repo, mock := newMockInvitationRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM invitations WHERE id = $1")).
		WithArgs("inv-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM invitations WHERE id = $1")).
		WithArgs("inv-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "inv-1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "inv-1"), constants.ErrInvitationNotFound)
}

func TestInvitationRepo_ConsumeUse(t *testing.T) {
	repo, mock := newMockInvitationRepo(t)
	consume := regexp.QuoteMeta("UPDATE invitations SET remaining_uses = remaining_uses - 1")

	mock.ExpectQuery(consume).WithArgs("WELCOME").
		WillReturnRows(sqlmock.NewRows([]string{"remaining_uses"}).AddRow(2))
	mock.ExpectQuery(consume).WithArgs("SPENT").
		WillReturnError(sql.ErrNoRows)

	remaining, err := repo.ConsumeUse(context.Background(), "WELCOME")
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)

	_, err = repo.ConsumeUse(context.Background(), "SPENT")
	assert.ErrorIs(t, err, constants.ErrInvalidInvitation)
}

func TestInvitationRepo_RestoreUse(t *testing.T) {
	repo, mock := newMockInvitationRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE invitations SET remaining_uses = remaining_uses + 1")).
		WithArgs("WELCOME").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.RestoreUse(context.Background(), "WELCOME"))
}
