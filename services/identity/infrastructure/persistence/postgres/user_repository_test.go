package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/database"
	identitydomain "github.com/bookmountain/adelaide-uni-market-place/services/identity/domain"
	"github.com/bookmountain/adelaide-uni-market-place/services/identity/domain/models"
	"github.com/bookmountain/adelaide-uni-market-place/services/identity/domain/repositories"
)

var (
	_ repositories.UserRepository = (*UserRepository)(nil)
	_ repositories.UserTx         = (*userTx)(nil)
)

var userColumns = []string{
	"id", "email", "display_name", "role", "password_hash", "department", "degree", "sex",
	"avatar_url", "nationality", "age", "is_active", "activation_token",
	"activation_token_expires_at", "created_at",
}

func newRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewUserRepository(database.New(conn), nil), mock
}

func TestGetByEmail_MapsNullableColumns(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM identity.users")).
		WithArgs("student@adelaide.edu.au").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
			id.String(), "student@adelaide.edu.au", "Seed Student", "Student", "$2a$hash",
			"ComputerScience", "Bachelor", "PreferNotToSay", nil, "Australia", int64(21), true, nil, nil, created,
		))

	u, err := repo.GetByEmail(context.Background(), "student@adelaide.edu.au")
	require.NoError(t, err)

	assert.Equal(t, id, u.ID)
	assert.Equal(t, models.DeptComputerScience, u.Department)
	assert.Equal(t, models.NatAustralia, u.Nationality)
	assert.Empty(t, u.AvatarURL)
	require.NotNil(t, u.Age)
	assert.Equal(t, 21, *u.Age)
	assert.True(t, u.IsActive)
	assert.Nil(t, u.ActivationTokenExpiresAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, identitydomain.ErrUserNotFound)
}

func TestInsert_DuplicateEmailIsConflict(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO identity.users")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: emailUniqueKey})
	mock.ExpectRollback()

	err := repo.InTx(context.Background(), func(tx repositories.UserTx) error {
		return tx.Insert(context.Background(), &models.User{ID: uuid.New(), Email: "a@adelaide.edu.au"})
	})
	assert.ErrorIs(t, err, identitydomain.ErrAccountExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockByActivationToken_Unknown(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE activation_token = $1")).
		WithArgs("abc").
		WillReturnRows(sqlmock.NewRows(userColumns))
	mock.ExpectRollback()

	err := repo.InTx(context.Background(), func(tx repositories.UserTx) error {
		_, err := tx.LockByActivationToken(context.Background(), "abc")
		return err
	})
	assert.ErrorIs(t, err, identitydomain.ErrActivationTokenNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveActivation_ClearsToken(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE identity.users")).
		WithArgs(id, true, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.InTx(context.Background(), func(tx repositories.UserTx) error {
		return tx.SaveActivation(context.Background(), &models.User{ID: id, IsActive: true})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
