package userrepository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/xorcare/pointer"
	"go.uber.org/zap/zaptest"

	"gitlab.com/codearena.net/internal/adapter/logging"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/domain"
)

const userCols = "id, user_name, email, password_hash, role, auth_provider, google_id, created_at, " +
	"is_email_verified, email_verification_token, email_verification_expiry, forgot_password_token, forgot_password_expiry"

var userColumns = []string{
	"id", "user_name", "email", "password_hash", "role", "auth_provider", "google_id", "created_at",
	"is_email_verified", "email_verification_token", "email_verification_expiry", "forgot_password_token", "forgot_password_expiry",
}

func newMockRepo(t *testing.T) (secondary.UserPort, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(sqlx.NewDb(db, "postgres"), logging.NewZapLoggerFrom(zaptest.NewLogger(t)), "public"), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	user := &domain.Users{
		UserName:     "alice",
		Email:        pointer.String("alice@example.com"),
		PasswordHash: pointer.String("hash"),
		AuthProvider: string(domain.ProviderLocal),
	}

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO public.users ("+userCols+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)")).
		WithArgs(sqlmock.AnyArg(), "alice", "alice@example.com", "hash", "USER", "local", nil, sqlmock.AnyArg(),
			false, nil, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), user))
	require.NotEqual(t, uuid.Nil, user.ID)
	require.Equal(t, domain.RoleUser, user.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDuplicate(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("INSERT INTO public.users").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &domain.Users{UserName: "bob"})
	require.ErrorIs(t, err, secondary.ErrDuplicate)
}

func TestGetByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT " + userCols + " FROM public.users WHERE email = $1")).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(id.String(), "alice", "alice@example.com", "hash", "ADMIN", "local", nil, now, true, nil, nil, nil, nil))

	user, err := repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.Equal(t, id, user.ID)
	require.Equal(t, domain.RoleAdmin, user.Role)
	require.Nil(t, user.GoogleID)
	require.True(t, user.IsEmailVerified)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMissing(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM public.users WHERE id = \\$1").
		WillReturnRows(sqlmock.NewRows(userColumns))

	user, err := repo.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestSetEmailVerificationToken(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	expiry := time.Now().Add(20 * time.Minute)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE public.users SET email_verification_expiry = $1, email_verification_token = $2 WHERE id = $3")).
		WithArgs(expiry, "digest", id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetEmailVerificationToken(context.Background(), id, "digest", expiry))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmailVerificationTokenChecksExpiry(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+userCols+" FROM public.users WHERE email_verification_token = $1 AND email_verification_expiry > $2")).
		WithArgs("digest", now).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(id.String(), "alice", "alice@example.com", "hash", "USER", "local", nil, now, false, "digest", now.Add(time.Minute), nil, nil))
	mock.ExpectQuery("SELECT (.+) FROM public.users WHERE email_verification_token = \\$1").
		WillReturnRows(sqlmock.NewRows(userColumns))

	user, err := repo.GetByEmailVerificationToken(context.Background(), "digest", now)
	require.NoError(t, err)
	require.NotNil(t, user)
	require.Equal(t, id, user.ID)
	require.Equal(t, pointer.String("digest"), user.EmailVerificationToken)

	user, err = repo.GetByEmailVerificationToken(context.Background(), "stale", now)
	require.NoError(t, err)
	require.Nil(t, user)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkEmailVerifiedClearsToken(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE public.users SET email_verification_expiry = $1, email_verification_token = $2, is_email_verified = $3 WHERE id = $4")).
		WithArgs(nil, nil, true, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkEmailVerified(context.Background(), id))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByForgotPasswordToken(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+userCols+" FROM public.users WHERE forgot_password_token = $1 AND forgot_password_expiry > $2")).
		WithArgs("digest", now).
		WillReturnRows(sqlmock.NewRows(userColumns))

	user, err := repo.GetByForgotPasswordToken(context.Background(), "digest", now)
	require.NoError(t, err)
	require.Nil(t, user)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResetPasswordClearsToken(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE public.users SET forgot_password_expiry = $1, forgot_password_token = $2, password_hash = $3 WHERE id = $4")).
		WithArgs(nil, nil, "new-hash", id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ResetPassword(context.Background(), id, "new-hash"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("UPDATE public.users SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetForgotPasswordToken(context.Background(), uuid.New(), "digest", time.Now())
	require.ErrorIs(t, err, sql.ErrNoRows)
}
