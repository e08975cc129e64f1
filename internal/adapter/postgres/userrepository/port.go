package userrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/codearena.net/internal/adapter/postgres"
	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/domain"
	querybuilder "gitlab.com/codearena.net/internal/utils"
)

var _ secondary.UserPort = &userRepo{}

type userRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.UserPort {
	return &userRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (u userRepo) Create(ctx context.Context, user *domain.Users) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}

	userTbl := domain.GetUserTable()
	query, args := querybuilder.NewQueryBuilder(u.schema).
		Insert(userTbl.Columns()...).
		Into(userTbl.GetTableName()).
		Values(
			user.ID, user.UserName, user.Email, user.PasswordHash,
			user.Role, user.AuthProvider, user.GoogleID, user.CreatedAt,
			user.IsEmailVerified, user.EmailVerificationToken, user.EmailVerificationExpiry,
			user.ForgotPasswordToken, user.ForgotPasswordExpiry,
		).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := u.db.ExecContext(ctx, query, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return secondary.ErrDuplicate
		}
		u.logger.Error("Failed to create user", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (u userRepo) getBy(ctx context.Context, column string, value interface{}) (*domain.Users, error) {
	userTbl := domain.GetUserTable()
	query, args := querybuilder.NewQueryBuilder(u.schema).
		Select(userTbl.Columns()...).
		From(userTbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", column), value).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var user domain.Users
	err := u.db.GetContext(ctx, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}

	return &user, nil
}

func (u userRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Users, error) {
	return u.getBy(ctx, domain.GetUserTable().ID, id)
}

func (u userRepo) GetByEmail(ctx context.Context, email string) (*domain.Users, error) {
	return u.getBy(ctx, domain.GetUserTable().Email, email)
}

func (u userRepo) GetByGoogleID(ctx context.Context, googleID string) (*domain.Users, error) {
	return u.getBy(ctx, domain.GetUserTable().GoogleID, googleID)
}

// getByToken matches a token digest whose expiry is still ahead of now.
func (u userRepo) getByToken(ctx context.Context, tokenCol, expiryCol, tokenHash string, now time.Time) (*domain.Users, error) {
	userTbl := domain.GetUserTable()
	query, args := querybuilder.NewQueryBuilder(u.schema).
		Select(userTbl.Columns()...).
		From(userTbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tokenCol), tokenHash).
		And(fmt.Sprintf("%s > ?", expiryCol), now).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var user domain.Users
	if err := u.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", tokenCol, err)
	}
	return &user, nil
}

func (u userRepo) update(ctx context.Context, id uuid.UUID, data querybuilder.UpdateData) error {
	userTbl := domain.GetUserTable()
	query, args := querybuilder.NewQueryBuilder(u.schema).
		Update(userTbl.GetTableName(), data).
		Where(fmt.Sprintf("%s = ?", userTbl.ID), id).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	res, err := u.db.ExecContext(ctx, query, args...)
	if err != nil {
		u.logger.Error("Failed to update user", "userId", id, "error", err)
		return fmt.Errorf("failed to update user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("failed to update user %s: %w", id, sql.ErrNoRows)
	}
	return nil
}

func (u userRepo) SetEmailVerificationToken(ctx context.Context, id uuid.UUID, tokenHash string, expiry time.Time) error {
	userTbl := domain.GetUserTable()
	return u.update(ctx, id, querybuilder.UpdateData{
		userTbl.EmailVerificationToken:  tokenHash,
		userTbl.EmailVerificationExpiry: expiry,
	})
}

func (u userRepo) GetByEmailVerificationToken(ctx context.Context, tokenHash string, now time.Time) (*domain.Users, error) {
	userTbl := domain.GetUserTable()
	return u.getByToken(ctx, userTbl.EmailVerificationToken, userTbl.EmailVerificationExpiry, tokenHash, now)
}

func (u userRepo) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	userTbl := domain.GetUserTable()
	return u.update(ctx, id, querybuilder.UpdateData{
		userTbl.IsEmailVerified:         true,
		userTbl.EmailVerificationToken:  nil,
		userTbl.EmailVerificationExpiry: nil,
	})
}

func (u userRepo) SetForgotPasswordToken(ctx context.Context, id uuid.UUID, tokenHash string, expiry time.Time) error {
	userTbl := domain.GetUserTable()
	return u.update(ctx, id, querybuilder.UpdateData{
		userTbl.ForgotPasswordToken:  tokenHash,
		userTbl.ForgotPasswordExpiry: expiry,
	})
}

func (u userRepo) GetByForgotPasswordToken(ctx context.Context, tokenHash string, now time.Time) (*domain.Users, error) {
	userTbl := domain.GetUserTable()
	return u.getByToken(ctx, userTbl.ForgotPasswordToken, userTbl.ForgotPasswordExpiry, tokenHash, now)
}

func (u userRepo) ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	userTbl := domain.GetUserTable()
	return u.update(ctx, id, querybuilder.UpdateData{
		userTbl.PasswordHash:         passwordHash,
		userTbl.ForgotPasswordToken:  nil,
		userTbl.ForgotPasswordExpiry: nil,
	})
}
