package secondary

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/domain"
)

type UserPort interface {
	Create(ctx context.Context, user *domain.Users) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Users, error)
	GetByEmail(ctx context.Context, email string) (*domain.Users, error)
	GetByGoogleID(ctx context.Context, googleID string) (*domain.Users, error)

	SetEmailVerificationToken(ctx context.Context, id uuid.UUID, tokenHash string, expiry time.Time) error
	// GetByEmailVerificationToken returns nil when no unexpired token matches at now
	GetByEmailVerificationToken(ctx context.Context, tokenHash string, now time.Time) (*domain.Users, error)
	// MarkEmailVerified sets the flag and clears the verification token
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error

	SetForgotPasswordToken(ctx context.Context, id uuid.UUID, tokenHash string, expiry time.Time) error
	// GetByForgotPasswordToken returns nil when no unexpired token matches at now
	GetByForgotPasswordToken(ctx context.Context, tokenHash string, now time.Time) (*domain.Users, error)
	// ResetPassword stores the new hash and clears the reset token
	ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}
