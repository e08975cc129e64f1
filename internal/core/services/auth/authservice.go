package auth

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/domain"
)

// IAuthService logs a user in through one identity provider.
type IAuthService interface {
	ProviderName() domain.Provider
	Login(ctx context.Context, users *domain.Users) (*domain.LoginResponse, error)
}

// IGoogleAuthService adds the OAuth2 redirect flow to the Google provider.
type IGoogleAuthService interface {
	IAuthService
	AuthCodeURL(state string) string
	UserFromCode(ctx context.Context, code string) (*domain.Users, error)
}

// ISessionService owns token issuing and rotation, independent of the provider.
type ISessionService interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.LoginResponse, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	Profile(ctx context.Context, userID uuid.UUID) (*domain.Users, error)
	// Authenticate resolves an access token to the caller, with the role read from the store
	Authenticate(ctx context.Context, accessToken string) (domain.Identity, error)
}

// IAccountService covers email verification and password reset. Tokens travel
// by mail and only their digests are stored.
type IAccountService interface {
	VerifyEmail(ctx context.Context, token string) (*domain.Users, error)
	ResendVerification(ctx context.Context, email string) (*domain.Users, error)
	ForgotPassword(ctx context.Context, email string) (*domain.Users, error)
	ResetPassword(ctx context.Context, token string, req domain.ResetPasswordRequest) error
}
