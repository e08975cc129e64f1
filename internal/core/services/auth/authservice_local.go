package auth

import (
	"context"
	"strings"
	"time"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/static/errs"
)

var _ IAuthService = &localAuthService{}

type localAuthService struct {
	userPort    secondary.UserPort
	jwtProvider primary.JWTService
	tokens      tokenIssuer
}

func NewLocalAuthService(
	userPort secondary.UserPort,
	jwtProvider primary.JWTService,
	sessions secondary.SessionStore,
	refreshTTL time.Duration,
) IAuthService {
	return &localAuthService{
		userPort:    userPort,
		jwtProvider: jwtProvider,
		tokens:      tokenIssuer{jwtProvider: jwtProvider, sessions: sessions, refreshTTL: refreshTTL},
	}
}

func (g localAuthService) ProviderName() domain.Provider {
	return domain.ProviderLocal
}

// Login expects the email and the plain password, carried in users.PasswordHash.
func (g localAuthService) Login(ctx context.Context, users *domain.Users) (*domain.LoginResponse, error) {
	if users.Email == nil || strings.TrimSpace(*users.Email) == "" {
		return nil, errs.Tag(errs.KindValidation, errs.EmailRequired)
	}
	if users.PasswordHash == nil || *users.PasswordHash == "" {
		return nil, errs.Tag(errs.KindUnauthorized, errs.InvalidCredentials)
	}

	usr, err := g.userPort.GetByEmail(ctx, strings.TrimSpace(*users.Email))
	if err != nil {
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to load user")
	}
	if usr == nil || usr.PasswordHash == nil {
		return nil, errs.Tag(errs.KindUnauthorized, errs.InvalidCredentials)
	}
	valid, err := g.jwtProvider.VerifyPassword(ctx, *usr.PasswordHash, *users.PasswordHash)
	if err != nil || !valid {
		return nil, errs.Tag(errs.KindUnauthorized, errs.InvalidCredentials)
	}

	return g.tokens.issue(ctx, usr)
}
