package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/config"
	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/static/errs"
)

const minPasswordLength = 6

var (
	_ ISessionService = (*SessionService)(nil)
	_ IAccountService = (*SessionService)(nil)
)

type SessionService struct {
	userPort    secondary.UserPort
	jwtProvider primary.JWTService
	sessions    secondary.SessionStore
	tokens      tokenIssuer
	mailer      secondary.Mailer
	mailCfg     *config.MailConfig
	logger      primary.Logger
}

func NewSessionService(
	userPort secondary.UserPort,
	jwtProvider primary.JWTService,
	sessions secondary.SessionStore,
	refreshTTL time.Duration,
	mailer secondary.Mailer,
	mailCfg *config.MailConfig,
	logger primary.Logger,
) *SessionService {
	return &SessionService{
		userPort:    userPort,
		jwtProvider: jwtProvider,
		sessions:    sessions,
		tokens:      tokenIssuer{jwtProvider: jwtProvider, sessions: sessions, refreshTTL: refreshTTL},
		mailer:      mailer,
		mailCfg:     mailCfg,
		logger:      logger,
	}
}

func (s *SessionService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	username := strings.TrimSpace(req.Username)
	switch {
	case username == "":
		return nil, errs.New(errs.KindValidation, "Username is required")
	case email == "" || !strings.Contains(email, "@"):
		return nil, errs.Tag(errs.KindValidation, errs.EmailRequired)
	case len(req.Password) < minPasswordLength:
		return nil, errs.Newf(errs.KindValidation, "Password must be at least %d characters", minPasswordLength)
	}

	existing, err := s.userPort.GetByEmail(ctx, email)
	if err != nil {
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to load user")
	}
	if existing != nil {
		return nil, errs.Tag(errs.KindConflict, errs.UserAlreadyExists)
	}

	hash, err := s.jwtProvider.EncryptPassword(ctx, req.Password)
	if err != nil {
		return nil, errs.Wrap(errs.KindUnknown, err, "Failed to hash password")
	}
	user := &domain.Users{
		UserName:     username,
		Email:        &email,
		PasswordHash: &hash,
		Role:         domain.RoleUser,
		AuthProvider: string(domain.ProviderLocal),
	}
	if err := s.userPort.Create(ctx, user); err != nil {
		if errors.Is(err, secondary.ErrDuplicate) {
			return nil, errs.Tag(errs.KindConflict, errs.UserAlreadyExists)
		}
		return nil, errs.Tag(errs.KindPersistence, errs.FailedToCreateUser)
	}

	s.logger.Info("user registered", "userId", user.ID)
	if err := s.sendVerification(ctx, user); err != nil {
		// the account stands; the user can ask for another link
		s.logger.Warn("verification email not sent", "userId", user.ID, "error", err)
	}
	return s.tokens.issue(ctx, user)
}

// Refresh rotates the refresh token. A token that is not the latest one issued is rejected.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*domain.LoginResponse, error) {
	if refreshToken == "" {
		return nil, errs.Tag(errs.KindUnauthorized, errs.MissingRefreshToken)
	}
	payload, err := s.jwtProvider.DecodeTokenPayload(ctx, primary.RefreshToken, refreshToken)
	if err != nil {
		return nil, errs.Tag(errs.KindUnauthorized, errs.InvalidRefreshToken)
	}
	userID, err := uuid.Parse(payload.ID)
	if err != nil {
		return nil, errs.Tag(errs.KindUnauthorized, errs.InvalidRefreshToken)
	}

	stored, err := s.sessions.GetRefreshToken(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to load session")
	}
	if stored == "" || stored != refreshToken {
		s.logger.Warn("refresh token rejected", "userId", userID)
		return nil, errs.Tag(errs.KindUnauthorized, errs.RefreshTokenReused)
	}

	user, err := s.userPort.Get(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to load user")
	}
	if user == nil {
		return nil, errs.Tag(errs.KindUnauthorized, errs.InvalidRefreshToken)
	}
	return s.tokens.issue(ctx, user)
}

func (s *SessionService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.sessions.DeleteRefreshToken(ctx, userID); err != nil {
		return errs.Wrap(errs.KindPersistence, err, "Failed to clear session")
	}
	return nil
}

func (s *SessionService) Profile(ctx context.Context, userID uuid.UUID) (*domain.Users, error) {
	user, err := s.userPort.Get(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to load user")
	}
	if user == nil {
		return nil, errs.New(errs.KindNotFound, "User not found")
	}
	return user, nil
}

func (s *SessionService) Authenticate(ctx context.Context, accessToken string) (domain.Identity, error) {
	if accessToken == "" {
		return domain.Identity{}, errs.Tag(errs.KindUnauthorized, errs.MissingAccessToken)
	}
	payload, err := s.jwtProvider.DecodeTokenPayload(ctx, primary.AccessToken, accessToken)
	if err != nil {
		return domain.Identity{}, errs.Tag(errs.KindUnauthorized, errs.InvalidAccessToken)
	}
	userID, err := uuid.Parse(payload.ID)
	if err != nil {
		return domain.Identity{}, errs.Tag(errs.KindUnauthorized, errs.InvalidAccessToken)
	}

	user, err := s.userPort.Get(ctx, userID)
	if err != nil {
		return domain.Identity{}, errs.Wrap(errs.KindPersistence, err, "Failed to load user")
	}
	if user == nil {
		return domain.Identity{}, errs.Tag(errs.KindUnauthorized, errs.InvalidAccessToken)
	}

	identity := domain.Identity{
		UserID:   user.ID,
		Username: user.UserName,
		Role:     user.Role,
	}
	if user.Email != nil {
		identity.Email = *user.Email
	}
	return identity, nil
}
