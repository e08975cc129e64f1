package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"gitlab.com/codearena.net/internal/config"
	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/global/logger"
	"gitlab.com/codearena.net/internal/static/errs"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

var _ IGoogleAuthService = &googleAuthService{}

// googleUser is the subset of the userinfo response we keep
type googleUser struct {
	ID    string `json:"sub"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type googleAuthService struct {
	userPort    secondary.UserPort
	tokens      tokenIssuer
	oauth       *oauth2.Config
	userInfoURL string
}

func NewGoogleAuthService(
	userPort secondary.UserPort,
	jwtProvider primary.JWTService,
	sessions secondary.SessionStore,
	refreshTTL time.Duration,
	cfg *config.GGAuthConfig,
) IGoogleAuthService {
	return &googleAuthService{
		userPort: userPort,
		tokens:   tokenIssuer{jwtProvider: jwtProvider, sessions: sessions, refreshTTL: refreshTTL},
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

func (g googleAuthService) ProviderName() domain.Provider {
	return domain.ProviderGoogle
}

func (g googleAuthService) AuthCodeURL(state string) string {
	return g.oauth.AuthCodeURL(state)
}

// UserFromCode exchanges the callback code and reads the Google profile.
func (g googleAuthService) UserFromCode(ctx context.Context, code string) (*domain.Users, error) {
	if code == "" {
		return nil, errs.New(errs.KindValidation, "No code in URL")
	}
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, errs.Wrap(errs.KindUnauthorized, err, "Failed to get token")
	}

	client := g.oauth.Client(ctx, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return nil, errs.Wrap(errs.KindUnknown, err, "Failed to get user info")
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errs.Wrap(errs.KindUpstream, err, "Failed to get user info")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errs.Wrap(errs.KindUpstream, fmt.Errorf("userinfo status %d", resp.StatusCode), "Failed to get user info")
	}

	var gu googleUser
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil {
		return nil, errs.Wrap(errs.KindUpstream, err, "Failed to decode user info")
	}

	return &domain.Users{
		GoogleID:     &gu.ID,
		Email:        &gu.Email,
		UserName:     gu.Name,
		AuthProvider: string(domain.ProviderGoogle),
		// google only hands out verified addresses
		IsEmailVerified: true,
	}, nil
}

func (g googleAuthService) Login(ctx context.Context, users *domain.Users) (*domain.LoginResponse, error) {
	if users.GoogleID == nil || *users.GoogleID == "" {
		return nil, errs.Tag(errs.KindUnauthorized, errs.InvalidCredentials)
	}
	if users.AuthProvider != string(domain.ProviderGoogle) {
		return nil, errs.Tag(errs.KindUnauthorized, errs.InvalidCredentials)
	}
	if users.Email == nil || *users.Email == "" {
		return nil, errs.Tag(errs.KindValidation, errs.EmailRequired)
	}

	usr, err := g.userPort.GetByGoogleID(ctx, *users.GoogleID)
	if err != nil {
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to load user")
	}
	if usr != nil {
		return g.tokens.issue(ctx, usr)
	}

	existing, err := g.userPort.GetByEmail(ctx, *users.Email)
	if err != nil {
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to load user")
	}
	if existing != nil {
		return nil, errs.Tag(errs.KindConflict, errs.UserAlreadyExists)
	}

	users.PasswordHash = nil
	if users.UserName == "" {
		users.UserName = strings.Split(*users.Email, "@")[0]
	}
	users.Role = domain.RoleUser
	if err := g.userPort.Create(ctx, users); err != nil {
		logger.Error("Failed to create google user", "error", err)
		if errors.Is(err, secondary.ErrDuplicate) {
			return nil, errs.Tag(errs.KindConflict, errs.UserAlreadyExists)
		}
		return nil, errs.Tag(errs.KindPersistence, errs.FailedToCreateUser)
	}

	return g.tokens.issue(ctx, users)
}
