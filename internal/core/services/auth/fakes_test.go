package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"

	"gitlab.com/codearena.net/internal/adapter/crypto"
	"gitlab.com/codearena.net/internal/adapter/logging"
	"gitlab.com/codearena.net/internal/config"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/domain"
)

type memUsers struct {
	byID map[uuid.UUID]*domain.Users
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[uuid.UUID]*domain.Users)}
}

func (m *memUsers) Create(ctx context.Context, user *domain.Users) error {
	for _, u := range m.byID {
		if u.Email != nil && user.Email != nil && *u.Email == *user.Email {
			return secondary.ErrDuplicate
		}
	}
	user.ID = uuid.New()
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	m.byID[user.ID] = user
	return nil
}

func (m *memUsers) Get(ctx context.Context, id uuid.UUID) (*domain.Users, error) {
	return m.byID[id], nil
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*domain.Users, error) {
	for _, u := range m.byID {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByGoogleID(ctx context.Context, googleID string) (*domain.Users, error) {
	for _, u := range m.byID {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) SetEmailVerificationToken(ctx context.Context, id uuid.UUID, tokenHash string, expiry time.Time) error {
	u, ok := m.byID[id]
	if !ok {
		return errors.New("no such user")
	}
	u.EmailVerificationToken, u.EmailVerificationExpiry = &tokenHash, &expiry
	return nil
}

func (m *memUsers) GetByEmailVerificationToken(ctx context.Context, tokenHash string, now time.Time) (*domain.Users, error) {
	for _, u := range m.byID {
		if u.EmailVerificationToken != nil && *u.EmailVerificationToken == tokenHash && u.EmailVerificationExpiry.After(now) {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	u, ok := m.byID[id]
	if !ok {
		return errors.New("no such user")
	}
	u.IsEmailVerified = true
	u.EmailVerificationToken, u.EmailVerificationExpiry = nil, nil
	return nil
}

func (m *memUsers) SetForgotPasswordToken(ctx context.Context, id uuid.UUID, tokenHash string, expiry time.Time) error {
	u, ok := m.byID[id]
	if !ok {
		return errors.New("no such user")
	}
	u.ForgotPasswordToken, u.ForgotPasswordExpiry = &tokenHash, &expiry
	return nil
}

func (m *memUsers) GetByForgotPasswordToken(ctx context.Context, tokenHash string, now time.Time) (*domain.Users, error) {
	for _, u := range m.byID {
		if u.ForgotPasswordToken != nil && *u.ForgotPasswordToken == tokenHash && u.ForgotPasswordExpiry.After(now) {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	u, ok := m.byID[id]
	if !ok {
		return errors.New("no such user")
	}
	u.PasswordHash = &passwordHash
	u.ForgotPasswordToken, u.ForgotPasswordExpiry = nil, nil
	return nil
}

// sentMail is one captured message; link holds the raw token
type sentMail struct {
	kind string
	to   string
	link string
}

type memMailer struct {
	sent []sentMail
	err  error
}

func (m *memMailer) SendVerification(ctx context.Context, to, username, link string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{kind: "verify", to: to, link: link})
	return nil
}

func (m *memMailer) SendPasswordReset(ctx context.Context, to, username, link string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{kind: "reset", to: to, link: link})
	return nil
}

// last returns the most recent mail and the token at the end of its link
func (m *memMailer) last() (sentMail, string) {
	mail := m.sent[len(m.sent)-1]
	return mail, mail.link[strings.LastIndex(mail.link, "/")+1:]
}

type memSessions struct {
	tokens map[uuid.UUID]string
}

func newMemSessions() *memSessions {
	return &memSessions{tokens: make(map[uuid.UUID]string)}
}

func (m *memSessions) SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error {
	m.tokens[userID] = token
	return nil
}

func (m *memSessions) GetRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return m.tokens[userID], nil
}

func (m *memSessions) DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error {
	delete(m.tokens, userID)
	return nil
}

func newJWT() *crypto.JWTServiceImpl {
	return crypto.NewJWTService(&config.JwtConfig{
		AccessSecret:  "access",
		RefreshSecret: "refresh",
		AccessExpiry:  time.Hour,
		RefreshExpiry: 24 * time.Hour,
	})
}

type authFixture struct {
	users    *memUsers
	sessions *memSessions
	mailer   *memMailer
	session  *SessionService
	local    IAuthService
}

func newFixture(t *testing.T) *authFixture {
	users := newMemUsers()
	sessions := newMemSessions()
	mailer := &memMailer{}
	jwtSvc := newJWT()
	mailCfg := &config.MailConfig{BaseURL: "http://localhost:4000/", TokenTTL: 20 * time.Minute}
	return &authFixture{
		users:    users,
		sessions: sessions,
		mailer:   mailer,
		session: NewSessionService(users, jwtSvc, sessions, 24*time.Hour, mailer, mailCfg,
			logging.NewZapLoggerFrom(zaptest.NewLogger(t))),
		local: NewLocalAuthService(users, jwtSvc, sessions, 24*time.Hour),
	}
}
