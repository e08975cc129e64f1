package crypto

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gitlab.com/codearena.net/internal/config"
	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/domain"
)

var _ primary.JWTService = (*JWTServiceImpl)(nil)

var (
	ErrInvalidToken = errors.New("invalid token")
)

type tokenClaims struct {
	domain.AuthPayload
	jwt.RegisteredClaims
}

type JWTServiceImpl struct {
	secrets map[primary.TokenKind][]byte
	expiry  map[primary.TokenKind]time.Duration
	now     func() time.Time
}

func NewJWTService(jwtConfig *config.JwtConfig) *JWTServiceImpl {
	return &JWTServiceImpl{
		secrets: map[primary.TokenKind][]byte{
			primary.AccessToken:  []byte(jwtConfig.AccessSecret),
			primary.RefreshToken: []byte(jwtConfig.RefreshSecret),
		},
		expiry: map[primary.TokenKind]time.Duration{
			primary.AccessToken:  jwtConfig.AccessExpiry,
			primary.RefreshToken: jwtConfig.RefreshExpiry,
		},
		now: time.Now,
	}
}

func (J *JWTServiceImpl) secret(kind primary.TokenKind) ([]byte, error) {
	secret, ok := J.secrets[kind]
	if !ok || len(secret) == 0 {
		return nil, fmt.Errorf("no secret configured for %s tokens", kind)
	}
	return secret, nil
}

func (J *JWTServiceImpl) GenerateTokenHMAC(ctx context.Context, kind primary.TokenKind, payload domain.AuthPayload) (string, error) {
	secret, err := J.secret(kind)
	if err != nil {
		return "", err
	}
	now := J.now()
	claims := tokenClaims{
		AuthPayload: payload,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   payload.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(J.expiry[kind])),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(secret)
}

func (J *JWTServiceImpl) parse(kind primary.TokenKind, token string) (*tokenClaims, error) {
	secret, err := J.secret(kind)
	if err != nil {
		return nil, err
	}
	claims := &tokenClaims{}
	parsedToken, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(J.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsedToken.Valid || claims.AuthPayload.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (J *JWTServiceImpl) VerifyTokenHMAC(ctx context.Context, kind primary.TokenKind, token string) (bool, error) {
	if _, err := J.parse(kind, token); err != nil {
		return false, err
	}
	return true, nil
}

func (J *JWTServiceImpl) DecodeTokenPayload(ctx context.Context, kind primary.TokenKind, token string) (domain.AuthPayload, error) {
	claims, err := J.parse(kind, token)
	if err != nil {
		return domain.AuthPayload{}, err
	}
	return claims.AuthPayload, nil
}

func (J *JWTServiceImpl) VerifyPassword(ctx context.Context, passwordHash string, pwd string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(pwd))
	if err != nil {
		return false, err
	}
	return true, nil
}

func (J *JWTServiceImpl) EncryptPassword(ctx context.Context, password string) (string, error) {
	pwd, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
