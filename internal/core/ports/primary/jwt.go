package primary

import (
	"context"

	"gitlab.com/codearena.net/internal/domain"
)

// TokenKind selects the secret and lifetime used for a token.
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

type JWTService interface {
	GenerateTokenHMAC(ctx context.Context, kind TokenKind, payload domain.AuthPayload) (string, error)
	VerifyTokenHMAC(ctx context.Context, kind TokenKind, token string) (bool, error)
	// DecodeTokenPayload verifies the token and returns its claims
	DecodeTokenPayload(ctx context.Context, kind TokenKind, token string) (domain.AuthPayload, error)
	EncryptPassword(ctx context.Context, password string) (string, error)
	VerifyPassword(ctx context.Context, passwordHash string, pwd string) (bool, error)
}
