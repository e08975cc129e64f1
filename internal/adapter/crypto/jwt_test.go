package crypto

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gitlab.com/codearena.net/internal/config"
	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/domain"
)

func newTestService() *JWTServiceImpl {
	return NewJWTService(&config.JwtConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessExpiry:  time.Hour,
		RefreshExpiry: 24 * time.Hour,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	payload := domain.AuthPayload{ID: "7b5c7c8e-0000-4000-8000-000000000001", Email: "a@b.c", Username: "alice"}

	token, err := svc.GenerateTokenHMAC(ctx, primary.AccessToken, payload)
	require.NoError(t, err)

	decoded, err := svc.DecodeTokenPayload(ctx, primary.AccessToken, token)
	require.NoError(t, err)
	require.Equal(t, payload, decoded)

	// an access token is not a valid refresh token
	ok, err := svc.VerifyTokenHMAC(ctx, primary.RefreshToken, token)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.False(t, ok)
}

func TestExpiredTokenRejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	issued := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issued }

	token, err := svc.GenerateTokenHMAC(ctx, primary.AccessToken, domain.AuthPayload{ID: "x"})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.DecodeTokenPayload(ctx, primary.AccessToken, token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	hash, err := svc.EncryptPassword(ctx, "s3cret")
	require.NoError(t, err)

	ok, err := svc.VerifyPassword(ctx, hash, "s3cret")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.VerifyPassword(ctx, hash, "wrong")
	require.Error(t, err)
	require.False(t, ok)
}

func TestTokensAreUnique(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	payload := domain.AuthPayload{ID: "u1"}

	first, err := svc.GenerateTokenHMAC(ctx, primary.RefreshToken, payload)
	require.NoError(t, err)
	second, err := svc.GenerateTokenHMAC(ctx, primary.RefreshToken, payload)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}
