package auth

import (
	"context"
	"time"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/global/logger"
	"gitlab.com/codearena.net/internal/static/errs"
)

// tokenIssuer mints an access/refresh pair and remembers the refresh token as
// the only valid one for the user.
type tokenIssuer struct {
	jwtProvider primary.JWTService
	sessions    secondary.SessionStore
	refreshTTL  time.Duration
}

func (t tokenIssuer) issue(ctx context.Context, user *domain.Users) (*domain.LoginResponse, error) {
	payload := domain.AuthPayload{
		ID:       user.ID.String(),
		Username: user.UserName,
	}
	if user.Email != nil {
		payload.Email = *user.Email
	}

	access, err := t.jwtProvider.GenerateTokenHMAC(ctx, primary.AccessToken, payload)
	if err != nil {
		logger.Error("Failed to generate access token", "error", err)
		return nil, errs.Tag(errs.KindUnknown, errs.GeneratingToken)
	}
	refresh, err := t.jwtProvider.GenerateTokenHMAC(ctx, primary.RefreshToken, payload)
	if err != nil {
		logger.Error("Failed to generate refresh token", "error", err)
		return nil, errs.Tag(errs.KindUnknown, errs.GeneratingToken)
	}

	if err := t.sessions.SaveRefreshToken(ctx, user.ID, refresh, t.refreshTTL); err != nil {
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to store session")
	}

	return &domain.LoginResponse{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
