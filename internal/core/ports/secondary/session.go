package secondary

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionStore keeps the single valid refresh token per user.
type SessionStore interface {
	SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error

	// GetRefreshToken returns "" when no session exists
	GetRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)

	DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error
}
