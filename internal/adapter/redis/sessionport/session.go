package sessionport

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
)

const refreshKeyPrefix = "session:refresh:"

var _ secondary.SessionStore = (*SessionRepository)(nil)

// SessionRepository keeps refresh tokens in Redis, one key per user with the token's TTL
type SessionRepository struct {
	redisClient *redis.Client
	logger      primary.Logger
}

func NewSessionRepository(redisClient *redis.Client, logger primary.Logger) *SessionRepository {
	return &SessionRepository{
		redisClient: redisClient,
		logger:      logger,
	}
}

func refreshKey(userID uuid.UUID) string {
	return refreshKeyPrefix + userID.String()
}

// SaveRefreshToken replaces any refresh token previously stored for the user
func (r *SessionRepository) SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error {
	if err := r.redisClient.Set(ctx, refreshKey(userID), token, ttl).Err(); err != nil {
		r.logger.Error("Failed to save refresh token", "userId", userID, "error", err)
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := r.redisClient.Get(ctx, refreshKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		r.logger.Error("Failed to get refresh token", "userId", userID, "error", err)
		return "", fmt.Errorf("failed to get refresh token: %w", err)
	}
	return token, nil
}

func (r *SessionRepository) DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error {
	if err := r.redisClient.Del(ctx, refreshKey(userID)).Err(); err != nil {
		r.logger.Error("Failed to delete refresh token", "userId", userID, "error", err)
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}
