package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/domain"
)

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *domain.Playlist) error

	// Get returns the user's playlist with its problems, nil when missing
	Get(ctx context.Context, id, userID uuid.UUID) (*domain.Playlist, error)

	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Playlist, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)

	// AddProblems skips problems already in the playlist and reports how many were added
	AddProblems(ctx context.Context, playlistID uuid.UUID, problemIDs []uuid.UUID) (int, error)
	RemoveProblems(ctx context.Context, playlistID uuid.UUID, problemIDs []uuid.UUID) (int, error)
}
