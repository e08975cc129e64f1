package playlist

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/domain"
)

// IPlaylistService manages a user's own playlists. Playlists of other users behave as missing.
type IPlaylistService interface {
	Create(ctx context.Context, userID uuid.UUID, req domain.CreatePlaylistRequest) (*domain.Playlist, error)
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Playlist, error)
	Get(ctx context.Context, userID, playlistID uuid.UUID) (*domain.Playlist, error)
	AddProblems(ctx context.Context, userID, playlistID uuid.UUID, problemIDs []uuid.UUID) (int, error)
	RemoveProblems(ctx context.Context, userID, playlistID uuid.UUID, problemIDs []uuid.UUID) (int, error)
	Delete(ctx context.Context, userID, playlistID uuid.UUID) error
}
