package playlist

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/static/errs"
)

var _ IPlaylistService = (*PlaylistService)(nil)

type PlaylistService struct {
	playlists secondary.PlaylistRepository
	logger    primary.Logger
}

func NewPlaylistService(playlists secondary.PlaylistRepository, logger primary.Logger) *PlaylistService {
	return &PlaylistService{
		playlists: playlists,
		logger:    logger,
	}
}

func (s *PlaylistService) Create(ctx context.Context, userID uuid.UUID, req domain.CreatePlaylistRequest) (*domain.Playlist, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errs.New(errs.KindValidation, "Playlist name is required")
	}

	playlist := &domain.Playlist{
		Name:        name,
		Description: req.Description,
		UserID:      userID,
	}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		if errors.Is(err, secondary.ErrDuplicate) {
			return nil, errs.Newf(errs.KindConflict, "Playlist %q already exists", name)
		}
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to create playlist")
	}

	s.logger.Info("playlist created", "playlistId", playlist.ID, "userId", userID)
	return playlist, nil
}

func (s *PlaylistService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Playlist, error) {
	playlists, err := s.playlists.ListByUser(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to fetch playlists")
	}
	return playlists, nil
}

func (s *PlaylistService) Get(ctx context.Context, userID, playlistID uuid.UUID) (*domain.Playlist, error) {
	playlist, err := s.playlists.Get(ctx, playlistID, userID)
	if err != nil {
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to fetch playlist")
	}
	if playlist == nil {
		return nil, errs.New(errs.KindNotFound, "Playlist not found")
	}
	return playlist, nil
}

func validateProblemIDs(problemIDs []uuid.UUID) error {
	if len(problemIDs) == 0 {
		return errs.New(errs.KindValidation, "Invalid or missing problemIds")
	}
	for _, id := range problemIDs {
		if id == uuid.Nil {
			return errs.New(errs.KindValidation, "Invalid or missing problemIds")
		}
	}
	return nil
}

func (s *PlaylistService) AddProblems(ctx context.Context, userID, playlistID uuid.UUID, problemIDs []uuid.UUID) (int, error) {
	if err := validateProblemIDs(problemIDs); err != nil {
		return 0, err
	}
	if _, err := s.Get(ctx, userID, playlistID); err != nil {
		return 0, err
	}

	added, err := s.playlists.AddProblems(ctx, playlistID, problemIDs)
	if err != nil {
		return 0, errs.Wrap(errs.KindPersistence, err, "Failed to add problems to playlist")
	}
	return added, nil
}

func (s *PlaylistService) RemoveProblems(ctx context.Context, userID, playlistID uuid.UUID, problemIDs []uuid.UUID) (int, error) {
	if err := validateProblemIDs(problemIDs); err != nil {
		return 0, err
	}
	if _, err := s.Get(ctx, userID, playlistID); err != nil {
		return 0, err
	}

	removed, err := s.playlists.RemoveProblems(ctx, playlistID, problemIDs)
	if err != nil {
		return 0, errs.Wrap(errs.KindPersistence, err, "Failed to remove problems from playlist")
	}
	return removed, nil
}

func (s *PlaylistService) Delete(ctx context.Context, userID, playlistID uuid.UUID) error {
	deleted, err := s.playlists.Delete(ctx, playlistID, userID)
	if err != nil {
		return errs.Wrap(errs.KindPersistence, err, "Failed to delete playlist")
	}
	if !deleted {
		return errs.New(errs.KindNotFound, "Playlist not found")
	}
	return nil
}
