package playlistrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/codearena.net/internal/adapter/postgres"
	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/domain"
	querybuilder "gitlab.com/codearena.net/internal/utils"
)

var _ secondary.PlaylistRepository = (*PlaylistRepository)(nil)

type PlaylistRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func NewPlaylistRepository(db *sqlx.DB, logger primary.Logger, schema string) *PlaylistRepository {
	return &PlaylistRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func playlistColumns() []string {
	t := domain.GetPlaylistTable()
	return []string{t.ID, t.Name, t.Description, t.UserID, t.CreatedAt, t.UpdatedAt}
}

func (r *PlaylistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	now := time.Now().UTC()
	if playlist.ID == uuid.Nil {
		playlist.ID = uuid.New()
	}
	playlist.CreatedAt = now
	playlist.UpdatedAt = now

	tbl := domain.GetPlaylistTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(playlistColumns()...).
		Into(tbl.GetTableName()).
		Values(playlist.ID, playlist.Name, playlist.Description, playlist.UserID, playlist.CreatedAt, playlist.UpdatedAt).
		Build()

	if _, err := r.db.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return secondary.ErrDuplicate
		}
		r.logger.Error("Failed to create playlist", "error", err)
		return fmt.Errorf("failed to create playlist: %w", err)
	}
	if playlist.Problems == nil {
		playlist.Problems = make([]domain.ProblemInPlaylist, 0)
	}
	return nil
}

func (r *PlaylistRepository) Get(ctx context.Context, id, userID uuid.UUID) (*domain.Playlist, error) {
	tbl := domain.GetPlaylistTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(playlistColumns()...).
		From(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		And(fmt.Sprintf("%s = ?", tbl.UserID), userID).
		Build()

	var playlist domain.Playlist
	if err := r.db.GetContext(ctx, &playlist, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}

	if err := r.attachProblems(ctx, []*domain.Playlist{&playlist}); err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (r *PlaylistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Playlist, error) {
	tbl := domain.GetPlaylistTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(playlistColumns()...).
		From(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tbl.UserID), userID).
		OrderBy(tbl.CreatedAt, false).
		Build()

	playlists := make([]*domain.Playlist, 0)
	if err := r.db.SelectContext(ctx, &playlists, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	if err := r.attachProblems(ctx, playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// attachProblems loads playlist entries with their problems in two queries
func (r *PlaylistRepository) attachProblems(ctx context.Context, playlists []*domain.Playlist) error {
	if len(playlists) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(playlists))
	byID := make(map[uuid.UUID]*domain.Playlist, len(playlists))
	for i, p := range playlists {
		ids[i] = p.ID
		byID[p.ID] = p
		p.Problems = make([]domain.ProblemInPlaylist, 0)
	}

	itemTbl := domain.GetProblemInPlaylistTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(itemTbl.ID, itemTbl.PlaylistID, itemTbl.ProblemID, itemTbl.CreatedAt).
		From(itemTbl.GetTableName()).
		Where(fmt.Sprintf("%s = ANY(?::uuid[])", itemTbl.PlaylistID), postgres.UUIDArray(ids)).
		OrderBy(itemTbl.CreatedAt, true).
		Build()

	var items []domain.ProblemInPlaylist
	if err := r.db.SelectContext(ctx, &items, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		return fmt.Errorf("failed to list playlist problems: %w", err)
	}
	if len(items) == 0 {
		return nil
	}

	seen := make(map[uuid.UUID]struct{}, len(items))
	problemIDs := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProblemID]; !ok {
			seen[it.ProblemID] = struct{}{}
			problemIDs = append(problemIDs, it.ProblemID)
		}
	}

	problemTbl := domain.GetProblemTable()
	query, args = querybuilder.NewQueryBuilder(r.schema).
		Select(problemTbl.Columns()...).
		From(problemTbl.GetTableName()).
		Where(fmt.Sprintf("%s = ANY(?::uuid[])", problemTbl.ID), postgres.UUIDArray(problemIDs)).
		Build()

	var problems []*domain.Problem
	if err := r.db.SelectContext(ctx, &problems, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		return fmt.Errorf("failed to load playlist problems: %w", err)
	}
	problemByID := make(map[uuid.UUID]*domain.Problem, len(problems))
	for _, p := range problems {
		problemByID[p.ID] = p
	}

	for _, it := range items {
		it.Problem = problemByID[it.ProblemID]
		if pl, ok := byID[it.PlaylistID]; ok {
			pl.Problems = append(pl.Problems, it)
		}
	}
	return nil
}

func (r *PlaylistRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	tbl := domain.GetPlaylistTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Delete(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		And(fmt.Sprintf("%s = ?", tbl.UserID), userID).
		Build()

	res, err := r.db.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...)
	if err != nil {
		r.logger.Error("Failed to delete playlist", "playlistId", id, "error", err)
		return false, fmt.Errorf("failed to delete playlist: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete playlist: %w", err)
	}
	return n > 0, nil
}

func (r *PlaylistRepository) AddProblems(ctx context.Context, playlistID uuid.UUID, problemIDs []uuid.UUID) (int, error) {
	if len(problemIDs) == 0 {
		return 0, nil
	}

	tbl := domain.GetProblemInPlaylistTable()
	now := time.Now().UTC()
	qb := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.ID, tbl.PlaylistID, tbl.ProblemID, tbl.CreatedAt).
		Into(tbl.GetTableName())
	for _, problemID := range problemIDs {
		qb.Values(uuid.New(), playlistID, problemID, now)
	}
	query, args := qb.OnConflict(tbl.PlaylistID, tbl.ProblemID).DoNothing().Build()

	res, err := r.db.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...)
	if err != nil {
		r.logger.Error("Failed to add problems to playlist", "playlistId", playlistID, "error", err)
		return 0, fmt.Errorf("failed to add problems to playlist: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to add problems to playlist: %w", err)
	}
	return int(n), nil
}

func (r *PlaylistRepository) RemoveProblems(ctx context.Context, playlistID uuid.UUID, problemIDs []uuid.UUID) (int, error) {
	if len(problemIDs) == 0 {
		return 0, nil
	}

	tbl := domain.GetProblemInPlaylistTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Delete(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tbl.PlaylistID), playlistID).
		And(fmt.Sprintf("%s = ANY(?::uuid[])", tbl.ProblemID), postgres.UUIDArray(problemIDs)).
		Build()

	res, err := r.db.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...)
	if err != nil {
		r.logger.Error("Failed to remove problems from playlist", "playlistId", playlistID, "error", err)
		return 0, fmt.Errorf("failed to remove problems from playlist: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to remove problems from playlist: %w", err)
	}
	return int(n), nil
}
