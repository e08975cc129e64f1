package problemrepository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/domain"
	querybuilder "gitlab.com/codearena.net/internal/utils"
)

var _ secondary.ProblemSolvedRepository = (*SolvedRepository)(nil)

type SolvedRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func NewSolvedRepository(db *sqlx.DB, logger primary.Logger, schema string) *SolvedRepository {
	return &SolvedRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (r *SolvedRepository) Upsert(ctx context.Context, userID, problemID uuid.UUID) error {
	tbl := domain.GetProblemSolvedTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.ID, tbl.UserID, tbl.ProblemID, tbl.CreatedAt).
		Into(tbl.GetTableName()).
		Values(uuid.New(), userID, problemID, time.Now().UTC()).
		OnConflict(tbl.UserID, tbl.ProblemID).
		DoNothing().
		Build()

	if _, err := r.db.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		r.logger.Error("Failed to mark problem solved", "userId", userID, "problemId", problemID, "error", err)
		return fmt.Errorf("failed to mark problem solved: %w", err)
	}
	return nil
}
