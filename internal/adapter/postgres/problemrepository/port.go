package problemrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/domain"
	querybuilder "gitlab.com/codearena.net/internal/utils"
)

var _ secondary.ProblemRepository = (*ProblemRepository)(nil)

type ProblemRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func NewProblemRepository(db *sqlx.DB, logger primary.Logger, schema string) *ProblemRepository {
	return &ProblemRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// solvedProblemRow is a problem joined with the caller's problem_solved row
type solvedProblemRow struct {
	domain.Problem
	SolvedID uuid.UUID `db:"solved_id"`
	SolvedAt time.Time `db:"solved_at"`
}

func (r *ProblemRepository) Create(ctx context.Context, problem *domain.Problem) error {
	now := time.Now().UTC()
	if problem.ID == uuid.Nil {
		problem.ID = uuid.New()
	}
	problem.CreatedAt = now
	problem.UpdatedAt = now

	tbl := domain.GetProblemTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.Columns()...).
		Into(tbl.GetTableName()).
		Values(problem.Values()...).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to create problem", "error", err)
		return fmt.Errorf("failed to create problem: %w", err)
	}
	return nil
}

func (r *ProblemRepository) Update(ctx context.Context, problem *domain.Problem) error {
	problem.UpdatedAt = time.Now().UTC()

	tbl := domain.GetProblemTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Update(tbl.GetTableName(), querybuilder.UpdateData{
			tbl.Title:              problem.Title,
			tbl.Description:        problem.Description,
			tbl.Difficulty:         problem.Difficulty,
			tbl.Tags:               problem.Tags,
			tbl.Examples:           problem.Examples,
			tbl.Constraints:        problem.Constraints,
			tbl.Hints:              problem.Hints,
			tbl.Editorial:          problem.Editorial,
			tbl.TestCases:          problem.TestCases,
			tbl.CodeSnippets:       problem.CodeSnippets,
			tbl.ReferenceSolutions: problem.ReferenceSolutions,
			tbl.UpdatedAt:          problem.UpdatedAt,
		}).
		Where(fmt.Sprintf("%s = ?", tbl.ID), problem.ID).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to update problem", "problemId", problem.ID, "error", err)
		return fmt.Errorf("failed to update problem: %w", err)
	}
	return nil
}

func (r *ProblemRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Problem, error) {
	tbl := domain.GetProblemTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var problem domain.Problem
	if err := r.db.GetContext(ctx, &problem, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}
	return &problem, nil
}

func (r *ProblemRepository) List(ctx context.Context) ([]*domain.Problem, error) {
	tbl := domain.GetProblemTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.GetTableName()).
		OrderBy(tbl.CreatedAt, false).
		Build()

	problems := make([]*domain.Problem, 0)
	if err := r.db.SelectContext(ctx, &problems, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}
	return problems, nil
}

func (r *ProblemRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tbl := domain.GetProblemTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Delete(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		Build()

	res, err := r.db.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...)
	if err != nil {
		r.logger.Error("Failed to delete problem", "problemId", id, "error", err)
		return false, fmt.Errorf("failed to delete problem: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete problem: %w", err)
	}
	return n > 0, nil
}

func (r *ProblemRepository) ListSolvedBy(ctx context.Context, userID uuid.UUID) ([]*domain.Problem, error) {
	tbl := domain.GetProblemTable()
	solvedTbl := domain.GetProblemSolvedTable()

	cols := make([]string, 0, len(tbl.Columns())+2)
	for _, c := range tbl.Columns() {
		cols = append(cols, "p."+c)
	}
	cols = append(cols, "ps.id AS solved_id", "ps.created_at AS solved_at")

	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(cols...).
		From(tbl.GetTableName()+" p").
		Join(querybuilder.JoinTypeInner, solvedTbl.GetTableName(), "ps", "ps.problem_id = p.id").
		Where("ps.user_id = ?", userID).
		OrderBy("ps.created_at", false).
		Build()

	var rows []solvedProblemRow
	if err := r.db.SelectContext(ctx, &rows, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		return nil, fmt.Errorf("failed to list solved problems: %w", err)
	}

	problems := make([]*domain.Problem, 0, len(rows))
	for i := range rows {
		p := rows[i].Problem
		p.SolvedBy = []domain.ProblemSolved{{
			ID:        rows[i].SolvedID,
			UserID:    userID,
			ProblemID: p.ID,
			CreatedAt: rows[i].SolvedAt,
		}}
		problems = append(problems, &p)
	}
	return problems, nil
}
