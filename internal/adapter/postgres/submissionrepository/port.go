package submissionrepository

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

var _ secondary.SubmissionRepository = (*SubmissionRepository)(nil)

type SubmissionRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func NewSubmissionRepository(db *sqlx.DB, logger primary.Logger, schema string) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// CreateWithResults writes the submission and its results in one transaction.
// On success submission.TestCases holds the stored results.
func (r *SubmissionRepository) CreateWithResults(ctx context.Context, submission *domain.Submission, results []domain.TestCaseResult) (err error) {
	now := time.Now().UTC()
	if submission.ID == uuid.Nil {
		submission.ID = uuid.New()
	}
	submission.CreatedAt = now
	submission.UpdatedAt = now

	subTbl := domain.GetSubmissionTable()
	subQuery, subArgs := querybuilder.NewQueryBuilder(r.schema).
		Insert(subTbl.Columns()...).
		Into(subTbl.GetTableName()).
		Values(submission.Values()...).
		Build()

	resTbl := domain.GetTestCaseResultTable()
	resBuilder := querybuilder.NewQueryBuilder(r.schema).
		Insert(resTbl.Columns()...).
		Into(resTbl.GetTableName())
	stored := make([]domain.TestCaseResult, len(results))
	for i := range results {
		stored[i] = results[i]
		stored[i].ID = uuid.New()
		stored[i].SubmissionID = submission.ID
		stored[i].CreatedAt = now
		resBuilder.Values(stored[i].Values()...)
	}
	resQuery, resArgs := resBuilder.Build()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.Error("Failed to rollback submission", "submissionId", submission.ID, "error", rbErr)
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, subQuery), subArgs...); err != nil {
		r.logger.Error("Failed to create submission", "error", err)
		return fmt.Errorf("failed to create submission: %w", err)
	}
	if len(stored) > 0 {
		if _, err = tx.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, resQuery), resArgs...); err != nil {
			r.logger.Error("Failed to create test case results", "submissionId", submission.ID, "error", err)
			return fmt.Errorf("failed to create test case results: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit submission: %w", err)
	}

	submission.TestCases = stored
	return nil
}

func (r *SubmissionRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		Build()

	var submission domain.Submission
	if err := r.db.GetContext(ctx, &submission, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	resTbl := domain.GetTestCaseResultTable()
	query, args = querybuilder.NewQueryBuilder(r.schema).
		Select(resTbl.Columns()...).
		From(resTbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", resTbl.SubmissionID), id).
		OrderBy(resTbl.TestCase, true).
		Build()

	results := make([]domain.TestCaseResult, 0)
	if err := r.db.SelectContext(ctx, &results, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		return nil, fmt.Errorf("failed to get test case results: %w", err)
	}
	submission.TestCases = results
	return &submission, nil
}

func (r *SubmissionRepository) list(ctx context.Context, filter func(qb querybuilder.QueryBuilder)) ([]*domain.Submission, error) {
	tbl := domain.GetSubmissionTable()
	qb := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.Columns()...).
		From(tbl.GetTableName())
	filter(qb)
	query, args := qb.OrderBy(tbl.CreatedAt, false).Build()

	submissions := make([]*domain.Submission, 0)
	if err := r.db.SelectContext(ctx, &submissions, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

func (r *SubmissionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Submission, error) {
	tbl := domain.GetSubmissionTable()
	return r.list(ctx, func(qb querybuilder.QueryBuilder) {
		qb.Where(fmt.Sprintf("%s = ?", tbl.UserID), userID)
	})
}

func (r *SubmissionRepository) ListByUserAndProblem(ctx context.Context, userID, problemID uuid.UUID) ([]*domain.Submission, error) {
	tbl := domain.GetSubmissionTable()
	return r.list(ctx, func(qb querybuilder.QueryBuilder) {
		qb.Where(fmt.Sprintf("%s = ?", tbl.UserID), userID).
			And(fmt.Sprintf("%s = ?", tbl.ProblemID), problemID)
	})
}

func (r *SubmissionRepository) CountByProblem(ctx context.Context, problemID uuid.UUID) (int, error) {
	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select("COUNT(*)").
		From(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ProblemID), problemID).
		Build()

	var count int
	if err := r.db.GetContext(ctx, &count, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return count, nil
}
