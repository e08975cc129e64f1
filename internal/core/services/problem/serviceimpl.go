package problem

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/core/services/execution"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/static/errs"
)

var _ IProblemService = (*ProblemService)(nil)

type ProblemService struct {
	problems  secondary.ProblemRepository
	execution execution.IExecutionService
	logger    primary.Logger
}

func NewProblemService(problems secondary.ProblemRepository, executionSvc execution.IExecutionService, logger primary.Logger) *ProblemService {
	return &ProblemService{
		problems:  problems,
		execution: executionSvc,
		logger:    logger,
	}
}

func validateInput(input domain.ProblemInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return errs.New(errs.KindValidation, "Title is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return errs.New(errs.KindValidation, "Description is required")
	}
	if !input.Difficulty.Valid() {
		return errs.Newf(errs.KindValidation, "Invalid difficulty %q", input.Difficulty)
	}
	return nil
}

func requireAdmin(caller domain.Identity) error {
	if !caller.IsAdmin() {
		return errs.Tag(errs.KindForbidden, errs.AdminOnly)
	}
	return nil
}

func (s *ProblemService) Create(ctx context.Context, caller domain.Identity, input domain.ProblemInput) (*domain.Problem, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := s.execution.ValidateReferenceSolutions(ctx, caller, input.TestCases, input.ReferenceSolutions); err != nil {
		return nil, err
	}

	problem := &domain.Problem{UserID: caller.UserID}
	input.Apply(problem)
	if err := s.problems.Create(ctx, problem); err != nil {
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to create problem")
	}

	s.logger.Info("problem created", "problemId", problem.ID, "userId", caller.UserID)
	return problem, nil
}

func (s *ProblemService) Update(ctx context.Context, caller domain.Identity, id uuid.UUID, input domain.ProblemInput) (*domain.Problem, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	problem, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := s.execution.ValidateReferenceSolutions(ctx, caller, input.TestCases, input.ReferenceSolutions); err != nil {
		return nil, err
	}

	input.Apply(problem)
	if err := s.problems.Update(ctx, problem); err != nil {
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to update problem")
	}

	s.logger.Info("problem updated", "problemId", problem.ID, "userId", caller.UserID)
	return problem, nil
}

func (s *ProblemService) Get(ctx context.Context, id uuid.UUID) (*domain.Problem, error) {
	problem, err := s.problems.Get(ctx, id)
	if err != nil {
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to fetch problem")
	}
	if problem == nil {
		return nil, errs.New(errs.KindNotFound, "Problem not found")
	}
	return problem, nil
}

func (s *ProblemService) List(ctx context.Context) ([]*domain.Problem, error) {
	problems, err := s.problems.List(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to fetch problems")
	}
	return problems, nil
}

func (s *ProblemService) Delete(ctx context.Context, caller domain.Identity, id uuid.UUID) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	deleted, err := s.problems.Delete(ctx, id)
	if err != nil {
		return errs.Wrap(errs.KindPersistence, err, "Failed to delete problem")
	}
	if !deleted {
		return errs.New(errs.KindNotFound, "Problem not found")
	}
	s.logger.Info("problem deleted", "problemId", id, "userId", caller.UserID)
	return nil
}

func (s *ProblemService) ListSolved(ctx context.Context, userID uuid.UUID) ([]*domain.Problem, error) {
	problems, err := s.problems.ListSolvedBy(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to fetch solved problems")
	}
	return problems, nil
}
