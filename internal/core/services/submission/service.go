package submission

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/static/errs"
)

// ISubmissionService reads stored submissions. Submissions are written only by execution.
type ISubmissionService interface {
	ListMine(ctx context.Context, userID uuid.UUID) ([]*domain.Submission, error)
	ListMineForProblem(ctx context.Context, userID, problemID uuid.UUID) ([]*domain.Submission, error)
	CountForProblem(ctx context.Context, problemID uuid.UUID) (int, error)
	Get(ctx context.Context, caller domain.Identity, submissionID uuid.UUID) (*domain.Submission, error)
}

var _ ISubmissionService = (*SubmissionService)(nil)

type SubmissionService struct {
	submissions secondary.SubmissionRepository
	logger      primary.Logger
}

func NewSubmissionService(submissions secondary.SubmissionRepository, logger primary.Logger) *SubmissionService {
	return &SubmissionService{
		submissions: submissions,
		logger:      logger,
	}
}

func (s *SubmissionService) ListMine(ctx context.Context, userID uuid.UUID) ([]*domain.Submission, error) {
	subs, err := s.submissions.ListByUser(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to fetch submissions")
	}
	return subs, nil
}

func (s *SubmissionService) ListMineForProblem(ctx context.Context, userID, problemID uuid.UUID) ([]*domain.Submission, error) {
	subs, err := s.submissions.ListByUserAndProblem(ctx, userID, problemID)
	if err != nil {
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to fetch submissions")
	}
	return subs, nil
}

func (s *SubmissionService) CountForProblem(ctx context.Context, problemID uuid.UUID) (int, error) {
	count, err := s.submissions.CountByProblem(ctx, problemID)
	if err != nil {
		return 0, errs.Wrap(errs.KindPersistence, err, "Failed to count submissions")
	}
	return count, nil
}

// Get returns a submission with its test case results. Only its owner or an admin may read it.
func (s *SubmissionService) Get(ctx context.Context, caller domain.Identity, submissionID uuid.UUID) (*domain.Submission, error) {
	sub, err := s.submissions.Get(ctx, submissionID)
	if err != nil {
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to fetch submission")
	}
	if sub == nil || (sub.UserID != caller.UserID && !caller.IsAdmin()) {
		return nil, errs.New(errs.KindNotFound, "Submission not found")
	}
	return sub, nil
}
