package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/domain"
)

type SubmissionRepository interface {
	// CreateWithResults stores the submission and its test case results together
	CreateWithResults(ctx context.Context, submission *domain.Submission, results []domain.TestCaseResult) error

	// Get returns the submission with its test case results, nil when missing
	Get(ctx context.Context, id uuid.UUID) (*domain.Submission, error)

	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Submission, error)
	ListByUserAndProblem(ctx context.Context, userID, problemID uuid.UUID) ([]*domain.Submission, error)
	CountByProblem(ctx context.Context, problemID uuid.UUID) (int, error)
}
