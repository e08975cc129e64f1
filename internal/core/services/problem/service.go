package problem

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/domain"
)

type IProblemService interface {
	// Create validates every reference solution on the judge before storing the problem
	Create(ctx context.Context, caller domain.Identity, input domain.ProblemInput) (*domain.Problem, error)
	Update(ctx context.Context, caller domain.Identity, id uuid.UUID, input domain.ProblemInput) (*domain.Problem, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Problem, error)
	List(ctx context.Context) ([]*domain.Problem, error)
	Delete(ctx context.Context, caller domain.Identity, id uuid.UUID) error
	ListSolved(ctx context.Context, userID uuid.UUID) ([]*domain.Problem, error)
}
