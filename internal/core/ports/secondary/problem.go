package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/domain"
)

type ProblemRepository interface {
	// Create stores a new problem
	Create(ctx context.Context, problem *domain.Problem) error

	// Update overwrites the mutable fields of an existing problem
	Update(ctx context.Context, problem *domain.Problem) error

	// Get returns nil, nil when the problem does not exist
	Get(ctx context.Context, id uuid.UUID) (*domain.Problem, error)

	List(ctx context.Context) ([]*domain.Problem, error)

	// Delete returns false when nothing was deleted
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// ListSolvedBy returns problems the user has solved with their ProblemSolved rows
	ListSolvedBy(ctx context.Context, userID uuid.UUID) ([]*domain.Problem, error)
}

type ProblemSolvedRepository interface {
	// Upsert marks the problem solved by the user; repeated calls keep one row
	Upsert(ctx context.Context, userID, problemID uuid.UUID) error
}
