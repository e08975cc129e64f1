package secondary

import (
	"context"

	"gitlab.com/codearena.net/internal/domain"
)

// JudgeClient runs batches of test case executions on the external judge.
type JudgeClient interface {
	// SubmitBatch submits all cases in one call; tokens come back in submission order
	SubmitBatch(ctx context.Context, submissions []domain.JudgeSubmission) ([]domain.BatchToken, error)

	// PollBatchResults blocks until every result is terminal, in token order
	PollBatchResults(ctx context.Context, tokens []domain.BatchToken) ([]domain.JudgeResult, error)
}
