package execution

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"

	"gitlab.com/codearena.net/internal/adapter/logging"
	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/domain"
)

func testLogger(t *testing.T) primary.Logger {
	return logging.NewZapLoggerFrom(zaptest.NewLogger(t))
}

type fakeJudge struct {
	batches [][]domain.JudgeSubmission
	// respond builds the results for the n-th submitted batch
	respond   func(batch int, subs []domain.JudgeSubmission) ([]domain.JudgeResult, error)
	submitErr error
}

func (f *fakeJudge) SubmitBatch(ctx context.Context, subs []domain.JudgeSubmission) ([]domain.BatchToken, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.batches = append(f.batches, subs)
	tokens := make([]domain.BatchToken, len(subs))
	for i := range subs {
		tokens[i] = domain.BatchToken(fmt.Sprintf("b%d-t%d", len(f.batches)-1, i))
	}
	return tokens, nil
}

func (f *fakeJudge) PollBatchResults(ctx context.Context, tokens []domain.BatchToken) ([]domain.JudgeResult, error) {
	batch := len(f.batches) - 1
	results, err := f.respond(batch, f.batches[batch])
	if err != nil {
		return nil, err
	}
	for i := range results {
		results[i].Token = tokens[i]
	}
	return results, nil
}

func result(statusID int, stdout string) domain.JudgeResult {
	desc := "Accepted"
	if statusID != domain.StatusIDAccepted {
		desc = "Wrong Answer"
	}
	out := stdout
	return domain.JudgeResult{Status: &domain.JudgeStatus{ID: statusID, Description: desc}, Stdout: &out}
}

type fakeProblems struct {
	problems map[uuid.UUID]*domain.Problem
}

func (f *fakeProblems) Create(ctx context.Context, p *domain.Problem) error { return nil }
func (f *fakeProblems) Update(ctx context.Context, p *domain.Problem) error { return nil }
func (f *fakeProblems) Get(ctx context.Context, id uuid.UUID) (*domain.Problem, error) {
	return f.problems[id], nil
}
func (f *fakeProblems) List(ctx context.Context) ([]*domain.Problem, error) { return nil, nil }
func (f *fakeProblems) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return false, nil
}
func (f *fakeProblems) ListSolvedBy(ctx context.Context, userID uuid.UUID) ([]*domain.Problem, error) {
	return nil, nil
}

type fakeSubmissions struct {
	saved     []*domain.Submission
	createErr error
}

func (f *fakeSubmissions) CreateWithResults(ctx context.Context, s *domain.Submission, results []domain.TestCaseResult) error {
	if f.createErr != nil {
		return f.createErr
	}
	s.ID = uuid.New()
	for i := range results {
		results[i].SubmissionID = s.ID
	}
	s.TestCases = results
	f.saved = append(f.saved, s)
	return nil
}

func (f *fakeSubmissions) Get(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	return nil, errors.New("not used")
}
func (f *fakeSubmissions) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Submission, error) {
	return nil, nil
}
func (f *fakeSubmissions) ListByUserAndProblem(ctx context.Context, userID, problemID uuid.UUID) ([]*domain.Submission, error) {
	return nil, nil
}
func (f *fakeSubmissions) CountByProblem(ctx context.Context, problemID uuid.UUID) (int, error) {
	return len(f.saved), nil
}

type solvedKey struct{ user, problem uuid.UUID }

type fakeSolved struct {
	rows  map[solvedKey]struct{}
	calls int
}

func (f *fakeSolved) Upsert(ctx context.Context, userID, problemID uuid.UUID) error {
	f.calls++
	if f.rows == nil {
		f.rows = make(map[solvedKey]struct{})
	}
	f.rows[solvedKey{userID, problemID}] = struct{}{}
	return nil
}
