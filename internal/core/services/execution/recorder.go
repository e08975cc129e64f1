package execution

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/static/errs"
)

// Recorder persists an evaluated run as a Submission with its TestCaseResults.
type Recorder struct {
	submissions secondary.SubmissionRepository
	solved      secondary.ProblemSolvedRepository
	logger      primary.Logger
}

func NewRecorder(submissions secondary.SubmissionRepository, solved secondary.ProblemSolvedRepository, logger primary.Logger) *Recorder {
	return &Recorder{
		submissions: submissions,
		solved:      solved,
		logger:      logger,
	}
}

func (r *Recorder) Record(
	ctx context.Context,
	userID uuid.UUID,
	req domain.ExecuteCodeRequest,
	language string,
	verdicts []domain.TestCaseVerdict,
	allPassed bool,
) (*domain.Submission, error) {
	stdout := make([]string, len(verdicts))
	stderr := make([]*string, len(verdicts))
	compileOutput := make([]*string, len(verdicts))
	memory := make([]*string, len(verdicts))
	times := make([]*string, len(verdicts))
	results := make([]domain.TestCaseResult, len(verdicts))

	for i, v := range verdicts {
		stdout[i] = v.Stdout
		stderr[i] = v.Stderr
		compileOutput[i] = v.CompileOutput
		memory[i] = v.Memory
		times[i] = v.Time

		results[i] = domain.TestCaseResult{
			TestCase:      v.TestCase,
			Passed:        v.Passed,
			Stdout:        v.Stdout,
			Expected:      v.Expected,
			Stderr:        v.Stderr,
			CompileOutput: v.CompileOutput,
			Status:        v.Status,
			Memory:        v.Memory,
			Time:          v.Time,
		}
	}

	submission := &domain.Submission{
		UserID:        userID,
		ProblemID:     req.ProblemID,
		SourceCode:    req.SourceCode,
		Language:      language,
		Stdin:         strings.Join(req.Stdin, "\n"),
		Stdout:        jsonArray(stdout),
		Stderr:        jsonArrayIfAny(stderr),
		CompileOutput: jsonArrayIfAny(compileOutput),
		Status:        domain.StatusFor(allPassed),
		Memory:        jsonArrayIfAny(memory),
		Time:          jsonArrayIfAny(times),
	}

	if err := r.submissions.CreateWithResults(ctx, submission, results); err != nil {
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to save submission")
	}

	if allPassed {
		if err := r.solved.Upsert(ctx, userID, req.ProblemID); err != nil {
			return nil, errs.Wrap(errs.KindPersistence, err, "Failed to mark problem as solved")
		}
	}

	r.logger.Info("submission recorded",
		"submissionId", submission.ID, "problemId", req.ProblemID, "status", submission.Status)
	return submission, nil
}

func jsonArray(values interface{}) *string {
	b, err := json.Marshal(values)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

// jsonArrayIfAny serializes values, or returns nil when none is set
func jsonArrayIfAny(values []*string) *string {
	for _, v := range values {
		if v != nil && *v != "" {
			return jsonArray(values)
		}
	}
	return nil
}
