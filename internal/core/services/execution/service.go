package execution

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/ports/secondary"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/static/errs"
)

type IExecutionService interface {
	// Execute judges the source against every stdin/expected pair and records the submission
	Execute(ctx context.Context, userID uuid.UUID, req domain.ExecuteCodeRequest) (*domain.Submission, error)

	// ValidateReferenceSolutions runs every reference solution against every test case.
	// It returns nil only when all of them are accepted.
	ValidateReferenceSolutions(ctx context.Context, caller domain.Identity, testCases []domain.TestCase, solutions domain.LanguageCode) error
}

var _ IExecutionService = (*service)(nil)

type service struct {
	judge    secondary.JudgeClient
	problems secondary.ProblemRepository
	recorder *Recorder
	logger   primary.Logger
}

func NewExecutionService(
	judge secondary.JudgeClient,
	problems secondary.ProblemRepository,
	recorder *Recorder,
	logger primary.Logger,
) IExecutionService {
	return &service{
		judge:    judge,
		problems: problems,
		recorder: recorder,
		logger:   logger,
	}
}

func validateRequest(req domain.ExecuteCodeRequest) error {
	if strings.TrimSpace(req.SourceCode) == "" {
		return errs.New(errs.KindValidation, "Source code is required")
	}
	if len(req.Stdin) == 0 || len(req.ExpectedOutputs) != len(req.Stdin) {
		return errs.New(errs.KindValidation, "Invalid or Missing test cases")
	}
	if req.ProblemID == uuid.Nil {
		return errs.New(errs.KindValidation, "Problem id is required")
	}
	return nil
}

func (s *service) Execute(ctx context.Context, userID uuid.UUID, req domain.ExecuteCodeRequest) (*domain.Submission, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	language, ok := domain.LanguageName(req.LanguageID)
	if !ok {
		return nil, errs.Newf(errs.KindUnsupportedLanguage, "Unsupported language id %d", req.LanguageID)
	}

	problem, err := s.problems.Get(ctx, req.ProblemID)
	if err != nil {
		return nil, errs.Wrap(errs.KindPersistence, err, "Failed to load problem")
	}
	if problem == nil {
		return nil, errs.New(errs.KindNotFound, "Problem not found")
	}

	submissions := make([]domain.JudgeSubmission, len(req.Stdin))
	for i, input := range req.Stdin {
		submissions[i] = domain.JudgeSubmission{
			SourceCode: req.SourceCode,
			LanguageID: req.LanguageID,
			Stdin:      input,
		}
	}

	results, err := s.run(ctx, submissions)
	if err != nil {
		s.logger.Error("Failed to judge submission", "problemId", req.ProblemID, "userId", userID, "error", err)
		return nil, err
	}

	verdicts, allPassed := Aggregate(results, req.ExpectedOutputs)
	return s.recorder.Record(ctx, userID, req, language, verdicts, allPassed)
}

func (s *service) run(ctx context.Context, submissions []domain.JudgeSubmission) ([]domain.JudgeResult, error) {
	tokens, err := s.judge.SubmitBatch(ctx, submissions)
	if err != nil {
		return nil, err
	}
	return s.judge.PollBatchResults(ctx, tokens)
}

func (s *service) ValidateReferenceSolutions(
	ctx context.Context,
	caller domain.Identity,
	testCases []domain.TestCase,
	solutions domain.LanguageCode,
) error {
	if !caller.IsAdmin() {
		return errs.Tag(errs.KindForbidden, errs.AdminOnly)
	}
	if len(testCases) == 0 {
		return errs.New(errs.KindValidation, "At least one test case is required")
	}
	if len(solutions) == 0 {
		return errs.New(errs.KindValidation, "At least one reference solution is required")
	}

	languages := make([]string, 0, len(solutions))
	for lang := range solutions {
		languages = append(languages, lang)
	}
	sort.Strings(languages)

	for _, lang := range languages {
		languageID, ok := domain.LanguageID(lang)
		if !ok {
			return errs.Newf(errs.KindUnsupportedLanguage, "Language %s is not supported", lang)
		}

		submissions := make([]domain.JudgeSubmission, len(testCases))
		for i := range testCases {
			submissions[i] = domain.JudgeSubmission{
				SourceCode:     solutions[lang],
				LanguageID:     languageID,
				Stdin:          testCases[i].Input,
				ExpectedOutput: &testCases[i].Output,
			}
		}

		results, err := s.run(ctx, submissions)
		if err != nil {
			s.logger.Error("Failed to judge reference solution", "language", lang, "error", err)
			return err
		}

		for i, r := range results {
			if r.Accepted() {
				continue
			}
			status := ""
			if r.Status != nil {
				status = r.Status.Description
			}
			s.logger.Warn("reference solution rejected", "language", lang, "testCase", i+1, "status", status)
			return errs.ReferenceSolutionFailed(lang, i+1, status)
		}
	}

	return nil
}
