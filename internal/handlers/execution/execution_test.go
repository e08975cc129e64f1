package execution

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/handlers"
	"gitlab.com/codearena.net/internal/handlers/handlertest"
	"gitlab.com/codearena.net/internal/static/errs"
)

var alice = domain.Identity{UserID: uuid.New(), Username: "alice", Role: domain.RoleUser}

type fakeExecution struct {
	calls []domain.ExecuteCodeRequest
	err   error
}

func (f *fakeExecution) Execute(_ context.Context, userID uuid.UUID, req domain.ExecuteCodeRequest) (*domain.Submission, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Submission{
		ID:        uuid.New(),
		UserID:    userID,
		ProblemID: req.ProblemID,
		Status:    domain.SubmissionAccepted,
		TestCases: []domain.TestCaseResult{{TestCase: 1, Passed: true}},
	}, nil
}

func (f *fakeExecution) ValidateReferenceSolutions(context.Context, domain.Identity, []domain.TestCase, domain.LanguageCode) error {
	return nil
}

func setup(svc *fakeExecution) *mux.Router {
	router := mux.NewRouter()
	NewHandler(svc).RegisterRoutes(
		router.PathPrefix("/api/v1/execute-code").Subrouter(),
		handlers.New(handlertest.Sessions{"alice": alice}),
	)
	return router
}

func TestExecuteCode(t *testing.T) {
	svc := &fakeExecution{}
	router := setup(svc)
	problemID := uuid.New()
	body := `{"source_code":"print(1)","language_id":71,"stdin":["1"],"expected_outputs":["1"],"problemId":"` + problemID.String() + `"}`

	rec, env := handlertest.Serve(router, handlertest.Request(http.MethodPost, "/api/v1/execute-code", "alice", body))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Code executed", env.Message)
	assert.True(t, env.Success)

	var data struct {
		Submission domain.Submission `json:"submissionWithTestCase"`
	}
	require.NoError(t, handlertest.DataInto(env, &data))
	assert.Equal(t, alice.UserID, data.Submission.UserID)
	assert.Equal(t, problemID, data.Submission.ProblemID)
	assert.Equal(t, domain.SubmissionAccepted, data.Submission.Status)
	require.Len(t, data.Submission.TestCases, 1)

	require.Len(t, svc.calls, 1)
	assert.Equal(t, 71, svc.calls[0].LanguageID)
	assert.Equal(t, []string{"1"}, svc.calls[0].Stdin)
}

func TestExecuteCodeTrailingSlash(t *testing.T) {
	router := setup(&fakeExecution{})
	rec, _ := handlertest.Serve(router, handlertest.Request(http.MethodPost, "/api/v1/execute-code/", "alice", `{}`))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExecuteCodeErrors(t *testing.T) {
	svc := &fakeExecution{err: errs.New(errs.KindValidation, "Invalid or Missing testcases")}
	router := setup(svc)

	rec, _ := handlertest.Serve(router, handlertest.Request(http.MethodPost, "/api/v1/execute-code", "", `{}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, svc.calls)

	rec, env := handlertest.Serve(router, handlertest.Request(http.MethodPost, "/api/v1/execute-code", "alice", `{}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or Missing testcases", env.Message)
	assert.False(t, env.Success)

	svc.err = errs.New(errs.KindNotFound, "Problem not found")
	rec, _ = handlertest.Serve(router, handlertest.Request(http.MethodPost, "/api/v1/execute-code", "alice", `{}`))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	svc.err = errs.New(errs.KindJudgeTimeout, "Timed out waiting for judge results")
	rec, _ = handlertest.Serve(router, handlertest.Request(http.MethodPost, "/api/v1/execute-code", "alice", `{}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
