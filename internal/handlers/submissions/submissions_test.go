package submissions

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

var (
	alice = domain.Identity{UserID: uuid.New(), Username: "alice", Role: domain.RoleUser}
	bob   = domain.Identity{UserID: uuid.New(), Username: "bob", Role: domain.RoleUser}
)

type fakeSubmissions struct {
	subs []*domain.Submission
}

func (f *fakeSubmissions) ListMine(_ context.Context, userID uuid.UUID) ([]*domain.Submission, error) {
	var out []*domain.Submission
	for _, s := range f.subs {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubmissions) ListMineForProblem(ctx context.Context, userID, problemID uuid.UUID) ([]*domain.Submission, error) {
	mine, _ := f.ListMine(ctx, userID)
	var out []*domain.Submission
	for _, s := range mine {
		if s.ProblemID == problemID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubmissions) CountForProblem(_ context.Context, problemID uuid.UUID) (int, error) {
	n := 0
	for _, s := range f.subs {
		if s.ProblemID == problemID {
			n++
		}
	}
	return n, nil
}

func (f *fakeSubmissions) Get(_ context.Context, caller domain.Identity, id uuid.UUID) (*domain.Submission, error) {
	for _, s := range f.subs {
		if s.ID == id && s.UserID == caller.UserID {
			return s, nil
		}
	}
	return nil, errs.New(errs.KindNotFound, "Submission not found")
}

func setup() (*mux.Router, *fakeSubmissions, uuid.UUID) {
	problemID := uuid.New()
	svc := &fakeSubmissions{subs: []*domain.Submission{
		{ID: uuid.New(), UserID: alice.UserID, ProblemID: problemID, Status: domain.SubmissionAccepted},
		{ID: uuid.New(), UserID: alice.UserID, ProblemID: uuid.New(), Status: domain.SubmissionWrongAnswer},
		{ID: uuid.New(), UserID: bob.UserID, ProblemID: problemID, Status: domain.SubmissionWrongAnswer},
	}}
	router := mux.NewRouter()
	NewHandler(svc).RegisterRoutes(
		router.PathPrefix("/api/v1/submission").Subrouter(),
		handlers.New(handlertest.Sessions{"alice": alice, "bob": bob}),
	)
	return router, svc, problemID
}

func TestListMine(t *testing.T) {
	router, _, _ := setup()
	rec, env := handlertest.Serve(router, handlertest.Request(http.MethodGet, "/api/v1/submission/get-all-submissions", "alice", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Submission Fetched Successfully", env.Message)

	var data struct {
		Submission []domain.Submission `json:"submission"`
	}
	require.NoError(t, handlertest.DataInto(env, &data))
	require.Len(t, data.Submission, 2)
	for _, s := range data.Submission {
		assert.Equal(t, alice.UserID, s.UserID)
	}
}

func TestListForProblem(t *testing.T) {
	router, _, problemID := setup()
	rec, env := handlertest.Serve(router, handlertest.Request(http.MethodGet, "/api/v1/submission/get-submissions/"+problemID.String(), "bob", ""))
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Submissions []domain.Submission `json:"submissions"`
	}
	require.NoError(t, handlertest.DataInto(env, &data))
	require.Len(t, data.Submissions, 1)
	assert.Equal(t, bob.UserID, data.Submissions[0].UserID)
}

func TestCountCoversAllUsers(t *testing.T) {
	router, _, problemID := setup()
	rec, env := handlertest.Serve(router, handlertest.Request(http.MethodGet, "/api/v1/submission/get-submissions-count/"+problemID.String(), "alice", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"count": float64(2)}, env.Data)

	rec, _ = handlertest.Serve(router, handlertest.Request(http.MethodGet, "/api/v1/submission/get-submissions-count/abc", "alice", ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetByID(t *testing.T) {
	router, svc, _ := setup()
	own := svc.subs[0]

	rec, env := handlertest.Serve(router, handlertest.Request(http.MethodGet, "/api/v1/submission/"+own.ID.String(), "alice", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	var data struct {
		Submission domain.Submission `json:"submission"`
	}
	require.NoError(t, handlertest.DataInto(env, &data))
	assert.Equal(t, own.ID, data.Submission.ID)

	rec, _ = handlertest.Serve(router, handlertest.Request(http.MethodGet, "/api/v1/submission/"+own.ID.String(), "bob", ""))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequiresSession(t *testing.T) {
	router, _, _ := setup()
	rec, _ := handlertest.Serve(router, handlertest.Request(http.MethodGet, "/api/v1/submission/get-all-submissions", "", ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
