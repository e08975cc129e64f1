package submissions

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/codearena.net/internal/core/services/submission"
	"gitlab.com/codearena.net/internal/handlers"
	"gitlab.com/codearena.net/internal/handlers/response"
)

const fetched = "Submission Fetched Successfully"

type Handler struct {
	submissionService submission.ISubmissionService
}

func NewHandler(submissionService submission.ISubmissionService) *Handler {
	return &Handler{submissionService: submissionService}
}

func (h *Handler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	router.Use(mw.JWTMiddleware)
	router.HandleFunc("/get-all-submissions", h.ListMine).Methods(http.MethodGet)
	router.HandleFunc("/get-submissions/{problemId}", h.ListForProblem).Methods(http.MethodGet)
	router.HandleFunc("/get-submissions-count/{problemId}", h.CountForProblem).Methods(http.MethodGet)
	router.HandleFunc("/{submissionId}", h.Get).Methods(http.MethodGet)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, err := handlers.Caller(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	subs, err := h.submissionService.ListMine(r.Context(), caller.UserID)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, map[string]interface{}{"submission": subs}, fetched)
}

func (h *Handler) ListForProblem(w http.ResponseWriter, r *http.Request) {
	caller, err := handlers.Caller(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	problemID, err := handlers.PathUUID(r, "problemId")
	if err != nil {
		response.WriteError(w, err)
		return
	}
	subs, err := h.submissionService.ListMineForProblem(r.Context(), caller.UserID, problemID)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, map[string]interface{}{"submissions": subs}, fetched)
}

// CountForProblem counts the submissions of every user for the problem.
func (h *Handler) CountForProblem(w http.ResponseWriter, r *http.Request) {
	problemID, err := handlers.PathUUID(r, "problemId")
	if err != nil {
		response.WriteError(w, err)
		return
	}
	count, err := h.submissionService.CountForProblem(r.Context(), problemID)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, map[string]int{"count": count}, fetched)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	caller, err := handlers.Caller(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	id, err := handlers.PathUUID(r, "submissionId")
	if err != nil {
		response.WriteError(w, err)
		return
	}
	sub, err := h.submissionService.Get(r.Context(), caller, id)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, map[string]interface{}{"submission": sub}, fetched)
}
