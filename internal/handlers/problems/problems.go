package problems

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/codearena.net/internal/core/services/problem"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/handlers"
	"gitlab.com/codearena.net/internal/handlers/response"
)

type Handler struct {
	problemService problem.IProblemService
}

func NewHandler(problemService problem.IProblemService) *Handler {
	return &Handler{problemService: problemService}
}

// RegisterRoutes mounts the problem routes on the /api/v1/problems subrouter. Every route requires a session.
func (h *Handler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	router.Use(mw.JWTMiddleware)
	router.HandleFunc("/get-all-problems", h.List).Methods(http.MethodGet)
	router.HandleFunc("/get-problem/{id}", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/get-solved-problems", h.ListSolved).Methods(http.MethodGet)

	router.Handle("/create-problem", mw.AdminOnly(http.HandlerFunc(h.Create))).Methods(http.MethodPost)
	router.Handle("/update-problem/{id}", mw.AdminOnly(http.HandlerFunc(h.Update))).Methods(http.MethodPut)
	router.Handle("/delete-problem/{id}", mw.AdminOnly(http.HandlerFunc(h.Delete))).Methods(http.MethodDelete)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := handlers.Caller(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	var input domain.ProblemInput
	if err := handlers.DecodeJSON(r, &input); err != nil {
		response.WriteError(w, err)
		return
	}

	created, err := h.problemService.Create(r.Context(), caller, input)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteStatus(w, http.StatusCreated, map[string]interface{}{"newProblem": created}, "Problem Created Successfully")
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := handlers.Caller(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	id, err := handlers.PathUUID(r, "id")
	if err != nil {
		response.WriteError(w, err)
		return
	}
	var input domain.ProblemInput
	if err := handlers.DecodeJSON(r, &input); err != nil {
		response.WriteError(w, err)
		return
	}

	updated, err := h.problemService.Update(r.Context(), caller, id, input)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, map[string]interface{}{"updateProblem": updated}, "Problem Updated Successfully")
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathUUID(r, "id")
	if err != nil {
		response.WriteError(w, err)
		return
	}
	p, err := h.problemService.Get(r.Context(), id)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, map[string]interface{}{"problem": p}, "Problem Fetched Successfully")
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.problemService.List(r.Context())
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, map[string]interface{}{"problems": list}, "Problem Fetched Successfully")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := handlers.Caller(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	id, err := handlers.PathUUID(r, "id")
	if err != nil {
		response.WriteError(w, err)
		return
	}
	if err := h.problemService.Delete(r.Context(), caller, id); err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, nil, "Problem Deleted Successfully")
}

func (h *Handler) ListSolved(w http.ResponseWriter, r *http.Request) {
	caller, err := handlers.Caller(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	list, err := h.problemService.ListSolved(r.Context(), caller.UserID)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, map[string]interface{}{"problems": list}, "Problem Fetched Successfully")
}
