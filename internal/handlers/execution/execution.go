package execution

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/codearena.net/internal/core/services/execution"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/handlers"
	"gitlab.com/codearena.net/internal/handlers/response"
)

type Handler struct {
	executionService execution.IExecutionService
}

func NewHandler(executionService execution.IExecutionService) *Handler {
	return &Handler{executionService: executionService}
}

// RegisterRoutes mounts POST / on the /api/v1/execute-code subrouter.
func (h *Handler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	router.Handle("", mw.JWTMiddleware(http.HandlerFunc(h.ExecuteCode))).Methods(http.MethodPost)
	router.Handle("/", mw.JWTMiddleware(http.HandlerFunc(h.ExecuteCode))).Methods(http.MethodPost)
}

// ExecuteCode judges the submitted source and returns the stored submission with its per test case results.
func (h *Handler) ExecuteCode(w http.ResponseWriter, r *http.Request) {
	caller, err := handlers.Caller(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	var req domain.ExecuteCodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, err)
		return
	}

	submission, err := h.executionService.Execute(r.Context(), caller.UserID, req)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, map[string]interface{}{"submissionWithTestCase": submission}, "Code executed")
}
