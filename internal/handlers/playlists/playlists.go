package playlists

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/codearena.net/internal/core/services/playlist"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/handlers"
	"gitlab.com/codearena.net/internal/handlers/response"
)

type Handler struct {
	playlistService playlist.IPlaylistService
}

func NewHandler(playlistService playlist.IPlaylistService) *Handler {
	return &Handler{playlistService: playlistService}
}

// RegisterRoutes mounts the playlist routes on the /api/v1/playlist subrouter.
func (h *Handler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	router.Use(mw.JWTMiddleware)
	router.HandleFunc("/", h.List).Methods(http.MethodGet)
	router.HandleFunc("", h.List).Methods(http.MethodGet)
	router.HandleFunc("/create-playlist", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/{playlistId}", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/{playlistId}", h.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/{playlistId}/add-problem", h.AddProblems).Methods(http.MethodPost)
	router.HandleFunc("/{playlistId}/remove-problem", h.RemoveProblems).Methods(http.MethodDelete)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := handlers.Caller(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	var req domain.CreatePlaylistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, err)
		return
	}
	p, err := h.playlistService.Create(r.Context(), caller.UserID, req)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, map[string]interface{}{"playlist": p}, "Playlist Created Successfully")
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	caller, err := handlers.Caller(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	list, err := h.playlistService.List(r.Context(), caller.UserID)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, map[string]interface{}{"playlists": list}, "Playlist Fetched Successfully")
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	caller, err := handlers.Caller(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	id, err := handlers.PathUUID(r, "playlistId")
	if err != nil {
		response.WriteError(w, err)
		return
	}
	p, err := h.playlistService.Get(r.Context(), caller.UserID, id)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, map[string]interface{}{"playlist": p}, "Playlist Found")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := handlers.Caller(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	id, err := handlers.PathUUID(r, "playlistId")
	if err != nil {
		response.WriteError(w, err)
		return
	}
	if err := h.playlistService.Delete(r.Context(), caller.UserID, id); err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, nil, "Playlist Deleted Successfully")
}

// problemsRequest decodes the caller, the playlist id and the problem id list shared by add and remove.
func (h *Handler) problemsRequest(r *http.Request) (domain.Identity, domain.PlaylistProblemsRequest, error) {
	var req domain.PlaylistProblemsRequest
	caller, err := handlers.Caller(r)
	if err != nil {
		return caller, req, err
	}
	if err := handlers.DecodeJSON(r, &req); err != nil {
		return caller, req, err
	}
	return caller, req, nil
}

func (h *Handler) AddProblems(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathUUID(r, "playlistId")
	if err != nil {
		response.WriteError(w, err)
		return
	}
	caller, req, err := h.problemsRequest(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	added, err := h.playlistService.AddProblems(r.Context(), caller.UserID, id, req.ProblemIDs)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, map[string]interface{}{
		"problemsInPlaylist": map[string]int{"count": added},
	}, "Problem Added Successfully")
}

func (h *Handler) RemoveProblems(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathUUID(r, "playlistId")
	if err != nil {
		response.WriteError(w, err)
		return
	}
	caller, req, err := h.problemsRequest(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	removed, err := h.playlistService.RemoveProblems(r.Context(), caller.UserID, id, req.ProblemIDs)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, map[string]interface{}{
		"deletedProblem": map[string]int{"count": removed},
	}, "Problem removed from Playlist Successfully")
}
