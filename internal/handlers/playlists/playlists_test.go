package playlists

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

type fakePlaylists struct {
	playlists map[uuid.UUID]*domain.Playlist
	added     []uuid.UUID
	removed   []uuid.UUID
}

func (f *fakePlaylists) owned(userID, id uuid.UUID) (*domain.Playlist, error) {
	p, ok := f.playlists[id]
	if !ok || p.UserID != userID {
		return nil, errs.New(errs.KindNotFound, "Playlist not found")
	}
	return p, nil
}

func (f *fakePlaylists) Create(_ context.Context, userID uuid.UUID, req domain.CreatePlaylistRequest) (*domain.Playlist, error) {
	for _, p := range f.playlists {
		if p.UserID == userID && p.Name == req.Name {
			return nil, errs.New(errs.KindConflict, "Playlist already exists")
		}
	}
	p := &domain.Playlist{ID: uuid.New(), UserID: userID, Name: req.Name, Description: req.Description}
	f.playlists[p.ID] = p
	return p, nil
}

func (f *fakePlaylists) List(_ context.Context, userID uuid.UUID) ([]*domain.Playlist, error) {
	var out []*domain.Playlist
	for _, p := range f.playlists {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlaylists) Get(_ context.Context, userID, id uuid.UUID) (*domain.Playlist, error) {
	return f.owned(userID, id)
}

func (f *fakePlaylists) AddProblems(_ context.Context, userID, id uuid.UUID, problemIDs []uuid.UUID) (int, error) {
	if _, err := f.owned(userID, id); err != nil {
		return 0, err
	}
	f.added = append(f.added, problemIDs...)
	return len(problemIDs), nil
}

func (f *fakePlaylists) RemoveProblems(_ context.Context, userID, id uuid.UUID, problemIDs []uuid.UUID) (int, error) {
	if _, err := f.owned(userID, id); err != nil {
		return 0, err
	}
	f.removed = append(f.removed, problemIDs...)
	return len(problemIDs), nil
}

func (f *fakePlaylists) Delete(_ context.Context, userID, id uuid.UUID) error {
	if _, err := f.owned(userID, id); err != nil {
		return err
	}
	delete(f.playlists, id)
	return nil
}

func setup() (*mux.Router, *fakePlaylists) {
	svc := &fakePlaylists{playlists: map[uuid.UUID]*domain.Playlist{}}
	router := mux.NewRouter()
	NewHandler(svc).RegisterRoutes(
		router.PathPrefix("/api/v1/playlist").Subrouter(),
		handlers.New(handlertest.Sessions{"alice": alice, "bob": bob}),
	)
	return router, svc
}

func createPlaylist(t *testing.T, router http.Handler, token, name string) domain.Playlist {
	rec, env := handlertest.Serve(router, handlertest.Request(http.MethodPost, "/api/v1/playlist/create-playlist", token,
		`{"name":"`+name+`","description":"practice"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Playlist Created Successfully", env.Message)
	var data struct {
		Playlist domain.Playlist `json:"playlist"`
	}
	require.NoError(t, handlertest.DataInto(env, &data))
	return data.Playlist
}

func TestCreateAndList(t *testing.T) {
	router, _ := setup()
	created := createPlaylist(t, router, "alice", "DP")
	assert.Equal(t, alice.UserID, created.UserID)

	rec, env := handlertest.Serve(router, handlertest.Request(http.MethodPost, "/api/v1/playlist/create-playlist", "alice", `{"name":"DP"}`))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Success)

	for _, path := range []string{"/api/v1/playlist/", "/api/v1/playlist"} {
		rec, env = handlertest.Serve(router, handlertest.Request(http.MethodGet, path, "alice", ""))
		require.Equal(t, http.StatusOK, rec.Code, path)
		var data struct {
			Playlists []domain.Playlist `json:"playlists"`
		}
		require.NoError(t, handlertest.DataInto(env, &data))
		require.Len(t, data.Playlists, 1)
		assert.Equal(t, "DP", data.Playlists[0].Name)
	}
}

func TestOtherUsersPlaylistIsHidden(t *testing.T) {
	router, svc := setup()
	created := createPlaylist(t, router, "alice", "Graphs")
	base := "/api/v1/playlist/" + created.ID.String()

	rec, _ := handlertest.Serve(router, handlertest.Request(http.MethodGet, base, "bob", ""))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = handlertest.Serve(router, handlertest.Request(http.MethodPost, base+"/add-problem", "bob", `{"problemIds":["`+uuid.NewString()+`"]}`))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = handlertest.Serve(router, handlertest.Request(http.MethodDelete, base, "bob", ""))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, svc.added)

	rec, env := handlertest.Serve(router, handlertest.Request(http.MethodGet, base, "alice", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Playlist Found", env.Message)
}

func TestAddRemoveAndDelete(t *testing.T) {
	router, svc := setup()
	created := createPlaylist(t, router, "alice", "Arrays")
	base := "/api/v1/playlist/" + created.ID.String()
	p1, p2 := uuid.New(), uuid.New()
	body := `{"problemIds":["` + p1.String() + `","` + p2.String() + `"]}`

	rec, env := handlertest.Serve(router, handlertest.Request(http.MethodPost, base+"/add-problem", "alice", body))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Problem Added Successfully", env.Message)
	assert.Equal(t, map[string]interface{}{
		"problemsInPlaylist": map[string]interface{}{"count": float64(2)},
	}, env.Data)
	assert.Equal(t, []uuid.UUID{p1, p2}, svc.added)

	rec, env = handlertest.Serve(router, handlertest.Request(http.MethodDelete, base+"/remove-problem", "alice", `{"problemIds":["`+p1.String()+`"]}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Problem removed from Playlist Successfully", env.Message)
	assert.Equal(t, []uuid.UUID{p1}, svc.removed)

	rec, _ = handlertest.Serve(router, handlertest.Request(http.MethodPost, base+"/add-problem", "alice", `{"problemIds":["nope"]}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env = handlertest.Serve(router, handlertest.Request(http.MethodDelete, base, "alice", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Playlist Deleted Successfully", env.Message)
	assert.Empty(t, svc.playlists)
}
