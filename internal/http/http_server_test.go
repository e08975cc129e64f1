package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"gitlab.com/codearena.net/internal/adapter/logging"
	"gitlab.com/codearena.net/internal/config"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/handlers/handlertest"
)

func newTestServer(t *testing.T) *Server {
	sessions := handlertest.Sessions{"alice": {UserID: uuid.New(), Role: domain.RoleUser}}
	provider := NewServiceProvider(sessions, nil, nil, nil, nil, nil, nil, nil)
	srv := NewServer(
		&config.ServerConfig{Port: 0, ServiceName: "codearena"},
		&config.JwtConfig{AccessExpiry: time.Hour, RefreshExpiry: time.Hour},
		*provider,
		logging.NewZapLoggerFrom(zaptest.NewLogger(t)),
	)
	require.NoError(t, srv.Init())
	return srv
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	rec, env := handlertest.Serve(srv.Handler(), handlertest.Request(http.MethodGet, "/healthz", "", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, map[string]interface{}{"service": "codearena"}, env.Data)
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t)
	rec, env := handlertest.Serve(srv.Handler(), handlertest.Request(http.MethodGet, "/api/v2/nothing", "", ""))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", env.Message)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	srv := newTestServer(t)
	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/problems/get-all-problems"},
		{http.MethodPost, "/api/v1/problems/create-problem"},
		{http.MethodPost, "/api/v1/execute-code"},
		{http.MethodGet, "/api/v1/submission/get-all-submissions"},
		{http.MethodGet, "/api/v1/playlist/"},
		{http.MethodGet, "/api/v1/auth/profile"},
		{http.MethodPost, "/api/v1/auth/logout"},
	}
	for _, rt := range routes {
		rec, env := handlertest.Serve(srv.Handler(), handlertest.Request(rt.method, rt.path, "", ""))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, rt.path)
		assert.False(t, env.Success, rt.path)
	}
}

func TestAdminRouteForbiddenForUser(t *testing.T) {
	srv := newTestServer(t)
	rec, _ := handlertest.Serve(srv.Handler(), handlertest.Request(http.MethodPost, "/api/v1/problems/create-problem", "alice", `{}`))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStopBeforeStart(t *testing.T) {
	srv := newTestServer(t)
	assert.NoError(t, srv.Stop(context.Background()))
}
