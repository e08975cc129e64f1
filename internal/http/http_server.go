package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/codearena.net/internal/config"
	"gitlab.com/codearena.net/internal/core/ports/primary"
	auth2 "gitlab.com/codearena.net/internal/core/services/auth"
	"gitlab.com/codearena.net/internal/core/services/execution"
	"gitlab.com/codearena.net/internal/core/services/playlist"
	"gitlab.com/codearena.net/internal/core/services/problem"
	"gitlab.com/codearena.net/internal/core/services/submission"
	"gitlab.com/codearena.net/internal/handlers"
	"gitlab.com/codearena.net/internal/handlers/auth"
	execution2 "gitlab.com/codearena.net/internal/handlers/execution"
	"gitlab.com/codearena.net/internal/handlers/playlists"
	"gitlab.com/codearena.net/internal/handlers/problems"
	"gitlab.com/codearena.net/internal/handlers/response"
	"gitlab.com/codearena.net/internal/handlers/submissions"
)

type ServiceProvider struct {
	sessions   auth2.ISessionService
	accounts   auth2.IAccountService
	localAuth  auth2.IAuthService
	ggAuth     auth2.IGoogleAuthService
	problems   problem.IProblemService
	execution  execution.IExecutionService
	submission submission.ISubmissionService
	playlists  playlist.IPlaylistService
}

// NewServiceProvider collects the services behind the routes. ggAuth may be nil.
func NewServiceProvider(
	sessions auth2.ISessionService,
	accounts auth2.IAccountService,
	localAuth auth2.IAuthService,
	ggAuth auth2.IGoogleAuthService,
	problems problem.IProblemService,
	execution execution.IExecutionService,
	submission submission.ISubmissionService,
	playlists playlist.IPlaylistService,
) *ServiceProvider {
	return &ServiceProvider{
		sessions:   sessions,
		accounts:   accounts,
		localAuth:  localAuth,
		ggAuth:     ggAuth,
		problems:   problems,
		execution:  execution,
		submission: submission,
		playlists:  playlists,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	cfg             *config.ServerConfig
	jwtCfg          *config.JwtConfig
	ServiceProvider ServiceProvider
	logger          primary.Logger
}

func NewServer(cfg *config.ServerConfig, jwtCfg *config.JwtConfig, serviceProvider ServiceProvider, logger primary.Logger) *Server {
	return &Server{
		cfg:             cfg,
		jwtCfg:          jwtCfg,
		ServiceProvider: serviceProvider,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	r := mux.NewRouter()
	r.Use(handlers.RequestLogger(s.logger))
	mw := handlers.New(s.ServiceProvider.sessions)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.WriteSuccess(w, map[string]string{"service": s.cfg.ServiceName}, "OK")
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	auth.NewHandler(&auth.ServiceDependencies{
		Sessions:         s.ServiceProvider.sessions,
		Accounts:         s.ServiceProvider.accounts,
		LocalAuthService: s.ServiceProvider.localAuth,
		GGAuthService:    s.ServiceProvider.ggAuth,
	}, s.jwtCfg, s.logger).RegisterRoutes(api.PathPrefix("/auth").Subrouter(), mw)
	problems.NewHandler(s.ServiceProvider.problems).
		RegisterRoutes(api.PathPrefix("/problems").Subrouter(), mw)
	execution2.NewHandler(s.ServiceProvider.execution).
		RegisterRoutes(api.PathPrefix("/execute-code").Subrouter(), mw)
	submissions.NewHandler(s.ServiceProvider.submission).
		RegisterRoutes(api.PathPrefix("/submission").Subrouter(), mw)
	playlists.NewHandler(s.ServiceProvider.playlists).
		RegisterRoutes(api.PathPrefix("/playlist").Subrouter(), mw)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.WriteStatus(w, http.StatusNotFound, nil, "Route not found")
	})
	s.router = r
	return nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(ctx context.Context) {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr, "service", s.cfg.ServiceName)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
