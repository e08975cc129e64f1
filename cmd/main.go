package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"gitlab.com/codearena.net/internal/adapter/crypto"
	"gitlab.com/codearena.net/internal/adapter/judge0"
	"gitlab.com/codearena.net/internal/adapter/logging"
	"gitlab.com/codearena.net/internal/adapter/mailer"
	"gitlab.com/codearena.net/internal/adapter/postgres"
	"gitlab.com/codearena.net/internal/adapter/postgres/playlistrepository"
	"gitlab.com/codearena.net/internal/adapter/postgres/problemrepository"
	"gitlab.com/codearena.net/internal/adapter/postgres/submissionrepository"
	"gitlab.com/codearena.net/internal/adapter/postgres/userrepository"
	"gitlab.com/codearena.net/internal/adapter/redis/sessionport"
	"gitlab.com/codearena.net/internal/config"
	auth2 "gitlab.com/codearena.net/internal/core/services/auth"
	"gitlab.com/codearena.net/internal/core/services/execution"
	"gitlab.com/codearena.net/internal/core/services/playlist"
	"gitlab.com/codearena.net/internal/core/services/problem"
	"gitlab.com/codearena.net/internal/core/services/submission"
	logger2 "gitlab.com/codearena.net/internal/global/logger"
	http2 "gitlab.com/codearena.net/internal/http"
)

func main() {
	InitReader()
	// rebuilt so LOG_LEVEL from the env file applies
	logger2.Logger = logging.NewZapLogger()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger2.Info("Starting codearena service")

	logger := logger2.Logger
	defer func() { _ = logger.Sync() }()

	sysCfg := config.NewSystemConfig()

	db, err := postgres.Open(sysCfg.PostgresConfig)
	if err != nil {
		logger.Error("Failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}

	// SECONDARY PORTS
	schema := sysCfg.PostgresConfig.Schema
	userPort := userrepository.New(db, logger, schema)
	problemRepo := problemrepository.NewProblemRepository(db, logger, schema)
	solvedRepo := problemrepository.NewSolvedRepository(db, logger, schema)
	submissionRepo := submissionrepository.NewSubmissionRepository(db, logger, schema)
	playlistRepo := playlistrepository.NewPlaylistRepository(db, logger, schema)
	sessionStore := sessionport.NewSessionRepository(redisClient, logger)
	judgeClient := judge0.New(sysCfg.JudgeConfig, logger)
	mail := mailer.NewLogMailer(sysCfg.MailConfig, logger)

	//primary ports
	jwtProvider := crypto.NewJWTService(sysCfg.JwtConfig)
	refreshTTL := sysCfg.JwtConfig.RefreshExpiry

	//services
	sessionSvc := auth2.NewSessionService(userPort, jwtProvider, sessionStore, refreshTTL, mail, sysCfg.MailConfig, logger)
	localAuth := auth2.NewLocalAuthService(userPort, jwtProvider, sessionStore, refreshTTL)
	var ggAuth auth2.IGoogleAuthService
	if sysCfg.GGAuthConfig.Enabled() {
		ggAuth = auth2.NewGoogleAuthService(userPort, jwtProvider, sessionStore, refreshTTL, sysCfg.GGAuthConfig)
	} else {
		logger.Warn("Google login disabled, GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET missing")
	}
	recorder := execution.NewRecorder(submissionRepo, solvedRepo, logger)
	executionSvc := execution.NewExecutionService(judgeClient, problemRepo, recorder, logger)
	problemSvc := problem.NewProblemService(problemRepo, executionSvc, logger)
	submissionSvc := submission.NewSubmissionService(submissionRepo, logger)
	playlistSvc := playlist.NewPlaylistService(playlistRepo, logger)

	serviceProvider := http2.NewServiceProvider(
		sessionSvc, sessionSvc, localAuth, ggAuth, problemSvc, executionSvc, submissionSvc, playlistSvc,
	)

	//server
	httpServer := http2.NewServer(sysCfg.ServerConfig, sysCfg.JwtConfig, *serviceProvider, logger)
	if err := httpServer.Init(); err != nil {
		panic(err)
	}
	ctxBg := context.Background()
	httpServer.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, 30*time.Second)
	defer cancel()
	if err := httpServer.Stop(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("successfully shutdown server")
}

// InitReader loads <env>.env, where env is the first command line argument.
func InitReader() {
	environment := ""
	if len(os.Args) < 2 {
		log.Fatalf("Env not supplied in argument")
	} else {
		environment = os.Args[1]
	}

	err := godotenv.Load(environment + ".env")
	if err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
