// Package main provides the HTTP API server for course self-enrollment.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/rueidis"

	"github.com/jnst/self-enrollment/internal/api"
	"github.com/jnst/self-enrollment/internal/config"
	"github.com/jnst/self-enrollment/internal/logger"
	"github.com/jnst/self-enrollment/internal/repository"
	"github.com/jnst/self-enrollment/internal/service"
	"github.com/jnst/self-enrollment/internal/session"
)

const (
	shutdownTimeout  = 10 * time.Second
	signalBufferSize = 1
	exitCode         = 1
)

func main() {
	// 環境変数読み込み
	cfg, err := config.LoadAPIConfig()
	if err != nil {
		slog.Error("failed to load config", logger.Err(err))
		os.Exit(exitCode)
	}

	// ログ設定
	loggerInstance := logger.Setup(cfg.LogLevel)
	slog.SetDefault(loggerInstance)

	// データベース接続
	dbPool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", logger.Err(err))
		os.Exit(exitCode)
	}
	defer dbPool.Close()

	redisClient, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{cfg.RedisAddr},
	})
	if err != nil {
		slog.Error("failed to connect to Redis", logger.Err(err))
		os.Exit(exitCode)
	}
	defer redisClient.Close()

	// 依存関係注入
	courseRepo := repository.NewCourseRepositoryImpl(dbPool)
	cachedCourses := repository.NewCachedCourseRepository(courseRepo, redisClient, cfg.CourseCacheTTL)
	membershipRepo := repository.NewMembershipRepositoryImpl(dbPool)
	outboxRepo := repository.NewOutboxRepositoryImpl(dbPool)

	enrollmentService := service.NewEnrollmentServiceImpl(
		cachedCourses, membershipRepo, service.NewOutboxNotifier(outboxRepo),
	)
	cohortService := service.NewCohortServiceImpl(courseRepo, membershipRepo, cfg.DefaultCourseType)

	router := api.NewRouter(loggerInstance, api.Options{
		Paths: api.Paths{
			AuthPath:              cfg.AuthPath,
			IncorrectPasscodePath: cfg.IncorrectPasscodePath,
		},
		RequestTimeout: cfg.RequestTimeout,
	}, session.NewVerifier(cfg.SessionSecret, cfg.SessionCookie), enrollmentService, cohortService)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ErrorLog:     slog.NewLogLogger(loggerInstance.Handler(), slog.LevelError),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, signalBufferSize)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("shutdown signal received, stopping API server")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("graceful shutdown failed", logger.Err(err))
		}
	}()

	slog.Info("starting API server", slog.String("service", "api"), slog.String("port", cfg.Port))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("failed to start server", logger.Err(err))
		return
	}
}
