// Package main provides the outbox publisher that polls unpublished enrollment events and publishes them to Redis Streams.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/rueidis"

	"github.com/jnst/self-enrollment/internal/config"
	"github.com/jnst/self-enrollment/internal/logger"
	"github.com/jnst/self-enrollment/internal/repository"
	"github.com/jnst/self-enrollment/internal/service"
	"github.com/jnst/self-enrollment/internal/stream"
)

const (
	signalBufferSize = 1
	exitCode         = 1
)

func setupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	dbPool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	return dbPool, nil
}

func setupPublisherRedisClient(cfg *config.Config) (rueidis.Client, error) {
	redisClient, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{cfg.RedisAddr},
	})
	if err != nil {
		return nil, err
	}

	return redisClient, nil
}

func setupPublisherSignalHandling() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, signalBufferSize)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("shutdown signal received, stopping publisher")
		cancel()
	}()

	return ctx, cancel
}

func runPublisherLoop(
	ctx context.Context,
	outboxService service.OutboxService,
	pollInterval time.Duration,
	batchSize int,
) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("publisher stopped")
			return
		case <-ticker.C:
			if err := outboxService.ProcessUnpublishedEvents(ctx, batchSize); err != nil {
				slog.Error("error processing outbox events", logger.Err(err))
			}
		}
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", logger.Err(err))
		os.Exit(exitCode)
	}

	slog.SetDefault(logger.Setup(cfg.LogLevel))

	dbPool, err := setupDatabase(cfg)
	if err != nil {
		slog.Error("failed to connect to database", logger.Err(err))
		os.Exit(exitCode)
	}
	defer dbPool.Close()

	redisClient, err := setupPublisherRedisClient(cfg)
	if err != nil {
		slog.Error("failed to connect to Redis", logger.Err(err))
		return
	}
	defer redisClient.Close()

	outboxService := service.NewOutboxServiceImpl(
		repository.NewOutboxRepositoryImpl(dbPool),
		repository.NewTransactionManagerImpl(dbPool),
		stream.NewRedisPublisher(redisClient, stream.EnrollmentStreamKey),
	)

	ctx, cancel := setupPublisherSignalHandling()
	defer cancel()

	slog.Info("starting outbox publisher",
		slog.String("service", "publisher"),
		slog.Duration("poll_interval", cfg.PublisherPollInterval),
		slog.Int("batch_size", cfg.PublisherBatchSize),
	)

	runPublisherLoop(ctx, outboxService, cfg.PublisherPollInterval, cfg.PublisherBatchSize)
}
