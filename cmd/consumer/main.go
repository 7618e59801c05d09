// Package main provides the consumer that runs wiki edits for enrollment events read from Redis Streams.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/rueidis"

	"github.com/jnst/self-enrollment/internal/config"
	"github.com/jnst/self-enrollment/internal/logger"
	"github.com/jnst/self-enrollment/internal/service"
	"github.com/jnst/self-enrollment/internal/stream"
	"github.com/jnst/self-enrollment/internal/wiki"
)

const (
	redisBlockTimeout = 1000 // milliseconds
	reclaimMinIdle    = 30 * time.Second
	reclaimBatchSize  = 10
	errorRetryDelay   = 1 * time.Second
	signalBufferSize  = 1
	exitCode          = 1
	groupName         = "wiki-edits"
)

// MessageHandler processes messages from Redis Streams.
type MessageHandler struct {
	redisClient rueidis.Client
	events      service.EnrollmentEventHandler
}

// NewMessageHandler creates a new message handler instance.
func NewMessageHandler(redisClient rueidis.Client, events service.EnrollmentEventHandler) *MessageHandler {
	return &MessageHandler{
		redisClient: redisClient,
		events:      events,
	}
}

func setupRedisClient(cfg *config.Config) (rueidis.Client, error) {
	redisClient, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{cfg.RedisAddr},
	})
	if err != nil {
		return nil, err
	}

	return redisClient, nil
}

func setupSignalHandling() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, signalBufferSize)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("shutdown signal received, stopping consumer")
		cancel()
	}()

	return ctx, cancel
}

func createConsumerGroup(ctx context.Context, redisClient rueidis.Client, streamKey, groupName string) {
	createGroupCmd := redisClient.B().XgroupCreate().Key(streamKey).Group(groupName).Id("0").Mkstream().Build()
	if err := redisClient.Do(ctx, createGroupCmd).Error(); err != nil {
		slog.Info("consumer group creation result (may already exist)", logger.Err(err))
	}
}

func runConsumerLoop(ctx context.Context, handler *MessageHandler, streamKey, groupName, consumerName string) {
	for {
		select {
		case <-ctx.Done():
			slog.Info("consumer stopped")
			return
		default:
			if err := handler.consumeMessages(ctx, streamKey, groupName, consumerName); err != nil {
				slog.Error("error consuming messages", logger.Err(err))
				time.Sleep(errorRetryDelay)
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

	// ログ設定
	loggerInstance := logger.Setup(cfg.LogLevel)
	slog.SetDefault(loggerInstance)

	redisClient, err := setupRedisClient(cfg)
	if err != nil {
		slog.Error("failed to connect to Redis", logger.Err(err))
		os.Exit(exitCode)
	}
	defer redisClient.Close()

	wikiClient := wiki.NewLogClient(loggerInstance)
	handler := NewMessageHandler(redisClient,
		service.NewEnrollmentEventHandlerImpl(wikiClient, wikiClient, cfg.FeatureWikiEd))

	ctx, cancel := setupSignalHandling()
	defer cancel()

	streamKey := stream.EnrollmentStreamKey
	consumerName := cfg.ConsumerName

	createConsumerGroup(ctx, redisClient, streamKey, groupName)

	slog.Info("starting message consumer",
		slog.String("service", "consumer"),
		slog.String("stream", streamKey),
		slog.String("group", groupName),
		slog.String("consumer", consumerName),
		slog.Bool("wiki_ed", cfg.FeatureWikiEd),
	)

	runConsumerLoop(ctx, handler, streamKey, groupName, consumerName)
}

func (h *MessageHandler) readMessages(
	ctx context.Context,
	streamKey, groupName, consumerName string,
) (map[string][]rueidis.XRangeEntry, error) {
	readCmd := h.redisClient.B().Xreadgroup().Group(groupName, consumerName).
		Count(1).
		Block(redisBlockTimeout).
		Streams().
		Key(streamKey).
		Id(">").
		Build()

	result := h.redisClient.Do(ctx, readCmd)
	if err := result.Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, nil // block timeout
		}

		return nil, err
	}

	return result.AsXRead()
}

func (h *MessageHandler) acknowledgeMessage(ctx context.Context, streamKey, groupName, messageID string) {
	ackCmd := h.redisClient.B().Xack().Key(streamKey).Group(groupName).Id(messageID).Build()
	if err := h.redisClient.Do(ctx, ackCmd).Error(); err != nil {
		slog.Error("failed to ACK message",
			slog.String("message_id", messageID),
			logger.Err(err),
		)
	} else {
		slog.Debug("ACKed message", slog.String("message_id", messageID))
	}
}

// reclaimMessages takes over entries that stayed pending longer than
// reclaimMinIdle, including this consumer's own failed deliveries.
func (h *MessageHandler) reclaimMessages(
	ctx context.Context,
	streamKey, groupName, consumerName string,
) ([]rueidis.XRangeEntry, error) {
	claimCmd := h.redisClient.B().Xautoclaim().Key(streamKey).Group(groupName).Consumer(consumerName).
		MinIdleTime(strconv.FormatInt(reclaimMinIdle.Milliseconds(), 10)).
		Start("0-0").
		Count(reclaimBatchSize).
		Build()

	reply, err := h.redisClient.Do(ctx, claimCmd).ToArray()
	if err != nil {
		return nil, err
	}
	if len(reply) < 2 {
		return nil, nil
	}

	return reply[1].AsXRange()
}

func (h *MessageHandler) consumeMessages(ctx context.Context, streamKey, groupName, consumerName string) error {
	reclaimed, err := h.reclaimMessages(ctx, streamKey, groupName, consumerName)
	if err != nil {
		return err
	}
	for _, message := range reclaimed {
		if h.handleMessage(ctx, message) {
			h.acknowledgeMessage(ctx, streamKey, groupName, message.ID)
		}
	}

	streams, err := h.readMessages(ctx, streamKey, groupName, consumerName)
	if err != nil {
		return err
	}

	for _, messages := range streams {
		for _, message := range messages {
			if h.handleMessage(ctx, message) {
				h.acknowledgeMessage(ctx, streamKey, groupName, message.ID)
			}
		}
	}

	return nil
}

// handleMessage runs the event carried by message and reports whether it
// should be acknowledged. Handler failures stay pending until reclaimed;
// entries that can never be processed are acknowledged and dropped.
func (h *MessageHandler) handleMessage(ctx context.Context, message rueidis.XRangeEntry) bool {
	slog.Debug("received message",
		slog.String("message_id", message.ID),
		slog.Any("fields", message.FieldValues),
	)

	if message.FieldValues == nil {
		slog.Warn("dropping trimmed message", slog.String("message_id", message.ID))
		return true
	}

	event, err := stream.DecodeEnrollmentEvent(message.FieldValues)
	if err != nil {
		slog.Error("dropping undecodable message",
			slog.String("message_id", message.ID),
			logger.Err(err),
		)

		return true
	}
	if event == nil {
		slog.Warn("unknown event type", slog.String("event_type", message.FieldValues["event_type"]))
		return true
	}

	if err := h.events.HandleEnrollmentEvent(ctx, event); err != nil {
		slog.Error("failed to process message",
			slog.String("message_id", message.ID),
			logger.Err(err),
		)

		return false
	}

	return true
}
