package service

import (
	"context"
	"log/slog"

	"github.com/jnst/self-enrollment/internal/logger"
	"github.com/jnst/self-enrollment/internal/repository"
	"github.com/jnst/self-enrollment/internal/stream"
)

// OutboxServiceImpl implements OutboxService for processing outbox events.
type OutboxServiceImpl struct {
	outboxRepo     repository.OutboxRepository
	transactionMgr repository.TransactionManager
	publisher      stream.Publisher
}

// NewOutboxServiceImpl creates a new OutboxService implementation.
func NewOutboxServiceImpl(
	outboxRepo repository.OutboxRepository,
	transactionMgr repository.TransactionManager,
	publisher stream.Publisher,
) OutboxService {
	return &OutboxServiceImpl{
		outboxRepo:     outboxRepo,
		transactionMgr: transactionMgr,
		publisher:      publisher,
	}
}

// ProcessUnpublishedEvents publishes a batch of unpublished outbox events.
// Events that fail to publish stay unpublished and are retried next poll.
func (s *OutboxServiceImpl) ProcessUnpublishedEvents(ctx context.Context, limit int) error {
	return s.transactionMgr.WithTransaction(ctx, func(ctx context.Context) error {
		events, err := s.outboxRepo.GetUnpublishedEvents(ctx, limit)
		if err != nil {
			return err
		}

		for _, event := range events {
			if err := s.publisher.Publish(ctx, event); err != nil {
				slog.Error("failed to publish event",
					logger.Module("service.outbox"),
					slog.Int64("event_id", event.ID),
					logger.Err(err),
				)

				continue
			}

			if err := s.outboxRepo.MarkAsPublished(ctx, event.ID); err != nil {
				slog.Error("failed to mark event as published",
					logger.Module("service.outbox"),
					slog.Int64("event_id", event.ID),
					logger.Err(err),
				)

				continue
			}

			slog.Debug("published event",
				logger.Module("service.outbox"),
				slog.Int64("event_id", event.ID),
				slog.String("aggregate_id", event.AggregateID),
			)
		}

		return nil
	})
}
