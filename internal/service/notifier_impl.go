package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jnst/self-enrollment/internal/model"
	"github.com/jnst/self-enrollment/internal/repository"
)

// OutboxNotifier implements EnrollmentNotifier by recording outbox events that
// the publisher later forwards to the enrollment stream.
type OutboxNotifier struct {
	outboxRepo repository.OutboxRepository
}

// NewOutboxNotifier creates a new outbox-backed EnrollmentNotifier.
func NewOutboxNotifier(outboxRepo repository.OutboxRepository) EnrollmentNotifier {
	return &OutboxNotifier{outboxRepo: outboxRepo}
}

// Notify stores the event in the outbox.
func (n *OutboxNotifier) Notify(ctx context.Context, event *model.EnrollmentEvent) error {
	payloadJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	_, err = n.outboxRepo.CreateEvent(ctx, &model.CreateOutboxEventParams{
		AggregateID: model.EnrollmentAggregateID(event.CourseID, event.UserID),
		EventType:   model.EventTypeCourseEnrollment,
		Payload:     payloadJSON,
	})
	if err != nil {
		return fmt.Errorf("failed to create outbox event: %w", err)
	}

	return nil
}
