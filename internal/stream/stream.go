// Package stream moves outbox events through Redis Streams.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/jnst/self-enrollment/internal/model"
)

const (
	// EnrollmentStreamKey is the stream carrying enrollment events.
	EnrollmentStreamKey = "enrollment:events"

	fieldEventType   = "event_type"
	fieldAggregateID = "aggregate_id"
	fieldOutboxID    = "outbox_id"
	fieldPayload     = "payload"
)

var (
	errMissingEventType = errors.New("missing event_type in message")
	errMissingPayload   = errors.New("missing payload in message")
)

// Publisher appends outbox events to a stream.
type Publisher interface {
	Publish(ctx context.Context, event *model.OutboxEvent) error
}

// RedisPublisher implements Publisher with XADD.
type RedisPublisher struct {
	client    rueidis.Client
	streamKey string
}

// NewRedisPublisher creates a publisher writing to streamKey.
func NewRedisPublisher(client rueidis.Client, streamKey string) *RedisPublisher {
	return &RedisPublisher{client: client, streamKey: streamKey}
}

// Publish appends the event to the stream.
func (p *RedisPublisher) Publish(ctx context.Context, event *model.OutboxEvent) error {
	cmd := p.client.B().Xadd().Key(p.streamKey).Id("*").
		FieldValue().
		FieldValue(fieldEventType, event.EventType).
		FieldValue(fieldAggregateID, event.AggregateID).
		FieldValue(fieldOutboxID, strconv.FormatInt(event.ID, 10)).
		FieldValue(fieldPayload, string(event.Payload)).
		Build()

	return p.client.Do(ctx, cmd).Error()
}

// DecodeEnrollmentEvent extracts an enrollment event from stream fields.
// It returns nil without error for event types it does not handle.
func DecodeEnrollmentEvent(fields map[string]string) (*model.EnrollmentEvent, error) {
	eventType, ok := fields[fieldEventType]
	if !ok {
		return nil, errMissingEventType
	}

	payload, ok := fields[fieldPayload]
	if !ok {
		return nil, errMissingPayload
	}

	if eventType != model.EventTypeCourseEnrollment {
		return nil, nil
	}

	var event model.EnrollmentEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return nil, fmt.Errorf("failed to parse %s payload: %w", eventType, err)
	}

	return &event, nil
}
