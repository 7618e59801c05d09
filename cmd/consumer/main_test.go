package main

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/rueidis"
	"github.com/stretchr/testify/assert"

	"github.com/jnst/self-enrollment/internal/model"
)

type stubEventHandler struct {
	err    error
	events []*model.EnrollmentEvent
}

func (s *stubEventHandler) HandleEnrollmentEvent(_ context.Context, event *model.EnrollmentEvent) error {
	s.events = append(s.events, event)
	return s.err
}

func TestHandleMessageAckDecision(t *testing.T) {
	validFields := map[string]string{
		"event_type": model.EventTypeCourseEnrollment,
		"payload":    `{"course_slug":"bio_101","action":"update_course"}`,
	}

	tests := []struct {
		name       string
		fields     map[string]string
		handlerErr error
		wantAck    bool
		wantCalls  int
	}{
		{name: "handled", fields: validFields, wantAck: true, wantCalls: 1},
		{name: "handler failure stays pending", fields: validFields, handlerErr: errors.New("wiki down"), wantAck: false, wantCalls: 1},
		{name: "undecodable payload", fields: map[string]string{"event_type": model.EventTypeCourseEnrollment, "payload": "{"}, wantAck: true},
		{name: "missing payload", fields: map[string]string{"event_type": model.EventTypeCourseEnrollment}, wantAck: true},
		{name: "unknown event type", fields: map[string]string{"event_type": "user_created", "payload": "{}"}, wantAck: true},
		{name: "trimmed entry", fields: nil, wantAck: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := &stubEventHandler{err: tt.handlerErr}
			h := NewMessageHandler(nil, events)

			ack := h.handleMessage(context.Background(), rueidis.XRangeEntry{ID: "1-0", FieldValues: tt.fields})

			assert.Equal(t, tt.wantAck, ack)
			assert.Len(t, events.events, tt.wantCalls)
		})
	}
}
