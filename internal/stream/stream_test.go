package stream

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnst/self-enrollment/internal/model"
)

func TestDecodeEnrollmentEvent(t *testing.T) {
	courseID := uuid.MustParse("7b2f4a1e-0c1d-4e4f-9a55-1f0c6a3c2b10")
	userID := uuid.MustParse("0f9d2c44-8e1b-4c3a-a7d2-5b6e8f9a0c21")
	payload := `{"course_id":"` + courseID.String() + `","course_slug":"uni/bio_101","user_id":"` +
		userID.String() + `","action":"enroll_in_course"}`

	event, err := DecodeEnrollmentEvent(map[string]string{
		"event_type": model.EventTypeCourseEnrollment,
		"payload":    payload,
	})
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, courseID, event.CourseID)
	assert.Equal(t, userID, event.UserID)
	assert.Equal(t, "uni/bio_101", event.CourseSlug)
	assert.Equal(t, model.EventActionEnrollInCourse, event.Action)
}

func TestDecodeEnrollmentEventErrors(t *testing.T) {
	tests := []struct {
		name    string
		fields  map[string]string
		wantErr error
		wantNil bool
	}{
		{name: "missing event type", fields: map[string]string{"payload": "{}"}, wantErr: errMissingEventType},
		{name: "missing payload", fields: map[string]string{"event_type": model.EventTypeCourseEnrollment}, wantErr: errMissingPayload},
		{name: "unknown event type", fields: map[string]string{"event_type": "user_created", "payload": "{}"}, wantNil: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := DecodeEnrollmentEvent(tt.fields)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Nil(t, event)
		})
	}

	_, err := DecodeEnrollmentEvent(map[string]string{"event_type": model.EventTypeCourseEnrollment, "payload": "nope"})
	assert.Error(t, err)
}
