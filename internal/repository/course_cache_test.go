package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnst/self-enrollment/internal/model"
)

func TestCourseCacheEncodingKeepsPasscode(t *testing.T) {
	passcode := "ABC"
	course := &model.Course{
		ID:                  uuid.New(),
		Slug:                "school/course_(term)",
		Title:               "Course",
		End:                 time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		Passcode:            &passcode,
		RecentRevisionCount: 3,
	}

	encoded, err := encodeCourse(course)
	require.NoError(t, err)

	decoded, err := decodeCourse(encoded)
	require.NoError(t, err)
	require.NotNil(t, decoded.Passcode)
	assert.Equal(t, "ABC", *decoded.Passcode)
	assert.Equal(t, course.ID, decoded.ID)
	assert.True(t, course.End.Equal(decoded.End))
}

func TestDecodeCourseRejectsGarbage(t *testing.T) {
	_, err := decodeCourse("{not json")
	assert.Error(t, err)
}

func TestCourseCacheExpiry(t *testing.T) {
	tests := []struct {
		ttl  time.Duration
		want int64
	}{
		{ttl: 30 * time.Second, want: 30000},
		{ttl: 500 * time.Millisecond, want: 500},
		{ttl: 1500 * time.Millisecond, want: 1500},
		{ttl: 0, want: 1},
		{ttl: time.Microsecond, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.ttl.String(), func(t *testing.T) {
			r := &CachedCourseRepository{ttl: tt.ttl}
			assert.Equal(t, tt.want, r.expiryMillis())
		})
	}
}
