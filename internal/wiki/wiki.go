// Package wiki holds the downstream collaborators run after a student enrolls.
package wiki

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jnst/self-enrollment/internal/logger"
)

// PreferencesManager updates a user's editor preferences.
type PreferencesManager interface {
	EnableVisualEditor(ctx context.Context, userID uuid.UUID) error
}

// CourseEditPoster posts automatic edits for a course.
type CourseEditPoster interface {
	// EnrollInCourse posts enrollment templates to the student's user page and sandbox.
	EnrollInCourse(ctx context.Context, courseSlug string, userID uuid.UUID) error
	// UpdateCourse refreshes the course page with the latest course info.
	UpdateCourse(ctx context.Context, courseSlug string, userID uuid.UUID) error
}

// LogClient implements both collaborators by logging the requested edit.
type LogClient struct {
	log *slog.Logger
}

// NewLogClient creates a LogClient.
func NewLogClient(log *slog.Logger) *LogClient {
	return &LogClient{log: log.With(logger.Module("wiki"))}
}

// EnableVisualEditor logs the preference change.
func (c *LogClient) EnableVisualEditor(ctx context.Context, userID uuid.UUID) error {
	c.log.InfoContext(ctx, "enabling visual editor", slog.String("user_id", userID.String()))
	return nil
}

// EnrollInCourse logs the enrollment edits.
func (c *LogClient) EnrollInCourse(ctx context.Context, courseSlug string, userID uuid.UUID) error {
	c.log.InfoContext(ctx, "posting enrollment edits",
		slog.String("course", courseSlug),
		slog.String("user_id", userID.String()),
	)
	return nil
}

// UpdateCourse logs the course page update.
func (c *LogClient) UpdateCourse(ctx context.Context, courseSlug string, userID uuid.UUID) error {
	c.log.InfoContext(ctx, "updating course page",
		slog.String("course", courseSlug),
		slog.String("user_id", userID.String()),
	)
	return nil
}
