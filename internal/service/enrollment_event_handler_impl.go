package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jnst/self-enrollment/internal/logger"
	"github.com/jnst/self-enrollment/internal/model"
	"github.com/jnst/self-enrollment/internal/wiki"
)

// EnrollmentEventHandlerImpl implements EnrollmentEventHandler.
type EnrollmentEventHandlerImpl struct {
	preferences wiki.PreferencesManager
	edits       wiki.CourseEditPoster
	wikiEd      bool
}

// NewEnrollmentEventHandlerImpl creates a new EnrollmentEventHandler.
// The visual editor preference is only set when wikiEd is enabled.
func NewEnrollmentEventHandlerImpl(
	preferences wiki.PreferencesManager,
	edits wiki.CourseEditPoster,
	wikiEd bool,
) EnrollmentEventHandler {
	return &EnrollmentEventHandlerImpl{
		preferences: preferences,
		edits:       edits,
		wikiEd:      wikiEd,
	}
}

// HandleEnrollmentEvent runs the downstream work for one event.
func (h *EnrollmentEventHandlerImpl) HandleEnrollmentEvent(ctx context.Context, event *model.EnrollmentEvent) error {
	slog.Info("processing enrollment event",
		logger.Module("service.enrollment_events"),
		slog.String("action", string(event.Action)),
		slog.String("course", event.CourseSlug),
		slog.String("user_id", event.UserID.String()),
	)

	switch event.Action {
	case model.EventActionEnrollInCourse:
		if h.wikiEd {
			if err := h.preferences.EnableVisualEditor(ctx, event.UserID); err != nil {
				return fmt.Errorf("failed to set preferences: %w", err)
			}
		}

		if err := h.edits.EnrollInCourse(ctx, event.CourseSlug, event.UserID); err != nil {
			return fmt.Errorf("failed to post enrollment edits: %w", err)
		}
	case model.EventActionUpdateCourse:
		if err := h.edits.UpdateCourse(ctx, event.CourseSlug, event.UserID); err != nil {
			return fmt.Errorf("failed to update course page: %w", err)
		}
	default:
		slog.Warn("unknown enrollment action",
			logger.Module("service.enrollment_events"),
			slog.String("action", string(event.Action)),
		)
	}

	return nil
}
