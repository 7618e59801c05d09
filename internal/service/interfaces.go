// Package service provides business logic layer implementations.
package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/jnst/self-enrollment/internal/admission"
	"github.com/jnst/self-enrollment/internal/model"
)

// EnrollmentService runs self-enrollment attempts through the admission gates.
type EnrollmentService interface {
	// Admit returns model.ErrCourseNotFound (wrapped) when the slug does not
	// resolve; every other business rejection is reported in the outcome.
	Admit(ctx context.Context, params *model.AdmitParams) (*admission.Outcome, error)
}

// EnrollmentNotifier receives best-effort notifications about new enrollments.
type EnrollmentNotifier interface {
	Notify(ctx context.Context, event *model.EnrollmentEvent) error
}

// CohortService aggregates course data for the cohort overview.
type CohortService interface {
	Overview(ctx context.Context, cohortSlug string) (*model.CohortOverview, error)
	UserCourses(ctx context.Context, userID uuid.UUID) ([]*model.Course, error)
}

// OutboxService defines business logic methods for outbox event processing.
type OutboxService interface {
	ProcessUnpublishedEvents(ctx context.Context, limit int) error
}

// EnrollmentEventHandler performs the downstream work for enrollment events.
type EnrollmentEventHandler interface {
	HandleEnrollmentEvent(ctx context.Context, event *model.EnrollmentEvent) error
}
