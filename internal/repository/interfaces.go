// Package repository provides data access interfaces and implementations.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jnst/self-enrollment/internal/model"
)

// MembershipRepository defines methods for course membership data access.
type MembershipRepository interface {
	Exists(ctx context.Context, courseID, userID uuid.UUID) (bool, error)
	// CreateIfAbsent inserts the membership unless one already exists for the
	// course/user pair. The bool reports whether a row was created. It is atomic
	// with respect to concurrent callers for the same pair.
	CreateIfAbsent(ctx context.Context, params *model.CreateMembershipParams) (*model.Membership, bool, error)
	ListCurrentCourses(ctx context.Context, userID uuid.UUID, now time.Time) ([]*model.Course, error)
}

// CourseRepository defines methods for course lookup.
type CourseRepository interface {
	FindBySlug(ctx context.Context, slug string) (*model.Course, error)
}

// CohortRepository defines methods for cohort data access.
type CohortRepository interface {
	FindCohortBySlug(ctx context.Context, slug string) (*model.Cohort, error)
	ListCohortCourses(ctx context.Context, cohortID uuid.UUID) ([]*model.Course, error)
	ListUnsubmittedCourses(ctx context.Context) ([]*model.Course, error)
}

// OutboxRepository defines methods for outbox event data access.
type OutboxRepository interface {
	CreateEvent(ctx context.Context, params *model.CreateOutboxEventParams) (*model.OutboxEvent, error)
	GetUnpublishedEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	MarkAsPublished(ctx context.Context, id int64) error
}

// TransactionManager defines methods for database transaction management.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
