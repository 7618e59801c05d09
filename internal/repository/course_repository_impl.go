package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jnst/self-enrollment/internal/db"
	"github.com/jnst/self-enrollment/internal/model"
)

// CourseRepositoryImpl implements CourseRepository and CohortRepository using PostgreSQL.
type CourseRepositoryImpl struct {
	db *db.Queries
}

// NewCourseRepositoryImpl creates a new course and cohort repository.
func NewCourseRepositoryImpl(pool *pgxpool.Pool) *CourseRepositoryImpl {
	return &CourseRepositoryImpl{
		db: db.New(pool),
	}
}

// FindBySlug retrieves a course by slug.
func (r *CourseRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*model.Course, error) {
	row, err := queries(ctx, r.db).GetCourseBySlug(ctx, slug)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	return toCourse(row), nil
}

// FindCohortBySlug retrieves a cohort by slug.
func (r *CourseRepositoryImpl) FindCohortBySlug(ctx context.Context, slug string) (*model.Cohort, error) {
	row, err := queries(ctx, r.db).GetCohortBySlug(ctx, slug)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrCohortNotFound
	}
	if err != nil {
		return nil, err
	}

	return &model.Cohort{ID: row.ID, Slug: row.Slug, Title: row.Title}, nil
}

// ListCohortCourses returns the courses attached to a cohort.
func (r *CourseRepositoryImpl) ListCohortCourses(ctx context.Context, cohortID uuid.UUID) ([]*model.Course, error) {
	rows, err := queries(ctx, r.db).ListCohortCourses(ctx, cohortID)
	if err != nil {
		return nil, err
	}

	return toCourses(rows), nil
}

// ListUnsubmittedCourses returns unsubmitted courses, newest first.
func (r *CourseRepositoryImpl) ListUnsubmittedCourses(ctx context.Context) ([]*model.Course, error) {
	rows, err := queries(ctx, r.db).ListUnsubmittedCourses(ctx)
	if err != nil {
		return nil, err
	}

	return toCourses(rows), nil
}
