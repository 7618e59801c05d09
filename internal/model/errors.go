package model

import "errors"

var (
	// ErrCourseNotFound is returned when no course matches the requested slug.
	ErrCourseNotFound = errors.New("course not found")
	// ErrCohortNotFound is returned when no cohort matches the requested slug.
	ErrCohortNotFound = errors.New("cohort not found")
	// ErrInvalidCourseSlug is returned when the course slug is empty.
	ErrInvalidCourseSlug = errors.New("course slug is required")
	// ErrInvalidRole is returned for role values outside the known set.
	ErrInvalidRole = errors.New("invalid role")
)
