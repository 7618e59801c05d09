package model

import "github.com/google/uuid"

// AdmitParams carries one self-enrollment attempt.
type AdmitParams struct {
	CourseSlug string
	Passcode   *string
	UserID     *uuid.UUID
	ReturnTo   string
	// Origin is the original request URL, used to come back after sign-in.
	Origin string
}

// Validate validates the admit parameters.
func (p *AdmitParams) Validate() error {
	if p.CourseSlug == "" {
		return ErrInvalidCourseSlug
	}

	return nil
}

// EventAction represents the type of event action.
type EventAction string

const (
	// EventActionEnrollInCourse posts enrollment templates for the new student.
	EventActionEnrollInCourse EventAction = "enroll_in_course"
	// EventActionUpdateCourse refreshes the course page with its latest roster.
	EventActionUpdateCourse EventAction = "update_course"
)

// EventTypeCourseEnrollment is the outbox event type for enrollment notifications.
const EventTypeCourseEnrollment = "course_enrollment"

// EnrollmentEvent represents the payload for enrollment notifications.
type EnrollmentEvent struct {
	CourseID   uuid.UUID   `json:"course_id"`
	CourseSlug string      `json:"course_slug"`
	UserID     uuid.UUID   `json:"user_id"`
	Action     EventAction `json:"action"`
}
