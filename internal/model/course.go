// Package model defines domain models and data structures.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Course represents a course that users may join.
type Course struct {
	ID                  uuid.UUID `json:"id"`
	Slug                string    `json:"slug"`
	Title               string    `json:"title"`
	Start               time.Time `json:"start"`
	End                 time.Time `json:"end"`
	Passcode            *string   `json:"-"`
	Submitted           bool      `json:"submitted"`
	RecentRevisionCount int64     `json:"recent_revision_count"`
	CharacterSum        int64     `json:"character_sum"`
	UploadsInUseCount   int64     `json:"uploads_in_use_count"`
	UploadUsagesCount   int64     `json:"upload_usages_count"`
	CreatedAt           time.Time `json:"created_at"`
}

// Ended reports whether the course end lies strictly before now.
func (c *Course) Ended(now time.Time) bool {
	return c.End.Before(now)
}

// Cohort groups courses for the overview page.
type Cohort struct {
	ID    uuid.UUID `json:"id"`
	Slug  string    `json:"slug"`
	Title string    `json:"title"`
}

// UnsubmittedCohortSlug selects the pseudo-cohort of courses not yet submitted.
const UnsubmittedCohortSlug = "none"

// UnsubmittedCohort is the pseudo-cohort listing all unsubmitted courses.
var UnsubmittedCohort = Cohort{Slug: UnsubmittedCohortSlug, Title: "Unsubmitted Courses"}
